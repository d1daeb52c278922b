package build

import "sync"

// workerPool runs pure computation jobs on a fixed number of goroutines.
// Jobs carry no error channel: derivation work writes into caller-owned,
// index-addressed slots, so completion is the only signal needed.
type workerPool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

func newWorkerPool(workers int) *workerPool {
	if workers <= 0 {
		workers = 1
	}
	p := &workerPool{jobs: make(chan func(), workers*2)}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
			}
		}()
	}
	return p
}

// submit enqueues a job, blocking when the queue is full.
func (p *workerPool) submit(job func()) {
	p.jobs <- job
}

// wait closes the queue and blocks until all submitted jobs have run.
// The pool cannot be reused afterwards.
func (p *workerPool) wait() {
	close(p.jobs)
	p.wg.Wait()
}
