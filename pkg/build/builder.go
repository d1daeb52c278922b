// Package build orchestrates one dictionary build: it merges the two code
// tables, derives definitions and sort keys per character, and streams the
// result into a pleco.Writer in a single deterministic pass.
package build

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/hanzikit/cangjiepqb/pkg/cangjie"
	"github.com/hanzikit/cangjiepqb/pkg/phonetic"
	"github.com/hanzikit/cangjiepqb/pkg/pleco"
)

// ErrNoEntries means both input tables produced zero qualifying characters.
// The build aborts before any artifact is created.
var ErrNoEntries = errors.New("no qualifying characters found in input tables")

// Builder holds one build's inputs and knobs. The zero values of Workers,
// Rand and Now pick sensible defaults; Rand and Now exist so tests and
// reproducible builds can pin the opaque identifiers and timestamps.
type Builder struct {
	Primary   cangjie.Table // Cangjie3
	Secondary cangjie.Table // Cangjie5
	Meta      pleco.Metadata
	Workers   int
	Rand      *rand.Rand
	Now       func() time.Time
	Logger    *logrus.Logger
}

// Build writes the artifact to outPath and returns the entry count.
// Characters are processed in ascending codepoint order; uids are dense and
// 1-based over that order. Phonetic and definition derivation runs on a
// worker pool, but every write is serialized to keep the uid contract.
// Any error leaves no artifact at outPath.
func (b *Builder) Build(ctx context.Context, outPath string) (int, error) {
	chars := b.sortedChars()
	if len(chars) == 0 {
		return 0, ErrNoEntries
	}

	entries := make([]pleco.Entry, len(chars))
	pool := newWorkerPool(b.workers())
	for i, ch := range chars {
		pool.submit(func() {
			entries[i] = b.deriveEntry(int64(i+1), ch)
		})
	}
	pool.wait()

	w, err := pleco.Create(outPath, b.buildTime(), b.rng())
	if err != nil {
		return 0, err
	}
	defer w.Abort()

	for i := range entries {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := w.AddEntry(&entries[i]); err != nil {
			return 0, err
		}
	}
	if err := w.Finish(b.Meta, len(entries)); err != nil {
		return 0, err
	}

	if b.Logger != nil {
		b.Logger.WithFields(logrus.Fields{
			"entries": len(entries),
			"path":    outPath,
		}).Info("dictionary artifact written")
	}
	return len(entries), nil
}

// sortedChars returns the union of both tables' characters in ascending
// codepoint order. UTF-8 byte order equals codepoint order, so a plain
// string sort suffices.
func (b *Builder) sortedChars() []string {
	seen := make(map[string]struct{}, len(b.Primary)+len(b.Secondary))
	var chars []string
	for _, t := range []cangjie.Table{b.Primary, b.Secondary} {
		for ch := range t {
			if _, ok := seen[ch]; ok {
				continue
			}
			seen[ch] = struct{}{}
			chars = append(chars, ch)
		}
	}
	sort.Strings(chars)
	return chars
}

// deriveEntry computes everything about one character: the composed
// definition over both code systems, the numeric-tone transcription, and the
// collation key. Pure computation, safe to run concurrently per character.
func (b *Builder) deriveEntry(uid int64, ch string) pleco.Entry {
	primary := sortedCodes(b.Primary, ch)
	secondary := sortedCodes(b.Secondary, ch)
	syllables := phonetic.Syllables(ch)
	return pleco.Entry{
		UID:     uid,
		Word:    ch,
		Length:  utf8.RuneCountInString(ch),
		Pron:    strings.Join(syllables, " "),
		Defn:    cangjie.ComposeDefinition(primary, secondary),
		SortKey: phonetic.SortKey(syllables, ch),
	}
}

// sortedCodes returns the character's distinct codes sorted by code string,
// the order sections present them in.
func sortedCodes(t cangjie.Table, ch string) []string {
	codes := t.Codes(ch)
	sort.Strings(codes)
	return codes
}

func (b *Builder) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}
	return runtime.NumCPU()
}

func (b *Builder) buildTime() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

func (b *Builder) rng() *rand.Rand {
	if b.Rand != nil {
		return b.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Describe summarizes the build inputs for logging.
func (b *Builder) Describe() string {
	return fmt.Sprintf("cangjie3=%d characters, cangjie5=%d characters",
		len(b.Primary), len(b.Secondary))
}
