// Package pleco writes Pleco SQL dictionary databases (.pqb). The on-disk
// schema, pragmas and property set are an external contract with the Pleco
// reader and are reproduced exactly.
package pleco

// Entry is one row of the dictionary's entries table.
type Entry struct {
	UID     int64
	Word    string
	Length  int
	Pron    string
	Defn    string
	SortKey string
}

// Metadata describes the store as a whole; written to the properties table.
type Metadata struct {
	Name      string
	MenuName  string
	ShortName string
	Icon      string
}
