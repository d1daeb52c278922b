package pleco

import "fmt"

// The Pleco reader expects these exact table names, column affinities and
// index names; do not reformat.
const (
	entriesDDL = `CREATE TABLE 'pleco_dict_entries' (
  "uid" INTEGER PRIMARY KEY AUTOINCREMENT,
  "created" INTEGER,
  "modified" INTEGER,
  "length" INTEGER,
  "word" TEXT COLLATE NOCASE,
  "altword" TEXT COLLATE NOCASE,
  "pron" TEXT COLLATE NOCASE,
  "defn" TEXT,
  "sortkey" TEXT UNIQUE
);`

	importsDDL = `CREATE TABLE 'pleco_dict_imports' (
  "id" INTEGER PRIMARY KEY AUTOINCREMENT,
  "starttime" INTEGER,
  "endtime" INTEGER,
  "startentry" INTEGER,
  "endentry" INTEGER
);`

	propertiesDDL = `CREATE TABLE 'pleco_dict_properties' (
  "propset" INTEGER,
  "propid" TEXT,
  "propvalue" TEXT,
  "propisstring" INTEGER,
  UNIQUE ("propset","propid")
);`
)

// posdexFamilies: hz indexes by character position, py by syllable position.
var posdexFamilies = []string{"hz", "py"}

// maxPosdexDepth caps positional indexing; prefix search depth is 4.
const maxPosdexDepth = 4

func posdexTable(family string, pos int) string {
	return fmt.Sprintf("pleco_dict_posdex_%s_%d", family, pos)
}

// schemaStatements returns all DDL for a fresh artifact: the three fixed
// tables, the eight posdex tables, and the lookup indexes over sortkey and
// over each posdex table's (syllable, uid[, length]) and (uid).
func schemaStatements() []string {
	stmts := []string{entriesDDL, importsDDL, propertiesDDL}
	for _, fam := range posdexFamilies {
		for pos := 1; pos <= maxPosdexDepth; pos++ {
			stmts = append(stmts, fmt.Sprintf(
				"CREATE TABLE '%s' (syllable TEXT, uid INTEGER, length INTEGER);",
				posdexTable(fam, pos)))
		}
	}
	stmts = append(stmts, "CREATE INDEX idx_pleco_dict_entries_sortkey ON pleco_dict_entries (sortkey);")
	for _, fam := range posdexFamilies {
		for pos := 1; pos <= maxPosdexDepth; pos++ {
			tbl := posdexTable(fam, pos)
			cols, suffix := "syllable, uid", "syllable_uid"
			if pos == 1 {
				cols, suffix = "syllable, uid, length", "syllable_uid_length"
			}
			stmts = append(stmts,
				fmt.Sprintf("CREATE INDEX idx_%s_%s ON %s (%s);", tbl, suffix, tbl, cols),
				fmt.Sprintf("CREATE INDEX idx_%s_uid ON %s (uid);", tbl, tbl))
		}
	}
	return stmts
}
