package pleco

import (
	"math/rand"
	"strconv"
)

// property is one row of the properties table, scoped to property set 0.
type property struct {
	id       string
	value    string
	isString bool
}

// buildProperties assembles the fixed property set describing the store.
// FileID and FileCreator are opaque identifiers; they only need to differ
// between independent builds, so they come from the injected rng and builds
// stay reproducible under a fixed seed.
func buildProperties(meta Metadata, entryCount int, now int64, rng *rand.Rand) []property {
	fileID := rng.Int63n(4_000_000_001) - 2_000_000_000
	fileCreator := rng.Int63n(50_000_000) + 1
	return []property{
		{"DictIconFillColor", "39372", false},
		{"DictIconName", meta.Icon, true},
		{"DictIconTextColor", "16777215", false},
		{"DictLang", "Chinese", true},
		{"DictMenuName", meta.MenuName, true},
		{"DictName", meta.Name, true},
		{"DictShortName", meta.ShortName, true},
		{"EntryCount", strconv.Itoa(entryCount), false},
		{"FileCreated", strconv.FormatInt(now, 10), false},
		{"FileCreator", strconv.FormatInt(fileCreator, 10), false},
		{"FileGenerator", "Pleco Engine 2.0", true},
		{"FileID", strconv.FormatInt(fileID, 10), false},
		{"FilePlatform", "Android", true},
		{"FormatString", "Pleco SQL Dictionary Database", true},
		{"FormatVersion", "8", false},
		{"TransLang", "English", true},
	}
}
