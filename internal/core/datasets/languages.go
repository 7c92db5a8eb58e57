package datasets

import "github.com/JonMunkholm/isogen/internal/core"

func init() {
	registerLanguagesDatahub()
}

// registerLanguagesDatahub reads the datahub language-codes export:
// https://github.com/datasets/language-codes/blob/main/data/language-codes-3b2.csv
//
// Optional: runs that only ship country and currency data skip it.
func registerLanguagesDatahub() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:      "languages_datahub",
			Group:    "languages",
			Label:    "ISO 639 (datahub language-codes)",
			Input:    "language-codes-3b2.csv",
			Output:   "languages.go",
			Optional: true,
		},
		Tables: []core.TableSpec{
			{Name: "LanguageAlpha2", Column: "alpha2", SkipEmpty: true, Dedup: true},
			{Name: "LanguageAlpha3", Column: "alpha3-b", SkipEmpty: true, Dedup: true},
		},
	})
}
