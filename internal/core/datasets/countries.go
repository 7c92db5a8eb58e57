package datasets

import "github.com/JonMunkholm/isogen/internal/core"

func init() {
	registerCountriesDatahub()
	registerCountriesISO3166()
}

// registerCountriesDatahub reads the datahub country-codes export:
// https://github.com/datasets/country-codes/blob/main/data/country-codes.csv
//
// Country rows are assumed unique, so neither table deduplicates.
func registerCountriesDatahub() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:      "countries_datahub",
			Group:    "countries",
			Label:    "ISO 3166-1 (datahub country-codes)",
			Input:    "countries.csv",
			Output:   "countries.go",
			Priority: 0,
		},
		Tables: []core.TableSpec{
			{Name: "CountryAlpha2", Column: "ISO3166-1-Alpha-2"},
			{Name: "CountryAlpha3", Column: "ISO3166-1-Alpha-3"},
		},
	})
}

func registerCountriesISO3166() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:      "countries_iso3166",
			Group:    "countries",
			Label:    "ISO 3166-1 (ISO-3166.csv)",
			Input:    "ISO-3166.csv",
			Output:   "countries.go",
			Priority: 1,
		},
		Tables: []core.TableSpec{
			{Name: "CountryAlpha2", Column: "alpha-2"},
			{Name: "CountryAlpha3", Column: "alpha-3"},
		},
	})
}
