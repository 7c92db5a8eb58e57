package datasets

import "github.com/JonMunkholm/isogen/internal/core"

func init() {
	registerCurrenciesDatahub()
	registerCurrenciesISO4217()
}

// The currency lists repeat a code once per country using it, and list
// entities without a currency with an empty code.
var currencyTables = []core.TableSpec{
	{Name: "CurrencyAlpha", Column: "AlphabeticCode", SkipEmpty: true, Dedup: true},
}

// registerCurrenciesDatahub reads the datahub currency-codes export:
// https://github.com/datasets/currency-codes/blob/main/data/codes-all.csv
func registerCurrenciesDatahub() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:      "currencies_datahub",
			Group:    "currencies",
			Label:    "ISO 4217 (datahub currency-codes)",
			Input:    "currencies.csv",
			Output:   "currencies.go",
			Priority: 0,
		},
		Tables: currencyTables,
	})
}

func registerCurrenciesISO4217() {
	core.Register(core.DatasetDefinition{
		Info: core.DatasetInfo{
			Key:      "currencies_iso4217",
			Group:    "currencies",
			Label:    "ISO 4217 (ISO-4217.csv)",
			Input:    "ISO-4217.csv",
			Output:   "currencies.go",
			Priority: 1,
		},
		Tables: currencyTables,
	})
}
