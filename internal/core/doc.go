// Package core provides the generation logic for ISO lookup tables.
//
// This package holds everything between a CSV file on disk and a generated
// Go file, independent of how the run is started. It can be used by the
// command, by go:generate, or by tests without modification.
//
// # Architecture
//
//   - Dataset Definitions: registered via the registry (or loaded from YAML),
//     each describes an input file, an output file and its tables.
//   - Generator: resolves which variant of each group is on disk and runs
//     the pipelines one after another.
//   - Extract: the single pass that normalizes, filters and deduplicates.
//
// # Dataset Registry
//
// Datasets are registered at init time using [Register]:
//
//	core.Register(DatasetDefinition{
//	    Info: DatasetInfo{Key: "currencies_datahub", Group: "currencies",
//	        Input: "currencies.csv", Output: "currencies.go"},
//	    Tables: []TableSpec{
//	        {Name: "CurrencyAlpha", Column: "AlphabeticCode", SkipEmpty: true, Dedup: true},
//	    },
//	})
//
// Datasets sharing a group are alternative sources for the same tables. The
// generator uses the lowest-priority variant whose input exists.
//
// # Error Handling
//
// Failures are typed (see package isoerr) and mapped to coded messages using
// [MapError]. Nothing is retried: every error ends the run.
package core
