package core

// definitions.go loads dataset definitions from YAML so a run can use
// sources other than the built-in ones without code changes:
//
//	datasets:
//	  - key: currencies_six
//	    group: currencies
//	    input: list-one.csv
//	    output: currencies.go
//	    tables:
//	      - name: CurrencyAlpha
//	        column: Ccy
//	        skip_empty: true
//	        dedup: true
//
// Unknown fields are rejected so a typo cannot silently change the output.

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JonMunkholm/isogen/internal/isoerr"
)

type definitionsFile struct {
	Datasets []datasetYAML `yaml:"datasets"`
}

type datasetYAML struct {
	Key      string      `yaml:"key"`
	Group    string      `yaml:"group"`
	Label    string      `yaml:"label"`
	Input    string      `yaml:"input"`
	Output   string      `yaml:"output"`
	Priority int         `yaml:"priority"`
	Optional bool        `yaml:"optional"`
	Tables   []tableYAML `yaml:"tables"`
}

type tableYAML struct {
	Name      string `yaml:"name"`
	Column    string `yaml:"column"`
	SkipEmpty bool   `yaml:"skip_empty"`
	Dedup     bool   `yaml:"dedup"`
	Normalize string `yaml:"normalize"`
}

// LoadDefinitions parses dataset definitions from YAML and validates them.
func LoadDefinitions(r io.Reader) ([]DatasetDefinition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file definitionsFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &isoerr.DefinitionError{Reason: "definitions file is empty"}
		}
		return nil, &isoerr.DefinitionError{Reason: fmt.Sprintf("decode yaml: %v", err)}
	}
	if len(file.Datasets) == 0 {
		return nil, &isoerr.DefinitionError{Reason: "no datasets defined"}
	}

	defs := make([]DatasetDefinition, 0, len(file.Datasets))
	keys := make(map[string]bool, len(file.Datasets))
	for _, d := range file.Datasets {
		def := DatasetDefinition{
			Info: DatasetInfo{
				Key:      d.Key,
				Group:    d.Group,
				Label:    d.Label,
				Input:    d.Input,
				Output:   d.Output,
				Priority: d.Priority,
				Optional: d.Optional,
			},
		}
		if def.Info.Group == "" {
			def.Info.Group = d.Key
		}

		for _, t := range d.Tables {
			norm, err := NormalizerByName(t.Normalize)
			if err != nil {
				return nil, &isoerr.DefinitionError{Dataset: d.Key, Reason: err.Error()}
			}
			def.Tables = append(def.Tables, TableSpec{
				Name:       t.Name,
				Column:     t.Column,
				SkipEmpty:  t.SkipEmpty,
				Dedup:      t.Dedup,
				Normalizer: norm,
			})
		}

		if err := def.Validate(); err != nil {
			return nil, err
		}
		if keys[def.Info.Key] {
			return nil, &isoerr.DefinitionError{Dataset: def.Info.Key, Reason: "key defined twice"}
		}
		keys[def.Info.Key] = true

		defs = append(defs, def)
	}

	sortDefinitions(defs)
	return defs, nil
}

// LoadDefinitionsFile reads dataset definitions from path.
func LoadDefinitionsFile(path string) ([]DatasetDefinition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &isoerr.FileError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return LoadDefinitions(f)
}
