package modedb

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Modes []Entry `yaml:"modes"`
}

// ExportYAML writes the entries as a YAML document.
func ExportYAML(w io.Writer, entries []Entry) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(catalogFile{Modes: entries}); err != nil {
		return fmt.Errorf("export yaml: %w", err)
	}

	return enc.Close()
}

// ImportYAML reads the entries of a document written by ExportYAML.
func ImportYAML(r io.Reader) ([]Entry, error) {
	var f catalogFile

	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("import yaml: %w", err)
	}

	return f.Modes, nil
}
