package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat accepts json, yaml (or yml) and table, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "table", "":
		return FormatTable, nil
	}
	return "", errs.New(errs.ErrCodeInvalidFormat, "unknown format %q (want table, json or yaml)", s)
}

// FormatForPath picks YAML for .yaml/.yml paths and JSON otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Write encodes v to w. JSON is indented. FormatTable is not handled here.
func Write(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return errs.New(errs.ErrCodeUnsupported, "format %q cannot be written directly", f)
}

// WriteSnapshot encodes ds as a snapshot.
func WriteSnapshot(w io.Writer, f Format, ds *neo.Dataset) error {
	return Write(w, f, ds.Snapshot())
}

// ExportSnapshot writes ds to path in the format implied by its extension.
func ExportSnapshot(ds *neo.Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteSnapshot(f, FormatForPath(path), ds); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
