// Package io writes query results as JSON or YAML and moves dataset
// snapshots to and from files.
//
// # Output
//
// [Write] encodes any query result in the requested [Format]:
//
//	err := io.Write(os.Stdout, io.FormatYAML, ds.DailyCounts())
//
// Table output is handled by the CLI, which knows the shape of each result.
//
// # Snapshots
//
// [ExportSnapshot] saves a dataset (metadata and observations) so it can be
// queried later without network access; [ImportSnapshot] reads it back with
// its original snapshot ID. The file format follows the extension: .yaml
// and .yml are YAML, anything else JSON.
//
//	err := io.ExportSnapshot(ds, "neo-week1.json")
//	ds, err := io.ImportSnapshot("neo-week1.json")
package io
