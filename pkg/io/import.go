package io

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// ReadSnapshot decodes a snapshot written by [WriteSnapshot].
// Observation dates are validated and an empty ID gets a fresh one.
func ReadSnapshot(r io.Reader, f Format) (*neo.Dataset, error) {
	var snap neo.Snapshot
	var err error
	switch f {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&snap)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&snap)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "cannot read snapshots as %q", f)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode snapshot")
	}

	for i, o := range snap.Observations {
		if _, err := errs.ValidateDate(o.Date); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "observation %d (%s)", i, o.ID)
		}
	}
	return neo.FromSnapshot(snap), nil
}

// ImportSnapshot reads a snapshot file written by [ExportSnapshot].
func ImportSnapshot(path string) (*neo.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadSnapshot(f, FormatForPath(path))
}
