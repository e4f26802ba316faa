package loader

import (
	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/integrations/nasa"
)

// Options selects the feed range for one load.
type Options struct {
	StartDate string
	EndDate   string

	// Refresh bypasses both the dataset cache and the HTTP cache.
	Refresh bool
}

// ValidateAndSetDefaults fills an empty range with the default feed week
// and validates the result.
func (o *Options) ValidateAndSetDefaults() error {
	if o.StartDate == "" && o.EndDate == "" {
		o.StartDate, o.EndDate = nasa.DefaultStartDate, nasa.DefaultEndDate
	}
	return errs.ValidateDateRange(o.StartDate, o.EndDate)
}
