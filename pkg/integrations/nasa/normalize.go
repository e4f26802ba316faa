package nasa

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	errs "github.com/matzehuels/neoscope/pkg/errors"
	"github.com/matzehuels/neoscope/pkg/neo"
)

// Normalize flattens a feed into observations.
//
// Dates are visited in ascending order and objects keep their feed order
// within a date. Each observation takes its velocity and miss distance from
// the object's first close-approach record. An object without one, or with a
// numeric field that does not parse or is negative, NaN or infinite, fails
// the whole feed with INVALID_FEED.
func Normalize(feed *Feed) ([]neo.Observation, error) {
	if feed == nil {
		return nil, errs.New(errs.ErrCodeInvalidFeed, "empty feed")
	}

	dates := make([]string, 0, len(feed.NearEarthObjects))
	for d := range feed.NearEarthObjects {
		dates = append(dates, d)
	}
	slices.Sort(dates)

	obs := make([]neo.Observation, 0, feed.ElementCount)
	for _, date := range dates {
		if _, err := errs.ValidateDate(date); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidFeed, err, "feed date key %q", date)
		}
		for _, o := range feed.NearEarthObjects[date] {
			v, err := normalizeObject(date, o)
			if err != nil {
				return nil, err
			}
			obs = append(obs, v)
		}
	}
	return obs, nil
}

func normalizeObject(date string, o Object) (neo.Observation, error) {
	if len(o.CloseApproachData) == 0 {
		return neo.Observation{}, errs.New(errs.ErrCodeInvalidFeed, "object %s has no close-approach data", o.ID)
	}
	ca := o.CloseApproachData[0]

	velocity, err := parseNumber(ca.RelativeVelocity.KilometersPerHour)
	if err != nil {
		return neo.Observation{}, errs.Wrap(errs.ErrCodeInvalidFeed, err, "object %s: relative velocity", o.ID)
	}
	miss, err := parseNumber(ca.MissDistance.Kilometers)
	if err != nil {
		return neo.Observation{}, errs.Wrap(errs.ErrCodeInvalidFeed, err, "object %s: miss distance", o.ID)
	}

	km := o.EstimatedDiameter.Kilometers
	if err := checkMagnitude(km.Min); err != nil {
		return neo.Observation{}, errs.Wrap(errs.ErrCodeInvalidFeed, err, "object %s: diameter min", o.ID)
	}
	if err := checkMagnitude(km.Max); err != nil {
		return neo.Observation{}, errs.Wrap(errs.ErrCodeInvalidFeed, err, "object %s: diameter max", o.ID)
	}
	return neo.NewObservation(o.ID, o.Name, date, km.Min, km.Max, o.Hazardous, velocity, miss, o.AbsoluteMagnitudeH), nil
}

// parseNumber parses a feed quantity, which must be finite and non-negative.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return v, checkMagnitude(v)
}

func checkMagnitude(v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return fmt.Errorf("%v is not finite", v)
	case v < 0:
		return fmt.Errorf("%v is negative", v)
	}
	return nil
}
