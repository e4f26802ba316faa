package nasa

// Feed is the response body of GET /neo/rest/v1/feed.
type Feed struct {
	ElementCount     int                 `json:"element_count"`
	NearEarthObjects map[string][]Object `json:"near_earth_objects"`
}

// Object is one near-Earth object listed under a feed date.
type Object struct {
	ID                 string            `json:"id"`
	NeoReferenceID     string            `json:"neo_reference_id,omitempty"`
	Name               string            `json:"name"`
	NasaJPLURL         string            `json:"nasa_jpl_url,omitempty"`
	AbsoluteMagnitudeH float64           `json:"absolute_magnitude_h"`
	EstimatedDiameter  EstimatedDiameter `json:"estimated_diameter"`
	Hazardous          bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData  []CloseApproach   `json:"close_approach_data"`
	SentryObject       bool              `json:"is_sentry_object,omitempty"`
}

// EstimatedDiameter holds the diameter bounds per unit system. Only
// kilometers are used.
type EstimatedDiameter struct {
	Kilometers DiameterRange `json:"kilometers"`
}

// DiameterRange is a min/max diameter estimate.
type DiameterRange struct {
	Min float64 `json:"estimated_diameter_min"`
	Max float64 `json:"estimated_diameter_max"`
}

// CloseApproach is one close-approach record. NeoWs encodes the numeric
// fields as strings.
type CloseApproach struct {
	Date             string           `json:"close_approach_date"`
	RelativeVelocity RelativeVelocity `json:"relative_velocity"`
	MissDistance     MissDistance     `json:"miss_distance"`
	OrbitingBody     string           `json:"orbiting_body,omitempty"`
}

// RelativeVelocity of the approach.
type RelativeVelocity struct {
	KilometersPerHour string `json:"kilometers_per_hour"`
}

// MissDistance of the approach.
type MissDistance struct {
	Kilometers string `json:"kilometers"`
}
