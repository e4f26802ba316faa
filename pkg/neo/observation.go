package neo

// Observation is one recorded close approach of a near-Earth object.
// Distances are in kilometers and velocity in km/h.
type Observation struct {
	ID                string  `json:"id" yaml:"id" bson:"id"`
	Name              string  `json:"name" yaml:"name" bson:"name"`
	Date              string  `json:"date" yaml:"date" bson:"date"` // YYYY-MM-DD
	DiameterMin       float64 `json:"diameter_min" yaml:"diameter_min" bson:"diameter_min"`
	DiameterMax       float64 `json:"diameter_max" yaml:"diameter_max" bson:"diameter_max"`
	DiameterAvg       float64 `json:"diameter_avg" yaml:"diameter_avg" bson:"diameter_avg"`
	Hazardous         bool    `json:"is_hazardous" yaml:"is_hazardous" bson:"is_hazardous"`
	Velocity          float64 `json:"velocity" yaml:"velocity" bson:"velocity"`
	MissDistance      float64 `json:"miss_distance" yaml:"miss_distance" bson:"miss_distance"`
	AbsoluteMagnitude float64 `json:"absolute_magnitude" yaml:"absolute_magnitude" bson:"absolute_magnitude"`
}

// NewObservation builds an Observation, deriving DiameterAvg as the midpoint
// of min and max.
func NewObservation(id, name, date string, diameterMin, diameterMax float64, hazardous bool, velocity, missDistance, magnitude float64) Observation {
	return Observation{
		ID:                id,
		Name:              name,
		Date:              date,
		DiameterMin:       diameterMin,
		DiameterMax:       diameterMax,
		DiameterAvg:       (diameterMin + diameterMax) / 2,
		Hazardous:         hazardous,
		Velocity:          velocity,
		MissDistance:      missDistance,
		AbsoluteMagnitude: magnitude,
	}
}

// Value returns the observation's value for m.
// It panics on a Metric that did not come from [ParseMetric] or [Metrics].
func (o Observation) Value(m Metric) float64 {
	switch m {
	case MetricDiameterMin:
		return o.DiameterMin
	case MetricDiameterMax:
		return o.DiameterMax
	case MetricDiameterAvg:
		return o.DiameterAvg
	case MetricVelocity:
		return o.Velocity
	case MetricMissDistance:
		return o.MissDistance
	case MetricAbsoluteMagnitude:
		return o.AbsoluteMagnitude
	}
	panic("neo: invalid metric " + string(m))
}
