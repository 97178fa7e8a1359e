package geo

// TransitionType marks an edge-triggered geofence state change.
type TransitionType string

const (
	TransitionEntered TransitionType = "ENTERED"
	TransitionExited  TransitionType = "EXITED"
)

// Coordinate is a live GPS position. Accuracy (meters) is optional.
type Coordinate struct {
	Latitude  float64
	Longitude float64
	Accuracy  *float64
}

// Zone is a circular work area. Radius is in kilometers.
type Zone struct {
	Name      string
	Latitude  float64
	Longitude float64
	Radius    float64
}

// Transition is emitted once per inside/outside state change.
type Transition struct {
	Type           TransitionType `json:"type"`
	ZoneName       string         `json:"zone_name"`
	RadiusKm       float64        `json:"radius_km"`
	DistanceMeters float64        `json:"distance_meters"`
}

// Evaluator tracks whether a worker is inside a circular zone. Transitions
// are edge-triggered: repeated evaluations in a steady state emit nothing.
// The zero value starts in the OUTSIDE state.
type Evaluator struct {
	previousInside bool
}

// NewEvaluator returns an evaluator in the initial OUTSIDE state.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Inside reports the state recorded by the last evaluation.
func (e *Evaluator) Inside() bool {
	return e.previousInside
}

// Evaluate computes whether coord lies inside zone and returns a Transition
// when the inside/outside state changed, nil otherwise. A nil coordinate or
// nil zone performs no evaluation.
func (e *Evaluator) Evaluate(coord *Coordinate, zone *Zone) *Transition {
	if coord == nil || zone == nil {
		return nil
	}

	distance := DistanceMeters(coord.Latitude, coord.Longitude, zone.Latitude, zone.Longitude)
	insideNow := distance <= zone.Radius*1000

	if insideNow == e.previousInside {
		return nil
	}
	e.previousInside = insideNow

	t := &Transition{
		ZoneName:       zone.Name,
		RadiusKm:       zone.Radius,
		DistanceMeters: distance,
	}
	if insideNow {
		t.Type = TransitionEntered
	} else {
		t.Type = TransitionExited
	}
	return t
}
