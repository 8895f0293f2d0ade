// Package lead models the admission form: a five-step linear flow whose
// forward moves are gated by each step's required fields.
package lead

import "strconv"

// Step is the form's position. Steps 1 to 4 collect data; StepDone is the
// success screen.
type Step int

const (
	StepPersonal Step = iota + 1
	StepAcademic
	StepContact
	StepDocuments
	StepDone
)

// DataSteps is the number of steps that collect input.
const DataSteps = int(StepDocuments)

// Valid reports whether s is inside [StepPersonal, StepDone].
func (s Step) Valid() bool {
	return s >= StepPersonal && s <= StepDone
}

// Clamp returns s bounded to the valid range.
func (s Step) Clamp() Step {
	switch {
	case s < StepPersonal:
		return StepPersonal
	case s > StepDone:
		return StepDone
	default:
		return s
	}
}

func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepAcademic:
		return "academic"
	case StepContact:
		return "contact"
	case StepDocuments:
		return "documents"
	case StepDone:
		return "done"
	default:
		return "step(" + strconv.Itoa(int(s)) + ")"
	}
}

// MarkerState is the look of one progress dot.
type MarkerState string

const (
	MarkerUpcoming MarkerState = "upcoming"
	MarkerCurrent  MarkerState = "current"
	MarkerDone     MarkerState = "done"
)

// ConnectorState is the look of the bar between two progress dots.
type ConnectorState string

const (
	ConnectorNone    ConnectorState = ""
	ConnectorPending ConnectorState = "pending"
	ConnectorActive  ConnectorState = "active"
	ConnectorDone    ConnectorState = "done"
)

// Marker is one entry of the progress indicator.
type Marker struct {
	Step      Step
	State     MarkerState
	Connector ConnectorState
}

// Progress returns the indicator for the data steps as seen from current.
// The last marker has no connector.
func Progress(current Step) []Marker {
	markers := make([]Marker, 0, DataSteps)
	for s := StepPersonal; s <= StepDocuments; s++ {
		m := Marker{Step: s, State: MarkerUpcoming}
		switch {
		case current > s:
			m.State = MarkerDone
		case current == s:
			m.State = MarkerCurrent
		}
		if s < StepDocuments {
			switch {
			case current > s+1:
				m.Connector = ConnectorDone
			case current > s:
				m.Connector = ConnectorActive
			default:
				m.Connector = ConnectorPending
			}
		}
		markers = append(markers, m)
	}
	return markers
}
