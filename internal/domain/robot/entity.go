package robot

import "time"

type Status string

const (
	StatusAvailable Status = "available"
	StatusBusy      Status = "busy"
)

func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusBusy
}

// State is the singleton row describing the delivery robot.
type State struct {
	ID        uint
	Status    Status
	Notes     *string
	UpdatedAt time.Time
}
