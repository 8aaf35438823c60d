package models

// KindID identifies an opponent category
type KindID string

const (
	// KindHuman indicates opponents presented as human players
	KindHuman KindID = "h"

	// KindComputer indicates opponents presented as computer programs
	KindComputer KindID = "c"

	// KindRobot indicates opponents presented as embodied robots
	KindRobot KindID = "r"

	// KindRandomness indicates offers presented as randomly generated
	KindRandomness KindID = "x"
)

// Kind represents an opponent category a participant can be assigned to
type Kind struct {
	// ID is the single-letter identifier for the kind
	ID KindID

	// Name is the display name of the kind
	Name string
}

// AllKinds returns the fixed set of kinds, in seeding order
func AllKinds() []*Kind {
	return []*Kind{
		{ID: KindHuman, Name: "Human"},
		{ID: KindComputer, Name: "Computer"},
		{ID: KindRobot, Name: "Robot"},
		{ID: KindRandomness, Name: "Randomness"},
	}
}
