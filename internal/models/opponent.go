package models

// Opponent represents one member of the fixed opponent pool
type Opponent struct {
	// ID is the unique identifier for the opponent
	ID string

	// KindID is the category this opponent belongs to
	KindID KindID

	// Picture is the image stem shown for this opponent, e.g. "c_3"
	Picture string
}
