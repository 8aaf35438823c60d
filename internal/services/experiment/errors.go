package experiment

// ExperimentError is a custom error type for experiment flow errors
type ExperimentError string

// Error implements the error interface
func (e ExperimentError) Error() string {
	return string(e)
}

// Define errors
const (
	// ErrNoActiveRound means the session has no opponent assigned, so
	// there is no round to play, record or review.
	ErrNoActiveRound ExperimentError = "no active round for this session"

	// ErrOpponentConflict means a second opponent assignment was
	// attempted while one is still active. Internal-consistency error.
	ErrOpponentConflict ExperimentError = "session already has an opponent assigned"

	// ErrScheduleExhausted means an offer draw was requested with no
	// eligible amounts left. Internal-consistency error; the schedule
	// covers exactly the session's round count.
	ErrScheduleExhausted ExperimentError = "offer schedule exhausted"

	ErrNilConfig        ExperimentError = "config cannot be nil"
	ErrNilCatalogRepo   ExperimentError = "catalog repository cannot be nil"
	ErrNilPlayerRepo    ExperimentError = "player repository cannot be nil"
	ErrNilRoundRepo     ExperimentError = "round repository cannot be nil"
	ErrNilSessionRepo   ExperimentError = "session repository cannot be nil"
	ErrNilClock         ExperimentError = "clock cannot be nil"
	ErrNilUUIDGenerator ExperimentError = "UUID generator cannot be nil"
	ErrNilPicker        ExperimentError = "picker cannot be nil"
)
