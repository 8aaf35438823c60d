package draw

import (
	"math/rand"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_draw.go github.com/vera24m/ultimatum-game/internal/draw Picker

// Picker provides the uniform random choices the experiment depends on:
// category tie-breaks, opponent selection, offer draws and the framing
// coin flip. Behind an interface so tests can script the draws.
type Picker interface {
	// Intn returns a uniform random int in [0, n)
	Intn(n int) int

	// Flip returns a fair coin flip
	Flip() bool
}

// DefaultPicker implements Picker using a seedable rand source
type DefaultPicker struct {
	random *rand.Rand
}

// Config for the picker
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new picker
func New(cfg *Config) *DefaultPicker {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	source := rand.NewSource(seed)
	random := rand.New(source)

	return &DefaultPicker{
		random: random,
	}
}

// Intn returns a uniform random int in [0, n)
func (p *DefaultPicker) Intn(n int) int {
	if n < 1 {
		return 0
	}
	return p.random.Intn(n)
}

// Flip returns a fair coin flip
func (p *DefaultPicker) Flip() bool {
	return p.random.Intn(2) == 1
}
