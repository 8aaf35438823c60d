package experiment

import (
	"github.com/vera24m/ultimatum-game/internal/models"
)

// baseOffers is the per-framing offer schedule for ordinary kinds.
// The Randomness kind plays each amount twice across the whole session
// instead, with every offer presented as randomly generated.
var baseOffers = []int{10, 20, 30, 50}

// isHalfBoundary reports whether a round index opens one of the two
// halves of the session.
func (s *service) isHalfBoundary(roundIndex int) bool {
	return roundIndex == 1 || roundIndex == s.numRounds/2+1
}

// currentFraming returns the framing for the given round, deciding it
// when needed. The first half gets a coin flip; the first computation
// in the second half flips the cached value exactly once, so the two
// halves are guaranteed opposite framings. Mutates the scratch; the
// caller persists it.
func (s *service) currentFraming(scratch *models.Scratch, roundIndex int) bool {
	if scratch.Intentional == nil {
		v := s.picker.Flip()
		scratch.Intentional = &v
	}

	if roundIndex == s.numRounds/2+1 && !scratch.FramingFlipped {
		v := !*scratch.Intentional
		scratch.Intentional = &v
		scratch.FramingFlipped = true
	}

	return *scratch.Intentional
}

// eligibleOffers returns the amounts still available to draw, given the
// persisted history. Ordinary kinds exclude amounts already offered
// under the same framing; Randomness excludes used amounts from its
// doubled schedule regardless of framing.
func eligibleOffers(history []*models.Round, kindID models.KindID, intentional bool) []int {
	var schedule []int
	if kindID == models.KindRandomness {
		schedule = make([]int, 0, len(baseOffers)*2)
		for _, amount := range baseOffers {
			schedule = append(schedule, amount, amount)
		}
	} else {
		schedule = append([]int(nil), baseOffers...)
	}

	for _, r := range history {
		if kindID != models.KindRandomness && r.Intentional != intentional {
			continue
		}
		for i, amount := range schedule {
			if amount == r.AmountOffered {
				schedule = append(schedule[:i], schedule[i+1:]...)
				break
			}
		}
	}

	return schedule
}
