package services

import (
	"math/rand/v2"

	"coffee-pickup/models"
)

// PickupCount is how many members are sent to collect the coffee.
const PickupCount = 3

// Rand is the random source used for pickup draws. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// SelectPickupMembers draws up to k members with distinct MMIDs. Each draw is
// uniform over the remaining pool, then every entry of the drawn MMID leaves
// the pool. members is not modified. A nil r uses the global source.
func SelectPickupMembers(members []models.PickupMember, k int, r Rand) []models.PickupMember {
	if r == nil {
		r = globalRand{}
	}
	selected := make([]models.PickupMember, 0, k)
	remaining := make([]models.PickupMember, len(members))
	copy(remaining, members)

	for len(selected) < k && len(remaining) > 0 {
		picked := remaining[r.IntN(len(remaining))]
		selected = append(selected, picked)

		kept := remaining[:0]
		for _, m := range remaining {
			if m.MMID != picked.MMID {
				kept = append(kept, m)
			}
		}
		remaining = kept
	}
	return selected
}
