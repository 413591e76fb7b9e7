// Package sampler provides deterministic sampling over index ranges,
// built on top of the same *rand.Rand each agent already carries so
// simulation runs stay reproducible from a single seed. Grounded on
// luxfi-consensus's sampler package, trimmed to uniform
// sampling-without-replacement, the only mode this repo exercises.
package sampler

import "math/rand"

// Uniform samples distinct indices from [0, count) without replacement.
type Uniform interface {
	Initialize(count int) error
	Sample(size int) ([]int, bool)
}

type uniform struct {
	count int
	rng   *rand.Rand
}

// New wraps rng (an agent's own deterministic source) in a Uniform
// sampler, rather than seeding a fresh one, so callers don't fork the
// simulation's random stream.
func New(rng *rand.Rand) Uniform {
	return &uniform{rng: rng}
}

func (u *uniform) Initialize(count int) error {
	u.count = count
	return nil
}

// Sample returns size distinct indices in [0, count), or false if size
// exceeds count.
func (u *uniform) Sample(size int) ([]int, bool) {
	if size > u.count {
		return nil, false
	}
	if size == 0 {
		return []int{}, true
	}

	indices := make([]int, size)
	selected := make(map[int]bool, size)
	for i := 0; i < size; i++ {
		for {
			idx := u.rng.Intn(u.count)
			if !selected[idx] {
				indices[i] = idx
				selected[idx] = true
				break
			}
		}
	}
	return indices, true
}
