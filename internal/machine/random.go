package machine

import (
	"math/rand/v2"
	"time"
)

// Random is the source of random bytes for the CXNN instruction.
// Implementations must return values uniformly distributed over 0-255.
type Random interface {
	Byte() uint8
}

type pcgRandom struct {
	rng *rand.Rand
}

func newRandom(seed uint64) *pcgRandom {
	return &pcgRandom{
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

func (r *pcgRandom) Byte() uint8 {
	return uint8(r.rng.UintN(256))
}

func timeSeed() uint64 {
	return uint64(time.Now().UnixNano())
}
