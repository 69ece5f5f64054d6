package epigenetics

import (
	"crypto/rand"
	"math/big"
)

// randFloatResolution is the granularity of the default random roll.
const randFloatResolution = 1000000

// cryptoRandFloat returns a uniform float64 in [0,1) backed by crypto/rand.
// Safe for concurrent use without shared state.
func cryptoRandFloat() float64 {
	n, err := rand.Int(rand.Reader, big.NewInt(randFloatResolution))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is
		// broken; fall back to never granting the roll.
		return 1
	}
	return float64(n.Int64()) / float64(randFloatResolution)
}
