// Package genetic searches for ASCII art with an evolutionary algorithm
// scored by pixel comparison against a prepared target image.
package genetic

import (
	"bytes"
	"math/rand"
)

// Charset is the set of characters the search may place. It skews toward
// shapes with distinct pixel footprints.
var Charset = []byte(" <>,./?\\|[]{}-_=+AvViIoOxXwWM`~;:'\"!@#$%^&*()8")

var nonSpace = func() []byte {
	out := make([]byte, 0, len(Charset)-1)
	for _, c := range Charset {
		if c != ' ' {
			out = append(out, c)
		}
	}
	return out
}()

// Allowed reports whether c is in the search charset.
func Allowed(c byte) bool {
	return bytes.IndexByte(Charset, c) >= 0
}

// seedNoise is the share of random characters mixed into a seeded grid.
const seedNoise = 0.05

// Individual is one candidate character grid and its last measured fitness.
type Individual struct {
	Chars   []byte
	Fitness float64
}

// NewRandom builds a random individual. backgroundProb is the chance of each
// position being a space, so sparse targets start from mostly empty grids.
func NewRandom(size int, backgroundProb float64, rng *rand.Rand) *Individual {
	chars := make([]byte, size)
	for i := range chars {
		if rng.Float64() < backgroundProb {
			chars[i] = ' '
		} else {
			chars[i] = nonSpace[rng.Intn(len(nonSpace))]
		}
	}
	return &Individual{Chars: chars}
}

// NewSeeded fills the grid with initChar, sprinkling 5% random characters.
// Characters outside the charset fall back to space.
func NewSeeded(size int, initChar byte, rng *rand.Rand) *Individual {
	if !Allowed(initChar) {
		initChar = ' '
	}
	chars := make([]byte, size)
	for i := range chars {
		if rng.Float64() < seedNoise {
			chars[i] = Charset[rng.Intn(len(Charset))]
		} else {
			chars[i] = initChar
		}
	}
	return &Individual{Chars: chars}
}

// Clone copies the individual, fitness included.
func (in *Individual) Clone() *Individual {
	chars := make([]byte, len(in.Chars))
	copy(chars, in.Chars)
	return &Individual{Chars: chars, Fitness: in.Fitness}
}

// Crossover performs uniform crossover with other, swapping each position
// with probability rate, and returns the two children.
func (in *Individual) Crossover(other *Individual, rate float64, rng *rand.Rand) (*Individual, *Individual) {
	c1 := make([]byte, len(in.Chars))
	c2 := make([]byte, len(other.Chars))
	copy(c1, in.Chars)
	copy(c2, other.Chars)

	for i := 0; i < min(len(c1), len(c2)); i++ {
		if rng.Float64() < rate {
			c1[i], c2[i] = other.Chars[i], in.Chars[i]
		}
	}
	return &Individual{Chars: c1}, &Individual{Chars: c2}
}

// Mutate replaces each position with probability rate, biased toward spaces
// by backgroundProb the same way NewRandom is.
func (in *Individual) Mutate(rate, backgroundProb float64, rng *rand.Rand) {
	for i := range in.Chars {
		if rng.Float64() >= rate {
			continue
		}
		if rng.Float64() < backgroundProb {
			in.Chars[i] = ' '
		} else {
			in.Chars[i] = nonSpace[rng.Intn(len(nonSpace))]
		}
	}
}
