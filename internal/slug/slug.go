package slug

import "crypto/rand"

// Alphabet is the base-36 character set slugs are drawn from.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// DefaultLength gives ~2 billion combinations, enough that collisions are
// rare. They still happen: the generator makes no uniqueness guarantee, the
// store's write path rejects duplicates and the caller retries.
const DefaultLength = 6

// Generator produces random short identifiers.
type Generator struct {
	length int
}

// NewGenerator creates a generator producing slugs of the given length.
// Non-positive lengths fall back to DefaultLength.
func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Generate returns a random slug over Alphabet.
func (g *Generator) Generate() string {
	b := make([]byte, g.length)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = Alphabet[int(b[i])%len(Alphabet)]
	}
	return string(b)
}

// Length returns the configured slug length.
func (g *Generator) Length() int {
	return g.length
}
