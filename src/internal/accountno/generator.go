// Package accountno issues unique fixed-length numeric account identifiers.
package accountno

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const DefaultLength = 12

// Generator draws fixed-length numeric account numbers from a seeded random
// source, re-drawing on collision against everything it has issued or
// reserved. It never returns a duplicate for its lifetime; the identifier
// space is large enough that the re-draw loop terminates immediately in
// practice.
type Generator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	issued map[string]struct{}
	length int
}

func NewGenerator(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		issued: make(map[string]struct{}),
		length: length,
	}
}

// Generate returns a fresh account number.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		var b strings.Builder
		b.Grow(g.length)
		for i := 0; i < g.length; i++ {
			b.WriteByte(byte('0' + g.rnd.Intn(10)))
		}
		number := b.String()
		if _, taken := g.issued[number]; taken {
			continue
		}
		g.issued[number] = struct{}{}
		return number
	}
}

// Reserve marks an already-assigned number, so numbers loaded from a snapshot
// cannot be issued again.
func (g *Generator) Reserve(number string) {
	number = strings.TrimSpace(number)
	if number == "" {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued[number] = struct{}{}
}

// Issued reports how many numbers the generator is tracking.
func (g *Generator) Issued() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.issued)
}
