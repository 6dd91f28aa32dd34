package behavioral

import (
	"math/rand"
	"sync"
	"time"
)

const DefaultCount = 3

// Selector picks behavioral questions at random. The random source is injected so tests can
// pin the selection.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// ForRole shuffles the questions relevant to role and returns the first count of them.
// Fewer are returned when the role has fewer relevant questions.
func (s *Selector) ForRole(role string, count int) []Question {
	relevant := make(map[string]bool)
	for _, c := range CategoriesForRole(role) {
		relevant[c] = true
	}
	var pool []Question
	for _, q := range catalog {
		if relevant[q.Category] {
			pool = append(pool, q)
		}
	}
	return s.pick(pool, count)
}

// Random returns count questions drawn from the whole catalog.
func (s *Selector) Random(count int) []Question {
	return s.pick(All(), count)
}

func (s *Selector) pick(pool []Question, count int) []Question {
	if count <= 0 {
		count = DefaultCount
	}
	s.mu.Lock()
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	s.mu.Unlock()
	if count > len(pool) {
		count = len(pool)
	}
	return pool[:count]
}
