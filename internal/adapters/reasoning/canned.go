package reasoning

import (
	"math/rand"
	"sync"
	"time"

	"github.com/derslik/derslik/internal/domain/intent"
	"github.com/derslik/derslik/internal/domain/model"
)

// Canned serves the static per-intent behavior tier. It never fails,
// which is the point: it backstops every remote provider.
type Canned struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// CannedOption applies a configuration option to Canned.
type CannedOption func(*Canned)

// WithSeed fixes the template selection order, for tests.
func WithSeed(seed int64) CannedOption {
	return func(c *Canned) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// NewCanned creates the static behavior tier.
func NewCanned(opts ...CannedOption) *Canned {
	c := &Canned{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pick returns one of the intent's templates, varying the choice so
// repeated fallbacks do not sound robotic.
func (c *Canned) Pick(intentLabel string) model.Suggestion {
	templates := intent.Responses(intentLabel)
	if len(templates) == 0 {
		return Universal()
	}

	c.mu.Lock()
	i := c.rng.Intn(len(templates))
	c.mu.Unlock()

	return templates[i]
}
