package generator

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// tmpSuffix returns a fresh random suffix for an atomic-write temp file
// (<final-path>.<uuid>.tmp), adapted from the teacher's
// schema.UUIDGenerator (schema/generators.go).
func tmpSuffix() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate tmp suffix: %w", err)
	}
	return id.String(), nil
}

// runIDGenerator mints one sortable correlation id per CLI invocation,
// adapted from the teacher's schema.ULIDGenerator (schema/generators.go).
type runIDGenerator struct {
	entropy *ulid.MonotonicEntropy
	mu      sync.Mutex
}

func newRunIDGenerator() *runIDGenerator {
	return &runIDGenerator{entropy: ulid.Monotonic(rand.Reader, 0)}
}

// NewRunID mints a new run id, attached to every diagnostic line this
// generate/parse invocation produces so concurrent CLI invocations' stderr
// output can be told apart and sorted by start time.
func (g *runIDGenerator) NewRunID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now()), g.entropy)
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return id.String(), nil
}

var defaultRunIDGenerator = newRunIDGenerator()

// NewRunID mints a new run id from the package-level generator.
func NewRunID() (string, error) {
	return defaultRunIDGenerator.NewRunID()
}
