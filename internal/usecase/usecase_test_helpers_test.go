package usecase

import (
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
)

type sequenceIDGen struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func (g *sequenceIDGen) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testPolicy() challenge.Policy {
	return challenge.NewPolicy(time.UTC)
}

func testLogger() *logging.Logger {
	return logging.NewNop()
}
