package cards

import (
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// IDGenerator hands out strictly increasing snowflake ids.
type IDGenerator struct {
	mu   sync.Mutex
	last snowflake.ID
	now  func() time.Time
}

func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

func (g *IDGenerator) Next() snowflake.ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := snowflake.New(g.now())
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// Observe makes sure later ids sort after id.
func (g *IDGenerator) Observe(id snowflake.ID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id > g.last {
		g.last = id
	}
}
