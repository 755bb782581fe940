package memory

import (
	"fmt"
	"sync"
)

// Counter is a session-owned level source. Boards built without an explicit
// level take the counter's current level; the session advances it after
// each cleared board.
type Counter struct {
	mu      sync.Mutex
	current int
	max     int // 0 means no upper bound
}

// NewCounter creates a counter positioned at start (at least 1).
// max caps Next; 0 leaves it unbounded.
func NewCounter(start, max int) *Counter {
	if start < 1 {
		start = 1
	}
	if max > 0 && start > max {
		start = max
	}
	return &Counter{current: start, max: max}
}

// Current returns the current level.
func (c *Counter) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Max returns the level cap (0 if unbounded).
func (c *Counter) Max() int {
	return c.max
}

// HasNext reports whether Next would move to a new level.
func (c *Counter) HasNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.max == 0 || c.current < c.max
}

// Next advances to the following level and returns it.
// At the cap the level stays unchanged.
func (c *Counter) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.max == 0 || c.current < c.max {
		c.current++
	}
	return c.current
}

// Set moves the counter to level.
func (c *Counter) Set(level int) error {
	if level < 1 || (c.max > 0 && level > c.max) {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidLevel, level, c.max)
	}
	c.mu.Lock()
	c.current = level
	c.mu.Unlock()
	return nil
}
