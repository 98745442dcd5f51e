package core

import (
	"testing"
	"time"
)

func TestStepClock(t *testing.T) {
	origin := time.Unix(0, 0)
	c := NewStepClock(origin, 50)

	if !c.Now().Equal(origin) {
		t.Errorf("Now() before any tick = %v, expected origin", c.Now())
	}

	for range 5 {
		c.Next()
	}

	if got := c.Now().Sub(origin); got != 100*time.Millisecond {
		t.Errorf("elapsed = %v, expected 100ms", got)
	}

	// Now does not advance.
	if got := c.Now().Sub(origin); got != 100*time.Millisecond {
		t.Errorf("Now() advanced the clock to %v", got)
	}
}

func TestStepClockDefaultRate(t *testing.T) {
	c := NewStepClock(time.Unix(0, 0), 0)
	c.Next()
	if got := c.Now().Sub(time.Unix(0, 0)); got != time.Second/60 {
		t.Errorf("default step = %v, expected 1/60s", got)
	}
}
