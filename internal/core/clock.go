package core

import "time"

// StepClock derives simulation timestamps from the tick count, so that a run
// is reproducible from its seed and input alone.
type StepClock struct {
	origin time.Time
	step   time.Duration
	ticks  int64
}

// NewStepClock creates a clock advancing by 1/tickRate per tick.
func NewStepClock(origin time.Time, tickRate int) *StepClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &StepClock{
		origin: origin,
		step:   time.Second / time.Duration(tickRate),
	}
}

// Next advances the clock by one tick and returns the new time.
func (c *StepClock) Next() time.Time {
	c.ticks++
	return c.Now()
}

// Now returns the time of the current tick without advancing.
func (c *StepClock) Now() time.Time {
	return c.origin.Add(time.Duration(c.ticks) * c.step)
}
