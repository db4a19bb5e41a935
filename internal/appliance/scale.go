package appliance

import (
	"math"
	"strconv"
)

// ChannelID names a weighing platform.
type ChannelID string

const (
	ChannelMain ChannelID = "main"
	ChannelSub  ChannelID = "sub"
)

// ChannelSpec is the fixed hardware description of a platform (grams).
type ChannelSpec struct {
	Capacity   float64
	Resolution float64
}

// Channel is one platform: raw reading minus tare offset gives net weight.
type Channel struct {
	id   ChannelID
	spec ChannelSpec
	raw  float64
	tare float64
}

func newChannel(id ChannelID, spec ChannelSpec) *Channel {
	return &Channel{id: id, spec: spec}
}

// Net is kept at full precision; it may be negative.
func (c *Channel) Net() float64 {
	return c.raw - c.tare
}

// NetDisplay is Net rounded to the channel resolution.
func (c *Channel) NetDisplay() float64 {
	return roundTo(c.Net(), c.spec.Resolution)
}

func (c *Channel) zero() {
	c.tare = c.raw
}

func (c *Channel) label() string {
	if c.id == ChannelSub {
		return "Sub scale"
	}
	return "Main scale"
}

// Ingest sets the raw reading of a channel. It is never power-gated; range
// clamping is the job of the input source.
func (s *Session) Ingest(id ChannelID, value float64) error {
	c, err := s.channel(id)
	if err != nil {
		return err
	}
	s.do(func() Result {
		c.raw = value
		return Result{Outcome: OutcomeApplied}
	})
	return nil
}

// Tare captures the current raw reading of one channel as its offset.
func (s *Session) Tare(id ChannelID) (Result, error) {
	c, err := s.channel(id)
	if err != nil {
		return Result{}, err
	}
	return s.guarded(func() Result {
		c.zero()
		return s.applied(SeverityInfo, c.label()+" zeroed", map[string]any{"channel": string(c.id)})
	}), nil
}

// TareAll zeroes every channel at once and emits a single notice.
func (s *Session) TareAll() Result {
	return s.guarded(func() Result {
		s.zeroAll()
		msg := "Scale zeroed"
		if len(s.channels) > 1 {
			msg = "All scales zeroed"
		}
		return s.applied(SeverityInfo, msg, nil)
	})
}

func (s *Session) zeroAll() {
	for _, c := range s.channels {
		c.zero()
	}
}

// Net returns the full-precision net weight of a channel.
func (s *Session) Net(id ChannelID) (float64, error) {
	c, err := s.channel(id)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.Net(), nil
}

// Capacity returns the configured capacity of a channel.
func (s *Session) Capacity(id ChannelID) (float64, error) {
	c, err := s.channel(id)
	if err != nil {
		return 0, err
	}
	return c.spec.Capacity, nil
}

// roundTo rounds half-up to the nearest multiple of step.
func roundTo(v, step float64) float64 {
	if step <= 0 {
		return v
	}
	inv := 1 / step
	return math.Floor(v*inv+0.5) / inv
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// formatGrams renders v at the precision implied by step ("375", "4.5").
func formatGrams(v, step float64) string {
	var decimals int
	switch {
	case step >= 1:
	case step >= 0.1:
		decimals = 1
	default:
		decimals = 2
	}
	return strconv.FormatFloat(roundTo(v, step), 'f', decimals, 64)
}
