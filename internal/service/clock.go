package service

import (
	"context"
	"time"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/logger"
)

const defaultTick = time.Second

// ClockService is the scheduled one-second task behind the timer. The ticker
// only exists while the session is armed (timer RUNNING and power on); it is
// re-evaluated after every session change.
type ClockService struct {
	session *appliance.Session
	tick    time.Duration
	log     *logger.Logger
}

func NewClockService(session *appliance.Session, tick time.Duration, log *logger.Logger) *ClockService {
	if tick <= 0 {
		tick = defaultTick
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ClockService{session: session, tick: tick, log: log}
}

// Run ticks the session until ctx is cancelled.
func (c *ClockService) Run(ctx context.Context) {
	changed := make(chan struct{}, 1)
	c.session.SetOnChange(func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer c.session.SetOnChange(nil)

	var (
		ticker *time.Ticker
		fire   <-chan time.Time
	)
	disarm := func() {
		if ticker != nil {
			ticker.Stop()
			ticker, fire = nil, nil
			c.log.Debugw("clock_disarmed")
		}
	}
	rearm := func() {
		armed := c.session.Armed()
		switch {
		case armed && ticker == nil:
			ticker = time.NewTicker(c.tick)
			fire = ticker.C
			c.log.Debugw("clock_armed", "tick", c.tick)
		case !armed:
			disarm()
		}
	}
	defer disarm()

	rearm()
	for {
		select {
		case <-ctx.Done():
			return
		case <-changed:
			rearm()
		case <-fire:
			c.session.Tick()
		}
	}
}
