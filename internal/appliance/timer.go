package appliance

import "fmt"

type timerState struct {
	phase   Phase
	dir     Direction
	seconds int // elapsed (UP) or remaining (DOWN)
	initial int
}

// TimerStatus is a copy of the timer state.
type TimerStatus struct {
	Phase     Phase
	Direction Direction
	Seconds   int
	Initial   int
}

// StartCountUp starts a fresh count-up from IDLE or RINGING. A PAUSED timer
// resumes where it stopped; a RUNNING one is left alone.
func (s *Session) StartCountUp() Result {
	return s.guarded(func() Result {
		switch s.timer.phase {
		case PhaseIdle, PhaseRinging:
			s.timer.dir = DirectionUp
			s.timer.seconds = 0
			s.timer.phase = PhaseRunning
		case PhasePaused:
			s.timer.phase = PhaseRunning
		}
		return Result{Outcome: OutcomeApplied}
	})
}

// StartCountdown always restarts, whatever the current phase.
func (s *Session) StartCountdown(minutes int) (Result, error) {
	if minutes <= 0 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDuration, minutes)
	}
	return s.guarded(func() Result {
		s.timer = timerState{
			phase:   PhaseRunning,
			dir:     DirectionDown,
			seconds: minutes * 60,
			initial: minutes * 60,
		}
		return Result{Outcome: OutcomeApplied}
	}), nil
}

func (s *Session) PauseTimer() Result {
	return s.guarded(func() Result {
		if s.timer.phase == PhaseRunning {
			s.timer.phase = PhasePaused
		}
		return Result{Outcome: OutcomeApplied}
	})
}

func (s *Session) ResumeTimer() Result {
	return s.guarded(func() Result {
		if s.timer.phase == PhasePaused {
			s.timer.phase = PhaseRunning
		}
		return Result{Outcome: OutcomeApplied}
	})
}

// ResetTimer returns to IDLE with zero seconds. Direction and initial value
// are kept for display.
func (s *Session) ResetTimer() Result {
	return s.guarded(func() Result {
		s.timer.phase = PhaseIdle
		s.timer.seconds = 0
		return Result{Outcome: OutcomeApplied}
	})
}

// Armed reports whether the one-second tick should be scheduled.
func (s *Session) Armed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.armed()
}

func (s *Session) armed() bool {
	return s.timer.phase == PhaseRunning && s.power.on
}

// Tick advances the timer by one second. It does nothing unless the timer is
// running and the appliance is on, and reports whether it advanced.
func (s *Session) Tick() bool {
	res := s.do(func() Result {
		if !s.armed() {
			return Result{Outcome: OutcomeInert}
		}
		if s.timer.dir == DirectionUp {
			s.timer.seconds++
			return Result{Outcome: OutcomeApplied}
		}
		if s.timer.seconds <= 1 {
			s.timer.seconds = 0
			s.timer.phase = PhaseRinging
			return s.applied(SeverityInfo, "Timer finished", map[string]any{"muted": s.power.muted})
		}
		s.timer.seconds--
		return Result{Outcome: OutcomeApplied}
	})
	return res.Outcome == OutcomeApplied
}

func (s *Session) TimerStatus() TimerStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return TimerStatus{
		Phase:     s.timer.phase,
		Direction: s.timer.dir,
		Seconds:   s.timer.seconds,
		Initial:   s.timer.initial,
	}
}

// FormatClock renders seconds as mm:ss; minutes are not wrapped at 60.
func FormatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
