package appliance

type powerState struct {
	on    bool
	muted bool
}

// TogglePower is the only action that runs while the appliance is off.
// Powering on auto-zeroes every channel. Powering off leaves the timer phase
// untouched; ticking simply stops until power returns.
func (s *Session) TogglePower() Result {
	return s.do(func() Result {
		if s.power.on {
			s.power.on = false
			return s.applied(SeverityInfo, "Shutting down...", nil)
		}
		s.power.on = true
		s.zeroAll()
		return s.applied(SeveritySuccess, "System starting...", nil)
	})
}

func (s *Session) ToggleMute() Result {
	return s.guarded(func() Result {
		s.power.muted = !s.power.muted
		if s.power.muted {
			return s.applied(SeverityInfo, "Mute on", map[string]any{"muted": true})
		}
		return s.applied(SeverityInfo, "Sound restored", map[string]any{"muted": false})
	})
}

// SetStandby only acknowledges; no standby countdown exists.
func (s *Session) SetStandby() Result {
	return s.guarded(func() Result {
		return s.applied(SeverityInfo, "Standby extended to 30 minutes", nil)
	})
}

func (s *Session) PoweredOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.power.on
}

func (s *Session) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.power.muted
}
