package appliance

// AdvanceMode cycles HIDDEN -> DIET -> BREAD -> HIDDEN. Every transition drops
// the bread base and closes the timer settings view.
func (s *Session) AdvanceMode() Result {
	return s.guarded(func() Result {
		s.mode = s.mode.next()
		s.bread.base = nil
		s.timerMenuOpen = false
		return Result{Outcome: OutcomeApplied}
	})
}

// SelectRecipe switches the bread recipe, which invalidates any captured base.
func (s *Session) SelectRecipe(name string) (Result, error) {
	r, err := s.findRecipe(name)
	if err != nil {
		return Result{}, err
	}
	return s.guarded(func() Result {
		s.bread.recipe = r
		s.bread.base = nil
		return Result{Outcome: OutcomeApplied}
	}), nil
}

// ToggleTimerMenu opens or closes the timer settings view.
func (s *Session) ToggleTimerMenu() Result {
	return s.guarded(func() Result {
		s.timerMenuOpen = !s.timerMenuOpen
		return Result{Outcome: OutcomeApplied}
	})
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) TimerMenuOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timerMenuOpen
}
