package appliance

import "fmt"

// subChannelMinNet is the net weight the sub platform must exceed before the
// ledger prefers it over the main platform.
const subChannelMinNet = 0.1

// Macros are calories, protein, carbohydrates and fat.
type Macros struct {
	Cal     float64
	Protein float64
	Carbs   float64
	Fat     float64
}

func (m Macros) scaled(f float64) Macros {
	return Macros{Cal: m.Cal * f, Protein: m.Protein * f, Carbs: m.Carbs * f, Fat: m.Fat * f}
}

func (m Macros) plus(o Macros) Macros {
	return Macros{Cal: m.Cal + o.Cal, Protein: m.Protein + o.Protein, Carbs: m.Carbs + o.Carbs, Fat: m.Fat + o.Fat}
}

// Entry is the scaled contribution of one food addition.
type Entry struct {
	Food    string
	Weight  float64
	Channel ChannelID
	Macros
}

type dietLedger struct {
	totals Macros
	last   *Entry
}

// AddFood weighs the food, adds its scaled macros to the running totals,
// replaces the last entry and zeroes the channel that supplied the weight.
// Only available in DIET mode.
func (s *Session) AddFood(name string) (Result, error) {
	food, err := s.findFood(name)
	if err != nil {
		return Result{}, err
	}
	return s.guarded(func() Result {
		if s.mode != ModeDiet {
			return Result{Outcome: OutcomeInert}
		}
		c := s.dietSource()
		if c == nil {
			return s.notMet("Error: place food on the scale first")
		}

		w := c.Net()
		added := food.Facts.scaled(w / 100)
		s.diet.totals = s.diet.totals.plus(added)
		s.diet.last = &Entry{Food: food.Name, Weight: w, Channel: c.id, Macros: added}
		c.zero()

		msg := fmt.Sprintf("Added %sg %s", formatGrams(w, c.spec.Resolution), food.Name)
		if s.variant == VariantDual {
			msg = fmt.Sprintf("%s (%s)", msg, c.label())
		}
		return s.applied(SeveritySuccess, msg, map[string]any{
			"food":    food.Name,
			"weight":  w,
			"channel": string(c.id),
		})
	}), nil
}

// dietSource picks the channel whose weight is used for a food addition, or
// nil when none carries a usable load.
func (s *Session) dietSource() *Channel {
	main := s.channels[0]
	if s.variant == VariantDual {
		if sub := s.channels[1]; sub.Net() > subChannelMinNet {
			return sub
		}
	}
	if main.Net() > 0 {
		return main
	}
	return nil
}

// ClearLedger zeroes the totals and forgets the last entry. Only available in
// DIET mode.
func (s *Session) ClearLedger() Result {
	return s.guarded(func() Result {
		if s.mode != ModeDiet {
			return Result{Outcome: OutcomeInert}
		}
		s.diet = dietLedger{}
		return s.applied(SeverityInfo, "Today's log cleared", nil)
	})
}

func (s *Session) Totals() Macros {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.diet.totals
}

// LastEntry returns a copy of the most recent addition, or nil.
func (s *Session) LastEntry() *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.diet.last == nil {
		return nil
	}
	e := *s.diet.last
	return &e
}
