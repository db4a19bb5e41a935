package appliance

import (
	"math"
	"time"

	"kitchen_lab/internal/models"
)

// Snapshot renders the whole session for the presentation layer. The active
// notification is left for the notification sink to fill in.
func (s *Session) Snapshot() models.ApplianceState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := models.ApplianceState{
		Variant:       s.variant.String(),
		PoweredOn:     s.power.on,
		Muted:         s.power.muted,
		Mode:          s.mode.String(),
		TimerMenuOpen: s.timerMenuOpen,
		Scales:        make([]models.ScaleReading, 0, len(s.channels)),
		Bread:         s.breadView(),
		Diet:          s.dietView(),
		Timer: models.TimerView{
			Phase:     s.timer.phase.String(),
			Direction: s.timer.dir.String(),
			Seconds:   s.timer.seconds,
			Initial:   s.timer.initial,
			Display:   FormatClock(s.timer.seconds),
		},
		UpdatedAt: time.Now().UTC(),
	}
	for _, c := range s.channels {
		st.Scales = append(st.Scales, models.ScaleReading{
			ID:         string(c.id),
			Raw:        c.raw,
			Tare:       c.tare,
			Net:        c.Net(),
			NetDisplay: c.NetDisplay(),
			Capacity:   c.spec.Capacity,
			Resolution: c.spec.Resolution,
		})
	}
	return st
}

func (s *Session) breadView() models.BreadView {
	v := models.BreadView{
		Recipe:       s.bread.recipe.Name,
		HydrationPct: s.bread.recipe.HydrationPct,
	}
	g, ok := s.guidance()
	res := s.flourChannel().spec.Resolution
	v.Stage = g.Stage.String()
	v.Guidance, v.Tone = guidanceText(g, res)
	if !ok {
		return v
	}

	base := g.Base
	target := g.TargetWater
	pct := math.Floor(g.CurrentPct*10+0.5) / 10
	v.BaseWeight = &base
	v.TargetWater = &target
	v.CurrentPct = &pct
	v.Yeast = s.additiveText(g.Yeast)
	v.Salt = s.additiveText(g.Salt)
	if g.Stage == StageOver {
		over := roundTo(g.OverBy, res)
		v.OverBy = &over
	}
	return v
}

func (s *Session) dietView() models.DietView {
	v := models.DietView{Totals: toModelMacros(s.diet.totals)}
	if e := s.diet.last; e != nil {
		v.LastEntry = &models.DietEntry{
			Food:    e.Food,
			Weight:  e.Weight,
			Channel: string(e.Channel),
			Macros:  toModelMacros(e.Macros),
		}
	}
	return v
}

func toModelMacros(m Macros) models.Macros {
	return models.Macros{Cal: m.Cal, Protein: m.Protein, Carbs: m.Carbs, Fat: m.Fat}
}
