package appliance

import (
	"fmt"
	"math"
	"strconv"
)

// Baker's percentages that do not depend on the recipe.
const (
	yeastPct = 1.0
	saltPct  = 2.0
)

// Progress thresholds against the target water weight.
const (
	perfectToleranceG = 5.0
	startedFraction   = 0.1
)

type breadSession struct {
	recipe Recipe
	base   *float64
}

// Stage is the hydration progress classification.
type Stage int

const (
	StageAwaitingBase Stage = iota
	StageAwaitingTarget
	StagePerfect
	StageOver
	StageRemaining
)

func (st Stage) String() string {
	switch st {
	case StageAwaitingTarget:
		return "AWAITING_TARGET"
	case StagePerfect:
		return "PERFECT"
	case StageOver:
		return "OVER"
	case StageRemaining:
		return "REMAINING"
	default:
		return "AWAITING_BASE"
	}
}

// TargetWater is base × pct / 100, rounded half-up to a whole gram.
func TargetWater(base, hydrationPct float64) int {
	return int(roundHalfUp(base * hydrationPct / 100))
}

// Classify maps the current water weight w against the target. Order matters:
// the not-started check wins over the tolerance band.
func Classify(w float64, targetWater int) Stage {
	target := float64(targetWater)
	switch {
	case w < startedFraction*target:
		return StageAwaitingTarget
	case math.Abs(w-target) < perfectToleranceG:
		return StagePerfect
	case w > target:
		return StageOver
	default:
		return StageRemaining
	}
}

// Guidance is the derived bread readout while a base is set.
type Guidance struct {
	Base        float64
	TargetWater int
	Yeast       float64
	Salt        float64
	Stage       Stage
	OverBy      float64 // w - target, meaningful for StageOver
	CurrentPct  float64 // w / base × 100
}

func (s *Session) flourChannel() *Channel {
	return s.channels[0]
}

// SetBase captures the flour weight on the main channel. Only available in
// BREAD mode.
func (s *Session) SetBase() Result {
	return s.guarded(func() Result {
		if s.mode != ModeBread {
			return Result{Outcome: OutcomeInert}
		}
		c := s.flourChannel()
		w := c.Net()
		if w <= 0 {
			return s.notMet("Error: place flour on the scale first")
		}
		s.bread.base = &w
		return s.applied(SeveritySuccess,
			fmt.Sprintf("Flour base locked: %sg", formatGrams(w, c.spec.Resolution)),
			map[string]any{"base_weight": w, "recipe": s.bread.recipe.Name})
	})
}

// BaseWeight reports the captured flour base, if any.
func (s *Session) BaseWeight() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bread.base == nil {
		return 0, false
	}
	return *s.bread.base, true
}

// Recipe returns the selected bread recipe.
func (s *Session) Recipe() Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bread.recipe
}

// Guidance derives water/yeast/salt targets and progress. ok is false while
// no base is set.
func (s *Session) Guidance() (g Guidance, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guidance()
}

func (s *Session) guidance() (Guidance, bool) {
	if s.bread.base == nil {
		return Guidance{Stage: StageAwaitingBase}, false
	}
	base := *s.bread.base
	w := s.flourChannel().Net()
	target := TargetWater(base, s.bread.recipe.HydrationPct)
	return Guidance{
		Base:        base,
		TargetWater: target,
		Yeast:       base * yeastPct / 100,
		Salt:        base * saltPct / 100,
		Stage:       Classify(w, target),
		OverBy:      w - float64(target),
		CurrentPct:  w / base * 100,
	}, true
}

// additiveText formats yeast/salt. The single variant shows whole grams with
// "<1" for sub-gram amounts; the dual variant shows one decimal.
func (s *Session) additiveText(grams float64) string {
	if s.variant == VariantDual {
		return strconv.FormatFloat(roundTo(grams, 0.1), 'f', 1, 64)
	}
	whole := roundHalfUp(grams)
	if whole == 0 {
		return "<1"
	}
	return strconv.FormatFloat(whole, 'f', 0, 64)
}

func guidanceText(g Guidance, resolution float64) (text, tone string) {
	switch g.Stage {
	case StageAwaitingTarget:
		return fmt.Sprintf("Target water: %dg", g.TargetWater), "neutral"
	case StagePerfect:
		return "Water is perfect", "success"
	case StageOver:
		return fmt.Sprintf("Too much water: +%sg", formatGrams(g.OverBy, resolution)), "error"
	case StageRemaining:
		return fmt.Sprintf("Target remaining: %dg", g.TargetWater), "neutral"
	default:
		return "Waiting for base (Set Base)", "neutral"
	}
}
