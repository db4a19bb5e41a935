// Package appliance implements the control logic of a kitchen scale that
// doubles as a diet macro tracker and a bread hydration assistant, with an
// independent interval timer. All state lives in one Session guarded by one
// mutex; there are no package-level globals.
package appliance

import (
	"fmt"
	"sync"
)

// Recipe maps a named bread recipe to its hydration percentage.
type Recipe struct {
	Name         string
	HydrationPct float64
}

// Food maps a named food to its nutrition facts per 100 g.
type Food struct {
	Name  string
	Facts Macros
}

// Config is the static construction data of a session.
type Config struct {
	Variant Variant
	Main    ChannelSpec
	Sub     ChannelSpec // used by VariantDual only
	Recipes []Recipe    // first entry is the initial selection
	Foods   []Food
}

// Session owns every piece of appliance state.
type Session struct {
	mu sync.Mutex

	variant  Variant
	channels []*Channel // main first
	recipes  []Recipe
	foods    []Food

	power         powerState
	mode          Mode
	timerMenuOpen bool
	bread         breadSession
	diet          dietLedger
	timer         timerState

	sink     Sink
	onChange func()
	pending  []Notice
}

// New builds a powered-on session in HIDDEN mode with an idle timer.
// A nil sink discards notices.
func New(cfg Config, sink Sink) (*Session, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = discardSink{}
	}

	s := &Session{
		variant: cfg.Variant,
		recipes: append([]Recipe(nil), cfg.Recipes...),
		foods:   append([]Food(nil), cfg.Foods...),
		power:   powerState{on: true},
		mode:    ModeHidden,
		bread:   breadSession{recipe: cfg.Recipes[0]},
		sink:    sink,
	}
	s.channels = append(s.channels, newChannel(ChannelMain, cfg.Main))
	if cfg.Variant == VariantDual {
		s.channels = append(s.channels, newChannel(ChannelSub, cfg.Sub))
	}
	return s, nil
}

func validate(cfg Config) error {
	if cfg.Variant != VariantSingle && cfg.Variant != VariantDual {
		return fmt.Errorf("%w: variant %d", ErrInvalidConfig, int(cfg.Variant))
	}
	specs := []ChannelSpec{cfg.Main}
	if cfg.Variant == VariantDual {
		specs = append(specs, cfg.Sub)
	}
	for _, sp := range specs {
		if sp.Capacity <= 0 || sp.Resolution <= 0 {
			return fmt.Errorf("%w: capacity and resolution must be positive", ErrInvalidConfig)
		}
	}
	if len(cfg.Recipes) == 0 {
		return fmt.Errorf("%w: recipe catalog is empty", ErrInvalidConfig)
	}
	if len(cfg.Foods) == 0 {
		return fmt.Errorf("%w: food catalog is empty", ErrInvalidConfig)
	}
	return nil
}

// SetOnChange registers fn to run after every action and tick, outside the lock.
func (s *Session) SetOnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Variant reports which hardware variant the session models.
func (s *Session) Variant() Variant { return s.variant }

// Recipes returns a copy of the recipe catalog.
func (s *Session) Recipes() []Recipe { return append([]Recipe(nil), s.recipes...) }

// Foods returns a copy of the food catalog.
func (s *Session) Foods() []Food { return append([]Food(nil), s.foods...) }

// do runs op under the lock, then delivers queued notices in order and fires
// the change callback.
func (s *Session) do(op func() Result) Result {
	s.mu.Lock()
	res := op()
	notices := s.pending
	s.pending = nil
	onChange := s.onChange
	s.mu.Unlock()

	for _, n := range notices {
		s.sink.Deliver(n)
	}
	if onChange != nil {
		onChange()
	}
	return res
}

// guarded is do with the power gate: while the appliance is off, op does not
// run and the action is inert.
func (s *Session) guarded(op func() Result) Result {
	return s.do(func() Result {
		if !s.power.on {
			return Result{Outcome: OutcomeInert}
		}
		return op()
	})
}

// emit queues a notice for delivery and returns it. Callers hold the lock.
func (s *Session) emit(sev Severity, msg string, meta map[string]any) *Notice {
	n := Notice{Message: msg, Severity: sev, Metadata: meta}
	s.pending = append(s.pending, n)
	return &n
}

func (s *Session) applied(sev Severity, msg string, meta map[string]any) Result {
	return Result{Outcome: OutcomeApplied, Notice: s.emit(sev, msg, meta)}
}

func (s *Session) notMet(msg string) Result {
	return Result{Outcome: OutcomePreconditionNotMet, Notice: s.emit(SeverityError, msg, nil)}
}

func (s *Session) channel(id ChannelID) (*Channel, error) {
	for _, c := range s.channels {
		if c.id == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, id)
}

func (s *Session) findRecipe(name string) (Recipe, error) {
	for _, r := range s.recipes {
		if r.Name == name {
			return r, nil
		}
	}
	return Recipe{}, fmt.Errorf("%w: %q", ErrUnknownRecipe, name)
}

func (s *Session) findFood(name string) (Food, error) {
	for _, f := range s.foods {
		if f.Name == name {
			return f, nil
		}
	}
	return Food{}, fmt.Errorf("%w: %q", ErrUnknownFood, name)
}
