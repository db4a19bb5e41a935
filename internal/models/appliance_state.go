package models

import "time"

// ApplianceState is the read-only snapshot handed to the presentation layer.
type ApplianceState struct {
	Variant       string         `json:"variant"` // single | dual
	PoweredOn     bool           `json:"powered_on"`
	Muted         bool           `json:"muted"`
	Mode          string         `json:"mode"` // HIDDEN | DIET | BREAD
	TimerMenuOpen bool           `json:"timer_menu_open"`
	Scales        []ScaleReading `json:"scales"`
	Bread         BreadView      `json:"bread"`
	Diet          DietView       `json:"diet"`
	Timer         TimerView      `json:"timer"`
	Notification  *Notification  `json:"notification,omitempty"` // active toast, if not expired
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ScaleReading is one weighing channel as seen by the display.
type ScaleReading struct {
	ID         string  `json:"id"`          // main | sub
	Raw        float64 `json:"raw"`         // g
	Tare       float64 `json:"tare"`        // g
	Net        float64 `json:"net"`         // g, full precision
	NetDisplay float64 `json:"net_display"` // g, rounded to resolution
	Capacity   float64 `json:"capacity"`    // g
	Resolution float64 `json:"resolution"`  // g
}

type BreadView struct {
	Recipe       string   `json:"recipe"`
	HydrationPct float64  `json:"hydration_pct"`
	BaseWeight   *float64 `json:"base_weight,omitempty"`
	TargetWater  *int     `json:"target_water,omitempty"`
	Yeast        string   `json:"yeast,omitempty"` // display text, e.g. "5", "<1", "4.5"
	Salt         string   `json:"salt,omitempty"`
	CurrentPct   *float64 `json:"current_pct,omitempty"`
	Stage        string   `json:"stage"` // AWAITING_BASE | AWAITING_TARGET | PERFECT | OVER | REMAINING
	Guidance     string   `json:"guidance"`
	Tone         string   `json:"tone"` // neutral | success | error
	OverBy       *float64 `json:"over_by,omitempty"`
}

// Macros are the four tracked nutrition quantities.
type Macros struct {
	Cal     float64 `json:"cal"`
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type DietEntry struct {
	Food    string  `json:"food"`
	Weight  float64 `json:"weight"`
	Channel string  `json:"channel"`
	Macros
}

type DietView struct {
	Totals    Macros     `json:"totals"`
	LastEntry *DietEntry `json:"last_entry,omitempty"`
}

type TimerView struct {
	Phase     string `json:"phase"`     // IDLE | RUNNING | PAUSED | RINGING
	Direction string `json:"direction"` // UP | DOWN
	Seconds   int    `json:"seconds"`   // elapsed (UP) or remaining (DOWN)
	Initial   int    `json:"initial"`
	Display   string `json:"display"` // mm:ss
}
