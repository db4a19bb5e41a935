package models

import "time"

// Notification is a single user-facing message, journaled and shown as a toast.
type Notification struct {
	ID         string    `json:"id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Severity   string    `json:"severity"` // info | success | error
	Message    string    `json:"message"`
	Metadata   any       `json:"metadata,omitempty"`
	ExpiresAt  time.Time `json:"expires_at,omitzero"`
}

// ActionResult is what every control endpoint reports back.
type ActionResult struct {
	Outcome      string        `json:"outcome"` // applied | inert | precondition_not_met
	Notification *Notification `json:"notification,omitempty"`
}

// CatalogView lists the static reference data the appliance was built with.
type CatalogView struct {
	Recipes          []Recipe `json:"recipes"`
	Foods            []Food   `json:"foods"`
	CountdownPresets []int    `json:"countdown_presets"`
}

type Recipe struct {
	Name         string  `json:"name"`
	HydrationPct float64 `json:"hydration_pct"`
}

// Food carries nutrition facts per 100 g.
type Food struct {
	Name string `json:"name"`
	Macros
}
