package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"kitchen_lab/internal/appliance"
	"kitchen_lab/internal/models"
)

// fakeNotificationRepo records appended notifications and returns canned lists.
type fakeNotificationRepo struct {
	mu        sync.Mutex
	appended  []models.Notification
	appendErr error

	gotFrom     time.Time
	gotTo       time.Time
	gotSeverity string
	listResp    []models.Notification
	listErr     error
	listCalls   int
}

func (f *fakeNotificationRepo) Append(_ context.Context, n models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, n)
	return f.appendErr
}

func (f *fakeNotificationRepo) List(_ context.Context, from, to time.Time, severity string) ([]models.Notification, error) {
	f.listCalls++
	f.gotFrom, f.gotTo, f.gotSeverity = from, to, severity
	return f.listResp, f.listErr
}

func (f *fakeNotificationRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.appended)
}

func testApplianceConfig(v appliance.Variant) appliance.Config {
	return appliance.Config{
		Variant: v,
		Main:    appliance.ChannelSpec{Capacity: 2000, Resolution: 1},
		Sub:     appliance.ChannelSpec{Capacity: 500, Resolution: 0.1},
		Recipes: []appliance.Recipe{
			{Name: "Country loaf", HydrationPct: 75},
			{Name: "Ciabatta", HydrationPct: 85},
		},
		Foods: []appliance.Food{
			{Name: "Chicken breast", Facts: appliance.Macros{Cal: 165, Protein: 31, Fat: 3.6}},
			{Name: "Rice", Facts: appliance.Macros{Cal: 130, Protein: 2.7, Carbs: 28, Fat: 0.3}},
		},
	}
}

func newTestSession(t *testing.T, v appliance.Variant, sink appliance.Sink) *appliance.Session {
	t.Helper()
	s, err := appliance.New(testApplianceConfig(v), sink)
	if err != nil {
		t.Fatalf("appliance.New: %v", err)
	}
	return s
}

// fixedClock returns a settable time source.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
