package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"kitchen_lab/internal/appliance"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != "127.0.0.1:8080" {
		t.Fatalf("addr=%q", cfg.HTTP.Addr)
	}
	if cfg.Scale.Variant != "single" || cfg.Scale.Main.Capacity != 2000 || cfg.Scale.Sub.Resolution != 0.1 {
		t.Fatalf("unexpected scale defaults: %+v", cfg.Scale)
	}
	if cfg.Clock.Tick != time.Second || cfg.Notifications.TTL != 3*time.Second {
		t.Fatalf("unexpected durations: tick=%v ttl=%v", cfg.Clock.Tick, cfg.Notifications.TTL)
	}
	if len(cfg.Recipes) != 3 || cfg.Recipes[0].Name != "Country loaf" {
		t.Fatalf("unexpected recipes: %+v", cfg.Recipes)
	}
	if len(cfg.Foods) != 8 {
		t.Fatalf("expected 8 foods, got %d", len(cfg.Foods))
	}
	if len(cfg.Timer.Presets) != 8 || cfg.Timer.Presets[1] != 5 {
		t.Fatalf("unexpected presets: %v", cfg.Timer.Presets)
	}
}

func TestLoad_FromFile(t *testing.T) {
	dir := writeConfig(t, `
scale:
  variant: dual
clock:
  tick: 250ms
recipes:
  - name: Focaccia
    hydration_pct: 80
foods:
  - { name: Tofu, cal: 76, protein: 8, carbs: 1.9, fat: 4.8 }
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Scale.Variant != "dual" || cfg.Clock.Tick != 250*time.Millisecond {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if len(cfg.Recipes) != 1 || cfg.Recipes[0].HydrationPct != 80 {
		t.Fatalf("unexpected recipes: %+v", cfg.Recipes)
	}
	if cfg.Foods[0].Name != "Tofu" || cfg.Foods[0].Fat != 4.8 {
		t.Fatalf("unexpected foods: %+v", cfg.Foods)
	}
	// untouched keys keep defaults
	if cfg.Scale.Main.Capacity != 2000 {
		t.Fatalf("default lost: %+v", cfg.Scale.Main)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("KITCHEN_HTTP_ADDR", "127.0.0.1:9191")
	t.Setenv("KITCHEN_SCALE_VARIANT", "dual")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != "127.0.0.1:9191" || cfg.Scale.Variant != "dual" {
		t.Fatalf("env not applied: addr=%q variant=%q", cfg.HTTP.Addr, cfg.Scale.Variant)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"variant":    "scale:\n  variant: triple\n",
		"resolution": "scale:\n  main:\n    resolution: 0\n",
		"tick":       "clock:\n  tick: 0s\n",
		"recipe pct": "recipes:\n  - name: Dry\n    hydration_pct: 0\n",
		"food facts": "foods:\n  - { name: Weird, cal: -1, protein: 0, carbs: 0, fat: 0 }\n",
		"preset":     "timer:\n  presets: [5, 0]\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "scale: [unclosed"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestAppliance_Conversion(t *testing.T) {
	t.Setenv("KITCHEN_SCALE_VARIANT", "dual")
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ac, err := cfg.Appliance()
	if err != nil {
		t.Fatalf("Appliance: %v", err)
	}
	if ac.Variant != appliance.VariantDual || ac.Sub.Capacity != 500 {
		t.Fatalf("unexpected appliance config: %+v", ac)
	}
	if ac.Foods[0].Facts.Protein != 31 || ac.Recipes[2].HydrationPct != 85 {
		t.Fatalf("catalogs not converted: %+v", ac)
	}
	if _, err := appliance.New(ac, nil); err != nil {
		t.Fatalf("converted config rejected: %v", err)
	}
}
