// Package config loads the appliance configuration with viper: built-in
// defaults, then configs/config.yml, then KITCHEN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kitchen_lab/internal/appliance"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. KITCHEN_HTTP_ADDR.
const EnvPrefix = "KITCHEN"

type Config struct {
	HTTP          HTTPConfig          `mapstructure:"http"`
	Log           LogConfig           `mapstructure:"log"`
	DB            DBConfig            `mapstructure:"db"`
	Scale         ScaleConfig         `mapstructure:"scale"`
	Clock         ClockConfig         `mapstructure:"clock"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	WS            WSConfig            `mapstructure:"ws"`
	Timer         TimerConfig         `mapstructure:"timer"`
	Recipes       []RecipeConfig      `mapstructure:"recipes"`
	Foods         []FoodConfig        `mapstructure:"foods"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

type ScaleConfig struct {
	Variant string        `mapstructure:"variant"`
	Main    ChannelConfig `mapstructure:"main"`
	Sub     ChannelConfig `mapstructure:"sub"`
}

type ChannelConfig struct {
	Capacity   float64 `mapstructure:"capacity"`
	Resolution float64 `mapstructure:"resolution"`
}

type ClockConfig struct {
	Tick time.Duration `mapstructure:"tick"`
}

type NotificationsConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type WSConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type TimerConfig struct {
	Presets []int `mapstructure:"presets"`
}

type RecipeConfig struct {
	Name         string  `mapstructure:"name"`
	HydrationPct float64 `mapstructure:"hydration_pct"`
}

// FoodConfig holds nutrition facts per 100 g.
type FoodConfig struct {
	Name    string  `mapstructure:"name"`
	Cal     float64 `mapstructure:"cal"`
	Protein float64 `mapstructure:"protein"`
	Carbs   float64 `mapstructure:"carbs"`
	Fat     float64 `mapstructure:"fat"`
}

var defaultRecipes = []RecipeConfig{
	{Name: "Country loaf", HydrationPct: 75},
	{Name: "Beginner", HydrationPct: 65},
	{Name: "Ciabatta", HydrationPct: 85},
}

var defaultFoods = []FoodConfig{
	{Name: "Chicken breast", Cal: 165, Protein: 31, Carbs: 0, Fat: 3.6},
	{Name: "Rice", Cal: 130, Protein: 2.7, Carbs: 28, Fat: 0.3},
	{Name: "Egg", Cal: 155, Protein: 13, Carbs: 1.1, Fat: 11},
	{Name: "Oats", Cal: 389, Protein: 16.9, Carbs: 66, Fat: 6.9},
	{Name: "Broccoli", Cal: 34, Protein: 2.8, Carbs: 7, Fat: 0.4},
	{Name: "Milk", Cal: 65, Protein: 3.3, Carbs: 4.8, Fat: 3.6},
	{Name: "Beef", Cal: 250, Protein: 26, Carbs: 0, Fat: 17},
	{Name: "Avocado", Cal: 160, Protein: 2, Carbs: 9, Fat: 15},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", "127.0.0.1:8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.dsn", "file:kitchen_journal?mode=memory&cache=shared")
	v.SetDefault("scale.variant", "single")
	v.SetDefault("scale.main.capacity", 2000.0)
	v.SetDefault("scale.main.resolution", 1.0)
	v.SetDefault("scale.sub.capacity", 500.0)
	v.SetDefault("scale.sub.resolution", 0.1)
	v.SetDefault("clock.tick", time.Second)
	v.SetDefault("notifications.ttl", 3*time.Second)
	v.SetDefault("ws.interval", time.Second)
	v.SetDefault("timer.presets", []int{3, 5, 10, 15, 20, 30, 45, 60})
	v.SetDefault("recipes", defaultRecipes)
	v.SetDefault("foods", defaultFoods)
}

// Load reads config.yml from dir (a missing file is not an error), applies
// environment overrides and validates the result.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and catalogs.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("config: http.addr is empty")
	}
	if _, err := appliance.ParseVariant(c.Scale.Variant); err != nil {
		return fmt.Errorf("config: scale.variant: %w", err)
	}
	channels := map[string]ChannelConfig{"scale.main": c.Scale.Main}
	if strings.EqualFold(strings.TrimSpace(c.Scale.Variant), "dual") {
		channels["scale.sub"] = c.Scale.Sub
	}
	for key, ch := range channels {
		if ch.Capacity <= 0 || ch.Resolution <= 0 {
			return fmt.Errorf("config: %s capacity and resolution must be positive", key)
		}
	}
	if c.Clock.Tick <= 0 {
		return errors.New("config: clock.tick must be positive")
	}
	if c.Notifications.TTL <= 0 {
		return errors.New("config: notifications.ttl must be positive")
	}
	if c.WS.Interval <= 0 {
		return errors.New("config: ws.interval must be positive")
	}
	for _, m := range c.Timer.Presets {
		if m <= 0 {
			return fmt.Errorf("config: timer preset %d must be positive", m)
		}
	}
	if len(c.Recipes) == 0 {
		return errors.New("config: recipes catalog is empty")
	}
	for _, r := range c.Recipes {
		if r.Name == "" || r.HydrationPct <= 0 {
			return fmt.Errorf("config: invalid recipe %q", r.Name)
		}
	}
	if len(c.Foods) == 0 {
		return errors.New("config: foods catalog is empty")
	}
	for _, f := range c.Foods {
		if f.Name == "" || f.Cal < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
			return fmt.Errorf("config: invalid food %q", f.Name)
		}
	}
	return nil
}

// Appliance converts the scale and catalog sections for appliance.New.
func (c *Config) Appliance() (appliance.Config, error) {
	variant, err := appliance.ParseVariant(c.Scale.Variant)
	if err != nil {
		return appliance.Config{}, err
	}
	out := appliance.Config{
		Variant: variant,
		Main:    appliance.ChannelSpec{Capacity: c.Scale.Main.Capacity, Resolution: c.Scale.Main.Resolution},
		Sub:     appliance.ChannelSpec{Capacity: c.Scale.Sub.Capacity, Resolution: c.Scale.Sub.Resolution},
	}
	for _, r := range c.Recipes {
		out.Recipes = append(out.Recipes, appliance.Recipe{Name: r.Name, HydrationPct: r.HydrationPct})
	}
	for _, f := range c.Foods {
		out.Foods = append(out.Foods, appliance.Food{
			Name:  f.Name,
			Facts: appliance.Macros{Cal: f.Cal, Protein: f.Protein, Carbs: f.Carbs, Fat: f.Fat},
		})
	}
	return out, nil
}
