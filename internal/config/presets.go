package config

import "sort"

var Presets = map[string]func(*Config){
	"default": func(c *Config) {},
	"dense": func(c *Config) {
		c.BodyCount = 3000
		c.BodyRadius = 6
	},
	"sparse": func(c *Config) {
		c.BodyCount = 200
		c.BodyRadius = 14
		c.BounceAmount = 0.8
	},
	"cube": func(c *Config) {
		c.Dimensions = 3
		c.BodyCount = 800
		c.Width, c.Height, c.Depth = 800, 800, 800
	},
	"manual": func(c *Config) {
		c.AutoSimSteps = false
		c.SimSteps = 30
	},
}

// GetPreset returns a fresh config with the named preset applied over the
// defaults, or nil when no such preset exists.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
