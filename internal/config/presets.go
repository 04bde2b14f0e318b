package config

import (
	"sort"

	"github.com/san-kum/pidlab/internal/control"
)

// Presets are named starting points for the gains.
var Presets = map[string]control.Gains{
	"untuned":    {},
	"p-only":     {Kp: 3.0},
	"pi":         {Kp: 3.0, Ki: 0.5},
	"default":    {Kp: DefaultKp, Ki: DefaultKi, Kd: DefaultKd},
	"aggressive": {Kp: 8.0, Ki: 2.0},
	"damped":     {Kp: 6.0, Ki: 0.8, Kd: 4.5},
}

func GetPreset(name string) (control.Gains, bool) {
	g, ok := Presets[name]
	return g, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
