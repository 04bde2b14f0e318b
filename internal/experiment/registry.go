package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/pidlab/internal/control"
)

// Registry resolves controller names from the CLI and config files.
type Registry struct {
	controllers map[string]func(map[string]float64) control.Strategy
}

func NewRegistry() *Registry {
	r := &Registry{
		controllers: make(map[string]func(map[string]float64) control.Strategy),
	}

	r.controllers["pid"] = func(params map[string]float64) control.Strategy {
		return control.NewPIDStrategy(control.Gains{
			Kp: params["kp"],
			Ki: params["ki"],
			Kd: params["kd"],
		})
	}
	r.controllers["baseline"] = func(map[string]float64) control.Strategy {
		return control.NewBaselineStrategy()
	}

	return r
}

func (r *Registry) GetController(name string, params map[string]float64) (control.Strategy, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return control.Strategy{}, fmt.Errorf("%w: %s", control.ErrUnknownKind, name)
	}
	return fn(params), nil
}

func (r *Registry) ListControllers() []string {
	names := make([]string, 0, len(r.controllers))
	for name := range r.controllers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GainParams is the parameter map understood by GetController.
func GainParams(g control.Gains) map[string]float64 {
	return map[string]float64{
		"kp": g.Kp,
		"ki": g.Ki,
		"kd": g.Kd,
	}
}
