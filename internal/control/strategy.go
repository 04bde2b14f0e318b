package control

import (
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("control: unknown controller kind")

type Kind uint8

const (
	KindPID Kind = iota
	KindBaseline
)

func (k Kind) String() string {
	switch k {
	case KindPID:
		return "pid"
	case KindBaseline:
		return "baseline"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func ParseKind(name string) (Kind, error) {
	switch name {
	case "pid":
		return KindPID, nil
	case "baseline", "bang-bang":
		return KindBaseline, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownKind, name)
}

// Strategy selects the controller for a run. Gains are ignored for the
// baseline.
type Strategy struct {
	Kind  Kind
	Gains Gains
}

func NewPIDStrategy(g Gains) Strategy { return Strategy{Kind: KindPID, Gains: g} }

func NewBaselineStrategy() Strategy { return Strategy{Kind: KindBaseline} }

func (s Strategy) Validate() error {
	switch s.Kind {
	case KindPID, KindBaseline:
		return nil
	}
	return fmt.Errorf("%w: %d", ErrUnknownKind, uint8(s.Kind))
}

func (s Strategy) String() string {
	if s.Kind == KindPID {
		return fmt.Sprintf("pid(kp=%g, ki=%g, kd=%g)", s.Gains.Kp, s.Gains.Ki, s.Gains.Kd)
	}
	return s.Kind.String()
}

// Controller holds the state of one strategy for the duration of one run.
type Controller struct {
	kind Kind
	pid  PID
}

func NewController(s Strategy) *Controller {
	return &Controller{
		kind: s.Kind,
		pid:  PID{Gains: s.Gains},
	}
}

func (c *Controller) Kind() Kind { return c.kind }

// Compute returns the actuation fed to the plant and the tracking error
// setpoint - y.
func (c *Controller) Compute(y, setpoint float64, i int, dt float64) (u, e float64) {
	e = setpoint - y
	switch c.kind {
	case KindPID:
		u = c.pid.Update(e, i, dt)
	case KindBaseline:
		u = Baseline(y, setpoint)
	}
	return u, e
}
