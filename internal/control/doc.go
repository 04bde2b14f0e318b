// Package control provides the two actuation laws that drive the plant:
//
//   - [PID]: Proportional-Integral-Derivative controller with an
//     actuator limit of [UMin, UMax]
//   - [Baseline]: two-sided deadband (bang-bang) law
//
// A run selects one of them through a [Strategy], a tagged value rather than
// an interface, so the simulation loop switches on [Kind] directly.
//
// # Usage
//
//	s := control.NewPIDStrategy(control.Gains{Kp: 3, Ki: 0.5})
//	c := control.NewController(s) // fresh state for one run
//	u, e := c.Compute(y, setpoint, i, dt)
//
// The PID integral is accumulated from the raw error even while the output
// is saturated (no anti-windup).
package control
