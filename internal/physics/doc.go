// Package physics provides the plant model driven by the controllers.
//
// The plant is a second-order underdamped system, the textbook
// mass-spring-damper written in natural-frequency form:
//
//	y'' = K*wn^2*u - 2*zeta*wn*y' - wn^2*y
//
// [Plant.Step] advances it one fixed timestep with semi-implicit Euler:
// velocity is updated first and the new velocity moves the position.
//
// # Usage
//
//	p := physics.DefaultPlant()
//	s := physics.State{Y: 18}
//	s = p.Step(s, u, 0.05)
package physics
