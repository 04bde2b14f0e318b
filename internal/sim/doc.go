// Package sim runs the closed loop: a setpoint profile, a controller and
// the plant, advanced with a fixed timestep [Dt].
//
// # Example
//
//	profile := func(t float64) float64 { return 22 }
//	r := sim.SimulatePID(control.Gains{Kp: 3, Ki: 0.5}, profile, 18, 50)
//	last := r.Temp[r.Len()-1]
//
// Every call owns its plant and controller state, so independent runs may
// execute concurrently. [RunAll] does that with bounded parallelism.
package sim
