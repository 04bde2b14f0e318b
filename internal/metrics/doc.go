// Package metrics reduces simulated trajectories to scalar quality
// indicators. Every function is pure and reads a [sim.Result] without
// modifying it.
//
// The functions expect at least two samples. Shorter results do not panic:
// they report zero values and a settling time equal to the run duration.
package metrics
