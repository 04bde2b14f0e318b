// Package viz renders runs for the terminal: ascii charts of the state and
// actuation ([TrackingChart], [ControlChart]), scorecard and metric tables
// styled with a [Theme], and small helpers such as sparklines.
//
// Nothing here feeds back into the simulation; the package only formats
// results produced by the sim and metrics packages.
package viz
