// Package sim drives a step method across a time grid.
//
// [Solve] is the core loop: strictly sequential, one step then one root
// callback per iteration, no suspension points and no cancellation.
// [Simulator] wraps the same loop with structured logging and timing.
package sim
