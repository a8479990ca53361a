// Package sequencer plays the fixed three-step analysis timeline.
//
// A run emits step i at i*StepInterval after Start and completes SettleDelay
// after the last step. The sequencer never starts timers itself; it hands out
// Events stamped with the current RunID and the caller delivers them back
// through Fire. Reset and Start replace the RunID, which turns every event
// still in flight into a no-op.
package sequencer
