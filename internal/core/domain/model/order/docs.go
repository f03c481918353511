// Package order provides the Order aggregate of the tailoring service and the
// Stage state machine that drives it from intake to dispatch.
//
// Key business rules:
//   - Stages only move forward: PLACED -> CONFIRM -> FABRIC_CUT -> STITCHING -> QUALITY_CHECK -> DISPATCHED
//   - No stage is skipped or revisited
//   - An order is completed exactly when it reaches DISPATCHED
//   - The tailor reference is set at creation and never cleared on the order itself
package order
