// Package kernel holds the primitives shared by the tailoring aggregates:
// the UUID identity used for orders and the Clock used to stamp stage times.
package kernel
