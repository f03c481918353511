// Package orchestrator drives accepted orders through their stages in the background.
//
// Each order is carried by a commands.StageContext. A worker takes the context from the
// task queue, advances the order by exactly one stage and, unless the order is now
// complete, puts the context back on the queue. Because only the step that just finished
// schedules the next one, an order never has two steps in flight, while different orders
// are processed by different workers at the same time.
//
// A failed step is logged and the order stays at its last persisted stage. Orders left
// behind this way are picked up again by commands.ResumeOrdersCommand on the next start.
package orchestrator
