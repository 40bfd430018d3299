// Package overseer supervises a dynamic set of asynchronous tasks. A
// Supervisor tracks tasks from Add until completion, reports each finished
// task to subscribers exactly once, and forwards cooperative cancellation
// requests to tasks registered with a cancel trigger.
package overseer
