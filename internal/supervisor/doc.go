// Package supervisor launches the bot's long-running entry point on a
// dedicated goroutine and isolates its failures from the serving process.
//
// The worker's execution context moves through a one-way lifecycle:
//
//	NotStarted → Running → {StoppedClean, Cancelled, Crashed} → Finished
//
// Three termination contracts are recognized at the boundary: a
// controlled-termination signal (ErrStopRequested), context cancellation,
// and any other failure including panics. All three are caught, logged,
// and swallowed; the liveness endpoint keeps answering after a crash.
// There is no restart — a crashed worker stays dead until the hosting
// platform restarts the process.
package supervisor
