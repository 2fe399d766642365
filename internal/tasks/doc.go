// Package tasks implements the bulk mutation engine of the triage client.
//
// [RunBatch] is the core chunk-and-dispatch executor: it partitions a large
// input into bounded chunks, dispatches them strictly one at a time, and
// folds per-chunk results into a single [Result] that survives partial
// failure. [TriageEngine] binds the executor to the backend's bulk
// save/discard and import endpoints with request pacing.
//
// Long-running operations emit [ProgressUpdate] values via channels for
// non-blocking status reporting to CLI/TUI layers.
package tasks
