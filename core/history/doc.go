// Package history records generation runs.
//
// Every upload that reaches the generation step produces a Run, successful or
// not. With a database configured the runs are kept in the generation_runs
// table and shown on the reports page and by the history command; without one
// NopRecorder discards them.
package history
