// Package report renders suite summaries for terminals and CI.
//
// WriteText produces the human-facing form: a case table with status
// and duration, warnings listed apart from failures, per-target
// benchmark metrics and a final verdict line. Styling is opt-in so
// redirected output stays clean. WriteJSON produces the machine form
// with the same content.
package report
