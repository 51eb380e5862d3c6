// Package tui provides an interactive terminal browser for check
// results. It runs the standard suite, then lets the user walk the
// case list, open per-case failure details and inspect benchmark
// samples without leaving the terminal. Browsing is read-only; the
// suite verdict comes out exactly as a plain run would produce it.
package tui
