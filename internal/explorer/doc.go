// Package explorer holds the form state behind every front end: the selected
// backend and endpoint, the username being typed, and the outcome of the last
// fetch. A Session allows a single fetch in flight; its state is cleared when
// a fetch starts and replaced wholesale when it ends.
package explorer
