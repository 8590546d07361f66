// Package form holds the client-side state of the career prediction form:
// the selection store, the dropdown controller, and the rating input.
//
// All types in this package are mutated from a single event loop and are not
// safe for concurrent use.
package form
