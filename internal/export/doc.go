// Package export renders a loaded graph for inspection. It is one-way: nothing
// written here can be loaded back.
package export
