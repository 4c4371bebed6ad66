// Package diagnostic collects the line-tagged warnings and errors of one document load.
//
// Diagnostics are appended in emission order and never removed within a load.
// Every diagnostic carries a stable Code so callers can filter without parsing
// messages.
package diagnostic
