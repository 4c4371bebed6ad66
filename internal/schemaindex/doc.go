// Package schemaindex answers the schema questions asked while building a graph:
// which classifiers can be instantiated, which concrete subtypes fit a reference,
// and which features an attribute may target.
//
// All answers are cached until Reset, which the loader calls at the start of every
// load and whenever a package is registered mid-document.
package schemaindex
