// Package match resolves a written name against a list of named schema elements.
//
// Resolution is exact first (case-insensitive, first hit in scan order) and falls
// back to a fuzzy pass scored by a pluggable Similarity:
//   - LongestCommonSubstring: length of the longest shared run (default)
//   - LevenshteinSimilarity: longer length minus edit distance
//
// A fuzzy candidate must score strictly above the Matcher threshold; among equal
// best scores the first candidate in scan order wins.
package match
