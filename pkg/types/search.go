// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-papers pipeline:
// the search query, the bibliographic records parsed from PubMed, and the
// flattened Paper rows emitted for records with commercial affiliations.
package types

// DefaultMaxResults is the result cap applied when a Query does not set one.
const DefaultMaxResults = 20

// Query is a free-text PubMed search and its result cap.
type Query struct {
	// Term is passed to the search endpoint as-is.
	Term string `json:"term" yaml:"term"`

	// MaxResults bounds the number of identifiers returned by the search.
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Limit returns MaxResults, or DefaultMaxResults when it is not positive.
func (q Query) Limit() int {
	if q.MaxResults <= 0 {
		return DefaultMaxResults
	}
	return q.MaxResults
}
