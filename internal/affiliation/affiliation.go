// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package affiliation flags authors whose affiliation names a commercial
// organization and flattens qualifying records into Paper rows.
package affiliation

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// companyKeywords are matched as lower-case substrings, so "biotechnology"
// matches "biotech" and "Acme Inc." matches "inc.".
var companyKeywords = []string{
	"pharma",
	"biotech",
	"therapeutics",
	"biosciences",
	"laboratories",
	"inc.",
	"ltd.",
	"gmbh",
}

// emailPattern finds local@domain.tld-shaped addresses inside free text.
// Word characters include non-ASCII letters and digits, so accented
// addresses are matched whole.
var emailPattern = regexp.MustCompile(`[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+`)

// Separator joins author names and affiliations in a Paper.
const Separator = "; "

// IsCommercial reports whether aff contains any company keyword, ignoring case.
func IsCommercial(aff string) bool {
	lower := strings.ToLower(aff)
	for _, kw := range companyKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ExtractEmail returns the first email address in text, or "".
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// Classify flattens r into a Paper when at least one author has a commercial
// affiliation. Authors and affiliations are scanned in document order: an
// author's name is appended once per matching affiliation, each distinct
// matching affiliation is kept once, and the first email found in a matching
// affiliation becomes the corresponding email.
func Classify(r types.Record) (types.Paper, bool) {
	var (
		names []string
		affs  []string
		seen  = make(map[string]struct{})
		email string
	)

	for _, au := range r.Authors {
		for _, aff := range au.Affiliations {
			if !IsCommercial(aff) {
				continue
			}
			names = append(names, au.Name)
			if _, ok := seen[aff]; !ok {
				seen[aff] = struct{}{}
				affs = append(affs, aff)
			}
			if email == "" {
				email = ExtractEmail(aff)
			}
		}
	}

	if len(affs) == 0 {
		return types.Paper{}, false
	}
	if email == "" {
		email = types.EmailUnavailable
	}
	return types.Paper{
		PubmedID:            r.PMID,
		Title:               r.Title,
		PublicationDate:     r.PublicationDate,
		NonAcademicAuthors:  strings.Join(names, Separator),
		CompanyAffiliations: strings.Join(affs, Separator),
		CorrespondingEmail:  email,
	}, true
}

// FilterPapers classifies each record and keeps the qualifying ones in input
// order. Records without a commercial affiliation are dropped silently.
func FilterPapers(records []types.Record) []types.Paper {
	var papers []types.Paper
	for _, r := range records {
		if p, ok := Classify(r); ok {
			papers = append(papers, p)
		}
	}
	return papers
}
