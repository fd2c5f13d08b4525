// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Placeholder values used when a record lacks a field.
const (
	UnknownValue     = "Unknown"
	NoTitle          = "No Title"
	EmailUnavailable = "Not Available"
)

// Author is one entry of a record's author list.
type Author struct {
	// Name is "ForeName LastName", or "Unknown" when both are absent.
	Name string `json:"name" yaml:"name"`

	// Affiliations holds the non-empty affiliation strings in document order.
	Affiliations []string `json:"affiliations,omitempty" yaml:"affiliations,omitempty"`
}

// Record is a bibliographic record parsed from an efetch response.
type Record struct {
	PMID            string   `json:"pmid" yaml:"pmid"`
	Title           string   `json:"title" yaml:"title"`
	PublicationDate string   `json:"publication_date" yaml:"publication_date"`
	Authors         []Author `json:"authors" yaml:"authors"`
}

// Paper is the flattened row emitted for a record with at least one
// commercially affiliated author.
type Paper struct {
	// PubmedID is the record's PMID.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is the publication year, or "Unknown".
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors joins flagged author names with "; ". A name appears
	// once per matching affiliation, so duplicates are expected.
	NonAcademicAuthors string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations joins the distinct matching affiliations with "; ".
	CompanyAffiliations string `json:"company_affiliations" yaml:"company_affiliations"`

	// CorrespondingEmail is the first email found in a matching affiliation,
	// or "Not Available".
	CorrespondingEmail string `json:"corresponding_email" yaml:"corresponding_email"`
}
