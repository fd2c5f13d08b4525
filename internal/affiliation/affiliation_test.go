// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package affiliation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

func TestIsCommercial(t *testing.T) {
	tests := []struct {
		aff  string
		want bool
	}{
		{"XYZ Biotech Inc., Boston", true},
		{"Department of Biotechnology, University of Oslo", true},
		{"Novartis Pharma AG, Basel", true},
		{"Acme Therapeutics, San Diego", true},
		{"Bio-Rad Laboratories, Hercules, CA", true},
		{"Siemens Healthineers GmbH, Erlangen", true},
		{"Oxford Nanopore Technologies Ltd., Oxford", true},
		{"PACIFIC BIOSCIENCES, Menlo Park", true},
		{"Harvard Medical School, Boston", false},
		{"Incheon National University", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.aff, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCommercial(tt.aff))
		})
	}
}

func TestIsCommercialEveryKeyword(t *testing.T) {
	for _, kw := range companyKeywords {
		assert.True(t, IsCommercial("Dept. "+strings.ToUpper(kw)+" 1"), kw)
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"contact: jane.doe@xyzpharma.com", "jane.doe@xyzpharma.com"},
		{"XYZ Pharma, Boston. jane.doe@xyzpharma.com.", "jane.doe@xyzpharma.com"},
		{"a-b@c.co.uk and x@y.org", "a-b@c.co.uk"},
		{"no address here", ""},
		{"broken@nodot", ""},
		{"Novo Pharma, contact: jöhn@novo.com", "jöhn@novo.com"},
		{"Sanofi Pharma, jean@université.fr", "jean@université.fr"},
		{"Ünïcode Biotech GmbH. müller_2@labor.de", "müller_2@labor.de"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractEmail(tt.text))
		})
	}
}

func TestClassifyFlagsOncePerAffiliation(t *testing.T) {
	r := types.Record{
		PMID:            "1",
		Title:           "T",
		PublicationDate: "2024",
		Authors: []types.Author{
			{Name: "Jane Doe", Affiliations: []string{"XYZ Biotech Inc., Boston"}},
		},
	}

	p, ok := Classify(r)
	require.True(t, ok)
	want := types.Paper{
		PubmedID:            "1",
		Title:               "T",
		PublicationDate:     "2024",
		NonAcademicAuthors:  "Jane Doe",
		CompanyAffiliations: "XYZ Biotech Inc., Boston",
		CorrespondingEmail:  types.EmailUnavailable,
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Classify mismatch (-want +got):\n%s", diff)
	}
}

func TestClassifySameCompanyTwoAuthors(t *testing.T) {
	const company = "Genentech Inc., South San Francisco, CA"
	r := types.Record{
		PMID: "2",
		Authors: []types.Author{
			{Name: "Ann Lee", Affiliations: []string{company}},
			{Name: "Bo Chen", Affiliations: []string{"Stanford University", company}},
		},
	}

	p, ok := Classify(r)
	require.True(t, ok)
	assert.Equal(t, "Ann Lee; Bo Chen", p.NonAcademicAuthors)
	assert.Equal(t, company, p.CompanyAffiliations, "set semantics")
}

func TestClassifyKeepsDuplicateNames(t *testing.T) {
	r := types.Record{
		Authors: []types.Author{
			{Name: "Jane Doe", Affiliations: []string{"Acme Pharma, Basel", "Beta Therapeutics, Boston"}},
			{Name: "Max Muster", Affiliations: []string{"Charite Berlin"}},
		},
	}

	p, ok := Classify(r)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe; Jane Doe", p.NonAcademicAuthors)

	affs := strings.Split(p.CompanyAffiliations, Separator)
	assert.ElementsMatch(t, []string{"Acme Pharma, Basel", "Beta Therapeutics, Boston"}, affs)
	assert.NotContains(t, p.NonAcademicAuthors, "Max Muster")
}

func TestClassifyFirstEmailWins(t *testing.T) {
	r := types.Record{
		Authors: []types.Author{
			{Name: "A", Affiliations: []string{"University of Nowhere. a@uni.edu"}},
			{Name: "B", Affiliations: []string{"Acme Pharma"}},
			{Name: "C", Affiliations: []string{"Beta Biotech. contact: c.one@beta.com"}},
			{Name: "D", Affiliations: []string{"Gamma Ltd. d@gamma.com"}},
		},
	}

	p, ok := Classify(r)
	require.True(t, ok)
	assert.Equal(t, "c.one@beta.com", p.CorrespondingEmail,
		"academic emails are ignored and later matches do not overwrite")
	assert.Equal(t, "B; C; D", p.NonAcademicAuthors)
}

func TestClassifyNoCommercialAffiliation(t *testing.T) {
	r := types.Record{
		PMID: "3",
		Authors: []types.Author{
			{Name: "A", Affiliations: []string{"MIT, Cambridge"}},
			{Name: "Unknown"},
		},
	}
	_, ok := Classify(r)
	assert.False(t, ok)
}

func TestClassifyUnknownAuthor(t *testing.T) {
	r := types.Record{
		Authors: []types.Author{
			{Name: types.UnknownValue, Affiliations: []string{"Roche Diagnostics GmbH"}},
		},
	}
	p, ok := Classify(r)
	require.True(t, ok)
	assert.Equal(t, "Unknown", p.NonAcademicAuthors)
}

func TestFilterPapersKeepsOrderAndDropsAcademic(t *testing.T) {
	records := []types.Record{
		{PMID: "10", Authors: []types.Author{{Name: "A", Affiliations: []string{"Acme Pharma"}}}},
		{PMID: "11", Authors: []types.Author{{Name: "B", Affiliations: []string{"Yale University"}}}},
		{PMID: "12"},
		{PMID: "13", Authors: []types.Author{{Name: "C", Affiliations: []string{"Zeta Biosciences"}}}},
	}

	papers := FilterPapers(records)
	require.Len(t, papers, 2)
	assert.Equal(t, "10", papers[0].PubmedID)
	assert.Equal(t, "13", papers[1].PubmedID)

	assert.Empty(t, FilterPapers(nil))
}
