// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// ParseRecords decodes an efetch PubmedArticleSet document. Missing fields
// fall back to the placeholders in pkg/types. A malformed document fails the
// whole parse; there is no per-record recovery.
func ParseRecords(data []byte) ([]types.Record, error) {
	var set articleSet
	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing PubMed XML: %w", err)
	}
	if err := expectEnd(dec); err != nil {
		return nil, fmt.Errorf("parsing PubMed XML: %w", err)
	}

	records := make([]types.Record, 0, len(set.Articles))
	for _, a := range set.Articles {
		records = append(records, a.toRecord())
	}
	return records, nil
}

// expectEnd consumes the rest of the document. Only whitespace, comments,
// and processing instructions may follow the root element.
func expectEnd(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after document root", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("unexpected text after document root")
			}
		}
	}
}

// innerText is the concatenated character data of an element and all of
// its descendants, so inline markup such as <i>BRCA1</i> keeps its text.
type innerText string

func (t *innerText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case xml.CharData:
			b.Write(v)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				*t = innerText(b.String())
				return nil
			}
			depth--
		}
	}
}

// efetch XML structures, limited to the fields that are read.
type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	PMID    string  `xml:"PMID"`
	Article article `xml:"Article"`
}

type article struct {
	Title       innerText     `xml:"ArticleTitle"`
	PubYear     string        `xml:"Journal>JournalIssue>PubDate>Year"`
	ArticleDate []articleDate `xml:"ArticleDate"`
	Authors     []author      `xml:"AuthorList>Author"`
}

type articleDate struct {
	Year string `xml:"Year"`
}

type author struct {
	ForeName        string            `xml:"ForeName"`
	LastName        string            `xml:"LastName"`
	AffiliationInfo []affiliationInfo `xml:"AffiliationInfo"`
}

type affiliationInfo struct {
	Affiliations []innerText `xml:"Affiliation"`
}

func (a pubmedArticle) toRecord() types.Record {
	art := a.Citation.Article
	r := types.Record{
		PMID:            orDefault(a.Citation.PMID, types.UnknownValue),
		Title:           orDefault(string(art.Title), types.NoTitle),
		PublicationDate: publicationYear(art),
	}
	for _, au := range art.Authors {
		r.Authors = append(r.Authors, au.toAuthor())
	}
	return r
}

// publicationYear prefers the journal issue year and falls back to the
// first electronic article date that carries a year.
func publicationYear(art article) string {
	if y := strings.TrimSpace(art.PubYear); y != "" {
		return y
	}
	for _, d := range art.ArticleDate {
		if y := strings.TrimSpace(d.Year); y != "" {
			return y
		}
	}
	return types.UnknownValue
}

func (a author) toAuthor() types.Author {
	out := types.Author{Name: authorName(a.ForeName, a.LastName)}
	for _, info := range a.AffiliationInfo {
		for _, aff := range info.Affiliations {
			if aff != "" {
				out.Affiliations = append(out.Affiliations, string(aff))
			}
		}
	}
	return out
}

// authorName joins fore and last name, or returns "Unknown" when both are empty.
func authorName(fore, last string) string {
	fore, last = strings.TrimSpace(fore), strings.TrimSpace(last)
	if fore == "" && last == "" {
		return types.UnknownValue
	}
	return strings.TrimSpace(fore + " " + last)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
