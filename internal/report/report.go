// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report writes qualifying papers to the console or to a file.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Format selects the file encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value. The empty string means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want csv, json, or yaml)", s)
	}
}

// Header is the fixed CSV column order.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// WriteConsole prints one line per paper using its default representation.
func WriteConsole(w io.Writer, papers []types.Paper) {
	for _, p := range papers {
		fmt.Fprintf(w, "%+v\n", p)
	}
}

// WriteFile creates or truncates path and writes papers in format f.
func WriteFile(path string, f Format, papers []types.Paper) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	var werr error
	switch f {
	case FormatJSON:
		werr = WriteJSON(file, papers)
	case FormatYAML:
		werr = WriteYAML(file, papers)
	default:
		werr = WriteCSV(file, papers)
	}
	if cerr := file.Close(); werr == nil && cerr != nil {
		werr = cerr
	}
	if werr != nil {
		return fmt.Errorf("writing %s: %w", path, werr)
	}
	return nil
}

// WriteCSV writes the header and one row per paper in order.
func WriteCSV(w io.Writer, papers []types.Paper) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, p := range papers {
		if err := cw.Write(row(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a document produced by WriteCSV.
func ReadCSV(r io.Reader) ([]types.Paper, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reading CSV: missing header")
	}
	for i, col := range records[0] {
		if col != Header[i] {
			return nil, fmt.Errorf("reading CSV: column %d is %q, want %q", i, col, Header[i])
		}
	}

	papers := make([]types.Paper, 0, len(records)-1)
	for _, rec := range records[1:] {
		papers = append(papers, types.Paper{
			PubmedID:            rec[0],
			Title:               rec[1],
			PublicationDate:     rec[2],
			NonAcademicAuthors:  rec[3],
			CompanyAffiliations: rec[4],
			CorrespondingEmail:  rec[5],
		})
	}
	return papers, nil
}

// WriteJSON writes papers as indented JSON.
func WriteJSON(w io.Writer, papers []types.Paper) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}

// WriteYAML writes papers as a YAML list.
func WriteYAML(w io.Writer, papers []types.Paper) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(papers); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

func row(p types.Paper) []string {
	return []string{
		p.PubmedID,
		p.Title,
		p.PublicationDate,
		p.NonAcademicAuthors,
		p.CompanyAffiliations,
		p.CorrespondingEmail,
	}
}
