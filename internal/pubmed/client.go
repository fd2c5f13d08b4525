// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed retrieves bibliographic records from NCBI E-utilities.
// A run is two sequential requests: esearch resolves a free-text query to
// PMIDs, and a single batched efetch returns the records as XML.
package pubmed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/pubmed-papers/internal/httputil"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// eutilsBase is the E-utilities root used when the config leaves BaseURL
// empty. Declared as a var so tests can substitute an httptest server.
var eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

const (
	// DefaultTimeout applies to each of the two requests.
	DefaultTimeout = 10 * time.Second

	database = "pubmed"
)

// Client queries the esearch and efetch endpoints.
type Client struct {
	HTTP   *http.Client
	Config types.PubMedConfig
	Logger *zap.Logger
}

// NewClient returns a Client whose HTTP timeout comes from cfg
// (DefaultTimeout when unset). A nil logger is replaced by a no-op logger.
func NewClient(cfg types.PubMedConfig, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		HTTP:   &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
		Logger: logger,
	}
}

// FetchRecords searches PubMed for q and returns the parsed records.
//
// An empty search writes "No results found." to w and returns no records
// without calling efetch. Transport failures and non-2xx responses on either
// request are logged and yield an empty result with a nil error, so callers
// cannot tell them apart from an empty search. Only a malformed efetch
// document is returned as an error.
func (c *Client) FetchRecords(ctx context.Context, q types.Query, w io.Writer) ([]types.Record, error) {
	ids, err := c.Search(ctx, q)
	if err != nil {
		c.Logger.Error("Error fetching data from PubMed API", zap.Error(err))
		return nil, nil
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No results found.")
		return nil, nil
	}

	data, err := c.Fetch(ctx, ids)
	if err != nil {
		c.Logger.Error("Error fetching data from PubMed API", zap.Error(err))
		return nil, nil
	}

	records, err := ParseRecords(data)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("parsed efetch response",
		zap.Int("ids", len(ids)),
		zap.Int("records", len(records)))
	return records, nil
}

// Search runs esearch and returns the PMIDs in the order the API lists them.
func (c *Client) Search(ctx context.Context, q types.Query) ([]string, error) {
	params := url.Values{}
	params.Set("db", database)
	params.Set("term", q.Term)
	params.Set("retmax", strconv.Itoa(q.Limit()))
	params.Set("retmode", "json")

	body, err := c.get(ctx, "esearch.fcgi", params, "application/json")
	if err != nil {
		return nil, fmt.Errorf("esearch: %w", err)
	}

	var resp esearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding esearch response: %w", err)
	}
	c.Logger.Debug("esearch complete",
		zap.String("term", q.Term),
		zap.String("count", resp.Result.Count),
		zap.Int("ids", len(resp.Result.IDList)))
	return resp.Result.IDList, nil
}

// Fetch runs a single efetch for all ids and returns the raw XML document.
func (c *Client) Fetch(ctx context.Context, ids []string) ([]byte, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("no identifiers to fetch")
	}

	params := url.Values{}
	params.Set("db", database)
	params.Set("id", strings.Join(ids, ","))
	params.Set("retmode", "xml")

	body, err := c.get(ctx, "efetch.fcgi", params, "application/xml")
	if err != nil {
		return nil, fmt.Errorf("efetch: %w", err)
	}
	return body, nil
}

// get adds the caller identification parameters and issues the request.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, accept string) ([]byte, error) {
	if c.Config.APIKey != "" {
		params.Set("api_key", c.Config.APIKey)
	}
	if c.Config.Email != "" {
		params.Set("email", c.Config.Email)
	}
	if c.Config.Tool != "" {
		params.Set("tool", c.Config.Tool)
	}

	u := c.baseURL() + endpoint + "?" + params.Encode()
	c.Logger.Debug("requesting", zap.String("endpoint", endpoint))
	return httputil.Get(ctx, c.HTTP, u, accept, c.Config.UserAgent)
}

func (c *Client) baseURL() string {
	base := c.Config.BaseURL
	if base == "" {
		base = eutilsBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}

// esearchResponse is the subset of the esearch JSON body that is used.
type esearchResponse struct {
	Result struct {
		Count  string   `json:"count"`
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}
