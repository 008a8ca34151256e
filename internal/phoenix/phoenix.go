// Package phoenix is a minimal client for the Phoenix trace-storage API. It
// returns trace records as decoded JSON rather than structs because the
// whole point of the diagnostics is inspecting shapes the server does not
// guarantee.
package phoenix

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	http "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"

	pxerrors "phxdiag/internal/errors"
	"phxdiag/internal/jsonpath"
	"phxdiag/internal/models"
)

// Trace is one trace record, kept as the raw decoded object plus the two
// fields every record is expected to carry.
type Trace struct {
	ID   string
	Data map[string]any
}

// Client queries the Phoenix trace API
type Client struct {
	httpClient tls_client.HttpClient
	baseURL    string
	log        zerolog.Logger
}

// TraceStore is the surface the trace command depends on
type TraceStore interface {
	ListTraces(since time.Time, limit int) ([]Trace, error)
	GetTrace(id string) (map[string]any, error)
}

// Ensure Client implements TraceStore
var _ TraceStore = (*Client)(nil)

// NewClient creates a Phoenix trace API client
func NewClient(baseURL string, log zerolog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("phoenix URL cannot be empty")
	}

	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(15),
		tls_client.WithClientProfile(profiles.Chrome_120),
	}

	httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		log:        log,
	}, nil
}

// ListTraces returns up to limit traces captured since the given time,
// newest first.
func (c *Client) ListTraces(since time.Time, limit int) ([]Trace, error) {
	endpoint := c.baseURL + models.PathTraces

	params := url.Values{}
	params.Set("timestamp_gte", since.Format(time.RFC3339))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", "0")

	raw, err := c.get(endpoint + "?" + params.Encode())
	if err != nil {
		return nil, err
	}

	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, pxerrors.NewAPIErrorWithBody(0, endpoint,
			fmt.Sprintf("trace list is not a JSON array: %v", err), limitString(raw))
	}

	traces := make([]Trace, 0, len(records))
	for _, record := range records {
		id, _ := jsonpath.GetString(record, "id")
		traces = append(traces, Trace{ID: id, Data: record})
	}

	c.log.Debug().Int("count", len(traces)).Msg("traces listed")
	return traces, nil
}

// GetTrace returns the full record for one trace
func (c *Client) GetTrace(id string) (map[string]any, error) {
	endpoint := c.baseURL + models.PathTraces + "/" + url.PathEscape(id)

	raw, err := c.get(endpoint)
	if err != nil {
		return nil, err
	}

	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, pxerrors.NewAPIErrorWithBody(0, endpoint,
			fmt.Sprintf("trace record is not a JSON object: %v", err), limitString(raw))
	}

	return record, nil
}

// get performs a GET request and returns the body of a 200 response
func (c *Client) get(endpoint string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pxerrors.NewNetworkError("trace query", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, pxerrors.NewAPIErrorWithBody(resp.StatusCode, endpoint, "trace query failed", string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pxerrors.NewNetworkError("read response", endpoint, err)
	}
	return body, nil
}

func limitString(raw []byte) string {
	if len(raw) > 4096 {
		return string(raw[:4096])
	}
	return string(raw)
}
