package api

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"

	pxerrors "phxdiag/internal/errors"
	"phxdiag/internal/models"
)

// maxErrorBody caps how much of an error response is captured for diagnostics
const maxErrorBody = 4096

// ChatCompletion sends a single-prompt request and returns the decoded
// response along with the raw body for shape analysis.
func (c *Client) ChatCompletion(prompt string) (*models.ChatResponse, []byte, error) {
	return c.Complete(c.NewRequest(prompt))
}

// Complete sends req to the chat-completions endpoint. The raw body is
// returned alongside the decoded response because the diagnostics care about
// fields the typed struct does not capture.
func (c *Client) Complete(req models.ChatRequest) (*models.ChatResponse, []byte, error) {
	raw, err := c.post(req)
	if err != nil {
		return nil, nil, err
	}

	var resp models.ChatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, raw, pxerrors.NewAPIErrorWithBody(0, c.Endpoint(),
			fmt.Sprintf("response is not valid JSON: %v", err), truncate(string(raw), maxErrorBody))
	}

	c.log.Debug().Str("id", resp.ID).Int("choices", len(resp.Choices)).Msg("chat completion received")
	return &resp, raw, nil
}

// post marshals req, sends it with bearer auth and returns the body of a
// 200 response.
func (c *Client) post(req models.ChatRequest) ([]byte, error) {
	endpoint := c.Endpoint()

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	c.log.Debug().Str("endpoint", endpoint).Str("model", req.Model).Msg("sending request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pxerrors.NewNetworkError("chat completion", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, pxerrors.NewAPIErrorWithBody(resp.StatusCode, endpoint,
			"chat completion failed", string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pxerrors.NewNetworkError("read response", endpoint, err)
	}

	return body, nil
}

// setHeaders applies the default headers and bearer auth
func (c *Client) setHeaders(req *http.Request) {
	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
}

// StreamProbe sends req with streaming enabled and returns up to maxChunks
// SSE lines. It exists to check whether the endpoint honors stream: true,
// not to consume full streams.
func (c *Client) StreamProbe(req models.ChatRequest, maxChunks int) ([]string, error) {
	endpoint := c.Endpoint()
	req.Stream = true

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pxerrors.NewNetworkError("stream probe", endpoint, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, pxerrors.NewAPIErrorWithBody(resp.StatusCode, endpoint,
			"stream probe failed", string(body))
	}

	var chunks []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() && len(chunks) < maxChunks {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		chunks = append(chunks, line)
	}

	return chunks, nil
}

// CurlEquivalent renders req as a curl command with the key masked, for
// pasting into bug reports.
func (c *Client) CurlEquivalent(req models.ChatRequest) string {
	payload, err := json.MarshalIndent(req, "    ", "  ")
	if err != nil {
		payload = []byte("{}")
	}

	masked := "..."
	if len(c.key) >= 5 {
		masked = c.key[:5] + "..."
	}

	var sb strings.Builder
	sb.WriteString("curl -X POST \\\n")
	fmt.Fprintf(&sb, "    %s \\\n", c.Endpoint())
	sb.WriteString("    -H \"Content-Type: application/json\" \\\n")
	fmt.Fprintf(&sb, "    -H \"Authorization: Bearer %s\" \\\n", masked)
	fmt.Fprintf(&sb, "    -d '%s'", payload)
	return sb.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
