package loadtest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// spreadBody is the subset of a recommendation response the fingerprint uses.
type spreadBody struct {
	Spread struct {
		Suggestions []struct {
			Lure struct {
				ID string `json:"id"`
			} `json:"lure"`
			Position   string  `json:"position"`
			DistanceM  int     `json:"distance_m"`
			TotalScore float64 `json:"total_score"`
		} `json:"suggestions"`
		Speed struct {
			Knots float64 `json:"knots"`
		} `json:"speed"`
	} `json:"spread"`
}

type errorBody struct {
	Code string `json:"code"`
}

// recommend posts one request and reduces the answer to an Outcome.
func recommend(ctx context.Context, client *HTTPClient, url string, r Request) (Outcome, error) {
	resp, err := client.Post(ctx, url, r)
	if err != nil {
		return Outcome{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read response: %w", err)
	}
	return parseOutcome(resp.StatusCode, body)
}

func parseOutcome(status int, body []byte) (Outcome, error) {
	out := Outcome{Status: status}
	if status != http.StatusOK {
		var e errorBody
		if err := json.Unmarshal(body, &e); err != nil {
			return out, fmt.Errorf("HTTP %d: %s", status, string(body))
		}
		out.Code = e.Code
		return out, nil
	}

	var s spreadBody
	if err := json.Unmarshal(body, &s); err != nil {
		return out, fmt.Errorf("failed to parse response: %w", err)
	}
	var b strings.Builder
	for _, sg := range s.Spread.Suggestions {
		b.WriteString(sg.Lure.ID)
		b.WriteByte('@')
		b.WriteString(sg.Position)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(sg.DistanceM))
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(sg.TotalScore, 'f', 3, 64))
		b.WriteByte(';')
	}
	b.WriteString(strconv.FormatFloat(s.Spread.Speed.Knots, 'f', 1, 64))
	out.Fingerprint = b.String()
	return out, nil
}
