// Package fetch talks to the case-management API: token authentication,
// per-case docket entry and deadline retrieval, and the civil-case listing
// used to drive a batch run.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/jwhalen/go-docket-metrics/internal/config"
	"github.com/jwhalen/go-docket-metrics/internal/core/model"
	"github.com/jwhalen/go-docket-metrics/internal/data/normalize"
)

const (
	defaultTimeout = 120 * time.Second
	maxRetries     = 3
	initialBackoff = 2 * time.Second
)

// Client is an authenticated case-management API client. Construct one per
// run with NewClient; the bearer token is acquired once and reused.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// envelope is the API's standard response wrapper.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// NewClient authenticates against the token endpoint and returns a ready
// client.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if err := cfg.RequireAPI(); err != nil {
		return nil, err
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(cfg.BaseAPIURL, "/"),
	}

	form := url.Values{}
	form.Set("username", cfg.APIUsername)
	form.Set("password", cfg.APIPassword)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tok tokenResponse
	if err := sonic.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("token endpoint returned no access token")
	}
	c.token = tok.AccessToken
	return c, nil
}

// CaseEntries retrieves the full docket-entry timeline for one case. The raw
// payload is schema-checked before decoding; a response missing required
// docket columns is an error, not an empty case.
func (c *Client) CaseEntries(ctx context.Context, caseID int) ([]model.RawDocketRow, error) {
	params := url.Values{}
	params.Set("documents", "false")
	params.Set("docket_text", "true")

	body, err := c.getWithRetry(ctx, fmt.Sprintf("%s/cases/entries/%d", c.baseURL, caseID), params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries for case %d: %w", caseID, err)
	}

	data, err := unwrapData(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse entries for case %d: %w", caseID, err)
	}
	if data == nil {
		return nil, nil
	}
	if err := normalize.ValidateEntrySchema(data); err != nil {
		return nil, fmt.Errorf("entries payload for case %d: %w", caseID, err)
	}

	var rows []model.RawDocketRow
	if err := sonic.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse entries for case %d: %w", caseID, err)
	}
	return rows, nil
}

// CaseDeadlines retrieves scheduled events for one case. The class selects
// deadlines ("ddl") or hearings ("hrg"); the API serves both from the same
// endpoint.
func (c *Client) CaseDeadlines(ctx context.Context, caseID int, class string) ([]model.ScheduledEvent, error) {
	params := url.Values{}
	params.Set("deadline_class", class)

	body, err := c.getWithRetry(ctx, fmt.Sprintf("%s/cases/deadlines/%d", c.baseURL, caseID), params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s events for case %d: %w", class, caseID, err)
	}

	var events []model.ScheduledEvent
	if err := unwrap(body, &events); err != nil {
		return nil, fmt.Errorf("failed to parse %s events for case %d: %w", class, caseID, err)
	}
	return events, nil
}

// civilCaseJSON is one row of the civil-case listing as the API sends it.
type civilCaseJSON struct {
	CaseID         int    `json:"case_id"`
	CaseNumber     string `json:"case_number"`
	Judge          string `json:"judge"`
	NatureOfSuit   int    `json:"nature_of_suit"`
	DateFiled      string `json:"date_filed"`
	DateTerminated string `json:"date_terminated"`
	IsProSe        string `json:"is_prose"`
}

// CivilCasesByDate lists civil cases filed in a date range (ISO dates).
func (c *Client) CivilCasesByDate(ctx context.Context, startDate, endDate string) ([]model.CaseMeta, error) {
	params := url.Values{}
	params.Set("start_date", startDate)
	params.Set("end_date", endDate)

	body, err := c.getWithRetry(ctx, c.baseURL+"/cases/civil", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch civil cases %s..%s: %w", startDate, endDate, err)
	}

	var rows []civilCaseJSON
	if err := unwrap(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse civil case listing: %w", err)
	}

	cases := make([]model.CaseMeta, len(rows))
	for i, r := range rows {
		cases[i] = model.CaseMeta{
			CaseID:         r.CaseID,
			CaseNumber:     r.CaseNumber,
			Judge:          r.Judge,
			NatureOfSuit:   r.NatureOfSuit,
			FiledDate:      r.DateFiled,
			TerminatedDate: r.DateTerminated,
			IsProSe:        strings.EqualFold(r.IsProSe, "y"),
		}
	}
	return cases, nil
}

// getWithRetry performs an authenticated GET with exponential backoff.
func (c *Client) getWithRetry(ctx context.Context, rawURL string, params url.Values) ([]byte, error) {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if params != nil {
			req.URL.RawQuery = params.Encode()
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			continue
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		}
		return body, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

// unwrapData extracts the data field of the standard response envelope. An
// absent or null data field returns nil, never an error.
func unwrapData(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, nil
	}
	return env.Data, nil
}

// unwrap decodes the data field of the standard response envelope. An absent
// or null data field decodes as an empty slice, never an error.
func unwrap(body []byte, out interface{}) error {
	data, err := unwrapData(body)
	if err != nil || data == nil {
		return err
	}
	return sonic.Unmarshal(data, out)
}
