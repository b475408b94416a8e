package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client speaks the spreadsheet service's REST surface: single range
// read, batched range read and batched cell-level write. The service
// guarantees that all directives in one batched write are applied
// together or not at all; nothing beyond that is assumed.
type Client struct {
	baseURL    string
	sheetID    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, sheetID, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		sheetID: sheetID,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type valueRange struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

type batchGetResponse struct {
	ValueRanges []valueRange `json:"valueRanges"`
}

// WriteRequest is one directive of a batched write: either append rows
// to the end of a sheet or overwrite a rectangular cell region.
type WriteRequest struct {
	AppendCells *AppendCells `json:"appendCells,omitempty"`
	UpdateCells *UpdateCells `json:"updateCells,omitempty"`
}

type AppendCells struct {
	Sheet string  `json:"sheet"`
	Rows  [][]any `json:"rows"`
}

type UpdateCells struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

type batchUpdateRequest struct {
	Requests []WriteRequest `json:"requests"`
}

// GetValues reads a single named range and returns its rows in order.
func (c *Client) GetValues(ctx context.Context, rng string) ([][]any, error) {
	path := fmt.Sprintf("/spreadsheets/%s/values/%s", url.PathEscape(c.sheetID), url.PathEscape(rng))

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var vr valueRange
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("failed to decode range response: %w", err)
	}
	return vr.Values, nil
}

// BatchGetValues reads several ranges in one call. The result is
// index-aligned with the requested ranges.
func (c *Client) BatchGetValues(ctx context.Context, ranges []string) ([][][]any, error) {
	q := url.Values{}
	for _, rng := range ranges {
		q.Add("ranges", rng)
	}
	path := fmt.Sprintf("/spreadsheets/%s/values:batchGet?%s", url.PathEscape(c.sheetID), q.Encode())

	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp batchGetResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}
	if len(resp.ValueRanges) != len(ranges) {
		return nil, fmt.Errorf("batch read returned %d ranges, requested %d", len(resp.ValueRanges), len(ranges))
	}

	out := make([][][]any, len(resp.ValueRanges))
	for i, vr := range resp.ValueRanges {
		out[i] = vr.Values
	}
	return out, nil
}

// BatchUpdate submits all write directives as one network call.
func (c *Client) BatchUpdate(ctx context.Context, requests []WriteRequest) error {
	if len(requests) == 0 {
		return nil
	}

	path := fmt.Sprintf("/spreadsheets/%s:batchUpdate", url.PathEscape(c.sheetID))
	payload, err := json.Marshal(batchUpdateRequest{Requests: requests})
	if err != nil {
		return fmt.Errorf("failed to marshal batch update: %w", err)
	}

	_, err = c.do(ctx, http.MethodPost, path, payload)
	return err
}

// Ping verifies the store is reachable with a minimal read.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetValues(ctx, "A1:A1")
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("store request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read store response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("store returned status %d", resp.StatusCode)
	}

	return respBody, nil
}
