package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/unp-digital/sciencebot/internal/core/domain"
	"github.com/unp-digital/sciencebot/internal/infrastructure/resilience"
)

// Client searches a pre-built Qdrant collection of page embeddings. The
// pipeline only reads the index; ingestion owns collection setup and
// upserts.
type Client struct {
	baseURL    string
	collection string
	httpClient *http.Client
	executor   *resilience.Executor
}

func New(baseURL, collection string, executor *resilience.Executor) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		collection: collection,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		executor:   executor,
	}
}

// SearchPages runs an ANN query filtered to pages whose file_name payload
// equals documentName. An unknown document name simply yields zero matches.
func (c *Client) SearchPages(ctx context.Context, vector []float32, documentName string, limit int) ([]domain.PageMatch, error) {
	var out []domain.PageMatch
	err := c.execute(ctx, "qdrant.search", func(ctx context.Context) error {
		matches, err := c.searchOnce(ctx, vector, documentName, limit)
		if err != nil {
			return err
		}
		out = matches
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) searchOnce(ctx context.Context, vector []float32, documentName string, limit int) ([]domain.PageMatch, error) {
	reqBody := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	if documentName != "" {
		reqBody["filter"] = map[string]any{
			"must": []map[string]any{
				{
					"key": "file_name",
					"match": map[string]any{
						"value": documentName,
					},
				},
			},
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal search body: %w", err)
	}

	url := fmt.Sprintf("%s/collections/%s/points/search", c.baseURL, c.collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qdrant search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, newStatusError("search", resp)
	}

	var searchResp struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]domain.PageMatch, 0, len(searchResp.Result))
	for _, r := range searchResp.Result {
		out = append(out, domain.PageMatch{
			ID:       fmt.Sprintf("%v", r.ID),
			FileName: stringPayload(r.Payload, "file_name"),
			Page:     intPayload(r.Payload, "page"),
			Text:     stringPayload(r.Payload, "text"),
			Score:    r.Score,
		})
	}
	return out, nil
}

func (c *Client) execute(ctx context.Context, operation string, fn func(context.Context) error) error {
	if c.executor == nil {
		return wrapFailure(operation, fn(ctx))
	}
	err := c.executor.Execute(ctx, operation, fn, classifyQdrantError)
	return wrapFailure(operation, err)
}

func stringPayload(payload map[string]any, key string) string {
	v, ok := payload[key]
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func intPayload(payload map[string]any, key string) int {
	switch v := payload[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	default:
		return 0
	}
}
