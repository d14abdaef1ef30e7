package cards

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Client calls the card-generation service that renders NFT card images and
// metadata for freshly minted trees.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Request struct {
	TreeID      uint64  `json:"tree_id"`
	Species     string  `json:"species"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	HealthScore float64 `json:"health_score"`
}

type Result struct {
	ImageURI    string `json:"image_uri"`
	MetadataURI string `json:"metadata_uri"`
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Generate asks the card service for image/metadata URIs. Minting must not
// block on the renderer, so any failure falls back to placeholder URIs.
func (c *Client) Generate(ctx context.Context, req Request) Result {
	fallback := Result{
		ImageURI:    fmt.Sprintf("https://placehold.co/400?text=Tree+%d", req.TreeID),
		MetadataURI: fmt.Sprintf("ipfs://QmMockMetadata%d", req.TreeID),
	}
	if c == nil || c.baseURL == "" {
		return fallback
	}

	payload, _ := json.Marshal(req)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return fallback
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Printf("[cards] tree=%d generate failed, using placeholder: %v", req.TreeID, err)
		return fallback
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[cards] tree=%d status=%d body=%s, using placeholder", req.TreeID, resp.StatusCode, truncate(string(body), 200))
		return fallback
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[cards] tree=%d decode failed, using placeholder: %v", req.TreeID, err)
		return fallback
	}
	if result.ImageURI == "" || result.MetadataURI == "" {
		return fallback
	}
	return result
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
