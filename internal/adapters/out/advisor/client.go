// Package advisor asks the recommendation service which carrier tends to serve a
// destination best. Its answers are hints only; callers ignore its failures.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"shipping/internal/core/domain/model/shipment"
)

type recommendRequestDTO struct {
	City       string `json:"city"`
	Department string `json:"department"`
}

type recommendResponseDTO struct {
	RecommendedCarrier string `json:"recommended_carrier"`
	Reasoning          string `json:"reasoning"`
}

// Client implements ports.AdvisoryRecommender over the advisor's JSON API.
type Client struct {
	url    string
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates a Client posting to url. A zero timeout means 10 seconds.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:    strings.TrimRight(url, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger.With("component", "advisor"),
	}
}

// Recommend returns the suggested carrier for the destination.
func (c *Client) Recommend(ctx context.Context, city, department string) (shipment.Recommendation, error) {
	payload, err := json.Marshal(recommendRequestDTO{City: city, Department: department})
	if err != nil {
		return shipment.Recommendation{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/recommendations", bytes.NewReader(payload))
	if err != nil {
		return shipment.Recommendation{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return shipment.Recommendation{}, fmt.Errorf("failed to call advisor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return shipment.Recommendation{}, fmt.Errorf("advisor responded %d", resp.StatusCode)
	}

	var body recommendResponseDTO
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return shipment.Recommendation{}, fmt.Errorf("failed to parse advisor response: %w", err)
	}

	c.logger.DebugContext(ctx, "recommendation received", "city", city, "carrier", body.RecommendedCarrier)

	return shipment.Recommendation{
		Carrier:   strings.TrimSpace(body.RecommendedCarrier),
		Reasoning: body.Reasoning,
	}, nil
}
