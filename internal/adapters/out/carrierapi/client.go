// Package carrierapi talks to the carrier aggregator: one endpoint prices a
// parcel across carriers, another buys the label for a previously quoted rate.
package carrierapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ErrEmptyTrackingNumber is returned when the aggregator accepts a label request
// but answers without a tracking number.
var ErrEmptyTrackingNumber = errors.New("el transportador no devolvio numero de guia")

// APIError is a non-2xx answer. Message is the aggregator's own text when it sent
// one; it ends up verbatim in the run's error list.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("carrier api responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Config holds the aggregator endpoint settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client implements ports.RateAggregator and ports.LabelIssuer.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a Client. A zero Timeout means 30 seconds.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With("component", "carrier_api"),
	}
}

// Quote prices the request. An empty rate list is a valid answer. Malformed rates
// are dropped and logged; the rest are still offered.
func (c *Client) Quote(ctx context.Context, req shipment.QuoteRequest) ([]shipment.RateQuote, error) {
	packages := make([]packageDTO, 0, len(req.Packages))
	for _, p := range req.Packages {
		packages = append(packages, toPackageDTO(p))
	}
	body := quoteRequestDTO{
		Origin:        req.Origin,
		Destination:   req.Destination,
		Packages:      packages,
		DeclaredValue: req.DeclaredValue.Float64(),
		COD:           toCODDTO(req.COD),
	}

	var resp quoteResponseDTO
	if err := c.post(ctx, "/quotes", body, &resp); err != nil {
		return nil, err
	}

	rates := make([]shipment.RateQuote, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		rate, err := shipment.NewRateQuote(
			r.RateToken,
			r.Carrier,
			r.Service,
			kernel.MoneyFromFloat(r.Freight),
			kernel.MoneyFromFloat(r.MinInsurance),
			r.DeliveryDays,
		)
		if err != nil {
			c.logger.WarnContext(ctx, "rate dropped", "carrier", r.Carrier, "destination", req.Destination, "error", err)
			continue
		}
		rates = append(rates, rate)
	}

	return rates, nil
}

// Issue buys the label for the rate token in req.
func (c *Client) Issue(ctx context.Context, req shipment.LabelRequest) (shipment.Label, error) {
	body := labelRequestDTO{
		RateToken:   req.RateToken,
		OrderNumber: req.OrderNumber,
		Origin:      req.Origin,
		Destination: destinationDTO{
			Address:          req.Destination.Address,
			City:             req.Destination.City,
			Department:       req.Destination.Department,
			MunicipalityCode: req.Destination.MunicipalityCode,
		},
		Recipient: recipientDTO{
			Name:  req.Recipient.Name,
			Phone: req.Recipient.Phone,
			Email: req.Recipient.Email,
		},
		Package:       toPackageDTO(req.Package),
		DeclaredValue: req.DeclaredValue.Float64(),
		COD:           toCODDTO(req.COD),
	}

	var resp labelResponseDTO
	if err := c.post(ctx, "/labels", body, &resp); err != nil {
		return shipment.Label{}, err
	}

	tracking := strings.TrimSpace(resp.TrackingNumber)
	if tracking == "" {
		return shipment.Label{}, ErrEmptyTrackingNumber
	}

	return shipment.Label{TrackingNumber: tracking, LabelURL: resp.LabelURL}, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call carrier api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse carrier api response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorDTO
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = strings.TrimSpace(body.Message)
	}
	return apiErr
}

func toPackageDTO(p shipment.Package) packageDTO {
	return packageDTO{Weight: p.Weight, Height: p.Height, Width: p.Width, Length: p.Length}
}

func toCODDTO(cod shipment.CODSettings) codDTO {
	return codDTO{Enabled: cod.Enabled, CollectAmount: cod.CollectAmount.Float64()}
}
