package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// RateAggregator prices a parcel across carriers.
type RateAggregator interface {
	// Quote returns the offers for one request. An empty slice with a nil error is
	// a valid outcome meaning no carrier serves the route.
	Quote(ctx context.Context, req shipment.QuoteRequest) ([]shipment.RateQuote, error)
}

// LabelIssuer turns a rate token into a shipping label.
type LabelIssuer interface {
	// Issue consumes req.RateToken and returns the issued label. Issued labels
	// cannot be revoked by this service.
	Issue(ctx context.Context, req shipment.LabelRequest) (shipment.Label, error)
}

// AdvisoryRecommender suggests a carrier for a destination. Best effort: callers
// ignore its failures.
type AdvisoryRecommender interface {
	Recommend(ctx context.Context, city, department string) (shipment.Recommendation, error)
}

// BalanceLedger exposes the merchant's prepaid balance.
type BalanceLedger interface {
	Balance(ctx context.Context) (kernel.Money, error)
}

// MunicipalityDirectory resolves a free-text city to the aggregator's location code.
type MunicipalityDirectory interface {
	// Resolve never fails: unknown cities resolve to the directory's fallback code.
	Resolve(city, department string) string
}

// LabelEventPublisher announces issued labels to other services.
type LabelEventPublisher interface {
	PublishLabelIssued(ctx context.Context, event shipment.LabelIssued) error
}
