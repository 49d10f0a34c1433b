package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// QuoteSelector quotes one order.
//
// It builds the quote request (default parcel profile, municipality lookup with
// fallback), calls the aggregator once and turns the answer into a
// shipment.QuoteSelection. Every failure is captured in the returned selection:
// Quote never returns an error, so one bad order cannot abort a run.
//
// The advisory recommender is consulted only when offers exist. Its answer is a
// badge: it survives only if it names an offered carrier, it never changes the
// cheapest pick, and its failures are logged and dropped.
type QuoteSelector struct {
	aggregator     ports.RateAggregator
	advisor        ports.AdvisoryRecommender
	municipalities ports.MunicipalityDirectory
	selector       services.RateSelector
	logger         *slog.Logger
}

// NewQuoteSelector creates a QuoteSelector. advisor may be nil to disable the badge.
func NewQuoteSelector(
	aggregator ports.RateAggregator,
	advisor ports.AdvisoryRecommender,
	municipalities ports.MunicipalityDirectory,
	logger *slog.Logger,
) *QuoteSelector {
	return &QuoteSelector{
		aggregator:     aggregator,
		advisor:        advisor,
		municipalities: municipalities,
		selector:       services.NewRateSelector(),
		logger:         logger.With("component", "quote_selector"),
	}
}

// Quote returns the selection of one order. In batch mode the cheapest offer is
// selected; in single mode every offer is kept for a manual pick.
func (s *QuoteSelector) Quote(
	ctx context.Context,
	o *order.Order,
	origin string,
	mode batch.Mode,
	cod shipment.CODSettings,
) *shipment.QuoteSelection {
	address := o.Address()
	destination := s.municipalities.Resolve(address.City, address.Department)

	req, err := shipment.NewQuoteRequest(origin, destination, o.Package(), o.DeclaredValue(), cod)
	if err != nil {
		return s.fail(ctx, req, o, err)
	}

	offers, err := s.aggregator.Quote(ctx, req)
	if err != nil {
		return s.fail(ctx, req, o, err)
	}
	if len(offers) == 0 {
		return s.fail(ctx, req, o, nil)
	}

	recommended := s.recommend(ctx, o, offers)

	if mode == batch.Single {
		selection, offerErr := shipment.NewOfferedQuote(req, offers, recommended)
		if offerErr != nil {
			return s.fail(ctx, req, o, offerErr)
		}
		return selection
	}

	cheapest, err := s.selector.Cheapest(offers)
	if err != nil {
		return s.fail(ctx, req, o, err)
	}
	selection, err := shipment.NewSelectedQuote(req, offers, cheapest, recommended)
	if err != nil {
		return s.fail(ctx, req, o, err)
	}

	s.logger.DebugContext(ctx, "order quoted",
		"order_number", o.Number(),
		"offers", len(offers),
		"carrier", cheapest.Carrier(),
		"cost", cheapest.Cost().String(),
	)
	return selection
}

func (s *QuoteSelector) recommend(ctx context.Context, o *order.Order, offers []shipment.RateQuote) string {
	if s.advisor == nil {
		return ""
	}

	address := o.Address()
	rec, err := s.advisor.Recommend(ctx, address.City, address.Department)
	if err != nil {
		s.logger.WarnContext(ctx, "advisory recommendation unavailable",
			"order_number", o.Number(),
			"error", err,
		)
		return ""
	}

	return s.selector.MatchRecommendation(offers, rec.Carrier)
}

func (s *QuoteSelector) fail(
	ctx context.Context,
	req shipment.QuoteRequest,
	o *order.Order,
	cause error,
) *shipment.QuoteSelection {
	quoteErr := shipment.NewQuoteError(o.Number(), cause)
	s.logger.InfoContext(ctx, "order not quoted",
		"order_number", o.Number(),
		"error", quoteErr.Error(),
	)
	return shipment.NewFailedQuote(req, quoteErr)
}
