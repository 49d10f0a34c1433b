package services_test

import (
	"testing"

	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostAggregator_Total(t *testing.T) {
	aggregator := services.NewCostAggregator()
	req := shipment.QuoteRequest{Origin: "11001000", Destination: "76001000"}

	rateA := offer(t, "a", "Servientrega", 18000, 2000)
	quoteA, err := shipment.NewSelectedQuote(req, []shipment.RateQuote{rateA}, rateA, "")
	require.NoError(t, err)

	failedB := shipment.NewFailedQuote(req, shipment.NewQuoteError("B", nil))

	rateC := offer(t, "c", "Interrapidisimo", 30000, 0)
	quoteC, err := shipment.NewSelectedQuote(req, []shipment.RateQuote{rateC}, rateC, "")
	require.NoError(t, err)

	pendingD, err := shipment.NewOfferedQuote(req, []shipment.RateQuote{offer(t, "d", "Coordinadora", 99000, 0)}, "")
	require.NoError(t, err)

	t.Run("errored and unpicked orders are excluded", func(t *testing.T) {
		total := aggregator.Total([]shipment.QuoteSelection{*quoteA, *failedB, *quoteC, *pendingD})
		summary := batch.CostSummary{Total: total, Balance: kernel.MoneyFromFloat(30000)}

		assert.Equal(t, kernel.MoneyFromFloat(50000), total)
		assert.False(t, summary.Sufficient())
		assert.Equal(t, kernel.MoneyFromFloat(20000), summary.Shortfall())
	})

	t.Run("empty run costs nothing", func(t *testing.T) {
		summary := batch.CostSummary{Total: aggregator.Total(nil)}

		assert.True(t, summary.Total.IsZero())
		assert.True(t, summary.Sufficient())
	})
}
