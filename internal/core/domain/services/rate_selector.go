package services

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/shipment"
)

// ErrNoOffers is returned when the cheapest offer is asked from an empty list.
var ErrNoOffers = errors.New("no offers to choose from")

// RateSelector is a domain service choosing among the offers of one quote.
//
// Business rules:
//   - The batch flow auto-selects the offer with the lowest freight
//   - Ties keep the first offer in aggregator order
//   - The advisory carrier is only a badge: it is shown when it names one of the
//     offered carriers and never changes the selection
//
// Example usage:
//
//	selector := services.NewRateSelector()
//	cheapest, err := selector.Cheapest(offers)
//	badge := selector.MatchRecommendation(offers, rec.Carrier)
type RateSelector struct{}

// NewRateSelector creates a new RateSelector instance.
func NewRateSelector() RateSelector {
	return RateSelector{}
}

// Cheapest returns the offer with the lowest freight cost. Insurance is not part
// of the comparison.
//
// Returns:
//   - shipment.RateQuote: the cheapest offer, first one on ties
//   - error: ErrNoOffers if offers is empty, or the validation error of a zero value offer
func (s RateSelector) Cheapest(offers []shipment.RateQuote) (shipment.RateQuote, error) {
	if len(offers) == 0 {
		return shipment.RateQuote{}, ErrNoOffers
	}

	best := -1
	for i, offer := range offers {
		if err := offer.Validate(); err != nil {
			return shipment.RateQuote{}, err
		}
		if best < 0 || offer.Freight().LessThan(offers[best].Freight()) {
			best = i
		}
	}

	return offers[best], nil
}

// MatchRecommendation returns the offered carrier name matching the advisory
// carrier, compared case-insensitively after trimming. It returns "" when the
// advisory names a carrier that was not offered.
func (s RateSelector) MatchRecommendation(offers []shipment.RateQuote, carrier string) string {
	carrier = strings.TrimSpace(carrier)
	if carrier == "" {
		return ""
	}

	for _, offer := range offers {
		if strings.EqualFold(strings.TrimSpace(offer.Carrier()), carrier) {
			return offer.Carrier()
		}
	}

	return ""
}
