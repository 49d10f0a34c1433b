package shipment

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// MaxDeliveryDays bounds the delivery estimate accepted from the aggregator.
const MaxDeliveryDays = 365

var ErrRateQuoteIsNotConstructed = errors.New("RateQuote must be created via NewRateQuote constructor")

// RateQuote is one priced shipping offer returned by the aggregator.
//
// The token is opaque and carrier issued. It is handed back to the label issuer
// exactly once; QuoteSelection.Consume enforces the single use. Expiry is the
// aggregator's concern.
//
// Example:
//
//	rate, err := shipment.NewRateQuote("tok-1", "Servientrega", "Mercancia Premier",
//	    kernel.MoneyFromFloat(12500), kernel.MoneyFromFloat(500), 2)
//	total := rate.Cost() // 13000.00
type RateQuote struct { //nolint:recvcheck //using for validation
	token        string
	carrier      string
	service      string
	freight      kernel.Money
	insurance    kernel.Money
	deliveryDays int

	guard guard.ConstructorGuard
}

// NewRateQuote validates and creates a RateQuote.
//
// Token and carrier are required; freight and insurance must not be negative.
// A missing minimum insurance is expressed as a zero Money.
func NewRateQuote(
	token, carrier, service string,
	freight, insurance kernel.Money,
	deliveryDays int,
) (RateQuote, error) {
	rate := RateQuote{
		service: strings.TrimSpace(service),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rate.setToken(token),
		rate.setCarrier(carrier),
		rate.setFreight(freight),
		rate.setInsurance(insurance),
		rate.setDeliveryDays(deliveryDays),
	); err != nil {
		return RateQuote{}, err
	}

	return rate, nil
}

// Validate ensures the rate was created through NewRateQuote.
func (r RateQuote) Validate() error {
	return r.guard.Validate(ErrRateQuoteIsNotConstructed)
}

// Token returns the aggregator's selection token.
func (r RateQuote) Token() string {
	return r.token
}

// Carrier returns the carrier name, e.g. "Interrapidisimo".
func (r RateQuote) Carrier() string {
	return r.carrier
}

// Service returns the carrier product name.
func (r RateQuote) Service() string {
	return r.service
}

// Freight returns the freight cost.
func (r RateQuote) Freight() kernel.Money {
	return r.freight
}

// Insurance returns the minimum insurance cost, zero when the aggregator omitted it.
func (r RateQuote) Insurance() kernel.Money {
	return r.insurance
}

// DeliveryDays returns the estimated delivery time in days.
func (r RateQuote) DeliveryDays() int {
	return r.deliveryDays
}

// Cost returns freight plus insurance, the amount charged to the prepaid balance.
func (r RateQuote) Cost() kernel.Money {
	return r.freight.Add(r.insurance)
}

func (r *RateQuote) setToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errs.NewValueIsRequiredError("rateToken")
	}
	r.token = token
	return nil
}

func (r *RateQuote) setCarrier(carrier string) error {
	carrier = strings.TrimSpace(carrier)
	if carrier == "" {
		return errs.NewValueIsRequiredError("carrier")
	}
	r.carrier = carrier
	return nil
}

func (r *RateQuote) setFreight(freight kernel.Money) error {
	if freight.IsNegative() {
		return errs.NewValueIsOutOfRangeError("freight", freight, 0, "unbounded")
	}
	r.freight = freight
	return nil
}

func (r *RateQuote) setInsurance(insurance kernel.Money) error {
	if insurance.IsNegative() {
		return errs.NewValueIsOutOfRangeError("insurance", insurance, 0, "unbounded")
	}
	r.insurance = insurance
	return nil
}

func (r *RateQuote) setDeliveryDays(days int) error {
	if days < 0 || days > MaxDeliveryDays {
		return errs.NewValueIsOutOfRangeError("deliveryDays", days, 0, MaxDeliveryDays)
	}
	r.deliveryDays = days
	return nil
}
