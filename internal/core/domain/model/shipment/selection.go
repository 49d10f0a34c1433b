package shipment

import (
	"fmt"
	"slices"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// QuoteSelection is the outcome of quoting one order.
//
// It is created in one of three shapes:
//   - NewSelectedQuote: the batch flow picked a rate automatically
//   - NewOfferedQuote: the single-order flow waits for a human pick among the offers
//   - NewFailedQuote: the aggregator returned nothing or failed
//
// Once quoting finished, exactly one of Selected and Err is set for the batch flow.
// An offered quote turns into a selected one through Choose.
//
// QuoteSelection is mutable (Choose, Consume) and not safe for concurrent use;
// the owning batch.Run serialises access.
type QuoteSelection struct {
	request     QuoteRequest
	offers      []RateQuote
	selected    *RateQuote
	recommended string
	err         *QuoteError
	consumed    bool
}

// NewSelectedQuote records an automatic pick. selected must be one of offers.
func NewSelectedQuote(
	request QuoteRequest,
	offers []RateQuote,
	selected RateQuote,
	recommended string,
) (*QuoteSelection, error) {
	qs := &QuoteSelection{
		request:     request,
		offers:      slices.Clone(offers),
		recommended: recommended,
	}
	if err := qs.Choose(selected.Token()); err != nil {
		return nil, err
	}
	return qs, nil
}

// NewOfferedQuote records a successful quote whose rate is picked later.
func NewOfferedQuote(request QuoteRequest, offers []RateQuote, recommended string) (*QuoteSelection, error) {
	if len(offers) == 0 {
		return nil, errs.NewValueIsRequiredErrorWithCause("offers", ErrNoRatesAvailable)
	}
	return &QuoteSelection{
		request:     request,
		offers:      slices.Clone(offers),
		recommended: recommended,
	}, nil
}

// NewFailedQuote records a quoting failure.
func NewFailedQuote(request QuoteRequest, err *QuoteError) *QuoteSelection {
	if err == nil {
		err = NewQuoteError("", ErrNoRatesAvailable)
	}
	return &QuoteSelection{request: request, err: err}
}

// Request returns the request the offers answer.
func (q *QuoteSelection) Request() QuoteRequest {
	return q.request
}

// Offers returns a copy of every rate the aggregator returned.
func (q *QuoteSelection) Offers() []RateQuote {
	return slices.Clone(q.offers)
}

// Selected returns the chosen rate, if any.
func (q *QuoteSelection) Selected() (RateQuote, bool) {
	if q.selected == nil {
		return RateQuote{}, false
	}
	return *q.selected, true
}

// Recommended returns the advisory carrier when it matched one of the offers,
// or "" when there is no badge to show.
func (q *QuoteSelection) Recommended() string {
	return q.recommended
}

// Err returns the quoting failure, nil for successful quotes.
func (q *QuoteSelection) Err() *QuoteError {
	return q.err
}

// Succeeded reports whether a rate is selected.
func (q *QuoteSelection) Succeeded() bool {
	return q.selected != nil
}

// Failed reports whether quoting failed.
func (q *QuoteSelection) Failed() bool {
	return q.err != nil
}

// Cost returns the selected rate's cost, or zero when nothing is selected.
func (q *QuoteSelection) Cost() kernel.Money {
	if q.selected == nil {
		return kernel.Money{}
	}
	return q.selected.Cost()
}

// Choose selects the offer with the given token.
func (q *QuoteSelection) Choose(token string) error {
	if q.err != nil {
		return errs.NewValueIsInvalidErrorWithCause("rateToken", q.err)
	}
	if q.consumed {
		return ErrRateTokenConsumed
	}
	idx := slices.IndexFunc(q.offers, func(r RateQuote) bool { return r.Token() == token })
	if idx < 0 {
		return errs.NewValueIsInvalidErrorWithCause("rateToken",
			fmt.Errorf("%q is not one of the %d offered rates", token, len(q.offers)))
	}
	rate := q.offers[idx]
	q.selected = &rate
	return nil
}

// Consume hands out the selected rate for label generation. It succeeds once.
func (q *QuoteSelection) Consume() (RateQuote, error) {
	if q.selected == nil {
		return RateQuote{}, ErrRateNotChosen
	}
	if q.consumed {
		return RateQuote{}, ErrRateTokenConsumed
	}
	q.consumed = true
	return *q.selected, nil
}

// IsConsumed reports whether the selected token was already handed out.
func (q *QuoteSelection) IsConsumed() bool {
	return q.consumed
}
