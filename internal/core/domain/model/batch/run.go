package batch

import (
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

var (
	// ErrNothingSelected blocks quoting while the selection is empty.
	ErrNothingSelected = errs.NewValueIsRequiredError("selection")

	// ErrNothingToGenerate blocks generation when no selected order holds a rate.
	ErrNothingToGenerate = errs.NewValueIsRequiredError("quotedOrders")

	// ErrRunCancelled is returned by every mutation after Cancel.
	ErrRunCancelled = errors.New("run was cancelled")

	// ErrOrderAlreadyShipped is returned when a single-order run is opened for a shipped order.
	ErrOrderAlreadyShipped = errors.New("order already has a tracking number")

	// ErrManualPickNotAllowed is returned by ChooseRate on batch runs, which pick the cheapest rate.
	ErrManualPickNotAllowed = errors.New("rates are picked automatically in batch runs")
)

// Run is the ephemeral state of one workflow.
//
// Run follows these invariants:
//   - Candidates never include a shipped order
//   - The selection can change only in Select
//   - Quote outcomes are recorded only in Quoting, labels only in Generating
//   - Generation starts only if the cost summary is sufficient
//   - Generated + Failed equals the number of generation items once Complete
//
// All methods are safe for concurrent use: the HTTP layer reads reports while a
// background loop records outcomes.
type Run struct {
	mu sync.RWMutex

	id     kernel.UUID
	mode   Mode
	origin string
	cod    shipment.CODSettings
	phase  Phase

	candidates []*order.Order
	selected   map[kernel.UUID]struct{}

	quotes        map[kernel.UUID]*shipment.QuoteSelection
	quoteProgress Progress

	cost *CostSummary

	labels             map[kernel.UUID]shipment.Label
	failures           map[kernel.UUID]*shipment.GenerationError
	generationProgress Progress
	generated          int
	failed             int
	errors             []string

	cancelled bool
	updatedAt time.Time
}

// NewBatchRun opens a batch run over every unshipped order in orders. Nothing is
// selected initially.
//
// Parameters:
//   - origin: municipality code every parcel ships from
//   - orders: the store's orders; shipped ones are dropped from the candidates
//
// Example:
//
//	run, err := batch.NewBatchRun("11001000", orders)
//	run.SelectAll()
//	items, err := run.BeginQuoting()
func NewBatchRun(origin string, orders []*order.Order) (*Run, error) {
	run, err := newRun(Batch, origin, shipment.NoCOD())
	if err != nil {
		return nil, err
	}

	for _, o := range orders {
		if o == nil || o.IsShipped() {
			continue
		}
		run.candidates = append(run.candidates, o)
	}

	return run, nil
}

// NewSingleRun opens a run for one order, already selected. The origin is the
// user's pick and cod controls cash on delivery.
func NewSingleRun(origin string, o *order.Order, cod shipment.CODSettings) (*Run, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.IsShipped() {
		return nil, ErrOrderAlreadyShipped
	}

	run, err := newRun(Single, origin, cod)
	if err != nil {
		return nil, err
	}

	run.candidates = []*order.Order{o}
	run.selected[o.ID()] = struct{}{}
	return run, nil
}

func newRun(mode Mode, origin string, cod shipment.CODSettings) (*Run, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return nil, errs.NewValueIsRequiredError("origin")
	}

	return &Run{
		id:        kernel.NewUUID(),
		mode:      mode,
		origin:    origin,
		cod:       cod,
		phase:     Select,
		selected:  make(map[kernel.UUID]struct{}),
		quotes:    make(map[kernel.UUID]*shipment.QuoteSelection),
		labels:    make(map[kernel.UUID]shipment.Label),
		failures:  make(map[kernel.UUID]*shipment.GenerationError),
		updatedAt: time.Now(),
	}, nil
}

// ID returns the run identifier.
func (r *Run) ID() kernel.UUID {
	return r.id
}

// Mode returns batch or single.
func (r *Run) Mode() Mode {
	return r.mode
}

// Origin returns the municipality code parcels ship from.
func (r *Run) Origin() string {
	return r.origin
}

// COD returns the cash on delivery settings used in quote and label requests.
func (r *Run) COD() shipment.CODSettings {
	return r.cod
}

// Phase returns the current phase.
func (r *Run) Phase() Phase {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phase
}

// UpdatedAt returns the time of the last recorded change.
func (r *Run) UpdatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updatedAt
}

// IsCancelled reports whether Cancel was called.
func (r *Run) IsCancelled() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cancelled
}

// Candidates returns the selectable orders.
func (r *Run) Candidates() []*order.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.candidates)
}

// Selected returns the selected orders in candidate order.
func (r *Run) Selected() []*order.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selectedLocked()
}

// Toggle flips the membership of one candidate.
func (r *Run) Toggle(orderID kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.editableLocked("change selection"); err != nil {
		return err
	}
	if !r.isCandidateLocked(orderID) {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}

	if _, ok := r.selected[orderID]; ok {
		delete(r.selected, orderID)
	} else {
		r.selected[orderID] = struct{}{}
	}
	r.touchLocked()
	return nil
}

// SelectAll selects every candidate.
func (r *Run) SelectAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.editableLocked("change selection"); err != nil {
		return err
	}
	for _, o := range r.candidates {
		r.selected[o.ID()] = struct{}{}
	}
	r.touchLocked()
	return nil
}

// DeselectAll clears the selection.
func (r *Run) DeselectAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.editableLocked("change selection"); err != nil {
		return err
	}
	clear(r.selected)
	r.touchLocked()
	return nil
}

// BeginQuoting moves to Quoting and returns the orders to quote, in selection order.
// An empty selection returns ErrNothingSelected and leaves the run in Select.
func (r *Run) BeginQuoting() ([]*order.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelled {
		return nil, ErrRunCancelled
	}
	if err := r.phase.require(Select, "start quoting"); err != nil {
		return nil, err
	}
	selected := r.selectedLocked()
	if len(selected) == 0 {
		return nil, ErrNothingSelected
	}

	next, err := r.phase.StartQuoting()
	if err != nil {
		return nil, err
	}
	r.phase = next
	r.quoteProgress = NewProgress(len(selected))
	r.touchLocked()
	return selected, nil
}

// RecordQuote stores the quote outcome of one order and advances quoting progress.
func (r *Run) RecordQuote(orderID kernel.UUID, quote *shipment.QuoteSelection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.activeLocked(Quoting, "record quote"); err != nil {
		return err
	}
	if quote == nil {
		return errs.NewValueIsRequiredError("quote")
	}
	if _, ok := r.selected[orderID]; !ok {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}
	if _, done := r.quotes[orderID]; done {
		return errs.NewValueIsInvalidErrorWithCause("orderId", errors.New("order already quoted in this run"))
	}

	r.quotes[orderID] = quote
	r.quoteProgress = r.quoteProgress.Advance()
	r.touchLocked()
	return nil
}

// FinishQuoting moves to Review.
func (r *Run) FinishQuoting() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.activeLocked(Quoting, "finish quoting"); err != nil {
		return err
	}
	next, err := r.phase.FinishQuoting()
	if err != nil {
		return err
	}
	r.phase = next
	r.touchLocked()
	return nil
}

// Quotes returns copies of the recorded quote outcomes of the selected orders,
// in selection order.
func (r *Run) Quotes() []shipment.QuoteSelection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.quotesLocked()
}

// ApplyCost prices the current quotes against balance and stores the summary
// shown during Review.
func (r *Run) ApplyCost(pricer Pricer, balance kernel.Money) (CostSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.activeLocked(Review, "apply cost"); err != nil {
		return CostSummary{}, err
	}
	summary := r.summaryLocked(pricer, balance)
	r.cost = &summary
	r.touchLocked()
	return summary, nil
}

// ChooseRate records the human pick of a single-order run.
func (r *Run) ChooseRate(orderID kernel.UUID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.mode != Single {
		return ErrManualPickNotAllowed
	}
	if err := r.activeLocked(Review, "choose rate"); err != nil {
		return err
	}
	q, ok := r.quotes[orderID]
	if !ok {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}
	if err := q.Choose(token); err != nil {
		return err
	}
	r.touchLocked()
	return nil
}

// BeginGeneration prices the selected rates against balance, applies the hard
// balance block and moves to Generating. Pricing and the phase change happen
// under one lock, so no rate can be picked in between. It returns the orders
// holding a selected rate, in selection order; orders whose quote failed are
// left out.
func (r *Run) BeginGeneration(pricer Pricer, balance kernel.Money) ([]*order.Order, CostSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.activeLocked(Review, "start generation"); err != nil {
		return nil, CostSummary{}, err
	}

	items := make([]*order.Order, 0, len(r.quotes))
	pending := false
	for _, o := range r.selectedLocked() {
		q, ok := r.quotes[o.ID()]
		if !ok || q.Failed() {
			continue
		}
		if !q.Succeeded() {
			pending = true
			continue
		}
		items = append(items, o)
	}
	if len(items) == 0 {
		if pending {
			return nil, CostSummary{}, shipment.ErrRateNotChosen
		}
		return nil, CostSummary{}, ErrNothingToGenerate
	}

	summary := r.summaryLocked(pricer, balance)
	r.cost = &summary
	if err := summary.Check(); err != nil {
		r.touchLocked()
		return nil, summary, err
	}

	next, err := r.phase.StartGeneration()
	if err != nil {
		return nil, summary, err
	}
	r.phase = next
	r.generationProgress = NewProgress(len(items))
	r.touchLocked()
	return items, summary, nil
}

// ConsumeRate hands out the selected rate token of one order. A token is handed
// out once.
func (r *Run) ConsumeRate(orderID kernel.UUID) (shipment.RateQuote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.activeLocked(Generating, "consume rate"); err != nil {
		return shipment.RateQuote{}, err
	}
	q, ok := r.quotes[orderID]
	if !ok {
		return shipment.RateQuote{}, errs.NewObjectNotFoundError("orderId", orderID.String())
	}
	return q.Consume()
}

// RecordGenerated counts an issued label.
func (r *Run) RecordGenerated(orderID kernel.UUID, label shipment.Label) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.recordableLocked(orderID); err != nil {
		return err
	}
	r.labels[orderID] = label
	r.generated++
	r.generationProgress = r.generationProgress.Advance()
	r.touchLocked()
	return nil
}

// RecordFailed counts a failed label and appends its message to the error list.
func (r *Run) RecordFailed(orderID kernel.UUID, failure *shipment.GenerationError) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if failure == nil {
		return errs.NewValueIsRequiredError("failure")
	}
	if err := r.recordableLocked(orderID); err != nil {
		return err
	}
	r.failures[orderID] = failure
	r.failed++
	r.errors = append(r.errors, failure.Error())
	r.generationProgress = r.generationProgress.Advance()
	r.touchLocked()
	return nil
}

// Finish moves to Complete.
func (r *Run) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.activeLocked(Generating, "finish generation"); err != nil {
		return err
	}
	next, err := r.phase.Finish()
	if err != nil {
		return err
	}
	r.phase = next
	r.touchLocked()
	return nil
}

// Cancel marks the run as discarded. Running loops stop before their next item.
func (r *Run) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelled = true
	r.touchLocked()
}

func (r *Run) selectedLocked() []*order.Order {
	selected := make([]*order.Order, 0, len(r.selected))
	for _, o := range r.candidates {
		if _, ok := r.selected[o.ID()]; ok {
			selected = append(selected, o)
		}
	}
	return selected
}

func (r *Run) quotesLocked() []shipment.QuoteSelection {
	quotes := make([]shipment.QuoteSelection, 0, len(r.quotes))
	for _, o := range r.selectedLocked() {
		if q, ok := r.quotes[o.ID()]; ok {
			quotes = append(quotes, *q)
		}
	}
	return quotes
}

func (r *Run) summaryLocked(pricer Pricer, balance kernel.Money) CostSummary {
	return CostSummary{
		Total:   pricer.Total(r.quotesLocked()),
		Balance: balance,
	}
}

func (r *Run) isCandidateLocked(orderID kernel.UUID) bool {
	return slices.ContainsFunc(r.candidates, func(o *order.Order) bool { return o.ID().IsEqual(orderID) })
}

func (r *Run) editableLocked(action string) error {
	if r.mode == Single {
		return &PhaseError{Phase: r.phase, Action: action + " of a single-order run"}
	}
	return r.activeLocked(Select, action)
}

func (r *Run) activeLocked(phase Phase, action string) error {
	if r.cancelled {
		return ErrRunCancelled
	}
	return r.phase.require(phase, action)
}

func (r *Run) recordableLocked(orderID kernel.UUID) error {
	if err := r.activeLocked(Generating, "record label"); err != nil {
		return err
	}
	if _, ok := r.quotes[orderID]; !ok {
		return errs.NewObjectNotFoundError("orderId", orderID.String())
	}
	_, issued := r.labels[orderID]
	_, failed := r.failures[orderID]
	if issued || failed {
		return errs.NewValueIsInvalidErrorWithCause("orderId", errors.New("label outcome already recorded"))
	}
	return nil
}

func (r *Run) touchLocked() {
	r.updatedAt = time.Now()
}
