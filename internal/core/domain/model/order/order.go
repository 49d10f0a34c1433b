package order

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Customer holds the contact fields of the buyer. Any of them may be blank.
type Customer struct {
	Name  string
	Phone string
	Email string
}

// Address is the shipping address as typed by the buyer.
type Address struct {
	Line       string
	City       string
	Department string
}

// Dimensions are the optional parcel measures stored on the order. Zero means unknown.
type Dimensions struct {
	Weight float64
	Height float64
	Width  float64
	Length float64
}

// Order is a merchant order as seen by the shipping workflow. It is owned by the
// store front; this service only reads it and records the tracking number once a
// label is issued.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-blank order number
//   - Declared value is never negative
//   - Status is Shipped exactly when the tracking number is non-blank
type Order struct {
	id             kernel.UUID
	number         string
	customer       Customer
	address        Address
	declaredValue  kernel.Money
	dimensions     Dimensions
	trackingNumber string
	status         Status

	isConstructed bool
}

// NewOrder creates a Pending order.
//
// Parameters:
//   - id: unique identifier
//   - number: merchant facing order number, e.g. "1042"
//   - customer, address: contact data copied onto the label
//   - declaredValue: insured value sent to the aggregator
//   - dimensions: optional parcel measures
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "1042",
//	    order.Customer{Name: "Ana Ruiz"},
//	    order.Address{Line: "Cra 7 # 12-30", City: "Medellín", Department: "Antioquia"},
//	    kernel.MoneyFromFloat(85000), order.Dimensions{Weight: 2})
func NewOrder(
	id kernel.UUID,
	number string,
	customer Customer,
	address Address,
	declaredValue kernel.Money,
	dimensions Dimensions,
) (*Order, error) {
	order := &Order{
		customer:      customer,
		address:       address,
		dimensions:    dimensions,
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setNumber(number),
		order.setDeclaredValue(declaredValue),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rebuilds an order loaded from storage. The status follows the
// tracking number.
func RestoreOrder(
	id kernel.UUID,
	number string,
	customer Customer,
	address Address,
	declaredValue kernel.Money,
	dimensions Dimensions,
	trackingNumber string,
) (*Order, error) {
	o, err := NewOrder(id, number, customer, address, declaredValue, dimensions)
	if err != nil {
		return nil, err
	}

	if tracking := strings.TrimSpace(trackingNumber); tracking != "" {
		o.trackingNumber = tracking
		o.status = Shipped
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the merchant facing order number.
func (o *Order) Number() string {
	return o.number
}

func (o *Order) Customer() Customer {
	return o.customer
}

func (o *Order) Address() Address {
	return o.address
}

// DeclaredValue returns the value declared to the carrier.
func (o *Order) DeclaredValue() kernel.Money {
	return o.declaredValue
}

func (o *Order) Dimensions() Dimensions {
	return o.dimensions
}

// TrackingNumber returns the issued tracking number, "" while Pending.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// IsShipped reports whether a label was already issued for the order.
func (o *Order) IsShipped() bool {
	return o.status == Shipped
}

// Package describes the parcel to quote, applying the default profile to every
// measure the order leaves unset.
func (o *Order) Package() shipment.Package {
	d := o.dimensions
	return shipment.NewPackage(d.Weight, d.Height, d.Width, d.Length)
}

// Recipient returns the label contact data with placeholders for blank fields.
func (o *Order) Recipient() shipment.Recipient {
	return shipment.NewRecipient(o.customer.Name, o.customer.Phone, o.customer.Email)
}

// Ship records the tracking number of an issued label.
//
// Returns an error if the tracking number is blank or the order already shipped.
//
// Example:
//
//	if err := o.Ship(label.TrackingNumber); err != nil {
//	    // already shipped or bad tracking number
//	}
func (o *Order) Ship(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}

	newStatus, err := o.status.Ship()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.trackingNumber = trackingNumber
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.number = number
	return nil
}

func (o *Order) setDeclaredValue(value kernel.Money) error {
	if value.IsNegative() {
		return errs.NewValueIsOutOfRangeError("declaredValue", value, 0, "unbounded")
	}
	o.declaredValue = value
	return nil
}
