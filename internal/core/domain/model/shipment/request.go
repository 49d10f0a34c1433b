package shipment

import (
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// Contact placeholders sent to the label issuer when an order lacks the field.
const (
	PlaceholderRecipientName  = "Cliente"
	PlaceholderRecipientPhone = "3000000000"
	PlaceholderRecipientEmail = "sin-correo@envios.co"
)

// CODSettings controls cash-on-delivery collection for a shipment.
type CODSettings struct {
	Enabled       bool
	CollectAmount kernel.Money
}

// NoCOD is used by the batch flow, which never collects on delivery.
func NoCOD() CODSettings {
	return CODSettings{}
}

// CollectOnDelivery returns settings collecting the given amount.
func CollectOnDelivery(amount kernel.Money) CODSettings {
	return CODSettings{Enabled: true, CollectAmount: amount}
}

// QuoteRequest is the input of one RateAggregator call. Origin and Destination
// are municipality codes.
type QuoteRequest struct {
	Origin        string
	Destination   string
	Packages      []Package
	DeclaredValue kernel.Money
	COD           CODSettings
}

// NewQuoteRequest builds a single-parcel request.
func NewQuoteRequest(
	origin, destination string,
	pkg Package,
	declaredValue kernel.Money,
	cod CODSettings,
) (QuoteRequest, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return QuoteRequest{}, errs.NewValueIsRequiredError("origin")
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return QuoteRequest{}, errs.NewValueIsRequiredError("destination")
	}

	return QuoteRequest{
		Origin:        origin,
		Destination:   destination,
		Packages:      []Package{pkg},
		DeclaredValue: declaredValue,
		COD:           cod,
	}, nil
}

// Recommendation is the advisory carrier suggestion for a destination.
type Recommendation struct {
	Carrier   string
	Reasoning string
}

// Recipient holds the contact data printed on the label.
type Recipient struct {
	Name  string
	Phone string
	Email string
}

// NewRecipient fills every blank field with its placeholder, so a label request
// never fails because of missing customer contact data.
func NewRecipient(name, phone, email string) Recipient {
	return Recipient{
		Name:  orPlaceholder(name, PlaceholderRecipientName),
		Phone: orPlaceholder(phone, PlaceholderRecipientPhone),
		Email: orPlaceholder(email, PlaceholderRecipientEmail),
	}
}

// Destination is the delivery address of a label request.
type Destination struct {
	Address          string
	City             string
	Department       string
	MunicipalityCode string
}

// LabelRequest is the input of one LabelIssuer call.
type LabelRequest struct {
	RateToken     string
	OrderNumber   string
	Origin        string
	Destination   Destination
	Recipient     Recipient
	Package       Package
	DeclaredValue kernel.Money
	COD           CODSettings
}

// Label is the issued shipping guide.
type Label struct {
	TrackingNumber string
	LabelURL       string
}

func orPlaceholder(value, placeholder string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return placeholder
}
