package shipment

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// LabelIssued is published after a label was issued and recorded.
type LabelIssued struct {
	RunID          kernel.UUID
	OrderID        kernel.UUID
	OrderNumber    string
	TrackingNumber string
	LabelURL       string
	Carrier        string
	Service        string
	Cost           kernel.Money
	IssuedAt       time.Time
}
