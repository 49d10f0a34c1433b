// Package servers holds the HTTP contract of the shipping API: the OpenAPI
// document, its wire types and the echo routing glue around ServerInterface.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error defines model for Error.
type Error struct {
	Code      int      `json:"code"`
	Message   string   `json:"message"`
	Shortfall *float64 `json:"shortfall,omitempty"`
}

// Order defines model for Order.
type Order struct {
	Id            openapi_types.UUID `json:"id"`
	Number        string             `json:"number"`
	CustomerName  string             `json:"customerName,omitempty"`
	City          string             `json:"city"`
	Department    string             `json:"department"`
	DeclaredValue float64            `json:"declaredValue"`
	Weight        float64            `json:"weight,omitempty"`
}

// NewSingleOrderRun defines model for NewSingleOrderRun.
type NewSingleOrderRun struct {
	OriginCode     string `json:"originCode"`
	CashOnDelivery bool   `json:"cashOnDelivery,omitempty"`
}

// RateChoice defines model for RateChoice.
type RateChoice struct {
	RateToken string `json:"rateToken"`
}

// RunCreated defines model for RunCreated.
type RunCreated struct {
	RunId openapi_types.UUID `json:"runId"`
}

// Balance defines model for Balance.
type Balance struct {
	Balance float64 `json:"balance"`
}

// Rate defines model for Rate.
type Rate struct {
	RateToken    string  `json:"rateToken"`
	Carrier      string  `json:"carrier"`
	Service      string  `json:"service,omitempty"`
	Freight      float64 `json:"freight"`
	Insurance    float64 `json:"insurance"`
	Cost         float64 `json:"cost"`
	DeliveryDays int     `json:"deliveryDays"`
}

// Label defines model for Label.
type Label struct {
	TrackingNumber string `json:"trackingNumber"`
	LabelUrl       string `json:"labelUrl,omitempty"`
}

// RunItem defines model for RunItem.
type RunItem struct {
	OrderId            openapi_types.UUID `json:"orderId"`
	OrderNumber        string             `json:"orderNumber"`
	City               string             `json:"city,omitempty"`
	Department         string             `json:"department,omitempty"`
	Selected           bool               `json:"selected"`
	Offers             []Rate             `json:"offers,omitempty"`
	SelectedRate       *Rate              `json:"selectedRate,omitempty"`
	RecommendedCarrier string             `json:"recommendedCarrier,omitempty"`
	QuoteError         string             `json:"quoteError,omitempty"`
	Label              *Label             `json:"label,omitempty"`
	GenerationError    string             `json:"generationError,omitempty"`
}

// Cost defines model for Cost.
type Cost struct {
	Total      float64 `json:"total"`
	Balance    float64 `json:"balance"`
	Sufficient bool    `json:"sufficient"`
	Shortfall  float64 `json:"shortfall"`
}

// RunReport defines model for RunReport.
type RunReport struct {
	RunId              openapi_types.UUID `json:"runId"`
	Mode               string             `json:"mode"`
	Phase              string             `json:"phase"`
	Origin             string             `json:"origin,omitempty"`
	Items              []RunItem          `json:"items"`
	QuoteProgress      float64            `json:"quoteProgress"`
	GenerationProgress float64            `json:"generationProgress"`
	Cost               *Cost              `json:"cost,omitempty"`
	Generated          int                `json:"generated"`
	Failed             int                `json:"failed"`
	Errors             []string           `json:"errors"`
	Cancelled          bool               `json:"cancelled"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}
