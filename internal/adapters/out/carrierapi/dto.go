package carrierapi

// Wire shapes of the aggregator API. Amounts are pesos as JSON numbers.

type packageDTO struct {
	Weight float64 `json:"weight"`
	Height float64 `json:"height"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

type codDTO struct {
	Enabled       bool    `json:"enabled"`
	CollectAmount float64 `json:"collect_amount"`
}

type quoteRequestDTO struct {
	Origin        string       `json:"origin"`
	Destination   string       `json:"destination"`
	Packages      []packageDTO `json:"packages"`
	DeclaredValue float64      `json:"declared_value"`
	COD           codDTO       `json:"cod"`
}

type rateDTO struct {
	RateToken    string  `json:"rate_token"`
	Carrier      string  `json:"carrier"`
	Service      string  `json:"service"`
	Freight      float64 `json:"freight"`
	MinInsurance float64 `json:"min_insurance"`
	DeliveryDays int     `json:"delivery_days"`
}

type quoteResponseDTO struct {
	Rates []rateDTO `json:"rates"`
}

type destinationDTO struct {
	Address          string `json:"address"`
	City             string `json:"city"`
	Department       string `json:"department"`
	MunicipalityCode string `json:"municipality_code"`
}

type recipientDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type labelRequestDTO struct {
	RateToken     string         `json:"rate_token"`
	OrderNumber   string         `json:"order_number"`
	Origin        string         `json:"origin"`
	Destination   destinationDTO `json:"destination"`
	Recipient     recipientDTO   `json:"recipient"`
	Package       packageDTO     `json:"package"`
	DeclaredValue float64        `json:"declared_value"`
	COD           codDTO         `json:"cod"`
}

type labelResponseDTO struct {
	TrackingNumber string `json:"tracking_number"`
	LabelURL       string `json:"label_url"`
}

type errorDTO struct {
	Message string `json:"message"`
}
