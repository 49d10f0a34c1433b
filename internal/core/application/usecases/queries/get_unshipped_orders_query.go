package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var (
	ErrGetUnshippedOrdersQueryIsNotConstructed = errors.New(
		"GetUnshippedOrdersQuery must be created via NewGetUnshippedOrdersQuery constructor",
	)
)

// GetUnshippedOrdersQuery lists the orders still waiting for a label, the same
// set a new batch run starts from.
//
// Example:
//
//	query := NewGetUnshippedOrdersQuery()
//	handler := NewGetUnshippedOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list unshipped orders: %w", err)
//	}
//
//	for _, o := range orders {
//	    fmt.Printf("Orden %s -> %s, %s\n", o.Number, o.City, o.Department)
//	}
type GetUnshippedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetUnshippedOrdersQuery creates a parameterless query.
func NewGetUnshippedOrdersQuery() GetUnshippedOrdersQuery {
	return GetUnshippedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetUnshippedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUnshippedOrdersQueryIsNotConstructed)
}

// GetUnshippedOrdersQueryResponse is one row of the selection screen.
type GetUnshippedOrdersQueryResponse struct {
	ID            kernel.UUID
	Number        string
	CustomerName  string
	City          string
	Department    string
	DeclaredValue kernel.Money
	Weight        float64
}
