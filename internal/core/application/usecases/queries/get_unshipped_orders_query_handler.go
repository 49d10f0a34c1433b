package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUnshippedOrdersQueryHandler reads the unshipped orders straight from the
// orders table, bypassing the aggregate mapping.
type GetUnshippedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUnshippedOrdersQueryHandler creates the handler.
func NewGetUnshippedOrdersQueryHandler(db *gorm.DB) GetUnshippedOrdersQueryHandler {
	return GetUnshippedOrdersQueryHandler{db: db}
}

// Handle returns every order with an empty tracking number, oldest first.
func (h GetUnshippedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUnshippedOrdersQuery,
) ([]GetUnshippedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUnshippedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_name,
			address_city,
			address_department,
			declared_value,
			weight
		FROM orders
		WHERE tracking_number = ''
		ORDER BY created_at, number
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUnshippedOrdersQueryResponse
		var id uuid.UUID
		var declaredValue int64

		err = rows.Scan(
			&id,
			&resp.Number,
			&resp.CustomerName,
			&resp.City,
			&resp.Department,
			&declaredValue,
			&resp.Weight,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.DeclaredValue = kernel.NewMoney(declaredValue)

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
