// Package orderrepo maps order aggregates to the orders table shared with the
// store front. The shipping service reads every column and writes back only the
// tracking number.
package orderrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of the orders table. An empty tracking number marks
// an unshipped order; the partial index keeps the candidate listing cheap.
type OrderDTO struct {
	ID             uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Number         string        `gorm:"size:64;not null;uniqueIndex"`
	Customer       CustomerDTO   `gorm:"embedded;embeddedPrefix:customer_"`
	Address        AddressDTO    `gorm:"embedded;embeddedPrefix:address_"`
	DeclaredValue  int64         `gorm:"not null;default:0"`
	Dimensions     DimensionsDTO `gorm:"embedded"`
	TrackingNumber string        `gorm:"size:64;not null;default:'';index:idx_orders_unshipped,where:tracking_number = ''"`
	CreatedAt      time.Time     `gorm:"autoCreateTime;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO holds the contact columns printed on the label.
type CustomerDTO struct {
	Name  string
	Phone string
	Email string
}

// AddressDTO holds the delivery address columns.
type AddressDTO struct {
	Line       string
	City       string `gorm:"index"`
	Department string
}

// DimensionsDTO holds the optional parcel measures; zero means unknown.
type DimensionsDTO struct {
	Weight float64
	Height float64
	Width  float64
	Length float64
}

// NewOrderDTO maps an order to its row.
func NewOrderDTO(o *order.Order) OrderDTO {
	customer := o.Customer()
	address := o.Address()
	dims := o.Dimensions()

	return OrderDTO{
		ID:     o.ID().Bytes(),
		Number: o.Number(),
		Customer: CustomerDTO{
			Name:  customer.Name,
			Phone: customer.Phone,
			Email: customer.Email,
		},
		Address: AddressDTO{
			Line:       address.Line,
			City:       address.City,
			Department: address.Department,
		},
		DeclaredValue: o.DeclaredValue().Cents(),
		Dimensions: DimensionsDTO{
			Weight: dims.Weight,
			Height: dims.Height,
			Width:  dims.Width,
			Length: dims.Length,
		},
		TrackingNumber: o.TrackingNumber(),
	}
}

// toDomain rebuilds the aggregate with RestoreOrder so the status follows the
// stored tracking number.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		order.Customer{
			Name:  dto.Customer.Name,
			Phone: dto.Customer.Phone,
			Email: dto.Customer.Email,
		},
		order.Address{
			Line:       dto.Address.Line,
			City:       dto.Address.City,
			Department: dto.Address.Department,
		},
		kernel.NewMoney(dto.DeclaredValue),
		order.Dimensions{
			Weight: dto.Dimensions.Weight,
			Height: dto.Dimensions.Height,
			Width:  dto.Dimensions.Width,
			Length: dto.Dimensions.Length,
		},
		dto.TrackingNumber,
	)
}
