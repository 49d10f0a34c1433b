package queries

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"
)

var ErrGetBalanceQueryIsNotConstructed = errors.New(
	"GetBalanceQuery must be created via NewGetBalanceQuery constructor",
)

// GetBalanceQuery reads the prepaid balance labels are charged against.
type GetBalanceQuery struct {
	guard guard.ConstructorGuard
}

func NewGetBalanceQuery() GetBalanceQuery {
	return GetBalanceQuery{guard: guard.NewConstructorGuard()}
}

func (q GetBalanceQuery) Validate() error {
	return q.guard.Validate(ErrGetBalanceQueryIsNotConstructed)
}

// GetBalanceQueryResponse carries the balance at the time of the read.
type GetBalanceQueryResponse struct {
	Balance kernel.Money
}
