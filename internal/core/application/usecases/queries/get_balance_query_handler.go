package queries

import (
	"context"

	"shipping/internal/core/ports"
)

type GetBalanceQueryHandler struct {
	ledger ports.BalanceLedger
}

func NewGetBalanceQueryHandler(ledger ports.BalanceLedger) GetBalanceQueryHandler {
	return GetBalanceQueryHandler{ledger: ledger}
}

func (h GetBalanceQueryHandler) Handle(ctx context.Context, query GetBalanceQuery) (GetBalanceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetBalanceQueryResponse{}, err
	}

	balance, err := h.ledger.Balance(ctx)
	if err != nil {
		return GetBalanceQueryResponse{}, err
	}

	return GetBalanceQueryResponse{Balance: balance}, nil
}
