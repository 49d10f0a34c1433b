// Package http exposes the shipping workflow over a JSON API.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/batch"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/generated/servers"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// CommandHandler is satisfied by the command handlers that return nothing but an error.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, command C) error
}

// ResultHandler is satisfied by the handlers that return a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, command C) (R, error)
}

// Handlers groups the use cases behind the API.
type Handlers struct {
	OpenBatchRun       ResultHandler[commands.OpenBatchRunCommand, kernel.UUID]
	OpenSingleOrderRun ResultHandler[commands.OpenSingleOrderRunCommand, kernel.UUID]
	ChangeSelection    CommandHandler[commands.ChangeSelectionCommand]
	StartQuoting       CommandHandler[commands.StartQuotingCommand]
	ChooseRate         CommandHandler[commands.ChooseRateCommand]
	ConfirmGeneration  CommandHandler[commands.ConfirmGenerationCommand]
	CancelRun          CommandHandler[commands.CancelRunCommand]

	GetRunReport       ResultHandler[queries.GetRunReportQuery, batch.Report]
	GetBalance         ResultHandler[queries.GetBalanceQuery, queries.GetBalanceQueryResponse]
	GetUnshippedOrders ResultHandler[queries.GetUnshippedOrdersQuery, []queries.GetUnshippedOrdersQueryResponse]
}

// Server implements servers.ServerInterface.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{h: handlers, logger: logger.With("component", "http")}
}

// ListUnshippedOrders handles GET /api/v1/orders.
func (s *Server) ListUnshippedOrders(ctx echo.Context) error {
	orders, err := s.h.GetUnshippedOrders.Handle(ctx.Request().Context(), queries.NewGetUnshippedOrdersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]servers.Order, len(orders))
	for i, o := range orders {
		response[i] = servers.Order{
			Id:            o.ID.Bytes(),
			Number:        o.Number,
			CustomerName:  o.CustomerName,
			City:          o.City,
			Department:    o.Department,
			DeclaredValue: o.DeclaredValue.Float64(),
			Weight:        o.Weight,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// OpenBatchRun handles POST /api/v1/runs.
func (s *Server) OpenBatchRun(ctx echo.Context) error {
	runID, err := s.h.OpenBatchRun.Handle(ctx.Request().Context(), commands.NewOpenBatchRunCommand())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.RunCreated{RunId: runID.Bytes()})
}

// OpenSingleOrderRun handles POST /api/v1/orders/{orderId}/runs.
func (s *Server) OpenSingleOrderRun(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.NewSingleOrderRun
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewOpenSingleOrderRunCommand(orderID, body.OriginCode, body.CashOnDelivery)
	if err != nil {
		return s.fail(ctx, err)
	}

	runID, err := s.h.OpenSingleOrderRun.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.RunCreated{RunId: runID.Bytes()})
}

// GetRun handles GET /api/v1/runs/{runId}.
func (s *Server) GetRun(ctx echo.Context, runId openapi_types.UUID) error {
	runID, err := toKernelUUID(runId)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetRunReportQuery(runID)
	if err != nil {
		return s.fail(ctx, err)
	}

	report, err := s.h.GetRunReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRunReport(report))
}

// CancelRun handles DELETE /api/v1/runs/{runId}.
func (s *Server) CancelRun(ctx echo.Context, runId openapi_types.UUID) error {
	return s.runCommand(ctx, runId, http.StatusNoContent, func(c context.Context, id kernel.UUID) error {
		cmd, err := commands.NewCancelRunCommand(id)
		if err != nil {
			return err
		}
		return s.h.CancelRun.Handle(c, cmd)
	})
}

// ToggleSelection handles POST /api/v1/runs/{runId}/selection/{orderId}.
func (s *Server) ToggleSelection(ctx echo.Context, runId openapi_types.UUID, orderId openapi_types.UUID) error {
	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.changeSelection(ctx, runId, commands.ToggleOrder, orderID)
}

// SelectAll handles POST /api/v1/runs/{runId}/select-all.
func (s *Server) SelectAll(ctx echo.Context, runId openapi_types.UUID) error {
	return s.changeSelection(ctx, runId, commands.SelectAll, kernel.UUID{})
}

// DeselectAll handles POST /api/v1/runs/{runId}/deselect-all.
func (s *Server) DeselectAll(ctx echo.Context, runId openapi_types.UUID) error {
	return s.changeSelection(ctx, runId, commands.DeselectAll, kernel.UUID{})
}

// StartQuoting handles POST /api/v1/runs/{runId}/quote. Quoting continues in the
// background; poll GET /runs/{runId} for progress.
func (s *Server) StartQuoting(ctx echo.Context, runId openapi_types.UUID) error {
	return s.runCommand(ctx, runId, http.StatusAccepted, func(c context.Context, id kernel.UUID) error {
		cmd, err := commands.NewStartQuotingCommand(id)
		if err != nil {
			return err
		}
		return s.h.StartQuoting.Handle(c, cmd)
	})
}

// ChooseRate handles POST /api/v1/runs/{runId}/orders/{orderId}/rate.
func (s *Server) ChooseRate(ctx echo.Context, runId openapi_types.UUID, orderId openapi_types.UUID) error {
	var body servers.RateChoice
	if err := ctx.Bind(&body); err != nil {
		return s.fail(ctx, echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"))
	}

	orderID, err := toKernelUUID(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	return s.runCommand(ctx, runId, http.StatusNoContent, func(c context.Context, id kernel.UUID) error {
		cmd, err := commands.NewChooseRateCommand(id, orderID, body.RateToken)
		if err != nil {
			return err
		}
		return s.h.ChooseRate.Handle(c, cmd)
	})
}

// ConfirmGeneration handles POST /api/v1/runs/{runId}/generate. A short balance
// answers 409 with the shortfall.
func (s *Server) ConfirmGeneration(ctx echo.Context, runId openapi_types.UUID) error {
	return s.runCommand(ctx, runId, http.StatusAccepted, func(c context.Context, id kernel.UUID) error {
		cmd, err := commands.NewConfirmGenerationCommand(id)
		if err != nil {
			return err
		}
		return s.h.ConfirmGeneration.Handle(c, cmd)
	})
}

// GetBalance handles GET /api/v1/balance.
func (s *Server) GetBalance(ctx echo.Context) error {
	resp, err := s.h.GetBalance.Handle(ctx.Request().Context(), queries.NewGetBalanceQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.Balance{Balance: resp.Balance.Float64()})
}

func (s *Server) changeSelection(
	ctx echo.Context,
	runId openapi_types.UUID,
	action commands.SelectionAction,
	orderID kernel.UUID,
) error {
	return s.runCommand(ctx, runId, http.StatusNoContent, func(c context.Context, id kernel.UUID) error {
		cmd, err := commands.NewChangeSelectionCommand(id, action, orderID)
		if err != nil {
			return err
		}
		return s.h.ChangeSelection.Handle(c, cmd)
	})
}

func (s *Server) runCommand(
	ctx echo.Context,
	runId openapi_types.UUID,
	status int,
	fn func(context.Context, kernel.UUID) error,
) error {
	runID, err := toKernelUUID(runId)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = fn(ctx.Request().Context(), runID); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.NoContent(status)
}

func toKernelUUID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}
