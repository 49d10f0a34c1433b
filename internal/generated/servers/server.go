package servers

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

//go:embed openapi.yaml
var openAPISpec []byte

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Orders without a tracking number, oldest first
	// (GET /api/v1/orders)
	ListUnshippedOrders(ctx echo.Context) error
	// Open a single-order run
	// (POST /api/v1/orders/{orderId}/runs)
	OpenSingleOrderRun(ctx echo.Context, orderId openapi_types.UUID) error
	// Open a batch run over every unshipped order
	// (POST /api/v1/runs)
	OpenBatchRun(ctx echo.Context) error
	// Progress and outcomes of a run
	// (GET /api/v1/runs/{runId})
	GetRun(ctx echo.Context, runId openapi_types.UUID) error
	// Cancel and discard a run
	// (DELETE /api/v1/runs/{runId})
	CancelRun(ctx echo.Context, runId openapi_types.UUID) error
	// (POST /api/v1/runs/{runId}/selection/{orderId})
	ToggleSelection(ctx echo.Context, runId openapi_types.UUID, orderId openapi_types.UUID) error
	// (POST /api/v1/runs/{runId}/select-all)
	SelectAll(ctx echo.Context, runId openapi_types.UUID) error
	// (POST /api/v1/runs/{runId}/deselect-all)
	DeselectAll(ctx echo.Context, runId openapi_types.UUID) error
	// (POST /api/v1/runs/{runId}/quote)
	StartQuoting(ctx echo.Context, runId openapi_types.UUID) error
	// (POST /api/v1/runs/{runId}/orders/{orderId}/rate)
	ChooseRate(ctx echo.Context, runId openapi_types.UUID, orderId openapi_types.UUID) error
	// (POST /api/v1/runs/{runId}/generate)
	ConfirmGeneration(ctx echo.Context, runId openapi_types.UUID) error
	// (GET /api/v1/balance)
	GetBalance(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUID(ctx echo.Context, name string) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, ctx.Param(name), &id)
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func (w *ServerInterfaceWrapper) ListUnshippedOrders(ctx echo.Context) error {
	return w.Handler.ListUnshippedOrders(ctx)
}

func (w *ServerInterfaceWrapper) OpenSingleOrderRun(ctx echo.Context) error {
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.OpenSingleOrderRun(ctx, orderId)
}

func (w *ServerInterfaceWrapper) OpenBatchRun(ctx echo.Context) error {
	return w.Handler.OpenBatchRun(ctx)
}

func (w *ServerInterfaceWrapper) GetRun(ctx echo.Context) error {
	runId, err := bindUUID(ctx, "runId")
	if err != nil {
		return err
	}
	return w.Handler.GetRun(ctx, runId)
}

func (w *ServerInterfaceWrapper) CancelRun(ctx echo.Context) error {
	runId, err := bindUUID(ctx, "runId")
	if err != nil {
		return err
	}
	return w.Handler.CancelRun(ctx, runId)
}

func (w *ServerInterfaceWrapper) ToggleSelection(ctx echo.Context) error {
	runId, err := bindUUID(ctx, "runId")
	if err != nil {
		return err
	}
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ToggleSelection(ctx, runId, orderId)
}

func (w *ServerInterfaceWrapper) SelectAll(ctx echo.Context) error {
	runId, err := bindUUID(ctx, "runId")
	if err != nil {
		return err
	}
	return w.Handler.SelectAll(ctx, runId)
}

func (w *ServerInterfaceWrapper) DeselectAll(ctx echo.Context) error {
	runId, err := bindUUID(ctx, "runId")
	if err != nil {
		return err
	}
	return w.Handler.DeselectAll(ctx, runId)
}

func (w *ServerInterfaceWrapper) StartQuoting(ctx echo.Context) error {
	runId, err := bindUUID(ctx, "runId")
	if err != nil {
		return err
	}
	return w.Handler.StartQuoting(ctx, runId)
}

func (w *ServerInterfaceWrapper) ChooseRate(ctx echo.Context) error {
	runId, err := bindUUID(ctx, "runId")
	if err != nil {
		return err
	}
	orderId, err := bindUUID(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.ChooseRate(ctx, runId, orderId)
}

func (w *ServerInterfaceWrapper) ConfirmGeneration(ctx echo.Context) error {
	runId, err := bindUUID(ctx, "runId")
	if err != nil {
		return err
	}
	return w.Handler.ConfirmGeneration(ctx, runId)
}

func (w *ServerInterfaceWrapper) GetBalance(ctx echo.Context) error {
	return w.Handler.GetBalance(ctx)
}

// EchoRouter is the subset of echo.Echo and echo.Group used for registration.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/orders", w.ListUnshippedOrders)
	router.POST(baseURL+"/api/v1/orders/:orderId/runs", w.OpenSingleOrderRun)
	router.POST(baseURL+"/api/v1/runs", w.OpenBatchRun)
	router.GET(baseURL+"/api/v1/runs/:runId", w.GetRun)
	router.DELETE(baseURL+"/api/v1/runs/:runId", w.CancelRun)
	router.POST(baseURL+"/api/v1/runs/:runId/selection/:orderId", w.ToggleSelection)
	router.POST(baseURL+"/api/v1/runs/:runId/select-all", w.SelectAll)
	router.POST(baseURL+"/api/v1/runs/:runId/deselect-all", w.DeselectAll)
	router.POST(baseURL+"/api/v1/runs/:runId/quote", w.StartQuoting)
	router.POST(baseURL+"/api/v1/runs/:runId/orders/:orderId/rate", w.ChooseRate)
	router.POST(baseURL+"/api/v1/runs/:runId/generate", w.ConfirmGeneration)
	router.GET(baseURL+"/api/v1/balance", w.GetBalance)
}

var (
	swaggerOnce sync.Once
	swaggerDoc  *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document. The result is
// shared; callers must not modify it.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openAPISpec)
		if err != nil {
			swaggerErr = fmt.Errorf("error loading spec: %w", err)
			return
		}
		if err = doc.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("invalid spec: %w", err)
			return
		}
		swaggerDoc = doc
	})
	return swaggerDoc, swaggerErr
}

// RawSpec returns the OpenAPI document as written.
func RawSpec() []byte {
	return openAPISpec
}
