package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/application/usecases/queries"
	"tailoring/internal/generated/servers"
	"tailoring/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

const orderPlacedStatus = "order placed successfully"

type PlaceOrderHandler interface {
	Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (commands.PlaceOrderResult, error)
}

type TrackOrderHandler interface {
	Handle(ctx context.Context, query queries.TrackOrderQuery) (queries.TrackOrderQueryResponse, error)
}

// Server implements the ServerInterface for handling HTTP requests.
// Rejections are answered with 404 and the plain-text reason, nothing else.
type Server struct {
	placeOrderHandler PlaceOrderHandler
	trackOrderHandler TrackOrderHandler
	logger            *slog.Logger
}

func NewServer(
	placeOrderHandler PlaceOrderHandler,
	trackOrderHandler TrackOrderHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		placeOrderHandler: placeOrderHandler,
		trackOrderHandler: trackOrderHandler,
		logger:            logger.With("component", "http_server"),
	}
}

// PlaceOrder handles POST /placeorder.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	var req servers.PlaceOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewPlaceOrderCommand(req.PersonId, req.Fabric)
	if err != nil {
		return ctx.String(http.StatusBadRequest, "Invalid request body")
	}

	reqCtx := ctx.Request().Context()
	result, err := s.placeOrderHandler.Handle(reqCtx, cmd)
	switch {
	case commands.IsIntakeRejection(err):
		return s.reject(ctx, err)
	case err != nil && result.OrderID.Validate() == nil:
		// committed but not handed off; it resumes on the next start
		s.logger.WarnContext(reqCtx, "order placed but not scheduled",
			"order_id", result.OrderID.String(),
			"error", err,
		)
	case err != nil:
		s.logger.ErrorContext(reqCtx, "place order failed",
			"person_id", req.PersonId,
			"fabric", req.Fabric,
			"error", err,
		)
		return ctx.String(http.StatusInternalServerError, "Failed to place order")
	}

	metrics.OrdersPlaced.Inc()
	return ctx.JSON(http.StatusOK, servers.PlaceOrderResponse{
		Status:  orderPlacedStatus,
		OrderId: result.OrderID.String(),
	})
}

// TrackOrder handles GET /trackorder.
func (s *Server) TrackOrder(ctx echo.Context, params servers.TrackOrderParams) error {
	query, err := queries.NewTrackOrderQuery(params.OrderId)
	if err != nil {
		return ctx.String(http.StatusNotFound, queries.ErrOrderNotFound.Error())
	}

	reqCtx := ctx.Request().Context()
	found, err := s.trackOrderHandler.Handle(reqCtx, query)
	if errors.Is(err, queries.ErrOrderNotFound) {
		return ctx.String(http.StatusNotFound, queries.ErrOrderNotFound.Error())
	}
	if err != nil {
		s.logger.ErrorContext(reqCtx, "track order failed", "order_id", params.OrderId, "error", err)
		return ctx.String(http.StatusInternalServerError, "Failed to track order")
	}

	return ctx.JSON(http.StatusOK, servers.TrackOrderResponse{
		OrderId: found.OrderID,
		Fabric:  found.Fabric,
		Stage:   found.Stage,
	})
}

func (s *Server) reject(ctx echo.Context, reason error) error {
	metrics.IntakeRejections.WithLabelValues(reason.Error()).Inc()
	return ctx.String(http.StatusNotFound, reason.Error())
}
