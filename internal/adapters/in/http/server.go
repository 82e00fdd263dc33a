// Package http exposes the order engine over JSON.
//
// Sessions are handled upstream; the caller identity arrives in the X-User-ID and
// X-User-Role headers.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"ordertrack/internal/core/application/usecases/commands"
	"ordertrack/internal/core/application/usecases/queries"
	"ordertrack/internal/core/domain/model/catalog"
	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/pkg/errs"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

type (
	createOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	updateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (*order.Order, error)
	}
	setStatusHandler interface {
		Handle(ctx context.Context, cmd commands.SetStatusCommand) (*order.Order, error)
	}
	setKeyStatusHandler interface {
		Handle(ctx context.Context, cmd commands.SetKeyStatusCommand) (*order.Order, error)
	}
	toggleReadHandler interface {
		Handle(ctx context.Context, cmd commands.ToggleNotificationReadCommand) (bool, error)
	}
	registerUserHandler interface {
		Handle(ctx context.Context, cmd commands.RegisterUserNotificationCommand) error
	}
	activeOrdersHandler interface {
		Handle(ctx context.Context, q queries.ListActiveOrdersQuery) ([]order.Snapshot, error)
	}
	archivedOrdersHandler interface {
		Handle(ctx context.Context, q queries.ListArchivedOrdersQuery) ([]queries.ListArchivedOrdersQueryResponse, error)
	}
	notificationsHandler interface {
		Handle(ctx context.Context, q queries.ListNotificationsQuery) ([]queries.ListNotificationsQueryResponse, error)
	}
	catalogReader interface {
		GetCatalogItems(ctx context.Context) ([]*catalog.Item, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder    createOrderHandler
	UpdateOrder    updateOrderHandler
	SetStatus      setStatusHandler
	SetKeyStatus   setKeyStatusHandler
	ToggleRead     toggleReadHandler
	RegisterUser   registerUserHandler
	ActiveOrders   activeOrdersHandler
	ArchivedOrders archivedOrdersHandler
	Notifications  notificationsHandler
	Catalog        catalogReader
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{h: handlers, logger: logger.With("component", "http_server")}
}

// Register mounts every route on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/catalog", s.GetCatalog)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/archived", s.GetArchivedOrders)
	api.PATCH("/orders/:id", s.UpdateOrder)
	api.PUT("/orders/:id/status", s.SetStatus)
	api.PUT("/orders/:id/key-status", s.SetKeyStatus)
	api.GET("/notifications", s.GetNotifications)
	api.POST("/notifications/:id/toggle-read", s.ToggleNotificationRead)
	api.POST("/users/:id/registered", s.UserRegistered)
}

func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// GetCatalog handles GET /api/v1/catalog - lists the active catalog items.
func (s *Server) GetCatalog(c echo.Context) error {
	items, err := s.h.Catalog.GetCatalogItems(c.Request().Context())
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		if item.IsActive() {
			response = append(response, fromCatalogItem(item))
		}
	}
	return c.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders - the caller becomes the owner.
func (s *Server) CreateOrder(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body NewOrder
	if err := c.Bind(&body); err != nil {
		return badRequest(c)
	}

	intake, err := body.toIntake(actor.UserID())
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewCreateOrderCommand(intake, toRequestedItems(body.Items))
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil && o != nil {
		return s.fail(c, fmt.Errorf("order %s was created without its lines: %w", o.ID(), err))
	}
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, fromSnapshot(o.Snapshot()))
}

// GetActiveOrders handles GET /api/v1/orders/active. Requesters only see their own orders.
func (s *Server) GetActiveOrders(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	orders, err := s.h.ActiveOrders.Handle(c.Request().Context(), queries.NewListActiveOrdersQuery())
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Order, 0, len(orders))
	for _, o := range orders {
		if actor.Role() == order.RoleRequester && o.OwnerID != actor.UserID() {
			continue
		}
		response = append(response, fromSnapshot(o))
	}
	return c.JSON(http.StatusOK, response)
}

// GetArchivedOrders handles GET /api/v1/orders/archived - administrators only.
func (s *Server) GetArchivedOrders(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.fail(c, err)
	}
	if actor.Role() != order.RoleAdmin {
		return c.JSON(http.StatusForbidden, Error{Code: http.StatusForbidden, Message: "administrators only"})
	}

	archived, err := s.h.ArchivedOrders.Handle(c.Request().Context(), queries.NewListArchivedOrdersQuery())
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]ArchivedOrder, 0, len(archived))
	for _, a := range archived {
		response = append(response, fromArchived(a))
	}
	return c.JSON(http.StatusOK, response)
}

// UpdateOrder handles PATCH /api/v1/orders/:id.
func (s *Server) UpdateOrder(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body OrderPatch
	if err := c.Bind(&body); err != nil {
		return badRequest(c)
	}
	patch, err := body.toDomain()
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewUpdateOrderCommand(c.Param("id"), actor, patch)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.UpdateOrder.Handle(c.Request().Context(), cmd)
	return s.orderResult(c, o, err)
}

// SetStatus handles PUT /api/v1/orders/:id/status.
func (s *Server) SetStatus(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body StatusChange
	if err := c.Bind(&body); err != nil {
		return badRequest(c)
	}
	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSetStatusCommand(c.Param("id"), status, actor)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.SetStatus.Handle(c.Request().Context(), cmd)
	return s.orderResult(c, o, err)
}

// SetKeyStatus handles PUT /api/v1/orders/:id/key-status.
func (s *Server) SetKeyStatus(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	var body KeyStatusChange
	if err := c.Bind(&body); err != nil {
		return badRequest(c)
	}
	keyStatus, err := order.ParseKeyStatus(body.KeyStatus)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSetKeyStatusCommand(c.Param("id"), keyStatus, body.Confirmed, actor)
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.h.SetKeyStatus.Handle(c.Request().Context(), cmd)
	return s.orderResult(c, o, err)
}

// GetNotifications handles GET /api/v1/notifications. Administrators read the broadcast
// feed, everyone else their own notifications.
func (s *Server) GetNotifications(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return s.fail(c, err)
	}

	userID := actor.UserID()
	if actor.Role() == order.RoleAdmin {
		userID = ""
	}

	list, err := s.h.Notifications.Handle(c.Request().Context(), queries.NewListNotificationsQuery(userID))
	if err != nil {
		return s.fail(c, err)
	}

	response := make([]Notification, 0, len(list))
	for _, n := range list {
		response = append(response, fromNotification(n))
	}
	return c.JSON(http.StatusOK, response)
}

// ToggleNotificationRead handles POST /api/v1/notifications/:id/toggle-read.
func (s *Server) ToggleNotificationRead(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewToggleNotificationReadCommand(id)
	if err != nil {
		return s.fail(c, err)
	}

	read, err := s.h.ToggleRead.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"read": read})
}

// UserRegistered handles POST /api/v1/users/:id/registered, called by the account layer.
func (s *Server) UserRegistered(c echo.Context) error {
	cmd, err := commands.NewRegisterUserNotificationCommand(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RegisterUser.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusAccepted)
}

// orderResult answers a write that may have committed the order but not its archive.
func (s *Server) orderResult(c echo.Context, o *order.Order, err error) error {
	if err != nil && !(o != nil && errors.Is(err, commands.ErrArchiveIsPending)) {
		return s.fail(c, err)
	}

	resp := fromSnapshot(o.Snapshot())
	if err != nil {
		s.logger.WarnContext(c.Request().Context(), "order saved, archive pending", "order_id", o.ID(), "error", err)
		resp.ArchivePending = true
	}
	return c.JSON(http.StatusOK, resp)
}

func actorOf(c echo.Context) (order.Actor, error) {
	role, err := order.ParseRole(c.Request().Header.Get(HeaderUserRole))
	if err != nil {
		return order.Actor{}, err
	}
	if role == order.RoleSystem {
		return order.Actor{}, errs.NewValueIsInvalidError("role system is not available over http")
	}
	return order.NewActor(c.Request().Header.Get(HeaderUserID), role)
}

func badRequest(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
}

func (s *Server) fail(c echo.Context, err error) error {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method, "path", c.Path(), "error", err)
	}
	return c.JSON(code, Error{Code: code, Message: err.Error()})
}

func statusOf(err error) int {
	var storeErr *errs.StoreError
	switch {
	case errors.Is(err, order.ErrActorIsNotOwner):
		return http.StatusForbidden
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity
	case errors.As(err, &storeErr) && storeErr.Transient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
