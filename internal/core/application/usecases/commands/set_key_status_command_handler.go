package commands

import (
	"context"
	"fmt"

	"ordertrack/internal/core/domain/model/kernel"
	"ordertrack/internal/core/domain/model/order"
	"ordertrack/internal/core/ports"
	"ordertrack/internal/pkg/errs"
)

// SetKeyStatusCommandHandler persists a key-handoff change and dispatches key_status_changed.
type SetKeyStatusCommandHandler struct {
	sessions   OrderSessionFactory
	dispatcher ports.EventDispatcher
	clock      kernel.Clock
}

func NewSetKeyStatusCommandHandler(
	sessions OrderSessionFactory, dispatcher ports.EventDispatcher, clock kernel.Clock,
) SetKeyStatusCommandHandler {
	return SetKeyStatusCommandHandler{sessions: sessions, dispatcher: dispatcher, clock: clock}
}

func (h SetKeyStatusCommandHandler) Handle(ctx context.Context, cmd SetKeyStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	session, err := h.sessions.Open(ctx)
	if err != nil {
		return nil, err
	}
	orders := session.OrderRepository()

	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if actor.Role() == order.RoleRequester && !o.IsOwnedBy(actor.UserID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause("key status is invalid",
			fmt.Errorf("%w: %s", order.ErrActorIsNotOwner, o.ID()))
	}

	if err = o.SetKeyStatus(cmd.KeyStatus(), cmd.Confirmed(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.dispatcher, o)
	return o, nil
}
