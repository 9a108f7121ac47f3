package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/event"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/tracking"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type ReportLocationCommandHandler struct {
	uowFactory UoWFactory
	gate       services.AccessGate
	notifier   notifier
}

func NewReportLocationCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ReportLocationCommandHandler {
	return ReportLocationCommandHandler{
		uowFactory: uowFactory,
		gate:       services.NewAccessGate(),
		notifier:   newNotifier(publisher, logger, "report_location"),
	}
}

func (h ReportLocationCommandHandler) Handle(
	ctx context.Context,
	cmd ReportLocationCommand,
) (*tracking.DriverLocation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.gate.Authorize(cmd.Actor(), services.ActionReportLocation, nil); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentID, err := h.resolveAgent(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	report, err := tracking.NewDriverLocation(cmd.ReportID(), agentID, cmd.Location(), cmd.RecordedAt())
	if err != nil {
		return nil, err
	}

	if err = uow.LocationRepository().Add(ctx, report); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.notify(ctx, event.NewLocationUpdate(report))
	return report, nil
}

func (h ReportLocationCommandHandler) resolveAgent(ctx context.Context, uow UoW, cmd ReportLocationCommand) (kernel.UUID, error) {
	actor := cmd.Actor()
	if actor.Is(user.RoleAgent) {
		if cmd.AgentID() != nil && !cmd.AgentID().IsEqual(actor.UserID) {
			return kernel.UUID{}, errs.NewForbiddenError(actor.Role.String(), "report location for another agent")
		}
		return actor.UserID, nil
	}

	if cmd.AgentID() == nil {
		return kernel.UUID{}, errs.NewValueIsRequiredError("agent_id")
	}
	if err := requireAgent(ctx, uow.UserRepository(), *cmd.AgentID()); err != nil {
		return kernel.UUID{}, err
	}
	return *cmd.AgentID(), nil
}
