package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/user"
	"dispatch/internal/pkg/guard"
)

var ErrReportLocationCommandIsNotConstructed = errors.New(
	"ReportLocationCommand must be created via NewReportLocationCommand constructor",
)

// ReportLocationCommand appends a position report.
// Agents report for themselves; an admin may name the agent with agentID.
type ReportLocationCommand struct { //nolint:recvcheck //using for validation
	actor      user.Identity
	reportID   kernel.UUID
	agentID    *kernel.UUID
	location   kernel.Location
	recordedAt time.Time

	guard guard.ConstructorGuard
}

func NewReportLocationCommand(
	actor user.Identity,
	reportID kernel.UUID,
	agentID *kernel.UUID,
	location kernel.Location,
	recordedAt time.Time,
) (ReportLocationCommand, error) {
	if err := errors.Join(reportID.Validate(), location.Validate()); err != nil {
		return ReportLocationCommand{}, err
	}

	return ReportLocationCommand{
		actor:      actor,
		reportID:   reportID,
		agentID:    agentID,
		location:   location,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ReportLocationCommand) Validate() error {
	return c.guard.Validate(ErrReportLocationCommandIsNotConstructed)
}

func (c ReportLocationCommand) Actor() user.Identity      { return c.actor }
func (c ReportLocationCommand) ReportID() kernel.UUID     { return c.reportID }
func (c ReportLocationCommand) AgentID() *kernel.UUID     { return c.agentID }
func (c ReportLocationCommand) Location() kernel.Location { return c.location }
func (c ReportLocationCommand) RecordedAt() time.Time     { return c.recordedAt }
