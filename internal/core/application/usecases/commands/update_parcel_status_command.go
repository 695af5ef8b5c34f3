package commands

import (
	"errors"
	"strings"

	"shipflow/internal/pkg/errs"
	"shipflow/internal/pkg/guard"
)

var (
	ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
		"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
	)
)

// UpdateParcelStatusCommand represents a request to move a package to a new
// lifecycle status, with an optional comment for the history event.
//
// The status is kept as the raw caller string: whether it names a known
// status is checked by the handler only after the package has been found, so
// an unknown tracking id reports not-found rather than a status error.
type UpdateParcelStatusCommand struct { //nolint:recvcheck //using for validation
	trackingID string
	status     string
	comment    string

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand creates a status-update command.
// The tracking id must be non-blank; the comment may be empty.
func NewUpdateParcelStatusCommand(trackingID, status, comment string) (UpdateParcelStatusCommand, error) {
	command := UpdateParcelStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTrackingID(trackingID),
		command.setStatus(status),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	command.comment = comment
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

// TrackingID returns the tracking identifier of the package to update.
func (c UpdateParcelStatusCommand) TrackingID() string {
	return c.trackingID
}

// Status returns the raw target status string.
func (c UpdateParcelStatusCommand) Status() string {
	return c.status
}

// Comment returns the optional history comment.
func (c UpdateParcelStatusCommand) Comment() string {
	return c.comment
}

func (c *UpdateParcelStatusCommand) setTrackingID(trackingID string) error {
	if strings.TrimSpace(trackingID) == "" {
		return errs.NewValueIsRequiredError("trackingId")
	}

	c.trackingID = trackingID
	return nil
}

// setStatus stores the status verbatim. Parsing happens in the handler
// after the package lookup so a missing package wins over a bad status.
func (c *UpdateParcelStatusCommand) setStatus(status string) error {
	c.status = status
	return nil
}
