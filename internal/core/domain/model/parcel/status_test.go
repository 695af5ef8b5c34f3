package parcel_test

import (
	"errors"
	"fmt"
	"testing"

	"shipflow/internal/core/domain/model/parcel"
	"shipflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(parcel.Unknown))
		assert.Equal(t, 1, int(parcel.Pending))
		assert.Equal(t, 2, int(parcel.InTransit))
		assert.Equal(t, 3, int(parcel.Delivered))
		assert.Equal(t, 4, int(parcel.OnHold))
		assert.Equal(t, 5, int(parcel.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []parcel.Status{
			parcel.Pending,
			parcel.InTransit,
			parcel.Delivered,
			parcel.OnHold,
			parcel.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(status.String(), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown and out-of-range values", func(t *testing.T) {
		for _, status := range []parcel.Status{parcel.Unknown, parcel.Status(-1), parcel.Status(6), parcel.Status(99)} {
			t.Run(fmt.Sprintf("value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   parcel.Status
		expected string
	}{
		{parcel.Pending, "PENDING"},
		{parcel.InTransit, "IN_TRANSIT"},
		{parcel.Delivered, "DELIVERED"},
		{parcel.OnHold, "ON_HOLD"},
		{parcel.Cancelled, "CANCELLED"},
		{parcel.Unknown, "UNKNOWN"},
		{parcel.Status(42), "UNKNOWN"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.status.String())
	}
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse exact wire forms", func(t *testing.T) {
		status, err := parcel.StatusFromString("IN_TRANSIT")

		require.NoError(t, err)
		assert.Equal(t, parcel.InTransit, status)
	})

	t.Run("should require the exact wire form", func(t *testing.T) {
		for _, input := range []string{"pending", " DELIVERED", "On_Hold", "CANCELLED ", "", " "} {
			_, err := parcel.StatusFromString(input)

			require.Error(t, err, "input %q", input)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should reject unknown statuses", func(t *testing.T) {
		_, err := parcel.StatusFromString("SHIPPED")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "PENDING, IN_TRANSIT, DELIVERED, ON_HOLD, CANCELLED")
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	allStatuses := []parcel.Status{
		parcel.Pending,
		parcel.InTransit,
		parcel.Delivered,
		parcel.OnHold,
		parcel.Cancelled,
	}

	allowed := map[parcel.Status][]parcel.Status{
		parcel.Pending:   {parcel.InTransit},
		parcel.InTransit: {parcel.Delivered, parcel.OnHold, parcel.Cancelled},
		parcel.OnHold:    {parcel.InTransit, parcel.Cancelled},
		parcel.Delivered: {},
		parcel.Cancelled: {},
	}

	isAllowed := func(from, to parcel.Status) bool {
		for _, next := range allowed[from] {
			if next == to {
				return true
			}
		}
		return false
	}

	t.Run("every pair matches the table", func(t *testing.T) {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
					if isAllowed(from, to) {
						assert.True(t, from.CanTransitionTo(to))

						next, err := from.TransitionTo(to)
						require.NoError(t, err)
						assert.Equal(t, to, next)
						return
					}

					assert.False(t, from.CanTransitionTo(to))

					_, err := from.TransitionTo(to)
					require.Error(t, err)
					assert.ErrorIs(t, err, parcel.ErrInvalidStatusTransition)

					var transitionErr *parcel.InvalidTransitionError
					require.True(t, errors.As(err, &transitionErr))
					assert.Equal(t, from, transitionErr.From)
					assert.Equal(t, to, transitionErr.To)
				})
			}
		}
	})

	t.Run("self transitions are rejected", func(t *testing.T) {
		for _, status := range allStatuses {
			assert.False(t, status.CanTransitionTo(status), "self transition for %s", status)
		}
	})

	t.Run("on hold cannot go straight to delivered", func(t *testing.T) {
		assert.False(t, parcel.OnHold.CanTransitionTo(parcel.Delivered))
	})

	t.Run("transition to invalid status fails validation", func(t *testing.T) {
		_, err := parcel.Pending.TransitionTo(parcel.Unknown)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, parcel.Delivered.IsTerminal())
	assert.True(t, parcel.Cancelled.IsTerminal())
	assert.False(t, parcel.Pending.IsTerminal())
	assert.False(t, parcel.InTransit.IsTerminal())
	assert.False(t, parcel.OnHold.IsTerminal())
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := &parcel.InvalidTransitionError{From: parcel.InTransit, To: parcel.Pending}

	assert.Equal(t, "cannot change status from IN_TRANSIT to PENDING", err.Error())
}
