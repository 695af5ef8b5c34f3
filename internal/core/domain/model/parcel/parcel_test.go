package parcel_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/parcel"
	"shipflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParcel(t *testing.T) (*parcel.Parcel, time.Time) {
	t.Helper()

	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	trackingID, err := kernel.NewTrackingID("1")
	require.NoError(t, err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		trackingID,
		parcel.TypeSmallBox,
		2.5,
		"Books",
		"Quito",
		"Guayaquil",
		now,
	)
	require.NoError(t, err)
	return p, now
}

func TestNewParcel(t *testing.T) {
	t.Run("starts pending with one initial event", func(t *testing.T) {
		p, now := newTestParcel(t)

		assert.Equal(t, parcel.Pending, p.Status())
		assert.Equal(t, now, p.CreatedAt())
		assert.Equal(t, now, p.UpdatedAt())
		assert.Equal(t, now.AddDate(0, 0, 5), p.EstimatedDeliveryDate())

		events := p.Events()
		require.Len(t, events, 1)
		assert.Equal(t, parcel.Pending, events[0].Status())
		assert.Equal(t, parcel.InitialEventComment, events[0].Comment())
		assert.Equal(t, now, events[0].CreatedAt())
	})

	t.Run("rejects equal cities ignoring case and whitespace", func(t *testing.T) {
		trackingID, err := kernel.NewTrackingID("1")
		require.NoError(t, err)

		_, err = parcel.NewParcel(
			kernel.NewUUID(), trackingID, parcel.TypeDocument, 1, "Contract",
			"Quito", "quito ", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects blank cities", func(t *testing.T) {
		trackingID, err := kernel.NewTrackingID("1")
		require.NoError(t, err)

		_, err = parcel.NewParcel(
			kernel.NewUUID(), trackingID, parcel.TypeDocument, 1, "Contract",
			"  ", "Quito", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("accepts description of exactly fifty characters", func(t *testing.T) {
		trackingID, err := kernel.NewTrackingID("1")
		require.NoError(t, err)

		p, err := parcel.NewParcel(
			kernel.NewUUID(), trackingID, parcel.TypeDocument, 1,
			strings.Repeat("x", parcel.MaxDescriptionLength),
			"Quito", "Cuenca", time.Now())

		require.NoError(t, err)
		assert.Len(t, p.Description(), 50)
	})

	t.Run("counts description length in characters, not bytes", func(t *testing.T) {
		trackingID, err := kernel.NewTrackingID("1")
		require.NoError(t, err)

		p, err := parcel.NewParcel(
			kernel.NewUUID(), trackingID, parcel.TypeDocument, 1,
			strings.Repeat("ñ", parcel.MaxDescriptionLength),
			"Quito", "Cuenca", time.Now())

		require.NoError(t, err)
		assert.Equal(t, 50, utf8.RuneCountInString(p.Description()))
	})

	t.Run("rejects description of fifty-one characters", func(t *testing.T) {
		trackingID, err := kernel.NewTrackingID("1")
		require.NoError(t, err)

		_, err = parcel.NewParcel(
			kernel.NewUUID(), trackingID, parcel.TypeDocument, 1,
			strings.Repeat("x", parcel.MaxDescriptionLength+1),
			"Quito", "Cuenca", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects non-positive weight", func(t *testing.T) {
		trackingID, err := kernel.NewTrackingID("1")
		require.NoError(t, err)

		for _, weight := range []float64{0, -1.5} {
			_, err = parcel.NewParcel(
				kernel.NewUUID(), trackingID, parcel.TypeDocument, weight, "Contract",
				"Quito", "Cuenca", time.Now())

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		trackingID, err := kernel.NewTrackingID("1")
		require.NoError(t, err)

		_, err = parcel.NewParcel(
			kernel.NewUUID(), trackingID, parcel.TypeUnknown, 1, "Contract",
			"Quito", "Cuenca", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("reports all violations together", func(t *testing.T) {
		trackingID, err := kernel.NewTrackingID("1")
		require.NoError(t, err)

		_, err = parcel.NewParcel(
			kernel.NewUUID(), trackingID, parcel.TypeUnknown, 0,
			strings.Repeat("x", 60), "Quito", "Quito", time.Now())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestParcel_Validate(t *testing.T) {
	t.Run("constructed parcel is valid", func(t *testing.T) {
		p, _ := newTestParcel(t)

		require.NoError(t, p.Validate())
	})

	t.Run("struct literal is rejected", func(t *testing.T) {
		var p parcel.Parcel

		err := p.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, parcel.ErrParcelIsNotConstructed)
	})

	t.Run("nil parcel is rejected", func(t *testing.T) {
		var p *parcel.Parcel

		require.Error(t, p.Validate())
	})
}

func TestParcel_UpdateStatus(t *testing.T) {
	t.Run("valid transition appends exactly one event", func(t *testing.T) {
		p, now := newTestParcel(t)
		later := now.Add(time.Hour)

		err := p.UpdateStatus(parcel.InTransit, "Left the warehouse", later)

		require.NoError(t, err)
		assert.Equal(t, parcel.InTransit, p.Status())
		assert.Equal(t, later, p.UpdatedAt())
		assert.Equal(t, now, p.CreatedAt())

		events := p.Events()
		require.Len(t, events, 2)
		assert.Equal(t, parcel.InTransit, events[1].Status())
		assert.Equal(t, "Left the warehouse", events[1].Comment())
	})

	t.Run("status always equals last event status", func(t *testing.T) {
		p, now := newTestParcel(t)

		path := []parcel.Status{parcel.InTransit, parcel.OnHold, parcel.InTransit, parcel.Delivered}
		for i, status := range path {
			require.NoError(t, p.UpdateStatus(status, "", now.Add(time.Duration(i)*time.Hour)))

			events := p.Events()
			assert.Equal(t, p.Status(), events[len(events)-1].Status())
		}
	})

	t.Run("invalid transition leaves the parcel untouched", func(t *testing.T) {
		p, now := newTestParcel(t)

		err := p.UpdateStatus(parcel.Delivered, "", now.Add(time.Hour))

		require.Error(t, err)
		assert.ErrorIs(t, err, parcel.ErrInvalidStatusTransition)
		assert.Equal(t, parcel.Pending, p.Status())
		assert.Equal(t, now, p.UpdatedAt())
		assert.Len(t, p.Events(), 1)
	})

	t.Run("terminal statuses accept no transitions", func(t *testing.T) {
		p, now := newTestParcel(t)
		require.NoError(t, p.UpdateStatus(parcel.InTransit, "", now))
		require.NoError(t, p.UpdateStatus(parcel.Cancelled, "Recipient refused", now))

		for _, target := range []parcel.Status{parcel.Pending, parcel.InTransit, parcel.Delivered, parcel.OnHold} {
			err := p.UpdateStatus(target, "", now)

			require.Error(t, err)
			assert.ErrorIs(t, err, parcel.ErrInvalidStatusTransition)
		}
	})

	t.Run("delivery requires a prior in-transit event", func(t *testing.T) {
		p, now := newTestParcel(t)

		// restore a parcel whose history jumps straight to IN_TRANSIT-free
		// DELIVERED eligibility: current status IN_TRANSIT but no IN_TRANSIT
		// event recorded
		events := p.Events()
		restored, err := parcel.RestoreParcel(
			p.ID(), p.TrackingID(), p.Type(), p.Weight(), p.Description(),
			p.CityFrom(), p.CityTo(), parcel.InTransit,
			p.EstimatedDeliveryDate(), p.CreatedAt(), p.UpdatedAt(), events)
		require.NoError(t, err)

		err = restored.UpdateStatus(parcel.Delivered, "", now.Add(time.Hour))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrBusinessRuleViolated)
		assert.Equal(t, parcel.InTransit, restored.Status())
	})

	t.Run("delivery succeeds after transit", func(t *testing.T) {
		p, now := newTestParcel(t)
		require.NoError(t, p.UpdateStatus(parcel.InTransit, "", now))

		err := p.UpdateStatus(parcel.Delivered, "Signed by recipient", now.Add(time.Hour))

		require.NoError(t, err)
		assert.Equal(t, parcel.Delivered, p.Status())
		assert.True(t, p.HasBeenInTransit())
	})

	t.Run("events slice is a defensive copy", func(t *testing.T) {
		p, now := newTestParcel(t)
		events := p.Events()
		events[0], _ = parcel.NewEvent(kernel.NewUUID(), parcel.Cancelled, "tampered", now)

		fresh := p.Events()
		assert.Equal(t, parcel.Pending, fresh[0].Status())
	})
}

func TestRestoreParcel(t *testing.T) {
	t.Run("round trips an aggregate", func(t *testing.T) {
		p, now := newTestParcel(t)
		require.NoError(t, p.UpdateStatus(parcel.InTransit, "moving", now.Add(time.Hour)))

		restored, err := parcel.RestoreParcel(
			p.ID(), p.TrackingID(), p.Type(), p.Weight(), p.Description(),
			p.CityFrom(), p.CityTo(), p.Status(),
			p.EstimatedDeliveryDate(), p.CreatedAt(), p.UpdatedAt(), p.Events())

		require.NoError(t, err)
		assert.True(t, p.IsEqual(restored))
		assert.Equal(t, p.Status(), restored.Status())
		assert.Len(t, restored.Events(), 2)
	})

	t.Run("rejects empty history", func(t *testing.T) {
		p, _ := newTestParcel(t)

		_, err := parcel.RestoreParcel(
			p.ID(), p.TrackingID(), p.Type(), p.Weight(), p.Description(),
			p.CityFrom(), p.CityTo(), p.Status(),
			p.EstimatedDeliveryDate(), p.CreatedAt(), p.UpdatedAt(), nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		p, _ := newTestParcel(t)

		_, err := parcel.RestoreParcel(
			p.ID(), p.TrackingID(), p.Type(), p.Weight(), p.Description(),
			p.CityFrom(), p.CityTo(), parcel.Unknown,
			p.EstimatedDeliveryDate(), p.CreatedAt(), p.UpdatedAt(), p.Events())

		require.Error(t, err)
	})
}

func TestParcel_IsOverdue(t *testing.T) {
	p, now := newTestParcel(t)

	assert.False(t, p.IsOverdue(now))
	assert.False(t, p.IsOverdue(now.AddDate(0, 0, 5)))
	assert.True(t, p.IsOverdue(now.AddDate(0, 0, 6)))

	require.NoError(t, p.UpdateStatus(parcel.InTransit, "", now))
	require.NoError(t, p.UpdateStatus(parcel.Delivered, "", now))
	assert.False(t, p.IsOverdue(now.AddDate(0, 0, 6)))
}

func TestEvent(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("new event records status and comment", func(t *testing.T) {
		event, err := parcel.NewEvent(kernel.NewUUID(), parcel.OnHold, "Customs inspection", now)

		require.NoError(t, err)
		require.NoError(t, event.Validate())
		assert.Equal(t, parcel.OnHold, event.Status())
		assert.Equal(t, "Customs inspection", event.Comment())
		assert.Equal(t, now, event.CreatedAt())
		assert.Equal(t, now, event.UpdatedAt())
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		_, err := parcel.NewEvent(kernel.NewUUID(), parcel.Unknown, "", now)

		require.Error(t, err)
	})

	t.Run("rejects zero-value id", func(t *testing.T) {
		var id kernel.UUID
		_, err := parcel.NewEvent(id, parcel.Pending, "", now)

		require.Error(t, err)
	})

	t.Run("restore keeps both timestamps", func(t *testing.T) {
		later := now.Add(time.Minute)
		event, err := parcel.RestoreEvent(kernel.NewUUID(), parcel.InTransit, "", now, later)

		require.NoError(t, err)
		assert.Equal(t, now, event.CreatedAt())
		assert.Equal(t, later, event.UpdatedAt())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var event parcel.Event

		err := event.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, parcel.ErrEventIsNotConstructed)
	})
}
