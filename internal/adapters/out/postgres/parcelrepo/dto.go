// Package parcelrepo provides data transfer objects and mapping functions for parcel persistence.
// This package implements the repository pattern for the parcel domain aggregate, handling
// the conversion between domain entities and database representations.
package parcelrepo

import (
	"time"

	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel aggregates.
// The tracking identifier carries a unique index so concurrent registrations
// can never allocate the same identifier.
type ParcelDTO struct {
	ID                    uuid.UUID        `gorm:"type:uuid;primaryKey"`
	TrackingID            string           `gorm:"type:varchar(64);not null;uniqueIndex"`
	Type                  int              `gorm:"type:int;not null"`
	Weight                float64          `gorm:"type:numeric;not null"`
	Description           string           `gorm:"type:varchar(255);not null"`
	CityFrom              string           `gorm:"type:varchar(255);not null"`
	CityTo                string           `gorm:"type:varchar(255);not null"`
	Status                int              `gorm:"type:int;not null;index"`
	EstimatedDeliveryDate time.Time        `gorm:"not null"`
	CreatedAt             time.Time        `gorm:"not null;autoCreateTime:false"`
	UpdatedAt             time.Time        `gorm:"not null;autoUpdateTime:false"`
	Events                []ParcelEventDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for parcel entities.
// Overrides GORM's default naming convention to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// ParcelEventDTO represents the database structure for persisting status events.
// Links to its parcel via foreign key; rows are append-only.
type ParcelEventDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ParcelID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    int       `gorm:"type:int;not null"`
	Comment   string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for parcel event entities.
// Overrides GORM's default naming convention to use "parcel_events".
func (ParcelEventDTO) TableName() string {
	return "parcel_events"
}

// fromDomain converts a parcel domain aggregate to its database representation.
// Maps all aggregate state including the full event history.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	parcelID := aggregate.ID().Bytes()
	events := make([]ParcelEventDTO, 0, len(aggregate.Events()))

	for _, event := range aggregate.Events() {
		events = append(events, ParcelEventDTO{
			ID:        event.ID().Bytes(),
			ParcelID:  parcelID,
			Status:    int(event.Status()),
			Comment:   event.Comment(),
			CreatedAt: event.CreatedAt(),
			UpdatedAt: event.UpdatedAt(),
		})
	}

	return ParcelDTO{
		ID:                    parcelID,
		TrackingID:            aggregate.TrackingID().String(),
		Type:                  int(aggregate.Type()),
		Weight:                aggregate.Weight(),
		Description:           aggregate.Description(),
		CityFrom:              aggregate.CityFrom(),
		CityTo:                aggregate.CityTo(),
		Status:                int(aggregate.Status()),
		EstimatedDeliveryDate: aggregate.EstimatedDeliveryDate(),
		CreatedAt:             aggregate.CreatedAt(),
		UpdatedAt:             aggregate.UpdatedAt(),
		Events:                events,
	}
}

// toDomain converts a database DTO to a parcel domain aggregate.
// Reconstructs the complete aggregate including its event history using RestoreParcel.
func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := kernel.NewTrackingID(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	events := make([]parcel.Event, 0, len(dto.Events))
	for _, eventDto := range dto.Events {
		event, eventErr := eventToDomain(eventDto)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return parcel.RestoreParcel(
		id,
		trackingID,
		parcel.Type(dto.Type),
		dto.Weight,
		dto.Description,
		dto.CityFrom,
		dto.CityTo,
		parcel.Status(dto.Status),
		dto.EstimatedDeliveryDate,
		dto.CreatedAt,
		dto.UpdatedAt,
		events,
	)
}

// eventToDomain converts an event DTO to a domain entity.
// Uses RestoreEvent to reconstruct the entity with its persisted state.
func eventToDomain(dto ParcelEventDTO) (parcel.Event, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return parcel.Event{}, err
	}

	return parcel.RestoreEvent(
		id,
		parcel.Status(dto.Status),
		dto.Comment,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
