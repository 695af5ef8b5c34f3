package queries_test

import (
	"context"
	"testing"
	"time"

	"shipflow/internal/adapters/out/postgres/parcelrepo"
	"shipflow/internal/core/application/usecases/queries"
	"shipflow/internal/core/domain/model/kernel"
	"shipflow/internal/core/domain/model/parcel"
	"shipflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ParcelQueryHandlersTestSuite exercises all parcel read handlers against a
// real PostgreSQL instance. The handlers share one schema, so they share one
// container and one seeded data set per test.
type ParcelQueryHandlersTestSuite struct {
	suite.Suite
	container      *postgres.PostgresContainer
	db             *gorm.DB
	getHandler     queries.GetParcelQueryHandler
	historyHandler queries.GetParcelHistoryQueryHandler
	listHandler    queries.ListParcelsQueryHandler
	overdueHandler queries.ListOverdueParcelsQueryHandler
}

func (suite *ParcelQueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&parcelrepo.ParcelDTO{}, &parcelrepo.ParcelEventDTO{})
	suite.Require().NoError(err)

	suite.getHandler = queries.NewGetParcelQueryHandler(db)
	suite.historyHandler = queries.NewGetParcelHistoryQueryHandler(db)
	suite.listHandler = queries.NewListParcelsQueryHandler(db)
	suite.overdueHandler = queries.NewListOverdueParcelsQueryHandler(db)
}

func (suite *ParcelQueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ParcelQueryHandlersTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, parcel_events").Error
	suite.Require().NoError(err)
}

func (suite *ParcelQueryHandlersTestSuite) TestGetParcel_ExistingParcel_ReturnsReadModel() {
	created := suite.seedParcel("1", time.Now().UTC().Truncate(time.Microsecond))

	query, err := queries.NewGetParcelQuery("1")
	suite.Require().NoError(err)

	result, err := suite.getHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(created.ID(), result.ID)
	suite.Equal("1", result.TrackingID)
	suite.Equal("SMALL_BOX", result.Type)
	suite.InDelta(2.5, result.Weight, 0.0001)
	suite.Equal("Books", result.Description)
	suite.Equal("Quito", result.CityFrom)
	suite.Equal("Guayaquil", result.CityTo)
	suite.Equal("PENDING", result.Status)
}

func (suite *ParcelQueryHandlersTestSuite) TestGetParcel_UnknownTrackingID_ReturnsNotFound() {
	query, err := queries.NewGetParcelQuery("404")
	suite.Require().NoError(err)

	result, err := suite.getHandler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Nil(result)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ParcelQueryHandlersTestSuite) TestGetParcel_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetParcelQuery{}

	result, err := suite.getHandler.Handle(context.Background(), invalidQuery)
	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetParcelQuery constructor")
}

func (suite *ParcelQueryHandlersTestSuite) TestGetParcelHistory_ReturnsEventsOldestFirst() {
	now := time.Now().UTC().Truncate(time.Microsecond)
	seeded := suite.seedParcel("5", now)

	err := seeded.UpdateStatus(parcel.InTransit, "Picked up", now.Add(time.Hour))
	suite.Require().NoError(err)
	err = seeded.UpdateStatus(parcel.Delivered, "", now.Add(2*time.Hour))
	suite.Require().NoError(err)
	suite.updateParcel(seeded)

	query, err := queries.NewGetParcelHistoryQuery("5")
	suite.Require().NoError(err)

	events, err := suite.historyHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(events, 3)

	suite.Equal("PENDING", events[0].Status)
	suite.Equal(parcel.InitialEventComment, events[0].Comment)
	suite.Equal("IN_TRANSIT", events[1].Status)
	suite.Equal("Picked up", events[1].Comment)
	suite.Equal("DELIVERED", events[2].Status)
	suite.Empty(events[2].Comment)
}

func (suite *ParcelQueryHandlersTestSuite) TestGetParcelHistory_UnknownTrackingID_ReturnsNotFound() {
	query, err := queries.NewGetParcelHistoryQuery("404")
	suite.Require().NoError(err)

	events, err := suite.historyHandler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Nil(events)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *ParcelQueryHandlersTestSuite) TestListParcels_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewListParcelsQuery()

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *ParcelQueryHandlersTestSuite) TestListParcels_ReturnsNewestFirst() {
	base := time.Now().UTC().Truncate(time.Microsecond)
	suite.seedParcel("1", base.Add(-2*time.Hour))
	suite.seedParcel("2", base.Add(-time.Hour))
	suite.seedParcel("3", base)

	query := queries.NewListParcelsQuery()

	result, err := suite.listHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)

	suite.Equal("3", result[0].TrackingID)
	suite.Equal("2", result[1].TrackingID)
	suite.Equal("1", result[2].TrackingID)
}

func (suite *ParcelQueryHandlersTestSuite) TestListOverdueParcels_FiltersTerminalAndOnTime() {
	base := time.Now().UTC().Truncate(time.Microsecond)

	// Registered long ago, still pending: overdue.
	suite.seedParcel("1", base.AddDate(0, 0, -10))

	// Registered long ago but already delivered: not overdue.
	delivered := suite.seedParcel("2", base.AddDate(0, 0, -10))
	suite.Require().NoError(delivered.UpdateStatus(parcel.InTransit, "", base.AddDate(0, 0, -9)))
	suite.Require().NoError(delivered.UpdateStatus(parcel.Delivered, "", base.AddDate(0, 0, -8)))
	suite.updateParcel(delivered)

	// Registered today: estimated delivery date still ahead.
	suite.seedParcel("3", base)

	query, err := queries.NewListOverdueParcelsQuery(base)
	suite.Require().NoError(err)

	result, err := suite.overdueHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("1", result[0].TrackingID)
	suite.Equal("PENDING", result[0].Status)
}

func (suite *ParcelQueryHandlersTestSuite) seedParcel(trackingID string, createdAt time.Time) *parcel.Parcel {
	tid, err := kernel.NewTrackingID(trackingID)
	suite.Require().NoError(err)

	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		tid,
		parcel.TypeSmallBox,
		2.5,
		"Books",
		"Quito",
		"Guayaquil",
		createdAt,
	)
	suite.Require().NoError(err)

	repo := parcelrepo.NewGormParcelRepository(suite.db, &noopAggregateTracker{})
	suite.Require().NoError(repo.Add(context.Background(), p))
	return p
}

func (suite *ParcelQueryHandlersTestSuite) updateParcel(p *parcel.Parcel) {
	repo := parcelrepo.NewGormParcelRepository(suite.db, &noopAggregateTracker{})
	suite.Require().NoError(repo.Update(context.Background(), p))
}

func TestParcelQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(ParcelQueryHandlersTestSuite))
}

// noopAggregateTracker satisfies the repository's tracker dependency.
// Query tests do not care about aggregate tracking.
type noopAggregateTracker struct{}

func (n *noopAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}
