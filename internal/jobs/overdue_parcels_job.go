package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipflow/internal/core/application/usecases/queries"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

var overdueParcels = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "shipflow",
	Subsystem: "parcels",
	Name:      "overdue",
	Help:      "Number of packages past their estimated delivery date in a non-terminal status.",
})

// OverdueParcelsQueryHandler lists packages past their estimated delivery date.
type OverdueParcelsQueryHandler interface {
	Handle(ctx context.Context, query queries.ListOverdueParcelsQuery) ([]queries.ParcelResponse, error)
}

// OverdueParcelsJob periodically scans for packages that missed their
// estimated delivery date. The scan is observational: it logs each overdue
// package and updates the overdue gauge, but never mutates state.
type OverdueParcelsJob struct {
	handler OverdueParcelsQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOverdueParcelsJob creates a new job for scanning overdue packages.
// The scan runs every minute.
func NewOverdueParcelsJob(handler OverdueParcelsQueryHandler, logger *slog.Logger) *OverdueParcelsJob {
	return &OverdueParcelsJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "overdue_parcels_job"),
	}
}

// Start begins the overdue scan on its schedule.
func (j *OverdueParcelsJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.scan)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue parcels job started (running every minute)")
	return nil
}

// Stop stops the overdue scan.
func (j *OverdueParcelsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue parcels job stopped")
}

func (j *OverdueParcelsJob) scan() {
	ctx := context.Background()

	query, err := queries.NewListOverdueParcelsQuery(time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue parcels job failed to build query", "error", err)
		return
	}

	overdue, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue parcels scan failed", "error", err)
		return
	}

	overdueParcels.Set(float64(len(overdue)))

	for _, p := range overdue {
		j.logger.WarnContext(ctx, "Package is overdue",
			"tracking_id", p.TrackingID,
			"status", p.Status,
			"estimated_delivery_date", p.EstimatedDeliveryDate,
		)
	}
}
