package dashboard

import (
	"context"
	"time"
)

// Repository aggregates attendance counts for reporting.
type Repository interface {
	GetTodayStats(ctx context.Context, date time.Time) (TodayStatsResponse, error)
}
