package repository

import (
	"context"
	"eventhub_backend/internal/model"

	"gorm.io/gorm"
)

// HostStats aggregates a host's events. Revenue is price * sold summed over
// events; discounts are not applied.
type HostStats struct {
	Events       int64   `json:"events"`
	ActiveEvents int64   `json:"active_events"`
	Tickets      int64   `json:"tickets"`
	Sold         int64   `json:"sold"`
	Revenue      int64   `json:"revenue"`
	Followers    int64   `json:"followers"`
	Reviews      int64   `json:"reviews"`
	AvgRating    float64 `json:"avg_rating"`
}

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) HostStats(ctx context.Context, hostID string) (*HostStats, error) {
	db := r.DB.WithContext(ctx)
	var stats HostStats

	err := db.Model(&model.Event{}).
		Select("COUNT(*) AS events, "+
			"COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active_events, "+
			"COALESCE(SUM(tickets), 0) AS tickets, "+
			"COALESCE(SUM(sold), 0) AS sold, "+
			"COALESCE(SUM(price * sold), 0) AS revenue").
		Where("host_id = ?", hostID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	if err := db.Model(&model.Follow{}).Where("host = ?", hostID).Count(&stats.Followers).Error; err != nil {
		return nil, err
	}

	var reviews struct {
		Count   int64
		Average float64
	}
	err = db.Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(reviews.rating), 0) AS average").
		Joins("JOIN events ON events.id = reviews.event_id").
		Where("events.host_id = ?", hostID).
		Scan(&reviews).Error
	if err != nil {
		return nil, err
	}
	stats.Reviews = reviews.Count
	stats.AvgRating = reviews.Average

	return &stats, nil
}
