package repository

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/pkg/geo"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	DB *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) WithTx(tx *gorm.DB) *EventRepository {
	return &EventRepository{DB: tx}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a LIKE pattern matching term literally anywhere in
// the column. MySQL's default LIKE escape character is the backslash.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

// Active restricts a query to events that have not been deactivated.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("events.is_active = ?", true)
}

// WithinDistance selects events.* plus a computed distance column for events
// within radius of (lat, lon), nearest first. Rows without coordinates drop out.
func WithinDistance(lat, lon, radius float64, unit geo.Unit) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		expr, args := geo.HaversineSQL("events.latitude", "events.longitude", lat, lon, unit)

		whereArgs := make([]interface{}, 0, len(args)+1)
		whereArgs = append(whereArgs, args...)
		whereArgs = append(whereArgs, radius)

		return db.Select("events.*, "+expr+" AS distance", args...).
			Where(expr+" <= ?", whereArgs...).
			Order("distance ASC")
	}
}

func (r *EventRepository) Create(ctx context.Context, event *model.Event) error {
	return translate(r.DB.WithContext(ctx).Create(event).Error)
}

// Update writes every column except sold, which only IncrementSold changes.
func (r *EventRepository) Update(ctx context.Context, event *model.Event) error {
	return translate(r.DB.WithContext(ctx).Omit("sold").Save(event).Error)
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	if err := r.DB.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// FindByIDForUpdate locks the event row until the surrounding transaction ends.
func (r *EventRepository) FindByIDForUpdate(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&event, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

func (r *EventRepository) IncrementSold(ctx context.Context, id string, n int) error {
	return r.DB.WithContext(ctx).Model(&model.Event{}).
		Where("id = ?", id).
		UpdateColumn("sold", gorm.Expr("sold + ?", n)).Error
}

func (r *EventRepository) List(ctx context.Context, offset, limit int) ([]model.Event, int64, error) {
	var events []model.Event
	var total int64

	query := r.DB.WithContext(ctx).Model(&model.Event{}).Scopes(Active)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("date ASC").Offset(offset).Limit(limit).Find(&events).Error
	return events, total, err
}

// Trending returns active, upcoming (or undated) events with the most tickets sold.
func (r *EventRepository) Trending(ctx context.Context, now time.Time, limit int) ([]model.Event, error) {
	var events []model.Event
	err := r.DB.WithContext(ctx).
		Scopes(Active).
		Where("date IS NULL OR date >= ?", now).
		Order("sold DESC").
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Search(ctx context.Context, term string, limit int) ([]model.Event, error) {
	var events []model.Event
	like := containsPattern(term)
	err := r.DB.WithContext(ctx).
		Scopes(Active).
		Where("name LIKE ? OR location LIKE ?", like, like).
		Order("date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *EventRepository) FindByHost(ctx context.Context, hostID string) ([]model.Event, error) {
	var events []model.Event
	err := r.DB.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("date DESC").
		Find(&events).Error
	return events, err
}

// tagCondition ORs the given category columns. Tags are checked against
// model.CategoryTags before they become column names.
func tagCondition(tags []string) (string, []interface{}, error) {
	if len(tags) == 0 {
		return "", nil, model.NewValidationError("tags", "at least one tag is required")
	}

	conds := make([]string, 0, len(tags))
	args := make([]interface{}, 0, len(tags))
	for _, tag := range tags {
		if !model.IsCategoryTag(tag) {
			return "", nil, model.NewValidationError("tags", "unknown category "+tag)
		}
		conds = append(conds, "event_category."+tag+" = ?")
		args = append(args, true)
	}
	return strings.Join(conds, " OR "), args, nil
}

// FindByTags returns active events tagged with any of the given categories.
func (r *EventRepository) FindByTags(ctx context.Context, tags []string, limit int) ([]model.Event, error) {
	cond, args, err := tagCondition(tags)
	if err != nil {
		return nil, err
	}

	var events []model.Event
	err = r.DB.WithContext(ctx).
		Joins("JOIN event_category ON event_category.event_id = events.id").
		Scopes(Active).
		Where(cond, args...).
		Order("events.date ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *EventRepository) Nearby(ctx context.Context, lat, lon, radius float64, unit geo.Unit, limit int) ([]model.EventWithDistance, error) {
	var events []model.EventWithDistance
	err := r.DB.WithContext(ctx).
		Model(&model.Event{}).
		Scopes(Active, WithinDistance(lat, lon, radius, unit)).
		Limit(limit).
		Find(&events).Error
	return events, err
}
