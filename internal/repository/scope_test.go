package repository

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/pkg/geo"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// dryRunDB builds statements without a server.
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "eventhub:eventhub@tcp(127.0.0.1:3306)/eventhub?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestWithinDistanceUsesBoundParameters(t *testing.T) {
	db := dryRunDB(t)

	var rows []model.EventWithDistance
	stmt := db.Model(&model.Event{}).
		Scopes(WithinDistance(12.345, -67.891, 250, geo.Kilometers)).
		Find(&rows).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "SELECT events.*, (? * ACOS(")
	assert.Contains(t, sql, "AS distance")
	assert.Contains(t, sql, "<= ?")
	assert.Contains(t, sql, "ORDER BY distance ASC")
	assert.NotContains(t, sql, "12.345")
	assert.NotContains(t, sql, "67.891")
	assert.NotContains(t, sql, "250")

	assert.Equal(t, []interface{}{
		6371.0, 12.345, -67.891, 12.345,
		6371.0, 12.345, -67.891, 12.345,
		250.0,
	}, stmt.Vars)
}

func TestWithinDistanceMiles(t *testing.T) {
	db := dryRunDB(t)

	var rows []model.EventWithDistance
	stmt := db.Model(&model.Event{}).
		Scopes(WithinDistance(0, 0, 10, geo.Miles)).
		Find(&rows).Statement

	require.NotEmpty(t, stmt.Vars)
	assert.Equal(t, 3959.0, stmt.Vars[0])
	assert.Equal(t, 10.0, stmt.Vars[len(stmt.Vars)-1])
}

func TestTagCondition(t *testing.T) {
	cond, args, err := tagCondition([]string{"party", "food_festival"})
	require.NoError(t, err)
	assert.Equal(t, "event_category.party = ? OR event_category.food_festival = ?", cond)
	assert.Equal(t, []interface{}{true, true}, args)

	_, _, err = tagCondition(nil)
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestFindByTagsRejectsUnknownTag(t *testing.T) {
	repo := NewEventRepository(dryRunDB(t))

	_, err := repo.FindByTags(context.Background(), []string{"party", "1=1; DROP TABLE events"}, 10)
	require.ErrorIs(t, err, model.ErrValidation)
}

func TestFindByTagsStatement(t *testing.T) {
	db := dryRunDB(t)
	repo := NewEventRepository(db)

	var stmt *gorm.Statement
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		stmt = tx.Statement
	}))

	_, err := repo.FindByTags(context.Background(), []string{"party", "fair"}, 10)
	require.NoError(t, err)
	require.NotNil(t, stmt)

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "JOIN event_category ON event_category.event_id = events.id")
	assert.Contains(t, sql, "(event_category.party = ? OR event_category.fair = ?)")
	assert.Contains(t, sql, "events.is_active = ?")
}

func TestEventUpdateLeavesSoldAlone(t *testing.T) {
	db := dryRunDB(t)

	var sql string
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture", func(tx *gorm.DB) {
		sql = tx.Statement.SQL.String()
	}))

	event := &model.Event{Name: "Jazz night", Price: 10, Sold: 3}
	event.ID = "evt-1"
	require.NoError(t, NewEventRepository(db).Update(context.Background(), event))

	assert.Contains(t, sql, "UPDATE `events` SET")
	assert.Contains(t, sql, "`name`=?")
	assert.NotContains(t, sql, "`sold`")
}

func TestSearchEscapesWildcards(t *testing.T) {
	db := dryRunDB(t)

	var vars []interface{}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		vars = tx.Statement.Vars
	}))

	_, err := NewEventRepository(db).Search(context.Background(), " 50%_off ", 10)
	require.NoError(t, err)
	assert.Contains(t, vars, `%50\%\_off%`)

	_, err = NewUserRepository(db).Search(context.Background(), `a\b`, 10)
	require.NoError(t, err)
	assert.Contains(t, vars, `%a\\b%`)
}
