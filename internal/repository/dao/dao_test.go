package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB spins up a throwaway Postgres container. Tests are skipped when
// no docker daemon is reachable.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("skipping, could not construct docker pool: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("skipping, docker daemon unavailable: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_PASSWORD=secret",
		"POSTGRES_DB=improplan_test",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	var db *gorm.DB
	err = pool.Retry(func() error {
		dsn := fmt.Sprintf("host=localhost port=%v user=postgres password=secret dbname=improplan_test sslmode=disable",
			resource.GetPort("5432/tcp"))

		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if openErr != nil {
			return openErr
		}

		sqlDB, openErr := db.DB()
		if openErr != nil {
			return openErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

// seedRefData inserts the minimal geography, theme and user rows events hang
// off of.
func seedRefData(t *testing.T, db *gorm.DB) (Municipality, Theme, User) {
	t.Helper()

	community := AutonomousCommunity{Name: "Principado de Asturias"}
	require.NoError(t, db.Create(&community).Error)

	province := Province{Name: "Asturias", CommunityID: community.ID}
	require.NoError(t, db.Create(&province).Error)

	municipality := Municipality{Name: "Oviedo", ProvinceID: province.ID}
	require.NoError(t, db.Create(&municipality).Error)

	theme := Theme{Name: "Music", Description: "Concerts and festivals"}
	require.NoError(t, db.Create(&theme).Error)

	var role Role
	require.NoError(t, db.First(&role, "name = ?", "ROLE_USER").Error)

	user := User{
		Email:            "ana@example.com",
		Password:         "hashed",
		Name:             "Ana",
		Enabled:          true,
		RegistrationDate: time.Now(),
		Roles:            []Role{role},
	}
	require.NoError(t, db.Create(&user).Error)

	return municipality, theme, user
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEventDAOIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	ctx := context.Background()

	municipality, theme, user := seedRefData(t, db)

	eventDAO := NewEventDAO(db)
	dateDAO := NewEventDateDAO(db)
	favoriteDAO := NewFavoriteDAO(db)

	pastDay, err := dateDAO.Insert(ctx, EventDate{FullDate: day(2020, time.June, 1)})
	require.NoError(t, err)
	futureDay, err := dateDAO.Insert(ctx, EventDate{FullDate: day(2100, time.June, 1)})
	require.NoError(t, err)

	event, err := eventDAO.Insert(ctx, Event{
		Name:           "Jazz in the Park",
		Status:         "PUBLISHED",
		InTime:         true,
		IsFree:         true,
		MunicipalityID: municipality.ID,
		ThemeID:        theme.ID,
		UserID:         user.ID,
		Dates:          []EventDate{pastDay, futureDay},
	})
	require.NoError(t, err)

	t.Run("find by id preloads relations", func(t *testing.T) {
		found, err := eventDAO.FindByID(ctx, event.ID)
		require.NoError(t, err)

		assert.Equal(t, "Oviedo", found.Municipality.Name)
		assert.Equal(t, "Asturias", found.Municipality.Province.Name)
		assert.Equal(t, "Music", found.Theme.Name)
		assert.Equal(t, "ana@example.com", found.User.Email)
		require.Len(t, found.Dates, 2)
		assert.True(t, found.Dates[0].FullDate.Before(found.Dates[1].FullDate))
	})

	t.Run("name fragment search", func(t *testing.T) {
		events, err := eventDAO.FindByNameContaining(ctx, "jazz")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.ID, events[0].ID)

		events, err = eventDAO.FindByNameContaining(ctx, "opera")
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("find of missing id", func(t *testing.T) {
		_, err := eventDAO.FindByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("search matches province case-insensitively", func(t *testing.T) {
		events, err := eventDAO.SearchPublished(ctx, EventSearch{
			ProvinceName: "asturias",
			Date:         day(2100, time.June, 1),
		})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, event.ID, events[0].ID)
	})

	t.Run("search wants the exact day", func(t *testing.T) {
		events, err := eventDAO.SearchPublished(ctx, EventSearch{
			ProvinceName: "Asturias",
			Date:         day(2100, time.June, 2),
		})
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("search excludes other provinces", func(t *testing.T) {
		events, err := eventDAO.SearchPublished(ctx, EventSearch{
			ProvinceName: "Madrid",
			Date:         day(2100, time.June, 1),
		})
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("upcoming dates", func(t *testing.T) {
		dates, err := dateDAO.UpcomingByEventID(ctx, event.ID, day(2099, time.January, 1))
		require.NoError(t, err)
		require.Len(t, dates, 1)
		assert.Equal(t, futureDay.ID, dates[0].ID)
	})

	t.Run("duplicate favorite maps to sentinel", func(t *testing.T) {
		_, err := favoriteDAO.Insert(ctx, Favorite{UserID: user.ID, EventID: event.ID, FavoriteDate: time.Now()})
		require.NoError(t, err)

		_, err = favoriteDAO.Insert(ctx, Favorite{UserID: user.ID, EventID: event.ID, FavoriteDate: time.Now()})
		assert.ErrorIs(t, err, ErrFavoriteExists)
	})

	t.Run("discard drops bookmarks", func(t *testing.T) {
		require.NoError(t, eventDAO.Discard(ctx, event.ID, "DISCARDED"))

		count, err := favoriteDAO.CountByEventID(ctx, event.ID)
		require.NoError(t, err)
		assert.Zero(t, count)

		found, err := eventDAO.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.Equal(t, "DISCARDED", found.Status)
	})

	t.Run("expiry sweep clears in_time once all dates pass", func(t *testing.T) {
		// The event still has a 2100 date, so nothing expires yet.
		expired, err := eventDAO.ExpireFinishedEvents(ctx, day(2026, time.January, 1))
		require.NoError(t, err)
		assert.Zero(t, expired)

		expired, err = eventDAO.ExpireFinishedEvents(ctx, day(2101, time.January, 1))
		require.NoError(t, err)
		assert.Equal(t, int64(1), expired)

		found, err := eventDAO.FindByID(ctx, event.ID)
		require.NoError(t, err)
		assert.False(t, found.InTime)
	})

	t.Run("out-of-time listing skips discarded events", func(t *testing.T) {
		// The event is both expired and discarded by now.
		events, err := eventDAO.FindOutOfTime(ctx)
		require.NoError(t, err)
		assert.Empty(t, events)

		count, err := eventDAO.CountOutOfTime(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("delete removes the row but keeps pooled dates", func(t *testing.T) {
		require.NoError(t, eventDAO.Delete(ctx, event.ID))

		_, err := eventDAO.FindByID(ctx, event.ID)
		assert.ErrorIs(t, err, ErrEventNotFound)

		_, err = dateDAO.FindByDate(ctx, day(2100, time.June, 1))
		assert.NoError(t, err)
	})
}

func TestUserDAOIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupTestDB(t)
	ctx := context.Background()

	userDAO := NewUserDAO(db)

	var role Role
	require.NoError(t, db.First(&role, "name = ?", "ROLE_USER").Error)

	created, err := userDAO.Insert(ctx, User{
		Email:            "eva@example.com",
		Password:         "hashed",
		Name:             "Eva",
		Enabled:          true,
		RegistrationDate: time.Now(),
		Roles:            []Role{role},
	})
	require.NoError(t, err)

	t.Run("duplicate email maps to sentinel", func(t *testing.T) {
		_, err := userDAO.Insert(ctx, User{
			Email:            "eva@example.com",
			Password:         "hashed",
			Name:             "Eva",
			RegistrationDate: time.Now(),
		})
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})

	t.Run("find by email preloads roles", func(t *testing.T) {
		found, err := userDAO.FindByEmail(ctx, "eva@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		require.Len(t, found.Roles, 1)
		assert.Equal(t, "ROLE_USER", found.Roles[0].Name)
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := userDAO.ExistsByEmail(ctx, "eva@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = userDAO.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
