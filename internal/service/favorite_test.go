package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dainadb/improplan/internal/domain"
	"github.com/dainadb/improplan/internal/repository"
)

type favoriteKey struct {
	userID  uint
	eventID uint
}

// fakeFavoriteRepo is an in-memory FavoriteRepository for tests.
type fakeFavoriteRepo struct {
	byKey  map[favoriteKey]domain.Favorite
	nextID uint
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{
		byKey:  make(map[favoriteKey]domain.Favorite),
		nextID: 1,
	}
}

func (f *fakeFavoriteRepo) Create(ctx context.Context, userID, eventID uint) (domain.Favorite, error) {
	key := favoriteKey{userID: userID, eventID: eventID}
	if _, ok := f.byKey[key]; ok {
		return domain.Favorite{}, repository.ErrFavoriteExists
	}

	favorite := domain.Favorite{ID: f.nextID, EventID: eventID, FavoriteDate: time.Now()}
	f.nextID++
	f.byKey[key] = favorite

	return favorite, nil
}

func (f *fakeFavoriteRepo) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (domain.Favorite, error) {
	favorite, ok := f.byKey[favoriteKey{userID: userID, eventID: eventID}]
	if !ok {
		return domain.Favorite{}, repository.ErrFavoriteNotFound
	}

	return favorite, nil
}

func (f *fakeFavoriteRepo) ListByUserID(ctx context.Context, userID uint) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	for key, favorite := range f.byKey {
		if key.userID == userID {
			favorites = append(favorites, favorite)
		}
	}

	return favorites, nil
}

func (f *fakeFavoriteRepo) Delete(ctx context.Context, id uint) error {
	for key, favorite := range f.byKey {
		if favorite.ID == id {
			delete(f.byKey, key)
			return nil
		}
	}

	return repository.ErrFavoriteNotFound
}

func (f *fakeFavoriteRepo) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	for key := range f.byKey {
		if key.eventID == eventID {
			count++
		}
	}

	return count, nil
}

// fakeEventFinder knows a single event.
type fakeEventFinder struct {
	eventID uint
}

func (f fakeEventFinder) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	if id != f.eventID {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return domain.Event{ID: id, Name: "Jazz in the Park", Status: domain.StatusPublished}, nil
}

// fakeUserFinder knows users 1 and 2.
type fakeUserFinder struct{}

func (fakeUserFinder) FindByID(ctx context.Context, id uint) (domain.User, error) {
	if id != 1 && id != 2 {
		return domain.User{}, repository.ErrUserNotFound
	}

	return domain.User{ID: id, Email: "ana@example.com"}, nil
}

func TestFavoriteServiceAdd(t *testing.T) {
	ctx := context.Background()
	svc := NewFavoriteService(newFakeFavoriteRepo(), fakeEventFinder{eventID: 10}, fakeUserFinder{})

	favorite, err := svc.Add(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, uint(10), favorite.EventID)

	t.Run("same event twice", func(t *testing.T) {
		_, err := svc.Add(ctx, 1, 10)
		assert.ErrorIs(t, err, ErrFavoriteExists)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := svc.Add(ctx, 1, 99)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestFavoriteServiceRemove(t *testing.T) {
	ctx := context.Background()
	svc := NewFavoriteService(newFakeFavoriteRepo(), fakeEventFinder{eventID: 10}, fakeUserFinder{})

	_, err := svc.Add(ctx, 1, 10)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, 1, 10))

	err = svc.Remove(ctx, 1, 10)
	assert.ErrorIs(t, err, ErrFavoriteNotFound)
}

func TestFavoriteServiceListAndCount(t *testing.T) {
	ctx := context.Background()
	repo := newFakeFavoriteRepo()
	svc := NewFavoriteService(repo, fakeEventFinder{eventID: 10}, fakeUserFinder{})

	_, err := svc.Add(ctx, 1, 10)
	require.NoError(t, err)
	_, err = svc.Add(ctx, 2, 10)
	require.NoError(t, err)

	favorites, err := svc.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.ListByUser(ctx, 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	count, err := svc.CountByEvent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.CountByEvent(ctx, 99)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
