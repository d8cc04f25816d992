package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeExpiryRepo struct {
	expired int64
	err     error
	gotDay  time.Time
}

func (f *fakeExpiryRepo) ExpireFinishedEvents(ctx context.Context, today time.Time) (int64, error) {
	f.gotDay = today

	return f.expired, f.err
}

func TestExpirySchedulerRunOnce(t *testing.T) {
	repo := &fakeExpiryRepo{expired: 3}
	scheduler := NewExpiryScheduler(repo, 1, zap.NewNop())

	require.NoError(t, scheduler.RunOnce(context.Background()))

	// The sweep works on whole days.
	assert.Equal(t, 0, repo.gotDay.Hour())
	assert.Equal(t, 0, repo.gotDay.Minute())
	assert.Equal(t, time.Now().Day(), repo.gotDay.Day())
}

func TestExpirySchedulerRunOnceError(t *testing.T) {
	repo := &fakeExpiryRepo{err: errors.New("connection lost")}
	scheduler := NewExpiryScheduler(repo, 1, zap.NewNop())

	err := scheduler.RunOnce(context.Background())
	assert.ErrorContains(t, err, "connection lost")
}

func TestNextRunAfter(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		hour int
		want time.Time
	}{
		{
			name: "before the hour runs today",
			now:  time.Date(2026, time.March, 10, 0, 30, 0, 0, time.UTC),
			hour: 1,
			want: time.Date(2026, time.March, 10, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "after the hour runs tomorrow",
			now:  time.Date(2026, time.March, 10, 13, 0, 0, 0, time.UTC),
			hour: 1,
			want: time.Date(2026, time.March, 11, 1, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly on the hour runs tomorrow",
			now:  time.Date(2026, time.March, 10, 1, 0, 0, 0, time.UTC),
			hour: 1,
			want: time.Date(2026, time.March, 11, 1, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nextRunAfter(tt.now, tt.hour))
		})
	}
}
