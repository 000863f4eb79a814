package notifications_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/notifications"
)

func seed(t *testing.T, s *notifications.MemoryStorage) {
	t.Helper()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	records := []notifications.Notification{
		{ID: "n1", SubjectID: "u1", Type: notifications.TypeBookingApproved, Title: "a", Message: "a", CreatedAt: base},
		{ID: "n2", SubjectID: "u2", Type: notifications.TypePaymentFailed, Title: "b", Message: "b", CreatedAt: base.Add(time.Minute)},
		{ID: "n3", AudienceRole: "manager", Type: notifications.TypeBookingCreated, Title: "c", Message: "c", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "n4", Type: notifications.TypeAdminMessage, Title: "d", Message: "d", CreatedAt: base.Add(3 * time.Minute)},
	}
	for _, n := range records {
		require.NoError(t, s.Create(context.Background(), n))
	}
}

func ids(list []notifications.Notification) []string {
	out := make([]string, 0, len(list))
	for _, n := range list {
		out = append(out, n.ID)
	}
	return out
}

func TestMemoryStorage_Create(t *testing.T) {
	t.Parallel()

	s := notifications.NewMemoryStorage()
	err := s.Create(context.Background(), notifications.Notification{Title: "x"})
	assert.ErrorIs(t, err, notifications.ErrMissingID)

	require.NoError(t, s.Create(context.Background(), notifications.Notification{ID: "n1"}))
	all := s.All()
	require.Len(t, all, 1)
	assert.False(t, all[0].CreatedAt.IsZero())
}

func TestMemoryStorage_List(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("visibility and order", func(t *testing.T) {
		t.Parallel()
		s := notifications.NewMemoryStorage()
		seed(t, s)

		list, err := s.List(ctx, notifications.Recipient{UserID: "u1"}, notifications.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"n4", "n1"}, ids(list))

		list, err = s.List(ctx, notifications.Recipient{UserID: "u9", Role: "manager"}, notifications.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"n4", "n3"}, ids(list))

		list, err = s.List(ctx, notifications.Recipient{}, notifications.ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"n4"}, ids(list))
	})

	t.Run("filters", func(t *testing.T) {
		t.Parallel()
		s := notifications.NewMemoryStorage()
		seed(t, s)
		r := notifications.Recipient{UserID: "u1", Role: "manager"}

		list, err := s.List(ctx, r, notifications.ListOptions{Types: []notifications.Type{notifications.TypeBookingApproved}})
		require.NoError(t, err)
		assert.Equal(t, []string{"n1"}, ids(list))

		since := time.Date(2024, 5, 1, 10, 2, 0, 0, time.UTC)
		list, err = s.List(ctx, r, notifications.ListOptions{Since: &since})
		require.NoError(t, err)
		assert.Equal(t, []string{"n4", "n3"}, ids(list))
	})

	t.Run("pagination", func(t *testing.T) {
		t.Parallel()
		s := notifications.NewMemoryStorage()
		seed(t, s)
		r := notifications.Recipient{UserID: "u1", Role: "manager"}

		list, err := s.List(ctx, r, notifications.ListOptions{Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"n4", "n3"}, ids(list))

		list, err = s.List(ctx, r, notifications.ListOptions{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{"n1"}, ids(list))

		list, err = s.List(ctx, r, notifications.ListOptions{Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, list)

		list, err = s.List(ctx, r, notifications.ListOptions{Limit: 1, Offset: -5})
		require.NoError(t, err)
		assert.Equal(t, []string{"n4"}, ids(list), "negative offset starts at the beginning")
	})
}

func TestMemoryStorage_MarkRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("selected ids", func(t *testing.T) {
		t.Parallel()
		s := notifications.NewMemoryStorage()
		seed(t, s)
		r := notifications.Recipient{UserID: "u1"}

		// n2 belongs to u2 and must stay unread.
		require.NoError(t, s.MarkRead(ctx, r, "n1", "n2", "missing"))

		count, err := s.CountUnread(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = s.CountUnread(ctx, notifications.Recipient{UserID: "u2"})
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("no ids marks only direct notifications", func(t *testing.T) {
		t.Parallel()
		s := notifications.NewMemoryStorage()
		seed(t, s)
		r := notifications.Recipient{UserID: "u1", Role: "manager"}

		require.NoError(t, s.MarkRead(ctx, r))

		list, err := s.List(ctx, r, notifications.ListOptions{OnlyUnread: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"n4", "n3"}, ids(list), "shared notifications stay unread for everyone")

		list, err = s.List(ctx, notifications.Recipient{UserID: "u9", Role: "manager"}, notifications.ListOptions{OnlyUnread: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"n4", "n3"}, ids(list))
	})

	t.Run("no ids without user id is a no-op", func(t *testing.T) {
		t.Parallel()
		s := notifications.NewMemoryStorage()
		seed(t, s)
		r := notifications.Recipient{Role: "manager"}

		require.NoError(t, s.MarkRead(ctx, r))

		count, err := s.CountUnread(ctx, r)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("shared notifications by explicit id", func(t *testing.T) {
		t.Parallel()
		s := notifications.NewMemoryStorage()
		seed(t, s)
		r := notifications.Recipient{Role: "manager"}

		require.NoError(t, s.MarkRead(ctx, r, "n3", "n4"))

		list, err := s.List(ctx, r, notifications.ListOptions{})
		require.NoError(t, err)
		for _, n := range list {
			assert.True(t, n.Read)
			assert.NotNil(t, n.ReadAt)
		}
	})
}
