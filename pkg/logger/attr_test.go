package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rentadmin/pkg/logger"
)

func TestGroup(t *testing.T) {
	attr := logger.Group("req", slog.String("id", "1"), slog.Int("n", 2))
	require.Equal(t, "req", attr.Key)
	require.Equal(t, slog.KindGroup, attr.Value.Kind())
	assert.Len(t, attr.Value.Group(), 2)
}

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestIdentityAttrs(t *testing.T) {
	assert.Equal(t, "u1", logger.UserID("u1").Value.String())
	assert.True(t, logger.UserID("").Equal(slog.Attr{}))

	assert.Equal(t, "manager", logger.Role("manager").Value.String())
	assert.True(t, logger.Role("").Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, "notification_id", logger.NotificationID("n1").Key)
	assert.Equal(t, "event_type", logger.EventType("CAR_WHATSAPP_CLICK").Key)
	assert.Equal(t, uint64(7), logger.ConnectionID(7).Value.Uint64())
	assert.Equal(t, "live", logger.Component("live").Value.String())
}
