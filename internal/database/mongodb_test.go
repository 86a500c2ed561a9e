package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectMongoWithRetry_InvalidURI(t *testing.T) {
	_, err := ConnectMongoWithRetry(context.Background(), "not-a-mongo-uri", 100*time.Millisecond, 2, time.Millisecond)
	require.Error(t, err)
	require.Contains(t, err.Error(), "giving up after 2 attempts")
}

func TestConnectMongoWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectMongoWithRetry(ctx, "not-a-mongo-uri", 100*time.Millisecond, 3, time.Second)
	require.ErrorIs(t, err, context.Canceled)
}
