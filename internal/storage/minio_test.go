package storage

import (
	"context"
	"testing"

	"github.com/espd/espd-web/backend/go-services/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewMinIOStorageRequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{Bucket: "espd"})
	require.ErrorContains(t, err, "endpoint")
}

func TestNewMinIOStorageRequiresBucket(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{Endpoint: "localhost:9000"})
	require.ErrorContains(t, err, "bucket")
}
