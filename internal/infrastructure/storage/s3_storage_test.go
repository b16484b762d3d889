package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osis/backend/internal/infrastructure/config"
)

func TestNewS3DocumentStore_Validation(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		_, err := NewS3DocumentStore(nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "configuration is required")
	})

	t.Run("missing bucket returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		}
		_, err := NewS3DocumentStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("missing access key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "test-bucket",
			SecretAccessKey: "test-secret",
		}
		_, err := NewS3DocumentStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "access key is required")
	})

	t.Run("missing secret key returns error", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:      "test-bucket",
			AccessKeyID: "test-key",
		}
		_, err := NewS3DocumentStore(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret key is required")
	})

	t.Run("valid config creates store", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:            "test-bucket",
			AccessKeyID:       "test-key",
			SecretAccessKey:   "test-secret",
			Region:            "eu-west-1",
			Endpoint:          "http://localhost:9000",
			UsePathStyle:      true,
			PresignExpiration: 30 * time.Minute,
		}
		store, err := NewS3DocumentStore(cfg)
		require.NoError(t, err)
		require.NotNil(t, store)
		assert.Equal(t, "test-bucket", store.GetBucket())
		assert.Equal(t, 30*time.Minute, store.presignExpiration)
	})

	t.Run("default presign expiration is 15 minutes", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "http://localhost:9000",
		}
		store, err := NewS3DocumentStore(cfg)
		require.NoError(t, err)
		assert.Equal(t, 15*time.Minute, store.presignExpiration)
	})

	t.Run("adds http prefix when missing and no SSL", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "localhost:9000",
			UseSSL:          false,
		}
		store, err := NewS3DocumentStore(cfg)
		require.NoError(t, err)
		require.NotNil(t, store)
	})

	t.Run("adds https prefix when missing and SSL enabled", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "localhost:9000",
			UseSSL:          true,
		}
		store, err := NewS3DocumentStore(cfg)
		require.NoError(t, err)
		require.NotNil(t, store)
	})

	t.Run("option overrides presign expiration", func(t *testing.T) {
		cfg := &config.StorageConfig{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			Endpoint:        "http://localhost:9000",
		}
		store, err := NewS3DocumentStore(cfg, WithPresignExpiration(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, store.presignExpiration)
	})
}

func TestTrajectoryKey(t *testing.T) {
	trajectoryID := uuid.New()

	t.Run("key is scoped to the trajectory", func(t *testing.T) {
		key := TrajectoryKey(trajectoryID, ".pdf")
		assert.True(t, strings.HasPrefix(key, "trajectories/"+trajectoryID.String()+"/"))
		assert.True(t, strings.HasSuffix(key, ".pdf"))
	})

	t.Run("empty extension is allowed", func(t *testing.T) {
		key := TrajectoryKey(trajectoryID, "")
		parts := strings.Split(key, "/")
		require.Len(t, parts, 3)
		_, err := uuid.Parse(parts[2])
		assert.NoError(t, err)
	})

	t.Run("keys are unique per call", func(t *testing.T) {
		assert.NotEqual(t, TrajectoryKey(trajectoryID, ".pdf"), TrajectoryKey(trajectoryID, ".pdf"))
	})
}
