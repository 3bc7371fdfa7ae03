package repository_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/repository"
	"github.com/secmon-lab/brolife/pkg/repository/firestore"
	"github.com/secmon-lab/brolife/pkg/repository/memory"
	"github.com/secmon-lab/brolife/pkg/repository/redis"
	"github.com/secmon-lab/brolife/pkg/repository/sqlite"
)

func newMemoryRepository(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newSQLiteRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	repo, err := sqlite.New(t.Context(), sqlite.MemoryPath)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

// newSQLiteFileRepository opens a pooled database file like the serve command does
func newSQLiteFileRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	repo, err := sqlite.New(t.Context(), filepath.Join(t.TempDir(), "data", "brolife.db"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func newFirestoreRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	databaseID := os.Getenv("TEST_FIRESTORE_DATABASE_ID")
	if databaseID == "" {
		t.Skip("TEST_FIRESTORE_DATABASE_ID not set")
	}

	ctx := context.Background()
	repo, err := firestore.New(ctx, projectID, databaseID, firestore.WithCollectionPrefix("test"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

// newRedisRepository serves conversations from Redis on top of the memory repository
func newRedisRepository(t *testing.T) interfaces.Repository {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	db := 0
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		gt.NoError(t, err).Required()
		db = n
	}

	store, err := redis.New(t.Context(), redis.Config{Addr: addr, DB: db},
		redis.WithKeyPrefix(fmt.Sprintf("brolife-test:%d:", time.Now().UnixNano())),
		redis.WithTTL(time.Minute),
	)
	gt.NoError(t, err).Required()

	repo := repository.WithConversation(memory.New(), store)
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

// uniqueUserID avoids collisions between runs against a shared database
func uniqueUserID(name string) string {
	return fmt.Sprintf("%s-%d", name, time.Now().UnixNano())
}

// fixedTime is truncated to microseconds, the precision of Firestore timestamps
func fixedTime(offset time.Duration) time.Time {
	return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC).Add(offset).Truncate(time.Microsecond)
}
