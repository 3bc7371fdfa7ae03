package repository_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

func runConversationRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get returns nil for new session", func(t *testing.T) {
		repo := newRepo(t)

		conv, err := repo.Conversation().Get(t.Context(), model.SessionKey("brolife:chat:"+uniqueUserID("none")))
		gt.NoError(t, err).Required()
		gt.Value(t, conv).Nil()
	})

	t.Run("Put then Get returns the history", func(t *testing.T) {
		repo := newRepo(t)
		now := fixedTime(0)
		ctx := clock.With(t.Context(), clock.Fixed(now))
		key := model.SessionKey("brolife:chat:" + uniqueUserID("conv"))

		err := repo.Conversation().Put(ctx, &model.Conversation{Key: key, History: []byte(`{"version":1}`)})
		gt.NoError(t, err).Required()

		conv, err := repo.Conversation().Get(ctx, key)
		gt.NoError(t, err).Required()
		gt.Value(t, conv).NotNil().Required()
		gt.Value(t, conv.Key).Equal(key)
		gt.Value(t, string(conv.History)).Equal(`{"version":1}`)
		gt.Bool(t, conv.UpdatedAt.Equal(now)).True()
	})

	t.Run("Put replaces previous history and keeps sessions apart", func(t *testing.T) {
		repo := newRepo(t)
		userID := uniqueUserID("threads")
		chatKey := model.SessionKey("brolife:chat:" + userID)
		planKey := model.SessionKey("brolife:planning:" + userID)

		gt.NoError(t, repo.Conversation().Put(t.Context(), &model.Conversation{Key: chatKey, History: []byte("first")})).Required()
		gt.NoError(t, repo.Conversation().Put(t.Context(), &model.Conversation{Key: chatKey, History: []byte("second")})).Required()
		gt.NoError(t, repo.Conversation().Put(t.Context(), &model.Conversation{Key: planKey, History: []byte("plan")})).Required()

		chat, err := repo.Conversation().Get(t.Context(), chatKey)
		gt.NoError(t, err).Required()
		gt.Value(t, string(chat.History)).Equal("second")

		plan, err := repo.Conversation().Get(t.Context(), planKey)
		gt.NoError(t, err).Required()
		gt.Value(t, string(plan.History)).Equal("plan")
	})
}

func TestMemoryConversationRepository(t *testing.T) {
	runConversationRepositoryTest(t, newMemoryRepository)
}

func TestSQLiteConversationRepository(t *testing.T) {
	runConversationRepositoryTest(t, newSQLiteRepository)
}

func TestFirestoreConversationRepository(t *testing.T) {
	runConversationRepositoryTest(t, newFirestoreRepository)
}

func TestRedisConversationRepository(t *testing.T) {
	runConversationRepositoryTest(t, newRedisRepository)
}
