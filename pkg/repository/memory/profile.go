package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*model.UserProfile
}

func newProfileRepository() *profileRepository {
	return &profileRepository{
		profiles: make(map[string]*model.UserProfile),
	}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, invalidUserID()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return p.Copy().Normalize(), nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *model.UserProfile) (bool, error) {
	if profile.UserID == "" {
		return false, invalidUserID()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	next := profile.Copy().Normalize()

	if existing, ok := r.profiles[next.UserID]; ok {
		next.CreatedAt = existing.CreatedAt
		r.profiles[next.UserID] = next
		return false, nil
	}

	next.CreatedAt = clock.Now(ctx).UTC()
	r.profiles[next.UserID] = next
	return true, nil
}
