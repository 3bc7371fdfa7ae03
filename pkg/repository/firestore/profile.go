package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type profileDoc struct {
	UserID      string    `firestore:"user_id"`
	PersonaName string    `firestore:"persona_name"`
	Goals       []string  `firestore:"goals"`
	Preferences string    `firestore:"preferences"`
	CreatedAt   time.Time `firestore:"created_at"`
}

func toProfileDoc(p *model.UserProfile) *profileDoc {
	return &profileDoc{
		UserID:      p.UserID,
		PersonaName: p.PersonaName,
		Goals:       p.Goals,
		Preferences: p.Preferences,
		CreatedAt:   p.CreatedAt,
	}
}

func fromProfileDoc(d *profileDoc) *model.UserProfile {
	p := &model.UserProfile{
		UserID:      d.UserID,
		PersonaName: d.PersonaName,
		Goals:       d.Goals,
		Preferences: d.Preferences,
		CreatedAt:   d.CreatedAt,
	}
	return p.Normalize()
}

type profileRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ProfileRepository = &profileRepository{}

func (r *profileRepository) collection() *firestore.CollectionRef {
	return collection(r.client, r.collectionPrefix, ProfilesCollection)
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*model.UserProfile, error) {
	if userID == "" {
		return nil, invalidUserID()
	}

	doc, err := r.collection().Doc(docID(userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, wrapErr(err, "failed to get profile", goerr.V("user_id", userID))
	}

	var d profileDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, wrapErr(err, "failed to decode profile", goerr.V("user_id", userID))
	}

	return fromProfileDoc(&d), nil
}

// Upsert relies on Create failing with AlreadyExists for the create-or-update
// decision, so that concurrent first calls still stamp created_at only once.
func (r *profileRepository) Upsert(ctx context.Context, profile *model.UserProfile) (bool, error) {
	if profile.UserID == "" {
		return false, invalidUserID()
	}

	next := profile.Copy().Normalize()
	next.CreatedAt = clock.Now(ctx).UTC()
	ref := r.collection().Doc(docID(next.UserID))

	_, err := ref.Create(ctx, toProfileDoc(next))
	if err == nil {
		return true, nil
	}
	if status.Code(err) != codes.AlreadyExists {
		return false, wrapErr(err, "failed to create profile", goerr.V("user_id", next.UserID))
	}

	update := map[string]any{
		"persona_name": next.PersonaName,
		"goals":        next.Goals,
		"preferences":  next.Preferences,
	}
	if _, err := ref.Set(ctx, update, firestore.MergeAll); err != nil {
		return false, wrapErr(err, "failed to update profile", goerr.V("user_id", next.UserID))
	}

	return false, nil
}
