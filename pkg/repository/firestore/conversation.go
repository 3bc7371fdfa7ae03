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

type conversationDoc struct {
	Key       string    `firestore:"key"`
	History   []byte    `firestore:"history"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type conversationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ConversationRepository = &conversationRepository{}

func (r *conversationRepository) collection() *firestore.CollectionRef {
	return collection(r.client, r.collectionPrefix, ConversationsCollection)
}

func (r *conversationRepository) Get(ctx context.Context, key model.SessionKey) (*model.Conversation, error) {
	doc, err := r.collection().Doc(docID(key.String())).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, wrapErr(err, "failed to get conversation", goerr.V("session_key", key))
	}

	var d conversationDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, wrapErr(err, "failed to decode conversation", goerr.V("session_key", key))
	}

	return &model.Conversation{
		Key:       model.SessionKey(d.Key),
		History:   d.History,
		UpdatedAt: d.UpdatedAt,
	}, nil
}

func (r *conversationRepository) Put(ctx context.Context, conv *model.Conversation) error {
	d := &conversationDoc{
		Key:       conv.Key.String(),
		History:   conv.History,
		UpdatedAt: clock.Now(ctx).UTC(),
	}
	if _, err := r.collection().Doc(docID(conv.Key.String())).Set(ctx, d); err != nil {
		return wrapErr(err, "failed to put conversation", goerr.V("session_key", conv.Key))
	}
	return nil
}
