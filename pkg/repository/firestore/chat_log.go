package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
	"google.golang.org/api/iterator"
)

type chatRecordDoc struct {
	ID        model.ChatRecordID `firestore:"id"`
	UserID    string             `firestore:"user_id"`
	Message   string             `firestore:"message"`
	Response  string             `firestore:"response"`
	Timestamp time.Time          `firestore:"timestamp"`
}

func toChatRecordDoc(r *model.ChatRecord) *chatRecordDoc {
	return &chatRecordDoc{
		ID:        r.ID,
		UserID:    r.UserID,
		Message:   r.Message,
		Response:  r.Response,
		Timestamp: r.Timestamp,
	}
}

func fromChatRecordDoc(d *chatRecordDoc) *model.ChatRecord {
	return &model.ChatRecord{
		ID:        d.ID,
		UserID:    d.UserID,
		Message:   d.Message,
		Response:  d.Response,
		Timestamp: d.Timestamp,
	}
}

type chatLogRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ChatLogRepository = &chatLogRepository{}

func (r *chatLogRepository) collection() *firestore.CollectionRef {
	return collection(r.client, r.collectionPrefix, ChatLogCollection)
}

func (r *chatLogRepository) Append(ctx context.Context, record *model.ChatRecord) (*model.ChatRecord, error) {
	if record.UserID == "" {
		return nil, invalidUserID()
	}

	created := *record
	if created.ID == "" {
		created.ID = model.NewChatRecordID()
	}
	if created.Timestamp.IsZero() {
		created.Timestamp = clock.Now(ctx).UTC()
	}

	// Create instead of Set keeps the log insert-only
	if _, err := r.collection().Doc(string(created.ID)).Create(ctx, toChatRecordDoc(&created)); err != nil {
		return nil, wrapErr(err, "failed to append chat record",
			goerr.V("user_id", created.UserID),
			goerr.V("record_id", created.ID),
		)
	}

	return &created, nil
}

func (r *chatLogRepository) List(ctx context.Context, userID string, limit int) ([]*model.ChatRecord, error) {
	if limit <= 0 {
		limit = model.DefaultChatLimit
	}

	iter := r.collection().
		Where("user_id", "==", userID).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	records := make([]*model.ChatRecord, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapErr(err, "failed to iterate chat records", goerr.V("user_id", userID))
		}

		var d chatRecordDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, wrapErr(err, "failed to decode chat record", goerr.V("doc_id", doc.Ref.ID))
		}
		records = append(records, fromChatRecordDoc(&d))
	}

	return records, nil
}
