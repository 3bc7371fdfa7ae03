package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"github.com/secmon-lab/brolife/pkg/domain/types"
	"github.com/secmon-lab/brolife/pkg/utils/clock"
	"google.golang.org/api/iterator"
)

type timeBlockDoc struct {
	Name  string `firestore:"name"`
	Start string `firestore:"start"`
	End   string `firestore:"end"`
	Theme string `firestore:"theme"`
}

type schedulePayloadDoc struct {
	Date         string         `firestore:"date"`
	DayName      string         `firestore:"day_name"`
	NightFocus   string         `firestore:"night_focus"`
	Blocks       []timeBlockDoc `firestore:"blocks"`
	PromptText   string         `firestore:"prompt_text"`
	ScheduleText string         `firestore:"schedule_text,omitempty"`
	Error        string         `firestore:"error,omitempty"`
	GeneratedAt  time.Time      `firestore:"generated_at"`
}

type scheduleRecordDoc struct {
	ID        model.ScheduleRecordID `firestore:"id"`
	UserID    string                 `firestore:"user_id"`
	Date      string                 `firestore:"date"`
	Payload   schedulePayloadDoc     `firestore:"payload"`
	CreatedAt time.Time              `firestore:"created_at"`
}

func toScheduleRecordDoc(r *model.ScheduleRecord) *scheduleRecordDoc {
	blocks := make([]timeBlockDoc, len(r.Payload.Blocks))
	for i, b := range r.Payload.Blocks {
		blocks[i] = timeBlockDoc(b)
	}

	return &scheduleRecordDoc{
		ID:     r.ID,
		UserID: r.UserID,
		Date:   r.Date,
		Payload: schedulePayloadDoc{
			Date:         r.Payload.Date,
			DayName:      r.Payload.DayName,
			NightFocus:   r.Payload.NightFocus.String(),
			Blocks:       blocks,
			PromptText:   r.Payload.PromptText,
			ScheduleText: r.Payload.ScheduleText,
			Error:        r.Payload.Error,
			GeneratedAt:  r.Payload.GeneratedAt,
		},
		CreatedAt: r.CreatedAt,
	}
}

func fromScheduleRecordDoc(d *scheduleRecordDoc) *model.ScheduleRecord {
	var blocks []model.TimeBlock
	if len(d.Payload.Blocks) > 0 {
		blocks = make([]model.TimeBlock, len(d.Payload.Blocks))
		for i, b := range d.Payload.Blocks {
			blocks[i] = model.TimeBlock(b)
		}
	}

	return &model.ScheduleRecord{
		ID:     d.ID,
		UserID: d.UserID,
		Date:   d.Date,
		Payload: model.SchedulePayload{
			Date:         d.Payload.Date,
			DayName:      d.Payload.DayName,
			NightFocus:   types.Focus(d.Payload.NightFocus),
			Blocks:       blocks,
			PromptText:   d.Payload.PromptText,
			ScheduleText: d.Payload.ScheduleText,
			Error:        d.Payload.Error,
			GeneratedAt:  d.Payload.GeneratedAt,
		},
		CreatedAt: d.CreatedAt,
	}
}

type scheduleLogRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ScheduleLogRepository = &scheduleLogRepository{}

func (r *scheduleLogRepository) collection() *firestore.CollectionRef {
	return collection(r.client, r.collectionPrefix, ScheduleLogCollection)
}

func (r *scheduleLogRepository) Append(ctx context.Context, record *model.ScheduleRecord) (*model.ScheduleRecord, error) {
	if record.UserID == "" {
		return nil, invalidUserID()
	}

	created := *record
	created.Payload = record.Payload.Copy()
	if created.ID == "" {
		created.ID = model.NewScheduleRecordID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = clock.Now(ctx).UTC()
	}

	if _, err := r.collection().Doc(string(created.ID)).Create(ctx, toScheduleRecordDoc(&created)); err != nil {
		return nil, wrapErr(err, "failed to append schedule record",
			goerr.V("user_id", created.UserID),
			goerr.V("record_id", created.ID),
		)
	}

	return &created, nil
}

func (r *scheduleLogRepository) List(ctx context.Context, userID string, limit int) ([]*model.ScheduleRecord, error) {
	if limit <= 0 {
		limit = model.DefaultScheduleLimit
	}

	iter := r.collection().
		Where("user_id", "==", userID).
		OrderBy("created_at", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer iter.Stop()

	records := make([]*model.ScheduleRecord, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, wrapErr(err, "failed to iterate schedule records", goerr.V("user_id", userID))
		}

		var d scheduleRecordDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, wrapErr(err, "failed to decode schedule record", goerr.V("doc_id", doc.Ref.ID))
		}
		records = append(records, fromScheduleRecordDoc(&d))
	}

	return records, nil
}
