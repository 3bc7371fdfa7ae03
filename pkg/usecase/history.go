package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/model"
	"golang.org/x/sync/errgroup"
)

// HistoryUseCase reads the interaction logs of a user
type HistoryUseCase struct {
	repo interfaces.Repository
}

func NewHistoryUseCase(repo interfaces.Repository) *HistoryUseCase {
	return &HistoryUseCase{repo: repo}
}

func (uc *HistoryUseCase) Chats(ctx context.Context, userID string, limit int) ([]*model.ChatRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "user_id is empty")
	}

	records, err := uc.repo.ChatLog().List(ctx, userID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list chat records", goerr.V("user_id", userID))
	}
	if records == nil {
		records = []*model.ChatRecord{}
	}
	return records, nil
}

func (uc *HistoryUseCase) Schedules(ctx context.Context, userID string, limit int) ([]*model.ScheduleRecord, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, goerr.Wrap(model.ErrInvalidInput, "user_id is empty")
	}

	records, err := uc.repo.ScheduleLog().List(ctx, userID, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list schedule records", goerr.V("user_id", userID))
	}
	if records == nil {
		records = []*model.ScheduleRecord{}
	}
	return records, nil
}

// Overview loads the latest chats and schedules of a user concurrently with
// the default limits.
func (uc *HistoryUseCase) Overview(ctx context.Context, userID string) (*model.History, error) {
	var history model.History

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		chats, err := uc.Chats(ctx, userID, model.DefaultChatLimit)
		if err != nil {
			return err
		}
		history.Chats = chats
		return nil
	})
	eg.Go(func() error {
		schedules, err := uc.Schedules(ctx, userID, model.DefaultScheduleLimit)
		if err != nil {
			return err
		}
		history.Schedules = schedules
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &history, nil
}
