package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/cli/config"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/usecase"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// appConfig is the set of flag groups shared by commands touching the store and the AI
type appConfig struct {
	repo         config.Repository
	conversation config.Conversation
	llm          config.LLM
	messages     config.Messages
	timezone     config.Timezone
}

func (a *appConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, a.repo.Flags()...)
	flags = append(flags, a.conversation.Flags()...)
	flags = append(flags, a.llm.Flags()...)
	flags = append(flags, a.messages.Flags()...)
	flags = append(flags, a.timezone.Flags()...)
	return flags
}

// app is the wired use case layer and the repository backing it
type app struct {
	repo interfaces.Repository
	uc   *usecase.UseCases
}

// Configure opens the repository and builds the use cases. The caller must
// Close the result.
func (a *appConfig) Configure(ctx context.Context) (*app, error) {
	messages, err := a.messages.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load messages")
	}

	loc, err := a.timezone.Configure()
	if err != nil {
		return nil, err
	}

	repo, err := a.repo.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize repository")
	}

	withConv, err := a.conversation.Configure(ctx, repo)
	if err != nil {
		closeRepository(ctx, repo)
		return nil, goerr.Wrap(err, "failed to initialize conversation store")
	}
	repo = withConv

	opts := []usecase.Option{
		usecase.WithMessages(messages),
		usecase.WithLocation(loc),
	}

	svc, err := a.llm.ConfigureCompanion(ctx, repo)
	if err != nil {
		closeRepository(ctx, repo)
		return nil, goerr.Wrap(err, "failed to initialize conversational AI")
	}
	if svc != nil {
		opts = append(opts, usecase.WithCompanion(svc))
	}

	return &app{repo: repo, uc: usecase.New(repo, opts...)}, nil
}

func closeRepository(ctx context.Context, repo interfaces.Repository) {
	if repo == nil {
		return
	}
	if err := repo.Close(); err != nil {
		logging.From(ctx).Error("failed to close repository", "error", err.Error())
	}
}
