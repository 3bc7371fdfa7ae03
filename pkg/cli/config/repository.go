package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"
	"github.com/secmon-lab/brolife/pkg/domain/types"
	"github.com/secmon-lab/brolife/pkg/repository/firestore"
	"github.com/secmon-lab/brolife/pkg/repository/memory"
	"github.com/secmon-lab/brolife/pkg/repository/sqlite"
	"github.com/secmon-lab/brolife/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	sqlitePath       string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (firestore, sqlite or memory)",
			Category:    "Repository",
			Value:       string(types.RepositoryBackendSQLite),
			Sources:     cli.EnvVars("BROLIFE_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("BROLIFE_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("BROLIFE_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix added to every Firestore collection name",
			Category:    "Repository",
			Sources:     cli.EnvVars("BROLIFE_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file (\":memory:\" for a private in-memory database)",
			Category:    "Repository",
			Value:       "data/brolife.db",
			Sources:     cli.EnvVars("BROLIFE_SQLITE_PATH"),
			Destination: &r.sqlitePath,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("firestore_project_id", r.projectID),
		slog.String("firestore_database_id", r.databaseID),
		slog.String("firestore_collection_prefix", r.collectionPrefix),
		slog.String("sqlite_path", r.sqlitePath),
	)
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// ProjectID returns the Firestore project ID
func (r *Repository) ProjectID() string {
	return r.projectID
}

// DatabaseID returns the Firestore database ID
func (r *Repository) DatabaseID() string {
	return r.databaseID
}

// CollectionPrefix returns the Firestore collection prefix
func (r *Repository) CollectionPrefix() string {
	return r.collectionPrefix
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	backend, err := types.ParseRepositoryBackend(r.backend)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid repository backend", goerr.V(BackendKey, r.backend))
	}

	switch backend {
	case types.RepositoryBackendFirestore:
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrMissingOption, "firestore-project-id is required when using firestore backend",
				goerr.V(OptionKey, "firestore-project-id"))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, firestore.WithCollectionPrefix(r.collectionPrefix))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
			"collection_prefix", r.collectionPrefix,
		)
		return repo, nil

	case types.RepositoryBackendSQLite:
		if r.sqlitePath == "" {
			return nil, goerr.Wrap(ErrMissingOption, "sqlite-path is required when using sqlite backend",
				goerr.V(OptionKey, "sqlite-path"))
		}
		repo, err := sqlite.New(ctx, r.sqlitePath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		logging.Default().Info("Using SQLite repository", "path", r.sqlitePath)
		return repo, nil

	default:
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil
	}
}
