package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/brolife/pkg/domain/interfaces"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// filePragmas are applied to every pooled connection of a file database.
// Concurrent writers wait for the lock up to busy_timeout milliseconds.
const filePragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// SQLite is a single-node repository backed by an embedded SQLite database
type SQLite struct {
	db           *sql.DB
	profile      *profileRepository
	chatLog      *chatLogRepository
	scheduleLog  *scheduleLogRepository
	conversation *conversationRepository
}

var _ interfaces.Repository = &SQLite{}

// New opens the database at path, creating parent directories, and applies
// migrations. File databases use WAL journaling and a busy timeout.
func New(ctx context.Context, path string) (*SQLite, error) {
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, goerr.Wrap(err, "failed to create database directory", goerr.V("path", path))
		}
		dsn = path + filePragmas
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open database", goerr.V("path", path))
	}

	if path == MemoryPath {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to connect to database", goerr.V("path", path))
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{
		db:           db,
		profile:      &profileRepository{db: db},
		chatLog:      &chatLogRepository{db: db},
		scheduleLog:  &scheduleLogRepository{db: db},
		conversation: &conversationRepository{db: db},
	}, nil
}

func (s *SQLite) Profile() interfaces.ProfileRepository {
	return s.profile
}

func (s *SQLite) ChatLog() interfaces.ChatLogRepository {
	return s.chatLog
}

func (s *SQLite) ScheduleLog() interfaces.ScheduleLogRepository {
	return s.scheduleLog
}

func (s *SQLite) Conversation() interfaces.ConversationRepository {
	return s.conversation
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
