package safe

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/secmon-lab/brolife/pkg/utils/logging"
)

// Close closes closer and logs a failure. A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Encode writes v as JSON to w and logs a failure. Used once the response
// status has been committed and nothing else can be reported to the client.
func Encode(ctx context.Context, w io.Writer, v any) {
	if w == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(ctx).Error("Failed to encode response", slog.Any("error", err))
	}
}
