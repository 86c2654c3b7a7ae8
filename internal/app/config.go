package app

import "log/slog"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home   string       // per-user base directory, e.g. $HOME; resolved via the OS when empty
	Logger *slog.Logger // optional; defaults to slog.Default
}
