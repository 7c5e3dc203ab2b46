// Package service contains the swap logic backing HTTP handlers and the CLI.
package service

import "log/slog"

// BaseService provides common dependencies for service types.
type BaseService struct {
	logger *slog.Logger
}
