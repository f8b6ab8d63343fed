// Package repository implements the data access layer for users and posts.
package repository

import (
	"context"
	"errors"

	"postbook/internal/database"
	"postbook/internal/models"
	"postbook/internal/observability"

	"gorm.io/gorm"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// table bundles the per-table logger and metrics every repository uses.
type table struct {
	name    string
	logger  *observability.RepoLogger
	metrics *observability.DatabaseMetrics
}

func newTable(name string) table {
	return table{
		name:    name,
		logger:  observability.NewRepoLogger(name),
		metrics: observability.NewDatabaseMetrics(name),
	}
}

// readError maps a read failure to an AppError.
func (t table) readError(ctx context.Context, err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	t.logger.LogError(ctx, err, "read")
	return models.NewInternalError(err)
}

// writeError maps a write failure to an AppError. Constraint violations keep
// both the driver error and the matching database sentinel in the chain.
func (t table) writeError(ctx context.Context, err error, operation string, messages map[database.ConstraintKind]string) error {
	wrapped := database.WrapConstraintError(err)

	var ce *database.ConstraintError
	if !errors.As(wrapped, &ce) {
		t.logger.LogError(ctx, err, operation)
		return models.NewInternalError(err)
	}

	t.metrics.RecordConstraintViolation(string(ce.Kind))
	msg, ok := messages[ce.Kind]
	if !ok {
		msg = t.name + " violates a " + string(ce.Kind) + " constraint"
	}
	if ce.Kind == database.ConstraintUnique {
		return models.NewConflictError(msg, wrapped)
	}
	return models.NewConstraintError(msg, wrapped)
}
