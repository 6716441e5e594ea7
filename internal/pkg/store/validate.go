package store

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidRows drops rows that fail their struct validation, logging each one.
// It filters in place.
func ValidRows[T any](ctx context.Context, entity string, rows []T) []T {
	out := rows[:0]
	dropped := 0
	for i := range rows {
		if err := validate.Struct(rows[i]); err != nil {
			dropped++
			logger.Warnf(ctx, "store: dropping invalid %s row: %s", entity, err.Error())
			continue
		}
		out = append(out, rows[i])
	}
	if dropped > 0 {
		logger.Warnf(ctx, "store: dropped %d of %d %s rows", dropped, len(rows), entity)
	}

	if targets, ok := any(out).([]domain.Target); ok {
		warnInvalidValues(ctx, targets)
	}

	return out
}

func warnInvalidValues(ctx context.Context, rows []domain.Target) {
	for _, r := range rows {
		if r.Value.Invalid() {
			logger.Warnf(ctx, "store: target %s has a non-numeric value, counted as 0", r.ID)
		}
	}
}
