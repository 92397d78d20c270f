package exsplit

import (
	"context"
	"slices"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/ukaji3/exsplit-go/pkg/exsplit/models"
)

// Result is the outcome of a split run.
type Result struct {
	// Partitions holds the non-empty partitions in condition order.
	Partitions []models.Partition
	// Written is nil for a dry run.
	Written *WriteResult
}

// Split partitions req.Dataset with req.Conditions and writes the result in
// the requested layout. ErrEmptyResult is returned, and nothing is written,
// when no condition selected any row.
func Split(ctx context.Context, req Request) (*Result, error) {
	if req.Dataset == nil {
		return nil, errors.New("split: no dataset loaded")
	}
	if len(req.Conditions) == 0 {
		return nil, errors.WithStack(ErrNoConditions)
	}
	switch req.Options.Mode {
	case ModeSingle, ModeMulti, "":
	default:
		return nil, invalidInput("mode", "must be single or multi", nil)
	}

	conds := slices.Clone(req.Conditions)
	for i, c := range conds {
		if err := c.Validate(); err != nil {
			return nil, errors.Errorf("condition %d: %w", i, err)
		}
	}

	log := zerolog.Ctx(ctx)
	log.Debug().
		Int("rows", req.Dataset.Len()).
		Int("conditions", len(conds)).
		Str("mode", string(req.Options.Mode)).
		Msg("splitting")

	parts := Partition(ctx, req.Dataset, conds)
	if len(parts) == 0 {
		return &Result{}, errors.WithStack(ErrEmptyResult)
	}

	result := &Result{Partitions: parts}
	if req.Options.DryRun {
		return result, nil
	}

	out := req.Options.OutputPath()
	var (
		written *WriteResult
		err     error
	)
	switch req.Options.Mode {
	case ModeMulti:
		written, err = WriteFiles(ctx, out, parts)
	default:
		written, err = WriteWorkbook(ctx, out, parts)
	}
	result.Written = written
	if err != nil {
		return result, err
	}
	return result, nil
}
