package exsplit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ukaji3/exsplit-go/pkg/exsplit/models"
)

// Partition applies each condition independently to ds, in order.
// A condition whose column is absent is skipped, and so is one that selects
// no rows. A row may land in several partitions or in none.
func Partition(ctx context.Context, ds *models.Dataset, conds []Condition) []models.Partition {
	log := zerolog.Ctx(ctx)
	var parts []models.Partition

	for i, c := range conds {
		values, ok := ds.Column(c.Column)
		if !ok {
			log.Debug().
				Int("condition", i).
				Str("column", c.Column).
				Msg("column not in sheet, skipping condition")
			continue
		}

		subset := ds.Select(Evaluate(values, c))
		if subset.Len() == 0 {
			log.Debug().
				Int("condition", i).
				Str("output", c.OutputName).
				Str("condition_desc", c.Describe()).
				Msg("condition matched no rows")
			continue
		}

		log.Debug().
			Int("condition", i).
			Str("output", c.OutputName).
			Int("rows", subset.Len()).
			Msg("partition built")
		parts = append(parts, models.Partition{Name: c.OutputName, Data: subset})
	}

	return parts
}
