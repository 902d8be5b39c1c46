package dataset

import (
	"context"

	"confdex/internal/models"
)

// Loader produces the three raw row tables. Implementations are expected to
// return rows already typed and normalized; callers memoize the result.
type Loader interface {
	Load(ctx context.Context) (models.Dataset, error)
}
