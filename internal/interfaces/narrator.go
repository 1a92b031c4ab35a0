package interfaces

import (
	"context"

	"market-trend-analyzer/internal/types"
)

// Narrator produces free-text market commentary for a ticker's indicator
// snapshot. The text is advisory only: the rule-based scorer never reads it,
// so a failing or absent narrator must not change any recommendation.
type Narrator interface {
	Narrate(ctx context.Context, req types.NarrativeRequest) (string, error)
}
