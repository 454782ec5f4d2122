package classify

import (
	"context"

	"github.com/sells-group/safety-cli/internal/model"
)

// Strategy names reported in results and logs.
const (
	StrategyRemote = "remote"
	StrategyRules  = "rules"
)

// Classifier converts one chunk of paragraphs into a location mapping.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, paragraphs []string) (*model.Classification, error)
}
