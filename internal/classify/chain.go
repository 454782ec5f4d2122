package classify

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/resilience"
)

// Result is the outcome of classifying one chunk.
type Result struct {
	Classification *model.Classification
	// Strategy names the classifier that produced the result.
	Strategy string
	// Attempts counts calls made to the primary classifier.
	Attempts int
	// PrimaryErr is the last primary error when the fallback was used.
	PrimaryErr error
}

// Chain classifies a chunk with a primary strategy under a retry policy
// and falls back to a local strategy once the attempts are exhausted. A
// chunk therefore always yields a classification unless ctx is done.
type Chain struct {
	primary  Classifier
	fallback Classifier
	retry    resilience.RetryConfig
	breaker  *resilience.CircuitBreaker
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithRetry sets the retry policy for the primary classifier.
func WithRetry(cfg resilience.RetryConfig) ChainOption {
	return func(c *Chain) { c.retry = cfg }
}

// WithBreaker guards the primary classifier with a circuit breaker.
func WithBreaker(cb *resilience.CircuitBreaker) ChainOption {
	return func(c *Chain) { c.breaker = cb }
}

// NewChain creates a chain. A nil primary sends every chunk straight to
// fallback.
func NewChain(primary, fallback Classifier, opts ...ChainOption) *Chain {
	c := &Chain{
		primary:  primary,
		fallback: fallback,
		retry:    resilience.ClassifierRetryConfig(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.retry.OnRetry == nil && primary != nil {
		c.retry.OnRetry = resilience.RetryLogger(primary.Name(), "classify")
	}
	return c
}

// ClassifyChunk classifies one chunk.
func (c *Chain) ClassifyChunk(ctx context.Context, paragraphs []string) (Result, error) {
	var res Result
	if c.primary != nil {
		cls, attempts, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*model.Classification, error) {
			return resilience.ExecuteVal(ctx, c.breaker, func(ctx context.Context) (*model.Classification, error) {
				return c.primary.Classify(ctx, paragraphs)
			})
		})
		res.Attempts = attempts
		if err == nil {
			res.Classification = cls
			res.Strategy = c.primary.Name()
			return res, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, eris.Wrap(ctxErr, "classify: chunk")
		}
		res.PrimaryErr = err
		zap.L().Warn("classify: primary strategy failed, using fallback",
			zap.String("primary", c.primary.Name()),
			zap.String("fallback", c.fallback.Name()),
			zap.Int("attempts", attempts),
			zap.String("error_kind", string(resilience.Classify(err))),
			zap.Error(err),
		)
	}

	cls, err := c.fallback.Classify(ctx, paragraphs)
	if err != nil {
		return res, eris.Wrapf(err, "classify: fallback %s", c.fallback.Name())
	}
	res.Classification = cls
	res.Strategy = c.fallback.Name()
	return res, nil
}

// Name implements Classifier.
func (c *Chain) Name() string {
	if c.primary == nil {
		return c.fallback.Name()
	}
	return c.primary.Name() + "+" + c.fallback.Name()
}

// Classify implements Classifier.
func (c *Chain) Classify(ctx context.Context, paragraphs []string) (*model.Classification, error) {
	res, err := c.ClassifyChunk(ctx, paragraphs)
	return res.Classification, err
}
