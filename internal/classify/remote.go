package classify

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/internal/resilience"
	"github.com/sells-group/safety-cli/pkg/anthropic"
)

// RemoteClassifier asks an LLM to extract incidents from a chunk.
type RemoteClassifier struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
	system    []anthropic.SystemBlock
}

// RemoteOption configures a RemoteClassifier.
type RemoteOption func(*RemoteClassifier)

// WithRequestsPerMinute paces calls to the remote service.
func WithRequestsPerMinute(n int) RemoteOption {
	return func(r *RemoteClassifier) {
		if n > 0 {
			r.limiter = rate.NewLimiter(rate.Limit(float64(n)/60.0), 1)
		}
	}
}

// NewRemoteClassifier creates a classifier backed by client.
func NewRemoteClassifier(client anthropic.Client, model string, maxTokens int64, opts ...RemoteOption) *RemoteClassifier {
	if maxTokens <= 0 {
		maxTokens = 8192
	}
	r := &RemoteClassifier{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		system:    anthropic.BuildCachedSystemBlocks(InstructionHeader, ""),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Name implements Classifier.
func (r *RemoteClassifier) Name() string { return StrategyRemote }

// Classify implements Classifier with a single remote call. Retries are
// the caller's concern.
func (r *RemoteClassifier) Classify(ctx context.Context, paragraphs []string) (*model.Classification, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "classify: rate limit wait")
		}
	}

	temp := 0.0
	resp, err := r.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       r.model,
		MaxTokens:   r.maxTokens,
		System:      r.system,
		Messages:    []anthropic.Message{{Role: "user", Content: BuildPayload(paragraphs)}},
		Temperature: &temp,
	})
	if err != nil {
		if code := anthropic.StatusCode(err); resilience.IsTransientHTTPStatus(code) {
			return nil, resilience.NewTransientError(err, code)
		}
		return nil, eris.Wrap(err, "classify: remote call")
	}
	resp.Usage.LogCost(r.model, "classify")

	if resp.StopReason == "max_tokens" {
		return nil, eris.Wrap(ErrMalformedResponse, "response truncated at max_tokens")
	}
	return ParseResponse(resp.Text())
}
