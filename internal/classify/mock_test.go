package classify

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/safety-cli/internal/model"
	"github.com/sells-group/safety-cli/pkg/anthropic"
)

type mockClient struct {
	mock.Mock
}

func (m *mockClient) CreateMessage(ctx context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	args := m.Called(ctx, req)
	if v := args.Get(0); v != nil {
		return v.(*anthropic.MessageResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockClassifier struct {
	mock.Mock
	name string
}

func (m *mockClassifier) Name() string { return m.name }

func (m *mockClassifier) Classify(ctx context.Context, paragraphs []string) (*model.Classification, error) {
	args := m.Called(ctx, paragraphs)
	if v := args.Get(0); v != nil {
		return v.(*model.Classification), args.Error(1)
	}
	return nil, args.Error(1)
}

func textResponse(text string) *anthropic.MessageResponse {
	return &anthropic.MessageResponse{
		Content:    []anthropic.ContentBlock{{Type: "text", Text: text}},
		StopReason: "end_turn",
		Usage:      anthropic.TokenUsage{InputTokens: 100, OutputTokens: 20},
	}
}
