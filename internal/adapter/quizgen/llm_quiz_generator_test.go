package quizgen_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"quiz-spark/internal/adapter/quizgen"
	"quiz-spark/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// stubModel returns a canned response and records the last prompt it saw.
type stubModel struct {
	response   string
	err        error
	lastPrompt string
}

func (m *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if tp, ok := part.(llms.TextContent); ok {
				m.lastPrompt = tp.Text
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.response}}}, nil
}

func (m *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

const twoQuestions = `{
  "quiz": [
    {"question": "What is 2+2?", "answers": ["3", "4", "5"], "correctAnswer": "4"},
    {"question": "Capital of France?", "answers": ["Paris", "Rome"], "correctAnswer": "Paris"}
  ]
}`

func TestNewLLMQuizGenerator(t *testing.T) {
	_, err := quizgen.NewLLMQuizGenerator(nil, 0.7, time.Second, zap.NewNop())
	assert.Error(t, err)

	gen, err := quizgen.NewLLMQuizGenerator(&stubModel{}, 0.7, time.Second, nil)
	assert.NoError(t, err)
	assert.NotNil(t, gen)
}

func TestLLMQuizGenerator_GenerateQuiz_Success(t *testing.T) {
	model := &stubModel{response: "```json\n" + twoQuestions + "\n```"}
	gen, err := quizgen.NewLLMQuizGenerator(model, 0.7, time.Second, zap.NewNop())
	require.NoError(t, err)

	questions, err := gen.GenerateQuiz(context.Background(), "Some source text about arithmetic and geography.", 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "What is 2+2?", questions[0].Question)
	assert.Equal(t, []string{"3", "4", "5"}, questions[0].Answers)
	assert.Equal(t, "4", questions[0].CorrectAnswer)
	assert.Contains(t, model.lastPrompt, "exactly 2 multiple-choice questions")
	assert.Contains(t, model.lastPrompt, "arithmetic and geography")
}

func TestLLMQuizGenerator_GenerateQuiz_CountMismatchIsNotAnError(t *testing.T) {
	gen, err := quizgen.NewLLMQuizGenerator(&stubModel{response: twoQuestions}, 0.7, 0, zap.NewNop())
	require.NoError(t, err)

	questions, err := gen.GenerateQuiz(context.Background(), "text", 5)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestLLMQuizGenerator_GenerateQuiz_UpstreamFailure(t *testing.T) {
	gen, err := quizgen.NewLLMQuizGenerator(&stubModel{err: errors.New("quota exceeded")}, 0.7, 0, zap.NewNop())
	require.NoError(t, err)

	_, err = gen.GenerateQuiz(context.Background(), "text", 5)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
}

func TestParseQuiz_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "I cannot help with that."},
		{"invalid json", `{"quiz": [ {"question": "Q" ]}`},
		{"empty quiz", `{"quiz": []}`},
		{"missing quiz key", `{"questions": [{"question": "Q", "answers": ["a","b"], "correctAnswer": "a"}]}`},
		{"missing correct answer", `{"quiz": [{"question": "Q", "answers": ["a","b"]}]}`},
		{"correct answer not among answers", `{"quiz": [{"question": "Q", "answers": ["a","b"], "correctAnswer": "c"}]}`},
		{"single answer", `{"quiz": [{"question": "Q", "answers": ["a"], "correctAnswer": "a"}]}`},
		{"one bad among good", `{"quiz": [
			{"question": "Q1", "answers": ["a","b"], "correctAnswer": "a"},
			{"question": "", "answers": ["a","b"], "correctAnswer": "a"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := quizgen.ParseQuiz(tt.raw)
			assert.Nil(t, questions)
			require.Error(t, err)

			var domainErr *domain.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domain.CodeMalformedModelOut, domainErr.Code)
		})
	}
}

func TestParseQuiz_TrimsWhitespace(t *testing.T) {
	questions, err := quizgen.ParseQuiz(`{"quiz": [{"question": " Q? ", "answers": [" a ", "b"], "correctAnswer": "a "}]}`)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, "Q?", questions[0].Question)
	assert.Equal(t, "a", questions[0].CorrectAnswer)
	assert.True(t, questions[0].HasAnswer("a"))
}
