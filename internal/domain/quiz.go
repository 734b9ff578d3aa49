package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Question count bounds offered by the configuration slider.
const (
	MinQuestions     = 5
	MaxQuestions     = 50
	DefaultQuestions = 10
)

// Question is a single multiple-choice item. Answers are in display order.
type Question struct {
	Question      string   `json:"question"`
	Answers       []string `json:"answers"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// Validate checks that the question is answerable.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Answers) < 2 {
		return NewValidationError(fmt.Sprintf("question %q needs at least two answers", q.Question))
	}
	found := false
	for _, a := range q.Answers {
		if strings.TrimSpace(a) == "" {
			return NewValidationError(fmt.Sprintf("question %q has an empty answer", q.Question))
		}
		if a == q.CorrectAnswer {
			found = true
		}
	}
	if !found {
		return NewValidationError(fmt.Sprintf("correct answer for %q is not one of its answers", q.Question))
	}
	return nil
}

// HasAnswer reports whether value is one of the candidate answers.
func (q Question) HasAnswer(value string) bool {
	for _, a := range q.Answers {
		if a == value {
			return true
		}
	}
	return false
}

func (q Question) clone() Question {
	answers := make([]string, len(q.Answers))
	copy(answers, q.Answers)
	return Question{Question: q.Question, Answers: answers, CorrectAnswer: q.CorrectAnswer}
}

// Quiz is an ordered, immutable sequence of questions.
// Regenerating produces a new Quiz; nothing mutates an existing one.
type Quiz struct {
	questions []Question
}

// NewQuiz validates and copies the given questions.
func NewQuiz(questions []Question) (*Quiz, error) {
	if len(questions) == 0 {
		return nil, NewValidationError("quiz must contain at least one question")
	}
	qs := make([]Question, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		qs[i] = q.clone()
	}
	return &Quiz{questions: qs}, nil
}

// Len returns the number of questions.
func (q *Quiz) Len() int {
	if q == nil {
		return 0
	}
	return len(q.questions)
}

// Question returns a copy of the question at index i.
func (q *Quiz) Question(i int) (Question, bool) {
	if q == nil || i < 0 || i >= len(q.questions) {
		return Question{}, false
	}
	return q.questions[i].clone(), true
}

// Questions returns a copy of all questions in order.
func (q *Quiz) Questions() []Question {
	if q == nil {
		return nil
	}
	out := make([]Question, len(q.questions))
	for i, qq := range q.questions {
		out[i] = qq.clone()
	}
	return out
}

func (q *Quiz) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.questions)
}

func (q *Quiz) UnmarshalJSON(data []byte) error {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return err
	}
	parsed, err := NewQuiz(questions)
	if err != nil {
		return err
	}
	*q = *parsed
	return nil
}

// AnswerSet holds the user's answer per question, index-aligned with the Quiz.
// An empty string means unanswered.
type AnswerSet []string

// NewAnswerSet returns n unanswered slots.
func NewAnswerSet(n int) AnswerSet {
	return make(AnswerSet, n)
}

// Clone returns an independent copy.
func (a AnswerSet) Clone() AnswerSet {
	if a == nil {
		return nil
	}
	out := make(AnswerSet, len(a))
	copy(out, a)
	return out
}
