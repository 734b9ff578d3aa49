package domain

// WorkflowState is the top-level view of a quiz session.
type WorkflowState string

const (
	StateConfig  WorkflowState = "CONFIG"
	StateQuiz    WorkflowState = "QUIZ"
	StateResults WorkflowState = "RESULTS"
)

// Workflow owns the CONFIG -> QUIZ -> RESULTS -> CONFIG cycle.
// It is plain data so a session store can persist it as JSON.
type Workflow struct {
	State      WorkflowState       `json:"state"`
	Config     ConfigView          `json:"config"`
	Quiz       *Quiz               `json:"quiz,omitempty"`
	Taking     *QuizTakingSnapshot `json:"taking,omitempty"`
	Answers    AnswerSet           `json:"answers,omitempty"`
	SourceText string              `json:"sourceText"`
	AttemptID  string              `json:"attemptId,omitempty"`
}

func NewWorkflow() *Workflow {
	return &Workflow{State: StateConfig, Config: NewConfigView()}
}

// Generate moves CONFIG -> QUIZ, storing the quiz and its source text and
// discarding any previous answers.
func (w *Workflow) Generate(quiz *Quiz, text string) error {
	if w.State != StateConfig {
		return NewInvalidTransitionError(string(w.State), "start a quiz")
	}
	taking, err := NewQuizTaking(quiz)
	if err != nil {
		return err
	}
	snap := taking.Snapshot()
	w.Quiz = quiz
	w.SourceText = text
	w.Answers = nil
	w.Taking = &snap
	w.Config.CompleteGeneration()
	w.State = StateQuiz
	return nil
}

// Finish moves QUIZ -> RESULTS with the final answer set.
func (w *Workflow) Finish(answers AnswerSet) error {
	if w.State != StateQuiz || w.Quiz == nil {
		return NewInvalidTransitionError(string(w.State), "finish a quiz")
	}
	if len(answers) != w.Quiz.Len() {
		return ValidationErrors{NewValidationError("answer set length must match quiz length")}
	}
	w.Answers = answers.Clone()
	w.Taking = nil
	w.State = StateResults
	return nil
}

// Restart returns to an empty CONFIG from any state, clearing quiz, answers
// and source text. Pending requests are forgotten; their results are discarded.
func (w *Workflow) Restart() error {
	w.reset()
	return nil
}

func (w *Workflow) reset() {
	w.State = StateConfig
	w.Config = NewConfigView()
	w.Quiz = nil
	w.Taking = nil
	w.Answers = nil
	w.SourceText = ""
	w.AttemptID = ""
}

// WithTaking runs fn against the active quiz-taking state and persists its changes.
func (w *Workflow) WithTaking(fn func(t *QuizTaking) error) error {
	t, err := w.taking()
	if err != nil {
		return err
	}
	if err := fn(t); err != nil {
		return err
	}
	snap := t.Snapshot()
	w.Taking = &snap
	return nil
}

func (w *Workflow) SelectAnswer(value string) error {
	return w.WithTaking(func(t *QuizTaking) error { return t.SelectAnswer(value) })
}

func (w *Workflow) Next() error {
	return w.WithTaking(func(t *QuizTaking) error { return t.Next() })
}

func (w *Workflow) Back() error {
	return w.WithTaking(func(t *QuizTaking) error {
		t.Back()
		return nil
	})
}

// Submit finishes the quiz from the last question.
func (w *Workflow) Submit() (AnswerSet, error) {
	t, err := w.taking()
	if err != nil {
		return nil, err
	}
	answers, err := t.Submit()
	if err != nil {
		return nil, err
	}
	if err := w.Finish(answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (w *Workflow) taking() (*QuizTaking, error) {
	if w.State != StateQuiz || w.Quiz == nil {
		return nil, NewInvalidTransitionError(string(w.State), "answer questions")
	}
	if w.Taking == nil {
		t, err := NewQuizTaking(w.Quiz)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return RestoreQuizTaking(w.Quiz, *w.Taking)
}

// QuizView is what the quiz-taking screen renders.
type QuizView struct {
	QuestionNumber  int       `json:"questionNumber"`
	TotalQuestions  int       `json:"totalQuestions"`
	Question        Question  `json:"question"`
	SelectedAnswer  string    `json:"selectedAnswer"`
	SelectedAnswers AnswerSet `json:"selectedAnswers"`
	Progress        float64   `json:"progress"`
	CanGoBack       bool      `json:"canGoBack"`
	CanGoNext       bool      `json:"canGoNext"`
	CanSubmit       bool      `json:"canSubmit"`
	IsLast          bool      `json:"isLast"`
}

// ConfigViewModel adds derived fields to ConfigView.
type ConfigViewModel struct {
	ConfigView
	TextHint     string `json:"textHint,omitempty"`
	TextEditable bool   `json:"textEditable"`
	CanGenerate  bool   `json:"canGenerate"`
	MinQuestions int    `json:"minQuestions"`
	MaxQuestions int    `json:"maxQuestions"`
}

// View is the rendering of the current state. Exactly one of Config, Quiz
// or Results is set, or none when the stored state is inconsistent.
type View struct {
	State     WorkflowState    `json:"state"`
	Config    *ConfigViewModel `json:"config,omitempty"`
	Quiz      *QuizView        `json:"quiz,omitempty"`
	Results   *Results         `json:"results,omitempty"`
	AttemptID string           `json:"attemptId,omitempty"`
}

// View renders the workflow. QUIZ or RESULTS without a quiz renders nothing.
func (w *Workflow) View() View {
	v := View{State: w.State}
	switch w.State {
	case StateQuiz:
		t, err := w.taking()
		if err != nil {
			return v
		}
		v.Quiz = &QuizView{
			QuestionNumber:  t.CurrentIndex() + 1,
			TotalQuestions:  t.Len(),
			Question:        t.CurrentQuestion(),
			SelectedAnswer:  t.CurrentAnswer(),
			SelectedAnswers: t.SelectedAnswers(),
			Progress:        t.Progress(),
			CanGoBack:       !t.IsFirst(),
			CanGoNext:       t.CanAdvance(),
			CanSubmit:       t.CanSubmit(),
			IsLast:          t.IsLast(),
		}
	case StateResults:
		if w.Quiz == nil {
			return v
		}
		res := Grade(w.Quiz, w.Answers, w.SourceText)
		v.Results = &res
		v.AttemptID = w.AttemptID
	default:
		v.Config = &ConfigViewModel{
			ConfigView:   w.Config,
			TextHint:     w.Config.TextHint(),
			TextEditable: w.Config.TextEditable(),
			CanGenerate:  !w.Config.Pending() && w.Config.Text != "",
			MinQuestions: MinQuestions,
			MaxQuestions: MaxQuestions,
		}
	}
	return v
}
