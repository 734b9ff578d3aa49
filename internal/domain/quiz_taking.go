package domain

// QuizTaking is the multi-step answering state for one quiz.
// currentIndex always stays within [0, quiz.Len()-1] and selectedAnswers
// always has quiz.Len() entries.
type QuizTaking struct {
	quiz            *Quiz
	currentIndex    int
	selectedAnswers AnswerSet
}

// QuizTakingSnapshot is the serialisable form of QuizTaking.
type QuizTakingSnapshot struct {
	CurrentIndex    int       `json:"currentIndex"`
	SelectedAnswers AnswerSet `json:"selectedAnswers"`
}

// NewQuizTaking starts at the first question with every answer empty.
func NewQuizTaking(quiz *Quiz) (*QuizTaking, error) {
	if quiz.Len() == 0 {
		return nil, NewValidationError("cannot take an empty quiz")
	}
	return &QuizTaking{
		quiz:            quiz,
		selectedAnswers: NewAnswerSet(quiz.Len()),
	}, nil
}

// RestoreQuizTaking rebuilds state from a snapshot, rejecting snapshots that break the invariants.
func RestoreQuizTaking(quiz *Quiz, snap QuizTakingSnapshot) (*QuizTaking, error) {
	t, err := NewQuizTaking(quiz)
	if err != nil {
		return nil, err
	}
	if len(snap.SelectedAnswers) != quiz.Len() {
		return nil, NewInternalError("stored answer set does not match quiz length", nil)
	}
	if snap.CurrentIndex < 0 || snap.CurrentIndex >= quiz.Len() {
		return nil, NewInternalError("stored question index out of range", nil)
	}
	t.currentIndex = snap.CurrentIndex
	t.selectedAnswers = snap.SelectedAnswers.Clone()
	return t, nil
}

func (t *QuizTaking) Snapshot() QuizTakingSnapshot {
	return QuizTakingSnapshot{
		CurrentIndex:    t.currentIndex,
		SelectedAnswers: t.selectedAnswers.Clone(),
	}
}

func (t *QuizTaking) CurrentIndex() int { return t.currentIndex }

func (t *QuizTaking) Len() int { return t.quiz.Len() }

func (t *QuizTaking) CurrentQuestion() Question {
	q, _ := t.quiz.Question(t.currentIndex)
	return q
}

// CurrentAnswer returns the selection at the current index, empty if unanswered.
func (t *QuizTaking) CurrentAnswer() string {
	return t.selectedAnswers[t.currentIndex]
}

func (t *QuizTaking) SelectedAnswers() AnswerSet {
	return t.selectedAnswers.Clone()
}

func (t *QuizTaking) IsFirst() bool { return t.currentIndex == 0 }

func (t *QuizTaking) IsLast() bool { return t.currentIndex == t.quiz.Len()-1 }

// SelectAnswer records value at the current index, replacing any earlier choice.
func (t *QuizTaking) SelectAnswer(value string) error {
	if !t.CurrentQuestion().HasAnswer(value) {
		return ValidationErrors{NewInvalidFormatError("answer", value)}
	}
	t.selectedAnswers[t.currentIndex] = value
	return nil
}

// CanAdvance reports whether Next would move forward.
func (t *QuizTaking) CanAdvance() bool {
	return !t.IsLast() && t.CurrentAnswer() != ""
}

// Next moves to the following question. It is a no-op on the last question
// and refuses to move while the current question is unanswered.
func (t *QuizTaking) Next() error {
	if t.IsLast() {
		return nil
	}
	if t.CurrentAnswer() == "" {
		return NewError(CodeInvalidTransition, "select an answer before moving on", nil)
	}
	t.currentIndex++
	return nil
}

// Back moves to the previous question; no-op on the first.
func (t *QuizTaking) Back() {
	if t.currentIndex > 0 {
		t.currentIndex--
	}
}

// CanSubmit reports whether the quiz can be finished.
func (t *QuizTaking) CanSubmit() bool {
	return t.IsLast() && t.CurrentAnswer() != ""
}

// Submit returns the completed answer set.
func (t *QuizTaking) Submit() (AnswerSet, error) {
	if !t.IsLast() {
		return nil, NewError(CodeInvalidTransition, "submit is only available on the last question", nil)
	}
	if t.CurrentAnswer() == "" {
		return nil, NewError(CodeInvalidTransition, "select an answer before submitting", nil)
	}
	return t.selectedAnswers.Clone(), nil
}

// Progress is (currentIndex+1)/len*100.
func (t *QuizTaking) Progress() float64 {
	return float64(t.currentIndex+1) / float64(t.quiz.Len()) * 100
}
