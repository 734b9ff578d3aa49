package domain

// QuestionResult is one graded row of the results view.
type QuestionResult struct {
	Question      string   `json:"question"`
	Answers       []string `json:"answers"`
	CorrectAnswer string   `json:"correctAnswer"`
	UserAnswer    string   `json:"userAnswer"`
	Answered      bool     `json:"answered"`
	Correct       bool     `json:"correct"`
}

// Results is the graded outcome of a finished quiz.
type Results struct {
	Questions  []QuestionResult `json:"questions"`
	Score      int              `json:"score"`
	Total      int              `json:"total"`
	Percentage float64          `json:"percentage"`
	SourceText string           `json:"sourceText"`
}

// Grade compares each answer to the question's correct answer. It never mutates its inputs.
// Missing trailing answers are treated as unanswered.
func Grade(quiz *Quiz, answers AnswerSet, sourceText string) Results {
	res := Results{
		Questions:  make([]QuestionResult, 0, quiz.Len()),
		Total:      quiz.Len(),
		SourceText: sourceText,
	}
	for i, q := range quiz.Questions() {
		var user string
		if i < len(answers) {
			user = answers[i]
		}
		correct := user != "" && user == q.CorrectAnswer
		if correct {
			res.Score++
		}
		res.Questions = append(res.Questions, QuestionResult{
			Question:      q.Question,
			Answers:       q.Answers,
			CorrectAnswer: q.CorrectAnswer,
			UserAnswer:    user,
			Answered:      user != "",
			Correct:       correct,
		})
	}
	if res.Total > 0 {
		res.Percentage = float64(res.Score) / float64(res.Total) * 100
	}
	return res
}
