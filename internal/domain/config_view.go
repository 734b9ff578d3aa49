package domain

import "unicode/utf8"

// MinTextLengthHint is the suggested minimum source text length. It is advisory only.
const MinTextLengthHint = 50

// ConfigView collects the source text and question count before a quiz exists.
// At most one request (extraction or generation) is pending at a time and
// PendingID names it, so a late result from an earlier request can be told apart.
type ConfigView struct {
	Text         string `json:"text"`
	NumQuestions int    `json:"numQuestions"`
	Extracting   bool   `json:"extracting"`
	Generating   bool   `json:"generating"`
	PendingID    string `json:"pendingId,omitempty"`
	LastError    string `json:"lastError,omitempty"`
}

func NewConfigView() ConfigView {
	return ConfigView{NumQuestions: DefaultQuestions}
}

// Pending reports whether any request is outstanding.
func (c *ConfigView) Pending() bool {
	return c.Extracting || c.Generating
}

// Awaits reports whether requestID is the request currently pending.
func (c *ConfigView) Awaits(requestID string) bool {
	return c.Pending() && requestID != "" && c.PendingID == requestID
}

// TextEditable is false while an extraction is filling the text field.
func (c *ConfigView) TextEditable() bool {
	return !c.Extracting
}

func (c *ConfigView) SetText(text string) error {
	if c.Extracting {
		return NewRequestPendingError("text extraction")
	}
	c.Text = text
	return nil
}

func (c *ConfigView) SetNumQuestions(n int) error {
	if n < MinQuestions || n > MaxQuestions {
		return ValidationErrors{NewOutOfRangeError("numQuestions", n, MinQuestions, MaxQuestions)}
	}
	c.NumQuestions = n
	return nil
}

// TextHint returns a soft warning for short text, or "" when none applies.
func (c *ConfigView) TextHint() string {
	if utf8.RuneCountInString(c.Text) < MinTextLengthHint {
		return "Text is shorter than 50 characters; the quiz may be thin."
	}
	return ""
}

func (c *ConfigView) BeginExtraction(requestID string) error {
	if c.Pending() {
		return c.pendingError()
	}
	c.Extracting = true
	c.PendingID = requestID
	c.LastError = ""
	return nil
}

func (c *ConfigView) CompleteExtraction(text string) {
	c.Extracting = false
	c.PendingID = ""
	c.Text = text
	c.LastError = ""
}

// FailExtraction rolls the text field back to empty.
func (c *ConfigView) FailExtraction(message string) {
	c.Extracting = false
	c.PendingID = ""
	c.Text = ""
	c.LastError = message
}

func (c *ConfigView) BeginGeneration(requestID string) error {
	if c.Pending() {
		return c.pendingError()
	}
	if c.Text == "" {
		return ValidationErrors{NewMissingFieldError("text")}
	}
	c.Generating = true
	c.PendingID = requestID
	c.LastError = ""
	return nil
}

func (c *ConfigView) CompleteGeneration() {
	c.Generating = false
	c.PendingID = ""
	c.LastError = ""
}

func (c *ConfigView) FailGeneration(message string) {
	c.Generating = false
	c.PendingID = ""
	c.LastError = message
}

func (c *ConfigView) pendingError() error {
	if c.Extracting {
		return NewRequestPendingError("text extraction")
	}
	return NewRequestPendingError("quiz generation")
}
