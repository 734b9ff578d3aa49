package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice is stored as a JSON array in a text column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// QuizAttempt maps a row of quiz_attempts.
type QuizAttempt struct {
	ID          string         `db:"ID"`
	QuizJSON    string         `db:"QUIZ_JSON"`
	AnswersJSON StringSlice    `db:"ANSWERS_JSON"`
	SourceText  sql.NullString `db:"SOURCE_TEXT"`
	Score       int            `db:"SCORE"`
	Total       int            `db:"TOTAL"`
	CreatedAt   time.Time      `db:"CREATED_AT"`
}
