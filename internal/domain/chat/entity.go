package chat

import (
	"strings"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/pkg/validator"
)

// Intent ids with special handling
const (
	IntentHelp           = "help"
	IntentEmployeeStatus = "employee_status"
	IntentFallback       = "fallback"
	IntentNotLoaded      = "not_loaded"
)

// MaxQuestionLength bounds a single question in bytes
const MaxQuestionLength = 500

// Intent is one answerable question. It matches when every term of any one
// keyword group occurs in the question.
type Intent struct {
	ID       string     `yaml:"id" json:"id"`
	Question string     `yaml:"question" json:"question"`
	Keywords [][]string `yaml:"keywords" json:"-"`
	Priority int        `yaml:"priority" json:"-"`
	Sample   bool       `yaml:"sample" json:"-"`
}

type Answer struct {
	Question    string   `json:"question"`
	Intent      string   `json:"intent"`
	Answer      string   `json:"answer"`
	Matched     bool     `json:"matched"`
	SnapshotID  string   `json:"snapshot_id,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type AskRequest struct {
	Question string `json:"question"`
}

func (r *AskRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Question = strings.TrimSpace(r.Question)
	if validator.IsEmpty(r.Question) {
		errs = append(errs, validator.ValidationError{
			Field:   "question",
			Message: "question is required",
		})
	} else if len(r.Question) > MaxQuestionLength {
		errs = append(errs, validator.ValidationError{
			Field:   "question",
			Message: "question must be at most 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
