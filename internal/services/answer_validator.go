package services

import (
	"fmt"
	"strings"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/request_models"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

const (
	rangeMin      = 0
	rangeMax      = 100
	maxTextLength = 1000
)

// AnswerValue is a closed set of value shapes, one per question type,
// so every consumer switches exhaustively instead of re-checking type
// strings.
type AnswerValue interface {
	answerValue()
}

type SingleChoiceValue struct {
	OptionID string
}

type MultiChoiceValue struct {
	OptionIDs []string
}

type RangeAnswerValue struct {
	Value int
}

type TextAnswerValue struct {
	Value string
}

func (SingleChoiceValue) answerValue() {}
func (MultiChoiceValue) answerValue()  {}
func (RangeAnswerValue) answerValue()  {}
func (TextAnswerValue) answerValue()   {}

// ParseAnswerValue shapes a raw submission into the value variant the
// question expects, or reports what is missing.
func ParseAnswerValue(question *db_models.Question, req request_models.SubmitAnswerRequest) (AnswerValue, error) {
	switch question.Type {
	case db_models.QuestionTypeSingleChoice:
		if len(req.OptionIDs) != 1 {
			return nil, fmt.Errorf("%w: exactly one option is required", utils.ErrInvalidAnswer)
		}
		return SingleChoiceValue{OptionID: req.OptionIDs[0]}, nil
	case db_models.QuestionTypeMultipleChoice:
		if len(req.OptionIDs) == 0 {
			return nil, fmt.Errorf("%w: at least one option is required", utils.ErrInvalidAnswer)
		}
		return MultiChoiceValue{OptionIDs: req.OptionIDs}, nil
	case db_models.QuestionTypeRange:
		if req.RangeValue == nil {
			return nil, fmt.Errorf("%w: a numeric value is required", utils.ErrInvalidAnswer)
		}
		return RangeAnswerValue{Value: *req.RangeValue}, nil
	case db_models.QuestionTypeText:
		if req.TextValue == nil {
			return nil, fmt.Errorf("%w: a text value is required", utils.ErrInvalidAnswer)
		}
		return TextAnswerValue{Value: *req.TextValue}, nil
	default:
		return nil, fmt.Errorf("%w: unknown question type %q", utils.ErrInvalidAnswer, question.Type)
	}
}

// ValidateAnswerValue applies the per-type rules. Pure over
// (question, value); no side effects.
func ValidateAnswerValue(question *db_models.Question, value AnswerValue) error {
	switch v := value.(type) {
	case SingleChoiceValue:
		if question.Type != db_models.QuestionTypeSingleChoice {
			return fmt.Errorf("%w: value shape does not match question type", utils.ErrInvalidAnswer)
		}
		if !optionBelongsToQuestion(question, v.OptionID) {
			return fmt.Errorf("%w: option does not belong to this question", utils.ErrInvalidAnswer)
		}
		return nil
	case MultiChoiceValue:
		if question.Type != db_models.QuestionTypeMultipleChoice {
			return fmt.Errorf("%w: value shape does not match question type", utils.ErrInvalidAnswer)
		}
		if len(v.OptionIDs) == 0 {
			return fmt.Errorf("%w: at least one option is required", utils.ErrInvalidAnswer)
		}
		for _, optionID := range v.OptionIDs {
			if !optionBelongsToQuestion(question, optionID) {
				return fmt.Errorf("%w: option does not belong to this question", utils.ErrInvalidAnswer)
			}
		}
		return nil
	case RangeAnswerValue:
		if question.Type != db_models.QuestionTypeRange {
			return fmt.Errorf("%w: value shape does not match question type", utils.ErrInvalidAnswer)
		}
		if v.Value < rangeMin || v.Value > rangeMax {
			return fmt.Errorf("%w: value must be between %d and %d", utils.ErrInvalidAnswer, rangeMin, rangeMax)
		}
		return nil
	case TextAnswerValue:
		if question.Type != db_models.QuestionTypeText {
			return fmt.Errorf("%w: value shape does not match question type", utils.ErrInvalidAnswer)
		}
		if strings.TrimSpace(v.Value) == "" {
			return fmt.Errorf("%w: text must not be empty", utils.ErrInvalidAnswer)
		}
		if len([]rune(v.Value)) > maxTextLength {
			return fmt.Errorf("%w: text must be at most %d characters", utils.ErrInvalidAnswer, maxTextLength)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown answer value", utils.ErrInvalidAnswer)
	}
}

// IsQuestionSatisfied decides whether a stored answer covers a
// question. Optional questions are always satisfied, answered or not.
func IsQuestionSatisfied(question *db_models.Question, answer *db_models.Answer) bool {
	if !question.IsRequired {
		return true
	}
	if answer == nil {
		return false
	}
	value, ok := storedAnswerValue(question, answer)
	if !ok {
		return false
	}
	return ValidateAnswerValue(question, value) == nil
}

// storedAnswerValue rebuilds the tagged value from a persisted row.
func storedAnswerValue(question *db_models.Question, answer *db_models.Answer) (AnswerValue, bool) {
	switch question.Type {
	case db_models.QuestionTypeSingleChoice:
		if len(answer.OptionIDs) != 1 {
			return nil, false
		}
		return SingleChoiceValue{OptionID: answer.OptionIDs[0]}, true
	case db_models.QuestionTypeMultipleChoice:
		if len(answer.OptionIDs) == 0 {
			return nil, false
		}
		return MultiChoiceValue{OptionIDs: answer.OptionIDs}, true
	case db_models.QuestionTypeRange:
		if answer.RangeValue == nil {
			return nil, false
		}
		return RangeAnswerValue{Value: *answer.RangeValue}, true
	case db_models.QuestionTypeText:
		if answer.TextValue == nil {
			return nil, false
		}
		return TextAnswerValue{Value: *answer.TextValue}, true
	default:
		return nil, false
	}
}

func optionBelongsToQuestion(question *db_models.Question, optionID string) bool {
	for _, option := range question.Options {
		if option.ID.String() == optionID {
			return true
		}
	}
	return false
}
