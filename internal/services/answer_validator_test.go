package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/request_models"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

func TestParseAnswerValueShapes(t *testing.T) {
	single := newChoiceQuestion(uuid.New(), db_models.QuestionTypeSingleChoice, true, 1, "A", "B")
	multi := newChoiceQuestion(uuid.New(), db_models.QuestionTypeMultipleChoice, true, 2, "A", "B")
	rangeQ := newQuestion(uuid.New(), db_models.QuestionTypeRange, true, 3)
	text := newQuestion(uuid.New(), db_models.QuestionTypeText, true, 4)

	fifty := 50
	hello := "hello"

	tests := []struct {
		name     string
		question *db_models.Question
		req      request_models.SubmitAnswerRequest
		want     AnswerValue
		wantErr  bool
	}{
		{
			name:     "single choice with one option",
			question: single,
			req:      request_models.SubmitAnswerRequest{OptionIDs: []string{single.Options[0].ID.String()}},
			want:     SingleChoiceValue{OptionID: single.Options[0].ID.String()},
		},
		{
			name:     "single choice with two options",
			question: single,
			req: request_models.SubmitAnswerRequest{OptionIDs: []string{
				single.Options[0].ID.String(), single.Options[1].ID.String()}},
			wantErr: true,
		},
		{
			name:     "single choice with none",
			question: single,
			req:      request_models.SubmitAnswerRequest{},
			wantErr:  true,
		},
		{
			name:     "multi choice keeps every option",
			question: multi,
			req: request_models.SubmitAnswerRequest{OptionIDs: []string{
				multi.Options[0].ID.String(), multi.Options[1].ID.String()}},
			want: MultiChoiceValue{OptionIDs: []string{
				multi.Options[0].ID.String(), multi.Options[1].ID.String()}},
		},
		{
			name:     "multi choice empty",
			question: multi,
			req:      request_models.SubmitAnswerRequest{OptionIDs: []string{}},
			wantErr:  true,
		},
		{
			name:     "range value present",
			question: rangeQ,
			req:      request_models.SubmitAnswerRequest{RangeValue: &fifty},
			want:     RangeAnswerValue{Value: 50},
		},
		{
			name:     "range value missing",
			question: rangeQ,
			req:      request_models.SubmitAnswerRequest{},
			wantErr:  true,
		},
		{
			name:     "text value present",
			question: text,
			req:      request_models.SubmitAnswerRequest{TextValue: &hello},
			want:     TextAnswerValue{Value: "hello"},
		},
		{
			name:     "text value missing",
			question: text,
			req:      request_models.SubmitAnswerRequest{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswerValue(tt.question, tt.req)
			if tt.wantErr {
				assert.ErrorIs(t, err, utils.ErrInvalidAnswer)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateAnswerValueRules(t *testing.T) {
	single := newChoiceQuestion(uuid.New(), db_models.QuestionTypeSingleChoice, true, 1, "A", "B")
	multi := newChoiceQuestion(uuid.New(), db_models.QuestionTypeMultipleChoice, true, 2, "A", "B")
	rangeQ := newQuestion(uuid.New(), db_models.QuestionTypeRange, true, 3)
	text := newQuestion(uuid.New(), db_models.QuestionTypeText, true, 4)

	tests := []struct {
		name     string
		question *db_models.Question
		value    AnswerValue
		wantErr  bool
	}{
		{"valid single choice", single, SingleChoiceValue{OptionID: single.Options[0].ID.String()}, false},
		{"foreign option", single, SingleChoiceValue{OptionID: uuid.NewString()}, true},
		{"shape mismatch", single, RangeAnswerValue{Value: 10}, true},
		{"valid multi choice", multi, MultiChoiceValue{OptionIDs: []string{
			multi.Options[0].ID.String(), multi.Options[1].ID.String()}}, false},
		{"multi with one foreign option", multi, MultiChoiceValue{OptionIDs: []string{
			multi.Options[0].ID.String(), uuid.NewString()}}, true},
		{"range lower bound", rangeQ, RangeAnswerValue{Value: 0}, false},
		{"range upper bound", rangeQ, RangeAnswerValue{Value: 100}, false},
		{"range below bound", rangeQ, RangeAnswerValue{Value: -1}, true},
		{"range above bound", rangeQ, RangeAnswerValue{Value: 150}, true},
		{"valid text", text, TextAnswerValue{Value: "fine"}, false},
		{"whitespace-only text", text, TextAnswerValue{Value: "   \n\t"}, true},
		{"text at limit", text, TextAnswerValue{Value: strings.Repeat("あ", 1000)}, false},
		{"text over limit", text, TextAnswerValue{Value: strings.Repeat("あ", 1001)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswerValue(tt.question, tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, utils.ErrInvalidAnswer)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsQuestionSatisfied(t *testing.T) {
	required := newChoiceQuestion(uuid.New(), db_models.QuestionTypeSingleChoice, true, 1, "A")
	optional := newQuestion(uuid.New(), db_models.QuestionTypeText, false, 2)

	assert.True(t, IsQuestionSatisfied(optional, nil), "optional questions are satisfied unanswered")
	assert.False(t, IsQuestionSatisfied(required, nil))

	good := &db_models.Answer{OptionIDs: []string{required.Options[0].ID.String()}}
	assert.True(t, IsQuestionSatisfied(required, good))

	stale := &db_models.Answer{OptionIDs: []string{uuid.NewString()}}
	assert.False(t, IsQuestionSatisfied(required, stale), "answers pointing at removed options no longer count")
}
