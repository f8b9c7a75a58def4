package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/request_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/response_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type SessionServiceInterface interface {
	StartSession(ctx context.Context, userID string, request request_models.StartSessionRequest) (*response_models.SessionResponse, error)
	GetSession(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error)
	ListSessions(ctx context.Context, userID string, page, pageSize int) ([]response_models.SessionResponse, error)
	DeleteSession(ctx context.Context, userID, sessionID string) error

	SubmitAnswer(ctx context.Context, userID, sessionID string, request request_models.SubmitAnswerRequest) (*response_models.AnswerResponse, error)
	SubmitAnswerBatch(ctx context.Context, userID, sessionID string, request request_models.BatchAnswersRequest) ([]response_models.AnswerResponse, error)
	ListAnswers(ctx context.Context, userID, sessionID string) ([]response_models.AnswerResponse, error)

	Advance(ctx context.Context, userID, sessionID string) (*response_models.SessionProgressResponse, error)
	CompleteSession(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error)
	AbandonSession(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error)
	ResumeSession(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error)
}

type SessionService struct {
	sessionRepo  repositories.SessionRepository
	answerRepo   repositories.AnswerRepository
	questionRepo repositories.QuestionRepository
	categoryRepo repositories.CategoryRepository
	logger       *zap.Logger
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	answerRepo repositories.AnswerRepository,
	questionRepo repositories.QuestionRepository,
	categoryRepo repositories.CategoryRepository,
	logger *zap.Logger,
) SessionServiceInterface {
	return &SessionService{
		sessionRepo:  sessionRepo,
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// StartSession reuses a live IN_PROGRESS session for (user, category)
// instead of creating a duplicate on re-entry.
func (s *SessionService) StartSession(ctx context.Context, userID string, request request_models.StartSessionRequest) (*response_models.SessionResponse, error) {
	profileID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	category, err := s.categoryRepo.GetByID(ctx, request.CategoryID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}

	existing, err := s.sessionRepo.FindInProgress(ctx, profileID, category.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return buildSessionResponse(existing), nil
	}

	session := &db_models.QuestionnaireSession{
		UserProfileID: profileID,
		CategoryID:    category.ID,
		Status:        db_models.SessionStatusInProgress,
		StartedAt:     time.Now().Unix(),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.logger.Info("session started",
		zap.String("session_id", session.ID.String()),
		zap.String("category_id", category.ID.String()))

	return buildSessionResponse(session), nil
}

func (s *SessionService) GetSession(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return buildSessionResponse(session), nil
}

func (s *SessionService) ListSessions(ctx context.Context, userID string, page, pageSize int) ([]response_models.SessionResponse, error) {
	if page < 1 || pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPage
	}
	profileID, err := uuid.Parse(userID)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}

	sessions, err := s.sessionRepo.ListByUser(ctx, profileID, page, pageSize)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *buildSessionResponse(&sessions[i]))
	}
	return out, nil
}

func (s *SessionService) DeleteSession(ctx context.Context, userID, sessionID string) error {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (s *SessionService) SubmitAnswer(ctx context.Context, userID, sessionID string, request request_models.SubmitAnswerRequest) (*response_models.AnswerResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != db_models.SessionStatusInProgress {
		return nil, utils.ErrInvalidSessionState
	}

	answer, question, err := s.validatedAnswerRow(ctx, session, request)
	if err != nil {
		return nil, err
	}

	if err := s.answerRepo.Upsert(ctx, answer); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return buildAnswerResponse(answer, question), nil
}

// SubmitAnswerBatch validates every answer before any write, then
// persists all of them in one transaction.
func (s *SessionService) SubmitAnswerBatch(ctx context.Context, userID, sessionID string, request request_models.BatchAnswersRequest) ([]response_models.AnswerResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != db_models.SessionStatusInProgress {
		return nil, utils.ErrInvalidSessionState
	}

	answers := make([]*db_models.Answer, 0, len(request.Answers))
	questions := make([]*db_models.Question, 0, len(request.Answers))
	for _, answerRequest := range request.Answers {
		answer, question, err := s.validatedAnswerRow(ctx, session, answerRequest)
		if err != nil {
			return nil, err
		}
		answers = append(answers, answer)
		questions = append(questions, question)
	}

	if err := s.answerRepo.UpsertBatchTx(ctx, answers); err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.AnswerResponse, 0, len(answers))
	for i, answer := range answers {
		out = append(out, *buildAnswerResponse(answer, questions[i]))
	}
	return out, nil
}

func (s *SessionService) ListAnswers(ctx context.Context, userID, sessionID string) ([]response_models.AnswerResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	answers, err := s.answerRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.AnswerResponse, 0, len(answers))
	for i := range answers {
		out = append(out, *buildAnswerResponse(&answers[i], &answers[i].Question))
	}
	return out, nil
}

// Advance reports the next unanswered question and whether all required
// questions are covered. Read-only; never transitions the session.
func (s *SessionService) Advance(ctx context.Context, userID, sessionID string) (*response_models.SessionProgressResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	questions, answersByQuestion, err := s.loadProgress(ctx, session)
	if err != nil {
		return nil, err
	}

	progress := &response_models.SessionProgressResponse{
		SessionID:             session.ID.String(),
		TotalQuestions:        len(questions),
		AnsweredCount:         len(answersByQuestion),
		UnansweredRequiredIDs: []string{},
	}

	for i := range questions {
		question := &questions[i]
		answer := answersByQuestion[question.ID]
		if answer == nil && progress.NextQuestion == nil {
			progress.NextQuestion = buildQuestionResponse(question)
		}
		if question.IsRequired && !IsQuestionSatisfied(question, answer) {
			progress.UnansweredRequiredIDs = append(progress.UnansweredRequiredIDs, question.ID.String())
		}
	}
	progress.IsCompleted = len(progress.UnansweredRequiredIDs) == 0

	return progress, nil
}

// CompleteSession gates completion on required-question coverage.
// Completing an already-COMPLETED session is a no-op returning the
// existing completion data.
func (s *SessionService) CompleteSession(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Status == db_models.SessionStatusCompleted {
		return buildSessionResponse(session), nil
	}
	if session.Status != db_models.SessionStatusInProgress {
		return nil, utils.ErrInvalidSessionState
	}

	questions, answersByQuestion, err := s.loadProgress(ctx, session)
	if err != nil {
		return nil, err
	}

	var missing []uuid.UUID
	for i := range questions {
		question := &questions[i]
		if question.IsRequired && !IsQuestionSatisfied(question, answersByQuestion[question.ID]) {
			missing = append(missing, question.ID)
		}
	}
	if len(missing) > 0 {
		return nil, &utils.IncompleteRequiredAnswersError{MissingQuestionIDs: missing}
	}

	summary := fmt.Sprintf("Completed questionnaire with %d of %d questions answered",
		len(answersByQuestion), len(questions))

	completedAt, err := s.sessionRepo.CompleteTx(ctx, session, len(answersByQuestion), summary)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidSessionState) {
			// Lost the CAS: a concurrent call finished first. Re-read
			// and report the already-completed state if that is what
			// happened.
			current, readErr := s.sessionRepo.GetByID(ctx, sessionID)
			if readErr == nil && current != nil && current.Status == db_models.SessionStatusCompleted {
				return buildSessionResponse(current), nil
			}
			return nil, utils.ErrInvalidSessionState
		}
		return nil, utils.ErrDatabaseError
	}

	session.Status = db_models.SessionStatusCompleted
	session.CompletedAt = &completedAt

	s.logger.Info("session completed",
		zap.String("session_id", session.ID.String()),
		zap.Int("answered", len(answersByQuestion)))

	return buildSessionResponse(session), nil
}

func (s *SessionService) AbandonSession(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error) {
	return s.transition(ctx, userID, sessionID,
		db_models.SessionStatusInProgress, db_models.SessionStatusAbandoned)
}

func (s *SessionService) ResumeSession(ctx context.Context, userID, sessionID string) (*response_models.SessionResponse, error) {
	return s.transition(ctx, userID, sessionID,
		db_models.SessionStatusAbandoned, db_models.SessionStatusInProgress)
}

// transition re-checks the current status at the storage layer via CAS
// so concurrent transitions cannot both win.
func (s *SessionService) transition(ctx context.Context, userID, sessionID string, from, to db_models.SessionStatus) (*response_models.SessionResponse, error) {
	session, err := s.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != from {
		return nil, utils.ErrInvalidSessionState
	}

	ok, err := s.sessionRepo.UpdateStatusIf(ctx, session.ID, from, to)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !ok {
		return nil, utils.ErrInvalidSessionState
	}

	session.Status = to
	return buildSessionResponse(session), nil
}

func (s *SessionService) ownedSession(ctx context.Context, userID, sessionID string) (*db_models.QuestionnaireSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil || session.UserProfileID.String() != userID {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

func (s *SessionService) validatedAnswerRow(ctx context.Context, session *db_models.QuestionnaireSession, request request_models.SubmitAnswerRequest) (*db_models.Answer, *db_models.Question, error) {
	question, err := s.questionRepo.GetByIDWithOptions(ctx, request.QuestionID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if question == nil {
		return nil, nil, utils.ErrQuestionNotFound
	}
	if question.CategoryID != session.CategoryID {
		return nil, nil, utils.ErrCategoryMismatch
	}

	value, err := ParseAnswerValue(question, request)
	if err != nil {
		return nil, nil, err
	}
	if err := ValidateAnswerValue(question, value); err != nil {
		return nil, nil, err
	}

	answer := &db_models.Answer{
		SessionID:  session.ID,
		QuestionID: question.ID,
	}
	switch v := value.(type) {
	case SingleChoiceValue:
		answer.OptionIDs = []string{v.OptionID}
	case MultiChoiceValue:
		answer.OptionIDs = v.OptionIDs
	case RangeAnswerValue:
		rangeValue := v.Value
		answer.RangeValue = &rangeValue
	case TextAnswerValue:
		textValue := v.Value
		answer.TextValue = &textValue
	}

	return answer, question, nil
}

func (s *SessionService) loadProgress(ctx context.Context, session *db_models.QuestionnaireSession) ([]db_models.Question, map[uuid.UUID]*db_models.Answer, error) {
	questions, err := s.questionRepo.ListByCategory(ctx, session.CategoryID.String())
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	answers, err := s.answerRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}

	answersByQuestion := make(map[uuid.UUID]*db_models.Answer, len(answers))
	for i := range answers {
		answersByQuestion[answers[i].QuestionID] = &answers[i]
	}

	return questions, answersByQuestion, nil
}

func buildSessionResponse(session *db_models.QuestionnaireSession) *response_models.SessionResponse {
	return &response_models.SessionResponse{
		ID:          session.ID.String(),
		CategoryID:  session.CategoryID.String(),
		Status:      string(session.Status),
		StartedAt:   session.StartedAt,
		CompletedAt: session.CompletedAt,
	}
}

func buildQuestionResponse(question *db_models.Question) *response_models.QuestionResponse {
	out := &response_models.QuestionResponse{
		ID:          question.ID.String(),
		CategoryID:  question.CategoryID.String(),
		Text:        question.Text,
		Description: question.Description,
		Type:        string(question.Type),
		IsRequired:  question.IsRequired,
	}
	for _, option := range question.Options {
		out.Options = append(out.Options, response_models.OptionResponse{
			ID:          option.ID.String(),
			Label:       option.Label,
			Description: option.Description,
			Value:       option.Value,
		})
	}
	return out
}

func buildAnswerResponse(answer *db_models.Answer, question *db_models.Question) *response_models.AnswerResponse {
	out := &response_models.AnswerResponse{
		QuestionID:   answer.QuestionID.String(),
		QuestionText: question.Text,
		QuestionType: string(question.Type),
		OptionIDs:    answer.OptionIDs,
		RangeValue:   answer.RangeValue,
		TextValue:    answer.TextValue,
	}
	for _, optionID := range answer.OptionIDs {
		for _, option := range question.Options {
			if option.ID.String() == optionID {
				out.OptionLabels = append(out.OptionLabels, option.Label)
			}
		}
	}
	return out
}
