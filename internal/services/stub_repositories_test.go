package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

// In-memory repository stubs. Each mimics just enough of the real
// storage semantics (CAS transitions, upsert keys, transactional
// existence checks) for the services to behave as they do against
// Postgres.

type stubSessionRepo struct {
	sessions map[uuid.UUID]*db_models.QuestionnaireSession
	history  []db_models.UserHistory
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: map[uuid.UUID]*db_models.QuestionnaireSession{}}
}

func (s *stubSessionRepo) Create(_ context.Context, session *db_models.QuestionnaireSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *stubSessionRepo) GetByID(_ context.Context, id string) (*db_models.QuestionnaireSession, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	if session, ok := s.sessions[parsed]; ok {
		copied := *session
		return &copied, nil
	}
	return nil, nil
}

func (s *stubSessionRepo) FindInProgress(_ context.Context, userProfileID, categoryID uuid.UUID) (*db_models.QuestionnaireSession, error) {
	for _, session := range s.sessions {
		if session.UserProfileID == userProfileID &&
			session.CategoryID == categoryID &&
			session.Status == db_models.SessionStatusInProgress {
			copied := *session
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubSessionRepo) ListByUser(_ context.Context, userProfileID uuid.UUID, page, pageSize int) ([]db_models.QuestionnaireSession, error) {
	var out []db_models.QuestionnaireSession
	for _, session := range s.sessions {
		if session.UserProfileID == userProfileID {
			out = append(out, *session)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt > out[j].StartedAt })
	return out, nil
}

func (s *stubSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.sessions, id)
	return nil
}

func (s *stubSessionRepo) UpdateStatusIf(_ context.Context, id uuid.UUID, from, to db_models.SessionStatus) (bool, error) {
	session, ok := s.sessions[id]
	if !ok || session.Status != from {
		return false, nil
	}
	session.Status = to
	return true, nil
}

func (s *stubSessionRepo) CompleteTx(_ context.Context, session *db_models.QuestionnaireSession, answeredCount int, summary string) (int64, error) {
	stored, ok := s.sessions[session.ID]
	if !ok || stored.Status != db_models.SessionStatusInProgress {
		return 0, utils.ErrInvalidSessionState
	}
	completedAt := time.Now().Unix()
	stored.Status = db_models.SessionStatusCompleted
	stored.CompletedAt = &completedAt
	s.history = append(s.history, db_models.UserHistory{
		UserProfileID: stored.UserProfileID,
		SessionID:     stored.ID,
		CategoryID:    stored.CategoryID,
		AnsweredCount: answeredCount,
		Summary:       summary,
	})
	return completedAt, nil
}

// racingSessionRepo simulates a rival caller winning the storage-level
// race: the rival's transition lands first, then the caller's own CAS
// runs against the already-moved row and loses.
type racingSessionRepo struct {
	*stubSessionRepo
}

func (r *racingSessionRepo) CompleteTx(ctx context.Context, session *db_models.QuestionnaireSession, answeredCount int, summary string) (int64, error) {
	if _, err := r.stubSessionRepo.CompleteTx(ctx, session, answeredCount, summary); err != nil {
		return 0, err
	}
	return r.stubSessionRepo.CompleteTx(ctx, session, answeredCount, summary)
}

func (r *racingSessionRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to db_models.SessionStatus) (bool, error) {
	ok, err := r.stubSessionRepo.UpdateStatusIf(ctx, id, from, to)
	if err != nil || !ok {
		return ok, err
	}
	return r.stubSessionRepo.UpdateStatusIf(ctx, id, from, to)
}

type answerKey struct {
	sessionID  uuid.UUID
	questionID uuid.UUID
}

type stubAnswerRepo struct {
	answers   map[answerKey]*db_models.Answer
	questions *stubQuestionRepo
}

func newStubAnswerRepo(questions *stubQuestionRepo) *stubAnswerRepo {
	return &stubAnswerRepo{answers: map[answerKey]*db_models.Answer{}, questions: questions}
}

func (s *stubAnswerRepo) Upsert(_ context.Context, answer *db_models.Answer) error {
	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}
	copied := *answer
	s.answers[answerKey{answer.SessionID, answer.QuestionID}] = &copied
	return nil
}

func (s *stubAnswerRepo) UpsertBatchTx(ctx context.Context, answers []*db_models.Answer) error {
	for _, answer := range answers {
		if err := s.Upsert(ctx, answer); err != nil {
			return err
		}
	}
	return nil
}

func (s *stubAnswerRepo) ListBySession(_ context.Context, sessionID uuid.UUID) ([]db_models.Answer, error) {
	var out []db_models.Answer
	for key, answer := range s.answers {
		if key.sessionID != sessionID {
			continue
		}
		copied := *answer
		if s.questions != nil {
			if question, ok := s.questions.questions[answer.QuestionID]; ok {
				copied.Question = *question
			}
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (s *stubAnswerRepo) CountBySession(_ context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	for key := range s.answers {
		if key.sessionID == sessionID {
			count++
		}
	}
	return count, nil
}

type stubQuestionRepo struct {
	questions map[uuid.UUID]*db_models.Question
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{questions: map[uuid.UUID]*db_models.Question{}}
}

func (s *stubQuestionRepo) add(question *db_models.Question) {
	s.questions[question.ID] = question
}

func (s *stubQuestionRepo) GetByIDWithOptions(_ context.Context, id string) (*db_models.Question, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	if question, ok := s.questions[parsed]; ok {
		copied := *question
		return &copied, nil
	}
	return nil, nil
}

func (s *stubQuestionRepo) ListByCategory(_ context.Context, categoryID string) ([]db_models.Question, error) {
	var out []db_models.Question
	for _, question := range s.questions {
		if question.CategoryID.String() == categoryID {
			out = append(out, *question)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

type stubCategoryRepo struct {
	categories map[uuid.UUID]*db_models.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: map[uuid.UUID]*db_models.Category{}}
}

func (s *stubCategoryRepo) add(category *db_models.Category) {
	s.categories[category.ID] = category
}

func (s *stubCategoryRepo) GetByID(_ context.Context, id string) (*db_models.Category, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	if category, ok := s.categories[parsed]; ok {
		copied := *category
		return &copied, nil
	}
	return nil, nil
}

func (s *stubCategoryRepo) ListRoots(_ context.Context) ([]db_models.Category, error) {
	var out []db_models.Category
	for _, category := range s.categories {
		if category.ParentID == nil {
			out = append(out, *category)
		}
	}
	return out, nil
}

func (s *stubCategoryRepo) ListChildren(_ context.Context, parentID string) ([]db_models.Category, error) {
	var out []db_models.Category
	for _, category := range s.categories {
		if category.ParentID != nil && category.ParentID.String() == parentID {
			out = append(out, *category)
		}
	}
	return out, nil
}

type stubProductRepo struct {
	products []db_models.Product
}

func (s *stubProductRepo) GetByID(_ context.Context, id string) (*db_models.Product, error) {
	for i := range s.products {
		if s.products[i].ID.String() == id {
			copied := s.products[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubProductRepo) ListByCategory(_ context.Context, categoryID string, page, pageSize int) ([]db_models.Product, error) {
	var out []db_models.Product
	for _, product := range s.products {
		if product.CategoryID.String() == categoryID {
			out = append(out, product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out, nil
}

func (s *stubProductRepo) TopRatedByCategory(_ context.Context, categoryID uuid.UUID, limit int) ([]db_models.Product, error) {
	var out []db_models.Product
	for _, product := range s.products {
		if product.CategoryID == categoryID {
			out = append(out, product)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *stubProductRepo) ListByIDs(_ context.Context, ids []string) ([]db_models.Product, error) {
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []db_models.Product
	for _, product := range s.products {
		if wanted[product.ID.String()] {
			out = append(out, product)
		}
	}
	return out, nil
}

func (s *stubProductRepo) UpsertByExternalURL(_ context.Context, product *db_models.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	for i := range s.products {
		if s.products[i].ExternalURL == product.ExternalURL {
			product.ID = s.products[i].ID
			s.products[i] = *product
			return nil
		}
	}
	s.products = append(s.products, *product)
	return nil
}

type stubRecommendationRepo struct {
	bySession map[uuid.UUID][]*db_models.Recommendation
	products  *stubProductRepo
}

func newStubRecommendationRepo(products *stubProductRepo) *stubRecommendationRepo {
	return &stubRecommendationRepo{bySession: map[uuid.UUID][]*db_models.Recommendation{}, products: products}
}

func (s *stubRecommendationRepo) ExistsForSession(_ context.Context, sessionID uuid.UUID) (bool, error) {
	return len(s.bySession[sessionID]) > 0, nil
}

func (s *stubRecommendationRepo) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]db_models.Recommendation, error) {
	var out []db_models.Recommendation
	for _, recommendation := range s.bySession[sessionID] {
		copied := *recommendation
		if s.products != nil {
			if product, _ := s.products.GetByID(ctx, recommendation.ProductID.String()); product != nil {
				copied.Product = *product
			}
		}
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out, nil
}

func (s *stubRecommendationRepo) CreateBatchTx(_ context.Context, _ uuid.UUID, recommendations []*db_models.Recommendation) error {
	if len(recommendations) == 0 {
		return nil
	}
	sessionID := recommendations[0].SessionID
	if len(s.bySession[sessionID]) > 0 {
		return utils.ErrAlreadyGenerated
	}
	for _, recommendation := range recommendations {
		if recommendation.ID == uuid.Nil {
			recommendation.ID = uuid.New()
		}
		copied := *recommendation
		s.bySession[sessionID] = append(s.bySession[sessionID], &copied)
	}
	return nil
}

// stubAgent scripts the generation client.
type stubAgent struct {
	response string
	err      error
	calls    int
}

func (s *stubAgent) GenerateRecommendations(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.response, s.err
}

func (s *stubAgent) GetEmbedding(_ context.Context, _ string) (pgvector.Vector, error) {
	return pgvector.NewVector(make([]float32, 4)), nil
}
