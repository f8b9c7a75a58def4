package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	mem "github.com/masa-png/gadget-concierge-sub001/pkg/memcache"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

type recommendationTestWorld struct {
	service  RecommendationServiceInterface
	sessions *stubSessionRepo
	answers  *stubAnswerRepo
	recs     *stubRecommendationRepo
	agent    *stubAgent

	userID    uuid.UUID
	sessionID uuid.UUID
	products  []db_models.Product
}

// newRecommendationTestWorld builds a COMPLETED session with one answer
// and three candidate products rated 4.8, 4.5 and 4.1.
func newRecommendationTestWorld(t *testing.T, agent *stubAgent) *recommendationTestWorld {
	t.Helper()

	categories := newStubCategoryRepo()
	questions := newStubQuestionRepo()
	sessions := newStubSessionRepo()
	answers := newStubAnswerRepo(questions)

	category := &db_models.Category{}
	category.ID = uuid.New()
	category.Name = "Headphones"
	categories.add(category)

	question := newChoiceQuestion(category.ID, db_models.QuestionTypeSingleChoice, true, 1, "Noise cancelling")
	questions.add(question)

	userID := uuid.New()
	session := &db_models.QuestionnaireSession{
		UserProfileID: userID,
		CategoryID:    category.ID,
		Status:        db_models.SessionStatusCompleted,
		StartedAt:     time.Now().Unix(),
	}
	session.ID = uuid.New()
	require.NoError(t, sessions.Create(context.Background(), session))

	require.NoError(t, answers.Upsert(context.Background(), &db_models.Answer{
		SessionID:  session.ID,
		QuestionID: question.ID,
		OptionIDs:  []string{question.Options[0].ID.String()},
	}))

	productRepo := &stubProductRepo{}
	ratings := []float64{4.8, 4.5, 4.1}
	for i, rating := range ratings {
		product := db_models.Product{
			CategoryID:  category.ID,
			Name:        fmt.Sprintf("Model %d", i+1),
			Rating:      rating,
			ExternalURL: fmt.Sprintf("https://shop.example/%d", i+1),
		}
		product.ID = uuid.New()
		productRepo.products = append(productRepo.products, product)
	}

	recs := newStubRecommendationRepo(productRepo)

	w := &recommendationTestWorld{
		sessions:  sessions,
		answers:   answers,
		recs:      recs,
		agent:     agent,
		userID:    userID,
		sessionID: session.ID,
		products:  productRepo.products,
	}
	w.service = NewRecommendationService(
		sessions, answers, categories, productRepo, recs,
		agent, mem.NewInFlightWindow(time.Minute), zap.NewNop())
	return w
}

func TestGenerateUsesAgentRanking(t *testing.T) {
	agent := &stubAgent{response: fmt.Sprintf(`{"recommendations":[
		{"product_name":"Model 3","reason":"matches noise cancelling","score":0.95,"rank":1},
		{"product_name":"Imaginary Phantom X","reason":"hallucinated","score":0.99,"rank":2},
		{"product_name":"Model 1","reason":"solid all-rounder","score":0.85,"rank":3}
	]}`)}
	w := newRecommendationTestWorld(t, agent)

	out, err := w.service.Generate(context.Background(), w.userID.String(), w.sessionID.String())
	require.NoError(t, err)

	require.Len(t, out, 2, "unmatched suggestions must be dropped")
	assert.Equal(t, "Model 3", out[0].Product.Name)
	assert.Equal(t, 1, out[0].Rank)
	assert.Equal(t, 0.95, out[0].Score)
	assert.Equal(t, "Model 1", out[1].Product.Name)
	assert.Equal(t, 2, out[1].Rank, "ranks must stay gapless after dropping a suggestion")
}

func TestGenerateHandlesFencedOutput(t *testing.T) {
	agent := &stubAgent{response: "Here you go:\n```json\n" +
		`{"recommendations":[{"product_name":"Model 2","reason":"fits","score":0.9,"rank":1}]}` +
		"\n```"}
	w := newRecommendationTestWorld(t, agent)

	out, err := w.service.Generate(context.Background(), w.userID.String(), w.sessionID.String())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Model 2", out[0].Product.Name)
}

func TestGenerateFallsBackToDefaultScore(t *testing.T) {
	agent := &stubAgent{response: `{"recommendations":[
		{"product_name":"Model 1","reason":"ok","score":7.5,"rank":1}
	]}`}
	w := newRecommendationTestWorld(t, agent)

	out, err := w.service.Generate(context.Background(), w.userID.String(), w.sessionID.String())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 0.8, out[0].Score, "out-of-range scores fall back to the default")
}

func TestGenerateFallsBackOnAgentError(t *testing.T) {
	agent := &stubAgent{err: errors.New("upstream timeout")}
	w := newRecommendationTestWorld(t, agent)

	out, err := w.service.Generate(context.Background(), w.userID.String(), w.sessionID.String())
	require.NoError(t, err, "agent failures must not surface to the caller")

	require.Len(t, out, 3)
	assert.Equal(t, "Model 1", out[0].Product.Name, "fallback follows rating order")
	assert.Equal(t, []float64{0.9, 0.8, 0.7}, []float64{out[0].Score, out[1].Score, out[2].Score})
	for i, recommendation := range out {
		assert.Equal(t, i+1, recommendation.Rank)
		assert.Contains(t, recommendation.Reason, "Headphones")
	}
}

func TestGenerateFallsBackOnGarbageOutput(t *testing.T) {
	agent := &stubAgent{response: "I'm sorry, I cannot rank products today."}
	w := newRecommendationTestWorld(t, agent)

	out, err := w.service.Generate(context.Background(), w.userID.String(), w.sessionID.String())
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestGenerateFallsBackWhenNothingMatches(t *testing.T) {
	agent := &stubAgent{response: `{"recommendations":[
		{"product_name":"Not A Real Product","reason":"x","score":0.9,"rank":1}
	]}`}
	w := newRecommendationTestWorld(t, agent)

	out, err := w.service.Generate(context.Background(), w.userID.String(), w.sessionID.String())
	require.NoError(t, err)
	assert.Len(t, out, 3, "an all-hallucinated response degrades to the fallback")
}

func TestGenerateIsSingleShot(t *testing.T) {
	agent := &stubAgent{err: errors.New("unreachable")}
	w := newRecommendationTestWorld(t, agent)
	ctx := context.Background()

	_, err := w.service.Generate(ctx, w.userID.String(), w.sessionID.String())
	require.NoError(t, err)

	_, err = w.service.Generate(ctx, w.userID.String(), w.sessionID.String())
	assert.ErrorIs(t, err, utils.ErrAlreadyGenerated)
	assert.Equal(t, 1, agent.calls, "the agent must not be called again for a generated session")
}

func TestGenerateRequiresCompletedSession(t *testing.T) {
	agent := &stubAgent{}
	w := newRecommendationTestWorld(t, agent)

	w.sessions.sessions[w.sessionID].Status = db_models.SessionStatusInProgress

	_, err := w.service.Generate(context.Background(), w.userID.String(), w.sessionID.String())
	assert.ErrorIs(t, err, utils.ErrInvalidSessionState)
	assert.Zero(t, agent.calls)
}

func TestGenerateRequiresAnswers(t *testing.T) {
	agent := &stubAgent{}
	w := newRecommendationTestWorld(t, agent)

	w.answers.answers = map[answerKey]*db_models.Answer{}

	_, err := w.service.Generate(context.Background(), w.userID.String(), w.sessionID.String())
	assert.ErrorIs(t, err, utils.ErrNoAnswers)
}

func TestGenerateRequiresCandidates(t *testing.T) {
	agent := &stubAgent{}
	w := newRecommendationTestWorld(t, agent)

	w.recs.products.products = nil

	_, err := w.service.Generate(context.Background(), w.userID.String(), w.sessionID.String())
	assert.ErrorIs(t, err, utils.ErrNoCandidateProducts)
}

func TestGenerateOwnership(t *testing.T) {
	agent := &stubAgent{}
	w := newRecommendationTestWorld(t, agent)

	_, err := w.service.Generate(context.Background(), uuid.NewString(), w.sessionID.String())
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestSummarizeAnswerSkipsStaleOptionIDs(t *testing.T) {
	question := newChoiceQuestion(uuid.New(), db_models.QuestionTypeMultipleChoice, true, 1, "Wireless", "Wired")

	answer := &db_models.Answer{
		QuestionID: question.ID,
		OptionIDs:  []string{uuid.NewString()},
		Question:   *question,
	}
	assert.Equal(t, question.Text, summarizeAnswer(answer),
		"an answer whose options were removed renders as the bare question")

	answer.OptionIDs = []string{question.Options[1].ID.String(), uuid.NewString()}
	assert.Equal(t, question.Text+": Wired", summarizeAnswer(answer))
}

func TestListBySessionReturnsRankOrder(t *testing.T) {
	agent := &stubAgent{err: errors.New("down")}
	w := newRecommendationTestWorld(t, agent)
	ctx := context.Background()

	_, err := w.service.Generate(ctx, w.userID.String(), w.sessionID.String())
	require.NoError(t, err)

	out, err := w.service.ListBySession(ctx, w.userID.String(), w.sessionID.String())
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i, recommendation := range out {
		assert.Equal(t, i+1, recommendation.Rank)
		assert.NotEmpty(t, recommendation.Product.Name)
	}
}
