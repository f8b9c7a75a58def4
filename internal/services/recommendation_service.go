package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/masa-png/gadget-concierge-sub001/internal/models/db_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/models/response_models"
	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	mem "github.com/masa-png/gadget-concierge-sub001/pkg/memcache"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

const (
	candidateLimit    = 20
	fallbackLimit     = 3
	defaultScore      = 0.8
	fallbackScoreTop  = 0.9
	fallbackScoreStep = 0.1
	fallbackScoreMin  = 0.6
	agentTimeout      = 30 * time.Second
)

type RecommendationServiceInterface interface {
	Generate(ctx context.Context, userID, sessionID string) ([]response_models.RecommendationResponse, error)
	ListBySession(ctx context.Context, userID, sessionID string) ([]response_models.RecommendationResponse, error)
}

type RecommendationService struct {
	sessionRepo        repositories.SessionRepository
	answerRepo         repositories.AnswerRepository
	categoryRepo       repositories.CategoryRepository
	productRepo        repositories.ProductRepository
	recommendationRepo repositories.RecommendationRepository
	aiClient           utils.GenerationClientInterface
	inflight           *mem.InFlightWindow
	logger             *zap.Logger
}

func NewRecommendationService(
	sessionRepo repositories.SessionRepository,
	answerRepo repositories.AnswerRepository,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	recommendationRepo repositories.RecommendationRepository,
	aiClient utils.GenerationClientInterface,
	inflight *mem.InFlightWindow,
	logger *zap.Logger,
) RecommendationServiceInterface {
	return &RecommendationService{
		sessionRepo:        sessionRepo,
		answerRepo:         answerRepo,
		categoryRepo:       categoryRepo,
		productRepo:        productRepo,
		recommendationRepo: recommendationRepo,
		aiClient:           aiClient,
		inflight:           inflight,
		logger:             logger,
	}
}

type aiSuggestion struct {
	ProductName string  `json:"product_name"`
	Reason      string  `json:"reason"`
	Score       float64 `json:"score"`
	Rank        int     `json:"rank"`
}

type aiRecommendationPayload struct {
	Recommendations []aiSuggestion `json:"recommendations"`
}

// Generate runs once per session. Precondition failures abort before
// any persistence; AI failures of any kind are absorbed into the
// deterministic fallback and never surface.
func (r *RecommendationService) Generate(ctx context.Context, userID, sessionID string) ([]response_models.RecommendationResponse, error) {
	session, err := r.ownedCompletedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	exists, err := r.recommendationRepo.ExistsForSession(ctx, session.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if exists {
		return nil, utils.ErrAlreadyGenerated
	}

	if !r.inflight.Begin(session.ID.String()) {
		return nil, utils.ErrAlreadyGenerated
	}
	defer r.inflight.End(session.ID.String())

	answers, err := r.answerRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(answers) == 0 {
		return nil, utils.ErrNoAnswers
	}

	category, err := r.categoryRepo.GetByID(ctx, session.CategoryID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if category == nil {
		return nil, utils.ErrCategoryNotFound
	}

	candidates, err := r.productRepo.TopRatedByCategory(ctx, session.CategoryID, candidateLimit)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if len(candidates) == 0 {
		return nil, utils.ErrNoCandidateProducts
	}

	recommendations, genErr := r.generateWithAgent(ctx, session, category, answers, candidates)
	if genErr != nil {
		r.logger.Warn("falling back to rating-based recommendations",
			zap.String("session_id", session.ID.String()),
			zap.Error(genErr))
		recommendations = r.fallbackRecommendations(session, category, candidates)
	}

	if err := r.recommendationRepo.CreateBatchTx(ctx, session.UserProfileID, recommendations); err != nil {
		if errors.Is(err, utils.ErrAlreadyGenerated) {
			return nil, utils.ErrAlreadyGenerated
		}
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.RecommendationResponse, 0, len(recommendations))
	productsByID := make(map[string]db_models.Product, len(candidates))
	for _, product := range candidates {
		productsByID[product.ID.String()] = product
	}
	for _, recommendation := range recommendations {
		product := productsByID[recommendation.ProductID.String()]
		out = append(out, buildRecommendationResponse(recommendation, &product))
	}
	return out, nil
}

func (r *RecommendationService) ListBySession(ctx context.Context, userID, sessionID string) ([]response_models.RecommendationResponse, error) {
	session, err := r.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	recommendations, err := r.recommendationRepo.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.RecommendationResponse, 0, len(recommendations))
	for i := range recommendations {
		out = append(out, buildRecommendationResponse(&recommendations[i], &recommendations[i].Product))
	}
	return out, nil
}

// generateWithAgent runs the untrusted-output pipeline: prompt → agent
// → JSON extraction → shape validation → exact-name matching.
func (r *RecommendationService) generateWithAgent(
	ctx context.Context,
	session *db_models.QuestionnaireSession,
	category *db_models.Category,
	answers []db_models.Answer,
	candidates []db_models.Product,
) ([]*db_models.Recommendation, error) {

	prompt := buildRecommendationPrompt(category, answers, candidates)

	agentCtx, cancel := context.WithTimeout(ctx, agentTimeout)
	defer cancel()

	raw, err := r.aiClient.GenerateRecommendations(agentCtx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}

	suggestions, err := parseSuggestions(raw)
	if err != nil {
		return nil, err
	}

	productsByName := make(map[string]*db_models.Product, len(candidates))
	for i := range candidates {
		productsByName[candidates[i].Name] = &candidates[i]
	}

	type matched struct {
		product    *db_models.Product
		suggestion aiSuggestion
		position   int
	}
	var matches []matched
	for i, suggestion := range suggestions {
		// Exact name equality only; fuzzy matching would let the
		// agent hallucinate products into the results.
		product, ok := productsByName[suggestion.ProductName]
		if !ok {
			r.logger.Warn("dropping unmatched AI suggestion",
				zap.String("session_id", session.ID.String()),
				zap.String("product_name", suggestion.ProductName))
			continue
		}
		matches = append(matches, matched{product: product, suggestion: suggestion, position: i})
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: no suggestion matched the candidate set", utils.ErrUnexpectedBehaviorOfAI)
	}

	// AI-provided ranks decide ordering but final ranks are reassigned
	// 1..k so they stay gapless and unique per session.
	sort.SliceStable(matches, func(i, j int) bool {
		ri, rj := matches[i].suggestion.Rank, matches[j].suggestion.Rank
		if ri <= 0 {
			ri = matches[i].position + 1
		}
		if rj <= 0 {
			rj = matches[j].position + 1
		}
		return ri < rj
	})

	recommendations := make([]*db_models.Recommendation, 0, len(matches))
	for i, m := range matches {
		score := m.suggestion.Score
		if score <= 0 || score > 1 {
			score = defaultScore
		}
		reason := strings.TrimSpace(m.suggestion.Reason)
		if reason == "" {
			reason = fmt.Sprintf("Recommended for your %s answers", category.Name)
		}
		recommendations = append(recommendations, &db_models.Recommendation{
			SessionID: session.ID,
			ProductID: m.product.ID,
			Rank:      i + 1,
			Score:     score,
			Reason:    reason,
		})
	}
	return recommendations, nil
}

// fallbackRecommendations deterministically picks the top-rated
// candidates with decreasing scores and gapless ranks. Always succeeds
// when at least one candidate exists.
func (r *RecommendationService) fallbackRecommendations(
	session *db_models.QuestionnaireSession,
	category *db_models.Category,
	candidates []db_models.Product,
) []*db_models.Recommendation {

	limit := fallbackLimit
	if len(candidates) < limit {
		limit = len(candidates)
	}

	recommendations := make([]*db_models.Recommendation, 0, limit)
	for i := 0; i < limit; i++ {
		score := fallbackScoreTop - float64(i)*fallbackScoreStep
		if score < fallbackScoreMin {
			score = fallbackScoreMin
		}
		recommendations = append(recommendations, &db_models.Recommendation{
			SessionID: session.ID,
			ProductID: candidates[i].ID,
			Rank:      i + 1,
			Score:     score,
			Reason: fmt.Sprintf("One of the most popular and highly rated products in %s",
				category.Name),
		})
	}
	return recommendations
}

func parseSuggestions(raw string) ([]aiSuggestion, error) {
	payload, err := utils.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var parsed aiRecommendationPayload
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnexpectedBehaviorOfAI, err)
	}
	if len(parsed.Recommendations) == 0 {
		return nil, fmt.Errorf("%w: empty recommendations array", utils.ErrUnexpectedBehaviorOfAI)
	}
	return parsed.Recommendations, nil
}

func buildRecommendationPrompt(category *db_models.Category, answers []db_models.Answer, candidates []db_models.Product) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf(
		"A shopper answered a questionnaire about %s. Rank the best products for them.\n\n", category.Name))

	prompt.WriteString("Questionnaire answers:\n")
	for i := range answers {
		prompt.WriteString(fmt.Sprintf("- %s\n", summarizeAnswer(&answers[i])))
	}

	prompt.WriteString("\nCandidate products (recommend from this list only):\n")
	for _, product := range candidates {
		prompt.WriteString(fmt.Sprintf("- Name: %s | Shop: %s | Price: %.0f | Rating: %.1f | Features: %s | %s\n",
			product.Name, product.ShopName, product.Price, product.Rating,
			product.Features, product.Description))
	}

	prompt.WriteString("\nReturn JSON only, in this exact format:\n")
	prompt.WriteString(`{"recommendations":[{"product_name":"exact name from the list","reason":"why this fits the answers","score":0.95,"rank":1}]}`)
	prompt.WriteString("\nRules: use exact product names from the list, score in (0,1], at most 5 recommendations, no prose.")

	return prompt.String()
}

// summarizeAnswer renders one answer as a human-readable line for the
// prompt: question text plus selected labels or the raw value.
func summarizeAnswer(answer *db_models.Answer) string {
	question := answer.Question

	switch question.Type {
	case db_models.QuestionTypeSingleChoice, db_models.QuestionTypeMultipleChoice:
		labelsByID := make(map[string]string, len(question.Options))
		for _, option := range question.Options {
			labelsByID[option.ID.String()] = option.Label
		}
		var labels []string
		for _, optionID := range answer.OptionIDs {
			if label, ok := labelsByID[optionID]; ok {
				labels = append(labels, label)
			}
		}
		// Stored option ids can outlive the options they point at.
		if len(labels) == 0 {
			return question.Text
		}
		return fmt.Sprintf("%s: %s", question.Text, strings.Join(labels, ", "))
	case db_models.QuestionTypeRange:
		if answer.RangeValue != nil {
			return fmt.Sprintf("%s: %d/100", question.Text, *answer.RangeValue)
		}
	case db_models.QuestionTypeText:
		if answer.TextValue != nil {
			return fmt.Sprintf("%s: %s", question.Text, *answer.TextValue)
		}
	}
	return question.Text
}

func (r *RecommendationService) ownedSession(ctx context.Context, userID, sessionID string) (*db_models.QuestionnaireSession, error) {
	session, err := r.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil || session.UserProfileID.String() != userID {
		return nil, utils.ErrSessionNotFound
	}
	return session, nil
}

func (r *RecommendationService) ownedCompletedSession(ctx context.Context, userID, sessionID string) (*db_models.QuestionnaireSession, error) {
	session, err := r.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != db_models.SessionStatusCompleted {
		return nil, utils.ErrInvalidSessionState
	}
	return session, nil
}

func buildRecommendationResponse(recommendation *db_models.Recommendation, product *db_models.Product) response_models.RecommendationResponse {
	return response_models.RecommendationResponse{
		ID:      recommendation.ID.String(),
		Rank:    recommendation.Rank,
		Score:   recommendation.Score,
		Reason:  recommendation.Reason,
		Product: buildProductResponse(product),
	}
}
