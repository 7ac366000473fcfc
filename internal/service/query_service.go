// FILE: internal/service/query_service.go
// PURPOSE: Per-turn orchestration of the query-understanding pipeline:
// intent + context analysis, offer resolution, chunk filtering, hybrid
// ranking, and the soft-inference safety gate. Emits structured context for
// the downstream answer generator; never generates text itself.
package service

import (
	"context"
	"fmt"
	"time"

	"ai-shopassist-be/internal/config"
	"ai-shopassist-be/internal/dto"
	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/internal/pkg/logger"
	"ai-shopassist-be/internal/repository/contract"
	"ai-shopassist-be/internal/repository/memory"
	"ai-shopassist-be/pkg/assessor"
	"ai-shopassist-be/pkg/contextkw"
	"ai-shopassist-be/pkg/embedding"
	"ai-shopassist-be/pkg/events"
	"ai-shopassist-be/pkg/intent"
	natsbus "ai-shopassist-be/pkg/nats"
	"ai-shopassist-be/pkg/resolver"
	"ai-shopassist-be/pkg/retrieval"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IQueryService interface {
	Process(ctx context.Context, siteId uuid.UUID, req *dto.QueryRequest) (*dto.QueryResponse, error)
}

type queryService struct {
	chunkRepo     contract.ContentChunkRepository
	offerResolver *resolver.Resolver
	ranker        *retrieval.Ranker
	productFilter *retrieval.ProductFilter
	gate          *assessor.Assessor
	embedder      embedding.EmbeddingProvider
	rateLimiter   *memory.RateLimiter
	langCache     *memory.LanguageCache
	bus           *natsbus.Publisher
	logger        logger.ILogger
	cfg           *config.Config
}

func NewQueryService(
	chunkRepo contract.ContentChunkRepository,
	offerResolver *resolver.Resolver,
	ranker *retrieval.Ranker,
	productFilter *retrieval.ProductFilter,
	gate *assessor.Assessor,
	embedder embedding.EmbeddingProvider,
	rateLimiter *memory.RateLimiter,
	langCache *memory.LanguageCache,
	bus *natsbus.Publisher,
	log logger.ILogger,
	cfg *config.Config,
) IQueryService {
	return &queryService{
		chunkRepo:     chunkRepo,
		offerResolver: offerResolver,
		ranker:        ranker,
		productFilter: productFilter,
		gate:          gate,
		embedder:      embedder,
		rateLimiter:   rateLimiter,
		langCache:     langCache,
		bus:           bus,
		logger:        log,
		cfg:           cfg,
	}
}

func (s *queryService) Process(ctx context.Context, siteId uuid.UUID, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	if !s.rateLimiter.Allow(req.SessionId) {
		return nil, fiber.NewError(fiber.StatusTooManyRequests, "query limit reached, try again shortly")
	}

	// Intent and display gating run on the raw query; both are pure.
	analysis := intent.AnalyzeQuery(req.Query)
	display := intent.ClassifyDisplayIntent(req.Query)

	conversationTerms := s.conversationContext(req)

	// Offer resolution. Lookup errors propagate: a failed catalog read must
	// not masquerade as "no match".
	resolution, err := s.offerResolver.ResolveOfferHint(ctx, req.Query, siteId)
	if err != nil {
		s.logger.Error("query", "offer resolution failed", map[string]interface{}{
			"site_id": siteId.String(),
			"error":   err.Error(),
		})
		return nil, err
	}

	candidates, err := s.retrieveCandidates(ctx, siteId, req.Query)
	if err != nil {
		return nil, err
	}

	filterMethod := ""
	filterFallback := false
	if resolution.Type == resolver.ResolutionSingle {
		filtered := retrieval.FilterChunksByOffer(candidates, retrieval.OfferAnchor{
			BrandNorm: resolution.Offer.BrandNorm,
			ModelNorm: resolution.Offer.ModelNorm,
		})
		candidates = filtered.Filtered
		filterMethod = string(filtered.Method)
		filterFallback = filtered.Fallback
	}

	contextKeywords := s.contextKeywords(candidates, req.Query)

	ranked := s.ranker.RankWithContext(
		candidates,
		analysis.Keywords,
		analysis.ContentTypeBoosts,
		mergeTerms(contextKeywords, conversationTerms),
	)

	ranked = s.applyProductFilter(ctx, req.Query, ranked)

	assessment := s.assess(ctx, req.Query, resolution, contextKeywords, ranked)

	s.logger.Info("query", "pipeline completed", map[string]interface{}{
		"site_id":    siteId.String(),
		"resolution": string(resolution.Type),
		"intent":     string(analysis.Intent),
		"chunks":     len(ranked),
	})

	s.publishResolved(siteId, req.SessionId, resolution, analysis, len(ranked))

	response := buildQueryResponse(resolution, ranked, analysis, display, contextKeywords, assessment, filterMethod, filterFallback)
	response.Language = s.sessionLanguage(ctx, req)
	return response, nil
}

// publishResolved emits the QUERY_RESOLVED analytics event. Delivery is
// best-effort and must never delay or fail the request, so it runs on its
// own goroutine with its own deadline.
func (s *queryService) publishResolved(siteId uuid.UUID, sessionId string, res *resolver.Resolution, analysis intent.QueryAnalysis, chunkCount int) {
	if s.bus == nil {
		return
	}
	event := events.NewEvent("QUERY_RESOLVED", map[string]interface{}{
		"site_id":    siteId.String(),
		"session_id": sessionId,
		"resolution": string(res.Type),
		"intent":     string(analysis.Intent),
		"confidence": analysis.Confidence,
		"chunks":     chunkCount,
	})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.bus.Publish(ctx, event); err != nil {
			s.logger.Warn("query", "failed to publish QUERY_RESOLVED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

// sessionLanguage remembers the widget's reply language across turns. The
// cache is an optimization: any Redis failure degrades to "".
func (s *queryService) sessionLanguage(ctx context.Context, req *dto.QueryRequest) string {
	if s.langCache == nil {
		return req.Language
	}
	if req.Language != "" {
		s.langCache.Set(ctx, req.SessionId, req.Language)
		return req.Language
	}
	return s.langCache.Get(ctx, req.SessionId)
}

func (s *queryService) retrieveCandidates(ctx context.Context, siteId uuid.UUID, query string) ([]*contract.ScoredContentChunk, error) {
	embedRes, err := s.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	// Fetch wider than the final limit; fusion and filtering shrink the set.
	fetchLimit := s.cfg.Retrieval.Limit * 3
	candidates, err := s.chunkRepo.SearchSimilarWithScore(ctx,
		embedRes.Embedding.Values, siteId, fetchLimit, s.cfg.Retrieval.SimilarityThreshold)
	if err != nil {
		return nil, fmt.Errorf("corpus search: %w", err)
	}
	return candidates, nil
}

// conversationContext derives context terms from prior turns when the query
// looks like a follow-up.
func (s *queryService) conversationContext(req *dto.QueryRequest) []string {
	if len(req.Messages) == 0 || !contextkw.IsFollowUpQuery(req.Query) {
		return nil
	}
	messages := make([]contextkw.Message, 0, len(req.Messages)+1)
	for _, m := range req.Messages {
		messages = append(messages, contextkw.Message{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, contextkw.Message{Role: "user", Content: req.Query})
	return contextkw.BuildConversationContext(messages, s.cfg.Retrieval.ContextLastTurns, 0)
}

func (s *queryService) contextKeywords(candidates []*contract.ScoredContentChunk, query string) []string {
	if len(candidates) == 0 {
		return contextkw.ExtractQueryKeywords(query, s.cfg.Retrieval.ContextKeywordsMax)
	}
	chunks := make([]contextkw.ChunkText, 0, len(candidates))
	for _, c := range candidates {
		chunks = append(chunks, contextkw.ChunkText{
			Content: c.Chunk.Content,
			Title:   c.Chunk.MaterialTitle,
		})
	}
	return contextkw.ExtractContextKeywords(chunks, query, s.cfg.Retrieval.ContextKeywordsMax)
}

// applyProductFilter runs the fail-open LLM relevance filter over the ranked
// set. Candidates the model drops are removed; any failure keeps everything.
func (s *queryService) applyProductFilter(ctx context.Context, query string, ranked []*retrieval.RankedChunk) []*retrieval.RankedChunk {
	if s.productFilter == nil || len(ranked) <= 1 {
		return ranked
	}
	chunks := make([]*contract.ScoredContentChunk, len(ranked))
	for i, r := range ranked {
		chunks[i] = r.Chunk
	}
	kept := s.productFilter.Filter(ctx, query, chunks)
	if len(kept) == len(chunks) {
		return ranked
	}
	keptSet := make(map[*contract.ScoredContentChunk]bool, len(kept))
	for _, c := range kept {
		keptSet[c] = true
	}
	out := make([]*retrieval.RankedChunk, 0, len(kept))
	for _, r := range ranked {
		if keptSet[r.Chunk] {
			out = append(out, r)
		}
	}
	return out
}

// assess consults the soft-inference gate when the retrieved evidence is
// thin. Strong evidence (several chunks surviving an offer-scoped filter)
// does not need the gate.
func (s *queryService) assess(ctx context.Context, query string, res *resolver.Resolution, contextTerms []string, ranked []*retrieval.RankedChunk) *assessor.Assessment {
	if s.gate == nil {
		return nil
	}
	if len(ranked) >= 3 {
		return nil
	}

	input := assessor.Input{
		Query:        query,
		ContextTerms: contextTerms,
	}
	if res.Type == resolver.ResolutionSingle {
		input.OfferAnchor = res.Offer.BrandNorm + " " + res.Offer.ModelNorm
	}
	for _, r := range ranked {
		input.Chunks = append(input.Chunks, r.Chunk.Chunk.Content)
	}

	result := s.gate.Assess(ctx, input)
	return &result
}

func mergeTerms(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, t := range append(append([]string{}, a...), b...) {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func buildQueryResponse(
	res *resolver.Resolution,
	ranked []*retrieval.RankedChunk,
	analysis intent.QueryAnalysis,
	display intent.DisplayDecision,
	contextKeywords []string,
	assessment *assessor.Assessment,
	filterMethod string,
	filterFallback bool,
) *dto.QueryResponse {
	resolutionDTO := dto.ResolutionDTO{
		Type:      string(res.Type),
		QueryNorm: res.QueryNorm,
	}
	if res.Offer != nil {
		offer := toOfferDTO(res.Offer)
		resolutionDTO.Offer = &offer
	}
	for _, alt := range res.Alternatives {
		resolutionDTO.Alternatives = append(resolutionDTO.Alternatives, toOfferDTO(alt))
	}

	rankedDTOs := make([]dto.RankedChunkDTO, 0, len(ranked))
	for _, r := range ranked {
		rankedDTOs = append(rankedDTOs, dto.RankedChunkDTO{
			ChunkId:       r.Chunk.Chunk.Id,
			MaterialId:    r.Chunk.Chunk.MaterialId,
			MaterialTitle: r.Chunk.Chunk.MaterialTitle,
			Content:       r.Chunk.Chunk.Content,
			ContentType:   r.Chunk.Chunk.ContentType,
			Similarity:    r.Chunk.Similarity,
			Score:         r.Score,
		})
	}

	response := &dto.QueryResponse{
		Resolution:   resolutionDTO,
		RankedChunks: rankedDTOs,
		QueryAnalysis: dto.QueryAnalysisDTO{
			Intent:                     string(analysis.Intent),
			Keywords:                   analysis.Keywords,
			Products:                   analysis.Products,
			Confidence:                 analysis.Confidence,
			IsComparative:              analysis.IsComparative,
			IsLookingForRecommendation: analysis.IsLookingForRecommendation,
			ContentTypeBoosts:          analysis.ContentTypeBoosts,
		},
		ContextKeywords: contextKeywords,
		Display: dto.DisplayDTO{
			Intent:             string(display.Intent),
			ShouldShowProducts: display.ShouldShowProducts,
		},
		FilterMethod:   filterMethod,
		FilterFallback: filterFallback,
	}
	if assessment != nil {
		response.Assessment = &dto.AssessmentDTO{
			Confidence:    string(assessment.Confidence),
			SafeInference: assessment.SafeInference,
			Reason:        assessment.Reason,
		}
	}
	return response
}

func toOfferDTO(o *entity.Offer) dto.OfferDTO {
	return dto.OfferDTO{
		Id:          o.Id,
		Title:       o.Title,
		Brand:       o.Brand,
		Model:       o.Model,
		Url:         o.Url,
		Description: o.Description,
	}
}
