package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-shopassist-be/internal/config"
	"ai-shopassist-be/internal/dto"
	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/internal/repository/contract"
	"ai-shopassist-be/internal/repository/memory"
	"ai-shopassist-be/internal/repository/specification"
	"ai-shopassist-be/pkg/embedding"
	"ai-shopassist-be/pkg/resolver"
	"ai-shopassist-be/pkg/retrieval"

	"github.com/google/uuid"
)

type fakeCatalog struct {
	offers []*entity.Offer
	err    error
}

func (f *fakeCatalog) FindByTokens(ctx context.Context, siteId uuid.UUID, tokens []string) ([]*entity.Offer, error) {
	if f.err != nil {
		return nil, f.err
	}
	matched := []*entity.Offer{}
	tokenSet := map[string]bool{}
	for _, t := range tokens {
		tokenSet[t] = true
	}
	for _, o := range f.offers {
		if tokenSet[o.ModelNorm] || tokenSet[o.BrandNorm] {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

type fakeChunkRepo struct {
	chunks []*contract.ScoredContentChunk
	err    error
}

func (f *fakeChunkRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ContentChunk, error) {
	return nil, nil
}

func (f *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ContentChunk, error) {
	return nil, nil
}

func (f *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

func (f *fakeChunkRepo) SearchSimilarWithScore(ctx context.Context, emb []float32, siteId uuid.UUID, limit int, threshold float64) ([]*contract.ScoredContentChunk, error) {
	return f.chunks, f.err
}

type fakeEmbedder struct{}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}},
	}, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func testConfig() *config.Config {
	return &config.Config{
		Retrieval: config.RetrievalConfig{
			VectorWeight:        0.7,
			SimilarityThreshold: 0.1,
			Limit:               8,
			ContextKeywordsMax:  15,
			ContextLastTurns:    2,
		},
	}
}

func testOffers(siteId uuid.UUID) []*entity.Offer {
	return []*entity.Offer{
		{Id: uuid.New(), SiteId: siteId, Title: "IVISKIN G3", Brand: "IVISKIN", Model: "G-3", BrandNorm: "iviskin", ModelNorm: "g3"},
		{Id: uuid.New(), SiteId: siteId, Title: "IVISKIN G4", Brand: "IVISKIN", Model: "G-4", BrandNorm: "iviskin", ModelNorm: "g4"},
	}
}

func scoredChunk(content, contentType string, similarity float64) *contract.ScoredContentChunk {
	return &contract.ScoredContentChunk{
		Chunk:      &entity.ContentChunk{Id: uuid.New(), Content: content, ContentType: contentType},
		Similarity: similarity,
	}
}

func newTestService(catalog *fakeCatalog, chunkRepo *fakeChunkRepo) IQueryService {
	cfg := testConfig()
	return NewQueryService(
		chunkRepo,
		resolver.NewResolver(catalog),
		retrieval.NewRanker(retrieval.RankerConfig{
			VectorWeight:        cfg.Retrieval.VectorWeight,
			SimilarityThreshold: cfg.Retrieval.SimilarityThreshold,
			Limit:               cfg.Retrieval.Limit,
		}),
		nil, // no LLM product filter in unit tests
		nil, // no assessor in unit tests
		&fakeEmbedder{},
		memory.NewRateLimiter(100, time.Minute),
		nil,
		nil,
		noopLogger{},
		cfg,
	)
}

func TestProcessSingleResolutionFiltersContamination(t *testing.T) {
	siteId := uuid.New()
	catalog := &fakeCatalog{offers: testOffers(siteId)}
	chunkRepo := &fakeChunkRepo{chunks: []*contract.ScoredContentChunk{
		scoredChunk("The IVISKIN G3 has five intensity levels", "product_page", 0.9),
		scoredChunk("The IVISKIN G4 has an ice-cooling function", "product_page", 0.88),
	}}
	svc := newTestService(catalog, chunkRepo)

	res, err := svc.Process(context.Background(), siteId, &dto.QueryRequest{
		SessionId: "s1",
		Query:     "Er IVISKIN G3 bra?",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if res.Resolution.Type != "single" {
		t.Fatalf("Resolution.Type = %q, want single", res.Resolution.Type)
	}
	if res.Resolution.Offer == nil || res.Resolution.Offer.Model != "G-3" {
		t.Fatalf("Resolution.Offer = %+v, want the G-3 offer", res.Resolution.Offer)
	}
	if res.FilterMethod != "brand_model" {
		t.Errorf("FilterMethod = %q, want brand_model", res.FilterMethod)
	}
	for _, c := range res.RankedChunks {
		if c.Content == "The IVISKIN G4 has an ice-cooling function" {
			t.Error("g4-only chunk leaked into a g3-resolved context")
		}
	}
}

func TestProcessComparisonYieldsMultiple(t *testing.T) {
	siteId := uuid.New()
	catalog := &fakeCatalog{offers: testOffers(siteId)}
	chunkRepo := &fakeChunkRepo{chunks: []*contract.ScoredContentChunk{
		scoredChunk("G3 vs G4 comparison table", "comparison", 0.9),
	}}
	svc := newTestService(catalog, chunkRepo)

	res, err := svc.Process(context.Background(), siteId, &dto.QueryRequest{
		SessionId: "s1",
		Query:     "G3 vs G4 differences",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if res.Resolution.Type != "multiple" {
		t.Fatalf("Resolution.Type = %q, want multiple", res.Resolution.Type)
	}
	if len(res.Resolution.Alternatives) < 2 {
		t.Errorf("Alternatives = %d entries, want >= 2", len(res.Resolution.Alternatives))
	}
	if res.QueryAnalysis.Intent != "comparison" {
		t.Errorf("Intent = %q, want comparison", res.QueryAnalysis.Intent)
	}
	// Multiple resolution means no offer-scoped chunk filter ran.
	if res.FilterMethod != "" {
		t.Errorf("FilterMethod = %q, want empty for multiple resolution", res.FilterMethod)
	}
}

func TestProcessNoMatchYieldsNone(t *testing.T) {
	siteId := uuid.New()
	catalog := &fakeCatalog{offers: testOffers(siteId)}
	chunkRepo := &fakeChunkRepo{chunks: nil}
	svc := newTestService(catalog, chunkRepo)

	res, err := svc.Process(context.Background(), siteId, &dto.QueryRequest{
		SessionId: "s1",
		Query:     "toothbrush recommendations",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if res.Resolution.Type != "none" {
		t.Fatalf("Resolution.Type = %q, want none", res.Resolution.Type)
	}
	if res.Resolution.Offer != nil || len(res.Resolution.Alternatives) != 0 {
		t.Error("a none resolution must carry neither offer nor alternatives")
	}
	// With no chunks, context keywords fall back to the query itself.
	if len(res.ContextKeywords) == 0 {
		t.Error("expected query-keyword fallback when retrieval is empty")
	}
}

func TestProcessPropagatesCatalogError(t *testing.T) {
	siteId := uuid.New()
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	svc := newTestService(catalog, &fakeChunkRepo{})

	_, err := svc.Process(context.Background(), siteId, &dto.QueryRequest{
		SessionId: "s1",
		Query:     "Er IVISKIN G3 bra?",
	})
	if err == nil {
		t.Fatal("expected catalog error to propagate, got nil")
	}
}

func TestProcessRateLimited(t *testing.T) {
	siteId := uuid.New()
	catalog := &fakeCatalog{offers: testOffers(siteId)}
	cfg := testConfig()
	svc := NewQueryService(
		&fakeChunkRepo{},
		resolver.NewResolver(catalog),
		retrieval.NewRanker(retrieval.RankerConfig{}),
		nil,
		nil,
		&fakeEmbedder{},
		memory.NewRateLimiter(1, time.Minute),
		nil,
		nil,
		noopLogger{},
		cfg,
	)

	req := &dto.QueryRequest{SessionId: "limited", Query: "hello"}
	if _, err := svc.Process(context.Background(), siteId, req); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	if _, err := svc.Process(context.Background(), siteId, req); err == nil {
		t.Fatal("second call should be rate limited")
	}
}

func TestProcessTechnicalQuerySuppressesProducts(t *testing.T) {
	siteId := uuid.New()
	catalog := &fakeCatalog{offers: testOffers(siteId)}
	svc := newTestService(catalog, &fakeChunkRepo{})

	res, err := svc.Process(context.Background(), siteId, &dto.QueryRequest{
		SessionId: "s1",
		Query:     "My G3 stopped working, I want a refund",
	})
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if res.Display.ShouldShowProducts {
		t.Error("ShouldShowProducts = true for a support query, want false")
	}
}
