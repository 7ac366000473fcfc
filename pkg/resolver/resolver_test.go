package resolver

import (
	"context"
	"errors"
	"testing"

	"ai-shopassist-be/internal/entity"

	"github.com/google/uuid"
)

type fakeCatalog struct {
	offers []*entity.Offer
	err    error
	calls  int
}

func (f *fakeCatalog) FindByTokens(ctx context.Context, siteId uuid.UUID, tokens []string) ([]*entity.Offer, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	// Simulate catalog matching: intersect tokens with normalized forms.
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}
	var out []*entity.Offer
	for _, o := range f.offers {
		if tokenSet[o.ModelNorm] || tokenSet[o.BrandNorm] {
			out = append(out, o)
			continue
		}
		for _, a := range o.Aliases {
			if tokenSet[a] {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

func makeOffer(brand, brandNorm, model, modelNorm string) *entity.Offer {
	return &entity.Offer{
		Id:        uuid.New(),
		Brand:     brand,
		BrandNorm: brandNorm,
		Model:     model,
		ModelNorm: modelNorm,
		Title:     brand + " " + model,
	}
}

func TestResolveOfferHintNone(t *testing.T) {
	catalog := &fakeCatalog{}
	r := NewResolver(catalog)

	res, err := r.ResolveOfferHint(context.Background(), "toothbrush recommendations", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Type != ResolutionNone {
		t.Errorf("Type = %s, want none", res.Type)
	}
	if res.Offer != nil || res.Alternatives != nil {
		t.Error("none result must carry neither offer nor alternatives")
	}
}

func TestResolveOfferHintSingle(t *testing.T) {
	g3 := makeOffer("IVISKIN", "iviskin", "G-3", "g3")
	catalog := &fakeCatalog{offers: []*entity.Offer{g3}}
	r := NewResolver(catalog)

	res, err := r.ResolveOfferHint(context.Background(), "Er IVISKIN G3 bra?", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Type != ResolutionSingle {
		t.Fatalf("Type = %s, want single", res.Type)
	}
	if res.Offer == nil || res.Offer.ModelNorm != "g3" {
		t.Errorf("winning offer ModelNorm = %v, want g3", res.Offer)
	}
	if res.Alternatives != nil {
		t.Error("single result must not carry alternatives")
	}
}

func TestResolveOfferHintMultipleFromComparison(t *testing.T) {
	g3 := makeOffer("IVISKIN", "iviskin", "G-3", "g3")
	g4 := makeOffer("IVISKIN", "iviskin", "G-4", "g4")
	catalog := &fakeCatalog{offers: []*entity.Offer{g3, g4}}
	r := NewResolver(catalog)

	res, err := r.ResolveOfferHint(context.Background(), "G3 vs G4 differences", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Type != ResolutionMultiple {
		t.Fatalf("Type = %s, want multiple", res.Type)
	}
	if len(res.Alternatives) < 2 {
		t.Errorf("Alternatives = %d entries, want >= 2", len(res.Alternatives))
	}
	if res.Offer != nil {
		t.Error("multiple result must not carry a single offer")
	}
}

func TestResolveOfferHintModelAnchorBeatsBrandWidening(t *testing.T) {
	// Brand token matches both variants; explicit model token pins one.
	g3 := makeOffer("IVISKIN", "iviskin", "G-3", "g3")
	g4 := makeOffer("IVISKIN", "iviskin", "G-4", "g4")
	catalog := &fakeCatalog{offers: []*entity.Offer{g3, g4}}
	r := NewResolver(catalog)

	res, err := r.ResolveOfferHint(context.Background(), "IVISKIN G3", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Type != ResolutionSingle {
		t.Fatalf("Type = %s, want single", res.Type)
	}
	if res.Offer.ModelNorm != "g3" {
		t.Errorf("ModelNorm = %s, want g3", res.Offer.ModelNorm)
	}
}

func TestResolveOfferHintBrandTieBreak(t *testing.T) {
	// Two brands share the model code g3.
	iviskin := makeOffer("IVISKIN", "iviskin", "G-3", "g3")
	other := makeOffer("Glowtec", "glowtec", "G-3", "g3")
	catalog := &fakeCatalog{offers: []*entity.Offer{iviskin, other}}
	r := NewResolver(catalog)

	res, err := r.ResolveOfferHint(context.Background(), "how good is the IVISKIN G3", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Type != ResolutionSingle {
		t.Fatalf("Type = %s, want single", res.Type)
	}
	if res.Offer.BrandNorm != "iviskin" {
		t.Errorf("BrandNorm = %s, want iviskin", res.Offer.BrandNorm)
	}
}

func TestResolveOfferHintAmbiguousBrandsStayMultiple(t *testing.T) {
	iviskin := makeOffer("IVISKIN", "iviskin", "G-3", "g3")
	other := makeOffer("Glowtec", "glowtec", "G-3", "g3")
	catalog := &fakeCatalog{offers: []*entity.Offer{iviskin, other}}
	r := NewResolver(catalog)

	// No brand named: do not guess.
	res, err := r.ResolveOfferHint(context.Background(), "tell me about the G3", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Type != ResolutionMultiple {
		t.Fatalf("Type = %s, want multiple", res.Type)
	}
}

func TestResolveOfferHintLookupErrorPropagates(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	r := NewResolver(catalog)

	_, err := r.ResolveOfferHint(context.Background(), "IVISKIN G3", uuid.New())
	if err == nil {
		t.Fatal("expected lookup error to propagate, got nil")
	}
	if catalog.calls != 2 {
		t.Errorf("calls = %d, want 2 (single bounded retry)", catalog.calls)
	}
}

func TestResolveOfferHintAliasMatch(t *testing.T) {
	g3 := makeOffer("IVISKIN", "iviskin", "G-3", "g3")
	g3.Aliases = []string{"g3x", "iviskin3"}
	catalog := &fakeCatalog{offers: []*entity.Offer{g3}}
	r := NewResolver(catalog)

	res, err := r.ResolveOfferHint(context.Background(), "thoughts on the G3X?", uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Type != ResolutionSingle {
		t.Fatalf("Type = %s, want single", res.Type)
	}
}
