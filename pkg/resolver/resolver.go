// FILE: pkg/resolver/resolver.go
// PURPOSE: Decide which catalog offer (if any) a conversational query refers to

package resolver

import (
	"context"
	"fmt"
	"strings"

	"ai-shopassist-be/internal/entity"
	"ai-shopassist-be/pkg/textnorm"

	"github.com/google/uuid"
)

// ResolutionType is the outcome of offer resolution.
type ResolutionType string

const (
	ResolutionSingle   ResolutionType = "single"
	ResolutionMultiple ResolutionType = "multiple"
	ResolutionNone     ResolutionType = "none"
)

// Resolution is the result of resolving a query against a site's catalog.
// Offer is set iff Type == single; Alternatives iff Type == multiple (always
// more than one entry); a none result carries neither.
type Resolution struct {
	Type         ResolutionType
	QueryNorm    string
	Tokens       []string
	Offer        *entity.Offer
	Alternatives []*entity.Offer
}

// CatalogLookup is the external collaborator contract: given a site and a
// set of normalized tokens, return the offers whose normalized forms
// intersect them.
type CatalogLookup interface {
	FindByTokens(ctx context.Context, siteId uuid.UUID, tokens []string) ([]*entity.Offer, error)
}

// Resolver maps conversational queries to catalog offers.
type Resolver struct {
	catalog CatalogLookup
}

func NewResolver(catalog CatalogLookup) *Resolver {
	return &Resolver{catalog: catalog}
}

// ResolveOfferHint normalizes the query, extracts identifier tokens and
// decides between a single, multiple or no catalog match.
//
// Lookup errors are returned to the caller; they are never coerced into a
// none result, because "no match" and "no data" mean different things
// downstream. Ambiguity is not an error: multiple and none are valid
// outcomes carried as data.
func (r *Resolver) ResolveOfferHint(ctx context.Context, query string, siteId uuid.UUID) (*Resolution, error) {
	queryNorm := textnorm.Normalize(query)
	tokens := textnorm.ExtractModelReferences(queryNorm)

	res := &Resolution{
		Type:      ResolutionNone,
		QueryNorm: queryNorm,
		Tokens:    tokens,
	}

	if len(tokens) == 0 {
		return res, nil
	}

	offers, err := r.lookupWithRetry(ctx, siteId, tokens)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup for site %s: %w", siteId, err)
	}

	distinct := dedupeById(offers)

	// A query that names explicit model tokens is anchored to them: offers
	// matched only through a shared brand word must not widen the result.
	if anchored := filterByModelAnchor(distinct, tokens); len(anchored) > 0 {
		distinct = anchored
	}

	switch len(distinct) {
	case 0:
		return res, nil
	case 1:
		res.Type = ResolutionSingle
		res.Offer = distinct[0]
		return res, nil
	}

	// Tie-break: a token can match offers from different brands. Prefer the
	// offer whose brand is also named in the query; if that does not reduce
	// the set to exactly one, report the ambiguity instead of guessing.
	if preferred := filterByBrandMention(distinct, queryNorm); len(preferred) == 1 {
		res.Type = ResolutionSingle
		res.Offer = preferred[0]
		return res, nil
	}

	res.Type = ResolutionMultiple
	res.Alternatives = distinct
	return res, nil
}

// lookupWithRetry performs the catalog read with a single bounded retry.
// The read is idempotent, so one retry on a transient failure is safe.
func (r *Resolver) lookupWithRetry(ctx context.Context, siteId uuid.UUID, tokens []string) ([]*entity.Offer, error) {
	offers, err := r.catalog.FindByTokens(ctx, siteId, tokens)
	if err == nil {
		return offers, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}
	return r.catalog.FindByTokens(ctx, siteId, tokens)
}

func dedupeById(offers []*entity.Offer) []*entity.Offer {
	seen := make(map[uuid.UUID]bool, len(offers))
	out := make([]*entity.Offer, 0, len(offers))
	for _, o := range offers {
		if o == nil || seen[o.Id] {
			continue
		}
		seen[o.Id] = true
		out = append(out, o)
	}
	return out
}

// filterByModelAnchor keeps offers whose ModelNorm matches an explicit model
// token of the query. Returns nil when the query carries no model tokens, in
// which case brand-level matching stands.
func filterByModelAnchor(offers []*entity.Offer, tokens []string) []*entity.Offer {
	modelTokens := make(map[string]bool)
	for _, t := range tokens {
		if textnorm.IsModelToken(t) {
			modelTokens[t] = true
		}
	}
	if len(modelTokens) == 0 {
		return nil
	}

	out := make([]*entity.Offer, 0, len(offers))
	for _, o := range offers {
		if o.ModelNorm != "" && modelTokens[o.ModelNorm] {
			out = append(out, o)
		}
	}
	return out
}

// filterByBrandMention keeps offers whose normalized brand occurs in the
// normalized query. Offers without a brand never qualify here.
func filterByBrandMention(offers []*entity.Offer, queryNorm string) []*entity.Offer {
	out := make([]*entity.Offer, 0, len(offers))
	for _, o := range offers {
		if o.BrandNorm != "" && strings.Contains(queryNorm, o.BrandNorm) {
			out = append(out, o)
		}
	}
	return out
}
