package dto

import "github.com/google/uuid"

type MessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// QueryRequest is one widget turn. Messages holds the prior conversation,
// oldest first, excluding the current query.
type QueryRequest struct {
	SessionId string       `json:"session_id" validate:"required"`
	Query     string       `json:"query" validate:"required,min=1,max=2000"`
	Language  string       `json:"language" validate:"omitempty,bcp47_language_tag"`
	Messages  []MessageDTO `json:"messages" validate:"dive"`
}

type OfferDTO struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Url         string    `json:"url"`
	Description string    `json:"description"`
}

// ResolutionDTO mirrors the resolver outcome: Offer is set iff Type is
// "single", Alternatives iff Type is "multiple".
type ResolutionDTO struct {
	Type         string     `json:"type"`
	QueryNorm    string     `json:"query_norm"`
	Offer        *OfferDTO  `json:"offer,omitempty"`
	Alternatives []OfferDTO `json:"alternatives,omitempty"`
}

type RankedChunkDTO struct {
	ChunkId       uuid.UUID `json:"chunk_id"`
	MaterialId    uuid.UUID `json:"material_id"`
	MaterialTitle string    `json:"material_title"`
	Content       string    `json:"content"`
	ContentType   string    `json:"content_type"`
	Similarity    float64   `json:"similarity"`
	Score         float64   `json:"score"`
}

type QueryAnalysisDTO struct {
	Intent                     string             `json:"intent"`
	Keywords                   []string           `json:"keywords"`
	Products                   []string           `json:"products"`
	Confidence                 float64            `json:"confidence"`
	IsComparative              bool               `json:"is_comparative"`
	IsLookingForRecommendation bool               `json:"is_looking_for_recommendation"`
	ContentTypeBoosts          map[string]float64 `json:"content_type_boosts"`
}

type DisplayDTO struct {
	Intent             string `json:"intent"`
	ShouldShowProducts bool   `json:"should_show_products"`
}

type AssessmentDTO struct {
	Confidence    string `json:"confidence"`
	SafeInference bool   `json:"safe_inference"`
	Reason        string `json:"reason,omitempty"`
}

// QueryResponse is the full handoff to the answer-generation stage. This
// service never emits natural-language text itself.
type QueryResponse struct {
	Resolution      ResolutionDTO    `json:"resolution"`
	RankedChunks    []RankedChunkDTO `json:"ranked_chunks"`
	QueryAnalysis   QueryAnalysisDTO `json:"query_analysis"`
	ContextKeywords []string         `json:"context_keywords"`
	Language        string           `json:"language,omitempty"`
	Display         DisplayDTO       `json:"display"`
	Assessment      *AssessmentDTO   `json:"assessment,omitempty"`
	FilterMethod    string           `json:"filter_method,omitempty"`
	FilterFallback  bool             `json:"filter_fallback"`
}
