package dto

import "github.com/google/uuid"

// PublishOfferNormalizeMessage is the payload queued when an offer's brand
// or model text changed and its normalized forms must be recomputed.
type PublishOfferNormalizeMessage struct {
	OfferId uuid.UUID `json:"offer_id"`
}
