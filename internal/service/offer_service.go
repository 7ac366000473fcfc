// FILE: internal/service/offer_service.go
// PURPOSE: Catalog maintenance around normalization. Write paths recompute
// the derived norm columns; RenormalizeSite re-queues every offer of a site
// after the normalization rules change.
package service

import (
	"context"
	"encoding/json"

	"ai-shopassist-be/internal/dto"
	"ai-shopassist-be/internal/pkg/logger"
	"ai-shopassist-be/internal/repository/contract"
	"ai-shopassist-be/internal/repository/specification"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IOfferService interface {
	RenormalizeSite(ctx context.Context, siteId uuid.UUID) (int, error)
}

type offerService struct {
	offerRepo contract.OfferRepository
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
}

func NewOfferService(
	offerRepo contract.OfferRepository,
	pubSub *gochannel.GoChannel,
	topicName string,
	log logger.ILogger,
) IOfferService {
	return &offerService{
		offerRepo: offerRepo,
		pubSub:    pubSub,
		topicName: topicName,
		logger:    log,
	}
}

// RenormalizeSite queues one renormalization message per offer of the site
// and returns how many were queued. The worker recomputes the norm columns
// asynchronously so a rules change never blocks the caller.
func (s *offerService) RenormalizeSite(ctx context.Context, siteId uuid.UUID) (int, error) {
	offers, err := s.offerRepo.FindAll(ctx, specification.BySiteID{SiteID: siteId})
	if err != nil {
		return 0, err
	}

	queued := 0
	for _, offer := range offers {
		payload, err := json.Marshal(dto.PublishOfferNormalizeMessage{OfferId: offer.Id})
		if err != nil {
			return queued, err
		}
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.pubSub.Publish(s.topicName, msg); err != nil {
			return queued, err
		}
		queued++
	}

	s.logger.Info("offer", "queued site renormalization", map[string]interface{}{
		"site_id": siteId.String(),
		"offers":  queued,
	})
	return queued, nil
}
