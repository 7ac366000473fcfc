// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-shopassist-be/internal/dto"
	"ai-shopassist-be/internal/repository/contract"
	"ai-shopassist-be/internal/repository/specification"
	"ai-shopassist-be/pkg/events"
	natsbus "ai-shopassist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the offer-renormalization queue. Each message names
// one offer; the repository write path recomputes the norm columns, and a
// NATS event notifies any external listeners (analytics, cache invalidation).
type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	offerRepo contract.OfferRepository
	bus       *natsbus.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	offerRepo contract.OfferRepository,
	bus *natsbus.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		offerRepo: offerRepo,
		bus:       bus,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishOfferNormalizeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	offer, err := cs.offerRepo.FindOne(ctx, specification.ByID{ID: payload.OfferId})
	if err != nil {
		log.Printf("[ERROR] Failed to load offer %s: %v", payload.OfferId, err)
		msg.Nack()
		return
	}
	if offer == nil {
		// Offer deleted between queueing and processing; nothing to do.
		msg.Ack()
		return
	}

	// Update recomputes BrandNorm/ModelNorm from the raw values.
	if err := cs.offerRepo.Update(ctx, offer); err != nil {
		log.Printf("[ERROR] Failed to renormalize offer %s: %v", payload.OfferId, err)
		msg.Nack()
		return
	}

	if cs.bus != nil {
		event := events.NewEvent("OFFER_NORMALIZED", map[string]interface{}{
			"offer_id":   offer.Id.String(),
			"site_id":    offer.SiteId.String(),
			"brand_norm": offer.BrandNorm,
			"model_norm": offer.ModelNorm,
		})
		if err := cs.bus.Publish(ctx, event); err != nil {
			// Event fan-out is best effort; the renormalization itself stuck.
			log.Printf("[WARN] Failed to publish OFFER_NORMALIZED for %s: %v", offer.Id, err)
		}
	}

	msg.Ack()
}
