package service

import (
	"context"
	"crypto/subtle"
	"log"

	"github.com/choreosync/api/internal/model"
)

// WebhookService accepts the workers' advisory completion notifications. It never
// changes job state: the worker's direct write is authoritative and the webhook
// only triggers side effects, so it is safe to receive zero, one or many times.
type WebhookService struct {
	secret   string
	enqueuer TaskEnqueuer
}

func NewWebhookService(secret string, enqueuer TaskEnqueuer) *WebhookService {
	return &WebhookService{secret: secret, enqueuer: enqueuer}
}

// Authorize compares the presented secret in constant time. An unset secret
// rejects everything.
func (s *WebhookService) Authorize(presented string) error {
	if s.secret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(s.secret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Handle authorizes the webhook and enqueues a notification for the song.
func (s *WebhookService) Handle(ctx context.Context, presented string, req *model.WebhookRequest) (*model.WebhookResponse, error) {
	if err := s.Authorize(presented); err != nil {
		return nil, err
	}

	log.Printf("[webhook] %s for song %s", req.Event, req.SongID)

	if err := enqueueNotify(ctx, s.enqueuer, req.SongID, req.Event); err != nil {
		return nil, err
	}
	return &model.WebhookResponse{Received: true}, nil
}
