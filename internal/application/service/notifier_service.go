package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/mbianou/chopchap-api/internal/domain/entity"
	"github.com/mbianou/chopchap-api/internal/domain/enum"
	"github.com/mbianou/chopchap-api/internal/domain/repository"
	"github.com/mbianou/chopchap-api/internal/infrastructure/push"
)

// maxDeliveryAttempts bounds retries for transiently failing notifications
const maxDeliveryAttempts = 5

// NotifierService drains queued notification records and hands them to the
// push relay. It runs beside the API server; delivery failures never touch
// the orders the records reference.
type NotifierService struct {
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	sender           push.Sender
	interval         time.Duration
	batchSize        int
}

// NewNotifierService creates a new notifier service
func NewNotifierService(
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	sender push.Sender,
	interval time.Duration,
	batchSize int,
) *NotifierService {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &NotifierService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		sender:           sender,
		interval:         interval,
		batchSize:        batchSize,
	}
}

// Run drains the queue on a fixed interval until the context is cancelled
func (s *NotifierService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.DrainOnce(ctx); err != nil {
				log.Printf("notifier: drain failed: %v", err)
			}
		}
	}
}

// DrainOnce processes one batch of pending notifications
func (s *NotifierService) DrainOnce(ctx context.Context) error {
	pending, err := s.notificationRepo.ClaimPending(ctx, s.batchSize)
	if err != nil {
		return err
	}

	for i := range pending {
		s.deliver(ctx, &pending[i])
	}
	return nil
}

func (s *NotifierService) deliver(ctx context.Context, n *entity.Notification) {
	// Guest orders have no push recipient
	if n.UserID == nil {
		s.setStatus(ctx, n, enum.NotificationStatusFailed)
		return
	}

	user, err := s.userRepo.GetByID(ctx, *n.UserID)
	if err != nil || user == nil || user.PushToken == "" {
		s.setStatus(ctx, n, enum.NotificationStatusFailed)
		return
	}

	err = s.sender.Deliver(ctx, user.PushToken, n.Title, n.Body, n.Data)
	switch {
	case err == nil:
		s.setStatus(ctx, n, enum.NotificationStatusSent)
	case errors.Is(err, push.ErrInvalidToken):
		// The relay reported a dead token; purge it so later sends skip
		// the round trip.
		if err := s.userRepo.ClearPushToken(ctx, *n.UserID); err != nil {
			log.Printf("notifier: clearing push token for %s: %v", n.UserID, err)
		}
		s.setStatus(ctx, n, enum.NotificationStatusInvalidToken)
	case n.Attempts+1 >= maxDeliveryAttempts:
		log.Printf("notifier: giving up on %s after %d attempts: %v", n.ID, n.Attempts+1, err)
		s.setStatus(ctx, n, enum.NotificationStatusFailed)
	default:
		// Transient failure: leave it pending, the status update still
		// records the attempt.
		s.setStatus(ctx, n, enum.NotificationStatusPending)
	}
}

func (s *NotifierService) setStatus(ctx context.Context, n *entity.Notification, status enum.NotificationStatus) {
	if err := s.notificationRepo.UpdateStatus(ctx, n.ID, status); err != nil {
		log.Printf("notifier: updating %s to %s: %v", n.ID, status, err)
	}
}
