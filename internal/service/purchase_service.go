package service

import (
	"context"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/util"
	"eventhub_backend/pkg/logger"
	"eventhub_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PurchaseService struct {
	DB           *gorm.DB
	UserRepo     *repository.UserRepository
	EventRepo    *repository.EventRepository
	PurchaseRepo *repository.PurchaseRepository
}

func NewPurchaseService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	eventRepo *repository.EventRepository,
	purchaseRepo *repository.PurchaseRepository,
) *PurchaseService {
	return &PurchaseService{
		DB:           db,
		UserRepo:     userRepo,
		EventRepo:    eventRepo,
		PurchaseRepo: purchaseRepo,
	}
}

// Buy sells one ticket. The event row stays locked from the capacity check
// until the purchase is written, so concurrent buyers cannot oversell.
func (s *PurchaseService) Buy(ctx context.Context, userID, eventID string) (*model.Purchase, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	purchase := &model.Purchase{EventID: eventID}
	model.SnapshotOf(user).ApplyToPurchase(purchase)

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events := s.EventRepo.WithTx(tx)

		event, err := events.FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if !event.IsActive {
			return util.ErrEventInactive
		}
		if event.SoldOut() {
			return util.ErrSoldOut
		}

		if err := events.IncrementSold(ctx, event.ID, 1); err != nil {
			return err
		}
		return s.PurchaseRepo.WithTx(tx).Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	monitoring.TicketsSold.Inc()
	logger.Log.Info("Ticket purchased",
		zap.String("purchase_id", purchase.ID),
		zap.String("event_id", eventID),
		zap.String("user_id", userID))

	return purchase, nil
}

func (s *PurchaseService) ForUser(ctx context.Context, userID string) ([]model.Purchase, error) {
	return s.PurchaseRepo.FindByUser(ctx, userID)
}
