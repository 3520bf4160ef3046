package service

import (
	"context"
	"time"

	"dashboard-service/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type WalletRepository interface {
	Create(ctx context.Context, entry *domain.WalletEntry) error
	GetByID(ctx context.Context, id string) (*domain.WalletEntry, error)
	List(ctx context.Context) ([]domain.WalletEntry, error)
	Update(ctx context.Context, id string, req domain.UpdateWalletEntryRequest) error
	Delete(ctx context.Context, id string) error
}

type WalletService struct {
	wallets  WalletRepository
	recorder *Recorder
}

func NewWalletService(wallets WalletRepository, recorder *Recorder) *WalletService {
	return &WalletService{
		wallets:  wallets,
		recorder: recorder,
	}
}

func (s *WalletService) CreateEntry(ctx context.Context, actor domain.Actor, req domain.CreateWalletEntryRequest) (*domain.WalletEntry, error) {
	if req.Name == "" {
		return nil, domain.ErrInvalidWalletName
	}

	now := time.Now().UTC()
	entry := &domain.WalletEntry{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Username:  req.Username,
		Secret:    req.Secret,
		Domain:    req.Domain,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.wallets.Create(ctx, entry); err != nil {
		log.WithError(err).WithField("name", req.Name).Error("Failed to create wallet entry")
		return nil, err
	}

	s.recorder.CredentialAdded(ctx, actor, entry.ID, entry.Name)
	return entry, nil
}

func (s *WalletService) GetEntry(ctx context.Context, id string) (*domain.WalletEntry, error) {
	if id == "" {
		return nil, domain.ErrWalletNotFound
	}
	return s.wallets.GetByID(ctx, id)
}

func (s *WalletService) ListEntries(ctx context.Context) ([]domain.WalletEntry, error) {
	return s.wallets.List(ctx)
}

func (s *WalletService) UpdateEntry(ctx context.Context, actor domain.Actor, id string, req domain.UpdateWalletEntryRequest) (*domain.WalletEntry, error) {
	if id == "" {
		return nil, domain.ErrWalletNotFound
	}
	if req.Name != nil && *req.Name == "" {
		return nil, domain.ErrInvalidWalletName
	}

	if err := s.wallets.Update(ctx, id, req); err != nil {
		return nil, err
	}

	entry, err := s.wallets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.recorder.CredentialUpdated(ctx, actor, entry.ID, entry.Name)
	return entry, nil
}

func (s *WalletService) DeleteEntry(ctx context.Context, actor domain.Actor, id string) error {
	if id == "" {
		return domain.ErrWalletNotFound
	}

	entry, err := s.wallets.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.wallets.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.CredentialDeleted(ctx, actor, entry.ID, entry.Name)
	return nil
}
