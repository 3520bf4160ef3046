package server

import (
	"context"
	"net/http"

	"dashboard-service/internal/domain"

	"github.com/labstack/echo/v4"
)

type WalletService interface {
	CreateEntry(ctx context.Context, actor domain.Actor, req domain.CreateWalletEntryRequest) (*domain.WalletEntry, error)
	GetEntry(ctx context.Context, id string) (*domain.WalletEntry, error)
	ListEntries(ctx context.Context) ([]domain.WalletEntry, error)
	UpdateEntry(ctx context.Context, actor domain.Actor, id string, req domain.UpdateWalletEntryRequest) (*domain.WalletEntry, error)
	DeleteEntry(ctx context.Context, actor domain.Actor, id string) error
}

type walletServer struct {
	wallets WalletService
	actor   domain.Actor
}

func NewWalletServer(wallets WalletService, actor domain.Actor) *walletServer {
	return &walletServer{
		wallets: wallets,
		actor:   actor,
	}
}

func (s *walletServer) CreateEntry(c echo.Context) error {
	var req domain.CreateWalletEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	entry, err := s.wallets.CreateEntry(c.Request().Context(), s.actor, req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusCreated, entry)
}

func (s *walletServer) GetEntry(c echo.Context) error {
	entry, err := s.wallets.GetEntry(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *walletServer) ListEntries(c echo.Context) error {
	entries, err := s.wallets.ListEntries(c.Request().Context())
	if err != nil {
		return errorJSON(c, err)
	}
	if entries == nil {
		entries = []domain.WalletEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (s *walletServer) UpdateEntry(c echo.Context) error {
	var req domain.UpdateWalletEntryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	entry, err := s.wallets.UpdateEntry(c.Request().Context(), s.actor, c.Param("id"), req)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (s *walletServer) DeleteEntry(c echo.Context) error {
	if err := s.wallets.DeleteEntry(c.Request().Context(), s.actor, c.Param("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
