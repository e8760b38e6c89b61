package query

import (
	"context"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// GetTankQuery represents the query to get a tank
type GetTankQuery struct {
	ID uint
}

// GetTankHandler handles get tank query
type GetTankHandler struct {
	repo domain.Repository
}

// NewGetTankHandler creates a new get tank handler
func NewGetTankHandler(repo domain.Repository) *GetTankHandler {
	return &GetTankHandler{repo: repo}
}

// Handle executes the get tank query
func (h *GetTankHandler) Handle(ctx context.Context, query GetTankQuery) (*domain.Tank, error) {
	return h.repo.FindTank(ctx, query.ID)
}

// ListTanksQuery represents the query to list tanks ordered by name.
// A nil Active lists archived tanks too.
type ListTanksQuery struct {
	Active *bool
	Limit  int
	Offset int
}

// ListTanksHandler handles list tanks query
type ListTanksHandler struct {
	repo domain.Repository
}

// NewListTanksHandler creates a new list tanks handler
func NewListTanksHandler(repo domain.Repository) *ListTanksHandler {
	return &ListTanksHandler{repo: repo}
}

// Handle executes the list tanks query
func (h *ListTanksHandler) Handle(ctx context.Context, query ListTanksQuery) ([]domain.Tank, error) {
	return h.repo.ListTanks(ctx, domain.TankFilter{
		Active: query.Active,
		Limit:  clampLimit(query.Limit),
		Offset: query.Offset,
	})
}
