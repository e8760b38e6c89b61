package query

import (
	"context"
	"strings"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

// GetRefuelingQuery represents the query to get a refueling
type GetRefuelingQuery struct {
	ID uint
}

// GetRefuelingHandler handles get refueling query
type GetRefuelingHandler struct {
	repo domain.Repository
}

// NewGetRefuelingHandler creates a new get refueling handler
func NewGetRefuelingHandler(repo domain.Repository) *GetRefuelingHandler {
	return &GetRefuelingHandler{repo: repo}
}

// Handle executes the get refueling query
func (h *GetRefuelingHandler) Handle(ctx context.Context, query GetRefuelingQuery) (*domain.Refueling, error) {
	return h.repo.FindRefueling(ctx, query.ID)
}

// ListRefuelingsQuery represents the query to list refuelings, most recent first
type ListRefuelingsQuery struct {
	TankID    uint
	Status    string
	Equipment string
	Limit     int
	Offset    int
}

// ListRefuelingsHandler handles list refuelings query
type ListRefuelingsHandler struct {
	repo domain.Repository
}

// NewListRefuelingsHandler creates a new list refuelings handler
func NewListRefuelingsHandler(repo domain.Repository) *ListRefuelingsHandler {
	return &ListRefuelingsHandler{repo: repo}
}

// Handle executes the list refuelings query
func (h *ListRefuelingsHandler) Handle(ctx context.Context, query ListRefuelingsQuery) ([]domain.Refueling, error) {
	status := domain.Status(strings.ToLower(strings.TrimSpace(query.Status)))
	if status != "" && !status.Valid() {
		return nil, &domain.FieldError{Field: "status", Message: "is unknown: " + query.Status}
	}

	return h.repo.ListRefuelings(ctx, domain.RefuelingFilter{
		TankID:    query.TankID,
		Status:    status,
		Equipment: strings.TrimSpace(query.Equipment),
		Limit:     clampLimit(query.Limit),
		Offset:    query.Offset,
	})
}
