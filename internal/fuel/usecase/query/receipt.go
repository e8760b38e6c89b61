package query

import (
	"context"
	"strings"

	"github.com/tair/fuel-control/internal/fuel/domain"
)

// ListReceiptsQuery represents the query to list receipts, newest first
type ListReceiptsQuery struct {
	TankID    uint
	Reference string
	Limit     int
	Offset    int
}

// ListReceiptsHandler handles list receipts query
type ListReceiptsHandler struct {
	repo domain.Repository
}

// NewListReceiptsHandler creates a new list receipts handler
func NewListReceiptsHandler(repo domain.Repository) *ListReceiptsHandler {
	return &ListReceiptsHandler{repo: repo}
}

// Handle executes the list receipts query
func (h *ListReceiptsHandler) Handle(ctx context.Context, query ListReceiptsQuery) ([]domain.Receipt, error) {
	return h.repo.ListReceipts(ctx, domain.ReceiptFilter{
		TankID:    query.TankID,
		Reference: strings.TrimSpace(query.Reference),
		Limit:     clampLimit(query.Limit),
		Offset:    query.Offset,
	})
}

// CountDocumentReceiptsQuery asks how many receipts came from a receiving
// document
type CountDocumentReceiptsQuery struct {
	Document string
}

// CountDocumentReceiptsHandler handles count document receipts query
type CountDocumentReceiptsHandler struct {
	repo domain.Repository
}

// NewCountDocumentReceiptsHandler creates a new count document receipts handler
func NewCountDocumentReceiptsHandler(repo domain.Repository) *CountDocumentReceiptsHandler {
	return &CountDocumentReceiptsHandler{repo: repo}
}

// Handle counts receipts whose reference contains the document name. The
// match is by substring, so a document whose name prefixes another's also
// counts the other's receipts.
func (h *CountDocumentReceiptsHandler) Handle(ctx context.Context, query CountDocumentReceiptsQuery) (int64, error) {
	document := strings.TrimSpace(query.Document)
	if document == "" {
		return 0, nil
	}
	return h.repo.CountReceiptsByReference(ctx, document)
}
