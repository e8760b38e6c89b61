package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/fuel-control/internal/fuel/domain"
	"github.com/tair/fuel-control/internal/fuel/receiving"
	"github.com/tair/fuel-control/internal/fuel/usecase/command"
	"github.com/tair/fuel-control/internal/fuel/usecase/query"
	"github.com/tair/fuel-control/pkg/logger"
)

// Commands groups the command handlers used by the HTTP layer
type Commands struct {
	CreateTank      *command.CreateTankHandler
	UpdateTank      *command.UpdateTankHandler
	SetTankActive   *command.SetTankActiveHandler
	DeleteTank      *command.DeleteTankHandler
	RecomputeTank   *command.RecomputeTankHandler
	CreateReceipt   *command.CreateReceiptHandler
	DeleteReceipt   *command.DeleteReceiptHandler
	CreateRefueling *command.CreateRefuelingHandler
	UpdateRefueling *command.UpdateRefuelingHandler
	DeleteRefueling *command.DeleteRefuelingHandler
	Confirm         *command.ConfirmRefuelingHandler
	Cancel          *command.CancelRefuelingHandler
	Reset           *command.ResetRefuelingHandler
}

// Queries groups the query handlers used by the HTTP layer
type Queries struct {
	GetTank               *query.GetTankHandler
	ListTanks             *query.ListTanksHandler
	ListReceipts          *query.ListReceiptsHandler
	CountDocumentReceipts *query.CountDocumentReceiptsHandler
	GetRefueling          *query.GetRefuelingHandler
	ListRefuelings        *query.ListRefuelingsHandler
}

// FuelHandler handles HTTP requests for tanks, receipts and refuelings
type FuelHandler struct {
	commands   Commands
	queries    Queries
	dispatcher *receiving.Dispatcher
	secret     []byte
}

// NewFuelHandler creates a new fuel handler
func NewFuelHandler(commands Commands, queries Queries, dispatcher *receiving.Dispatcher, secret []byte) *FuelHandler {
	return &FuelHandler{
		commands:   commands,
		queries:    queries,
		dispatcher: dispatcher,
		secret:     secret,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers all fuel routes
func (h *FuelHandler) RegisterRoutes(router *mux.Router) {
	auth := AuthMiddleware(h.secret)
	manager := ManagerMiddleware(h.secret)
	route := func(path, method string, next http.HandlerFunc) {
		router.HandleFunc(path, metricsMiddleware(path, next)).Methods(method)
	}

	route("/api/tanks", "GET", h.ListTanks)
	route("/api/tanks", "POST", auth(h.CreateTank))
	route("/api/tanks/{id}", "GET", h.GetTank)
	route("/api/tanks/{id}", "PATCH", auth(h.UpdateTank))
	route("/api/tanks/{id}", "DELETE", manager(h.DeleteTank))
	route("/api/tanks/{id}/archive", "POST", manager(h.setTankActive(false)))
	route("/api/tanks/{id}/unarchive", "POST", manager(h.setTankActive(true)))
	route("/api/tanks/{id}/recompute", "POST", manager(h.RecomputeTank))

	route("/api/receipts", "GET", h.ListReceipts)
	route("/api/receipts", "POST", auth(h.CreateReceipt))
	route("/api/receipts/{id}", "DELETE", auth(h.DeleteReceipt))

	route("/api/refuelings", "GET", h.ListRefuelings)
	route("/api/refuelings", "POST", auth(h.CreateRefueling))
	route("/api/refuelings/{id}", "GET", h.GetRefueling)
	route("/api/refuelings/{id}", "PATCH", auth(h.UpdateRefueling))
	route("/api/refuelings/{id}", "DELETE", auth(h.DeleteRefueling))
	route("/api/refuelings/{id}/confirm", "POST", auth(h.ConfirmRefueling))
	route("/api/refuelings/{id}/cancel", "POST", auth(h.CancelRefueling))
	route("/api/refuelings/{id}/draft", "POST", auth(h.ResetRefueling))

	route("/api/receiving/validated", "POST", auth(h.ReceivingValidated))
	route("/api/receiving/{document:.+}/receipts/count", "GET", h.CountDocumentReceipts)
}

// ListTanks handles GET /api/tanks
func (h *FuelHandler) ListTanks(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	q := query.ListTanksQuery{Limit: limit, Offset: offset}

	switch strings.ToLower(r.URL.Query().Get("active")) {
	case "", "true":
		active := true
		q.Active = &active
	case "false":
		active := false
		q.Active = &active
	case "all":
	default:
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "active must be true, false or all",
		})
		return
	}

	tanks, err := h.queries.ListTanks.Handle(r.Context(), q)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    tanks,
	})
}

// CreateTank handles POST /api/tanks
func (h *FuelHandler) CreateTank(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string          `json:"name"`
		Capacity decimal.Decimal `json:"capacity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tank, err := h.commands.CreateTank.Handle(r.Context(), command.CreateTankCommand{
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Tank created successfully",
		Data:    tank,
	})
}

// GetTank handles GET /api/tanks/{id}
func (h *FuelHandler) GetTank(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tank")
	if !ok {
		return
	}

	tank, err := h.queries.GetTank.Handle(r.Context(), query.GetTankQuery{ID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    tank,
	})
}

// UpdateTank handles PATCH /api/tanks/{id}
func (h *FuelHandler) UpdateTank(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tank")
	if !ok {
		return
	}

	var req struct {
		Name     *string          `json:"name"`
		Capacity *decimal.Decimal `json:"capacity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tank, err := h.commands.UpdateTank.Handle(r.Context(), command.UpdateTankCommand{
		ID:       id,
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Tank updated successfully",
		Data:    tank,
	})
}

func (h *FuelHandler) setTankActive(active bool) http.HandlerFunc {
	message := "Tank archived successfully"
	if active {
		message = "Tank restored successfully"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "tank")
		if !ok {
			return
		}

		tank, err := h.commands.SetTankActive.Handle(r.Context(), command.SetTankActiveCommand{ID: id, Active: active})
		if err != nil {
			respondError(w, r, err)
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: message,
			Data:    tank,
		})
	}
}

// DeleteTank handles DELETE /api/tanks/{id}
func (h *FuelHandler) DeleteTank(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tank")
	if !ok {
		return
	}

	if err := h.commands.DeleteTank.Handle(r.Context(), command.DeleteTankCommand{ID: id}); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Tank deleted successfully",
	})
}

// RecomputeTank handles POST /api/tanks/{id}/recompute
func (h *FuelHandler) RecomputeTank(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "tank")
	if !ok {
		return
	}

	tanks, err := h.commands.RecomputeTank.Handle(r.Context(), command.RecomputeTankCommand{ID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Tank recomputed successfully",
		Data:    tanks[0],
	})
}

// ListReceipts handles GET /api/receipts
func (h *FuelHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	tankID, ok := queryID(w, r, "tank_id")
	if !ok {
		return
	}

	receipts, err := h.queries.ListReceipts.Handle(r.Context(), query.ListReceiptsQuery{
		TankID:    tankID,
		Reference: r.URL.Query().Get("reference"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    receipts,
	})
}

// CreateReceipt handles POST /api/receipts
func (h *FuelHandler) CreateReceipt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TankID     uint            `json:"tank_id"`
		ReceivedAt time.Time       `json:"received_at"`
		Liters     decimal.Decimal `json:"liters"`
		Reference  string          `json:"reference"`
		Note       string          `json:"note"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	receipt, err := h.commands.CreateReceipt.Handle(r.Context(), command.CreateReceiptCommand{
		TankID:     req.TankID,
		ReceivedAt: req.ReceivedAt,
		Liters:     req.Liters,
		Reference:  req.Reference,
		RecordedBy: OperatorFromContext(r.Context()),
		Note:       req.Note,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Receipt created successfully",
		Data:    receipt,
	})
}

// DeleteReceipt handles DELETE /api/receipts/{id}
func (h *FuelHandler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "receipt")
	if !ok {
		return
	}

	if err := h.commands.DeleteReceipt.Handle(r.Context(), command.DeleteReceiptCommand{ID: id}); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Receipt deleted successfully",
	})
}

// ListRefuelings handles GET /api/refuelings
func (h *FuelHandler) ListRefuelings(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	tankID, ok := queryID(w, r, "tank_id")
	if !ok {
		return
	}

	refuelings, err := h.queries.ListRefuelings.Handle(r.Context(), query.ListRefuelingsQuery{
		TankID:    tankID,
		Status:    r.URL.Query().Get("status"),
		Equipment: r.URL.Query().Get("equipment"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    refuelings,
	})
}

// CreateRefueling handles POST /api/refuelings
func (h *FuelHandler) CreateRefueling(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Equipment    string          `json:"equipment"`
		RefueledAt   time.Time       `json:"refueled_at"`
		MeterReading decimal.Decimal `json:"meter_reading"`
		Liters       decimal.Decimal `json:"liters"`
		UnitPrice    decimal.Decimal `json:"unit_price"`
		TankID       uint            `json:"tank_id"`
		Driver       string          `json:"driver"`
		Note         string          `json:"note"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	refueling, err := h.commands.CreateRefueling.Handle(r.Context(), command.CreateRefuelingCommand{
		Equipment:    req.Equipment,
		RefueledAt:   req.RefueledAt,
		MeterReading: req.MeterReading,
		Liters:       req.Liters,
		UnitPrice:    req.UnitPrice,
		TankID:       req.TankID,
		RecordedBy:   OperatorFromContext(r.Context()),
		Driver:       req.Driver,
		Note:         req.Note,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Refueling created successfully",
		Data:    refueling,
	})
}

// GetRefueling handles GET /api/refuelings/{id}
func (h *FuelHandler) GetRefueling(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "refueling")
	if !ok {
		return
	}

	refueling, err := h.queries.GetRefueling.Handle(r.Context(), query.GetRefuelingQuery{ID: id})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    refueling,
	})
}

// UpdateRefueling handles PATCH /api/refuelings/{id}
func (h *FuelHandler) UpdateRefueling(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "refueling")
	if !ok {
		return
	}

	var req struct {
		Equipment    *string          `json:"equipment"`
		RefueledAt   *time.Time       `json:"refueled_at"`
		MeterReading *decimal.Decimal `json:"meter_reading"`
		Liters       *decimal.Decimal `json:"liters"`
		UnitPrice    *decimal.Decimal `json:"unit_price"`
		TankID       *uint            `json:"tank_id"`
		Driver       *string          `json:"driver"`
		Note         *string          `json:"note"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	refueling, err := h.commands.UpdateRefueling.Handle(r.Context(), command.UpdateRefuelingCommand{
		ID:           id,
		Equipment:    req.Equipment,
		RefueledAt:   req.RefueledAt,
		MeterReading: req.MeterReading,
		Liters:       req.Liters,
		UnitPrice:    req.UnitPrice,
		TankID:       req.TankID,
		Driver:       req.Driver,
		Note:         req.Note,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Refueling updated successfully",
		Data:    refueling,
	})
}

// DeleteRefueling handles DELETE /api/refuelings/{id}
func (h *FuelHandler) DeleteRefueling(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "refueling")
	if !ok {
		return
	}

	if err := h.commands.DeleteRefueling.Handle(r.Context(), command.DeleteRefuelingCommand{ID: id}); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Refueling deleted successfully",
	})
}

// ConfirmRefueling handles POST /api/refuelings/{id}/confirm
func (h *FuelHandler) ConfirmRefueling(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Refueling confirmed", h.commands.Confirm.Handle)
}

// CancelRefueling handles POST /api/refuelings/{id}/cancel
func (h *FuelHandler) CancelRefueling(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Refueling cancelled", h.commands.Cancel.Handle)
}

// ResetRefueling handles POST /api/refuelings/{id}/draft
func (h *FuelHandler) ResetRefueling(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Refueling reset to draft", h.commands.Reset.Handle)
}

type transitionHandle func(ctx context.Context, cmd command.TransitionRefuelingCommand) (*domain.Refueling, error)

func (h *FuelHandler) transition(w http.ResponseWriter, r *http.Request, message string, handle transitionHandle) {
	id, ok := pathID(w, r, "refueling")
	if !ok {
		return
	}

	refueling, err := handle(r.Context(), command.TransitionRefuelingCommand{
		ID:       id,
		Operator: OperatorFromContext(r.Context()),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    refueling,
	})
}

// ReceivingValidated handles POST /api/receiving/validated
func (h *FuelHandler) ReceivingValidated(w http.ResponseWriter, r *http.Request) {
	var event receiving.Event
	if !decodeBody(w, r, &event) {
		return
	}
	if operator := OperatorFromContext(r.Context()); operator != "" {
		event.Operator = operator
	}
	if event.ValidatedAt.IsZero() {
		event.ValidatedAt = time.Now().UTC()
	}

	if err := h.dispatcher.Validated(r.Context(), event); err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusAccepted, Response{
		Success: true,
		Message: "Receiving event processed",
	})
}

// CountDocumentReceipts handles GET /api/receiving/{document}/receipts/count
func (h *FuelHandler) CountDocumentReceipts(w http.ResponseWriter, r *http.Request) {
	document := mux.Vars(r)["document"]

	count, err := h.queries.CountDocumentReceipts.Handle(r.Context(), query.CountDocumentReceiptsQuery{Document: document})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data: map[string]interface{}{
			"document": document,
			"count":    count,
		},
	})
}

// RegisterHealthCheck registers health check endpoint
func (h *FuelHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			logger.Error(r.Context()).Err(err).Msg("Health check failed")
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Fuel service is healthy",
		})
	}).Methods("GET")
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request, entity string) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil || id == 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid " + entity + " ID",
		})
		return 0, false
	}
	return uint(id), true
}

func queryID(w http.ResponseWriter, r *http.Request, key string) (uint, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid " + key,
		})
		return 0, false
	}
	return uint(id), true
}

func pagination(r *http.Request) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
