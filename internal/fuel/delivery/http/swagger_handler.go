package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
// @Summary Swagger documentation
// @Description Swagger API documentation for Fuel Service
// @Tags Swagger
// @Success 200 {string} string "Swagger UI"
// @Router /swagger/ [get]
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListTanks godoc
// @Summary List tanks
// @Description List tanks ordered by name. Only active tanks unless active=false or active=all
// @Tags Tanks
// @Produce json
// @Param active query string false "true, false or all"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/tanks [get]
func (h *FuelHandler) ListTanksDoc() {}

// CreateTank godoc
// @Summary Create tank
// @Description Create a tank. Capacity defaults to 6000 liters
// @Tags Tanks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{name=string,capacity=number} true "Tank data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/tanks [post]
func (h *FuelHandler) CreateTankDoc() {}

// GetTank godoc
// @Summary Get tank by ID
// @Tags Tanks
// @Produce json
// @Param id path int true "Tank ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/tanks/{id} [get]
func (h *FuelHandler) GetTankDoc() {}

// UpdateTank godoc
// @Summary Update tank
// @Description Rename a tank or change its capacity. Stock is recomputed against the new capacity
// @Tags Tanks
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Tank ID"
// @Param request body object{name=string,capacity=number} true "Tank data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/tanks/{id} [patch]
func (h *FuelHandler) UpdateTankDoc() {}

// ArchiveTank godoc
// @Summary Archive or restore tank
// @Tags Tanks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tank ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/tanks/{id}/archive [post]
// @Router /api/tanks/{id}/unarchive [post]
func (h *FuelHandler) ArchiveTankDoc() {}

// DeleteTank godoc
// @Summary Delete tank
// @Description Tanks referenced by receipts or refuelings cannot be deleted
// @Tags Tanks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tank ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/tanks/{id} [delete]
func (h *FuelHandler) DeleteTankDoc() {}

// RecomputeTank godoc
// @Summary Recompute tank stock
// @Description Resynchronize stored stock with receipts and confirmed refuelings
// @Tags Tanks
// @Security BearerAuth
// @Produce json
// @Param id path int true "Tank ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Router /api/tanks/{id}/recompute [post]
func (h *FuelHandler) RecomputeTankDoc() {}

// ListReceipts godoc
// @Summary List receipts
// @Tags Receipts
// @Produce json
// @Param tank_id query int false "Tank ID"
// @Param reference query string false "Reference substring"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/receipts [get]
func (h *FuelHandler) ListReceiptsDoc() {}

// CreateReceipt godoc
// @Summary Record fuel receipt
// @Description Record fuel entering a tank. The operator is taken from the token
// @Tags Receipts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{tank_id=int,received_at=string,liters=number,reference=string,note=string} true "Receipt data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/receipts [post]
func (h *FuelHandler) CreateReceiptDoc() {}

// DeleteReceipt godoc
// @Summary Delete receipt
// @Tags Receipts
// @Security BearerAuth
// @Produce json
// @Param id path int true "Receipt ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/receipts/{id} [delete]
func (h *FuelHandler) DeleteReceiptDoc() {}

// ListRefuelings godoc
// @Summary List refuelings
// @Tags Refuelings
// @Produce json
// @Param tank_id query int false "Tank ID"
// @Param status query string false "draft, confirmed or cancelled"
// @Param equipment query string false "Equipment substring"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} object{success=bool,data=array}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/refuelings [get]
func (h *FuelHandler) ListRefuelingsDoc() {}

// CreateRefueling godoc
// @Summary Create draft refueling
// @Tags Refuelings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{equipment=string,refueled_at=string,meter_reading=number,liters=number,unit_price=number,tank_id=int,driver=string,note=string} true "Refueling data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /api/refuelings [post]
func (h *FuelHandler) CreateRefuelingDoc() {}

// GetRefueling godoc
// @Summary Get refueling by ID
// @Tags Refuelings
// @Produce json
// @Param id path int true "Refueling ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/refuelings/{id} [get]
func (h *FuelHandler) GetRefuelingDoc() {}

// UpdateRefueling godoc
// @Summary Update refueling
// @Tags Refuelings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Refueling ID"
// @Param request body object{equipment=string,liters=number,unit_price=number,tank_id=int} true "Changed fields"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/refuelings/{id} [patch]
func (h *FuelHandler) UpdateRefuelingDoc() {}

// DeleteRefueling godoc
// @Summary Delete refueling
// @Tags Refuelings
// @Security BearerAuth
// @Produce json
// @Param id path int true "Refueling ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/refuelings/{id} [delete]
func (h *FuelHandler) DeleteRefuelingDoc() {}

// TransitionRefueling godoc
// @Summary Change refueling status
// @Description confirm: draft to confirmed, cancel: confirmed to cancelled, draft: cancelled to draft
// @Tags Refuelings
// @Security BearerAuth
// @Produce json
// @Param id path int true "Refueling ID"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Failure 409 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/refuelings/{id}/confirm [post]
// @Router /api/refuelings/{id}/cancel [post]
// @Router /api/refuelings/{id}/draft [post]
func (h *FuelHandler) TransitionRefuelingDoc() {}

// ReceivingValidated godoc
// @Summary Receiving document validated
// @Description Turn the fuel lines of a validated incoming document into receipts on the default tank
// @Tags Receiving
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{event_id=string,document=string,kind=string,operator=string,lines=array} true "Receiving event"
// @Success 202 {object} object{success=bool,message=string}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 422 {object} object{success=bool,error=string}
// @Router /api/receiving/validated [post]
func (h *FuelHandler) ReceivingValidatedDoc() {}

// CountDocumentReceipts godoc
// @Summary Count receipts of a receiving document
// @Tags Receiving
// @Produce json
// @Param document path string true "Document name"
// @Success 200 {object} object{success=bool,data=object{document=string,count=int}}
// @Router /api/receiving/{document}/receipts/count [get]
func (h *FuelHandler) CountDocumentReceiptsDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *FuelHandler) HealthCheckDoc() {}
