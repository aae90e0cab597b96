package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/voltedge/workshop-api/internal/dbrepo"
	"github.com/voltedge/workshop-api/internal/models"
	"github.com/voltedge/workshop-api/internal/utils"
)

type InvoiceHandler struct {
	DB       *dbrepo.DBRepository
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewInvoiceHandler(db *dbrepo.DBRepository, infoLog *log.Logger, errorLog *log.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// -------------------- Next Invoice Number --------------------
func (h *InvoiceHandler) NextInvoiceNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.DB.Sale.NextInvoiceNumber(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_NextInvoiceNumber:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error":      false,
		"invoice_id": number,
	})
}

// -------------------- Record Plain Invoice --------------------
func (h *InvoiceHandler) RecordInvoice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvoiceID    string               `json:"invoice_id"`
		CustomerName string               `json:"customer_name" validate:"required"`
		Lines        []models.InvoiceLine `json:"lines" validate:"required,min=1"`
		Freight      float64              `json:"freight"`
		Misc         float64              `json:"misc"`
		GrandTotal   float64              `json:"grand_total"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_RecordInvoice:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorLog.Println("ERROR_02_RecordInvoice:", err)
		utils.BadRequest(w, err)
		return
	}

	// Invoice ids are allocated server side when the caller leaves it empty
	if req.InvoiceID == "" {
		number, err := h.DB.Sale.NextInvoiceNumber(r.Context())
		if err != nil {
			h.errorLog.Println("ERROR_03_RecordInvoice:", err)
			utils.ServerError(w, err)
			return
		}
		req.InvoiceID = number
	}

	err := h.DB.Sale.RecordInvoice(r.Context(), req.InvoiceID, req.CustomerName, req.Lines, req.Freight, req.Misc, req.GrandTotal)
	if err != nil {
		h.errorLog.Println("ERROR_04_RecordInvoice:", err)
		utils.BadRequest(w, err)
		return
	}

	h.infoLog.Printf("Recorded invoice %s for %s", req.InvoiceID, req.CustomerName)

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"error":      false,
		"message":    "Invoice recorded successfully",
		"invoice_id": req.InvoiceID,
	})
}

// -------------------- Record Batch Document --------------------
func (h *InvoiceHandler) RecordBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InvoiceID    string            `json:"invoice_id"`
		CustomerName string            `json:"customer_name" validate:"required"`
		Rows         []models.BatchRow `json:"rows" validate:"required,min=1"`
		Freight      float64           `json:"freight"`
		Misc         float64           `json:"misc"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_RecordBatch:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorLog.Println("ERROR_02_RecordBatch:", err)
		utils.BadRequest(w, err)
		return
	}

	if req.InvoiceID == "" {
		number, err := h.DB.Sale.NextInvoiceNumber(r.Context())
		if err != nil {
			h.errorLog.Println("ERROR_03_RecordBatch:", err)
			utils.ServerError(w, err)
			return
		}
		req.InvoiceID = number
	}

	err := h.DB.Sale.RecordBatch(r.Context(), req.InvoiceID, req.CustomerName, req.Rows, req.Freight, req.Misc)
	if err != nil {
		h.errorLog.Println("ERROR_04_RecordBatch:", err)
		utils.BadRequest(w, err)
		return
	}

	h.infoLog.Printf("Recorded batch document %s for %s (%d rows)", req.InvoiceID, req.CustomerName, len(req.Rows))

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"error":      false,
		"message":    "Batch recorded successfully",
		"invoice_id": req.InvoiceID,
	})
}

// -------------------- Invoice Reprint Data --------------------
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID := r.URL.Query().Get("invoice_id")
	if strings.TrimSpace(invoiceID) == "" {
		utils.BadRequest(w, errors.New("missing required query param: invoice_id"))
		return
	}

	items, err := h.DB.Sale.InvoiceItems(r.Context(), invoiceID)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetInvoice:", err)
		utils.ServerError(w, err)
		return
	}
	if len(items) == 0 {
		utils.NotFound(w, errors.New("invoice not found"))
		return
	}

	total, err := h.DB.Ledger.NetForRef(r.Context(), invoiceID)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetInvoice:", err)
		utils.ServerError(w, err)
		return
	}

	cashReceived, err := h.DB.Ledger.CashReceivedForRef(r.Context(), invoiceID)
	if err != nil {
		h.errorLog.Println("ERROR_03_GetInvoice:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error        bool                 `json:"error"`
		Status       string               `json:"status"`
		InvoiceID    string               `json:"invoice_id"`
		Items        []*models.SaleRecord `json:"items"`
		Total        float64              `json:"total"`
		CashReceived float64              `json:"cash_received"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.InvoiceID = invoiceID
	resp.Items = items
	resp.Total = total
	resp.CashReceived = cashReceived

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Invoice ID List --------------------
func (h *InvoiceHandler) ListInvoiceIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.DB.Sale.InvoiceIDs(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_ListInvoiceIDs:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error":       false,
		"invoice_ids": ids,
	})
}
