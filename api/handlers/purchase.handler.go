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

type PurchaseHandler struct {
	DB       *dbrepo.DBRepository
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewPurchaseHandler(db *dbrepo.DBRepository, infoLog *log.Logger, errorLog *log.Logger) *PurchaseHandler {
	return &PurchaseHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// -------------------- Next Purchase Number --------------------
func (h *PurchaseHandler) NextPurchaseNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.DB.Purchase.NextPurchaseNumber(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_NextPurchaseNumber:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error":       false,
		"purchase_id": number,
	})
}

// -------------------- Record Purchase --------------------
func (h *PurchaseHandler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PurchaseID   string                `json:"purchase_id"`
		SupplierName string                `json:"supplier_name" validate:"required"`
		Lines        []models.PurchaseLine `json:"lines" validate:"required,min=1"`
		GrandTotal   float64               `json:"grand_total"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_RecordPurchase:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorLog.Println("ERROR_02_RecordPurchase:", err)
		utils.BadRequest(w, err)
		return
	}

	if req.PurchaseID == "" {
		number, err := h.DB.Purchase.NextPurchaseNumber(r.Context())
		if err != nil {
			h.errorLog.Println("ERROR_03_RecordPurchase:", err)
			utils.ServerError(w, err)
			return
		}
		req.PurchaseID = number
	}

	err := h.DB.Purchase.RecordPurchase(r.Context(), req.PurchaseID, req.SupplierName, req.Lines, req.GrandTotal)
	if err != nil {
		h.errorLog.Println("ERROR_04_RecordPurchase:", err)
		utils.BadRequest(w, err)
		return
	}

	h.infoLog.Printf("Recorded purchase %s from %s", req.PurchaseID, req.SupplierName)

	utils.WriteJSON(w, http.StatusCreated, map[string]any{
		"error":       false,
		"message":     "Purchase recorded successfully",
		"purchase_id": req.PurchaseID,
	})
}

// -------------------- Purchase Reprint Data --------------------
func (h *PurchaseHandler) GetPurchase(w http.ResponseWriter, r *http.Request) {
	purchaseID := r.URL.Query().Get("purchase_id")
	if strings.TrimSpace(purchaseID) == "" {
		utils.BadRequest(w, errors.New("missing required query param: purchase_id"))
		return
	}

	items, err := h.DB.Purchase.PurchaseItems(r.Context(), purchaseID)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetPurchase:", err)
		utils.ServerError(w, err)
		return
	}
	if len(items) == 0 {
		utils.NotFound(w, errors.New("purchase not found"))
		return
	}

	total, err := h.DB.Purchase.PurchaseTotalFromLedger(r.Context(), purchaseID)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetPurchase:", err)
		utils.ServerError(w, err)
		return
	}

	cashPaid, err := h.DB.Purchase.CashPaidForPurchase(r.Context(), purchaseID)
	if err != nil {
		h.errorLog.Println("ERROR_03_GetPurchase:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error      bool                     `json:"error"`
		Status     string                   `json:"status"`
		PurchaseID string                   `json:"purchase_id"`
		Items      []*models.PurchaseRecord `json:"items"`
		Total      float64                  `json:"total"`
		CashPaid   float64                  `json:"cash_paid"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.PurchaseID = purchaseID
	resp.Items = items
	resp.Total = total
	resp.CashPaid = cashPaid

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Purchase ID List --------------------
func (h *PurchaseHandler) ListPurchaseIDs(w http.ResponseWriter, r *http.Request) {
	ids, err := h.DB.Purchase.PurchaseIDs(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_ListPurchaseIDs:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error":        false,
		"purchase_ids": ids,
	})
}
