package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/voltedge/workshop-api/internal/dbrepo"
	"github.com/voltedge/workshop-api/internal/models"
	"github.com/voltedge/workshop-api/internal/utils"
)

type InventoryHandler struct {
	DB       *dbrepo.InventoryRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewInventoryHandler(db *dbrepo.InventoryRepo, infoLog *log.Logger, errorLog *log.Logger) *InventoryHandler {
	return &InventoryHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// -------------------- Add Stock Item --------------------
func (h *InventoryHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var item models.InventoryItem
	if err := utils.ReadJSON(w, r, &item); err != nil {
		h.errorLog.Println("ERROR_01_AddItem:", err)
		utils.BadRequest(w, err)
		return
	}

	if strings.TrimSpace(item.ItemName) == "" {
		utils.BadRequest(w, errors.New("item name is required"))
		return
	}

	if err := h.DB.AddItem(r.Context(), &item); err != nil {
		h.errorLog.Println("ERROR_02_AddItem:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error   bool                  `json:"error"`
		Status  string                `json:"status"`
		Message string                `json:"message"`
		Item    *models.InventoryItem `json:"item"`
	}{
		Error:   false,
		Message: "Item added successfully",
		Item:    &item,
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// -------------------- Get Stock List --------------------
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.DB.GetInventory(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetInventory:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error   bool                    `json:"error"`
		Status  string                  `json:"status"`
		Message string                  `json:"message"`
		Items   []*models.InventoryItem `json:"items"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Message = "Inventory fetched successfully"
	resp.Items = items

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Get Item Names --------------------
func (h *InventoryHandler) GetItemNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.DB.ItemNames(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetItemNames:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error": false,
		"names": names,
	})
}

// -------------------- Update Stock Item --------------------
func (h *InventoryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID           int64   `json:"id" validate:"required"`
		Quantity     int64   `json:"quantity"`
		CostPrice    float64 `json:"cost_price"`
		SellingPrice float64 `json:"selling_price"`
		LogNote      string  `json:"log_note"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_UpdateItem:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorLog.Println("ERROR_02_UpdateItem:", err)
		utils.BadRequest(w, err)
		return
	}

	found, err := h.DB.UpdateItem(r.Context(), req.ID, req.Quantity, req.CostPrice, req.SellingPrice, req.LogNote)
	if err != nil {
		h.errorLog.Println("ERROR_03_UpdateItem:", err)
		utils.ServerError(w, err)
		return
	}
	if !found {
		utils.NotFound(w, errors.New("item not found"))
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Item updated successfully",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Delete Stock Item --------------------
func (h *InventoryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid id"))
		return
	}

	if err := h.DB.DeleteItem(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_01_DeleteItem:", err)
		utils.ServerError(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Item and its movement history deleted",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Adjust Stock Quantity --------------------
func (h *InventoryHandler) AdjustQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemName  string `json:"item_name" validate:"required"`
		Delta     int64  `json:"delta"`
		Reference string `json:"reference"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_AdjustQuantity:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorLog.Println("ERROR_02_AdjustQuantity:", err)
		utils.BadRequest(w, err)
		return
	}

	newQty, err := h.DB.AdjustQuantity(r.Context(), req.ItemName, req.Delta, req.Reference)
	if err != nil {
		h.errorLog.Println("ERROR_03_AdjustQuantity:", err)
		utils.BadRequest(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error":        false,
		"message":      "Stock adjusted successfully",
		"new_quantity": newQty,
	})
}

// -------------------- Direct Stock Sale --------------------
func (h *InventoryHandler) SellItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID       int64  `json:"item_id" validate:"required"`
		Qty          int64  `json:"qty" validate:"required,gt=0"`
		CustomerName string `json:"customer_name"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_SellItem:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorLog.Println("ERROR_02_SellItem:", err)
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.SellItem(r.Context(), req.ItemID, req.Qty, req.CustomerName); err != nil {
		h.errorLog.Println("ERROR_03_SellItem:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Item sold successfully",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Item Movement History --------------------
func (h *InventoryHandler) GetItemLogs(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("item_id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid item_id"))
		return
	}

	logs, err := h.DB.LogsForItem(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetItemLogs:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error   bool                        `json:"error"`
		Status  string                      `json:"status"`
		Message string                      `json:"message"`
		Logs    []*models.InventoryLogEntry `json:"logs"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Message = "Movement history fetched successfully"
	resp.Logs = logs

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Stock Valuation --------------------
func (h *InventoryHandler) GetValuation(w http.ResponseWriter, r *http.Request) {
	cost, retail, err := h.DB.Valuation(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetValuation:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error":        false,
		"cost_value":   cost,
		"retail_value": retail,
	})
}
