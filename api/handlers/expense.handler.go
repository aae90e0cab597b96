package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/voltedge/workshop-api/internal/dbrepo"
	"github.com/voltedge/workshop-api/internal/models"
	"github.com/voltedge/workshop-api/internal/utils"
)

type ExpenseHandler struct {
	DB       *dbrepo.ExpenseRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewExpenseHandler(db *dbrepo.ExpenseRepo, infoLog *log.Logger, errorLog *log.Logger) *ExpenseHandler {
	return &ExpenseHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// -------------------- Add Expense --------------------
func (h *ExpenseHandler) AddExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if err := utils.ReadJSON(w, r, &expense); err != nil {
		h.errorLog.Println("ERROR_01_AddExpense:", err)
		utils.BadRequest(w, err)
		return
	}

	if expense.Amount <= 0 {
		utils.BadRequest(w, errors.New("amount must be positive"))
		return
	}

	if err := h.DB.AddExpense(r.Context(), &expense); err != nil {
		h.errorLog.Println("ERROR_02_AddExpense:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error   bool            `json:"error"`
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Expense *models.Expense `json:"expense"`
	}{
		Error:   false,
		Message: "Expense recorded successfully",
		Expense: &expense,
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// -------------------- Get Expenses --------------------
func (h *ExpenseHandler) GetExpenses(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	expenses, err := h.DB.Expenses(r.Context(), date)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetExpenses:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error    bool              `json:"error"`
		Status   string            `json:"status"`
		Message  string            `json:"message"`
		Expenses []*models.Expense `json:"expenses"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Message = "Expenses fetched successfully"
	resp.Expenses = expenses

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Delete Expense --------------------
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid id"))
		return
	}

	if err := h.DB.DeleteExpense(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_01_DeleteExpense:", err)
		utils.ServerError(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Expense deleted",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Daily Cash Flow --------------------
func (h *ExpenseHandler) GetDailyCashFlow(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	flow, err := h.DB.DailyCashFlow(r.Context(), date)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetDailyCashFlow:", err)
		utils.ServerError(w, err)
		return
	}

	resp := struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		CashFlow *models.CashFlow `json:"cash_flow"`
	}{
		Error:    false,
		CashFlow: flow,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Monthly Expense Breakdown --------------------
func (h *ExpenseHandler) GetMonthlyBreakdown(w http.ResponseWriter, r *http.Request) {
	breakdown, err := h.DB.MonthlyExpenseBreakdown(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetMonthlyBreakdown:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error":     false,
		"breakdown": breakdown,
	})
}
