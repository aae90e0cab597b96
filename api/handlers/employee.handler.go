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

type EmployeeHandler struct {
	DB       *dbrepo.EmployeeRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewEmployeeHandler(db *dbrepo.EmployeeRepo, infoLog *log.Logger, errorLog *log.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// -------------------- Add New Employee --------------------
func (h *EmployeeHandler) AddEmployee(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string  `json:"name" validate:"required"`
		Role     string  `json:"role"`
		Phone    string  `json:"phone"`
		Salary   float64 `json:"salary"`
		CNIC     string  `json:"cnic"`
		Username string  `json:"username"`
		Password string  `json:"password"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_AddEmployee:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorLog.Println("ERROR_02_AddEmployee:", err)
		utils.BadRequest(w, err)
		return
	}

	employee := models.Employee{
		Name:     req.Name,
		Role:     req.Role,
		Phone:    req.Phone,
		Salary:   req.Salary,
		CNIC:     req.CNIC,
		Username: req.Username,
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			h.errorLog.Println("ERROR_03_AddEmployee:", err)
			utils.ServerError(w, err)
			return
		}
		employee.Password = hash
	}

	if err := h.DB.AddEmployee(r.Context(), &employee); err != nil {
		h.errorLog.Println("ERROR_04_AddEmployee:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Employee *models.Employee `json:"employee"`
	}{
		Error:    false,
		Message:  "Employee added successfully",
		Employee: &employee,
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// -------------------- Get Employee List --------------------
func (h *EmployeeHandler) GetEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.DB.GetEmployees(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetEmployees:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error     bool               `json:"error"`
		Status    string             `json:"status"`
		Message   string             `json:"message"`
		Employees []*models.Employee `json:"employees"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Message = "Employee list fetched successfully"
	resp.Employees = employees

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Get Employee Names --------------------
func (h *EmployeeHandler) GetEmployeeNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.DB.EmployeeNames(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetEmployeeNames:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error": false,
		"names": names,
	})
}

// -------------------- Delete Employee --------------------
func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid id"))
		return
	}

	if err := h.DB.DeleteEmployee(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_01_DeleteEmployee:", err)
		utils.ServerError(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Employee deleted; payroll ledger kept",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Add Payroll Ledger Entry --------------------
func (h *EmployeeHandler) AddLedgerEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.EmployeeLedgerEntry
	if err := utils.ReadJSON(w, r, &entry); err != nil {
		h.errorLog.Println("ERROR_01_AddLedgerEntry:", err)
		utils.BadRequest(w, err)
		return
	}

	if strings.TrimSpace(entry.EmployeeName) == "" {
		utils.BadRequest(w, errors.New("employee name is required"))
		return
	}
	switch entry.Type {
	case models.EntryTypeWorkLog, models.EntryTypeSalaryPayment, models.EntryTypeAdvance:
	default:
		utils.BadRequest(w, errors.New("invalid entry type"))
		return
	}

	if err := h.DB.AddLedgerEntry(r.Context(), &entry); err != nil {
		h.errorLog.Println("ERROR_02_AddLedgerEntry:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error   bool                        `json:"error"`
		Status  string                      `json:"status"`
		Message string                      `json:"message"`
		Entry   *models.EmployeeLedgerEntry `json:"entry"`
	}{
		Error:   false,
		Message: "Payroll entry added successfully",
		Entry:   &entry,
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// -------------------- Get Payroll Ledger --------------------
func (h *EmployeeHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		utils.BadRequest(w, errors.New("missing required query param: name"))
		return
	}

	entries, err := h.DB.GetLedger(r.Context(), name)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetLedger:", err)
		utils.ServerError(w, err)
		return
	}

	balance, err := h.DB.Balance(r.Context(), name)
	if err != nil {
		h.errorLog.Println("ERROR_02_GetLedger:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error   bool                          `json:"error"`
		Status  string                        `json:"status"`
		Message string                        `json:"message"`
		Balance float64                       `json:"balance"`
		Entries []*models.EmployeeLedgerEntry `json:"entries"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Message = "Payroll ledger fetched successfully"
	resp.Balance = balance
	resp.Entries = entries

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Delete Payroll Ledger Entry --------------------
func (h *EmployeeHandler) DeleteLedgerEntry(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid id"))
		return
	}

	if err := h.DB.DeleteLedgerEntry(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_01_DeleteLedgerEntry:", err)
		utils.ServerError(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Payroll entry deleted",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Clear Payroll Ledger --------------------
func (h *EmployeeHandler) DeleteLedger(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		utils.BadRequest(w, errors.New("missing required query param: name"))
		return
	}

	if err := h.DB.DeleteLedger(r.Context(), name); err != nil {
		h.errorLog.Println("ERROR_01_DeleteLedger:", err)
		utils.ServerError(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Payroll ledger cleared",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
