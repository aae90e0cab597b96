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

type CustomerHandler struct {
	DB       *dbrepo.DBRepository
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewCustomerHandler(db *dbrepo.DBRepository, infoLog *log.Logger, errorLog *log.Logger) *CustomerHandler {
	return &CustomerHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// -------------------- Add New Customer --------------------
func (c *CustomerHandler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := utils.ReadJSON(w, r, &customer); err != nil {
		c.errorLog.Println("ERROR_01_AddCustomer:", err)
		utils.BadRequest(w, err)
		return
	}

	if strings.TrimSpace(customer.Name) == "" {
		utils.BadRequest(w, errors.New("customer name is required"))
		return
	}

	if err := c.DB.Customer.AddCustomer(r.Context(), &customer); err != nil {
		c.errorLog.Println("ERROR_02_AddCustomer:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Customer *models.Customer `json:"customer"`
	}{
		Error:    false,
		Message:  "Customer added successfully",
		Customer: &customer,
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// -------------------- Get Customer List --------------------
func (c *CustomerHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.DB.Customer.GetCustomers(r.Context())
	if err != nil {
		c.errorLog.Println("ERROR_01_GetCustomers:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error     bool               `json:"error"`
		Status    string             `json:"status"`
		Message   string             `json:"message"`
		Customers []*models.Customer `json:"customers"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Message = "Customer list fetched successfully"
	resp.Customers = customers

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Get Customer By Name --------------------
func (c *CustomerHandler) GetCustomerByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		utils.BadRequest(w, errors.New("missing required query param: name"))
		return
	}

	customer, err := c.DB.Customer.GetCustomerByName(r.Context(), name)
	if err != nil {
		c.errorLog.Println("ERROR_01_GetCustomerByName:", err)
		utils.ServerError(w, err)
		return
	}
	if customer == nil {
		utils.NotFound(w, errors.New("customer not found"))
		return
	}

	resp := struct {
		Error    bool             `json:"error"`
		Status   string           `json:"status"`
		Message  string           `json:"message"`
		Customer *models.Customer `json:"customer"`
	}{
		Error:    false,
		Message:  "Customer fetched successfully",
		Customer: customer,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Update Customer Info --------------------
func (c *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var customer models.Customer
	if err := utils.ReadJSON(w, r, &customer); err != nil {
		c.errorLog.Println("ERROR_01_UpdateCustomer:", err)
		utils.BadRequest(w, err)
		return
	}

	if customer.ID == 0 {
		utils.BadRequest(w, errors.New("customer id is required"))
		return
	}

	if err := c.DB.Customer.UpdateCustomer(r.Context(), &customer); err != nil {
		c.errorLog.Println("ERROR_02_UpdateCustomer:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Customer info updated successfully",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Delete Customer (Directory Only) --------------------
func (c *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid id"))
		return
	}

	if err := c.DB.Customer.DeleteCustomer(r.Context(), id); err != nil {
		c.errorLog.Println("ERROR_01_DeleteCustomer:", err)
		utils.ServerError(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Customer removed from directory; ledger history kept",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Purge Customer (Full Wipe) --------------------
func (c *CustomerHandler) PurgeCustomer(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		utils.BadRequest(w, errors.New("missing required query param: name"))
		return
	}

	if err := c.DB.Customer.PurgeCustomer(r.Context(), name); err != nil {
		c.errorLog.Println("ERROR_01_PurgeCustomer:", err)
		utils.ServerError(w, err)
		return
	}

	c.infoLog.Printf("Purged all records for party %q", name)

	resp := models.Response{
		Error:   false,
		Message: "Customer and all related records deleted",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
