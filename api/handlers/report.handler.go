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

type ReportHandler struct {
	DB       *dbrepo.ReportRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewReportHandler(db *dbrepo.ReportRepo, infoLog *log.Logger, errorLog *log.Logger) *ReportHandler {
	return &ReportHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// -------------------- Technician Workload --------------------
func (h *ReportHandler) GetWorkload(w http.ResponseWriter, r *http.Request) {
	workload, err := h.DB.Workload(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetWorkload:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error    bool                       `json:"error"`
		Status   string                     `json:"status"`
		Workload []*models.EmployeeWorkload `json:"workload"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Workload = workload

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Technician Performance --------------------
func (h *ReportHandler) GetPerformance(w http.ResponseWriter, r *http.Request) {
	performance, err := h.DB.Performance(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetPerformance:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error       bool                          `json:"error"`
		Status      string                        `json:"status"`
		Performance []*models.EmployeePerformance `json:"performance"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Performance = performance

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Repair Revenue --------------------
func (h *ReportHandler) GetRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.DB.Revenue(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetRevenue:", err)
		utils.ServerError(w, err)
		return
	}

	resp := struct {
		Error   bool                  `json:"error"`
		Status  string                `json:"status"`
		Revenue *models.RevenueTotals `json:"revenue"`
	}{
		Error:   false,
		Revenue: revenue,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Parts vs Service Split --------------------
func (h *ReportHandler) GetPartsVsService(w http.ResponseWriter, r *http.Request) {
	split, err := h.DB.PartsVsService(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetPartsVsService:", err)
		utils.ServerError(w, err)
		return
	}

	resp := struct {
		Error  bool              `json:"error"`
		Status string            `json:"status"`
		Split  *models.CostSplit `json:"split"`
	}{
		Error: false,
		Split: split,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Sales Trend --------------------
func (h *ReportHandler) GetSalesTrend(w http.ResponseWriter, r *http.Request) {
	days := 30
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			utils.BadRequest(w, errors.New("invalid days"))
			return
		}
		days = parsed
	}

	trend, err := h.DB.SalesTrend(r.Context(), days)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetSalesTrend:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error  bool                  `json:"error"`
		Status string                `json:"status"`
		Trend  []*models.TrendPoint `json:"trend"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Trend = trend

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Customer Recovery List --------------------
func (h *ReportHandler) GetRecoveryList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.RecoveryList(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_GetRecoveryList:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error      bool                  `json:"error"`
		Status     string                `json:"status"`
		Categories []string              `json:"categories"`
		Rows       []*models.RecoveryRow `json:"rows"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Categories = dbrepo.RecoveryCategories
	resp.Rows = rows

	utils.WriteJSON(w, http.StatusOK, resp)
}
