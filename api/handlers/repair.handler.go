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

type RepairHandler struct {
	DB       *dbrepo.RepairRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewRepairHandler(db *dbrepo.RepairRepo, infoLog *log.Logger, errorLog *log.Logger) *RepairHandler {
	return &RepairHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// -------------------- Register New Repair Job --------------------
func (h *RepairHandler) AddRepair(w http.ResponseWriter, r *http.Request) {
	var job models.RepairJob
	if err := utils.ReadJSON(w, r, &job); err != nil {
		h.errorLog.Println("ERROR_01_AddRepair:", err)
		utils.BadRequest(w, err)
		return
	}

	if strings.TrimSpace(job.ClientName) == "" {
		utils.BadRequest(w, errors.New("client name is required"))
		return
	}

	if err := h.DB.AddRepair(r.Context(), &job); err != nil {
		h.errorLog.Println("ERROR_02_AddRepair:", err)
		utils.BadRequest(w, err)
		return
	}

	h.infoLog.Printf("Registered repair job #%d for %s", job.ID, job.ClientName)

	resp := struct {
		Error   bool              `json:"error"`
		Status  string            `json:"status"`
		Message string            `json:"message"`
		Job     *models.RepairJob `json:"job"`
	}{
		Error:   false,
		Message: "Repair job registered successfully",
		Job:     &job,
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

func (h *RepairHandler) writeJobList(w http.ResponseWriter, jobs []*models.RepairJob, err error, tag string) {
	if err != nil {
		h.errorLog.Println("ERROR_01_"+tag+":", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error   bool                `json:"error"`
		Status  string              `json:"status"`
		Message string              `json:"message"`
		Jobs    []*models.RepairJob `json:"jobs"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Message = "Repair jobs fetched successfully"
	resp.Jobs = jobs

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Job Lists --------------------
func (h *RepairHandler) GetAllRepairs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.DB.AllRepairs(r.Context())
	h.writeJobList(w, jobs, err, "GetAllRepairs")
}

func (h *RepairHandler) GetActiveRepairs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.DB.ActiveRepairs(r.Context())
	h.writeJobList(w, jobs, err, "GetActiveRepairs")
}

func (h *RepairHandler) GetJobHistory(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.DB.JobHistory(r.Context())
	h.writeJobList(w, jobs, err, "GetJobHistory")
}

// -------------------- Get Single Job --------------------
func (h *RepairHandler) GetRepair(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid id"))
		return
	}

	job, err := h.DB.GetRepair(r.Context(), id)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetRepair:", err)
		utils.ServerError(w, err)
		return
	}
	if job == nil {
		utils.NotFound(w, errors.New("repair job not found"))
		return
	}

	resp := struct {
		Error   bool              `json:"error"`
		Status  string            `json:"status"`
		Message string            `json:"message"`
		Job     *models.RepairJob `json:"job"`
	}{
		Error:   false,
		Message: "Repair job fetched successfully",
		Job:     job,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Save Job Progress --------------------
func (h *RepairHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var job models.RepairJob
	if err := utils.ReadJSON(w, r, &job); err != nil {
		h.errorLog.Println("ERROR_01_SaveProgress:", err)
		utils.BadRequest(w, err)
		return
	}

	if job.ID == 0 {
		utils.BadRequest(w, errors.New("job id is required"))
		return
	}

	if err := h.DB.SaveProgress(r.Context(), &job); err != nil {
		h.errorLog.Println("ERROR_02_SaveProgress:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Job progress saved",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Close and Deliver Job --------------------
func (h *RepairHandler) CloseJob(w http.ResponseWriter, r *http.Request) {
	var job models.RepairJob
	if err := utils.ReadJSON(w, r, &job); err != nil {
		h.errorLog.Println("ERROR_01_CloseJob:", err)
		utils.BadRequest(w, err)
		return
	}

	if job.ID == 0 {
		utils.BadRequest(w, errors.New("job id is required"))
		return
	}

	if err := h.DB.CloseJob(r.Context(), &job); err != nil {
		h.errorLog.Println("ERROR_02_CloseJob:", err)
		utils.BadRequest(w, err)
		return
	}

	h.infoLog.Printf("Closed repair job #%d", job.ID)

	resp := struct {
		Error   bool              `json:"error"`
		Status  string            `json:"status"`
		Message string            `json:"message"`
		Job     *models.RepairJob `json:"job"`
	}{
		Error:   false,
		Message: "Job closed and delivered",
		Job:     &job,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
