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

type LedgerHandler struct {
	DB       *dbrepo.LedgerRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewLedgerHandler(db *dbrepo.LedgerRepo, infoLog *log.Logger, errorLog *log.Logger) *LedgerHandler {
	return &LedgerHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// -------------------- Add Ledger Entry --------------------
func (h *LedgerHandler) AddEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.LedgerEntry
	if err := utils.ReadJSON(w, r, &entry); err != nil {
		h.errorLog.Println("ERROR_01_AddEntry:", err)
		utils.BadRequest(w, err)
		return
	}

	if strings.TrimSpace(entry.PartyName) == "" {
		utils.BadRequest(w, errors.New("party name is required"))
		return
	}

	if err := h.DB.AddEntry(r.Context(), &entry); err != nil {
		h.errorLog.Println("ERROR_02_AddEntry:", err)
		utils.BadRequest(w, err)
		return
	}

	resp := struct {
		Error   bool                `json:"error"`
		Status  string              `json:"status"`
		Message string              `json:"message"`
		Entry   *models.LedgerEntry `json:"entry"`
	}{
		Error:   false,
		Message: "Ledger entry added successfully",
		Entry:   &entry,
	}

	utils.WriteJSON(w, http.StatusCreated, resp)
}

// -------------------- Get Party Ledger --------------------
func (h *LedgerHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	party := r.URL.Query().Get("party")
	if strings.TrimSpace(party) == "" {
		utils.BadRequest(w, errors.New("missing required query param: party"))
		return
	}

	entries, err := h.DB.GetEntries(r.Context(), party)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetEntries:", err)
		utils.ServerError(w, err)
		return
	}

	var resp struct {
		Error   bool                  `json:"error"`
		Status  string                `json:"status"`
		Message string                `json:"message"`
		Entries []*models.LedgerEntry `json:"entries"`
	}

	resp.Error = false
	resp.Status = "success"
	resp.Message = "Ledger fetched successfully"
	resp.Entries = entries

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Delete Ledger Entry --------------------
func (h *LedgerHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid id"))
		return
	}

	if err := h.DB.DeleteEntry(r.Context(), id); err != nil {
		h.errorLog.Println("ERROR_01_DeleteEntry:", err)
		utils.ServerError(w, err)
		return
	}

	resp := models.Response{
		Error:   false,
		Message: "Ledger entry deleted",
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}

// -------------------- Get Party Balance --------------------
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	party := r.URL.Query().Get("party")
	if strings.TrimSpace(party) == "" {
		utils.BadRequest(w, errors.New("missing required query param: party"))
		return
	}

	balance, err := h.DB.Balance(r.Context(), party)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetBalance:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"party":   party,
		"balance": balance,
	})
}

// -------------------- List All Parties --------------------
func (h *LedgerHandler) ListParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.DB.ListParties(r.Context())
	if err != nil {
		h.errorLog.Println("ERROR_01_ListParties:", err)
		utils.ServerError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"parties": parties,
	})
}

// -------------------- Get Party Statement --------------------
func (h *LedgerHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	party := r.URL.Query().Get("party")
	if strings.TrimSpace(party) == "" {
		utils.BadRequest(w, errors.New("missing required query param: party"))
		return
	}

	statement, err := h.DB.Statement(r.Context(), party)
	if err != nil {
		h.errorLog.Println("ERROR_01_GetStatement:", err)
		utils.ServerError(w, err)
		return
	}

	resp := struct {
		Error     bool              `json:"error"`
		Status    string            `json:"status"`
		Message   string            `json:"message"`
		Statement *models.Statement `json:"statement"`
	}{
		Error:     false,
		Message:   "Statement built successfully",
		Statement: statement,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
