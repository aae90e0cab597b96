package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/voltedge/workshop-api/internal/dbrepo"
	"github.com/voltedge/workshop-api/internal/models"
	"github.com/voltedge/workshop-api/internal/utils"
)

type AuthHandler struct {
	DB        *dbrepo.DBRepository
	JWTConfig models.JWTConfig
	infoLog   *log.Logger
	errorLog  *log.Logger
}

func NewAuthHandler(db *dbrepo.DBRepository, JWTConfig models.JWTConfig, infoLog *log.Logger, errorLog *log.Logger) *AuthHandler {
	return &AuthHandler{
		DB:        db,
		JWTConfig: JWTConfig,
		infoLog:   infoLog,
		errorLog:  errorLog,
	}
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("ERROR_01_Signin:", err)
		utils.BadRequest(w, err)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorLog.Println("ERROR_02_Signin:", err)
		utils.BadRequest(w, err)
		return
	}

	user, err := h.DB.Employee.GetEmployeeByUsername(r.Context(), req.Username)
	if err != nil {
		h.errorLog.Println("ERROR_03_Signin:", err)
		utils.ServerError(w, err)
		return
	}
	if user == nil || !utils.CheckPassword(req.Password, user.Password) {
		h.errorLog.Println("ERROR_04_Signin: invalid credentials")
		utils.Unauthorized(w, errors.New("invalid username or password"))
		return
	}

	token, err := utils.GenerateJWT(models.JWT{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, h.JWTConfig)
	if err != nil {
		h.errorLog.Println("ERROR_05_Signin: failed to generate JWT", err)
		utils.ServerError(w, err)
		return
	}

	resp := struct {
		Error    bool             `json:"error"`
		Token    string           `json:"token"`
		Employee *models.Employee `json:"employee"`
	}{
		Error:    false,
		Token:    token,
		Employee: user,
	}

	utils.WriteJSON(w, http.StatusOK, resp)
}
