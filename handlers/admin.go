package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timeclock/config"
	"timeclock/database"
	"timeclock/middleware"
	"timeclock/models"
)

type AdminHandler struct {
	config *config.Config
	logger *zap.Logger
}

func NewAdminHandler(cfg *config.Config, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{config: cfg, logger: logger}
}

// ListCollaborators returns the registry with login info, ordered by
// name.
func (h *AdminHandler) ListCollaborators(w http.ResponseWriter, r *http.Request) {
	var collaborators []models.Collaborator
	err := database.GetDB().
		Preload("User").
		Order("full_name asc").
		Find(&collaborators).Error
	if err != nil {
		h.logger.Error("collaborator query failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, collaborators)
}

type createCollaboratorRequest struct {
	FullName       string `json:"full_name" validate:"required,max=200"`
	CorporateEmail string `json:"corporate_email" validate:"required,email"`
	Username       string `json:"username" validate:"required,min=3,max=100"`
	TempPassword   string `json:"temp_password" validate:"required,min=5"`
	Role           string `json:"role" validate:"omitempty,oneof=EMPLOYEE MANAGER HR"`
	RegistrationNo string `json:"registration_no" validate:"max=50"`
	Department     string `json:"department" validate:"max=100"`
	Position       string `json:"position" validate:"max=100"`
	AdmissionDate  string `json:"admission_date" validate:"omitempty,datetime=2006-01-02"`
}

// CreateCollaborator provisions a login user with a temporary password
// and the registry entry behind it. The user must change the password
// on first login.
func (h *AdminHandler) CreateCollaborator(w http.ResponseWriter, r *http.Request) {
	var req createCollaboratorRequest
	if !bindJSON(w, r, &req) {
		return
	}

	role := models.RoleEmployee
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	var admissionDate *time.Time
	if req.AdmissionDate != "" {
		t, _ := time.ParseInLocation("2006-01-02", req.AdmissionDate, time.UTC)
		admissionDate = &t
	}

	db := database.GetDB()

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		respondMessage(w, http.StatusConflict, "username already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.TempPassword), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("password hash failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	user := models.User{
		Username:           req.Username,
		PasswordHash:       string(hashedPassword),
		Role:               role,
		MustChangePassword: true,
		IsActive:           true,
	}
	collaborator := models.Collaborator{
		FullName:       req.FullName,
		CorporateEmail: req.CorporateEmail,
		RegistrationNo: req.RegistrationNo,
		Department:     req.Department,
		Position:       req.Position,
		AdmissionDate:  admissionDate,
		Active:         true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		collaborator.UserID = user.ID
		return tx.Create(&collaborator).Error
	})
	if err != nil {
		h.logger.Error("collaborator creation failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "failed to create collaborator")
		return
	}

	collaborator.User = &user
	respondJSON(w, http.StatusCreated, collaborator)
}

// ListUsers returns all accounts with lockout state for monitoring.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := database.GetDB().Order("username asc").Find(&users).Error; err != nil {
		h.logger.Error("user query failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// UnlockUser clears a lockout and reactivates the account.
func (h *AdminHandler) UnlockUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	db := database.GetDB()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		respondMessage(w, http.StatusNotFound, "user not found")
		return
	}

	err = db.Model(&user).Updates(map[string]interface{}{
		"locked_until":    nil,
		"failed_attempts": 0,
		"is_active":       true,
	}).Error
	if err != nil {
		h.logger.Error("unlock failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "user unlocked"})
}

type createInviteRequest struct {
	Role string `json:"role" validate:"required,oneof=EMPLOYEE MANAGER HR"`
}

// CreateInvite issues a single-use, expiring registration code.
func (h *AdminHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req createInviteRequest
	if !bindJSON(w, r, &req) {
		return
	}

	invite := models.Invite{
		Code:      models.GenerateInviteCode(),
		Role:      models.Role(req.Role),
		CreatedBy: user.ID,
		ExpiresAt: time.Now().Add(h.config.InviteExpiration),
	}

	if err := database.GetDB().Create(&invite).Error; err != nil {
		h.logger.Error("invite creation failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "failed to create invite")
		return
	}

	respondJSON(w, http.StatusCreated, invite)
}
