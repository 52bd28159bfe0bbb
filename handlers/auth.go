package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"timeclock/config"
	"timeclock/database"
	"timeclock/middleware"
	"timeclock/models"
)

type AuthHandler struct {
	config *config.Config
	logger *zap.Logger
}

func NewAuthHandler(cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{config: cfg, logger: logger}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token              string      `json:"token"`
	Role               models.Role `json:"role"`
	MustChangePassword bool        `json:"must_change_password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !bindJSON(w, r, &req) {
		return
	}

	db := database.GetDB()

	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		respondMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	now := time.Now().UTC()
	if user.Locked(now) {
		respondMessage(w, http.StatusForbidden, "account temporarily locked, try again later")
		return
	}
	if !user.IsActive {
		respondMessage(w, http.StatusForbidden, "account is disabled")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.registerFailedAttempt(&user, now)
		respondMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if user.FailedAttempts > 0 || user.LockedUntil != nil {
		db.Model(&user).Updates(map[string]interface{}{
			"failed_attempts": 0,
			"locked_until":    nil,
		})
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token:              token,
		Role:               user.Role,
		MustChangePassword: user.MustChangePassword,
	})
}

// registerFailedAttempt counts the miss and locks the account once the
// threshold is hit.
func (h *AuthHandler) registerFailedAttempt(user *models.User, now time.Time) {
	db := database.GetDB()

	attempts := user.FailedAttempts + 1
	if attempts >= h.config.MaxLoginAttempts {
		lockedUntil := now.Add(h.config.LockoutDuration)
		db.Model(user).Updates(map[string]interface{}{
			"failed_attempts": 0,
			"locked_until":    lockedUntil,
		})
		h.logger.Warn("account locked after repeated failed logins",
			zap.String("username", user.Username),
			zap.Time("locked_until", lockedUntil),
		)
		return
	}
	db.Model(user).Update("failed_attempts", attempts)
}

type registerRequest struct {
	Code     string `json:"code" validate:"required"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=5"`
	FullName string `json:"full_name" validate:"required,max=200"`
}

// Register creates an account from a single-use invite code and the
// collaborator profile behind it.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !bindJSON(w, r, &req) {
		return
	}

	db := database.GetDB()

	var invite models.Invite
	if err := db.Where("code = ?", req.Code).First(&invite).Error; err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid invite code")
		return
	}
	if !invite.IsValid() {
		respondMessage(w, http.StatusBadRequest, "invite code has expired or already been used")
		return
	}

	var existing models.User
	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		respondMessage(w, http.StatusConflict, "username already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("password hash failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	user := models.User{
		Username:           req.Username,
		PasswordHash:       string(hashedPassword),
		Role:               invite.Role,
		MustChangePassword: false,
		IsActive:           true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		collaborator := models.Collaborator{
			UserID:   user.ID,
			FullName: req.FullName,
			Active:   true,
		}
		if err := tx.Create(&collaborator).Error; err != nil {
			return err
		}
		invite.Used = true
		return tx.Save(&invite).Error
	})
	if err != nil {
		h.logger.Error("registration failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "failed to create account")
		return
	}

	token, err := middleware.GenerateToken(&user, h.config.JWTExpiration)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, loginResponse{
		Token: token,
		Role:  user.Role,
	})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=5"`
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changePasswordRequest
	if !bindJSON(w, r, &req) {
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		respondMessage(w, http.StatusBadRequest, "current password is incorrect")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("password hash failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	user.PasswordHash = string(hashedPassword)
	user.MustChangePassword = false
	if err := database.GetDB().Save(user).Error; err != nil {
		h.logger.Error("password update failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "failed to update password")
		return
	}

	// Reissue the token so the client does not keep a pre-change one
	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		h.logger.Error("token generation failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		Token: token,
		Role:  user.Role,
	})
}

// Profile returns the caller's user and collaborator records.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if user == nil {
		respondMessage(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	collaborator, err := collaboratorForUser(user.ID)
	if err != nil {
		h.logger.Error("collaborator lookup failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":         user,
		"collaborator": collaborator,
	})
}
