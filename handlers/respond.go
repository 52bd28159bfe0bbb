package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"timeclock/core"
	"timeclock/database"
	"timeclock/models"
)

var validate = validator.New()

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"message": message})
}

// bindJSON decodes and validates a request payload, answering 400
// itself on failure.
func bindJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		respondMessage(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return false
	}
	return true
}

// respondCoreError maps the engine's error taxonomy onto HTTP: policy
// rejections are the caller's fault, everything else is a system fault
// that gets logged and hidden behind a 500.
func respondCoreError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var pe *core.PolicyError
	if errors.As(err, &pe) {
		status := http.StatusBadRequest
		if errors.Is(err, core.ErrNotPending) {
			status = http.StatusConflict
		}
		respondMessage(w, status, pe.Reason)
		return
	}

	logger.Error("request failed", zap.Error(err))
	respondMessage(w, http.StatusInternalServerError, "internal error")
}

// collaboratorForUser resolves the registry entry behind a login user.
// Returns nil without error when the user has no collaborator profile.
func collaboratorForUser(userID uint) (*models.Collaborator, error) {
	var c models.Collaborator
	err := database.GetDB().Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host := r.RemoteAddr
	if i := strings.LastIndex(host, ":"); i > 0 {
		host = host[:i]
	}
	return host
}
