package handlers

import (
	"log"
	"net/http"

	"careclock-backend/internal/apperrors"
	"careclock-backend/pkg/utils"
)

// respondServiceError maps an application error to its HTTP status and
// surfaces the message verbatim. Anything outside the taxonomy is an
// internal error.
func respondServiceError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("❌ Internal error: %v", err)
		utils.RespondError(w, status, "Internal server error")
		return
	}
	utils.RespondError(w, status, err.Error())
}
