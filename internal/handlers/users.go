package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"careclock-backend/internal/middleware"
	"careclock-backend/internal/models"
	"careclock-backend/internal/policy"
	"careclock-backend/internal/store"
	"careclock-backend/pkg/utils"
)

// GetMe returns the caller's profile including shift statistics.
func GetMe(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		user, err := users.GetByID(claims.UserID)
		if err != nil {
			log.Printf("❌ Error loading user: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if user == nil {
			utils.RespondError(w, http.StatusNotFound, "User not found")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    user.ToUserResponse(),
		})
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateMyRole switches the caller between CAREWORKER and MANAGER.
func UpdateMyRole(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		var req UpdateRoleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if !models.IsValidRole(req.Role) {
			utils.RespondError(w, http.StatusBadRequest, "Invalid role")
			return
		}

		if decision := policy.CanChangeOwnRole(claims.Role); !decision.Allowed {
			utils.RespondError(w, http.StatusForbidden, decision.Reason)
			return
		}

		if err := users.UpdateRole(claims.UserID, req.Role); err != nil {
			log.Printf("❌ Failed to update role: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update role")
			return
		}

		log.Printf("✅ Role changed: %s is now %s", claims.Email, req.Role)

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Role updated to " + req.Role + " successfully",
		})
	}
}

// GetAllUsers lists every user with their statistics. Managers only.
func GetAllUsers(users store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		if decision := policy.CanViewAllUsers(claims.Role); !decision.Allowed {
			utils.RespondError(w, http.StatusForbidden, decision.Reason)
			return
		}

		all, err := users.ListAll()
		if err != nil {
			log.Printf("❌ Failed to list users: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}

		responses := make([]models.UserResponse, 0, len(all))
		for _, u := range all {
			responses = append(responses, u.ToUserResponse())
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"users":   responses,
		})
	}
}
