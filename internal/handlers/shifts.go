package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"careclock-backend/internal/middleware"
	"careclock-backend/internal/models"
	"careclock-backend/internal/policy"
	"careclock-backend/internal/services"
	"careclock-backend/internal/store"
	"careclock-backend/internal/websocket"
	"careclock-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
)

type StartShiftRequest struct {
	LocationID *string `json:"location_id"`
	Note       *string `json:"note"`
}

type EndShiftRequest struct {
	Note *string `json:"note"`
}

type UpdateNoteRequest struct {
	Note *string `json:"note"`
}

// StartShift clocks the caller in. Only one IN_PROGRESS shift per worker is
// allowed; a second clock-in is rejected with a conflict.
func StartShift(svc *services.ShiftService, hub *websocket.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		log.Printf("📥 REQUEST: POST /api/shifts/start - %s", claims.Email)

		var req StartShiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		shift, err := svc.StartShift(claims.UserID, claims.Role, req.LocationID, req.Note)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		log.Printf("✅ Shift started: %s (%s)", shift.ID, claims.Email)

		hub.BroadcastToRole(models.RoleManager, map[string]interface{}{
			"type":     "shift_update",
			"action":   "started",
			"user_id":  claims.UserID,
			"shift_id": shift.ID,
		})

		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"message": "Shift started successfully",
			"shift":   shift.ToResponse(),
		})
	}
}

// EndShift clocks the caller out, computes total hours and refreshes the
// worker's cached statistics.
func EndShift(svc *services.ShiftService, hub *websocket.Hub, fcm *services.FCMService, fcmTokens store.FCMTokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		log.Printf("📥 REQUEST: POST /api/shifts/end - %s", claims.Email)

		var req EndShiftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		shift, message, err := svc.EndShift(claims.UserID, claims.Role, req.Note)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		log.Printf("✅ Shift completed: %s (%s, %.2f hours)", shift.ID, claims.Email, shift.TotalHours)

		hub.BroadcastToRole(models.RoleManager, map[string]interface{}{
			"type":     "shift_update",
			"action":   "completed",
			"user_id":  claims.UserID,
			"shift_id": shift.ID,
		})

		if fcm != nil {
			tokens, tokenErr := fcmTokens.ListForUser(claims.UserID)
			if tokenErr != nil {
				log.Printf("⚠️ Failed to load FCM tokens: %v", tokenErr)
			}
			for _, t := range tokens {
				if sendErr := fcm.SendShiftCompletedNotification(t.Token, shift.ID, message); sendErr != nil {
					log.Printf("⚠️ FCM send failed: %v", sendErr)
				}
			}
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": message,
			"shift":   shift.ToResponse(),
		})
	}
}

// UpdateShiftNote edits the note on a shift. Careworkers only, and only on
// their own shifts.
func UpdateShiftNote(svc *services.ShiftService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		shiftID := chi.URLParam(r, "shiftID")
		if shiftID == "" {
			utils.RespondError(w, http.StatusBadRequest, "Shift ID is required")
			return
		}

		var req UpdateNoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		shift, err := svc.UpdateNote(shiftID, claims.UserID, claims.Role, req.Note)
		if err != nil {
			respondServiceError(w, err)
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Note updated successfully",
			"shift":   shift.ToResponse(),
		})
	}
}

// GetMyShifts returns the caller's shift history, newest first.
func GetMyShifts(shifts store.ShiftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		list, err := shifts.ListForUser(claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to list shifts: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch shifts")
			return
		}

		responses := make([]models.ShiftResponse, 0, len(list))
		for i := range list {
			responses = append(responses, list[i].ToResponse())
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"shifts":  responses,
		})
	}
}

// GetAllShifts returns every shift across all workers. Managers only.
func GetAllShifts(shifts store.ShiftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		if decision := policy.CanViewAllShifts(claims.Role); !decision.Allowed {
			utils.RespondError(w, http.StatusForbidden, decision.Reason)
			return
		}

		list, err := shifts.ListAll()
		if err != nil {
			log.Printf("❌ Failed to list shifts: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch shifts")
			return
		}

		responses := make([]models.ShiftResponse, 0, len(list))
		for i := range list {
			responses = append(responses, list[i].ToResponse())
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"shifts":  responses,
		})
	}
}

// GetCurrentShift returns the caller's IN_PROGRESS shift, or null if the
// caller is not clocked in.
func GetCurrentShift(shifts store.ShiftStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		shift, err := shifts.FindActive(claims.UserID)
		if err != nil {
			log.Printf("❌ Failed to load current shift: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch current shift")
			return
		}

		var resp interface{}
		if shift != nil {
			resp = shift.ToResponse()
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"shift":   resp,
		})
	}
}
