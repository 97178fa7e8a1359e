package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"careclock-backend/internal/geo"
	"careclock-backend/internal/middleware"
	"careclock-backend/internal/models"
	"careclock-backend/internal/services"
	"careclock-backend/internal/store"
	"careclock-backend/pkg/utils"
)

type ReportLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy"`
	Timestamp *int64   `json:"timestamp"`
}

type RegisterFCMTokenRequest struct {
	Token      string `json:"token"`
	DeviceType string `json:"device_type"`
}

// ReportLocation ingests one live GPS coordinate from a worker's device. The
// same path feeds the websocket location_update messages; this is the HTTP
// fallback for clients without a socket.
func ReportLocation(svc *services.GeofenceService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		var req ReportLocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Latitude == nil || req.Longitude == nil {
			utils.RespondError(w, http.StatusBadRequest, "Latitude and longitude are required")
			return
		}

		timestamp := time.Now().Unix()
		if req.Timestamp != nil {
			timestamp = *req.Timestamp
		}

		coord := geo.Coordinate{
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
			Accuracy:  req.Accuracy,
		}

		event, err := svc.ProcessLocation(claims.UserID, coord, timestamp)
		if err != nil {
			log.Printf("❌ Failed to process location: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to process location")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"event":   event,
		})
	}
}

// RegisterFCMToken stores a device's push token so geofence and shift
// notifications can reach it.
func RegisterFCMToken(tokens store.FCMTokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		var req RegisterFCMTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Token == "" {
			utils.RespondError(w, http.StatusBadRequest, "Token is required")
			return
		}
		if req.DeviceType != "ios" && req.DeviceType != "android" {
			utils.RespondError(w, http.StatusBadRequest, "Device type must be 'ios' or 'android'")
			return
		}

		now := time.Now().Unix()
		token := &models.FCMToken{
			UserID:     claims.UserID,
			Token:      req.Token,
			DeviceType: req.DeviceType,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := tokens.Upsert(token); err != nil {
			log.Printf("❌ Failed to save FCM token: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to register token")
			return
		}

		log.Printf("✅ FCM token registered for %s (%s)", claims.Email, req.DeviceType)

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Token registered successfully",
		})
	}
}
