package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"careclock-backend/internal/middleware"
	"careclock-backend/internal/models"
	"careclock-backend/internal/policy"
	"careclock-backend/internal/store"
	"careclock-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type LocationRequest struct {
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    *float64 `json:"radius"`
	StartTime *string  `json:"start_time"`
	EndTime   *string  `json:"end_time"`
}

// validateLocationRequest checks required fields and coordinate ranges.
// Pointer fields distinguish "missing" from zero, so a latitude of 0 is valid.
func validateLocationRequest(req *LocationRequest) (status int, message string) {
	if req.Name == nil || *req.Name == "" ||
		req.Latitude == nil || req.Longitude == nil || req.Radius == nil ||
		req.StartTime == nil || *req.StartTime == "" ||
		req.EndTime == nil || *req.EndTime == "" {
		return http.StatusBadRequest, "All fields are required"
	}
	if *req.Latitude < -90 || *req.Latitude > 90 {
		return http.StatusBadRequest, "Latitude must be between -90 and 90"
	}
	if *req.Longitude < -180 || *req.Longitude > 180 {
		return http.StatusBadRequest, "Longitude must be between -180 and 180"
	}
	if *req.Radius <= 0 {
		return http.StatusBadRequest, "Radius must be greater than 0"
	}
	return 0, ""
}

// GetLocations lists all registered work zones with creator info.
func GetLocations(locations store.LocationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := locations.List()
		if err != nil {
			log.Printf("❌ Failed to list locations: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to fetch locations")
			return
		}

		responses := make([]models.LocationResponse, 0, len(list))
		for i := range list {
			responses = append(responses, list[i].ToResponse())
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"locations": responses,
		})
	}
}

// CreateLocation registers a new circular work zone. Radius is in kilometers.
func CreateLocation(locations store.LocationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		log.Printf("📥 REQUEST: POST /api/locations - %s", claims.Email)

		var req LocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if status, message := validateLocationRequest(&req); status != 0 {
			utils.RespondError(w, status, message)
			return
		}

		now := time.Now().Unix()
		location := &models.Location{
			ID:        uuid.New().String(),
			Name:      *req.Name,
			Latitude:  *req.Latitude,
			Longitude: *req.Longitude,
			Radius:    *req.Radius,
			StartTime: *req.StartTime,
			EndTime:   *req.EndTime,
			CreatedBy: claims.UserID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := locations.Create(location); err != nil {
			log.Printf("❌ Failed to create location: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create location")
			return
		}

		log.Printf("✅ Location created: %s (%.4f, %.4f) r=%.1fkm", location.Name, location.Latitude, location.Longitude, location.Radius)

		utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
			"success":  true,
			"message":  "Location created successfully",
			"location": location.ToResponse(),
		})
	}
}

// UpdateLocation replaces a zone's fields. Only the creator or a manager may
// modify it.
func UpdateLocation(locations store.LocationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		locationID := chi.URLParam(r, "locationID")

		var req LocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if status, message := validateLocationRequest(&req); status != 0 {
			utils.RespondError(w, status, message)
			return
		}

		existing, err := locations.GetByID(locationID)
		if err != nil {
			log.Printf("❌ Failed to load location: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if existing == nil {
			utils.RespondError(w, http.StatusNotFound, "Location not found")
			return
		}

		if decision := policy.CanModifyLocation(claims.Role, claims.UserID, existing.CreatedBy); !decision.Allowed {
			utils.RespondError(w, http.StatusForbidden, decision.Reason)
			return
		}

		existing.Name = *req.Name
		existing.Latitude = *req.Latitude
		existing.Longitude = *req.Longitude
		existing.Radius = *req.Radius
		existing.StartTime = *req.StartTime
		existing.EndTime = *req.EndTime
		existing.UpdatedAt = time.Now().Unix()

		if err := locations.Update(existing); err != nil {
			log.Printf("❌ Failed to update location: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to update location")
			return
		}

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"message":  "Location updated successfully",
			"location": existing.ToResponse(),
		})
	}
}

// DeleteLocation removes a zone. Shifts that reference it keep their history;
// the foreign key nulls out on delete.
func DeleteLocation(locations store.LocationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetUserFromContext(r)
		if !ok {
			utils.RespondError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		locationID := chi.URLParam(r, "locationID")

		existing, err := locations.GetByID(locationID)
		if err != nil {
			log.Printf("❌ Failed to load location: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if existing == nil {
			utils.RespondError(w, http.StatusNotFound, "Location not found")
			return
		}

		if decision := policy.CanModifyLocation(claims.Role, claims.UserID, existing.CreatedBy); !decision.Allowed {
			utils.RespondError(w, http.StatusForbidden, decision.Reason)
			return
		}

		if err := locations.Delete(locationID); err != nil {
			log.Printf("❌ Failed to delete location: %v", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to delete location")
			return
		}

		log.Printf("✅ Location deleted: %s (%s)", existing.Name, locationID)

		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Location deleted successfully",
		})
	}
}
