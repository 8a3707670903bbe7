package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/store"
)

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	activities := store.Load[model.Activity](s.store, model.KeyActivityLog)

	if q := strings.ToLower(parseSearch(r)); q != "" {
		filtered := make([]model.Activity, 0, len(activities))
		for _, a := range activities {
			if strings.Contains(strings.ToLower(a.Description), q) ||
				strings.Contains(strings.ToLower(a.Category), q) ||
				strings.Contains(strings.ToLower(a.AnimalName), q) {
				filtered = append(filtered, a)
			}
		}
		activities = filtered
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": activities, "total": len(activities)})
}

func (s *Server) handleCreateActivity(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Category    string `json:"category"`
		Description string `json:"description"`
		Date        string `json:"date"`
		AnimalID    string `json:"animalId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		respondError(w, http.StatusBadRequest, "description is required")
		return
	}
	if _, ok := model.ParseDate(in.Date); !ok {
		respondError(w, http.StatusBadRequest, "date must be an ISO date")
		return
	}

	activity := model.Activity{
		ID:          uuid.NewString(),
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		Date:        in.Date,
		AnimalID:    strings.TrimSpace(in.AnimalID),
	}
	// Denormalize the animal's name and category so the log renders without
	// a join, even after the animal is deleted.
	if activity.AnimalID != "" {
		animals := store.Load[model.Animal](s.store, model.KeyLivestock)
		if a, ok := model.FindAnimal(animals, activity.AnimalID); ok {
			activity.AnimalName = a.Name
			activity.AnimalCategory = a.Category
		}
	}

	activities := store.Load[model.Activity](s.store, model.KeyActivityLog)
	activities = append(activities, activity)
	s.store.Save(model.KeyActivityLog, activities)

	respondJSON(w, http.StatusCreated, map[string]any{"activity": activity})
}

func (s *Server) handleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	activities := store.Load[model.Activity](s.store, model.KeyActivityLog)
	for i := range activities {
		if activities[i].ID != id {
			continue
		}
		activities = append(activities[:i], activities[i+1:]...)
		s.store.Save(model.KeyActivityLog, activities)
		respondJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	respondError(w, http.StatusNotFound, "activity not found")
}
