package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/store"
)

func (s *Server) handleAnimals(w http.ResponseWriter, r *http.Request) {
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category != "" {
		animals = model.AnimalsInCategory(animals, category)
	}
	if q := strings.ToLower(parseSearch(r)); q != "" {
		filtered := make([]model.Animal, 0, len(animals))
		for _, a := range animals {
			if strings.Contains(strings.ToLower(a.Name), q) ||
				strings.Contains(strings.ToLower(a.TagID), q) ||
				strings.Contains(strings.ToLower(a.Breed), q) {
				filtered = append(filtered, a)
			}
		}
		animals = filtered
	}

	respondJSON(w, http.StatusOK, map[string]any{"items": animals, "total": len(animals)})
}

func (s *Server) handleAnimal(w http.ResponseWriter, r *http.Request) {
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	a, ok := model.FindAnimal(animals, r.PathValue("id"))
	if !ok {
		respondError(w, http.StatusNotFound, "animal not found")
		return
	}

	// Sire/dam are weak references, resolved defensively for display.
	out := map[string]any{"animal": a}
	if sire, ok := model.FindAnimal(animals, a.SireID); ok {
		out["sireName"] = sire.Name
	}
	if dam, ok := model.FindAnimal(animals, a.DamID); ok {
		out["damName"] = dam.Name
	}
	respondJSON(w, http.StatusOK, out)
}

type animalInput struct {
	TagID     string `json:"tagId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Breed     string `json:"breed"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birthDate"`
	Status    string `json:"status"`
	Count     int    `json:"count"`
	SireID    string `json:"sireId"`
	DamID     string `json:"damId"`
}

func (in *animalInput) validate() (string, bool) {
	in.TagID = strings.TrimSpace(in.TagID)
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" || in.Category == "" {
		return "name and category are required", false
	}
	if in.BirthDate != "" {
		if _, ok := model.ParseDate(in.BirthDate); !ok {
			return "birthDate must be an ISO date", false
		}
	}
	if in.Count < 0 {
		return "count cannot be negative", false
	}
	if in.Status == "" {
		in.Status = "active"
	}
	return "", true
}

func (s *Server) handleCreateAnimal(w http.ResponseWriter, r *http.Request) {
	var in animalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg, ok := in.validate(); !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	animal := model.Animal{
		ID:                uuid.NewString(),
		TagID:             in.TagID,
		Name:              in.Name,
		Category:          in.Category,
		Breed:             in.Breed,
		Gender:            in.Gender,
		BirthDate:         in.BirthDate,
		Status:            in.Status,
		Count:             in.Count,
		SireID:            strings.TrimSpace(in.SireID),
		DamID:             strings.TrimSpace(in.DamID),
		HealthRecords:     make([]model.HealthRecord, 0),
		ProductionMetrics: make([]model.ProductionMetric, 0),
	}

	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	animals = append(animals, animal)
	s.store.Save(model.KeyLivestock, animals)

	respondJSON(w, http.StatusCreated, map[string]any{"animal": animal})
}

func (s *Server) handleUpdateAnimal(w http.ResponseWriter, r *http.Request) {
	var in animalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg, ok := in.validate(); !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	id := r.PathValue("id")
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	for i := range animals {
		if animals[i].ID != id {
			continue
		}
		animals[i].TagID = in.TagID
		animals[i].Name = in.Name
		animals[i].Category = in.Category
		animals[i].Breed = in.Breed
		animals[i].Gender = in.Gender
		animals[i].BirthDate = in.BirthDate
		animals[i].Status = in.Status
		animals[i].Count = in.Count
		animals[i].SireID = strings.TrimSpace(in.SireID)
		animals[i].DamID = strings.TrimSpace(in.DamID)
		s.store.Save(model.KeyLivestock, animals)
		respondJSON(w, http.StatusOK, map[string]any{"animal": animals[i]})
		return
	}
	respondError(w, http.StatusNotFound, "animal not found")
}

// Deleting an animal does not cascade into activities or tasks: their weak
// references are left dangling and resolved defensively by readers.
func (s *Server) handleDeleteAnimal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	for i := range animals {
		if animals[i].ID != id {
			continue
		}
		animals = append(animals[:i], animals[i+1:]...)
		s.store.Save(model.KeyLivestock, animals)
		respondJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	respondError(w, http.StatusNotFound, "animal not found")
}

func (s *Server) handleAddHealthRecord(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date        string `json:"date"`
		Event       string `json:"event"`
		Description string `json:"description"`
		Treatment   string `json:"treatment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	in.Event = strings.TrimSpace(in.Event)
	if in.Event == "" {
		respondError(w, http.StatusBadRequest, "event is required")
		return
	}
	if _, ok := model.ParseDate(in.Date); !ok {
		respondError(w, http.StatusBadRequest, "date must be an ISO date")
		return
	}

	id := r.PathValue("id")
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	for i := range animals {
		if animals[i].ID != id {
			continue
		}
		rec := model.HealthRecord{
			ID:          uuid.NewString(),
			Date:        in.Date,
			Event:       in.Event,
			Description: in.Description,
			Treatment:   in.Treatment,
		}
		animals[i].HealthRecords = append(animals[i].HealthRecords, rec)
		s.store.Save(model.KeyLivestock, animals)
		respondJSON(w, http.StatusCreated, map[string]any{"record": rec})
		return
	}
	respondError(w, http.StatusNotFound, "animal not found")
}

func (s *Server) handleDeleteHealthRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	recordID := r.PathValue("recordId")
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	for i := range animals {
		if animals[i].ID != id {
			continue
		}
		for j := range animals[i].HealthRecords {
			if animals[i].HealthRecords[j].ID != recordID {
				continue
			}
			animals[i].HealthRecords = append(animals[i].HealthRecords[:j], animals[i].HealthRecords[j+1:]...)
			s.store.Save(model.KeyLivestock, animals)
			respondJSON(w, http.StatusOK, map[string]any{"ok": true})
			return
		}
		respondError(w, http.StatusNotFound, "health record not found")
		return
	}
	respondError(w, http.StatusNotFound, "animal not found")
}

func (s *Server) handleAddProductionMetric(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date  string `json:"date"`
		Type  string `json:"type"`
		Value string `json:"value"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	switch strings.TrimSpace(in.Type) {
	case model.MetricMilk, model.MetricWeight, model.MetricBreeding, model.MetricEggs:
	default:
		respondError(w, http.StatusBadRequest, "type must be one of Milk, Weight, Breeding, Eggs")
		return
	}
	if strings.TrimSpace(in.Value) == "" {
		respondError(w, http.StatusBadRequest, "value is required")
		return
	}
	if _, ok := model.ParseDate(in.Date); !ok {
		respondError(w, http.StatusBadRequest, "date must be an ISO date")
		return
	}

	id := r.PathValue("id")
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	for i := range animals {
		if animals[i].ID != id {
			continue
		}
		rec := model.ProductionMetric{
			ID:    uuid.NewString(),
			Date:  in.Date,
			Type:  strings.TrimSpace(in.Type),
			Value: strings.TrimSpace(in.Value),
			Notes: in.Notes,
		}
		animals[i].ProductionMetrics = append(animals[i].ProductionMetrics, rec)
		s.store.Save(model.KeyLivestock, animals)
		respondJSON(w, http.StatusCreated, map[string]any{"record": rec})
		return
	}
	respondError(w, http.StatusNotFound, "animal not found")
}

func (s *Server) handleDeleteProductionMetric(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	recordID := r.PathValue("recordId")
	animals := store.Load[model.Animal](s.store, model.KeyLivestock)
	for i := range animals {
		if animals[i].ID != id {
			continue
		}
		for j := range animals[i].ProductionMetrics {
			if animals[i].ProductionMetrics[j].ID != recordID {
				continue
			}
			animals[i].ProductionMetrics = append(animals[i].ProductionMetrics[:j], animals[i].ProductionMetrics[j+1:]...)
			s.store.Save(model.KeyLivestock, animals)
			respondJSON(w, http.StatusOK, map[string]any{"ok": true})
			return
		}
		respondError(w, http.StatusNotFound, "production metric not found")
		return
	}
	respondError(w, http.StatusNotFound, "animal not found")
}
