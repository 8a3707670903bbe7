package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/store"
)

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories := store.Load[model.CategoryDefinition](s.store, model.KeyCategories)
	respondJSON(w, http.StatusOK, map[string]any{"items": categories, "total": len(categories)})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name            string `json:"name"`
		Icon            string `json:"icon"`
		ManagementStyle string `json:"managementStyle"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	switch in.ManagementStyle {
	case model.StylePerAnimal, model.StyleBatch:
	case "":
		in.ManagementStyle = model.StylePerAnimal
	default:
		respondError(w, http.StatusBadRequest, "managementStyle must be per-animal or batch")
		return
	}

	categories := store.Load[model.CategoryDefinition](s.store, model.KeyCategories)
	for _, c := range categories {
		if strings.EqualFold(c.Name, in.Name) {
			respondError(w, http.StatusConflict, "category already exists")
			return
		}
	}

	category := model.CategoryDefinition{
		Name:            in.Name,
		Icon:            strings.TrimSpace(in.Icon),
		ManagementStyle: in.ManagementStyle,
	}
	categories = append(categories, category)
	s.store.Save(model.KeyCategories, categories)

	respondJSON(w, http.StatusCreated, map[string]any{"category": category})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	categories := store.Load[model.CategoryDefinition](s.store, model.KeyCategories)
	for i := range categories {
		if !strings.EqualFold(categories[i].Name, name) {
			continue
		}
		categories = append(categories[:i], categories[i+1:]...)
		s.store.Save(model.KeyCategories, categories)
		respondJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	respondError(w, http.StatusNotFound, "category not found")
}
