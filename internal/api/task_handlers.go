package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"farmkeep/backend/internal/model"
	"farmkeep/backend/internal/stats"
	"farmkeep/backend/internal/store"
)

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	tasks := store.Load[model.Task](s.store, model.KeyTasks)

	switch strings.TrimSpace(r.URL.Query().Get("status")) {
	case "pending":
		filtered := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if !t.Completed {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	case "completed":
		filtered := make([]model.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Completed {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": tasks, "total": len(tasks)})
}

func (s *Server) handleTodaysTasks(w http.ResponseWriter, r *http.Request) {
	tasks := store.Load[model.Task](s.store, model.KeyTasks)
	today := stats.TodaysTasks(tasks, time.Now())
	respondJSON(w, http.StatusOK, map[string]any{"items": today, "total": len(today)})
}

type taskInput struct {
	Title    string `json:"title"`
	DueDate  string `json:"dueDate"`
	Category string `json:"category"`
	AnimalID string `json:"animalId"`
}

func (in *taskInput) validate() (string, bool) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return "title is required", false
	}
	if _, ok := model.ParseDate(in.DueDate); !ok {
		return "dueDate must be an ISO date", false
	}
	return "", true
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var in taskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg, ok := in.validate(); !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	task := model.Task{
		ID:       uuid.NewString(),
		Title:    in.Title,
		DueDate:  in.DueDate,
		Category: strings.TrimSpace(in.Category),
		AnimalID: strings.TrimSpace(in.AnimalID),
	}
	if task.AnimalID != "" {
		animals := store.Load[model.Animal](s.store, model.KeyLivestock)
		if a, ok := model.FindAnimal(animals, task.AnimalID); ok {
			task.AnimalName = a.Name
		}
	}

	tasks := store.Load[model.Task](s.store, model.KeyTasks)
	tasks = append(tasks, task)
	s.store.Save(model.KeyTasks, tasks)

	respondJSON(w, http.StatusCreated, map[string]any{"task": task})
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var in taskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if msg, ok := in.validate(); !ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	id := r.PathValue("id")
	tasks := store.Load[model.Task](s.store, model.KeyTasks)
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i].Title = in.Title
		tasks[i].DueDate = in.DueDate
		tasks[i].Category = strings.TrimSpace(in.Category)
		tasks[i].AnimalID = strings.TrimSpace(in.AnimalID)
		s.store.Save(model.KeyTasks, tasks)
		respondJSON(w, http.StatusOK, map[string]any{"task": tasks[i]})
		return
	}
	respondError(w, http.StatusNotFound, "task not found")
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tasks := store.Load[model.Task](s.store, model.KeyTasks)
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks[i].Completed = !tasks[i].Completed
		s.store.Save(model.KeyTasks, tasks)
		respondJSON(w, http.StatusOK, map[string]any{"task": tasks[i]})
		return
	}
	respondError(w, http.StatusNotFound, "task not found")
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	tasks := store.Load[model.Task](s.store, model.KeyTasks)
	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		tasks = append(tasks[:i], tasks[i+1:]...)
		s.store.Save(model.KeyTasks, tasks)
		respondJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}
	respondError(w, http.StatusNotFound, "task not found")
}
