package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/avelez/taskvault/internal/logger"
	"github.com/avelez/taskvault/internal/middleware"
	"github.com/avelez/taskvault/internal/models"
	"github.com/avelez/taskvault/internal/service"
)

type TaskHandler struct {
	tasks *service.TaskService
	log   *logger.Logger
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		log:   logger.New("task-handler"),
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.UserFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := h.tasks.Create(r.Context(), identity, req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	identity := middleware.UserFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	tasks, err := h.tasks.ListForUser(r.Context(), identity)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity := middleware.UserFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID := r.PathValue("taskId")
	if taskID == "" {
		respondError(w, http.StatusBadRequest, "task id is required")
		return
	}

	var req models.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := h.tasks.Update(r.Context(), identity, taskID, req)
	if err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	respondJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.UserFrom(r.Context())
	if identity == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	taskID := r.PathValue("taskId")
	if taskID == "" {
		respondError(w, http.StatusBadRequest, "task id is required")
		return
	}

	if err := h.tasks.Delete(r.Context(), identity, taskID); err != nil {
		respondServiceError(w, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
