package handler

import (
	"net/http"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/service"
)

type GoalHandler struct {
	goalService  *service.GoalService
	statsService *service.StatsService
}

func NewGoalHandler(goalService *service.GoalService, statsService *service.StatsService) *GoalHandler {
	return &GoalHandler{
		goalService:  goalService,
		statsService: statsService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.goalService.List())
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	goal, err := h.goalService.ByID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var goal model.Goal
	if err := readJSON(w, r, &goal); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.goalService.Create(r.Context(), goal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	var goal model.Goal
	if err := readJSON(w, r, &goal); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.goalService.Update(r.Context(), r.PathValue("id"), goal)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.goalService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

// Progress reports today's usage against every goal.
func (h *GoalHandler) Progress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.statsService.GoalProgress())
}
