package handler

import (
	"net/http"

	"github.com/templui/screentime/internal/markdown"
	"github.com/templui/screentime/internal/service"
	"github.com/templui/screentime/internal/ui"
)

type DashboardHandler struct {
	statsService *service.StatsService
	notes        *markdown.Parser
}

func NewDashboardHandler(statsService *service.StatsService, notes *markdown.Parser) *DashboardHandler {
	return &DashboardHandler{
		statsService: statsService,
		notes:        notes,
	}
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, ui.Dashboard(ui.DashboardProps{
		Summary: h.statsService.Summary(),
		Notes:   h.notes.Notes,
	}))
}
