package handler

import (
	"net/http"

	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/service"
	"github.com/templui/screentime/internal/validation"
)

type EntryHandler struct {
	entryService *service.EntryService
}

func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{
		entryService: entryService,
	}
}

func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" {
		if err := validation.ValidateDate(date); err != nil {
			writeError(w, r, validation.FieldErrors{"date": err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, h.entryService.List(date))
}

func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.entryService.ByID(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var entry model.TimeEntry
	if err := readJSON(w, r, &entry); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := h.entryService.Create(r.Context(), entry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var entry model.TimeEntry
	if err := readJSON(w, r, &entry); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := h.entryService.Update(r.Context(), r.PathValue("id"), entry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete responds with the removed entry so clients can offer undo via Restore.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.entryService.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}

func (h *EntryHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var entry model.TimeEntry
	if err := readJSON(w, r, &entry); err != nil {
		writeError(w, r, err)
		return
	}

	restored, err := h.entryService.Restore(r.Context(), entry)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, restored)
}
