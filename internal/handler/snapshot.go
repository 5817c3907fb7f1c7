package handler

import (
	"fmt"
	"net/http"

	"github.com/templui/screentime/internal/service"
)

type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// Export downloads every entry and goal as one JSON document.
func (h *SnapshotHandler) Export(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshotService.Export()

	filename := fmt.Sprintf("screentime-%s.json", snap.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	writeJSON(w, http.StatusOK, snap)
}

// Import accepts a snapshot body. ?mode=merge keeps existing data, the
// default replaces it.
func (h *SnapshotHandler) Import(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = service.ImportReplace
	}
	if mode != service.ImportReplace && mode != service.ImportMerge {
		writeError(w, r, badRequest{fmt.Errorf("mode must be %s or %s", service.ImportReplace, service.ImportMerge)})
		return
	}

	err := requireJSON(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	snap, err := service.Decode(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, r, err)
		return
	}

	imported, err := h.snapshotService.Import(r.Context(), snap, mode)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, imported)
}

func (h *SnapshotHandler) Backup(w http.ResponseWriter, r *http.Request) {
	backup, err := h.snapshotService.Backup(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, backup)
}

func (h *SnapshotHandler) Backups(w http.ResponseWriter, r *http.Request) {
	paths, err := h.snapshotService.Backups(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if paths == nil {
		paths = []string{}
	}
	writeJSON(w, http.StatusOK, paths)
}
