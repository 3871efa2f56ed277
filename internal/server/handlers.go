package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/regionviz/regionviz/internal/store"
	"github.com/regionviz/regionviz/internal/viewport"
)

func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListDatasets(r.Context())
	if err != nil {
		s.log.Error("list datasets", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "list datasets failed")
		return
	}
	if infos == nil {
		infos = []store.DatasetInfo{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"datasets": infos})
}

func (s *Server) handleListBoundaries(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListBoundaries(r.Context())
	if err != nil {
		s.log.Error("list boundaries", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "list boundaries failed")
		return
	}
	if infos == nil {
		infos = []store.BoundaryInfo{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"boundaries": infos})
}

func (s *Server) handleGetBoundaries(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	data, err := s.store.GetBoundaries(r.Context(), name)
	if err != nil {
		s.log.Error("get boundaries", zap.String("name", name), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "get boundaries failed")
		return
	}
	if data == nil {
		s.writeError(w, http.StatusNotFound, "boundary collection not found")
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// viewResponse carries a view state plus whether it is the national
// fallback rather than a region-derived camera.
type viewResponse struct {
	RegionID string             `json:"region_id"`
	Fallback bool               `json:"fallback"`
	View     viewport.ViewState `json:"view"`
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	regionID := chi.URLParam(r, "id")

	var box *viewport.BBox
	if s.boundaries != nil {
		if b, ok := viewport.BoundingBoxFor(s.boundaries.Collection(), regionID); ok {
			box = &b
		}
	}

	s.writeJSON(w, http.StatusOK, viewResponse{
		RegionID: regionID,
		Fallback: box == nil,
		View:     viewport.ViewStateFor(box, viewport.Options{}),
	})
}
