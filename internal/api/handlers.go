package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"simplegpt/internal/helper"
	"simplegpt/internal/ingest"
	"simplegpt/internal/rag"
)

const maxUploadMemory = 32 << 20 // 32 MiB before spilling to disk

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListCollections(w http.ResponseWriter, _ *http.Request) {
	type collection struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	names := s.store.ListCollections()
	out := make([]collection, 0, len(names))
	for _, name := range names {
		out = append(out, collection{Name: name, Count: s.store.Count(name)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteCollection(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.store.DeleteCollection(name); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpload ingests uploaded files into the named collection. The request
// is multipart form data: one or more "files" parts, plus optional "data_type"
// (default pdf) and "split_documents" (default true) fields.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("no files uploaded"))
		return
	}

	dataType := r.FormValue("data_type")
	if dataType == "" {
		dataType = "pdf"
	}
	split := r.FormValue("split_documents") != "false"

	dir, err := helper.SaveFilesToDisk(files)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer os.RemoveAll(dir)

	stored, err := s.pipeline.Feed(r.Context(), ingest.Options{
		FromPath:       dir,
		Collection:     name,
		DataType:       dataType,
		SplitDocuments: split,
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ingest.ErrInvalidDataType) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"collection": name,
		"chunks":     stored,
	})
}

func (s *Server) handleListPrompts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"prompts": s.prompts.Names()})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req rag.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	result, err := s.service.Query(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
