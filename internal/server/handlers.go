package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cosine-software/tdl"
)

// analyzeRequest is the POST /analyze body: raw TDL source text.
type analyzeRequest struct {
	Source string `json:"source"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	result := s.analyze.Analyze(req.Source)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleTokenize(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	writeJSON(w, http.StatusOK, tdl.Tokenize(source))
}

type errorBody struct {
	Error string `json:"error"`
}
