package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

const maxLogRecords = 50

func (a *API) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	snapshot, err := a.service.StartSession(r.Context())
	if err != nil {
		a.log.Error("start session failed", "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, snapshot)
}

func (a *API) HandleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	snapshot, err := a.service.Snapshot(r.PathValue("session_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (a *API) HandleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	defer r.Body.Close()

	var request answerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	snapshot, err := a.service.SubmitAnswer(r.Context(), r.PathValue("session_id"), request.Answer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (a *API) HandleAdvance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	snapshot, err := a.service.Advance(r.PathValue("session_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

func (a *API) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	snapshot, err := a.service.Snapshot(r.PathValue("session_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		SessionID:  snapshot.SessionID,
		State:      snapshot.State,
		Correct:    snapshot.Correct,
		Incorrect:  snapshot.Incorrect,
		Answered:   snapshot.Answered,
		Percentage: snapshot.Percentage,
	})
}

func (a *API) HandleLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	records, err := a.service.History(r.Context())
	if err != nil {
		a.log.Error("read quiz log failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read quiz log"})
		return
	}

	// Newest last on disk; the history panel wants the most recent rounds.
	if len(records) > maxLogRecords {
		records = records[len(records)-maxLogRecords:]
	}

	writeJSON(w, http.StatusOK, logResponse{
		Count:   len(records),
		Records: records,
	})
}

func (a *API) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}
	// The mux routes every unknown path here; only the root serves the page.
	if strings.TrimRight(r.URL.Path, "/") != "" {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}
