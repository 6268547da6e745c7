package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-card-sync/internal/config"
	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/models"
)

type fullSyncRequest struct {
	Direction models.SyncDirection `json:"direction"`
}

func (h *Handler) fullSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	request := fullSyncRequest{Direction: models.DirectionBidirectional}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			log.Err(err).Str("func", "*Handler.fullSync").Msg("Invalid JSON was passed")
			http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
			return
		}
	}

	switch request.Direction {
	case models.DirectionUpstream, models.DirectionDownstream, models.DirectionBidirectional:
	default:
		http.Error(w, "unknown sync direction", http.StatusBadRequest)
		return
	}

	session, err := h.services.Orchestrator.PerformFullSync(r.Context(), request.Direction)
	if err != nil {
		log.Err(err).Str("func", "*Handler.fullSync").Msg("full sync failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) incrementalSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, err := h.services.Orchestrator.PerformIncrementalSync(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.incrementalSync").Msg("incremental sync failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) pause(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.Orchestrator.Pause(); err != nil {
		log.Err(err).Str("func", "*Handler.pause").Msg("pause rejected")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) resume(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	session, err := h.services.Orchestrator.Resume(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.resume").Msg("resume rejected")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.services.Orchestrator.GetMetrics())
}

func (h *Handler) consistency(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	level := models.ValidationLevel(r.URL.Query().Get("level"))
	if level == "" {
		level = models.ValidationRelaxed
	}
	switch level {
	case models.ValidationBasic, models.ValidationRelaxed, models.ValidationStrict:
	default:
		http.Error(w, "unknown validation level", http.StatusBadRequest)
		return
	}

	report, err := h.services.Orchestrator.GetConsistencyReport(r.Context(), level)
	if err != nil {
		log.Err(err).Str("func", "*Handler.consistency").Msg("consistency check failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// events returns the recent session history, newest first.
func (h *Handler) events(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.services.Orchestrator.Sessions())
}

func (h *Handler) configureValidation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var cfg config.Validation
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		log.Err(err).Str("func", "*Handler.configureValidation").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	switch models.ValidationLevel(cfg.Level) {
	case models.ValidationBasic, models.ValidationRelaxed, models.ValidationStrict:
	default:
		http.Error(w, "unknown validation level", http.StatusBadRequest)
		return
	}

	h.services.Orchestrator.ConfigureValidation(cfg)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) configureBatch(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var cfg config.Batch
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		log.Err(err).Str("func", "*Handler.configureBatch").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.services.Orchestrator.ConfigureBatchOptimization(cfg)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
