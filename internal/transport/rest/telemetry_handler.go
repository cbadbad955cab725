package rest

import (
	"context"
	"errors"
	"net/http"

	"horizonx-top/internal/domain"
	"horizonx-top/internal/logger"
	"horizonx-top/internal/query"
)

type StateService interface {
	Read() domain.View
	TogglePause() bool
}

type ProcessQuerier interface {
	QueryProcess(ctx context.Context, pid int32) (domain.ProcessDetail, error)
}

// Pauser is told about pause toggles so live subscribers hear about them.
type Pauser interface {
	Broadcast(channel, event string, payload any)
}

type TelemetryHandler struct {
	state  StateService
	query  ProcessQuerier
	notify Pauser
	log    logger.Logger
}

func NewTelemetryHandler(state StateService, q ProcessQuerier, notify Pauser, log logger.Logger) *TelemetryHandler {
	return &TelemetryHandler{state: state, query: q, notify: notify, log: log}
}

func (h *TelemetryHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    h.state.Read(),
	})
}

func (h *TelemetryHandler) Process(w http.ResponseWriter, r *http.Request) {
	pid, err := query.ParsePID(r.PathValue("pid"))
	if err != nil {
		JSONValidationError(w, map[string]string{"pid": "pid must be a positive integer"})
		return
	}

	detail, err := h.query.QueryProcess(r.Context(), pid)
	if errors.Is(err, domain.ErrProcessNotFound) {
		JSONError(w, http.StatusNotFound, "process not found")
		return
	}
	if err != nil {
		h.log.Error("failed to query process", "pid", pid, "error", err)
		JSONError(w, http.StatusInternalServerError, "failed to query process")
		return
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    detail,
	})
}

func (h *TelemetryHandler) Pause(w http.ResponseWriter, r *http.Request) {
	paused := h.state.TogglePause()
	h.log.Info("pause toggled", "paused", paused)

	payload := domain.PausePayload{Paused: paused}
	if h.notify != nil {
		h.notify.Broadcast(domain.WsChannelControl, domain.WsEventPauseToggled, payload)
	}

	JSONSuccess(w, http.StatusOK, APIResponse{
		Message: "OK",
		Data:    payload,
	})
}
