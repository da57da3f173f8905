package status

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"flightdb/internal/bootstrap"
	apperrors "flightdb/pkg/errors"
	httputil "flightdb/pkg/http"
	"flightdb/pkg/logger"
	"flightdb/pkg/middleware"
)

const (
	StatusOK          = "ok"
	StatusReady       = "ready"
	StatusNotReady    = "not_ready"
	StatusUnavailable = "unavailable"

	pingTimeout = 2 * time.Second
)

type StatusHandler struct {
	checker Checker
	log     *logger.Logger
}

func NewStatusHandler(checker Checker, log *logger.Logger) *StatusHandler {
	return &StatusHandler{
		checker: checker,
		log:     log,
	}
}

func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	httputil.WriteStatus(w, http.StatusOK, httputil.StatusResponse{Status: StatusOK})
}

func (h *StatusHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	report, err := h.check(r)
	if err != nil {
		appErr := apperrors.Unavailable(h.checker.Database(), err)
		httputil.WriteStatus(w, appErr.StatusCode(), httputil.StatusResponse{
			Status:   StatusUnavailable,
			Database: "error",
		})
		return
	}

	if err := report.Err(); err != nil {
		appErr := apperrors.NotReady(report.Database, err)
		h.log.Warn("Database is not bootstrapped",
			"request_id", middleware.RequestID(r.Context()),
			"code", appErr.Code,
			"error", appErr,
		)
		httputil.WriteStatus(w, appErr.StatusCode(), httputil.StatusResponse{
			Status:   StatusNotReady,
			Database: "incomplete",
			Reason:   err.Error(),
		})
		return
	}

	httputil.WriteStatus(w, http.StatusOK, httputil.StatusResponse{
		Status:   StatusReady,
		Database: StatusOK,
	})
}

func (h *StatusHandler) Report(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	report, err := h.check(r)
	if err != nil {
		httputil.WriteError(w, apperrors.Unavailable(h.checker.Database(), err))
		return
	}
	httputil.WriteSuccess(w, report)
}

// check pings the server with a short deadline, then verifies the layout.
func (h *StatusHandler) check(r *http.Request) (*bootstrap.Report, error) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	err := h.checker.Ping(ctx)
	cancel()
	if err != nil {
		h.log.Error("Database health check failed",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
			"path", r.URL.Path,
		)
		return nil, err
	}

	report, err := h.checker.Report(r.Context())
	if err != nil {
		h.log.Error("Database verification failed",
			"request_id", middleware.RequestID(r.Context()),
			"error", err,
			"path", r.URL.Path,
		)
		return nil, err
	}
	return report, nil
}

func (h *StatusHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
	router.GET("/report", h.Report)
}
