package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/jobscheduler"
	"github.com/astorrey/TackleHogs/internal/usecase"
	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

var internalJobDispatchUnsafeRegex = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

type internalJobRequest struct {
	DispatchID string `json:"dispatch_id"`
}

func (h *Handler) RunAdvanceDueJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunAdvanceDueJob")
	defer span.End()

	req, err := decodeInternalJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.competitionService.AdvanceDue(ctx)
	if err != nil {
		h.recordInternalJobDispatch(ctx, req, jobscheduler.DispatchEvent{
			JobName:      "advance-due",
			JobPath:      "/v1/internal/jobs/advance-due",
			Status:       jobscheduler.StatusFailed,
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run advance due job failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	h.recordInternalJobDispatch(ctx, req, jobscheduler.DispatchEvent{
		JobName: "advance-due",
		JobPath: "/v1/internal/jobs/advance-due",
		Status:  jobscheduler.StatusCompleted,
		Payload: map[string]any{
			"activated": result.Activated,
			"completed": result.Completed,
			"failed":    result.Failed,
		},
		OccurredAt: time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"activated": result.Activated,
		"completed": result.Completed,
		"failed":    result.Failed,
	})
}

func (h *Handler) RunLeaderboardRebuildJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLeaderboardRebuildJob")
	defer span.End()

	req, err := decodeInternalJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.leaderboardService.RebuildAll(ctx)
	if err != nil {
		h.recordInternalJobDispatch(ctx, req, jobscheduler.DispatchEvent{
			JobName:      "rebuild-leaderboard",
			JobPath:      "/v1/internal/jobs/rebuild-leaderboard",
			Status:       jobscheduler.StatusFailed,
			ErrorMessage: err.Error(),
			OccurredAt:   time.Now().UTC(),
		})
		h.logger.WarnContext(ctx, "run leaderboard rebuild job failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	h.recordInternalJobDispatch(ctx, req, jobscheduler.DispatchEvent{
		JobName: "rebuild-leaderboard",
		JobPath: "/v1/internal/jobs/rebuild-leaderboard",
		Status:  jobscheduler.StatusCompleted,
		Payload: map[string]any{
			"users":  result.Users,
			"failed": result.Failed,
		},
		OccurredAt: time.Now().UTC(),
	})

	writeSuccess(ctx, w, http.StatusOK, map[string]int{
		"users":  result.Users,
		"failed": result.Failed,
	})
}

func decodeInternalJobRequest(r *http.Request) (internalJobRequest, error) {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req internalJobRequest
	if err := decoder.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return internalJobRequest{}, nil
		}
		return internalJobRequest{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return req, nil
}

func (h *Handler) recordInternalJobDispatch(ctx context.Context, req internalJobRequest, event jobscheduler.DispatchEvent) {
	if h.jobDispatchRepo == nil {
		return
	}

	dispatchID := strings.TrimSpace(req.DispatchID)
	if dispatchID == "" {
		dispatchID = buildManualDispatchID(event.JobName, event.OccurredAt)
	}
	event.DispatchID = dispatchID

	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID

	if err := h.jobDispatchRepo.UpsertEvent(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "record internal job dispatch failed",
			"dispatch_id", event.DispatchID,
			"job_name", event.JobName,
			"status", event.Status,
			"error", err,
		)
	}
}

func buildManualDispatchID(jobName string, now time.Time) string {
	jobName = sanitizeDispatchPart(jobName)
	ts := now.UTC().Format("20060102T150405.000000000Z")
	return "manual-" + jobName + "-" + ts
}

func sanitizeDispatchPart(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return internalJobDispatchUnsafeRegex.ReplaceAllString(value, "-")
}

func traceMetaFromContext(ctx context.Context) (string, string) {
	spanContext := trace.SpanFromContext(ctx).SpanContext()
	if !spanContext.IsValid() {
		return "", ""
	}
	return spanContext.TraceID().String(), spanContext.SpanID().String()
}
