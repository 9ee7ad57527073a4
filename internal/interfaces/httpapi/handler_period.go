package httpapi

import (
	"net/http"

	"github.com/riskibarqy/touchline/internal/usecase"
)

func (h *Handler) ListPeriods(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPeriods")
	defer span.End()

	fixtureID, team, err := teamFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	views, err := h.periodService.List(ctx, fixtureID, team)
	if err != nil {
		h.logger.WarnContext(ctx, "list periods failed", "fixture_id", fixtureID, "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, periodsToDTO(views))
}

func (h *Handler) AddPeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPeriod")
	defer span.End()

	fixtureID, team, err := teamFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req addPeriodRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.periodService.Add(ctx, usecase.AddPeriodInput{
		FixtureID:       fixtureID,
		Team:            team,
		Label:           req.Label,
		DurationMinutes: req.DurationMinutes,
		Half:            req.Half,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add period failed", "fixture_id", fixtureID, "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, periodToDTO(view))
}

func (h *Handler) InitializeDefaultPeriods(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InitializeDefaultPeriods")
	defer span.End()

	fixtureID, team, err := teamFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	created, views, err := h.periodService.InitializeDefaults(ctx, fixtureID, team)
	if err != nil {
		h.logger.WarnContext(ctx, "initialize default periods failed", "fixture_id", fixtureID, "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, initializePeriodsDTO{Created: created, Periods: periodsToDTO(views)})
}

func (h *Handler) EditPeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EditPeriod")
	defer span.End()

	ref, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req editPeriodRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.periodService.Edit(ctx, usecase.EditPeriodInput{
		FixtureID:       ref.FixtureID,
		Team:            ref.Team,
		Period:          ref.Period,
		Label:           req.Label,
		DurationMinutes: req.DurationMinutes,
		Category:        req.PerformanceCategory,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "edit period failed", "fixture_id", ref.FixtureID, "team", ref.Team, "period", ref.Period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, periodToDTO(view))
}

func (h *Handler) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePeriod")
	defer span.End()

	ref, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.periodService.Delete(ctx, ref.FixtureID, ref.Team, ref.Period); err != nil {
		h.logger.WarnContext(ctx, "delete period failed", "fixture_id", ref.FixtureID, "team", ref.Team, "period", ref.Period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeNoContent(w)
}
