package httpapi

import (
	"net/http"

	"github.com/riskibarqy/touchline/internal/usecase"
)

func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSelection")
	defer span.End()

	ref, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.selectionService.Get(ctx, ref)
	if err != nil {
		h.logger.WarnContext(ctx, "get selection failed", "fixture_id", ref.FixtureID, "team", ref.Team, "period", ref.Period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionDTO{
		Team:                view.Scope.Team,
		Period:              view.Scope.Period,
		Selection:           selectionToDTO(view.Selection),
		SelectedPlayerID:    view.Selected,
		PerformanceCategory: string(view.Category),
	})
}

func (h *Handler) ReplaceSelection(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplaceSelection")
	defer span.End()

	ref, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req replaceSelectionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selection, err := h.selectionService.Replace(ctx, ref, selectionFromDTO(req.Selection))
	if err != nil {
		h.logger.WarnContext(ctx, "replace selection failed", "fixture_id", ref.FixtureID, "team", ref.Team, "period", ref.Period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, selectionDTO{
		Team:      ref.Team,
		Period:    ref.Period,
		Selection: selectionToDTO(selection),
	})
}

func (h *Handler) DropPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DropPlayer")
	defer span.End()

	ref, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req dropRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.selectionService.Drop(ctx, usecase.DropInput{
		ScopeRef:   ref,
		PlayerID:   req.PlayerID,
		FromSlotID: req.FromSlotID,
		ToSlotID:   req.ToSlotID,
		Position:   req.Position,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "drop failed", "fixture_id", ref.FixtureID, "team", ref.Team, "period", ref.Period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dropResultDTO{
		Outcome:   string(result.Outcome),
		Selection: selectionToDTO(result.Selection),
	})
}

func (h *Handler) PickPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PickPlayer")
	defer span.End()

	ref, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req pickRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selected, err := h.selectionService.Pick(ctx, ref, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "pick failed", "fixture_id", ref.FixtureID, "team", ref.Team, "period", ref.Period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pickResultDTO{SelectedPlayerID: selected})
}

func (h *Handler) RemoveSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveSlot")
	defer span.End()

	ref, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	removed, selection, err := h.selectionService.RemoveSlot(ctx, ref, r.PathValue("slotID"))
	if err != nil {
		h.logger.WarnContext(ctx, "remove slot failed", "fixture_id", ref.FixtureID, "team", ref.Team, "period", ref.Period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, removeSlotResultDTO{
		Removed:   removed,
		Selection: selectionToDTO(selection),
	})
}

func (h *Handler) ListAvailablePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAvailablePlayers")
	defer span.End()

	ref, err := scopeFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.selectionService.Available(ctx, ref)
	if err != nil {
		h.logger.WarnContext(ctx, "list available players failed", "fixture_id", ref.FixtureID, "team", ref.Team, "period", ref.Period, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}
