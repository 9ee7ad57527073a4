package httpapi

import (
	"net/http"
)

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBoard")
	defer span.End()

	fixtureID, err := fixtureIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.boardService.Get(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get board failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, boardToDTO(view))
}

func (h *Handler) SaveBoard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveBoard")
	defer span.End()

	fixtureID, err := fixtureIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.boardService.Save(ctx, fixtureID)
	if err != nil {
		h.logger.ErrorContext(ctx, "save board failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveResultDTO{
		FixtureID: result.FixtureID,
		Scopes:    result.Scopes,
		Periods:   result.Periods,
		SavedAt:   result.SavedAt,
	})
}
