package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/usecase"
)

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	fixtureID, err := fixtureIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.squadService.Get(ctx, fixtureID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadDTO{
		FixtureID: view.FixtureID,
		Mode:      string(view.Mode),
		Players:   playersToDTO(view.Players),
	})
}

// ListSquadAvailable accepts repeated scope=team:period query values.
func (h *Handler) ListSquadAvailable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSquadAvailable")
	defer span.End()

	fixtureID, err := fixtureIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scopes, err := parseScopeQuery(r.URL.Query()["scope"])
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	players, err := h.squadService.Available(ctx, fixtureID, scopes...)
	if err != nil {
		h.logger.WarnContext(ctx, "list squad availability failed", "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(players))
}

func (h *Handler) AddSquadPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddSquadPlayer")
	defer span.End()

	fixtureID, err := fixtureIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	added, err := h.squadService.AddPlayer(ctx, fixtureID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "add squad player failed", "fixture_id", fixtureID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadChangeDTO{PlayerID: playerID, Changed: added})
}

func (h *Handler) RemoveSquadPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveSquadPlayer")
	defer span.End()

	fixtureID, err := fixtureIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	playerID := r.PathValue("playerID")
	removed, err := h.squadService.RemovePlayer(ctx, fixtureID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove squad player failed", "fixture_id", fixtureID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadChangeDTO{PlayerID: playerID, Changed: removed})
}

func (h *Handler) SetSquadMode(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetSquadMode")
	defer span.End()

	fixtureID, err := fixtureIDFromPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req squadModeRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	mode, err := h.squadService.SetMode(ctx, fixtureID, req.Mode)
	if err != nil {
		h.logger.WarnContext(ctx, "set squad mode failed", "fixture_id", fixtureID, "mode", req.Mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadModeRequest{Mode: string(mode)})
}

func parseScopeQuery(values []string) ([]lineup.Scope, error) {
	scopes := make([]lineup.Scope, 0, len(values))
	for _, raw := range values {
		teamRaw, periodRaw, ok := strings.Cut(strings.TrimSpace(raw), ":")
		if !ok {
			return nil, fmt.Errorf("%w: scope must be team:period, got %q", usecase.ErrInvalidInput, raw)
		}
		team, err := strconv.Atoi(teamRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid scope team %q", usecase.ErrInvalidInput, teamRaw)
		}
		periodID, err := strconv.Atoi(periodRaw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid scope period %q", usecase.ErrInvalidInput, periodRaw)
		}
		scopes = append(scopes, lineup.Scope{Team: team, Period: periodID})
	}
	return scopes, nil
}
