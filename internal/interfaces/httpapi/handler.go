package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/riskibarqy/touchline/internal/usecase"
)

type Handler struct {
	boardService     *usecase.BoardService
	selectionService *usecase.SelectionService
	periodService    *usecase.PeriodService
	squadService     *usecase.SquadService
	formationService *usecase.FormationService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	boardService *usecase.BoardService,
	selectionService *usecase.SelectionService,
	periodService *usecase.PeriodService,
	squadService *usecase.SquadService,
	formationService *usecase.FormationService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		boardService:     boardService,
		selectionService: selectionService,
		periodService:    periodService,
		squadService:     squadService,
		formationService: formationService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return value, nil
}

func fixtureIDFromPath(r *http.Request) (string, error) {
	fixtureID := strings.TrimSpace(r.PathValue("fixtureID"))
	if fixtureID == "" {
		return "", fmt.Errorf("%w: fixture id is required", usecase.ErrInvalidInput)
	}
	return fixtureID, nil
}

func teamFromPath(r *http.Request) (string, int, error) {
	fixtureID, err := fixtureIDFromPath(r)
	if err != nil {
		return "", 0, err
	}
	team, err := pathInt(r, "team")
	if err != nil {
		return "", 0, err
	}
	return fixtureID, team, nil
}

func scopeFromPath(r *http.Request) (usecase.ScopeRef, error) {
	fixtureID, team, err := teamFromPath(r)
	if err != nil {
		return usecase.ScopeRef{}, err
	}
	periodID, err := pathInt(r, "period")
	if err != nil {
		return usecase.ScopeRef{}, err
	}
	return usecase.ScopeRef{FixtureID: fixtureID, Team: team, Period: periodID}, nil
}
