package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/touchline/internal/domain/formation"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/riskibarqy/touchline/internal/platform/metrics"
	"github.com/riskibarqy/touchline/internal/usecase"
	"github.com/stretchr/testify/require"
)

const homeOpenerPath = "/v1/fixtures/" + memory.FixtureIDHomeOpener

type testEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       map[string]any   `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

type testListEnvelope struct {
	Data []map[string]any `json:"data"`
}

func newTestRouter(t *testing.T) (http.Handler, *metrics.Metrics) {
	t.Helper()

	logger := logging.NewNop()
	boards := usecase.NewBoardService(
		memory.NewFixtureRepository(memory.SeedFixtures()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewSelectionRepository(),
		memory.NewPeriodRepository(),
		memory.NewSquadRepository(),
		usecase.BoardOptions{Logger: logger},
	)
	catalog, err := formation.Default()
	require.NoError(t, err)

	handler := NewHandler(
		boards,
		usecase.NewSelectionService(boards),
		usecase.NewPeriodService(boards),
		usecase.NewSquadService(boards),
		usecase.NewFormationService(catalog),
		logger,
	)
	m := metrics.New()
	router := NewRouter(handler, RouterOptions{
		Logger:         logger,
		Metrics:        m,
		MetricsHandler: m.Handler(),
	})
	return router, m
}

func serve(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	var out testEnvelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func prepareAssigningBoard(t *testing.T, router http.Handler) {
	t.Helper()

	rec := serve(t, router, http.MethodPost, homeOpenerPath+"/teams/1/periods/defaults", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	for _, id := range []string{"rv-01", "rv-02", "rv-03"} {
		rec = serve(t, router, http.MethodPut, homeOpenerPath+"/squad/players/"+id, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = serve(t, router, http.MethodPut, homeOpenerPath+"/squad/mode", `{"mode":"assigning_positions"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestHandler_Healthz(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decodeEnvelope(t, rec).Data["status"])
}

func TestHandler_DropSwapsAndReportsAvailability(t *testing.T) {
	router, _ := newTestRouter(t)
	prepareAssigningBoard(t, router)
	selectionPath := homeOpenerPath + "/teams/1/periods/1/selection"

	rec := serve(t, router, http.MethodPost, selectionPath+"/drops", `{"playerId":"rv-01","toSlotId":"GK","position":"GK"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "placed", decodeEnvelope(t, rec).Data["outcome"])

	rec = serve(t, router, http.MethodPost, selectionPath+"/drops", `{"playerId":"rv-02","toSlotId":"sub-0"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, router, http.MethodPost, selectionPath+"/drops", `{"fromSlotId":"sub-0","toSlotId":"GK"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "swapped", decodeEnvelope(t, rec).Data["outcome"])

	rec = serve(t, router, http.MethodGet, selectionPath, "")
	require.Equal(t, http.StatusOK, rec.Code)
	selection, ok := decodeEnvelope(t, rec).Data["selection"].(map[string]any)
	require.True(t, ok)
	require.Len(t, selection, 2)
	require.Equal(t, "rv-02", selection["GK"].(map[string]any)["playerId"])
	require.Equal(t, "rv-01", selection["sub-0"].(map[string]any)["playerId"])
	require.Equal(t, true, selection["sub-0"].(map[string]any)["isSubstitution"])

	rec = serve(t, router, http.MethodGet, selectionPath+"/available", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var available testListEnvelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &available))
	require.Len(t, available.Data, 1)
	require.Equal(t, "rv-03", available.Data[0]["id"])
}

func TestHandler_ReplaceAndRemoveSlot(t *testing.T) {
	router, _ := newTestRouter(t)
	prepareAssigningBoard(t, router)
	selectionPath := homeOpenerPath + "/teams/1/periods/1/selection"

	rec := serve(t, router, http.MethodPut, selectionPath, `{"selection":{"ST":{"playerId":"rv-03","position":"ST","isSubstitution":false}}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, router, http.MethodDelete, selectionPath+"/slots/ST", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeEnvelope(t, rec)
	require.Equal(t, true, body.Data["removed"])
	require.Empty(t, body.Data["selection"])

	rec = serve(t, router, http.MethodDelete, selectionPath+"/slots/ST", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, false, decodeEnvelope(t, rec).Data["removed"])
}

func TestHandler_PeriodLifecycle(t *testing.T) {
	router, _ := newTestRouter(t)
	periodsPath := homeOpenerPath + "/teams/2/periods"

	rec := serve(t, router, http.MethodPost, periodsPath, `{"label":"Extra","durationMinutes":10,"half":1}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeEnvelope(t, rec).Data
	require.Equal(t, float64(1), created["id"])
	require.Equal(t, float64(10), created["durationMinutes"])

	rec = serve(t, router, http.MethodPatch, periodsPath+"/1", `{"performanceCategory":"elite"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "elite", decodeEnvelope(t, rec).Data["performanceCategory"])

	rec = serve(t, router, http.MethodDelete, periodsPath+"/1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, router, http.MethodDelete, periodsPath+"/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_ErrorMapping(t *testing.T) {
	router, _ := newTestRouter(t)
	rec := serve(t, router, http.MethodPost, homeOpenerPath+"/teams/1/periods/defaults", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
		status string
	}{
		{
			name:   "non numeric team",
			method: http.MethodGet,
			path:   homeOpenerPath + "/teams/abc/periods",
			want:   http.StatusBadRequest,
			status: "INVALID_ARGUMENT",
		},
		{
			name:   "unknown fixture",
			method: http.MethodGet,
			path:   "/v1/fixtures/fx-missing/board",
			want:   http.StatusNotFound,
			status: "NOT_FOUND",
		},
		{
			name:   "unknown json field",
			method: http.MethodPut,
			path:   homeOpenerPath + "/squad/mode",
			body:   `{"mode":"assigning_positions","extra":true}`,
			want:   http.StatusBadRequest,
			status: "INVALID_ARGUMENT",
		},
		{
			name:   "drop while picking squad",
			method: http.MethodPost,
			path:   homeOpenerPath + "/teams/1/periods/1/selection/drops",
			body:   `{"playerId":"rv-01","toSlotId":"GK"}`,
			want:   http.StatusConflict,
			status: "FAILED_PRECONDITION",
		},
		{
			name:   "locked fixture",
			method: http.MethodPut,
			path:   "/v1/fixtures/" + memory.FixtureIDPlayedMatch + "/squad/players/rv-01",
			want:   http.StatusConflict,
			status: "FAILED_PRECONDITION",
		},
		{
			name:   "unknown formation",
			method: http.MethodGet,
			path:   "/v1/formations/9-0-1",
			want:   http.StatusNotFound,
			status: "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, router, tt.method, tt.path, tt.body)
			require.Equal(t, tt.want, rec.Code, rec.Body.String())
			body := decodeEnvelope(t, rec)
			require.NotNil(t, body.Error)
			require.Equal(t, tt.status, body.Error.Status)
		})
	}
}

func TestHandler_ListFormations(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, "/v1/formations", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body testListEnvelope
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data)
	require.NotEmpty(t, body.Data[0]["slots"])
}

func TestRouter_RecordsRouteMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := serve(t, router, http.MethodGet, homeOpenerPath+"/squad", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `route="GET /v1/fixtures/{fixtureID}/squad"`)
	require.Contains(t, rec.Body.String(), `status_code="200"`)
}
