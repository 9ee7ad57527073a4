package httpapi

import "net/http"

const scopePath = "/v1/fixtures/{fixtureID}/teams/{team}/periods/{period}"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics http.Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
}

func registerFormationRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
	mux.HandleFunc("GET /v1/formations/{name}", handler.GetFormation)
}

func registerBoardRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/board", handler.GetBoard)
	mux.HandleFunc("POST /v1/fixtures/{fixtureID}/save", handler.SaveBoard)
}

func registerSelectionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET "+scopePath+"/selection", handler.GetSelection)
	mux.HandleFunc("PUT "+scopePath+"/selection", handler.ReplaceSelection)
	mux.HandleFunc("POST "+scopePath+"/selection/drops", handler.DropPlayer)
	mux.HandleFunc("POST "+scopePath+"/selection/picks", handler.PickPlayer)
	mux.HandleFunc("DELETE "+scopePath+"/selection/slots/{slotID}", handler.RemoveSlot)
	mux.HandleFunc("GET "+scopePath+"/selection/available", handler.ListAvailablePlayers)
}

func registerPeriodRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/teams/{team}/periods", handler.ListPeriods)
	mux.HandleFunc("POST /v1/fixtures/{fixtureID}/teams/{team}/periods", handler.AddPeriod)
	mux.HandleFunc("POST /v1/fixtures/{fixtureID}/teams/{team}/periods/defaults", handler.InitializeDefaultPeriods)
	mux.HandleFunc("PATCH "+scopePath, handler.EditPeriod)
	mux.HandleFunc("DELETE "+scopePath, handler.DeletePeriod)
}

func registerSquadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/squad", handler.GetSquad)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/squad/available", handler.ListSquadAvailable)
	mux.HandleFunc("PUT /v1/fixtures/{fixtureID}/squad/players/{playerID}", handler.AddSquadPlayer)
	mux.HandleFunc("DELETE /v1/fixtures/{fixtureID}/squad/players/{playerID}", handler.RemoveSquadPlayer)
	mux.HandleFunc("PUT /v1/fixtures/{fixtureID}/squad/mode", handler.SetSquadMode)
}
