package httpapi

import (
	"sort"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/formation"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/period"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/usecase"
)

type assignmentDTO struct {
	PlayerID            string `json:"playerId" validate:"required,max=64"`
	Position            string `json:"position" validate:"omitempty,max=32"`
	IsSubstitution      bool   `json:"isSubstitution"`
	PerformanceCategory string `json:"performanceCategory,omitempty" validate:"omitempty,oneof=elite advanced intermediate development"`
}

type replaceSelectionRequest struct {
	Selection map[string]assignmentDTO `json:"selection" validate:"required,dive,keys,required,max=32,endkeys"`
}

type dropRequest struct {
	PlayerID   string `json:"playerId" validate:"omitempty,max=64"`
	FromSlotID string `json:"fromSlotId" validate:"omitempty,max=32"`
	ToSlotID   string `json:"toSlotId" validate:"required,max=32"`
	Position   string `json:"position" validate:"omitempty,max=32"`
}

type pickRequest struct {
	PlayerID string `json:"playerId" validate:"omitempty,max=64"`
}

type addPeriodRequest struct {
	Label           string `json:"label" validate:"omitempty,max=64"`
	DurationMinutes int    `json:"durationMinutes" validate:"required,gt=0,lte=240"`
	Half            int    `json:"half" validate:"omitempty,oneof=1 2"`
}

type editPeriodRequest struct {
	Label               *string `json:"label" validate:"omitempty,max=64"`
	DurationMinutes     *int    `json:"durationMinutes" validate:"omitempty,gt=0,lte=240"`
	PerformanceCategory *string `json:"performanceCategory" validate:"omitempty,max=32"`
}

type squadModeRequest struct {
	Mode string `json:"mode" validate:"required,oneof=picking_squad assigning_positions"`
}

type fixtureDTO struct {
	ID        string    `json:"id"`
	ClubID    string    `json:"clubId"`
	Opponent  string    `json:"opponent"`
	Venue     string    `json:"venue,omitempty"`
	KickoffAt time.Time `json:"kickoffAt"`
	TeamCount int       `json:"teamCount"`
	Status    string    `json:"status"`
}

type periodDTO struct {
	ID                  int    `json:"id"`
	Team                int    `json:"team"`
	Label               string `json:"label"`
	Half                int    `json:"half"`
	DurationMinutes     int    `json:"durationMinutes"`
	PerformanceCategory string `json:"performanceCategory,omitempty"`
}

type scopeSelectionDTO struct {
	Team      int                      `json:"team"`
	Period    int                      `json:"period"`
	Selection map[string]assignmentDTO `json:"selection"`
}

type boardDTO struct {
	Fixture    fixtureDTO          `json:"fixture"`
	Mode       string              `json:"mode"`
	Squad      []string            `json:"squad"`
	Periods    []periodDTO         `json:"periods"`
	Selections []scopeSelectionDTO `json:"selections"`
}

type saveResultDTO struct {
	FixtureID string    `json:"fixtureId"`
	Scopes    int       `json:"scopes"`
	Periods   int       `json:"periods"`
	SavedAt   time.Time `json:"savedAt"`
}

type selectionDTO struct {
	Team                int                      `json:"team"`
	Period              int                      `json:"period"`
	Selection           map[string]assignmentDTO `json:"selection"`
	SelectedPlayerID    string                   `json:"selectedPlayerId,omitempty"`
	PerformanceCategory string                   `json:"performanceCategory,omitempty"`
}

type dropResultDTO struct {
	Outcome   string                   `json:"outcome"`
	Selection map[string]assignmentDTO `json:"selection"`
}

type removeSlotResultDTO struct {
	Removed   bool                     `json:"removed"`
	Selection map[string]assignmentDTO `json:"selection"`
}

type pickResultDTO struct {
	SelectedPlayerID string `json:"selectedPlayerId"`
}

type playerDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SquadNumber *int   `json:"squadNumber,omitempty"`
}

type squadDTO struct {
	FixtureID string      `json:"fixtureId"`
	Mode      string      `json:"mode"`
	Players   []playerDTO `json:"players"`
}

type squadChangeDTO struct {
	PlayerID string `json:"playerId"`
	Changed  bool   `json:"changed"`
}

type initializePeriodsDTO struct {
	Created bool        `json:"created"`
	Periods []periodDTO `json:"periods"`
}

type slotDTO struct {
	ID             string `json:"id"`
	Position       string `json:"position"`
	IsSubstitution bool   `json:"isSubstitution"`
}

type formationDTO struct {
	Name    string    `json:"name"`
	Players int       `json:"players"`
	Bench   int       `json:"bench"`
	Slots   []slotDTO `json:"slots"`
}

func fixtureToDTO(item fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:        item.ID,
		ClubID:    item.ClubID,
		Opponent:  item.Opponent,
		Venue:     item.Venue,
		KickoffAt: item.KickoffAt,
		TeamCount: item.TeamCount,
		Status:    fixture.NormalizeStatus(item.Status),
	}
}

func periodToDTO(view usecase.PeriodView) periodDTO {
	return periodDTO{
		ID:                  view.ID,
		Team:                view.Team,
		Label:               view.Label,
		Half:                period.Half(view.ID),
		DurationMinutes:     int(view.Duration / time.Minute),
		PerformanceCategory: string(view.Category),
	}
}

func periodsToDTO(views []usecase.PeriodView) []periodDTO {
	out := make([]periodDTO, 0, len(views))
	for _, view := range views {
		out = append(out, periodToDTO(view))
	}
	return out
}

func selectionToDTO(selection lineup.Map) map[string]assignmentDTO {
	out := make(map[string]assignmentDTO, len(selection))
	for slotID, a := range selection {
		out[slotID] = assignmentDTO{
			PlayerID:            a.PlayerID,
			Position:            a.Position,
			IsSubstitution:      a.IsSubstitution,
			PerformanceCategory: string(a.PerformanceCategory),
		}
	}
	return out
}

func selectionFromDTO(selection map[string]assignmentDTO) lineup.Map {
	out := make(lineup.Map, len(selection))
	for slotID, a := range selection {
		category, _ := lineup.ParseCategory(a.PerformanceCategory)
		out[slotID] = lineup.Assignment{
			PlayerID:            a.PlayerID,
			Position:            a.Position,
			IsSubstitution:      a.IsSubstitution,
			PerformanceCategory: category,
		}
	}
	return out
}

func boardToDTO(view usecase.BoardView) boardDTO {
	out := boardDTO{
		Fixture:    fixtureToDTO(view.Fixture),
		Mode:       string(view.Mode),
		Squad:      view.Squad,
		Periods:    make([]periodDTO, 0),
		Selections: make([]scopeSelectionDTO, 0, len(view.Selections)),
	}
	if out.Squad == nil {
		out.Squad = []string{}
	}

	teams := make([]int, 0, len(view.Periods))
	for team := range view.Periods {
		teams = append(teams, team)
	}
	sort.Ints(teams)
	for _, team := range teams {
		out.Periods = append(out.Periods, periodsToDTO(view.Periods[team])...)
	}

	scopes := make([]lineup.Scope, 0, len(view.Selections))
	for scope := range view.Selections {
		scopes = append(scopes, scope)
	}
	sort.Slice(scopes, func(i, j int) bool {
		if scopes[i].Team != scopes[j].Team {
			return scopes[i].Team < scopes[j].Team
		}
		return scopes[i].Period < scopes[j].Period
	})
	for _, scope := range scopes {
		out.Selections = append(out.Selections, scopeSelectionDTO{
			Team:      scope.Team,
			Period:    scope.Period,
			Selection: selectionToDTO(view.Selections[scope]),
		})
	}
	return out
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerDTO{ID: p.ID, Name: p.Name, SquadNumber: p.SquadNumber})
	}
	return out
}

func formationToDTO(item formation.Formation) formationDTO {
	slots := item.Slots()
	out := formationDTO{
		Name:    item.Name,
		Players: item.Players,
		Bench:   item.Bench,
		Slots:   make([]slotDTO, 0, len(slots)),
	}
	for _, slot := range slots {
		out.Slots = append(out.Slots, slotDTO{ID: slot.ID, Position: slot.Position, IsSubstitution: slot.IsSubstitution})
	}
	return out
}
