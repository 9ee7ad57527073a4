package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/squad"
)

type SquadView struct {
	FixtureID string
	Mode      squad.Mode
	Players   []player.Player
}

type SquadService struct {
	boards *BoardService
}

func NewSquadService(boards *BoardService) *SquadService {
	return &SquadService{boards: boards}
}

// Get returns squad members in roster order.
func (s *SquadService) Get(ctx context.Context, fixtureID string) (SquadView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Get", fixtureAttr(fixtureID))
	defer span.End()

	var (
		clubID string
		gate   *squad.Gate
	)
	err := s.boards.withBoard(ctx, fixtureID, func(b *board) error {
		clubID = b.fixture.ClubID
		gate = squad.NewGate(b.gate.Members(), b.gate.Mode())
		return nil
	})
	if err != nil {
		return SquadView{}, err
	}

	roster, err := s.boards.roster(ctx, clubID)
	if err != nil {
		return SquadView{}, err
	}
	return SquadView{FixtureID: strings.TrimSpace(fixtureID), Mode: gate.Mode(), Players: gate.Available(roster)}, nil
}

// AddPlayer adds a roster player to the squad. Adding a member again is a no-op.
func (s *SquadService) AddPlayer(ctx context.Context, fixtureID, playerID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.AddPlayer", fixtureAttr(fixtureID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return false, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	var added bool
	err := s.boards.withBoard(ctx, fixtureID, func(b *board) error {
		if err := ensurePicking(b); err != nil {
			return err
		}

		roster, err := s.boards.roster(ctx, b.fixture.ClubID)
		if err != nil {
			return err
		}
		if !containsPlayer(roster, playerID) {
			return fmt.Errorf("%w: player=%s club=%s", ErrNotFound, playerID, b.fixture.ClubID)
		}

		added = b.gate.Add(playerID)
		if !added {
			return nil
		}
		return s.saveGate(ctx, b)
	})
	if err != nil {
		return false, err
	}
	return added, nil
}

// RemovePlayer drops a player from the squad. Slots the player holds are kept.
func (s *SquadService) RemovePlayer(ctx context.Context, fixtureID, playerID string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.RemovePlayer", fixtureAttr(fixtureID))
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return false, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	var removed bool
	err := s.boards.withBoard(ctx, fixtureID, func(b *board) error {
		if err := ensurePicking(b); err != nil {
			return err
		}
		removed = b.gate.Remove(playerID)
		if !removed {
			return nil
		}
		return s.saveGate(ctx, b)
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

func (s *SquadService) SetMode(ctx context.Context, fixtureID, rawMode string) (squad.Mode, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.SetMode", fixtureAttr(fixtureID))
	defer span.End()

	mode, err := squad.ParseMode(rawMode)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	err = s.boards.withBoard(ctx, fixtureID, func(b *board) error {
		if err := ensureEditable(b); err != nil {
			return err
		}
		previous := b.gate.Mode()
		if previous == mode {
			return nil
		}
		if err := b.gate.SetMode(mode); err != nil {
			if errors.Is(err, squad.ErrEmptySquad) {
				return fmt.Errorf("%w: %w", ErrConflict, err)
			}
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		updated, err := s.boards.persistSquadMode(ctx, b.fixture.ID, mode)
		if err == nil && !updated {
			err = s.saveGate(ctx, b)
		}
		if err != nil {
			_ = b.gate.SetMode(previous)
			if errors.Is(err, ErrDependencyUnavailable) {
				return err
			}
			return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return mode, nil
}

// Available lists squad players that hold no slot in any of the given scopes.
// Without scopes every squad member is returned.
func (s *SquadService) Available(ctx context.Context, fixtureID string, scopes ...lineup.Scope) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Available", fixtureAttr(fixtureID))
	defer span.End()

	var (
		clubID string
		gate   *squad.Gate
		maps   []lineup.Map
	)
	err := s.boards.withBoard(ctx, fixtureID, func(b *board) error {
		clubID = b.fixture.ClubID
		gate = squad.NewGate(b.gate.Members(), b.gate.Mode())
		for _, scope := range scopes {
			if store, ok := b.selections.Lookup(scope); ok {
				maps = append(maps, store.Snapshot())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	roster, err := s.boards.roster(ctx, clubID)
	if err != nil {
		return nil, err
	}
	return gate.Available(roster, maps...), nil
}

func (s *SquadService) saveGate(ctx context.Context, b *board) error {
	record := squad.Record{FixtureID: b.fixture.ID, PlayerIDs: b.gate.Members(), Mode: b.gate.Mode()}
	if err := s.boards.persistSquad(ctx, record); err != nil {
		return fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
	}
	return nil
}

func ensurePicking(b *board) error {
	if err := ensureEditable(b); err != nil {
		return err
	}
	if b.gate.Mode() != squad.ModePickingSquad {
		return fmt.Errorf("%w: board is in %s mode", ErrConflict, b.gate.Mode())
	}
	return nil
}

func containsPlayer(roster []player.Player, playerID string) bool {
	for _, p := range roster {
		if p.ID == playerID {
			return true
		}
	}
	return false
}
