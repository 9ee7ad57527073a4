package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/player"
)

const (
	ClubIDRiversideU12 = "club-riverside-u12"

	FixtureIDHomeOpener  = "fx-riverside-001"
	FixtureIDAwayFinal   = "fx-riverside-002"
	FixtureIDPlayedMatch = "fx-riverside-000"
)

func SeedPlayers() []player.Player {
	names := []string{
		"Ava Thompson",
		"Noah Patel",
		"Mia Okafor",
		"Leo Fernandes",
		"Isla Murphy",
		"Ethan Kowalski",
		"Zara Ahmed",
		"Oscar Lindqvist",
		"Ruby Chen",
		"Jack Moreno",
		"Freya Walsh",
		"Arjun Nair",
		"Sofia Rossi",
		"Finn O'Brien",
	}

	out := make([]player.Player, 0, len(names))
	for i, name := range names {
		number := i + 1
		item := player.Player{
			ID:     riversidePlayerID(number),
			ClubID: ClubIDRiversideU12,
			Name:   name,
		}
		// Trialists carry no shirt number yet.
		if number <= 12 {
			item.SquadNumber = &number
		}
		out = append(out, item)
	}
	return out
}

func SeedFixtures() []fixture.Fixture {
	return []fixture.Fixture{
		{
			ID:        FixtureIDPlayedMatch,
			ClubID:    ClubIDRiversideU12,
			Opponent:  "Hillside Rovers",
			Venue:     "Hillside Park",
			KickoffAt: time.Date(2026, 9, 12, 9, 30, 0, 0, time.UTC),
			TeamCount: 1,
			Status:    fixture.StatusFinished,
		},
		{
			ID:        FixtureIDHomeOpener,
			ClubID:    ClubIDRiversideU12,
			Opponent:  "Northgate Juniors",
			Venue:     "Riverside Rec Ground",
			KickoffAt: time.Date(2026, 10, 24, 10, 0, 0, 0, time.UTC),
			TeamCount: 2,
			Status:    fixture.StatusScheduled,
		},
		{
			ID:        FixtureIDAwayFinal,
			ClubID:    ClubIDRiversideU12,
			Opponent:  "Eastfield Athletic",
			Venue:     "Eastfield Sports Centre",
			KickoffAt: time.Date(2026, 11, 7, 11, 0, 0, 0, time.UTC),
			TeamCount: 1,
			Status:    fixture.StatusScheduled,
		},
	}
}

func riversidePlayerID(number int) string {
	return fmt.Sprintf("rv-%02d", number)
}
