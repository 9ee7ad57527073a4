package player

import "fmt"

// Player is a club roster member. SquadNumber is optional.
type Player struct {
	ID          string
	ClubID      string
	Name        string
	SquadNumber *int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.ClubID == "" {
		return fmt.Errorf("player club id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.SquadNumber != nil && *p.SquadNumber < 0 {
		return fmt.Errorf("squad number cannot be negative")
	}

	return nil
}
