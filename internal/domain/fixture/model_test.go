package fixture

import "testing"

func TestFixture_HasTeam(t *testing.T) {
	f := Fixture{ID: "fx-1", TeamCount: 2}
	for team, want := range map[int]bool{0: false, 1: true, 2: true, 3: false} {
		if got := f.HasTeam(team); got != want {
			t.Fatalf("HasTeam(%d) = %v, want %v", team, got, want)
		}
	}
}

func TestIsLocked(t *testing.T) {
	cases := map[string]bool{
		"":          false,
		"scheduled": false,
		"LIVE":      false,
		"finished":  true,
		"CANCELLED": true,
	}
	for status, want := range cases {
		if got := IsLocked(status); got != want {
			t.Fatalf("IsLocked(%q) = %v, want %v", status, got, want)
		}
	}
}
