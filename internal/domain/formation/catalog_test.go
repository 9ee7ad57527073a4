package formation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	f, err := c.Get("4-4-2")
	require.NoError(t, err)
	require.Len(t, f.Positions, 11)

	slots := f.Slots()
	require.Len(t, slots, 16)
	require.Equal(t, "GK", slots[0].ID)
	require.False(t, slots[0].IsSubstitution)
	require.Equal(t, "sub-0", slots[11].ID)
	require.True(t, slots[11].IsSubstitution)

	list := c.List()
	require.NotEmpty(t, list)
	require.Equal(t, 11, list[0].Players)
	require.Equal(t, 7, list[len(list)-1].Players)
}

func TestCatalog_GetUnknown(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	_, err = c.Get("1-1-1")
	require.True(t, errors.Is(err, ErrFormationNotFound))
}

func TestParse_RejectsInvalidFormations(t *testing.T) {
	cases := map[string]string{
		"empty":          "formations: []",
		"count mismatch": "formations:\n  - name: x\n    players: 2\n    positions: [GK]\n",
		"bench label":    "formations:\n  - name: x\n    players: 1\n    positions: [SUB]\n",
		"duplicate pos":  "formations:\n  - name: x\n    players: 2\n    positions: [GK, GK]\n",
		"not yaml":       "formations: [",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			require.Error(t, err)
		})
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formations.yaml")
	raw := "formations:\n  - name: futsal\n    players: 5\n    bench: 3\n    positions: [GK, DC, ML, MR, ST]\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	c, err := Load(path)
	require.NoError(t, err)

	f, err := c.Get("futsal")
	require.NoError(t, err)
	require.Len(t, f.Slots(), 8)
}
