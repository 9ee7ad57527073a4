package formation

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"gopkg.in/yaml.v3"
)

//go:embed formations.yaml
var defaultCatalog []byte

var ErrFormationNotFound = errors.New("formation not found")

// Formation is a named pitch layout.
type Formation struct {
	Name      string   `yaml:"name"`
	Players   int      `yaml:"players"`
	Bench     int      `yaml:"bench"`
	Positions []string `yaml:"positions"`
}

// Slot is one position of a formation, starting or bench.
type Slot struct {
	ID             string
	Position       string
	IsSubstitution bool
}

// Slots lists starting positions followed by sub-0..sub-N bench slots.
func (f Formation) Slots() []Slot {
	out := make([]Slot, 0, len(f.Positions)+f.Bench)
	for _, pos := range f.Positions {
		out = append(out, Slot{ID: pos, Position: pos})
	}
	for i := 0; i < f.Bench; i++ {
		id := lineup.BenchSlotID(i)
		out = append(out, Slot{ID: id, Position: id, IsSubstitution: true})
	}
	return out
}

func (f Formation) validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("formation name is required")
	}
	if len(f.Positions) == 0 {
		return fmt.Errorf("formation %s has no positions", f.Name)
	}
	if f.Players != len(f.Positions) {
		return fmt.Errorf("formation %s declares %d players but lists %d positions", f.Name, f.Players, len(f.Positions))
	}
	if f.Bench < 0 {
		return fmt.Errorf("formation %s bench cannot be negative", f.Name)
	}
	seen := make(map[string]struct{}, len(f.Positions))
	for _, pos := range f.Positions {
		if lineup.IsSubstitutionLabel(pos) {
			return fmt.Errorf("formation %s position %s collides with bench labels", f.Name, pos)
		}
		if _, dup := seen[pos]; dup {
			return fmt.Errorf("formation %s repeats position %s", f.Name, pos)
		}
		seen[pos] = struct{}{}
	}
	return nil
}

// Catalog is an immutable set of formations.
type Catalog struct {
	byName map[string]Formation
}

type catalogFile struct {
	Formations []Formation `yaml:"formations"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, falling back to the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read formations file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse formations: %w", err)
	}
	if len(file.Formations) == 0 {
		return nil, fmt.Errorf("formations catalog is empty")
	}

	c := &Catalog{byName: make(map[string]Formation, len(file.Formations))}
	for _, f := range file.Formations {
		if err := f.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byName[f.Name]; dup {
			return nil, fmt.Errorf("duplicate formation %s", f.Name)
		}
		c.byName[f.Name] = f
	}
	return c, nil
}

func (c *Catalog) Get(name string) (Formation, error) {
	f, ok := c.byName[strings.TrimSpace(name)]
	if !ok {
		return Formation{}, fmt.Errorf("%w: %s", ErrFormationNotFound, name)
	}
	return f, nil
}

// List returns formations ordered by player count then name.
func (c *Catalog) List() []Formation {
	out := make([]Formation, 0, len(c.byName))
	for _, f := range c.byName {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Players != out[j].Players {
			return out[i].Players > out[j].Players
		}
		return out[i].Name < out[j].Name
	})
	return out
}
