package period

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Plan is the ordered set of periods of one team.
type Plan struct {
	team    int
	periods []Period
}

func NewPlan(team int, periods []Period) *Plan {
	p := &Plan{team: team}
	for _, item := range periods {
		item.Team = team
		p.periods = append(p.periods, item)
	}
	p.sort()
	return p
}

func (p *Plan) Periods() []Period {
	return append([]Period(nil), p.periods...)
}

func (p *Plan) Len() int {
	return len(p.periods)
}

func (p *Plan) Get(id int) (Period, bool) {
	for _, item := range p.periods {
		if item.ID == id {
			return item, true
		}
	}
	return Period{}, false
}

// Previous returns the period sorted immediately before id.
func (p *Plan) Previous(id int) (Period, bool) {
	var prev Period
	found := false
	for _, item := range p.periods {
		if item.ID >= id {
			break
		}
		prev = item
		found = true
	}
	return prev, found
}

// LastHalf is the half of the highest period, or 1 for an empty plan.
func (p *Plan) LastHalf() int {
	if len(p.periods) == 0 {
		return 1
	}
	return Half(p.periods[len(p.periods)-1].ID)
}

// Add appends a period to half. Its id is one past the highest id in that half,
// or the half's base id when the half is empty.
func (p *Plan) Add(label string, duration time.Duration, half int) (Period, error) {
	if duration <= 0 {
		return Period{}, ErrInvalidDuration
	}
	if half == 0 {
		half = p.LastHalf()
	}
	id, err := BaseID(half)
	if err != nil {
		return Period{}, err
	}
	for _, item := range p.periods {
		if Half(item.ID) == half && item.ID >= id {
			id = item.ID + 1
		}
	}
	if half == 1 && id >= SecondHalfBaseID {
		return Period{}, fmt.Errorf("%w: first half is full", ErrInvalidHalf)
	}

	label = strings.TrimSpace(label)
	if label == "" {
		label = fmt.Sprintf("Period %d", len(p.periods)+1)
	}

	item := Period{Team: p.team, ID: id, Label: label, Duration: duration}
	p.periods = append(p.periods, item)
	p.sort()
	return item, nil
}

// Edit merges update into period id.
func (p *Plan) Edit(id int, update Update) (Period, error) {
	for i := range p.periods {
		if p.periods[i].ID != id {
			continue
		}
		if update.Duration != nil {
			if *update.Duration <= 0 {
				return Period{}, ErrInvalidDuration
			}
			p.periods[i].Duration = *update.Duration
		}
		if update.Label != nil {
			if label := strings.TrimSpace(*update.Label); label != "" {
				p.periods[i].Label = label
			}
		}
		return p.periods[i], nil
	}
	return Period{}, fmt.Errorf("%w: team=%d period=%d", ErrPeriodNotFound, p.team, id)
}

func (p *Plan) Delete(id int) error {
	for i := range p.periods {
		if p.periods[i].ID == id {
			p.periods = append(p.periods[:i], p.periods[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: team=%d period=%d", ErrPeriodNotFound, p.team, id)
}

// InitializeDefaults seeds First Half and Second Half when the plan is empty.
// It reports whether anything was added.
func (p *Plan) InitializeDefaults() bool {
	if len(p.periods) > 0 {
		return false
	}
	p.periods = []Period{
		{Team: p.team, ID: FirstHalfBaseID, Label: "First Half", Duration: DefaultDuration},
		{Team: p.team, ID: SecondHalfBaseID, Label: "Second Half", Duration: DefaultDuration},
	}
	return true
}

// TotalDuration sums every period of the plan.
func (p *Plan) TotalDuration() time.Duration {
	var total time.Duration
	for _, item := range p.periods {
		total += item.Duration
	}
	return total
}

func (p *Plan) sort() {
	sort.SliceStable(p.periods, func(i, j int) bool {
		return p.periods[i].ID < p.periods[j].ID
	})
}
