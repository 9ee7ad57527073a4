package period

import (
	"errors"
	"testing"
	"time"
)

func TestPlan_InitializeDefaultsIsIdempotent(t *testing.T) {
	plan := NewPlan(1, nil)

	if !plan.InitializeDefaults() {
		t.Fatalf("first call should seed defaults")
	}
	if plan.InitializeDefaults() {
		t.Fatalf("second call should be a no-op")
	}

	periods := plan.Periods()
	if len(periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periods))
	}
	if periods[0].ID != FirstHalfBaseID || periods[0].Label != "First Half" {
		t.Fatalf("unexpected first period: %+v", periods[0])
	}
	if periods[1].ID != SecondHalfBaseID || periods[1].Label != "Second Half" {
		t.Fatalf("unexpected second period: %+v", periods[1])
	}
	if plan.TotalDuration() != 90*time.Minute {
		t.Fatalf("unexpected total duration %s", plan.TotalDuration())
	}
}

func TestPlan_AddAssignsIDsWithinHalf(t *testing.T) {
	plan := NewPlan(1, nil)
	plan.InitializeDefaults()

	q2, err := plan.Add("Second quarter", 20*time.Minute, 1)
	if err != nil {
		t.Fatalf("add to first half: %v", err)
	}
	if q2.ID != 2 {
		t.Fatalf("expected id 2, got %d", q2.ID)
	}

	extra, err := plan.Add("Extra time", 15*time.Minute, 0)
	if err != nil {
		t.Fatalf("add to last half: %v", err)
	}
	if extra.ID != 101 {
		t.Fatalf("expected id 101, got %d", extra.ID)
	}

	ids := make([]int, 0, plan.Len())
	for _, p := range plan.Periods() {
		ids = append(ids, p.ID)
	}
	want := []int{1, 2, 100, 101}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("periods not sorted: got=%v want=%v", ids, want)
		}
	}

	prev, ok := plan.Previous(100)
	if !ok || prev.ID != 2 {
		t.Fatalf("unexpected previous period: %+v ok=%v", prev, ok)
	}
}

func TestPlan_AddToEmptySecondHalfUsesBaseID(t *testing.T) {
	plan := NewPlan(3, []Period{{ID: 1, Label: "Only", Duration: time.Hour}})

	item, err := plan.Add("", 30*time.Minute, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if item.ID != SecondHalfBaseID || item.Team != 3 {
		t.Fatalf("unexpected period: %+v", item)
	}
	if item.Label != "Period 2" {
		t.Fatalf("unexpected default label %q", item.Label)
	}
}

func TestPlan_AddRejectsInvalidInput(t *testing.T) {
	plan := NewPlan(1, nil)

	if _, err := plan.Add("x", 0, 1); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := plan.Add("x", time.Minute, 3); !errors.Is(err, ErrInvalidHalf) {
		t.Fatalf("expected ErrInvalidHalf, got %v", err)
	}
}

func TestPlan_EditAndDelete(t *testing.T) {
	plan := NewPlan(1, nil)
	plan.InitializeDefaults()

	duration := 40 * time.Minute
	label := "1st"
	edited, err := plan.Edit(1, Update{Label: &label, Duration: &duration})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Label != "1st" || edited.Duration != duration {
		t.Fatalf("unexpected edit result: %+v", edited)
	}

	zero := time.Duration(0)
	if _, err := plan.Edit(1, Update{Duration: &zero}); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("expected ErrInvalidDuration, got %v", err)
	}
	if _, err := plan.Edit(7, Update{Label: &label}); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound, got %v", err)
	}

	if err := plan.Delete(100); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := plan.Delete(100); !errors.Is(err, ErrPeriodNotFound) {
		t.Fatalf("expected ErrPeriodNotFound on second delete, got %v", err)
	}
	if plan.Len() != 1 {
		t.Fatalf("expected 1 period left, got %d", plan.Len())
	}
}

func TestMetaKey(t *testing.T) {
	if got := MetaKey(100, 2); got != "100-2" {
		t.Fatalf("unexpected meta key %q", got)
	}
}
