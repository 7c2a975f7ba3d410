package cards

import (
	"errors"
	"slices"
	"testing"
)

func mustToggle(t *testing.T, f FilterState, p PresetID) FilterState {
	t.Helper()
	next, err := TogglePreset(f, p)
	if err != nil {
		t.Fatalf("TogglePreset(%s) error = %v", p, err)
	}
	return next
}

func TestApplyPresetCascadeUp(t *testing.T) {
	f := mustToggle(t, FilterState{}, Round10)

	want := []PresetID{Round5, Round7, Round10}
	if !slices.Equal(f.Presets, want) {
		t.Fatalf("Presets = %v, want %v", f.Presets, want)
	}
	if f.IsActive(Round9) {
		t.Errorf("Round9 active after activating Round10")
	}
	if f.IsActive(Round12) {
		t.Errorf("Round12 active after activating Round10")
	}
	if !f.StatBand {
		t.Errorf("StatBand = false, want true")
	}
	if !slices.Equal(f.Element, []string{"Dark", "Neutral", "Light"}) {
		t.Errorf("Element = %v", f.Element)
	}
	if len(f.HairColor) != 0 {
		t.Errorf("HairColor = %v, want no round 9 rules", f.HairColor)
	}
	if len(f.Human) != 0 {
		t.Errorf("Human = %v, want empty", f.Human)
	}
}

func TestApplyPresetOnlyLowerRanksCascade(t *testing.T) {
	f := mustToggle(t, FilterState{}, Round7)

	if !slices.Equal(f.Presets, []PresetID{Round5, Round7}) {
		t.Fatalf("Presets = %v", f.Presets)
	}
	if len(f.HairColor) != 0 {
		t.Errorf("round 9 rules applied by round 7: %v", f.HairColor)
	}
}

func TestApplyPresetCascadeDown(t *testing.T) {
	f := mustToggle(t, FilterState{}, Round12)
	if !slices.Equal(f.Presets, []PresetID{Round5, Round7, Round9, Round10, Round12}) {
		t.Fatalf("Presets = %v", f.Presets)
	}

	f = mustToggle(t, f, Round7)

	if !slices.Equal(f.Presets, []PresetID{Round5}) {
		t.Fatalf("Presets = %v, want [5]", f.Presets)
	}
	if !f.StatBand {
		t.Errorf("StatBand cleared by deactivating Round7")
	}
	if len(f.Element) != 0 || len(f.HairColor) != 0 || len(f.Human) != 0 {
		t.Errorf("preset constraints left behind: %+v", f)
	}
}

func TestApplyPresetDeactivatesOnlyDependents(t *testing.T) {
	f := mustToggle(t, FilterState{}, Round12)

	f = mustToggle(t, f, Round9)

	want := []PresetID{Round5, Round7, Round10}
	if !slices.Equal(f.Presets, want) {
		t.Fatalf("Presets = %v, want %v", f.Presets, want)
	}
	if len(f.HairColor) != 0 || len(f.Human) != 0 {
		t.Errorf("round 9 or 12 constraints left behind: %+v", f)
	}
	if !slices.Contains(f.Element, "Neutral") {
		t.Errorf("Element = %v, round 10 lost Neutral", f.Element)
	}

	f = mustToggle(t, f, Round10)
	if !slices.Equal(f.Presets, []PresetID{Round5, Round7}) {
		t.Fatalf("Presets = %v, want [5 7]", f.Presets)
	}
}

func TestApplyPresetKeepsUserSelections(t *testing.T) {
	f, err := FilterState{}.Toggle(FieldElement, "Fire")
	if err != nil {
		t.Fatal(err)
	}
	f = f.ToggleHair(HairRule{Mode: HairExact, Value: "Black"})

	f = mustToggle(t, f, Round9)
	f = mustToggle(t, f, Round5)

	if len(f.Presets) != 0 {
		t.Fatalf("Presets = %v, want none", f.Presets)
	}
	if !slices.Equal(f.Element, []string{"Fire"}) {
		t.Errorf("Element = %v, want [Fire]", f.Element)
	}
	if !slices.Equal(f.HairColor, []HairRule{{Mode: HairExact, Value: "Black"}}) {
		t.Errorf("HairColor = %v", f.HairColor)
	}
}

func TestApplyPresetIdempotent(t *testing.T) {
	f, err := ApplyPreset(FilterState{}, Round10, true)
	if err != nil {
		t.Fatal(err)
	}
	again, err := ApplyPreset(f, Round10, true)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(again.Element, f.Element) || !slices.Equal(again.Presets, f.Presets) {
		t.Errorf("second activation changed state: %+v vs %+v", again, f)
	}
}

func TestApplyPresetDoesNotMutateInput(t *testing.T) {
	base, err := ApplyPreset(FilterState{}, Round7, true)
	if err != nil {
		t.Fatal(err)
	}
	before := slices.Clone(base.Element)

	if _, err := ApplyPreset(base, Round7, false); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(base.Element, before) {
		t.Errorf("input state mutated: %v, want %v", base.Element, before)
	}
}

func TestApplyPresetUnknown(t *testing.T) {
	_, err := ApplyPreset(FilterState{}, PresetID("8"), true)
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("error = %v, want ErrUnknownPreset", err)
	}
}

func TestPresetDescription(t *testing.T) {
	if got := PresetDescription(FilterState{}); got != "" {
		t.Errorf("PresetDescription(empty) = %q", got)
	}

	f := mustToggle(t, FilterState{}, Round7)
	want := Round5.Description() + " + " + Round7.Description()
	if got := PresetDescription(f); got != want {
		t.Errorf("PresetDescription() = %q, want %q", got, want)
	}
}
