package cards

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fixtureEntries() []Entry {
	cards := []Card{
		{Name: "Akari", Element: "Fire", HairColor: "Brown", Type: TypeHuman, HP: "80", ATK: "75", DEF: "70", SPD: "90", Talents: "Super Heal"},
		{Name: "Boreas", Element: "Dark", HairColor: "Off-White", Type: TypeNonHuman, HP: "120", ATK: "95", DEF: "60", SPD: "61", Talents: "Shadow Step"},
		{Name: "Celes", Element: "Neutral", HairColor: "White", Type: TypeHuman, HP: "65", ATK: "66", DEF: "67", SPD: "68", Talents: "Guard"},
		{Name: "Dorn", Element: "Light", HairColor: "Blonde", Type: TypeNonHuman, HP: "abc", ATK: "70", DEF: "70", SPD: "70", Talents: "Radiant Heal"},
		{Name: "Eris", Element: "Water", HairColor: "Dark Brown", Type: "", HP: "90", ATK: "90", DEF: "90", SPD: "90"},
	}
	entries := make([]Entry, len(cards))
	for i, c := range cards {
		entries[i] = Entry{ID: 0, Card: c}
	}
	return entries
}

func rowNames(v View) []string {
	return names(v.Rows)
}

func TestBuildViewNoConstraints(t *testing.T) {
	entries := fixtureEntries()

	v := BuildView(entries, FilterState{}, SortSpec{})

	if diff := cmp.Diff([]string{"Akari", "Boreas", "Celes", "Dorn", "Eris"}, rowNames(v)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	for i, r := range v.Rows {
		if r.Index != i {
			t.Errorf("row %d index = %d", i, r.Index)
		}
	}
	want := Counts{Total: 5, Filtered: 5, Human: 2, NonHuman: 2}
	if v.Counts != want {
		t.Errorf("Counts = %+v, want %+v", v.Counts, want)
	}
}

func TestBuildViewCountsIgnoreFilter(t *testing.T) {
	entries := fixtureEntries()

	v := BuildView(entries, FilterState{Search: "nobody"}, SortSpec{})

	if len(v.Rows) != 0 {
		t.Fatalf("rows = %v, want none", rowNames(v))
	}
	want := Counts{Total: 5, Filtered: 0, Human: 2, NonHuman: 2}
	if v.Counts != want {
		t.Errorf("Counts = %+v, want %+v", v.Counts, want)
	}
}

func TestBuildViewFilterThenSort(t *testing.T) {
	entries := fixtureEntries()
	f, err := ApplyPreset(FilterState{}, Round9, true)
	if err != nil {
		t.Fatal(err)
	}
	f = f.ToggleHair(HairRule{Mode: HairContains, Value: "Brown"})

	v := BuildView(entries, f, SortSpec{Column: ColumnSPD, Direction: Descending})

	if diff := cmp.Diff([]string{"Celes"}, rowNames(v)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if v.Rows[0].Index != 2 {
		t.Errorf("Index = %d, want 2", v.Rows[0].Index)
	}
	if v.Presets == "" {
		t.Errorf("Presets description empty")
	}
}

func TestBuildViewBannedTalents(t *testing.T) {
	entries := fixtureEntries()
	f := FilterState{}.BanTalent("heal")

	v := BuildView(entries, f, SortSpec{Column: ColumnName, Direction: Descending})

	if diff := cmp.Diff([]string{"Eris", "Celes", "Boreas"}, rowNames(v)); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"heal"}, v.BannedTalents); diff != "" {
		t.Errorf("banned talents mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildViewDoesNotReorderInput(t *testing.T) {
	entries := fixtureEntries()

	BuildView(entries, FilterState{}, SortSpec{Column: ColumnHP, Direction: Descending})

	if entries[0].Name != "Akari" || entries[4].Name != "Eris" {
		t.Errorf("input reordered: %v", entries)
	}
}

func TestBuildOptions(t *testing.T) {
	got := BuildOptions(fixtureEntries())

	want := Options{
		Elements:    []string{"Dark", "Fire", "Light", "Neutral", "Water"},
		HairColors:  []string{"Blonde", "Brown", "Dark Brown", "Off-White", "White"},
		Types:       []string{TypeHuman, TypeNonHuman},
		TalentTypes: []string{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterStateValueSemantics(t *testing.T) {
	base, err := FilterState{}.Toggle(FieldElement, "Fire")
	if err != nil {
		t.Fatal(err)
	}
	next, err := base.Toggle(FieldElement, "Water")
	if err != nil {
		t.Fatal(err)
	}
	if len(base.Element) != 1 || len(next.Element) != 2 {
		t.Errorf("base = %v, next = %v", base.Element, next.Element)
	}

	off, err := next.Toggle(FieldElement, "Fire")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Water"}, off.Element); diff != "" {
		t.Errorf("toggle off mismatch (-want +got):\n%s", diff)
	}
	if _, err := base.Toggle(Field("hair"), "x"); err == nil {
		t.Errorf("Toggle(unknown field) error = nil")
	}
	if !base.Clear().IsZero() {
		t.Errorf("Clear() is not zero")
	}
	if got := base.WithSearch("AKA").Search; got != "aka" {
		t.Errorf("Search = %q, want lower-cased", got)
	}
	if got := base.BanTalent(" ").BannedTalents; len(got) != 0 {
		t.Errorf("blank talent banned: %v", got)
	}
	if got := base.BanTalent("Heal").BanTalent("heal").UnbanTalent("HEAL").BannedTalents; len(got) != 0 {
		t.Errorf("BannedTalents = %v, want empty", got)
	}
}
