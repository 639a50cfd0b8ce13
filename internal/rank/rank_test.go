package rank

import (
	"reflect"
	"strings"
	"testing"

	"toolybot/internal/storage"
)

type fakeSource struct {
	levels  map[string]storage.LevelRecord
	economy map[string]storage.EconomyRecord
}

func (f *fakeSource) GuildLevels(string) map[string]storage.LevelRecord {
	out := make(map[string]storage.LevelRecord, len(f.levels))
	for k, v := range f.levels {
		out[k] = v
	}
	return out
}

func (f *fakeSource) Economy(_, userID string) storage.EconomyRecord {
	return f.economy[userID]
}

func TestStandingsOrder(t *testing.T) {
	src := &fakeSource{
		levels: map[string]storage.LevelRecord{
			"A": {Level: 5, XP: 10},
			"B": {Level: 5, XP: 90},
			"C": {Level: 6, XP: 0},
		},
	}

	got := Standings(src, "g1")
	order := []string{got[0].UserID, got[1].UserID, got[2].UserID}
	want := []string{"C", "B", "A"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestStandingsTieBreakIsDeterministic(t *testing.T) {
	src := &fakeSource{
		levels: map[string]storage.LevelRecord{
			"zeta":  {Level: 3, XP: 50},
			"alpha": {Level: 3, XP: 50},
			"mid":   {Level: 3, XP: 50},
		},
	}

	first := Standings(src, "g1")
	for i := 0; i < 20; i++ {
		if got := Standings(src, "g1"); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: order changed: %v != %v", i, got, first)
		}
	}
	if first[0].UserID != "alpha" || first[2].UserID != "zeta" {
		t.Fatalf("ties not broken by user id: %v", first)
	}
}

func TestStandingsIncludeTotalCoins(t *testing.T) {
	src := &fakeSource{
		levels:  map[string]storage.LevelRecord{"A": {Level: 2, XP: 5}},
		economy: map[string]storage.EconomyRecord{"A": {Coins: 40, Bank: 60}},
	}

	got := Standings(src, "g1")
	if got[0].TotalCoins != 100 {
		t.Fatalf("total coins = %d, want 100", got[0].TotalCoins)
	}
}

func TestTopNTruncates(t *testing.T) {
	src := &fakeSource{
		levels: map[string]storage.LevelRecord{
			"A": {Level: 1}, "B": {Level: 2}, "C": {Level: 3}, "D": {Level: 4},
		},
	}

	got := TopN(src, "g1", 2)
	if len(got) != 2 || got[0].UserID != "D" || got[1].UserID != "C" {
		t.Fatalf("unexpected top 2: %v", got)
	}
}

func TestPositionOf(t *testing.T) {
	src := &fakeSource{
		levels: map[string]storage.LevelRecord{
			"A": {Level: 1, XP: 10},
			"B": {Level: 9, XP: 0},
		},
	}

	if got := PositionOf(src, "g1", "B"); got != 1 {
		t.Fatalf("position of B = %d, want 1", got)
	}
	if got := PositionOf(src, "g1", "A"); got != 2 {
		t.Fatalf("position of A = %d, want 2", got)
	}
	if got := PositionOf(src, "g1", "ghost"); got != 0 {
		t.Fatalf("position of unranked = %d, want 0", got)
	}
}

func TestRender(t *testing.T) {
	out := Render([]Entry{
		{UserID: "A", Level: 6, XP: 0, TotalCoins: 10},
		{UserID: "B", Level: 5, XP: 90, TotalCoins: 20},
		{UserID: "C", Level: 5, XP: 10, TotalCoins: 30},
		{UserID: "D", Level: 4, XP: 0, TotalCoins: 40},
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "🥇") || !strings.HasPrefix(lines[2], "🥉") {
		t.Fatalf("medal markers missing:\n%s", out)
	}
	if !strings.HasPrefix(lines[3], "`#4`") {
		t.Fatalf("numeric marker missing on line 4: %q", lines[3])
	}
	if !strings.Contains(lines[0], "<@A>") {
		t.Fatalf("mention missing: %q", lines[0])
	}

	if got := Render(nil); got != "No one has earned XP yet." {
		t.Fatalf("empty render = %q", got)
	}
}
