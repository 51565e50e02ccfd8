package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "scores.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{3, 1, 7} {
		if _, err := store.SaveScore("keyrunner", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("keyrunner_astar", 12); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("keyrunner", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 7 || scores[1].Score != 3 || scores[2].Score != 1 {
		t.Errorf("scores not sorted descending: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("created_at should be parsed")
	}

	limited, err := store.TopScores("keyrunner", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 scores with limit, got %d", len(limited))
	}

	all, err := store.AllScores("keyrunner")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 scores, got %d", len(all))
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("keyrunner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("expected 0 for empty game, got %d", high)
	}

	store.SaveScore("keyrunner", 2)
	store.SaveScore("keyrunner", 6)
	store.SaveScore("keyrunner", 4)

	high, err = store.HighScore("keyrunner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 6 {
		t.Errorf("expected high score 6, got %d", high)
	}

	stats, err := store.GetGameStats("keyrunner")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 6 || stats.TotalScore != 12 || stats.AvgScore != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty game: %+v", empty)
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.SaveRun(RunRecord{
		GameID:    "keyrunner",
		Player:    "alice",
		Seed:      42,
		Strategy:  "greedy",
		Score:     3,
		Levels:    4,
		Keys:      9,
		Catches:   1,
		EndReason: EndCaught,
		Duration:  90 * time.Second,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Fatalf("run id %q is not a UUID: %v", runID, err)
	}

	got, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil for a saved run")
	}
	if got.Seed != 42 || got.Score != 3 || got.Levels != 4 || got.Keys != 9 || got.Catches != 1 {
		t.Errorf("unexpected run: %+v", got)
	}
	if got.Duration != 90*time.Second {
		t.Errorf("duration = %v, expected 90s", got.Duration)
	}
	if got.EndReason != EndCaught || got.Player != "alice" {
		t.Errorf("unexpected run metadata: %+v", got)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() for missing run failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing run, got %+v", missing)
	}
}

func TestStoreSaveRunRejectsBadID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(RunRecord{RunID: "not-a-uuid", GameID: "keyrunner", EndReason: EndQuit}); err == nil {
		t.Error("expected error for malformed run id")
	}

	id := uuid.NewString()
	if _, err := store.SaveRun(RunRecord{RunID: id, GameID: "keyrunner", EndReason: EndQuit}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{RunID: id, GameID: "keyrunner", EndReason: EndQuit}); err == nil {
		t.Error("expected error for duplicate run id")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		game := "keyrunner"
		if i%2 == 1 {
			game = "keyrunner_astar"
		}
		if _, err := store.SaveRun(RunRecord{GameID: game, Seed: int64(i), Score: i, EndReason: EndQuit}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 runs, got %d", len(all))
	}
	if all[0].Seed != 4 {
		t.Errorf("most recent run should come first, got seed %d", all[0].Seed)
	}

	greedy, err := store.RecentRuns("keyrunner", 2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(greedy) != 2 || greedy[0].Seed != 4 || greedy[1].Seed != 2 {
		t.Errorf("unexpected filtered runs: %+v", greedy)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("keyrunner", 1)
	store.SaveScore("keyrunner_astar", 2)
	store.SaveRun(RunRecord{GameID: "keyrunner", EndReason: EndQuit})

	if err := store.ClearScores("keyrunner"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("keyrunner", 10); len(scores) != 0 {
		t.Errorf("expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("keyrunner", 10); len(runs) != 0 {
		t.Errorf("expected 0 runs after clear, got %d", len(runs))
	}
	if scores, _ := store.TopScores("keyrunner_astar", 10); len(scores) != 1 {
		t.Error("other modes should not be affected")
	}
}
