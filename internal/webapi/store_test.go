package webapi

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/consilium-ai/consilium/internal/models"
)

func storedRun(id string, score float64, started time.Time) *StoredRun {
	return &StoredRun{
		Run: &models.OrchestrationRun{
			RunID: id,
			Results: map[string]models.AgentResult{
				models.PillarFinance: {
					Pillar:  models.PillarFinance,
					Status:  models.ResultSuccess,
					Payload: models.FinanceReport{Metrics: map[string]float64{"revenue_potential": score}},
				},
			},
			Status:     models.RunDone,
			StartedAt:  started,
			FinishedAt: started.Add(time.Second),
			Succeeded:  1,
			Total:      1,
		},
		Recommendation: &models.Recommendation{
			OverallScore: score,
			Category:     models.Conditional,
			Confidence:   0.5,
		},
	}
}

func TestFileStoreSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	sr := storedRun("run-1", 0.6, time.Now())
	if err := store.SaveRun(sr); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "run-1.json")); err != nil {
		t.Fatalf("run file missing: %v", err)
	}

	// A fresh store over the same directory sees the run, with the typed
	// pillar payload restored.
	fresh := NewFileStore(dir)
	detail, err := fresh.GetRun("run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	result := detail.Run.Results[models.PillarFinance]
	payload, ok := result.Payload.(models.FinanceReport)
	if !ok {
		t.Fatalf("payload type = %T, want FinanceReport", result.Payload)
	}
	if payload.Metrics["revenue_potential"] != 0.6 {
		t.Errorf("revenue_potential = %v, want 0.6", payload.Metrics["revenue_potential"])
	}
	if detail.Category != models.Conditional {
		t.Errorf("category = %q, want CONDITIONAL", detail.Category)
	}
}

func TestFileStoreInMemoryOnly(t *testing.T) {
	store := NewFileStore("")

	if err := store.SaveRun(storedRun("run-mem", 0.7, time.Now())); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if _, err := store.GetRun("run-mem"); err != nil {
		t.Fatalf("GetRun: %v", err)
	}
}

func TestFileStoreRejectsMissingID(t *testing.T) {
	store := NewFileStore("")
	if err := store.SaveRun(&StoredRun{Run: &models.OrchestrationRun{}}); err == nil {
		t.Fatal("SaveRun should reject a run without an id")
	}
	if err := store.SaveRun(nil); err == nil {
		t.Fatal("SaveRun should reject nil")
	}
}

func TestFileStoreSkipsUnreadableFiles(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "garbage.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore(dir)
	if err := store.SaveRun(storedRun("run-ok", 0.5, time.Now())); err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := store.ListRuns("", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1 (garbage skipped)", len(runs))
	}
}

func TestFileStoreSortOrder(t *testing.T) {
	store := NewFileStore("")
	base := time.Now()
	for i, score := range []float64{0.3, 0.9, 0.6} {
		sr := storedRun("run-"+string(rune('a'+i)), score, base.Add(time.Duration(i)*time.Minute))
		if err := store.SaveRun(sr); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := store.ListRuns("score", "asc")
	if err != nil {
		t.Fatal(err)
	}
	if runs[0].OverallScore != 0.3 || runs[2].OverallScore != 0.9 {
		t.Errorf("ascending score order wrong: %+v", runs)
	}

	runs, _ = store.ListRuns("score", "desc")
	if runs[0].OverallScore != 0.9 {
		t.Errorf("descending score order wrong: %+v", runs)
	}

	runs, _ = store.ListRuns("", "desc")
	if !runs[0].Timestamp.After(runs[2].Timestamp) {
		t.Errorf("descending timestamp order wrong: %+v", runs)
	}
}

func TestFileStoreSummary(t *testing.T) {
	store := NewFileStore("")
	if err := store.SaveRun(storedRun("run-1", 0.8, time.Now())); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveRun(storedRun("run-2", 0.4, time.Now())); err != nil {
		t.Fatal(err)
	}

	summary, err := store.Summary()
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalRuns != 2 {
		t.Fatalf("total_runs = %d, want 2", summary.TotalRuns)
	}
	if got := summary.AvgScore; math.Abs(got-0.6) > 1e-9 {
		t.Errorf("avg_score = %v, want 0.6", got)
	}
	if summary.Categories[string(models.Conditional)] != 2 {
		t.Errorf("categories = %v", summary.Categories)
	}
}
