package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/crnsim/internal/crn"
)

func sampleResult() *crn.Result {
	res := crn.NewResult([]string{"a", "b"})
	res.Record(0.0, []float64{100, 50})
	res.Record(0.5, []float64{90, 60})
	res.Record(1.0, []float64{80, 70})
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("predator-prey", "stochastic", 0.01, 10.0, 42, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Network != "predator-prey" {
		t.Errorf("expected network predator-prey, got %s", meta.Network)
	}
	if meta.Engine != "stochastic" {
		t.Errorf("expected engine stochastic, got %s", meta.Engine)
	}
	if meta.Seed != 42 {
		t.Errorf("expected seed 42, got %d", meta.Seed)
	}
	if meta.Steps != 3 {
		t.Errorf("expected 3 steps, got %d", meta.Steps)
	}
	if len(meta.Species) != 2 || meta.Species[0] != "a" {
		t.Errorf("species names wrong: %v", meta.Species)
	}
	if meta.Final["a"] != 80 || meta.Final["b"] != 70 {
		t.Errorf("final abundances wrong: %v", meta.Final)
	}
}

func TestStoreLoadSeries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("chain", "deterministic", 0.01, 1.0, 0, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	res, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if res.Len() != 3 {
		t.Fatalf("expected 3 samples, got %d", res.Len())
	}
	if len(res.Names) != 2 || res.Names[1] != "b" {
		t.Errorf("names from header wrong: %v", res.Names)
	}
	if res.Times[1] != 0.5 {
		t.Errorf("expected time 0.5, got %f", res.Times[1])
	}
	if res.Species[2][0] != 80 {
		t.Errorf("expected sample 80, got %f", res.Species[2][0])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("polya", "stochastic", 0.01, 1.0, 1, sampleResult()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("polya", "stochastic", 0.01, 1.0, 1, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, runID, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(dir, runID, "series.csv")); os.IsNotExist(err) {
		t.Error("series.csv not created")
	}
}

func TestStoreEmptyResult(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("chain", "stochastic", 0.01, 1.0, 1, crn.NewResult([]string{"a"}))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	res, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if res.Len() != 0 {
		t.Errorf("expected empty series, got %d samples", res.Len())
	}
}
