package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nileshs31/Project-ARMagic/internal/gesture"
	"github.com/nileshs31/Project-ARMagic/internal/store"
	"github.com/nileshs31/Project-ARMagic/internal/testutil"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "armagic-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return New(Config{Store: s})
}

func TestSaveTemplatePersists(t *testing.T) {
	a := newTestApp(t)

	template, err := a.SaveTemplate("circle", testutil.Circle(48, 1))
	if err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	// The template lands in both the recognizer and the store
	if len(a.Recognizer().Templates()) != 1 {
		t.Errorf("expected 1 in-memory template, got %d", len(a.Recognizer().Templates()))
	}

	record, err := a.config.Store.Templates().GetByID(template.ID)
	if err != nil {
		t.Fatalf("failed to read template back from store: %v", err)
	}
	if record.Name != "circle" {
		t.Errorf("expected stored name %q, got %q", "circle", record.Name)
	}

	points, err := a.config.Store.Templates().GetPoints(template.ID)
	if err != nil {
		t.Fatalf("failed to read points back from store: %v", err)
	}
	if len(points) != len(template.Points) {
		t.Errorf("expected %d stored points, got %d", len(template.Points), len(points))
	}
}

func TestSaveTemplateRollsBackOnStoreFailure(t *testing.T) {
	a := newTestApp(t)
	a.config.Store.Close()

	if _, err := a.SaveTemplate("circle", testutil.Circle(48, 1)); err == nil {
		t.Fatal("expected error when the store is closed")
	}

	// A template the store never saw must not linger in the recognizer
	if len(a.Recognizer().Templates()) != 0 {
		t.Errorf("expected no in-memory templates after failed persist, got %d", len(a.Recognizer().Templates()))
	}
}

func TestLoadTemplatesRestoresRecognizer(t *testing.T) {
	a := newTestApp(t)

	if _, err := a.SaveTemplate("circle", testutil.Circle(48, 1)); err != nil {
		t.Fatalf("failed to save template: %v", err)
	}
	if _, err := a.SaveTemplate("square", testutil.SquareDense(1, 48)); err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	// A fresh app over the same store starts empty and recovers the set
	fresh := New(Config{Store: a.config.Store})
	if len(fresh.Recognizer().Templates()) != 0 {
		t.Fatal("expected a fresh app to start with no templates")
	}
	if err := fresh.LoadTemplates(); err != nil {
		t.Fatalf("failed to load templates: %v", err)
	}
	if len(fresh.Recognizer().Templates()) != 2 {
		t.Fatalf("expected 2 templates after load, got %d", len(fresh.Recognizer().Templates()))
	}

	res, err := fresh.Classify(gesture.StrategyKNN, testutil.Circle(48, 1))
	if err != nil {
		t.Fatalf("failed to classify: %v", err)
	}
	if res.Label != "circle" {
		t.Errorf("expected label %q after reload, got %q", "circle", res.Label)
	}
}

func TestClassifyStrategies(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.SaveTemplate("circle", testutil.Circle(48, 1)); err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	knn, err := a.Classify(gesture.StrategyKNN, testutil.Circle(48, 1))
	if err != nil {
		t.Fatalf("knn classify failed: %v", err)
	}
	if knn.Label != "circle" {
		t.Errorf("knn: expected label %q, got %q", "circle", knn.Label)
	}

	cloud, err := a.Classify(gesture.StrategyCloud, testutil.Circle(64, 1))
	if err != nil {
		t.Fatalf("cloud classify failed: %v", err)
	}
	if cloud.Label != "circle" {
		t.Errorf("cloud: expected label %q, got %q", "circle", cloud.Label)
	}

	heuristic, err := a.Classify(gesture.StrategyHeuristic, testutil.Circle(64, 1))
	if err != nil {
		t.Fatalf("heuristic classify failed: %v", err)
	}
	if heuristic.Label != string(gesture.ShapeCircle) {
		t.Errorf("heuristic: expected label %q, got %q", gesture.ShapeCircle, heuristic.Label)
	}
	if heuristic.Shape == nil {
		t.Error("heuristic: expected shape details to be populated")
	}

	if _, err := a.Classify(gesture.Strategy("bogus"), testutil.Circle(48, 1)); err == nil {
		t.Error("expected error for unknown strategy")
	}
}

func TestClassifyDefaultStrategy(t *testing.T) {
	a := newTestApp(t)

	// No templates yet, the default k-NN strategy reports that
	res, err := a.Classify("", testutil.Circle(48, 1))
	if err != nil {
		t.Fatalf("failed to classify: %v", err)
	}
	if res.Strategy != gesture.StrategyKNN {
		t.Errorf("expected default strategy %q, got %q", gesture.StrategyKNN, res.Strategy)
	}
	if res.Label != gesture.LabelNoTemplates {
		t.Errorf("expected label %q, got %q", gesture.LabelNoTemplates, res.Label)
	}
}

func TestTrainTemplate(t *testing.T) {
	a := newTestApp(t)

	template, err := a.SaveTemplate("circle", testutil.Circle(48, 1))
	if err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	var samples []json.RawMessage
	for seed := int64(1); seed <= 3; seed++ {
		data, err := json.Marshal(gesture.StrokeSample{
			Points: testutil.Jitter(testutil.Circle(48, 1), 0.02, seed),
		})
		if err != nil {
			t.Fatalf("failed to marshal sample: %v", err)
		}
		samples = append(samples, data)
	}
	if err := a.config.Store.Samples().Create(template.ID, samples); err != nil {
		t.Fatalf("failed to store samples: %v", err)
	}

	trained, err := a.TrainTemplate(template.ID)
	if err != nil {
		t.Fatalf("failed to train template: %v", err)
	}
	if trained.Name != "circle" {
		t.Errorf("expected trained template name %q, got %q", "circle", trained.Name)
	}
	if trained.ID == template.ID {
		t.Error("expected the trained exemplar to get its own ID")
	}

	// The averaged exemplar joins the class in store and memory
	if len(a.Recognizer().Templates()) != 2 {
		t.Errorf("expected 2 in-memory templates after training, got %d", len(a.Recognizer().Templates()))
	}
}

func TestTrainTemplateNoSamples(t *testing.T) {
	a := newTestApp(t)

	template, err := a.SaveTemplate("circle", testutil.Circle(48, 1))
	if err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	if _, err := a.TrainTemplate(template.ID); err == nil {
		t.Error("expected error when training without samples")
	}
}

func TestDeleteTemplate(t *testing.T) {
	a := newTestApp(t)

	template, err := a.SaveTemplate("circle", testutil.Circle(48, 1))
	if err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	if err := a.DeleteTemplate(template.ID); err != nil {
		t.Fatalf("failed to delete template: %v", err)
	}
	if len(a.Recognizer().Templates()) != 0 {
		t.Errorf("expected no templates after delete, got %d", len(a.Recognizer().Templates()))
	}

	if err := a.DeleteTemplate("non-existent"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestExportImportTemplates(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.SaveTemplate("circle", testutil.Circle(48, 1)); err != nil {
		t.Fatalf("failed to save template: %v", err)
	}

	path := filepath.Join(t.TempDir(), "templates.json")
	if err := a.ExportTemplates(path); err != nil {
		t.Fatalf("failed to export templates: %v", err)
	}

	other := New(Config{})
	if err := other.ImportTemplates(path); err != nil {
		t.Fatalf("failed to import templates: %v", err)
	}
	if len(other.Recognizer().Templates()) != 1 {
		t.Errorf("expected 1 template after import, got %d", len(other.Recognizer().Templates()))
	}

	// A missing file is not an error, the current set stays
	if err := other.ImportTemplates(filepath.Join(t.TempDir(), "nope.json")); err != nil {
		t.Errorf("expected missing file to be tolerated, got: %v", err)
	}
	if len(other.Recognizer().Templates()) != 1 {
		t.Errorf("expected templates preserved after missing file, got %d", len(other.Recognizer().Templates()))
	}
}
