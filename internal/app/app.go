// Package app provides the main application logic for the ARMagic stroke
// recognition system.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
	"github.com/nileshs31/Project-ARMagic/internal/gesture"
	"github.com/nileshs31/Project-ARMagic/internal/store"
)

// Config holds configuration options for the application.
type Config struct {
	Store           *store.Store
	Recognizer      gesture.Config
	Heuristic       gesture.HeuristicConfig
	DefaultStrategy gesture.Strategy
}

// Classification is the strategy-tagged result of classifying one stroke.
type Classification struct {
	Strategy gesture.Strategy `json:"strategy"`
	Label    string           `json:"label"`
	Score    float64          `json:"score,omitempty"`
	Margin   float64          `json:"margin,omitempty"`
	Shape    *gesture.Shape   `json:"shape,omitempty"`
}

// App orchestrates the classifiers, the trainer and the template store.
type App struct {
	config     Config
	recognizer *gesture.Recognizer
	cloud      *gesture.CloudMatcher
	heuristic  *gesture.Heuristic
	trainer    *gesture.Trainer
	mu         sync.RWMutex
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	if config.DefaultStrategy == "" {
		config.DefaultStrategy = gesture.StrategyKNN
	}

	return &App{
		config:     config,
		recognizer: gesture.NewRecognizer(config.Recognizer),
		cloud:      gesture.NewCloudMatcher(),
		heuristic:  gesture.NewHeuristic(config.Heuristic),
		trainer:    gesture.NewTrainer(),
	}
}

// LoadTemplates loads stroke templates from the database into the recognizer,
// replacing whatever is currently held in memory.
func (a *App) LoadTemplates() error {
	if a.config.Store == nil {
		return nil
	}

	templates, err := a.config.Store.Templates().List()
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.recognizer.ClearTemplates()
	loaded := 0
	for _, t := range templates {
		points, err := a.config.Store.Templates().GetPoints(t.ID)
		if err != nil {
			log.Printf("Failed to load points for %s: %v", t.Name, err)
			continue
		}
		if _, err := a.recognizer.AddTemplatePoints(t.ID, t.Name, points); err != nil {
			log.Printf("Failed to register template %s: %v", t.Name, err)
			continue
		}
		loaded++
	}

	log.Printf("Loaded %d templates from database", loaded)
	return nil
}

// SaveTemplate learns a new template from a raw stroke and persists it.
func (a *App) SaveTemplate(name string, stroke []geom.Vec3) (*gesture.Template, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	template, err := a.recognizer.AddTemplate(name, stroke)
	if err != nil {
		return nil, err
	}

	if a.config.Store != nil {
		record := &store.Template{ID: template.ID, Name: template.Name}
		if err := a.config.Store.Templates().Create(record, template.Points); err != nil {
			// Keep memory and store in step: drop the template again
			// rather than leave an exemplar the store never saw.
			a.recognizer.RemoveTemplate(template.ID)
			return nil, fmt.Errorf("failed to persist template: %w", err)
		}
	}

	return template, nil
}

// TrainTemplate averages the recorded samples of a stored template into a
// fresh exemplar and registers it under the template's name.
func (a *App) TrainTemplate(templateID string) (*gesture.Template, error) {
	if a.config.Store == nil {
		return nil, errors.New("no store configured")
	}

	record, err := a.config.Store.Templates().GetByID(templateID)
	if err != nil {
		return nil, err
	}

	samples, err := a.config.Store.Samples().GetByTemplateID(templateID)
	if err != nil {
		return nil, err
	}

	raw := make([]json.RawMessage, len(samples))
	for i, s := range samples {
		raw[i] = s.Data
	}

	stroke, err := a.trainer.Train(raw)
	if err != nil {
		return nil, err
	}

	return a.SaveTemplate(record.Name, stroke)
}

// DeleteTemplate removes a template from the store and reloads the
// recognizer's template set.
func (a *App) DeleteTemplate(id string) error {
	if a.config.Store == nil {
		return errors.New("no store configured")
	}
	if err := a.config.Store.Templates().Delete(id); err != nil {
		return err
	}
	return a.LoadTemplates()
}

// Classify runs the given strategy on a raw stroke. An empty strategy falls
// back to the configured default.
func (a *App) Classify(strategy gesture.Strategy, stroke []geom.Vec3) (Classification, error) {
	if strategy == "" {
		strategy = a.config.DefaultStrategy
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	switch strategy {
	case gesture.StrategyKNN:
		res := a.recognizer.Recognize(stroke)
		return Classification{
			Strategy: strategy,
			Label:    res.Label,
			Score:    res.Score,
			Margin:   res.Margin,
		}, nil

	case gesture.StrategyCloud:
		if len(stroke) < gesture.MinStrokePoints {
			return Classification{Strategy: strategy, Label: gesture.LabelTooShort}, nil
		}
		res := a.cloud.Classify(geom.ProjectToPlane(stroke))
		return Classification{
			Strategy: strategy,
			Label:    res.Label,
			Score:    res.Distance,
		}, nil

	case gesture.StrategyHeuristic:
		shape := a.heuristic.Classify(stroke)
		return Classification{
			Strategy: strategy,
			Label:    string(shape.Kind),
			Score:    shape.Confidence,
			Shape:    &shape,
		}, nil

	default:
		return Classification{}, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// ExportTemplates writes the in-memory template set to a JSON file.
func (a *App) ExportTemplates(path string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.recognizer.SaveFile(path)
}

// ImportTemplates replaces the in-memory template set with the contents of a
// JSON file. A missing file is logged and ignored so a fresh install starts
// clean; a malformed file is a hard error.
func (a *App) ImportTemplates(path string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	err := a.recognizer.LoadFile(path)
	if errors.Is(err, gesture.ErrNoTemplateFile) {
		log.Printf("No template file at %s, starting with current set", path)
		return nil
	}
	return err
}

// Recognizer returns the DTW template recognizer.
func (a *App) Recognizer() *gesture.Recognizer {
	return a.recognizer
}

// CloudMatcher returns the training-free cloud matcher.
func (a *App) CloudMatcher() *gesture.CloudMatcher {
	return a.cloud
}

// Heuristic returns the geometric shape classifier.
func (a *App) Heuristic() *gesture.Heuristic {
	return a.heuristic
}
