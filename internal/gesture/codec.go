package gesture

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

// ErrNoTemplateFile is returned by LoadFile when the template file does not
// exist. It is a recoverable condition: the template set is left untouched
// and the caller proceeds with what it has.
var ErrNoTemplateFile = errors.New("template file not found")

// templateFile is the on-disk representation of a template set.
type templateFile struct {
	Version   int              `json:"version"`
	Templates []templateRecord `json:"templates"`
}

// templateRecord flattens one template's points into [x0, y0, x1, y1, ...].
type templateRecord struct {
	ID     string    `json:"id,omitempty"`
	Name   string    `json:"name"`
	Points []float64 `json:"points"`
	Length int       `json:"length"`
}

const templateFileVersion = 1

// SaveFile writes the whole template set to path as JSON. The file is
// rewritten atomically enough for a single-writer store: whole-file write,
// no incremental updates.
func (r *Recognizer) SaveFile(path string) error {
	file := templateFile{
		Version:   templateFileVersion,
		Templates: make([]templateRecord, 0, len(r.templates)),
	}
	for _, t := range r.templates {
		flat := make([]float64, 0, 2*len(t.Points))
		for _, p := range t.Points {
			flat = append(flat, p.X, p.Y)
		}
		file.Templates = append(file.Templates, templateRecord{
			ID:     t.ID,
			Name:   t.Name,
			Points: flat,
			Length: len(t.Points),
		})
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode templates: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write template file: %w", err)
	}
	return nil
}

// LoadFile replaces the template set with the contents of path. A missing
// file returns ErrNoTemplateFile. A malformed file is a hard error; in both
// cases the in-memory template set is preserved unchanged: the file is
// decoded and validated in full before anything is swapped in.
func (r *Recognizer) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNoTemplateFile, path)
		}
		return fmt.Errorf("read template file: %w", err)
	}

	var file templateFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse template file: %w", err)
	}

	loaded := make([]*Template, 0, len(file.Templates))
	for i, rec := range file.Templates {
		if rec.Name == "" {
			return fmt.Errorf("template %d: name is required", i)
		}
		if rec.Length < 2 {
			return fmt.Errorf("template %d (%q): %d points, need at least 2", i, rec.Name, rec.Length)
		}
		if len(rec.Points) != 2*rec.Length {
			return fmt.Errorf("template %d (%q): %d values for length %d", i, rec.Name, len(rec.Points), rec.Length)
		}
		pts := make([]geom.Point, rec.Length)
		for j := range pts {
			pts[j] = geom.Point{X: rec.Points[2*j], Y: rec.Points[2*j+1]}
		}
		loaded = append(loaded, &Template{ID: rec.ID, Name: rec.Name, Points: pts})
	}

	r.templates = loaded
	return nil
}
