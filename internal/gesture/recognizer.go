package gesture

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

// Template is a learned exemplar: a name plus a canonical fixed-length
// normalized point sequence. Templates are immutable after creation and
// removed only by ClearTemplates. Multiple templates may share a name so a
// class can carry several exemplars for k-NN voting.
type Template struct {
	ID     string
	Name   string
	Points []geom.Point
}

// Recognizer classifies strokes against a set of learned templates using
// banded DTW distance and k-nearest-neighbor voting. It is not safe for
// concurrent mutation; callers needing shared access must synchronize.
type Recognizer struct {
	cfg       Config
	templates []*Template
}

// NewRecognizer creates a Recognizer with the given configuration. Zero
// fields are replaced by their defaults.
func NewRecognizer(cfg Config) *Recognizer {
	def := DefaultConfig()
	if cfg.ResampleLength <= 0 {
		cfg.ResampleLength = def.ResampleLength
	}
	if cfg.MinSampleDistance <= 0 {
		cfg.MinSampleDistance = def.MinSampleDistance
	}
	if cfg.SakoeRatio <= 0 {
		cfg.SakoeRatio = def.SakoeRatio
	}
	if cfg.K <= 0 {
		cfg.K = def.K
	}
	if cfg.AcceptThreshold <= 0 {
		cfg.AcceptThreshold = def.AcceptThreshold
	}
	return &Recognizer{cfg: cfg}
}

// Config returns the recognizer configuration.
func (r *Recognizer) Config() Config {
	return r.cfg
}

// AddTemplate runs the shared pipeline on a raw 3D stroke and stores the
// result as a new template under the given name.
func (r *Recognizer) AddTemplate(name string, stroke []geom.Vec3) (*Template, error) {
	if name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	if len(stroke) < MinStrokePoints {
		return nil, fmt.Errorf("stroke has %d points, need at least %d", len(stroke), MinStrokePoints)
	}

	t := &Template{
		ID:     uuid.New().String(),
		Name:   name,
		Points: r.cfg.prepare(stroke),
	}
	r.templates = append(r.templates, t)
	return t, nil
}

// AddTemplatePoints stores an already-normalized point sequence as a
// template, used when loading persisted templates.
func (r *Recognizer) AddTemplatePoints(id, name string, pts []geom.Point) (*Template, error) {
	if name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("template %q has %d points, need at least 2", name, len(pts))
	}
	if id == "" {
		id = uuid.New().String()
	}

	t := &Template{ID: id, Name: name, Points: pts}
	r.templates = append(r.templates, t)
	return t, nil
}

// RemoveTemplate deletes the template with the given ID and reports
// whether one was removed.
func (r *Recognizer) RemoveTemplate(id string) bool {
	for i, t := range r.templates {
		if t.ID == id {
			r.templates = append(r.templates[:i], r.templates[i+1:]...)
			return true
		}
	}
	return false
}

// ClearTemplates removes all templates.
func (r *Recognizer) ClearTemplates() {
	r.templates = nil
}

// Templates returns a copy of the template list.
func (r *Recognizer) Templates() []*Template {
	out := make([]*Template, len(r.templates))
	copy(out, r.templates)
	return out
}

// TemplateNames returns the distinct template names.
func (r *Recognizer) TemplateNames() []string {
	seen := make(map[string]bool, len(r.templates))
	var names []string
	for _, t := range r.templates {
		if !seen[t.Name] {
			seen[t.Name] = true
			names = append(names, t.Name)
		}
	}
	return names
}

// voteGroup accumulates the top-k members sharing one template name.
type voteGroup struct {
	name  string
	count int
	sum   float64
}

func (g voteGroup) mean() float64 {
	return g.sum / float64(g.count)
}

// Recognize classifies a raw 3D stroke against the stored templates.
// Every template is ranked by banded DTW distance; the k nearest vote by
// name, ties between equal-sized groups going to the lower mean distance.
// The winning score is the mean distance of the winner's members within the
// top k, and the margin is the runner-up group's mean minus that score.
// A winning score above the acceptance threshold yields LabelUnknown with
// the score and margin preserved.
func (r *Recognizer) Recognize(stroke []geom.Vec3) Result {
	if len(stroke) < MinStrokePoints {
		return Result{Label: LabelTooShort}
	}
	if len(r.templates) == 0 {
		return Result{Label: LabelNoTemplates}
	}

	query := r.cfg.prepare(stroke)
	window := int(math.Round(float64(r.cfg.ResampleLength) * r.cfg.SakoeRatio))

	type ranked struct {
		template *Template
		dist     float64
	}
	all := make([]ranked, 0, len(r.templates))
	for _, t := range r.templates {
		all = append(all, ranked{template: t, dist: DTWDistance(query, t.Points, window)})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })

	k := r.cfg.K
	if k > len(all) {
		k = len(all)
	}

	groupIdx := make(map[string]int)
	var groups []voteGroup
	for _, n := range all[:k] {
		name := n.template.Name
		idx, ok := groupIdx[name]
		if !ok {
			idx = len(groups)
			groupIdx[name] = idx
			groups = append(groups, voteGroup{name: name})
		}
		groups[idx].count++
		groups[idx].sum += n.dist
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].mean() < groups[j].mean()
	})

	winner := groups[0]
	result := Result{Label: winner.name, Score: winner.mean()}
	if len(groups) > 1 {
		result.Margin = groups[1].mean() - result.Score
	}

	if result.Score > r.cfg.AcceptThreshold {
		result.Label = LabelUnknown
	}
	return result
}
