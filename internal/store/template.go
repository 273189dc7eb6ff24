package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/nileshs31/Project-ARMagic/internal/geom"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Template represents a stroke template stored in the database. Names are
// not unique: a class may carry several exemplars under the same name.
type Template struct {
	ID        string
	Name      string
	Samples   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TemplateRepository provides CRUD operations for templates.
type TemplateRepository struct {
	db *sql.DB
}

// Templates returns the template repository for this store.
func (s *Store) Templates() *TemplateRepository {
	return &TemplateRepository{db: s.db}
}

// Create inserts a new template and its point sequence in a single
// transaction.
func (r *TemplateRepository) Create(t *Template, points []geom.Point) error {
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO templates (id, name, samples, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.Samples, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO template_points (template_id, sequence, x, y) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range points {
		if _, err := stmt.Exec(t.ID, i, p.X, p.Y); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a template by its ID.
func (r *TemplateRepository) GetByID(id string) (*Template, error) {
	t := &Template{}

	err := r.db.QueryRow(
		`SELECT id, name, samples, created_at, updated_at
		 FROM templates WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Name, &t.Samples, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

// List retrieves all templates from the database.
func (r *TemplateRepository) List() ([]*Template, error) {
	rows, err := r.db.Query(
		`SELECT id, name, samples, created_at, updated_at
		 FROM templates ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t := &Template{}
		err := rows.Scan(&t.ID, &t.Name, &t.Samples, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return templates, nil
}

// GetPoints retrieves the point sequence of a template in stored order.
func (r *TemplateRepository) GetPoints(templateID string) ([]geom.Point, error) {
	rows, err := r.db.Query(
		`SELECT x, y FROM template_points
		 WHERE template_id = ?
		 ORDER BY sequence`,
		templateID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []geom.Point
	for rows.Next() {
		var p geom.Point
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, err
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return points, nil
}

// Rename updates the name of an existing template.
func (r *TemplateRepository) Rename(id, name string) error {
	result, err := r.db.Exec(
		`UPDATE templates SET name = ?, updated_at = ? WHERE id = ?`,
		name, time.Now(), id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a template from the database by its ID. Points and samples
// cascade.
func (r *TemplateRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAll removes every template from the database.
func (r *TemplateRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM templates`)
	return err
}
