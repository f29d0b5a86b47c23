package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/existflow/ironplan/internal/model"
	"github.com/google/uuid"
)

// CreateProject inserts a new project owned by ownerID
func (s *Store) CreateProject(ctx context.Context, ownerID, name, description string) (*model.Project, error) {
	now := time.Now().UTC()
	p := &model.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Status:      model.ProjectStatusOpen,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := s.db.ExecContext(ctx, s.bind(`
		INSERT INTO projects (id, name, description, status, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.Name, p.Description, p.Status, p.OwnerID, p.CreatedAt.UnixNano(), p.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	return p, nil
}

// GetProject fetches a project by id
func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	p := &model.Project{}
	var created, updated int64
	err := s.db.QueryRowContext(ctx, s.bind(`
		SELECT id, name, description, status, owner_id, created_at, updated_at
		FROM projects WHERE id = ?`), id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.OwnerID, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan project: %w", err)
	}
	p.CreatedAt = toTime(created)
	p.UpdatedAt = toTime(updated)
	return p, nil
}

// UpdateProject writes the mutable fields of p back to the store
func (s *Store) UpdateProject(ctx context.Context, p *model.Project) error {
	p.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, s.bind(`
		UPDATE projects SET name = ?, description = ?, status = ?, updated_at = ?
		WHERE id = ?`),
		p.Name, p.Description, p.Status, p.UpdatedAt.UnixNano(), p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return checkAffected(res)
}

// DeleteProject removes a project and, via cascade, its tasks
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.bind(`DELETE FROM projects WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return checkAffected(res)
}

// ListProjects returns one page of projects owned by ownerID, in
// creation order
func (s *Store) ListProjects(ctx context.Context, ownerID string, offset, limit int) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT id, name, description, status, owner_id, created_at, updated_at
		FROM projects WHERE owner_id = ?
		ORDER BY created_at, id
		LIMIT ? OFFSET ?`),
		ownerID, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		var created, updated int64
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.OwnerID, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.CreatedAt = toTime(created)
		p.UpdatedAt = toTime(updated)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CountProjects counts all projects owned by ownerID
func (s *Store) CountProjects(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.bind(`
		SELECT COUNT(*) FROM projects WHERE owner_id = ?`), ownerID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
