package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/ironplan/internal/model"
	"github.com/google/uuid"
)

// TaskFilter is an AND-conjunction of optional equality predicates.
// A zero-value field does not constrain on that column.
type TaskFilter struct {
	ProjectID      string
	Status         string
	AssignedUserID string
}

func (f TaskFilter) where() (string, []any) {
	var conds []string
	var args []any
	if f.ProjectID != "" {
		conds = append(conds, "t.project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.Status != "" {
		conds = append(conds, "t.status = ?")
		args = append(args, f.Status)
	}
	if f.AssignedUserID != "" {
		conds = append(conds, "t.assigned_user_id = ?")
		args = append(args, f.AssignedUserID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// CreateTask inserts a new task under projectID. assignedUserID may be
// empty for an unassigned task.
func (s *Store) CreateTask(ctx context.Context, projectID, title, description, assignedUserID string) (*model.Task, error) {
	now := time.Now().UTC()
	t := &model.Task{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		Title:          title,
		Description:    description,
		Status:         model.TaskStatusTodo,
		AssignedUserID: assignedUserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := s.db.ExecContext(ctx, s.bind(`
		INSERT INTO tasks (id, project_id, title, description, status, assigned_user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		t.ID, t.ProjectID, t.Title, t.Description, t.Status, nullable(t.AssignedUserID), t.CreatedAt.UnixNano(), t.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	return t, nil
}

// GetTask fetches a task by id
func (s *Store) GetTask(ctx context.Context, id string) (*model.Task, error) {
	t := &model.Task{}
	var assigned sql.NullString
	var created, updated int64
	err := s.db.QueryRowContext(ctx, s.bind(`
		SELECT id, project_id, title, description, status, assigned_user_id, created_at, updated_at
		FROM tasks WHERE id = ?`), id,
	).Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &assigned, &created, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.AssignedUserID = assigned.String
	t.CreatedAt = toTime(created)
	t.UpdatedAt = toTime(updated)
	return t, nil
}

// UpdateTask writes the mutable fields of t back to the store
func (s *Store) UpdateTask(ctx context.Context, t *model.Task) error {
	t.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx, s.bind(`
		UPDATE tasks SET title = ?, description = ?, status = ?, assigned_user_id = ?, updated_at = ?
		WHERE id = ?`),
		t.Title, t.Description, t.Status, nullable(t.AssignedUserID), t.UpdatedAt.UnixNano(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return checkAffected(res)
}

// DeleteTask removes a task by id
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.bind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return checkAffected(res)
}

// ListTasks returns one page of tasks matching the filter, in creation
// order
func (s *Store) ListTasks(ctx context.Context, filter TaskFilter, offset, limit int) ([]model.Task, error) {
	where, args := filter.where()
	args = append(args, limit, offset)

	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT t.id, t.project_id, t.title, t.description, t.status, t.assigned_user_id, t.created_at, t.updated_at
		FROM tasks t`+where+`
		ORDER BY t.created_at, t.id
		LIMIT ? OFFSET ?`), args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		var assigned sql.NullString
		var created, updated int64
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &assigned, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		t.AssignedUserID = assigned.String
		t.CreatedAt = toTime(created)
		t.UpdatedAt = toTime(updated)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CountTasks counts all tasks matching the filter
func (s *Store) CountTasks(ctx context.Context, filter TaskFilter) (int, error) {
	where, args := filter.where()
	var n int
	err := s.db.QueryRowContext(ctx, s.bind(`SELECT COUNT(*) FROM tasks t`+where), args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

// ListProjectTasks returns all tasks for a project joined with assignee
// details, optionally filtered by status
func (s *Store) ListProjectTasks(ctx context.Context, projectID, status string) ([]model.TaskWithAssignee, error) {
	where, args := TaskFilter{ProjectID: projectID, Status: status}.where()

	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT t.id, t.project_id, t.title, t.description, t.status, t.assigned_user_id, t.created_at, t.updated_at,
		       u.name, u.email
		FROM tasks t
		LEFT JOIN users u ON u.id = t.assigned_user_id`+where+`
		ORDER BY t.created_at, t.id`), args...)
	if err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.TaskWithAssignee{}
	for rows.Next() {
		var t model.TaskWithAssignee
		var assigned, name, email sql.NullString
		var created, updated int64
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Title, &t.Description, &t.Status, &assigned, &created, &updated, &name, &email); err != nil {
			return nil, fmt.Errorf("scan project task: %w", err)
		}
		t.AssignedUserID = assigned.String
		t.AssigneeName = name.String
		t.AssigneeEmail = email.String
		t.CreatedAt = toTime(created)
		t.UpdatedAt = toTime(updated)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// nullable maps an empty string to NULL so the assigned-user foreign
// key does not trip on unassigned tasks
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
