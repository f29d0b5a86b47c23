package authz_test

import (
	"testing"

	"github.com/existflow/ironplan/internal/authz"
	"github.com/existflow/ironplan/internal/model"
)

func TestCanModifyProject(t *testing.T) {
	project := &model.Project{ID: "p1", OwnerID: "owner"}

	tests := []struct {
		name  string
		actor string
		allow bool
	}{
		{"owner may", "owner", true},
		{"non-owner may not", "someone-else", false},
		{"empty actor may not", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := authz.CanModifyProject(tt.actor, project)
			if d.Allowed != tt.allow {
				t.Fatalf("expected allowed=%v, got %+v", tt.allow, d)
			}
			if !d.Allowed && d.Reason != authz.ReasonNotOwner {
				t.Fatalf("expected reason %q, got %q", authz.ReasonNotOwner, d.Reason)
			}
		})
	}
}

func TestCanUpdateTask(t *testing.T) {
	assigned := &model.Task{ID: "t1", AssignedUserID: "worker"}
	unassigned := &model.Task{ID: "t2"}

	tests := []struct {
		name  string
		actor string
		task  *model.Task
		allow bool
	}{
		{"assignee may", "worker", assigned, true},
		{"non-assignee may not", "someone-else", assigned, false},
		{"unassigned task is locked for everyone", "worker", unassigned, false},
		{"unassigned task is locked even for empty actor", "", unassigned, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := authz.CanUpdateTask(tt.actor, tt.task)
			if d.Allowed != tt.allow {
				t.Fatalf("expected allowed=%v, got %+v", tt.allow, d)
			}
			if !d.Allowed && d.Reason != authz.ReasonNotAssignee {
				t.Fatalf("expected reason %q, got %q", authz.ReasonNotAssignee, d.Reason)
			}
		})
	}
}

// Delete carries no assignee predicate, unlike update. The asymmetry
// is inherited behavior; this test pins it down so a change is a
// conscious decision.
func TestCanDeleteTask_AnyActor(t *testing.T) {
	task := &model.Task{ID: "t1", AssignedUserID: "worker"}

	for _, actor := range []string{"worker", "someone-else"} {
		if d := authz.CanDeleteTask(actor, task); !d.Allowed {
			t.Fatalf("expected delete allowed for %q, got %+v", actor, d)
		}
	}
}
