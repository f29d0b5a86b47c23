// Package authz holds the access rules for projects and tasks. The
// functions are pure predicates over an already-fetched resource; the
// caller is responsible for resolving the resource first, so a missing
// id surfaces as not-found before any access decision is made.
package authz

import "github.com/existflow/ironplan/internal/model"

// Deny reasons surfaced to callers
const (
	ReasonNotOwner    = "not owner"
	ReasonNotAssignee = "not assignee"
)

// Decision is the outcome of an access check
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow is the positive decision
var Allow = Decision{Allowed: true}

// Deny returns a negative decision with a reason
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// CanModifyProject decides whether actor may update or delete the
// project. Only the owner may.
func CanModifyProject(actor string, p *model.Project) Decision {
	if p.OwnerID == actor {
		return Allow
	}
	return Deny(ReasonNotOwner)
}

// CanUpdateTask decides whether actor may update the task. Only the
// current assignee may; a task with no assignee is not updatable by
// anyone.
func CanUpdateTask(actor string, t *model.Task) Decision {
	if t.IsAssigned() && t.AssignedUserID == actor {
		return Allow
	}
	return Deny(ReasonNotAssignee)
}

// CanDeleteTask decides whether actor may delete the task. Any
// authenticated caller may; deletion carries no assignee check even
// though update does.
func CanDeleteTask(actor string, t *model.Task) Decision {
	return Allow
}
