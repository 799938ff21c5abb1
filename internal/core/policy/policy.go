// Package policy is the authorization engine. For a given principal and
// action it decides allow/deny, which fields the principal may change, and
// how far its view of the task collection reaches.
//
// Permissions are kept in a single declarative table rather than scattered
// conditionals, so the whole access model is reviewable in one place.
package policy

import (
	"github.com/EFGFA/Comp313-Sec002-Group2-Task-management/internal/core/domain"
)

// Action is a task operation subject to authorization.
type Action string

const (
	ActionCreate       Action = "create"
	ActionDelete       Action = "delete"
	ActionUpdate       Action = "update"
	ActionUpdateStatus Action = "update_status"
	ActionAssign       Action = "assign"
)

// Field names a mutable task attribute.
type Field string

const (
	FieldTitle     Field = "title"
	FieldText      Field = "text"
	FieldStatus    Field = "status"
	FieldAssignees Field = "assignees"
)

// FieldSet is the set of fields an update may touch.
type FieldSet map[Field]struct{}

// Has reports whether f belongs to the set.
func (fs FieldSet) Has(f Field) bool {
	_, ok := fs[f]
	return ok
}

func fields(fs ...Field) FieldSet {
	set := make(FieldSet, len(fs))
	for _, f := range fs {
		set[f] = struct{}{}
	}
	return set
}

// relation is the principal's relationship to a task, the second axis of the
// permission table next to the role.
type relation int

const (
	relNone relation = iota
	relAssignee
	relOwner
)

func relate(p domain.Principal, t *domain.Task) relation {
	if t.OwnerID == p.ID {
		return relOwner
	}
	if t.HasAssignee(p.ID) {
		return relAssignee
	}
	return relNone
}

// grant is one row of the permission table.
type grant struct {
	minRelation relation // weakest relationship that unlocks the action
	fields      FieldSet // fields a full update may touch, nil otherwise
}

// grants maps (role, action) to the conditions under which the action is
// allowed. A missing cell means the action is always denied for that role.
// Admins act on any task regardless of relationship; everyone else needs at
// least the listed relation to the task.
var grants = map[domain.Role]map[Action]grant{
	domain.RoleIndividual: {
		ActionCreate:       {},
		ActionDelete:       {minRelation: relOwner},
		ActionUpdate:       {minRelation: relOwner, fields: fields(FieldTitle, FieldText, FieldStatus)},
		ActionUpdateStatus: {minRelation: relAssignee},
	},
	domain.RoleEmployee: {
		ActionUpdateStatus: {minRelation: relAssignee},
	},
	domain.RoleAdmin: {
		ActionCreate:       {},
		ActionDelete:       {},
		ActionUpdate:       {fields: fields(FieldTitle, FieldText, FieldStatus, FieldAssignees)},
		ActionUpdateStatus: {},
		ActionAssign:       {},
	},
}

// CanCreate reports whether the principal may create tasks at all.
func CanCreate(p domain.Principal) bool {
	_, ok := grants[p.Role][ActionCreate]
	return ok
}

// CanAssign reports whether the principal may set a task's assignee list,
// on update or at creation time.
func CanAssign(p domain.Principal) bool {
	_, ok := grants[p.Role][ActionAssign]
	return ok
}

// CanDelete reports whether the principal may delete the task.
func CanDelete(p domain.Principal, t *domain.Task) bool {
	return allowed(p, ActionDelete, t)
}

// CanUpdateFull reports whether the principal may apply a full update
// (any subset of title/text/status/assignees, narrowed by UpdatableFields).
func CanUpdateFull(p domain.Principal, t *domain.Task) bool {
	return allowed(p, ActionUpdate, t)
}

// CanUpdateStatusOnly reports whether the principal may change only the
// status through the dedicated status action.
func CanUpdateStatusOnly(p domain.Principal, t *domain.Task) bool {
	return allowed(p, ActionUpdateStatus, t)
}

// CanRead reports whether the principal may fetch the task by id. Admins can
// read any task by id even though their list view is scoped to owned tasks.
func CanRead(p domain.Principal, t *domain.Task) bool {
	if p.Role == domain.RoleAdmin {
		return true
	}
	return Scope(p).Matches(t)
}

// UpdatableFields returns the fields the principal may touch in a full
// update of the task, or nil when no update is allowed at all.
func UpdatableFields(p domain.Principal, t *domain.Task) FieldSet {
	g, ok := grants[p.Role][ActionUpdate]
	if !ok || !meets(p, g.minRelation, t) {
		return nil
	}
	return g.fields
}

func allowed(p domain.Principal, a Action, t *domain.Task) bool {
	g, ok := grants[p.Role][a]
	return ok && meets(p, g.minRelation, t)
}

func meets(p domain.Principal, min relation, t *domain.Task) bool {
	if p.Role == domain.RoleAdmin {
		return true
	}
	return relate(p, t) >= min
}

// VisibilityScope restricts which tasks a principal sees when listing.
// A task is visible when it matches at least one of the set dimensions:
// OwnerID against the task owner, AssigneeID against the assignee set.
// Repositories translate the scope into an equivalent query filter.
type VisibilityScope struct {
	OwnerID    string
	AssigneeID string
}

// Scope returns the principal's visibility scope. Individuals see tasks
// they own or are assigned to, employees see only assigned tasks, and the
// admin list view is limited to owned tasks. Direct reads by id are still
// unrestricted for admins via CanRead.
func Scope(p domain.Principal) VisibilityScope {
	switch p.Role {
	case domain.RoleEmployee:
		return VisibilityScope{AssigneeID: p.ID}
	case domain.RoleAdmin:
		return VisibilityScope{OwnerID: p.ID}
	default:
		return VisibilityScope{OwnerID: p.ID, AssigneeID: p.ID}
	}
}

// Matches is the in-memory form of the scope's query filter.
func (s VisibilityScope) Matches(t *domain.Task) bool {
	if s.OwnerID != "" && t.OwnerID == s.OwnerID {
		return true
	}
	if s.AssigneeID != "" && t.HasAssignee(s.AssigneeID) {
		return true
	}
	return false
}
