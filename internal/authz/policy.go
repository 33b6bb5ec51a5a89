// Package authz is the single source of truth for the role-based decision
// table governing task mutations and employee management. Every mutating
// operation consults these functions instead of inlining role checks.
package authz

import (
	"gorm.io/gorm"

	"tasktracker/internal/models"
)

// CanViewTask reports whether the actor may read the task. Admins see every
// task; employees only tasks they created or are assigned to.
func CanViewTask(actor *models.User, task *models.Task) bool {
	if actor.IsAdmin() {
		return true
	}
	return task.IsCreator(actor.ID) || task.IsAssignee(actor.ID)
}

// CanUpdateTask reports whether the actor may edit the task's
// non-assignment fields. Same rule as visibility.
func CanUpdateTask(actor *models.User, task *models.Task) bool {
	return CanViewTask(actor, task)
}

// CanAssign reports whether the actor may set the task's assignee to target.
// A nil target clears the assignment. Admins may assign anyone or clear;
// employees may only assign themselves.
func CanAssign(actor *models.User, target *uint64) bool {
	if actor.IsAdmin() {
		return true
	}
	return target != nil && *target == actor.ID
}

// CanDeleteTask reports whether the actor may delete the task. Only the
// creator or an admin may.
func CanDeleteTask(actor *models.User, task *models.Task) bool {
	return actor.IsAdmin() || task.IsCreator(actor.ID)
}

// CanSelfAssign reports whether the actor may use the self-assign operation.
// It is employee-only; for admins the route is a no-op deny.
func CanSelfAssign(actor *models.User) bool {
	return actor.Role == models.RoleEmployee
}

// CanManageEmployees reports whether the actor may create, edit, list or
// delete employee accounts.
func CanManageEmployees(actor *models.User) bool {
	return actor.IsAdmin()
}

// TaskScope narrows a task query to the rows the actor is allowed to see.
// The predicate is pushed into the query so out-of-scope rows are never
// loaded.
func TaskScope(actor *models.User) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsAdmin() {
			return db
		}
		return db.Where("tasks.created_by_user_id = ? OR tasks.assigned_to_user_id = ?", actor.ID, actor.ID)
	}
}
