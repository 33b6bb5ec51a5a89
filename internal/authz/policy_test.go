package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tasktracker/internal/models"
)

var (
	admin = &models.User{ID: 1, Role: models.RoleAdmin}
	e1    = &models.User{ID: 2, Role: models.RoleEmployee}
	e2    = &models.User{ID: 3, Role: models.RoleEmployee}
)

func taskOwnedBy(creatorID uint64, assigneeID *uint64) *models.Task {
	return &models.Task{ID: 10, CreatedByUserID: creatorID, AssignedToUserID: assigneeID}
}

func TestCanViewTask(t *testing.T) {
	tests := []struct {
		name  string
		actor *models.User
		task  *models.Task
		want  bool
	}{
		{"admin sees any task", admin, taskOwnedBy(e1.ID, nil), true},
		{"creator sees own task", e1, taskOwnedBy(e1.ID, nil), true},
		{"assignee sees assigned task", e2, taskOwnedBy(e1.ID, &e2.ID), true},
		{"unrelated employee denied", e2, taskOwnedBy(e1.ID, nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewTask(tt.actor, tt.task))
		})
	}
}

func TestCanUpdateTaskMatchesVisibility(t *testing.T) {
	task := taskOwnedBy(e1.ID, &e2.ID)

	for _, actor := range []*models.User{admin, e1, e2} {
		assert.Equal(t, CanViewTask(actor, task), CanUpdateTask(actor, task))
	}
}

func TestCanAssign(t *testing.T) {
	tests := []struct {
		name   string
		actor  *models.User
		target *uint64
		want   bool
	}{
		{"admin assigns anyone", admin, &e2.ID, true},
		{"admin clears assignment", admin, nil, true},
		{"employee assigns self", e1, &e1.ID, true},
		{"employee assigns other denied", e1, &e2.ID, false},
		{"employee clears denied", e1, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAssign(tt.actor, tt.target))
		})
	}
}

func TestCanDeleteTask(t *testing.T) {
	task := taskOwnedBy(e1.ID, &e2.ID)

	assert.True(t, CanDeleteTask(admin, task))
	assert.True(t, CanDeleteTask(e1, task))
	// Being the assignee is not enough to delete.
	assert.False(t, CanDeleteTask(e2, task))
}

func TestCanSelfAssign(t *testing.T) {
	assert.True(t, CanSelfAssign(e1))
	assert.False(t, CanSelfAssign(admin))
}

func TestCanManageEmployees(t *testing.T) {
	assert.True(t, CanManageEmployees(admin))
	assert.False(t, CanManageEmployees(e1))
}
