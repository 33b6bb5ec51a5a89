package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	apperrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

type TaskServiceTestSuite struct {
	serviceTestSuite
	service *TaskService

	admin  *models.User
	e1     *models.User
	e2     *models.User
	org    *models.Organization
	client *models.Client
}

func (suite *TaskServiceTestSuite) SetupTest() {
	suite.serviceTestSuite.SetupTest()
	suite.service = NewTaskService(
		repository.NewTaskRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)

	suite.admin = suite.createAdmin("admin@example.com")
	suite.e1 = suite.createEmployee("e1@example.com", 1)
	suite.e2 = suite.createEmployee("e2@example.com", 2)
	suite.org = suite.createTestOrganization("North Branch")
	suite.client = suite.createTestClient("Acme Traders")
	suite.link(suite.org.ID, suite.client.ID)
}

func (suite *TaskServiceTestSuite) TestCreateTask() {
	task, err := suite.service.CreateTask(suite.e1, CreateTaskInput{
		OrganizationID: suite.org.ID,
		ClientID:       suite.client.ID,
		TaskName:       "  File GST returns  ",
		Service:        "GST",
	})

	suite.NoError(err)
	suite.Equal("File GST returns", task.TaskName)
	suite.Equal(models.ServiceGST, task.Service)
	suite.Equal(models.TaskStatusPending, task.Status)
	suite.Equal(suite.e1.ID, task.CreatedByUserID)
	suite.Nil(task.AssignedToUserID)
	suite.Equal(suite.client.Name, task.Client.Name)
	suite.Equal(suite.org.Name, task.Organization.Name)
}

func (suite *TaskServiceTestSuite) TestCreateTaskUnlinkedClient() {
	other := suite.createTestClient("Unlinked Co")

	_, err := suite.service.CreateTask(suite.e1, CreateTaskInput{
		OrganizationID: suite.org.ID,
		ClientID:       other.ID,
		TaskName:       "File GST returns",
		Service:        "GST",
	})

	suite.ErrorIs(err, ErrClientNotLinked)
	suite.Equal(apperrors.KindInvalidInput, apperrors.KindOf(err))

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *TaskServiceTestSuite) TestCreateTaskMissingOrganization() {
	_, err := suite.service.CreateTask(suite.e1, CreateTaskInput{
		OrganizationID: 999,
		ClientID:       suite.client.ID,
		TaskName:       "File GST returns",
		Service:        "GST",
	})

	suite.ErrorIs(err, ErrOrganizationNotFound)
}

func (suite *TaskServiceTestSuite) TestCreateTaskMissingClient() {
	_, err := suite.service.CreateTask(suite.e1, CreateTaskInput{
		OrganizationID: suite.org.ID,
		ClientID:       999,
		TaskName:       "File GST returns",
		Service:        "GST",
	})

	suite.ErrorIs(err, ErrClientNotFound)
}

func (suite *TaskServiceTestSuite) TestCreateTaskValidation() {
	_, err := suite.service.CreateTask(suite.e1, CreateTaskInput{
		OrganizationID: suite.org.ID,
		ClientID:       suite.client.ID,
		TaskName:       "",
		Service:        "GST",
	})
	suite.ErrorIs(err, ErrTaskFieldsRequired)

	_, err = suite.service.CreateTask(suite.e1, CreateTaskInput{
		OrganizationID: suite.org.ID,
		ClientID:       suite.client.ID,
		TaskName:       "File returns",
		Service:        "gst",
	})
	suite.ErrorIs(err, ErrInvalidService)

	_, err = suite.service.CreateTask(suite.e1, CreateTaskInput{
		OrganizationID: suite.org.ID,
		ClientID:       suite.client.ID,
		TaskName:       "File returns",
		Service:        "GST",
		Status:         "done",
	})
	suite.ErrorIs(err, ErrInvalidStatus)
}

func (suite *TaskServiceTestSuite) TestListTasksEmployeeScope() {
	mine := suite.createTestTask("Mine", suite.org.ID, suite.client.ID, suite.e1.ID)
	theirs := suite.createTestTask("Theirs", suite.org.ID, suite.client.ID, suite.e2.ID)
	assigned := suite.createTestTask("Assigned to me", suite.org.ID, suite.client.ID, suite.admin.ID)
	suite.db.Model(assigned).Update("assigned_to_user_id", suite.e1.ID)

	tasks, total, err := suite.service.ListTasks(suite.e1, ListTasksInput{})

	suite.NoError(err)
	suite.Equal(int64(2), total)
	for _, task := range tasks {
		suite.NotEqual(theirs.ID, task.ID)
	}

	ids := []uint64{tasks[0].ID, tasks[1].ID}
	suite.ElementsMatch([]uint64{mine.ID, assigned.ID}, ids)
}

func (suite *TaskServiceTestSuite) TestListTasksAdminSeesAll() {
	suite.createTestTask("One", suite.org.ID, suite.client.ID, suite.e1.ID)
	suite.createTestTask("Two", suite.org.ID, suite.client.ID, suite.e2.ID)

	_, total, err := suite.service.ListTasks(suite.admin, ListTasksInput{})

	suite.NoError(err)
	suite.Equal(int64(2), total)
}

func (suite *TaskServiceTestSuite) TestListTasksFilters() {
	task := suite.createTestTask("File GST returns", suite.org.ID, suite.client.ID, suite.admin.ID)
	suite.db.Model(task).Update("status", models.TaskStatusCompleted)
	suite.createTestTask("Reconcile ledger", suite.org.ID, suite.client.ID, suite.admin.ID)

	tasks, total, err := suite.service.ListTasks(suite.admin, ListTasksInput{Status: "completed"})
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(task.ID, tasks[0].ID)

	tasks, total, err = suite.service.ListTasks(suite.admin, ListTasksInput{Query: "GST"})
	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(task.ID, tasks[0].ID)
}

func (suite *TaskServiceTestSuite) TestListTasksInvalidFilterIgnored() {
	suite.createTestTask("One", suite.org.ID, suite.client.ID, suite.admin.ID)
	suite.createTestTask("Two", suite.org.ID, suite.client.ID, suite.admin.ID)

	_, total, err := suite.service.ListTasks(suite.admin, ListTasksInput{Status: "bogus", Service: "bogus"})

	suite.NoError(err)
	suite.Equal(int64(2), total)
}

func (suite *TaskServiceTestSuite) TestListTasksPaginated() {
	for i := 0; i < 3; i++ {
		suite.createTestTask(fmt.Sprintf("Task %d", i), suite.org.ID, suite.client.ID, suite.admin.ID)
	}

	tasks, total, err := suite.service.ListTasks(suite.admin, ListTasksInput{Page: 1, PageSize: 2})
	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(tasks, 2)

	tasks, total, err = suite.service.ListTasks(suite.admin, ListTasksInput{Page: 2, PageSize: 2})
	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(tasks, 1)
}

func (suite *TaskServiceTestSuite) TestListTasksAssignedToMe() {
	task := suite.createTestTask("One", suite.org.ID, suite.client.ID, suite.admin.ID)
	suite.db.Model(task).Update("assigned_to_user_id", suite.e1.ID)
	suite.createTestTask("Two", suite.org.ID, suite.client.ID, suite.e1.ID)

	tasks, total, err := suite.service.ListTasks(suite.e1, ListTasksInput{AssignedToMe: true})

	suite.NoError(err)
	suite.Equal(int64(1), total)
	suite.Equal(task.ID, tasks[0].ID)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskByCreator() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	status := "completed"
	updated, err := suite.service.UpdateTask(suite.e1, task.ID, UpdateTaskInput{Status: &status})

	suite.NoError(err)
	suite.Equal(models.TaskStatusCompleted, updated.Status)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskUnrelatedEmployeeForbidden() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	status := "completed"
	_, err := suite.service.UpdateTask(suite.e2, task.ID, UpdateTaskInput{Status: &status})

	suite.ErrorIs(err, ErrTaskNotAllowed)
	suite.Equal(apperrors.KindForbidden, apperrors.KindOf(err))
}

func (suite *TaskServiceTestSuite) TestAssigneeGainsUpdateRights() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	// e2 cannot touch the task until it is assigned to them.
	status := "in-progress"
	_, err := suite.service.UpdateTask(suite.e2, task.ID, UpdateTaskInput{Status: &status})
	suite.ErrorIs(err, ErrTaskNotAllowed)

	assigned, err := suite.service.AssignSelf(suite.e2, task.ID)
	suite.NoError(err)
	suite.Equal(suite.e2.ID, *assigned.AssignedToUserID)

	updated, err := suite.service.UpdateTask(suite.e2, task.ID, UpdateTaskInput{Status: &status})
	suite.NoError(err)
	suite.Equal(models.TaskStatusInProgress, updated.Status)

	// The creator keeps edit rights after assignment.
	done := "completed"
	_, err = suite.service.UpdateTask(suite.e1, task.ID, UpdateTaskInput{Status: &done})
	suite.NoError(err)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskPlacementRevalidated() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)
	other := suite.createTestClient("Unlinked Co")

	_, err := suite.service.UpdateTask(suite.e1, task.ID, UpdateTaskInput{ClientID: &other.ID})

	suite.ErrorIs(err, ErrClientNotLinked)

	var current models.Task
	suite.db.First(&current, task.ID)
	suite.Equal(suite.client.ID, current.ClientID)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskEmployeeAssignOther() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	_, err := suite.service.UpdateTask(suite.e1, task.ID, UpdateTaskInput{SetAssignee: true, AssigneeID: &suite.e2.ID})

	suite.ErrorIs(err, ErrAssignSelfOnly)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskEmployeeAssignSelf() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	updated, err := suite.service.UpdateTask(suite.e1, task.ID, UpdateTaskInput{SetAssignee: true, AssigneeID: &suite.e1.ID})

	suite.NoError(err)
	suite.Equal(suite.e1.ID, *updated.AssignedToUserID)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskEmployeeClearForbidden() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)
	suite.db.Model(task).Update("assigned_to_user_id", suite.e1.ID)

	_, err := suite.service.UpdateTask(suite.e1, task.ID, UpdateTaskInput{SetAssignee: true})

	suite.ErrorIs(err, ErrAssignSelfOnly)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskAdminAssignsAnyone() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	updated, err := suite.service.UpdateTask(suite.admin, task.ID, UpdateTaskInput{SetAssignee: true, AssigneeID: &suite.e2.ID})
	suite.NoError(err)
	suite.Equal(suite.e2.ID, *updated.AssignedToUserID)

	updated, err = suite.service.UpdateTask(suite.admin, task.ID, UpdateTaskInput{SetAssignee: true})
	suite.NoError(err)
	suite.Nil(updated.AssignedToUserID)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskAdminAssignUnknownUser() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	missing := uint64(999)
	_, err := suite.service.UpdateTask(suite.admin, task.ID, UpdateTaskInput{SetAssignee: true, AssigneeID: &missing})

	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *TaskServiceTestSuite) TestUpdateTaskNotFound() {
	status := "completed"
	_, err := suite.service.UpdateTask(suite.admin, 999, UpdateTaskInput{Status: &status})

	suite.ErrorIs(err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestAssignSelfOverwrites() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.admin.ID)
	suite.db.Model(task).Update("assigned_to_user_id", suite.e1.ID)

	updated, err := suite.service.AssignSelf(suite.e2, task.ID)

	suite.NoError(err)
	suite.Equal(suite.e2.ID, *updated.AssignedToUserID)
}

func (suite *TaskServiceTestSuite) TestAssignSelfAdminForbidden() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	_, err := suite.service.AssignSelf(suite.admin, task.ID)

	suite.ErrorIs(err, ErrOnlyEmployeeAssign)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskByCreator() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	suite.NoError(suite.service.DeleteTask(suite.e1, task.ID))

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	suite.Equal(int64(0), count)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskAssigneeForbidden() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)
	suite.db.Model(task).Update("assigned_to_user_id", suite.e2.ID)

	err := suite.service.DeleteTask(suite.e2, task.ID)

	suite.ErrorIs(err, ErrOnlyCreatorDeletes)
}

func (suite *TaskServiceTestSuite) TestDeleteTaskByAdmin() {
	task := suite.createTestTask("File returns", suite.org.ID, suite.client.ID, suite.e1.ID)

	suite.NoError(suite.service.DeleteTask(suite.admin, task.ID))
}

func (suite *TaskServiceTestSuite) TestListAssignableEmployees() {
	employees, err := suite.service.ListAssignableEmployees()

	suite.NoError(err)
	suite.Len(employees, 2)
	for _, e := range employees {
		suite.Equal(models.RoleEmployee, e.Role)
	}
}

func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
