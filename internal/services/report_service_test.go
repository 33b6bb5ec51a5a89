package services

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

type ReportServiceTestSuite struct {
	serviceTestSuite
	service *ReportService

	admin  *models.User
	e1     *models.User
	e2     *models.User
	org    *models.Organization
	client *models.Client
}

func (suite *ReportServiceTestSuite) SetupTest() {
	suite.serviceTestSuite.SetupTest()
	suite.service = NewReportService(repository.NewTaskRepository(suite.db))

	suite.admin = suite.createAdmin("admin@example.com")
	suite.e1 = suite.createEmployee("e1@example.com", 1)
	suite.e2 = suite.createEmployee("e2@example.com", 2)
	suite.org = suite.createTestOrganization("North Branch")
	suite.client = suite.createTestClient("Acme Traders")
	suite.link(suite.org.ID, suite.client.ID)
}

func (suite *ReportServiceTestSuite) createTaskWith(creatorID uint64, status models.TaskStatus, service models.TaskService) *models.Task {
	task := &models.Task{
		TaskName:        "Task",
		Service:         service,
		Status:          status,
		OrganizationID:  suite.org.ID,
		ClientID:        suite.client.ID,
		CreatedByUserID: creatorID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *ReportServiceTestSuite) TestTaskStatsEmpty() {
	stats, err := suite.service.TaskStats(suite.admin)

	suite.NoError(err)
	suite.Equal(int64(0), stats.Total)
	suite.Len(stats.ByStatus, len(models.TaskStatuses))
	suite.Len(stats.ByService, len(models.TaskServices))
	for _, status := range models.TaskStatuses {
		suite.Equal(int64(0), stats.ByStatus[status])
	}
	for _, service := range models.TaskServices {
		suite.Equal(int64(0), stats.ByService[service])
	}
}

func (suite *ReportServiceTestSuite) TestTaskStatsSumsMatchTotal() {
	suite.createTaskWith(suite.e1.ID, models.TaskStatusPending, models.ServiceGST)
	suite.createTaskWith(suite.e1.ID, models.TaskStatusCompleted, models.ServiceGST)
	suite.createTaskWith(suite.e2.ID, models.TaskStatusCompleted, models.ServiceAccounting)

	stats, err := suite.service.TaskStats(suite.admin)

	suite.NoError(err)
	suite.Equal(int64(3), stats.Total)
	suite.Equal(int64(2), stats.ByStatus[models.TaskStatusCompleted])
	suite.Equal(int64(2), stats.ByService[models.ServiceGST])

	var byStatus, byService int64
	for _, n := range stats.ByStatus {
		byStatus += n
	}
	for _, n := range stats.ByService {
		byService += n
	}
	suite.Equal(stats.Total, byStatus)
	suite.Equal(stats.Total, byService)
}

func (suite *ReportServiceTestSuite) TestTaskStatsEmployeeScoped() {
	suite.createTaskWith(suite.e1.ID, models.TaskStatusPending, models.ServiceGST)
	suite.createTaskWith(suite.e2.ID, models.TaskStatusPending, models.ServiceGST)
	assigned := suite.createTaskWith(suite.e2.ID, models.TaskStatusCompleted, models.ServiceAccounting)
	suite.db.Model(assigned).Update("assigned_to_user_id", suite.e1.ID)

	stats, err := suite.service.TaskStats(suite.e1)

	suite.NoError(err)
	suite.Equal(int64(2), stats.Total)
	suite.Equal(int64(1), stats.ByStatus[models.TaskStatusCompleted])
	suite.Equal(int64(1), stats.ByService[models.ServiceAccounting])
}

func (suite *ReportServiceTestSuite) TestDashboardStats() {
	suite.createTaskWith(suite.e1.ID, models.TaskStatusPending, models.ServiceGST)
	suite.createTaskWith(suite.e1.ID, models.TaskStatusCompleted, models.ServiceGST)
	suite.createTaskWith(suite.e1.ID, models.TaskStatusInProgress, models.ServiceAccounting)
	suite.createTaskWith(suite.e1.ID, models.TaskStatusFollowUp, models.ServiceDataEntry)

	stats, err := suite.service.DashboardStats(suite.admin)

	suite.NoError(err)
	suite.Equal(int64(4), stats.Total)
	suite.Equal(int64(1), stats.Completed)
	suite.Equal(int64(1), stats.Pending)
	suite.Equal(int64(1), stats.InProgress)
	// Everything was created just now, so it all counts as new today.
	suite.Equal(int64(4), stats.New)
}

func (suite *ReportServiceTestSuite) TestDashboardStatsEmployeeScoped() {
	suite.createTaskWith(suite.e1.ID, models.TaskStatusPending, models.ServiceGST)
	suite.createTaskWith(suite.e2.ID, models.TaskStatusPending, models.ServiceGST)

	stats, err := suite.service.DashboardStats(suite.e1)

	suite.NoError(err)
	suite.Equal(int64(1), stats.Total)
	suite.Equal(int64(1), stats.New)
}

func TestReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}
