package services

import (
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasktracker/internal/database"
	"tasktracker/internal/models"
)

// serviceTestSuite carries the shared in-memory database and entity factories
// used by the service suites.
type serviceTestSuite struct {
	suite.Suite
	db *gorm.DB
}

// SetupTest runs before each test
func (suite *serviceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	suite.Require().NoError(database.AutoMigrate(suite.db))
}

// TearDownTest runs after each test
func (suite *serviceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *serviceTestSuite) createAdmin(email string) *models.User {
	user := &models.User{
		Role:         models.RoleAdmin,
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *serviceTestSuite) createEmployee(email string, code int) *models.User {
	user := &models.User{
		Role:         models.RoleEmployee,
		Email:        email,
		PasswordHash: "hashedpassword",
		EmployeeCode: &code,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *serviceTestSuite) createTestClient(name string) *models.Client {
	client := &models.Client{Name: name}
	suite.Require().NoError(suite.db.Create(client).Error)
	return client
}

func (suite *serviceTestSuite) createTestOrganization(name string) *models.Organization {
	org := &models.Organization{Name: name}
	suite.Require().NoError(suite.db.Create(org).Error)
	return org
}

func (suite *serviceTestSuite) link(orgID, clientID uint64) {
	link := &models.OrganizationClient{OrganizationID: orgID, ClientID: clientID}
	suite.Require().NoError(suite.db.Create(link).Error)
}

func (suite *serviceTestSuite) createTestTask(name string, orgID, clientID, creatorID uint64) *models.Task {
	task := &models.Task{
		TaskName:        name,
		Service:         models.ServiceAccounting,
		Status:          models.TaskStatusPending,
		OrganizationID:  orgID,
		ClientID:        clientID,
		CreatedByUserID: creatorID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}
