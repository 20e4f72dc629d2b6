package signupwithemail

import (
	"context"
	"errors"
	c "registrar/internal/core/domain/common"
	"registrar/internal/core/domain/logging"
	"registrar/internal/core/domain/signup"
	uow "registrar/internal/core/domain/unit_of_work"
	"registrar/internal/core/domain/user"
	"registrar/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	ACTIVATION_KEY = "0123456789abcdef0123456789abcdef01234567"
	USERNAME       = user.Username("alice")
	EMAIL          = c.Email("alice@example.com")
	RAW_PASSWORD   = user.RawPassword("test-password")
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	PasswordHasher *user.FakePasswordHasher
	KeyGenerator   *signup.FakeKeyGenerator
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.KeyGenerator = signup.NewFakeKeyGenerator(ACTIVATION_KEY)
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.PasswordHasher,
		suite.KeyGenerator,
		func() time.Time { return NOW },
	)
}

func TestSignUpWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	ctx := context.Background()
	result, err := suite.Service.Run(ctx, Input{Username: USERNAME, Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.NotEqual(user.ID(0), result.User.ID)
	assert.Equal(USERNAME, result.User.Username)
	assert.Equal(NOW, result.User.CreatedAt)
	assert.True(result.User.Email.IsPresent)
	assert.Equal(EMAIL, result.User.Email.Value)
	assert.NotEqual(string(RAW_PASSWORD), string(result.User.PasswordHash))
	assert.False(result.User.IsActive)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestSignupRecordCreatedWithActivationKey() {
	ctx := context.Background()
	result, err := suite.Service.Run(ctx, Input{Username: USERNAME, Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(result.User.ID, result.Signup.UserID)
	assert.Equal(signup.ActivationKey(ACTIVATION_KEY), result.Signup.ActivationKey)
	assert.False(result.Signup.ActivationNotified)
	assert.False(result.Signup.EmailUnconfirmed.IsPresent)
	assert.Equal([]string{string(USERNAME)}, suite.KeyGenerator.Seeds)

	stored, err := suite.UnitOfWork.Context.SignupRepository.GetByUserID(ctx, result.User.ID)
	assert.Nil(err)
	assert.Equal(result.Signup, stored)
}

func (suite *testSuite) TestEmailAlreadyExistsError() {
	ctx := context.Background()
	suite.UnitOfWork.Context.UserRepository.Create(
		ctx,
		user.CreateUserInput{
			Username:     "bob",
			Email:        c.NewOptional(EMAIL, true),
			PasswordHash: user.PasswordHash("test"),
			CreatedAt:    NOW,
		},
	)

	_, err := suite.Service.Run(ctx, Input{Username: USERNAME, Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.True(errors.Is(err, user.ErrEmailAlreadyExists))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
	assert.Empty(suite.UnitOfWork.Context.SignupRepository.Signups)
}

func (suite *testSuite) TestUsernameAlreadyExistsError() {
	ctx := context.Background()
	suite.UnitOfWork.Context.UserRepository.Create(
		ctx,
		user.CreateUserInput{
			Username:     USERNAME,
			Email:        c.NewOptional(c.Email("other@example.com"), true),
			PasswordHash: user.PasswordHash("test"),
			CreatedAt:    NOW,
		},
	)

	_, err := suite.Service.Run(ctx, Input{Username: USERNAME, Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrUsernameAlreadyExists))
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
}

func (suite *testSuite) TestSignupCreationFailureRollsBack() {
	suite.UnitOfWork.Context.SignupRepository.CreateReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Username: USERNAME, Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}

func (suite *testSuite) TestCommitError() {
	suite.UnitOfWork.Context.CommitReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Username: USERNAME, Email: EMAIL, Password: RAW_PASSWORD})

	suite.Require().NotNil(err)
}
