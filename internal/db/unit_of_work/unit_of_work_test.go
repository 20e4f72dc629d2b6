package uow

import (
	"context"
	c "registrar/internal/core/domain/common"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
	"registrar/internal/db"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const ACTIVATION_KEY = signup.ActivationKey("0123456789abcdef0123456789abcdef01234567")

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
}

func (suite *testSuite) SetupSuite() {
	db.SkipWithoutDatabase(suite.T())
	suite.pool = db.CreateTestPool()
	suite.uow = NewPgxUnitOfWork(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestCommit() {
	userID := s.createUserAndSignup(true)

	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer uow.Rollback(ctx)

	u, err := uow.Users().GetByID(ctx, userID)
	s.Require().Nil(err)
	s.Equal(user.Username("alice"), u.Username)

	signup, err := uow.Signups().GetByUserID(ctx, userID)
	s.Require().Nil(err)
	s.Equal(ACTIVATION_KEY, signup.ActivationKey)
}

func (s *testSuite) TestRollback() {
	userID := s.createUserAndSignup(false)

	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().Nil(err)
	defer uow.Rollback(ctx)

	_, err = uow.Users().GetByID(ctx, userID)
	s.ErrorIs(err, user.ErrUserDoesNotExist)

	_, err = uow.Signups().GetByUserID(ctx, userID)
	s.ErrorIs(err, signup.ErrSignupDoesNotExist)
}

func (s *testSuite) TestSignupLock() {
	var wg sync.WaitGroup
	wg.Add(10)
	userID := s.createUserAndSignup(true)
	count := 0

	for i := 0; i < 10; i++ {
		go func() {
			defer wg.Done()
			ctx := context.Background()
			uow, err := s.uow.Begin(ctx)
			if err != nil {
				s.Fail("could not begin unit of work")
				return
			}
			defer uow.Rollback(ctx)

			_, err = uow.Signups().GetByUserID(ctx, userID)
			c := count
			if err != nil {
				s.Fail("could not get signup by user ID, error is %v", err)
				return
			}
			count = c + 1
		}()
	}

	wg.Wait()
	s.Equal(10, count)
}

func (s *testSuite) createUserAndSignup(doCommit bool) user.ID {
	s.T().Helper()

	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	if err != nil {
		s.FailNowf("could not begin uow", "%v", err)
	}
	defer uow.Rollback(ctx)

	createdUser, err := uow.Users().Create(ctx, user.CreateUserInput{
		Username:     "alice",
		Email:        c.NewOptional(c.NewEmail("test@test.com"), true),
		PasswordHash: "test",
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		s.FailNowf("could not create user", "%v", err)
	}

	_, err = uow.Signups().Create(ctx, signup.CreateInput{
		UserID:        createdUser.ID,
		ActivationKey: ACTIVATION_KEY,
	})
	if err != nil {
		s.FailNowf("could not create signup", "%v", err)
	}

	if doCommit {
		s.Require().Nil(uow.Commit(ctx))
	}
	return createdUser.ID
}
