package signup

import (
	"context"
	c "registrar/internal/core/domain/common"
	"registrar/internal/core/domain/signup"
	"registrar/internal/core/domain/user"
	"registrar/internal/db"
	dbuser "registrar/internal/db/user"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

const (
	ACTIVATION_KEY   = signup.ActivationKey("0123456789abcdef0123456789abcdef01234567")
	CONFIRMATION_KEY = signup.ConfirmationKey("abcdefabcdefabcdefabcdefabcdefabcdefabcd")
	NEW_EMAIL        = c.Email("new@test.test")
)

var NOW time.Time = time.Date(2020, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool  *pgxpool.Pool
	repo  *PgxSignupRepository
	users *dbuser.PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	db.SkipWithoutDatabase(suite.T())
	suite.pool = db.CreateTestPool()
	suite.repo = NewPgxSignupRepository(suite.pool)
	suite.users = dbuser.NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxSignupRepository(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(username string, createdAt time.Time, isActive bool) user.User {
	suite.T().Helper()
	u, err := suite.users.Create(context.Background(), user.CreateUserInput{
		Username:     user.Username(username),
		Email:        c.NewOptional(c.Email(username+"@test.test"), true),
		PasswordHash: "test",
		IsActive:     isActive,
		CreatedAt:    createdAt,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) createSignup(userID user.ID, key signup.ActivationKey) signup.Signup {
	suite.T().Helper()
	s, err := suite.repo.Create(context.Background(), signup.CreateInput{UserID: userID, ActivationKey: key})
	suite.Require().Nil(err)
	return s
}

func (suite *testSuite) TestCreateAndGet() {
	ctx := context.Background()
	u := suite.createUser("alice", NOW, false)

	created := suite.createSignup(u.ID, ACTIVATION_KEY)

	assert := suite.Require()
	assert.Equal(signup.Signup{UserID: u.ID, ActivationKey: ACTIVATION_KEY}, created)

	s, err := suite.repo.GetByUserID(ctx, u.ID)
	assert.Nil(err)
	assert.Equal(created, s)

	s, err = suite.repo.GetByActivationKey(ctx, ACTIVATION_KEY)
	assert.Nil(err)
	assert.Equal(created, s)

	_, err = suite.repo.GetByUserID(ctx, u.ID+1)
	assert.ErrorIs(err, signup.ErrSignupDoesNotExist)

	_, err = suite.repo.GetByActivationKey(ctx, signup.ActivationKey(strings.Repeat("0", 40)))
	assert.ErrorIs(err, signup.ErrSignupDoesNotExist)
}

func (suite *testSuite) TestSaveEmailChange() {
	ctx := context.Background()
	u := suite.createUser("alice", NOW, false)
	s := suite.createSignup(u.ID, ACTIVATION_KEY)

	s.RequestEmailChange(NEW_EMAIL, CONFIRMATION_KEY, NOW)
	s.LastActive = c.NewOptional(NOW, true)
	saved, err := suite.repo.Save(ctx, s)

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(s, saved)

	found, err := suite.repo.GetByConfirmationKey(ctx, CONFIRMATION_KEY)
	assert.Nil(err)
	assert.Equal(s, found)

	_, err = found.ConfirmEmailChange()
	assert.Nil(err)
	saved, err = suite.repo.Save(ctx, found)
	assert.Nil(err)
	assert.False(saved.EmailUnconfirmed.IsPresent)
	assert.False(saved.EmailConfirmationKey.IsPresent)
	assert.False(saved.EmailConfirmationKeyCreated.IsPresent)

	_, err = suite.repo.GetByConfirmationKey(ctx, CONFIRMATION_KEY)
	assert.ErrorIs(err, signup.ErrSignupDoesNotExist)
}

func (suite *testSuite) TestSaveRejectsHalfPendingEmail() {
	ctx := context.Background()
	u := suite.createUser("alice", NOW, false)
	s := suite.createSignup(u.ID, ACTIVATION_KEY)

	s.EmailUnconfirmed = c.NewOptional(NEW_EMAIL, true)
	_, err := suite.repo.Save(ctx, s)

	suite.Require().NotNil(err)
}

func (suite *testSuite) TestSaveMissing() {
	_, err := suite.repo.Save(context.Background(), signup.Signup{UserID: 42, ActivationKey: ACTIVATION_KEY})
	suite.Require().ErrorIs(err, signup.ErrSignupDoesNotExist)
}

func (suite *testSuite) TestDelete() {
	ctx := context.Background()
	u := suite.createUser("alice", NOW, false)
	suite.createSignup(u.ID, ACTIVATION_KEY)

	assert := suite.Require()
	assert.Nil(suite.repo.Delete(ctx, u.ID))
	assert.ErrorIs(suite.repo.Delete(ctx, u.ID), signup.ErrSignupDoesNotExist)
}

func (suite *testSuite) TestDeleteUserCascades() {
	ctx := context.Background()
	u := suite.createUser("alice", NOW, false)
	suite.createSignup(u.ID, ACTIVATION_KEY)

	suite.Require().Nil(suite.users.Delete(ctx, u.ID))

	_, err := suite.repo.GetByUserID(ctx, u.ID)
	suite.Require().ErrorIs(err, signup.ErrSignupDoesNotExist)
}

func (suite *testSuite) TestList() {
	ctx := context.Background()
	old := suite.createUser("old", NOW.AddDate(0, 0, -10), false)
	fresh := suite.createUser("fresh", NOW, false)
	active := suite.createUser("active", NOW.AddDate(0, 0, -10), true)
	suite.createSignup(old.ID, ACTIVATION_KEY)
	suite.createSignup(fresh.ID, signup.ActivationKey(strings.Repeat("1", 40)))
	notified := suite.createSignup(active.ID, signup.DefaultActivatedMarker)
	notified.ActivationNotified = true
	_, err := suite.repo.Save(ctx, notified)
	suite.Require().Nil(err)

	cases := []struct {
		id       string
		options  signup.ListOptions
		expected []user.ID
	}{
		{id: "all", options: signup.ListOptions{}, expected: []user.ID{old.ID, fresh.ID, active.ID}},
		{
			id:       "inactive",
			options:  signup.ListOptions{IsActive: c.NewOptional(false, true)},
			expected: []user.ID{old.ID, fresh.ID},
		},
		{
			id: "inactive joined before",
			options: signup.ListOptions{
				IsActive:     c.NewOptional(false, true),
				JoinedBefore: c.NewOptional(NOW.AddDate(0, 0, -7), true),
			},
			expected: []user.ID{old.ID},
		},
		{
			id:       "notified",
			options:  signup.ListOptions{ActivationNotified: c.NewOptional(true, true)},
			expected: []user.ID{active.ID},
		},
	}

	for _, testcase := range cases {
		suite.Run(testcase.id, func() {
			registrations, err := suite.repo.List(ctx, testcase.options)

			assert := suite.Require()
			assert.Nil(err)
			ids := make([]user.ID, 0, len(registrations))
			for _, registration := range registrations {
				assert.Equal(registration.User.ID, registration.Signup.UserID)
				ids = append(ids, registration.User.ID)
			}
			assert.Equal(testcase.expected, ids)
		})
	}
}
