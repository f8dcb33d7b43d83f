package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vendora/app/models"
	"vendora/app/repositories"
	"vendora/config"
	"vendora/pkg/auth"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	byEmail   map[string]models.User
	createErr error
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	s := &fakeUserStore{byEmail: make(map[string]models.User)}
	for _, u := range users {
		s.byEmail[u.Email] = u
	}
	return s
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if _, ok := s.byEmail[user.Email]; ok {
		return repositories.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.byEmail[user.Email] = *user
	return nil
}

func (s *fakeUserStore) SetVerified(_ context.Context, id primitive.ObjectID) error {
	for email, u := range s.byEmail {
		if u.ID == id {
			u.Verified = true
			s.byEmail[email] = u
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (s *fakeUserStore) SetPassword(_ context.Context, id primitive.ObjectID, hash string) error {
	for email, u := range s.byEmail {
		if u.ID == id {
			u.Password = hash
			u.Verified = true
			s.byEmail[email] = u
			return nil
		}
	}
	return repositories.ErrNotFound
}

// fakeMailer records dispatches instead of sending.
type fakeMailer struct {
	verifications int
	resets        int
}

func (m *fakeMailer) SendVerificationEmail(primitive.ObjectID, string) { m.verifications++ }
func (m *fakeMailer) SendResetPasswordEmail(primitive.ObjectID, string) {
	m.resets++
}

func testUser(t *testing.T, email, password string) models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return models.User{
		ID:       primitive.NewObjectID(),
		Name:     "Test User",
		Email:    email,
		Password: hash,
		Role:     models.RoleCustomer,
	}
}

func TestSignupStoresHashedCustomer(t *testing.T) {
	store := newFakeUserStore()
	svc := &AuthService{users: store, mail: &fakeMailer{}}

	err := svc.Signup(context.Background(), models.SignupInput{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	saved, ok := store.byEmail["jane@example.com"]
	require.True(t, ok, "user was not stored")
	assert.Equal(t, models.RoleCustomer, saved.Role)
	assert.False(t, saved.Verified)
	assert.NotEqual(t, "secret123", saved.Password)
	assert.True(t, auth.CheckPassword(saved.Password, "secret123"))
}

func TestSignupDuplicateEmail(t *testing.T) {
	store := newFakeUserStore(testUser(t, "taken@example.com", "secret123"))
	svc := &AuthService{users: store}

	err := svc.Signup(context.Background(), models.SignupInput{
		Name:     "Other",
		Email:    "taken@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newFakeUserStore(testUser(t, "jane@example.com", "secret123"))
	svc := &AuthService{users: store}

	_, unknownErr := svc.Login(context.Background(), models.LoginInput{
		Email: "nobody@example.com", Password: "secret123",
	})
	_, wrongPassErr := svc.Login(context.Background(), models.LoginInput{
		Email: "jane@example.com", Password: "wrong-password",
	})

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassErr, ErrInvalidCredentials)
}

func TestLoginIssuesSessionAndRefreshTokens(t *testing.T) {
	user := testUser(t, "jane@example.com", "secret123")
	svc := &AuthService{users: newFakeUserStore(user)}

	result, err := svc.Login(context.Background(), models.LoginInput{
		Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, result.ID)
	assert.Equal(t, "jane@example.com", result.Email)
	assert.NotEqual(t, result.Token, result.RefreshToken)

	claims, err := auth.Verify(auth.PurposeSession, result.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)

	// The session token must not pass as a refresh token and vice versa.
	_, err = auth.Verify(auth.PurposeRefresh, result.Token)
	assert.Error(t, err)
	_, err = auth.Verify(auth.PurposeRefresh, result.RefreshToken)
	assert.NoError(t, err)
}

func TestLoginRejectsUnverifiedWhenVerificationEnabled(t *testing.T) {
	config.Set("SIGNUP_VERIFICATION", "true")
	defer config.Set("SIGNUP_VERIFICATION", "false")

	mailer := &fakeMailer{}
	user := testUser(t, "jane@example.com", "secret123")
	svc := &AuthService{users: newFakeUserStore(user), mail: mailer}

	result, err := svc.Login(context.Background(), models.LoginInput{
		Email: "jane@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrEmailNotVerified)
	assert.Empty(t, result.Token)
	assert.Equal(t, 1, mailer.verifications, "activation mail should be re-sent")
}

func TestLoginAllowsVerifiedWhenVerificationEnabled(t *testing.T) {
	config.Set("SIGNUP_VERIFICATION", "true")
	defer config.Set("SIGNUP_VERIFICATION", "false")

	user := testUser(t, "jane@example.com", "secret123")
	user.Verified = true
	svc := &AuthService{users: newFakeUserStore(user), mail: &fakeMailer{}}

	result, err := svc.Login(context.Background(), models.LoginInput{
		Email: "jane@example.com", Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestVerifyEmailMarksVerified(t *testing.T) {
	user := testUser(t, "jane@example.com", "secret123")
	store := newFakeUserStore(user)
	svc := &AuthService{users: store}

	token, err := auth.Issue(auth.PurposeEmailVerify, user.ID.Hex(), "")
	require.NoError(t, err)

	require.NoError(t, svc.VerifyEmail(context.Background(), token))
	assert.True(t, store.byEmail["jane@example.com"].Verified)
}

func TestVerifyEmailRejectsBadToken(t *testing.T) {
	svc := &AuthService{users: newFakeUserStore()}

	err := svc.VerifyEmail(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyEmailRejectsDeletedUser(t *testing.T) {
	svc := &AuthService{users: newFakeUserStore()}

	token, err := auth.Issue(auth.PurposeEmailVerify, primitive.NewObjectID().Hex(), "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), token), ErrInvalidToken)
}

func TestVerifyEmailRejectsSessionToken(t *testing.T) {
	user := testUser(t, "jane@example.com", "secret123")
	svc := &AuthService{users: newFakeUserStore(user)}

	token, err := auth.Issue(auth.PurposeSession, user.ID.Hex(), user.Role)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.VerifyEmail(context.Background(), token), ErrInvalidToken)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	mailer := &fakeMailer{}
	svc := &AuthService{users: newFakeUserStore(), mail: mailer}

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordInput{
		Email: "nobody@example.com",
	})
	assert.ErrorIs(t, err, ErrEmailNotFound)
	assert.Zero(t, mailer.resets)
}

func TestForgotPasswordSendsResetMail(t *testing.T) {
	mailer := &fakeMailer{}
	user := testUser(t, "jane@example.com", "secret123")
	svc := &AuthService{users: newFakeUserStore(user), mail: mailer}

	err := svc.ForgotPassword(context.Background(), models.ForgotPasswordInput{
		Email: "jane@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mailer.resets)
}

func TestResetPasswordStoresNewHash(t *testing.T) {
	user := testUser(t, "jane@example.com", "old-password")
	store := newFakeUserStore(user)
	svc := &AuthService{users: store}

	token, err := auth.Issue(auth.PurposePasswordReset, user.ID.Hex(), "")
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword(context.Background(), token, "new-password"))

	saved := store.byEmail["jane@example.com"]
	assert.True(t, auth.CheckPassword(saved.Password, "new-password"))
	assert.False(t, auth.CheckPassword(saved.Password, "old-password"))
	assert.True(t, saved.Verified)
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	user := testUser(t, "jane@example.com", "secret123")
	svc := &AuthService{users: newFakeUserStore(user)}

	token, err := auth.Issue(auth.PurposeSession, user.ID.Hex(), user.Role)
	require.NoError(t, err)

	err = svc.ResetPassword(context.Background(), token, "new-password")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignupCreateFailureIsPassedThrough(t *testing.T) {
	store := newFakeUserStore()
	store.createErr = errors.New("write concern failed")
	svc := &AuthService{users: store}

	err := svc.Signup(context.Background(), models.SignupInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret123",
	})
	assert.EqualError(t, err, "write concern failed")
}
