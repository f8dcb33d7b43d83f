package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vendora/app/models"
	"vendora/app/repositories"
	"vendora/config"
	"vendora/pkg/auth"
)

// UserStore is the slice of the user repository the auth workflows need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	SetVerified(ctx context.Context, id primitive.ObjectID) error
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
}

// mailSender is implemented by *Mailer.
type mailSender interface {
	SendVerificationEmail(userID primitive.ObjectID, email string)
	SendResetPasswordEmail(userID primitive.ObjectID, email string)
}

// AuthService implements signup, login, email verification, and the
// password reset flow.
type AuthService struct {
	users UserStore
	mail  mailSender
}

func NewAuthService(mailer *Mailer) *AuthService {
	s := &AuthService{users: repositories.NewUserRepository()}
	if mailer != nil {
		s.mail = mailer
	}
	return s
}

// LoginResult is the payload returned on a successful login.
type LoginResult struct {
	ID           primitive.ObjectID `json:"_id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Token        string             `json:"token"`
	RefreshToken string             `json:"refreshToken"`
}

// Signup registers a new customer account. Only name, email, and password
// are stored; phone and gender are validated but not persisted at signup.
// When SIGNUP_VERIFICATION is enabled an activation email goes out.
func (s *AuthService) Signup(ctx context.Context, in models.SignupInput) error {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleCustomer,
	}

	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrAlreadyRegistered
		}
		return err
	}

	if config.SignupVerification() && s.mail != nil {
		s.mail.SendVerificationEmail(user.ID, user.Email)
	}
	return nil
}

// Login checks the credentials and issues a session and a refresh token.
// When SIGNUP_VERIFICATION is enabled, an unverified account is rejected and
// the activation mail is sent again.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, err
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	if config.SignupVerification() && !user.Verified {
		if s.mail != nil {
			s.mail.SendVerificationEmail(user.ID, user.Email)
		}
		return LoginResult{}, ErrEmailNotVerified
	}

	token, err := auth.Issue(auth.PurposeSession, user.ID.Hex(), user.Role)
	if err != nil {
		return LoginResult{}, err
	}
	refresh, err := auth.Issue(auth.PurposeRefresh, user.ID.Hex(), user.Role)
	if err != nil {
		return LoginResult{}, err
	}

	return LoginResult{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Token:        token,
		RefreshToken: refresh,
	}, nil
}

// VerifyEmail validates an activation token and marks the account verified.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	id, err := s.userIDFromToken(auth.PurposeEmailVerify, token)
	if err != nil {
		return err
	}

	if err := s.users.SetVerified(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// ForgotPassword mails a reset link to the account with the given email.
func (s *AuthService) ForgotPassword(ctx context.Context, in models.ForgotPasswordInput) error {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEmailNotFound
	}
	if err != nil {
		return err
	}

	if s.mail != nil {
		s.mail.SendResetPasswordEmail(user.ID, user.Email)
	}
	return nil
}

// ValidateResetToken checks a reset token without consuming it, for the
// GET that renders the reset form.
func (s *AuthService) ValidateResetToken(token string) error {
	_, err := s.userIDFromToken(auth.PurposePasswordReset, token)
	return err
}

// ResetPassword validates the reset token and stores the new password hash.
// The account is marked verified as a side effect.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	id, err := s.userIDFromToken(auth.PurposePasswordReset, token)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	if err := s.users.SetPassword(ctx, id, hash); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// Me returns the account behind a session's user id.
func (s *AuthService) Me(ctx context.Context, userID string) (models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, repositories.ErrNotFound
	}
	return s.users.FindByID(ctx, id)
}

func (s *AuthService) userIDFromToken(purpose auth.Purpose, token string) (primitive.ObjectID, error) {
	claims, err := auth.Verify(purpose, token)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return id, nil
}
