package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/email"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/oauth"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/utils"
)

// Default role assigned at registration
const defaultOperatorRole = "cashier"

// AuthService handles authentication-related operations
type AuthService struct {
	userRepo         repository.UserRepository
	roleRepo         repository.RoleRepository
	accountTokenRepo repository.AccountTokenRepository
	jwtManager       *utils.JWTManager
	emailService     *email.EmailService
	googleOAuth      *oauth.GoogleOAuthService
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	accountTokenRepo repository.AccountTokenRepository,
	jwtManager *utils.JWTManager,
	emailService *email.EmailService,
	googleOAuth *oauth.GoogleOAuthService,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		accountTokenRepo: accountTokenRepo,
		jwtManager:       jwtManager,
		emailService:     emailService,
		googleOAuth:      googleOAuth,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Email    string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if user.Provider != "local" {
		return nil, apperror.NewBadRequestError("This account signs in with " + user.Provider)
	}

	if !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}
	if !user.IsEmailVerified() {
		return nil, apperror.ErrEmailNotVerified
	}

	_ = s.userRepo.TouchLastSeen(ctx, user.ID)
	return s.issueTokens(user)
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Register creates a new user account and sends a verification email
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	existingUser, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	username := input.Email
	if idx := strings.Index(input.Email, "@"); idx > 0 {
		username = input.Email[:idx]
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  username,
		Email:     input.Email,
		Password:  hashedPassword,
		Provider:  "local",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	defaultRole, err := s.roleRepo.GetByName(ctx, defaultOperatorRole)
	if err == nil && defaultRole != nil {
		_ = s.userRepo.AssignRole(ctx, user.ID, defaultRole.ID)
	}

	// Verification failures must not lose the registration
	_ = s.sendVerification(ctx, user.Email)

	return user, nil
}

// ResendVerification sends a fresh verification link. Silent when the email is
// unknown or already verified, to prevent enumeration.
func (s *AuthService) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil || user == nil || user.IsEmailVerified() {
		return nil
	}
	return s.sendVerification(ctx, user.Email)
}

func (s *AuthService) sendVerification(ctx context.Context, emailAddr string) error {
	_ = s.accountTokenRepo.DeleteByEmail(ctx, emailAddr, entity.TokenPurposeVerifyEmail)

	token := utils.GenerateTokenString()
	record := &entity.AccountToken{
		Email:     emailAddr,
		Token:     token,
		Purpose:   entity.TokenPurposeVerifyEmail,
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
	if err := s.accountTokenRepo.Create(ctx, record); err != nil {
		return err
	}
	return s.emailService.SendVerificationEmail(emailAddr, token)
}

// VerifyEmail confirms an email address from an emailed token
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	record, err := s.accountTokenRepo.GetByToken(ctx, token)
	if err != nil {
		return err
	}
	if record == nil || record.Purpose != entity.TokenPurposeVerifyEmail || !record.IsValid() {
		return apperror.NewBadRequestError("Invalid or expired verification link")
	}

	user, err := s.userRepo.GetByEmail(ctx, record.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewBadRequestError("Invalid or expired verification link")
	}

	if err := s.userRepo.MarkEmailVerified(ctx, user.ID); err != nil {
		return err
	}
	_ = s.accountTokenRepo.MarkAsUsed(ctx, token)
	_ = s.accountTokenRepo.DeleteByEmail(ctx, record.Email, entity.TokenPurposeVerifyEmail)
	return nil
}

// RefreshToken generates new tokens from a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*LoginOutput, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}

	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return s.issueTokens(user)
}

// GetCurrentUser returns the current user by ID
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

// ChangePasswordInput represents the change password input
type ChangePasswordInput struct {
	UserID          uuid.UUID
	CurrentPassword string
	NewPassword     string
}

// ChangePassword changes the user's password
func (s *AuthService) ChangePassword(ctx context.Context, input *ChangePasswordInput) error {
	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.ErrNotFound
	}

	if !utils.CheckPasswordHash(input.CurrentPassword, user.Password) {
		return apperror.NewBadRequestError("Current password is incorrect")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	return s.userRepo.Update(ctx, user)
}

// ForgotPassword initiates the password reset process. Always silent about
// whether the email exists.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil || user == nil {
		return nil
	}
	if user.Provider != "local" {
		return nil
	}

	_ = s.accountTokenRepo.DeleteByEmail(ctx, emailAddr, entity.TokenPurposePasswordReset)

	token := utils.GenerateTokenString()
	record := &entity.AccountToken{
		Email:     emailAddr,
		Token:     token,
		Purpose:   entity.TokenPurposePasswordReset,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	if err := s.accountTokenRepo.Create(ctx, record); err != nil {
		return err
	}
	return s.emailService.SendPasswordResetEmail(emailAddr, token)
}

// ResetPasswordInput represents the reset password input
type ResetPasswordInput struct {
	Email       string
	Token       string
	NewPassword string
}

// ResetPassword resets the user's password using a valid token
func (s *AuthService) ResetPassword(ctx context.Context, input *ResetPasswordInput) error {
	record, err := s.accountTokenRepo.GetByToken(ctx, input.Token)
	if err != nil {
		return err
	}
	if record == nil || record.Purpose != entity.TokenPurposePasswordReset ||
		record.Email != input.Email || !record.IsValid() {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewBadRequestError("Invalid or expired reset token")
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	_ = s.accountTokenRepo.MarkAsUsed(ctx, input.Token)
	_ = s.accountTokenRepo.DeleteByEmail(ctx, input.Email, entity.TokenPurposePasswordReset)
	return nil
}

// GetGoogleAuthURL returns the Google consent screen URL
func (s *AuthService) GetGoogleAuthURL(state string) (string, error) {
	if !s.googleOAuth.IsConfigured() {
		return "", apperror.NewBadRequestError("Google sign-in is not configured")
	}
	return s.googleOAuth.GetAuthURL(state), nil
}

// GoogleCallback exchanges the authorization code, provisioning a local
// account on first sign-in. Google-verified emails skip local verification.
func (s *AuthService) GoogleCallback(ctx context.Context, code string) (*LoginOutput, error) {
	if !s.googleOAuth.IsConfigured() {
		return nil, apperror.NewBadRequestError("Google sign-in is not configured")
	}

	token, err := s.googleOAuth.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid authorization code")
	}

	info, err := s.googleOAuth.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not fetch Google profile")
	}

	user, err := s.userRepo.GetByProvider(ctx, "google", info.ID)
	if err != nil {
		return nil, err
	}

	if user == nil {
		// Link to an existing local account with the same email, if any
		user, err = s.userRepo.GetByEmail(ctx, info.Email)
		if err != nil {
			return nil, err
		}
		if user != nil {
			providerID := info.ID
			user.Provider = "google"
			user.ProviderID = &providerID
			if user.Photo == nil && info.Picture != "" {
				photo := info.Picture
				user.Photo = &photo
			}
			if err := s.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		} else {
			user, err = s.provisionGoogleUser(ctx, info)
			if err != nil {
				return nil, err
			}
		}
	}

	if !user.IsEmailVerified() && info.VerifiedEmail {
		_ = s.userRepo.MarkEmailVerified(ctx, user.ID)
	}

	user, err = s.userRepo.GetWithRoles(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	_ = s.userRepo.TouchLastSeen(ctx, user.ID)
	return s.issueTokens(user)
}

func (s *AuthService) provisionGoogleUser(ctx context.Context, info *oauth.GoogleUserInfo) (*entity.User, error) {
	username := info.Email
	if idx := strings.Index(info.Email, "@"); idx > 0 {
		username = info.Email[:idx]
	}

	providerID := info.ID
	user := &entity.User{
		FirstName:  info.GivenName,
		LastName:   info.FamilyName,
		Username:   username,
		Email:      info.Email,
		Provider:   "google",
		ProviderID: &providerID,
	}
	if info.Picture != "" {
		photo := info.Picture
		user.Photo = &photo
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	defaultRole, err := s.roleRepo.GetByName(ctx, defaultOperatorRole)
	if err == nil && defaultRole != nil {
		_ = s.userRepo.AssignRole(ctx, user.ID, defaultRole.ID)
	}
	return user, nil
}

func (s *AuthService) issueTokens(user *entity.User) (*LoginOutput, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, role.Name)
	}
	permissions := user.GetPermissions()

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, roles, permissions)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
