package handler

import (
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/config"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/request"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
	oauthCfg    *config.OAuthConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, userService *service.UserService, oauthCfg *config.OAuthConfig) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		oauthCfg:    oauthCfg,
	}
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", loginPayload(output))
}

// Register handles operator self-registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Registration successful. Please verify your email.", gin.H{
		"user": gin.H{
			"id":         user.ID,
			"first_name": user.FirstName,
			"last_name":  user.LastName,
			"email":      user.Email,
			"username":   user.Username,
		},
	})
}

// VerifyEmail handles email verification via token
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req request.VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Email verified successfully", nil)
}

// ResendVerification handles resending the verification email
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req request.ResendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Silent on unknown or already-verified accounts
	_ = h.authService.ResendVerification(c.Request.Context(), req.Email)

	response.OK(c, "If the email is registered, a verification link has been sent", nil)
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Logout handles user logout. Tokens are stateless; the client discards them.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "Logged out successfully", nil)
}

// GetProfile handles fetching the current operator's profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{
		"user": gin.H{
			"id":          user.ID,
			"first_name":  user.FirstName,
			"last_name":   user.LastName,
			"email":       user.Email,
			"username":    user.Username,
			"photo":       user.Photo,
			"roles":       user.Roles,
			"permissions": user.GetPermissions(),
			"created_at":  user.CreatedAt,
			"updated_at":  user.UpdatedAt,
		},
	})
}

// UpdateProfile handles updating the current operator's profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Photo     *string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), *userID, &service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Photo:     req.Photo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated successfully", gin.H{"user": user})
}

// ChangePassword handles password change
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), &service.ChangePasswordInput{
		UserID:          *userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password changed successfully", nil)
}

// ForgotPassword handles forgot password requests
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req request.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	// Always succeed to prevent email enumeration
	_ = h.authService.ForgotPassword(c.Request.Context(), req.Email)

	response.OK(c, "If the email exists, a reset link has been sent", nil)
}

// ResetPassword handles password reset via token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req request.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), &service.ResetPasswordInput{
		Email:       req.Email,
		Token:       req.Token,
		NewPassword: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Password reset successfully", nil)
}

// GoogleAuth redirects to Google's consent screen
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	state := uuid.New().String()
	authURL, err := h.authService.GetGoogleAuthURL(state)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Redirect(302, authURL)
}

// GoogleCallback completes the Google sign-in flow. When a frontend URL is
// configured the tokens travel back via redirect; otherwise they are
// returned as JSON.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		h.googleError(c, "Missing authorization code")
		return
	}

	output, err := h.authService.GoogleCallback(c.Request.Context(), code)
	if err != nil {
		h.googleError(c, "Google sign-in failed")
		return
	}

	if h.oauthCfg.FrontendSuccessURL != "" {
		params := url.Values{}
		params.Set("access_token", output.AccessToken)
		params.Set("refresh_token", output.RefreshToken)
		c.Redirect(302, h.oauthCfg.FrontendSuccessURL+"?"+params.Encode())
		return
	}

	response.OK(c, "Login successful", loginPayload(output))
}

func (h *AuthHandler) googleError(c *gin.Context, message string) {
	if h.oauthCfg.FrontendErrorURL != "" {
		params := url.Values{}
		params.Set("error", message)
		c.Redirect(302, h.oauthCfg.FrontendErrorURL+"?"+params.Encode())
		return
	}
	response.BadRequest(c, message)
}

func loginPayload(output *service.LoginOutput) gin.H {
	return gin.H{
		"user": gin.H{
			"id":          output.User.ID,
			"first_name":  output.User.FirstName,
			"last_name":   output.User.LastName,
			"email":       output.User.Email,
			"username":    output.User.Username,
			"photo":       output.User.Photo,
			"roles":       output.User.Roles,
			"permissions": output.User.GetPermissions(),
		},
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	}
}
