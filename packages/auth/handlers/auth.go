package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"epl-api/packages/auth/middleware"
	"epl-api/packages/auth/models"
	"epl-api/packages/auth/services"
	"epl-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const resetTTL = 2 * time.Hour

type AuthHandler struct {
	DB           *gorm.DB
	Tokens       *utils.TokenService
	EmailService services.EmailService
	Clock        clockwork.Clock
}

func NewAuthHandler(db *gorm.DB, tokens *utils.TokenService, email services.EmailService, clock clockwork.Clock) *AuthHandler {
	return &AuthHandler{
		DB:           db,
		Tokens:       tokens,
		EmailService: email,
		Clock:        clock,
	}
}

func respond(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"statusCode": status, "message": message})
}

func (h *AuthHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	var user models.User
	if err := h.DB.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		respond(c, http.StatusUnauthorized, "User not found")
		return nil, false
	}
	return &user, true
}

func (h *AuthHandler) issue(c *gin.Context, status int, user models.User) {
	pair, err := h.Tokens.GenerateTokenPair(c.Request.Context(), user)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("token generation failed")
		respond(c, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}
	c.JSON(status, models.AuthResponse{TokenResponse: *pair, User: user})
}

// @Summary User Registration
// @Description Register a guest account and get tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param user body models.RegisterRequest true "User registration data"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error())
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		respond(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := h.Clock.Now()
	user := models.User{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		Username:        strings.TrimSpace(req.Username),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Gender:          req.Gender,
		Password:        hashed,
		Enabled:         true,
		Roles:           models.GetDefaultRoles(),
		LastLogin:       &now,
		ConnectionCount: 1,
	}
	if err := h.DB.WithContext(c.Request.Context()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respond(c, http.StatusConflict, "Email or username already exists")
			return
		}
		respond(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	h.issue(c, http.StatusCreated, user)
}

// @Summary User Login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "User login credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error())
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var user models.User
	if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		respond(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		respond(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.Enabled {
		respond(c, http.StatusForbidden, "Account disabled")
		return
	}

	user.RecordLogin(h.Clock.Now())
	if err := db.Save(&user).Error; err != nil {
		respond(c, http.StatusInternalServerError, "Failed to update user login info")
		return
	}

	h.issue(c, http.StatusOK, user)
}

// @Summary Get User Profile
// @Tags user
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]interface{}
// @Router /users/me [get]
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Refresh Access Token
// @Description Trade a refresh token for a new pair. The old refresh token stops working.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body models.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error())
		return
	}

	pair, user, err := h.Tokens.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respond(c, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	user.RecordLogin(h.Clock.Now())
	if err := h.DB.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to record login on refresh")
	}

	c.JSON(http.StatusOK, pair)
}

// @Summary Logout
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body models.RefreshTokenRequest true "Refresh token to revoke"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.Tokens.RevokeRefreshToken(c.Request.Context(), req.RefreshToken); err != nil {
		respond(c, http.StatusBadRequest, "Failed to revoke token")
		return
	}
	respond(c, http.StatusOK, "Logged out successfully")
}

// @Summary Logout from All Devices
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respond(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if err := h.Tokens.RevokeAllUserTokens(c.Request.Context(), userID); err != nil {
		respond(c, http.StatusInternalServerError, "Failed to revoke tokens")
		return
	}
	respond(c, http.StatusOK, "Logged out from all devices")
}

// @Summary Send Password Reset Link
// @Description Always answers success so that emails cannot be enumerated.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.PasswordResetRequest true "Password reset request"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} map[string]interface{}
// @Router /auth/reset-password/send-link [post]
func (h *AuthHandler) SendPasswordResetLink(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error())
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	now := h.Clock.Now()

	var user models.User
	if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
		return
	}
	// a pending request is still valid, do not send another mail
	if user.ConfirmationToken != nil && !user.IsPasswordRequestExpired(now, resetTTL) {
		c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
		return
	}

	token, err := utils.GenerateSecureToken()
	if err != nil {
		respond(c, http.StatusInternalServerError, "Failed to generate confirmation token")
		return
	}
	user.ConfirmationToken = &token
	user.PasswordRequestedAt = &now
	if err := db.Save(&user).Error; err != nil {
		respond(c, http.StatusInternalServerError, "Failed to save password reset request")
		return
	}

	origin := c.GetHeader("Origin")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	resetURL := origin + strings.ReplaceAll(req.CallBackUrl, "[token]", token)
	if err := h.EmailService.SendPasswordResetEmail(user.Email, resetURL); err != nil {
		respond(c, http.StatusInternalServerError, "Failed to send password reset email")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// @Summary Confirm Password Reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.PasswordResetConfirmRequest true "Password reset confirmation"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /auth/reset-password/confirm [post]
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req models.PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	db := h.DB.WithContext(ctx)

	var user models.User
	if err := db.Where("confirmation_token = ?", req.Token).First(&user).Error; err != nil {
		respond(c, http.StatusNotFound, "Invalid or expired token")
		return
	}
	if user.IsPasswordRequestExpired(h.Clock.Now(), resetTTL) {
		respond(c, http.StatusBadRequest, "Token has expired")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respond(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	user.Password = hashed
	user.ConfirmationToken = nil
	user.PasswordRequestedAt = nil
	if err := db.Save(&user).Error; err != nil {
		respond(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	if err := h.Tokens.RevokeAllUserTokens(ctx, user.ID); err != nil {
		log.Warn().Err(err).Uint("user_id", user.ID).Msg("failed to revoke tokens after password reset")
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// @Summary Change Password
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Password change request"
// @Success 200 {object} models.SuccessResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error())
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if !utils.CheckPassword(req.CurrentPassword, user.Password) {
		respond(c, http.StatusBadRequest, "Current password is invalid")
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		respond(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	user.Password = hashed
	if err := h.DB.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		respond(c, http.StatusInternalServerError, "Failed to update password")
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// @Summary Update own profile
// @Tags user
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path uint true "User ID"
// @Param request body models.UpdateUserRequest true "User update request"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /users/{id} [put]
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error())
		return
	}
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	if c.Param("id") != strconv.FormatUint(uint64(user.ID), 10) {
		respond(c, http.StatusForbidden, "You can only update your own profile")
		return
	}

	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Username = strings.TrimSpace(req.Username)
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if err := h.DB.WithContext(c.Request.Context()).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respond(c, http.StatusConflict, "Email or username already exists")
			return
		}
		respond(c, http.StatusInternalServerError, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// @Summary Set roles or enabled flag of a user
// @Tags user
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path uint true "User ID"
// @Param request body models.PatchUserRequest true "User patch request"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /users/{id} [patch]
func (h *AuthHandler) PatchUser(c *gin.Context) {
	var req models.PatchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, err.Error())
		return
	}

	db := h.DB.WithContext(c.Request.Context())
	var target models.User
	if err := db.First(&target, c.Param("id")).Error; err != nil {
		respond(c, http.StatusNotFound, "User not found")
		return
	}

	if req.Roles != nil {
		for _, role := range *req.Roles {
			if !models.IsValidRole(role) {
				respond(c, http.StatusBadRequest, "Invalid role: "+role)
				return
			}
		}
		target.Roles = *req.Roles
	}
	if req.Enabled != nil {
		target.Enabled = *req.Enabled
	}

	if err := db.Save(&target).Error; err != nil {
		respond(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, target)
}

type UserListResponse struct {
	Users      []models.User `json:"users"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	TotalPages int           `json:"total_pages"`
}

// @Summary List users
// @Tags user
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page, max 100" default(10)
// @Param search query string false "Search in username or email"
// @Success 200 {object} UserListResponse
// @Failure 400 {object} map[string]interface{}
// @Router /users [get]
func (h *AuthHandler) GetUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		respond(c, http.StatusBadRequest, "Invalid page parameter")
		return
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		respond(c, http.StatusBadRequest, "Invalid per_page parameter")
		return
	}
	if perPage > 100 {
		perPage = 100
	}

	query := h.DB.WithContext(c.Request.Context()).Model(&models.User{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("username ILIKE ? OR email ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respond(c, http.StatusInternalServerError, "Failed to count users")
		return
	}
	var users []models.User
	if err := query.Order("id").Offset((page - 1) * perPage).Limit(perPage).Find(&users).Error; err != nil {
		respond(c, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	c.JSON(http.StatusOK, UserListResponse{
		Users:      users,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	})
}
