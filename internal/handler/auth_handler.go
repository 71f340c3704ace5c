package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"backoffice-service/internal/apperr"
	"backoffice-service/internal/model"
	"backoffice-service/internal/otp"
	"backoffice-service/pkg/auth"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/jwtutil"
	"backoffice-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const passwordResetExpiry = 60 * time.Minute

// parseUserID extracts the numeric employee id from a "USR1234" display
// identifier. A bare numeric id is accepted too.
func parseUserID(userID string) (uint, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(userID), "USR")
	n, err := strconv.ParseUint(trimmed, 10, 64)
	if err != nil {
		return 0, apperr.Validation("invalid user_id", "user_id")
	}
	return uint(n), nil
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Authenticate verifies the user id and password and issues an access
// and a refresh token. The same error is returned for unknown users and
// wrong passwords.
func Authenticate(c echo.Context) error {
	log := logger.FromEcho(c)

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}

	empID, err := parseUserID(req.UserID)
	if err != nil {
		return respondError(c, err)
	}

	var employee model.Employee
	if err := database.GetDB().Where("emp_id = ?", empID).First(&employee).Error; err != nil {
		log.Warn("Login failed, unknown user", zap.Uint("emp_id", empID))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user id or password"})
	}
	if !auth.VerifyPassword(req.Password, employee.HashedPassword) {
		log.Warn("Login failed, bad password", zap.Uint("emp_id", empID))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid user id or password"})
	}

	accessToken, err := jwt.GenerateAccessToken(employee.EmpID, employee.BusinessID, employee.Role)
	if err != nil {
		log.Error("Failed to generate access token", zap.Error(err))
		return respondError(c, apperr.Internal("error generating token"))
	}
	refreshToken, err := jwt.GenerateRefreshToken(employee.EmpID, employee.BusinessID, employee.Role)
	if err != nil {
		log.Error("Failed to generate refresh token", zap.Error(err))
		return respondError(c, apperr.Internal("error generating token"))
	}

	log.Info("Employee authenticated",
		zap.Uint("emp_id", employee.EmpID),
		zap.Uint("business_id", employee.BusinessID))

	return c.JSON(http.StatusOK, echo.Map{
		"access_token":  accessToken,
		"token_type":    "bearer",
		"refresh_token": refreshToken,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a valid refresh token for a fresh access token.
func Refresh(c echo.Context) error {
	log := logger.FromEcho(c)

	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return respondError(c, apperr.Validation("refresh_token is required", "refresh_token"))
	}

	claims, err := jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		log.Warn("Refresh failed", zap.Error(err))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired refresh token"})
	}

	// Re-read the employee so a role change or deletion takes effect on
	// the next refresh.
	var employee model.Employee
	if err := database.GetDB().Where("emp_id = ?", claims.EmpID).First(&employee).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired refresh token"})
	}

	accessToken, err := jwt.GenerateAccessToken(employee.EmpID, employee.BusinessID, employee.Role)
	if err != nil {
		log.Error("Failed to generate access token", zap.Error(err))
		return respondError(c, apperr.Internal("error generating token"))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

type emailRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a short-lived reset token for every account
// registered under the email. The response never reveals whether the
// email exists. Token delivery is logged; mail transport is out of scope.
func ForgotPassword(c echo.Context) error {
	log := logger.FromEcho(c)

	var req emailRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return respondError(c, apperr.Validation("email is required", "email"))
	}

	var employees []model.Employee
	if err := database.GetDB().Where("email = ?", req.Email).Find(&employees).Error; err != nil {
		return respondError(c, err)
	}

	for _, e := range employees {
		token, err := jwt.GeneratePasswordResetToken(e.EmpID, passwordResetExpiry)
		if err != nil {
			log.Error("Failed to generate reset token", zap.Uint("emp_id", e.EmpID), zap.Error(err))
			continue
		}
		log.Info("Password reset token issued",
			zap.Uint("emp_id", e.EmpID),
			zap.String("reset_token", token))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"detail": "if the email is registered, a password reset link has been sent",
	})
}

type resetPasswordRequest struct {
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ResetPassword sets a new password using a reset token from
// ForgotPassword.
func ResetPassword(c echo.Context) error {
	log := logger.FromEcho(c)

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperr.Validation("invalid request body", ""))
	}
	if req.NewPassword == "" || req.NewPassword != req.ConfirmPassword {
		return respondError(c, apperr.Validation("passwords do not match", "new_password"))
	}

	claims, err := jwt.ValidateToken(req.Token)
	if err != nil || claims.TokenType != jwtutil.TokenTypePasswordReset {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired reset token"})
	}

	db := database.GetDB()
	var employee model.Employee
	if err := db.Where("emp_id = ?", claims.EmpID).First(&employee).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired reset token"})
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return respondError(c, apperr.Internal("error processing password"))
	}
	if err := db.Model(&employee).Update("hashed_password", hashed).Error; err != nil {
		return respondError(c, err)
	}

	log.Info("Password reset completed", zap.Uint("emp_id", employee.EmpID))
	return c.JSON(http.StatusOK, echo.Map{"detail": "password updated successfully"})
}

// ForgotUsernameOTP issues a one-time code for recovering the user ids
// registered under an email.
func ForgotUsernameOTP(c echo.Context) error {
	log := logger.FromEcho(c)

	var req emailRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return respondError(c, apperr.Validation("email is required", "email"))
	}

	var count int64
	if err := database.GetDB().Model(&model.Employee{}).
		Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return respondError(c, err)
	}
	if count > 0 {
		code, err := otpStore.Issue(req.Email, "", otp.PurposeForgotUsername)
		if err != nil {
			log.Error("Failed to issue OTP", zap.Error(err))
			return respondError(c, apperr.Internal("error generating code"))
		}
		log.Info("Username recovery OTP issued",
			zap.String("email", req.Email),
			zap.String("otp", code))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"detail": "if the email is registered, a verification code has been sent",
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTPUsername consumes a username-recovery code and returns every
// user id registered under the email.
func VerifyOTPUsername(c echo.Context) error {
	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.OTP == "" {
		return respondError(c, apperr.Validation("email and otp are required", ""))
	}

	if _, ok := otpStore.Verify(req.Email, req.OTP, otp.PurposeForgotUsername); !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired code"})
	}

	var employees []model.Employee
	if err := database.GetDB().Where("email = ?", req.Email).Find(&employees).Error; err != nil {
		return respondError(c, err)
	}

	userIDs := make([]string, 0, len(employees))
	for i := range employees {
		userIDs = append(userIDs, employees[i].DisplayID())
	}
	return c.JSON(http.StatusOK, echo.Map{"user_ids": userIDs})
}

type forgotPasswordOTPRequest struct {
	Email  string `json:"email"`
	UserID string `json:"user_id"`
}

// ForgotPasswordOTP issues a one-time code for password recovery. When
// the email owns several accounts the caller must name the user id.
func ForgotPasswordOTP(c echo.Context) error {
	log := logger.FromEcho(c)

	var req forgotPasswordOTPRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Email) == "" {
		return respondError(c, apperr.Validation("email is required", "email"))
	}

	var employees []model.Employee
	if err := database.GetDB().Where("email = ?", req.Email).Find(&employees).Error; err != nil {
		return respondError(c, err)
	}

	target := ""
	switch {
	case len(employees) == 0:
		// Fall through to the generic response.
	case req.UserID != "":
		empID, err := parseUserID(req.UserID)
		if err != nil {
			return respondError(c, err)
		}
		for i := range employees {
			if employees[i].EmpID == empID {
				target = employees[i].DisplayID()
			}
		}
	case len(employees) == 1:
		target = employees[0].DisplayID()
	default:
		return respondError(c, apperr.Validation("multiple accounts use this email, user_id is required", "user_id"))
	}

	if target != "" {
		code, err := otpStore.Issue(req.Email, target, otp.PurposeForgotPassword)
		if err != nil {
			log.Error("Failed to issue OTP", zap.Error(err))
			return respondError(c, apperr.Internal("error generating code"))
		}
		log.Info("Password recovery OTP issued",
			zap.String("email", req.Email),
			zap.String("user_id", target),
			zap.String("otp", code))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"detail": "if the email is registered, a verification code has been sent",
	})
}

// VerifyOTPPassword consumes a password-recovery code and replaces the
// account password with a generated temporary one, returned in the
// response for immediate login.
func VerifyOTPPassword(c echo.Context) error {
	log := logger.FromEcho(c)

	var req verifyOTPRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.OTP == "" {
		return respondError(c, apperr.Validation("email and otp are required", ""))
	}

	userID, ok := otpStore.Verify(req.Email, req.OTP, otp.PurposeForgotPassword)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired code"})
	}

	empID, err := parseUserID(userID)
	if err != nil {
		return respondError(c, apperr.Internal("corrupt recovery state"))
	}

	db := database.GetDB()
	var employee model.Employee
	if err := db.Where("emp_id = ?", empID).First(&employee).Error; err != nil {
		return respondError(c, err)
	}

	tempPassword, err := auth.GenerateTempPassword(12)
	if err != nil {
		log.Error("Failed to generate temporary password", zap.Error(err))
		return respondError(c, apperr.Internal("error generating password"))
	}
	hashed, err := auth.HashPassword(tempPassword)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return respondError(c, apperr.Internal("error processing password"))
	}
	if err := db.Model(&employee).Update("hashed_password", hashed).Error; err != nil {
		return respondError(c, err)
	}

	log.Info("Temporary password issued", zap.Uint("emp_id", employee.EmpID))
	return c.JSON(http.StatusOK, echo.Map{
		"user_id":       employee.DisplayID(),
		"temp_password": tempPassword,
		"detail":        "temporary password issued, change it after logging in",
	})
}
