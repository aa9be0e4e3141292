package handler

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/careerhq/career-platform/internal/api/domain"
	"github.com/careerhq/career-platform/internal/api/dto"
	"github.com/careerhq/career-platform/internal/api/model"
	"github.com/careerhq/career-platform/internal/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Register handles POST /api/v1/auth/register
// Creates a staff account. New accounts always carry the staff role; admin is
// only granted through the promote-admin command.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	hash, err := h.passwords.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Failed to hash password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to register",
		})
		return
	}

	staff := model.Staff{
		StaffID:      uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		School:       req.School,
		IsAdmin:      false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.storage.CreateStaff(c.Request.Context(), &staff); err != nil {
		if errors.Is(err, domain.ErrStaffExists) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Username or email already registered",
			})
			return
		}
		h.logger.Error("Failed to create staff", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to register",
		})
		return
	}

	h.logger.Info("Staff registered",
		slog.String("staff_id", staff.StaffID),
		slog.String("username", staff.Username),
		slog.String("school", staff.School),
	)

	c.JSON(http.StatusCreated, dto.StaffDTO{
		StaffID:   staff.StaffID,
		Username:  staff.Username,
		Email:     staff.Email,
		FirstName: staff.FirstName,
		LastName:  staff.LastName,
		School:    staff.School,
		Role:      string(auth.RoleFromAdmin(staff.IsAdmin)),
		CreatedAt: staff.CreatedAt.Format(time.RFC3339),
	})
}

// Login handles POST /api/v1/auth/login
// Accepts username or email. Unknown accounts and wrong passwords produce the
// same response so the endpoint does not leak which accounts exist.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	staff, err := h.storage.GetStaffByLogin(c.Request.Context(), req.Login)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		h.logger.Error("Failed to look up staff", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to log in",
		})
		return
	}

	if !h.passwords.VerifyPassword(req.Password, staff.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid credentials",
		})
		return
	}

	role := auth.RoleFromAdmin(staff.IsAdmin)
	token, err := h.tokens.Generate(staff.StaffID, role)
	if err != nil {
		h.logger.Error("Failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to log in",
		})
		return
	}

	h.logger.Info("Staff logged in",
		slog.String("staff_id", staff.StaffID),
		slog.String("role", string(role)),
	)

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:              token,
		StaffID:            staff.StaffID,
		Username:           staff.Username,
		Role:               string(role),
		School:             staff.School,
		MustChangePassword: staff.MustChangePassword,
	})
}

// UpdatePassword handles PUT /api/v1/auth/password
// Requires the current password, so a stolen token alone cannot rotate
// credentials. Clears any pending temporary-password flag.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	staff, err := h.storage.GetStaffByID(c.Request.Context(), identity.StaffID)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Account no longer exists",
			})
			return
		}
		h.logger.Error("Failed to look up staff", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update password",
		})
		return
	}

	if !h.passwords.VerifyPassword(req.CurrentPassword, staff.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Current password is incorrect",
		})
		return
	}

	hash, err := h.passwords.HashPassword(req.NewPassword)
	if err != nil {
		h.logger.Error("Failed to hash password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update password",
		})
		return
	}

	if err := h.storage.UpdateStaffPassword(c.Request.Context(), staff.StaffID, hash, false); err != nil {
		h.logger.Error("Failed to update password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update password",
		})
		return
	}

	h.logger.Info("Password updated", slog.String("staff_id", staff.StaffID))

	c.JSON(http.StatusOK, gin.H{
		"message": "Password updated",
	})
}

// ResetPassword handles POST /api/v1/auth/reset-password
// Admin-only: issues a temporary password for a locked-out colleague. The
// account is flagged so the owner must pick a new password after logging in.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	staff, err := h.storage.GetStaffByLogin(c.Request.Context(), req.Login)
	if err != nil {
		if errors.Is(err, domain.ErrStaffNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Staff account not found",
			})
			return
		}
		h.logger.Error("Failed to look up staff", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset password",
		})
		return
	}

	temp, err := temporaryPassword()
	if err != nil {
		h.logger.Error("Failed to generate temporary password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset password",
		})
		return
	}

	hash, err := h.passwords.HashPassword(temp)
	if err != nil {
		h.logger.Error("Failed to hash password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset password",
		})
		return
	}

	if err := h.storage.UpdateStaffPassword(c.Request.Context(), staff.StaffID, hash, true); err != nil {
		h.logger.Error("Failed to reset password", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to reset password",
		})
		return
	}

	h.logger.Info("Temporary password issued", slog.String("staff_id", staff.StaffID))

	c.JSON(http.StatusOK, dto.ResetPasswordResponse{
		StaffID:           staff.StaffID,
		TemporaryPassword: temp,
	})
}

func temporaryPassword() (string, error) {
	buf := make([]byte, 9)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
