package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ecommerce-api/config"
	"ecommerce-api/middlewares"
	"ecommerce-api/utils"
)

// AdminAuthController exchanges the single configured admin id/password pair
// for the standard token format (role claim ADMIN). There is no admin user
// table; customers obtain tokens elsewhere and are only verified here.
type AdminAuthController struct {
	cfg    *config.Config
	logger *zap.Logger
}

func NewAdminAuthController(cfg *config.Config, logger *zap.Logger) *AdminAuthController {
	return &AdminAuthController{cfg: cfg, logger: logger}
}

type adminLoginRequest struct {
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

func (ctl *AdminAuthController) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and password are required"})
		return
	}

	if ctl.cfg.AdminUserID == "" || req.UserID != ctl.cfg.AdminUserID || req.Password != ctl.cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(ctl.cfg.JWTSecret, 0, req.UserID, middlewares.RoleAdmin)
	if err != nil {
		ctl.logger.Error("admin token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AdminCookie, token, int((7 * 24 * time.Hour).Seconds()), "/", "", ctl.cfg.CookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  gin.H{"id": req.UserID, "role": middlewares.RoleAdmin, "name": "Admin"},
	})
}

func (ctl *AdminAuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middlewares.AdminCookie, "", -1, "/", "", ctl.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
