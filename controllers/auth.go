package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/config"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin by email and password and issues a session
// token. Managers sign in through the external identity provider only.
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var admin models.Admin
	if err := config.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !utils.CheckPasswordHash(input.Password, admin.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(admin.Email, admin.Name)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	now := time.Now()
	config.DB.Model(&admin).Update("last_login", &now)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"email": admin.Email,
			"name":  admin.Name,
			"role":  utils.RoleAdmin,
		},
	})
}

// Me returns the caller's identity and resolved role
func Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"email": c.GetString(utils.CtxUserEmail),
			"name":  c.GetString(utils.CtxUserName),
			"role":  c.GetString(utils.CtxUserRole),
		},
	})
}
