package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dyrkaxd/romanovacosmetics-sub000/config"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/models"
	"github.com/Dyrkaxd/romanovacosmetics-sub000/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateManagedUserInput defines the expected JSON structure for adding a manager account
type CreateManagedUserInput struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Notes string `json:"notes"`
}

// UpdateManagedUserInput defines the expected JSON structure for updating a manager account
type UpdateManagedUserInput struct {
	Name  *string `json:"name"`
	Notes *string `json:"notes"`
}

// GetManagedUsers lists manager accounts. The optional email filter serves
// the client's role lookups and is available to any authenticated caller.
func GetManagedUsers(c *gin.Context) {
	query := config.DB.Model(&models.ManagedUser{}).Order("name ASC")

	if email := c.Query("email"); email != "" {
		query = query.Where("email = ?", strings.ToLower(strings.TrimSpace(email)))
	}

	users := []models.ManagedUser{}
	if err := query.Find(&users).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve managed users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetManagedUser retrieves a specific manager account by ID
func GetManagedUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.ManagedUser
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Managed user not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateManagedUser adds a manager account
func CreateManagedUser(c *gin.Context) {
	var input CreateManagedUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidateEmail(input.Email) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid email format")
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.ManagedUser
	if err := config.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "A managed user with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	user := models.ManagedUser{
		Name:              input.Name,
		Email:             email,
		Notes:             input.Notes,
		AddedByAdminEmail: c.GetString(utils.CtxUserEmail),
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create managed user")
		return
	}

	c.JSON(http.StatusCreated, user)
}

// UpdateManagedUser updates a manager account's name or notes
func UpdateManagedUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var input UpdateManagedUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var user models.ManagedUser
	if err := config.DB.First(&user, "id = ?", userUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Managed user not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Notes != nil {
		user.Notes = *input.Notes
	}

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update managed user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteManagedUser removes a manager account
func DeleteManagedUser(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	result := config.DB.Where("id = ?", userUUID).Delete(&models.ManagedUser{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete managed user")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Managed user not found")
		return
	}

	c.Status(http.StatusNoContent)
}
