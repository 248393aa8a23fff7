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
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateExpenseInput defines the expected JSON structure for creating an expense
type CreateExpenseInput struct {
	Name   string     `json:"name" binding:"required"`
	Amount *float64   `json:"amount" binding:"required"`
	Date   *time.Time `json:"date"`
	Notes  string     `json:"notes"`
}

// UpdateExpenseInput defines the expected JSON structure for updating an expense
type UpdateExpenseInput struct {
	Name   *string    `json:"name"`
	Amount *float64   `json:"amount"`
	Date   *time.Time `json:"date"`
	Notes  *string    `json:"notes"`
}

// ExpenseListResponse is the pagination envelope for expense listings.
type ExpenseListResponse struct {
	Expenses   []models.Expense `json:"expenses"`
	TotalCount int64            `json:"totalCount"`
	Page       int              `json:"page"`
	PageSize   int              `json:"pageSize"`
}

// GetExpenses lists expenses with search and pagination, newest first
func GetExpenses(c *gin.Context) {
	page, pageSize := utils.ParsePagination(c)
	search := strings.TrimSpace(c.Query("search"))

	query := config.DB.Model(&models.Expense{})
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to count expenses")
		return
	}

	expenses := []models.Expense{}
	if err := query.Order("date DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&expenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Expenses:   expenses,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
	})
}

// GetExpense retrieves a specific expense by ID
func GetExpense(c *gin.Context) {
	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, "id = ?", expenseUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, expense)
}

// CreateExpense creates a new expense entry
func CreateExpense(c *gin.Context) {
	var input CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	expense := models.Expense{
		Name:   input.Name,
		Amount: *input.Amount,
		Date:   time.Now(),
		Notes:  input.Notes,
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense updates an existing expense
func UpdateExpense(c *gin.Context) {
	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var input UpdateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var expense models.Expense
	if err := config.DB.First(&expense, "id = ?", expenseUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		expense.Name = *input.Name
	}
	if input.Amount != nil {
		expense.Amount = *input.Amount
	}
	if input.Date != nil {
		expense.Date = *input.Date
	}
	if input.Notes != nil {
		expense.Notes = *input.Notes
	}

	if err := config.DB.Save(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// DeleteExpense deletes an expense entry
func DeleteExpense(c *gin.Context) {
	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	result := config.DB.Where("id = ?", expenseUUID).Delete(&models.Expense{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		return
	}

	c.Status(http.StatusNoContent)
}
