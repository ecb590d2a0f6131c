package main

import (
	"fmt"
	"net/http"
	"strconv"

	"trackex/models"

	"github.com/gin-gonic/gin"
)

// parseFilterQuery reads the optional category/start_date/end_date query
// params. Malformed dates are InvalidInput.
func parseFilterQuery(c *gin.Context) (expenseFilter, error) {
	f := expenseFilter{Category: c.Query("category")}
	if v := c.Query("start_date"); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		t := d.Time
		f.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		d, err := models.ParseDate(v)
		if err != nil {
			return f, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		t := d.Time
		f.EndDate = &t
	}
	return f, nil
}

// expenseIDParam parses the {id} path segment. A non-numeric id cannot
// name any expense, so it reads as NotFound.
func expenseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("expense %w", ErrNotFound)
	}
	return uint(id), nil
}

func (a *App) listExpensesHandler(c *gin.Context) {
	filter, err := parseFilterQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	expenses, err := a.ListExpenses(currentUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"expenses": expenses,
		"count":    len(expenses),
	})
}

func (a *App) createExpenseHandler(c *gin.Context) {
	var req struct {
		Amount      float64 `json:"amount" binding:"required"`
		Category    string  `json:"category" binding:"required"`
		Date        string  `json:"date" binding:"required"`
		Description string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: amount, category and date are required", ErrInvalidInput))
		return
	}
	expense, err := a.CreateExpense(currentUserID(c), req.Amount, req.Category, req.Date, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "expense created successfully",
		"expense": expense,
	})
}

func (a *App) getExpenseHandler(c *gin.Context) {
	id, err := expenseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	expense, err := a.GetExpense(currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense})
}

func (a *App) updateExpenseHandler(c *gin.Context) {
	id, err := expenseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var upd expenseUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, fmt.Errorf("%w: malformed request body", ErrInvalidInput))
		return
	}
	expense, err := a.UpdateExpense(currentUserID(c), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "expense updated successfully",
		"expense": expense,
	})
}

func (a *App) deleteExpenseHandler(c *gin.Context) {
	id, err := expenseIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := a.DeleteExpense(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted successfully"})
}

func (a *App) categoriesHandler(c *gin.Context) {
	categories, err := a.Categories(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
