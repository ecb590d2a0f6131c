package main

import (
	"fmt"
	"time"

	"trackex/models"

	"gorm.io/gorm"
)

// expenseFilter narrows which expenses a query considers. Zero-value fields
// mean "no constraint"; date bounds are inclusive.
type expenseFilter struct {
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

// expenseQuery builds the base query every ledger and aggregation read
// shares: always scoped to the owning user, optionally narrowed by filter.
func (a *App) expenseQuery(userID uint, f expenseFilter) *gorm.DB {
	q := a.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	return q
}

// CreateExpense records a new expense for the user.
func (a *App) CreateExpense(userID uint, amount float64, category, dateStr, description string) (*models.Expense, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	date, err := models.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	expense := models.Expense{
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Description: description,
		Date:        date,
	}
	if err := a.db.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

// ListExpenses returns the user's expenses matching the filter, newest
// date first. Same-date rows order by id descending so a fixed dataset
// always lists the same way.
func (a *App) ListExpenses(userID uint, f expenseFilter) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := a.expenseQuery(userID, f).Order("date DESC, id DESC").Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// GetExpense fetches one expense owned by the user. An expense owned by
// someone else is indistinguishable from one that does not exist.
func (a *App) GetExpense(userID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	err := a.db.Where("id = ? AND user_id = ?", expenseID, userID).First(&expense).Error
	if err != nil {
		return nil, fmt.Errorf("expense %w", ErrNotFound)
	}
	return &expense, nil
}

// expenseUpdate carries the optional fields of a partial update; nil means
// "leave unchanged".
type expenseUpdate struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Date        *string  `json:"date"`
}

// UpdateExpense applies a partial update. Only supplied fields change;
// updated_at refreshes on any successful write.
func (a *App) UpdateExpense(userID, expenseID uint, upd expenseUpdate) (*models.Expense, error) {
	expense, err := a.GetExpense(userID, expenseID)
	if err != nil {
		return nil, err
	}
	if upd.Amount != nil {
		expense.Amount = *upd.Amount
	}
	if upd.Category != nil {
		expense.Category = *upd.Category
	}
	if upd.Description != nil {
		expense.Description = *upd.Description
	}
	if upd.Date != nil {
		date, err := models.ParseDate(*upd.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		expense.Date = date
	}
	if err := a.db.Save(expense).Error; err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes one expense. A second delete of the same id
// reports NotFound.
func (a *App) DeleteExpense(userID, expenseID uint) error {
	res := a.db.Where("id = ? AND user_id = ?", expenseID, userID).Delete(&models.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("expense %w", ErrNotFound)
	}
	return nil
}

// Categories returns the distinct category labels currently in use by the
// user's expenses.
func (a *App) Categories(userID uint) ([]string, error) {
	categories := []string{}
	err := a.db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Distinct().
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
