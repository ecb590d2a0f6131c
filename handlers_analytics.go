package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// intQueryParam parses an optional non-negative integer query parameter,
// returning fallback when absent and InvalidInput when malformed.
func intQueryParam(c *gin.Context, name string, fallback int) (int, error) {
	v := c.Query(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", ErrInvalidInput, name, v)
	}
	return n, nil
}

func (a *App) summaryHandler(c *gin.Context) {
	filter, err := parseFilterQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	summary, err := a.Summarize(currentUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (a *App) byCategoryHandler(c *gin.Context) {
	filter, err := parseFilterQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	buckets, err := a.ByCategory(currentUserID(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": buckets})
}

func (a *App) byMonthHandler(c *gin.Context) {
	year, err := intQueryParam(c, "year", time.Now().Year())
	if err != nil {
		respondError(c, err)
		return
	}
	report, err := a.ByMonth(currentUserID(c), year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (a *App) trendsHandler(c *gin.Context) {
	days, err := intQueryParam(c, "days", 30)
	if err != nil {
		respondError(c, err)
		return
	}
	report, err := a.Trends(currentUserID(c), days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (a *App) topExpensesHandler(c *gin.Context) {
	limit, err := intQueryParam(c, "limit", 10)
	if err != nil {
		respondError(c, err)
		return
	}
	expenses, err := a.TopExpenses(currentUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"top_expenses": expenses})
}
