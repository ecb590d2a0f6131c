package main

import (
	"sort"
	"time"

	"trackex/models"
)

// The aggregation engine. Every operation is a pure read over the caller's
// filtered slice of the ledger; absence of data is a zero/empty result,
// never an error.

// Summary holds the five summary statistics over a filtered set. All
// fields are 0 for an empty set, including average.
type Summary struct {
	Total   float64 `json:"total"`
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// CategoryBucket is one category's share of the filtered set.
type CategoryBucket struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// MonthBucket aggregates one calendar month of a year.
type MonthBucket struct {
	Month int     `json:"month"`
	Total float64 `json:"total"`
	Count int64   `json:"count"`
}

// MonthlyReport covers one calendar year; only months with at least one
// record appear.
type MonthlyReport struct {
	Year   int           `json:"year"`
	Months []MonthBucket `json:"months"`
}

// TrendPoint is the per-date total within a trend window.
type TrendPoint struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// TrendReport covers the inclusive window [today-days, today]. Dates with
// no expenses produce no point.
type TrendReport struct {
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Trends    []TrendPoint `json:"trends"`
}

// Summarize computes total/count/average/min/max in one aggregate query.
func (a *App) Summarize(userID uint, f expenseFilter) (Summary, error) {
	var s Summary
	err := a.expenseQuery(userID, f).
		Select("COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count, COALESCE(AVG(amount), 0) AS average, COALESCE(MIN(amount), 0) AS min, COALESCE(MAX(amount), 0) AS max").
		Scan(&s).Error
	if err != nil {
		return Summary{}, err
	}
	return s, nil
}

// ByCategory partitions the filtered set by category label. Ordered by
// category name so a fixed dataset always reports the same way.
func (a *App) ByCategory(userID uint, f expenseFilter) ([]CategoryBucket, error) {
	buckets := []CategoryBucket{}
	err := a.expenseQuery(userID, f).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("category").
		Order("category ASC").
		Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	return buckets, nil
}

// ByMonth restricts to the given calendar year and rolls the per-date SQL
// groups into months. Month extraction differs between postgres and
// sqlite, so the final rollup happens here instead of in dialect-specific
// SQL.
func (a *App) ByMonth(userID uint, year int) (MonthlyReport, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	groups, err := a.dateGroups(userID, start, end)
	if err != nil {
		return MonthlyReport{}, err
	}

	byMonth := map[int]*MonthBucket{}
	for _, g := range groups {
		m := int(g.Date.Month())
		b, ok := byMonth[m]
		if !ok {
			b = &MonthBucket{Month: m}
			byMonth[m] = b
		}
		b.Total += g.Total
		b.Count += g.Count
	}

	report := MonthlyReport{Year: year, Months: []MonthBucket{}}
	for _, b := range byMonth {
		report.Months = append(report.Months, *b)
	}
	sort.Slice(report.Months, func(i, j int) bool {
		return report.Months[i].Month < report.Months[j].Month
	})
	return report, nil
}

// Trends reports per-date totals over the inclusive window
// [today-days, today]. The window anchors to the clock, not to ledger
// content.
func (a *App) Trends(userID uint, days int) (TrendReport, error) {
	end := models.NewDate(time.Now()).Time
	start := end.AddDate(0, 0, -days)
	groups, err := a.dateGroups(userID, start, end)
	if err != nil {
		return TrendReport{}, err
	}

	report := TrendReport{
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Trends:    []TrendPoint{},
	}
	for _, g := range groups {
		report.Trends = append(report.Trends, TrendPoint{
			Date:  g.Date.String(),
			Total: g.Total,
		})
	}
	return report, nil
}

// TopExpenses returns the limit largest expenses, amount descending.
// Equal amounts break by id ascending.
func (a *App) TopExpenses(userID uint, limit int) ([]models.Expense, error) {
	expenses := []models.Expense{}
	err := a.db.Where("user_id = ?", userID).
		Order("amount DESC, id ASC").
		Limit(limit).
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

type dateGroup struct {
	Date  models.Date
	Total float64
	Count int64
}

// dateGroups runs the shared GROUP BY date aggregation over an inclusive
// date range, ordered by date ascending.
func (a *App) dateGroups(userID uint, start, end time.Time) ([]dateGroup, error) {
	groups := []dateGroup{}
	err := a.expenseQuery(userID, expenseFilter{StartDate: &start, EndDate: &end}).
		Select("date, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Group("date").
		Order("date ASC").
		Scan(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}
