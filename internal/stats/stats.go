// Package stats computes the period-scoped figures shown on the dashboard
// and analytics views from raw collections.
package stats

import (
	"sort"
	"time"

	"farmkeep/backend/internal/model"
)

type Period string

const (
	PeriodThisMonth  Period = "this-month"
	PeriodLast30Days Period = "last-30-days"
	PeriodThisYear   Period = "this-year"
	PeriodAllTime    Period = "all-time"
)

// ParsePeriod maps a query value to a Period, defaulting to this-month.
func ParsePeriod(v string) Period {
	switch Period(v) {
	case PeriodLast30Days, PeriodThisYear, PeriodAllTime:
		return Period(v)
	default:
		return PeriodThisMonth
	}
}

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Resolve returns the current window for a period and the immediately
// preceding window of equal semantic length. All-time has no baseline.
func Resolve(p Period, now time.Time) (Window, *Window) {
	switch p {
	case PeriodLast30Days:
		end := now
		start := end.AddDate(0, 0, -30)
		baseline := Window{Start: start.AddDate(0, 0, -30), End: start}
		return Window{Start: start, End: end}, &baseline
	case PeriodThisYear:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		baseline := Window{
			Start: time.Date(now.Year()-1, 1, 1, 0, 0, 0, 0, now.Location()),
			End:   start,
		}
		return Window{Start: start, End: start.AddDate(1, 0, 0)}, &baseline
	case PeriodAllTime:
		return Window{Start: time.Time{}, End: now.AddDate(100, 0, 0)}, nil
	default: // this calendar month
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		baseline := Window{Start: start.AddDate(0, -1, 0), End: start}
		return Window{Start: start, End: start.AddDate(0, 1, 0)}, &baseline
	}
}

// PercentChange compares a current figure against its baseline. A zero
// baseline maps to +100% when something appeared, -100% when something
// disappeared, and 0% when both periods are empty.
func PercentChange(current, baseline float64) float64 {
	if baseline == 0 {
		switch {
		case current > 0:
			return 100
		case current < 0:
			return -100
		default:
			return 0
		}
	}
	return (current - baseline) / baseline * 100
}

// FinanceSummary holds the period totals and, when a baseline exists, the
// percent change against the immediately preceding period.
type FinanceSummary struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`

	IncomeChange  *float64 `json:"incomeChange,omitempty"`
	ExpenseChange *float64 `json:"expenseChange,omitempty"`
	NetChange     *float64 `json:"netChange,omitempty"`
}

// Summarize totals income and expense for the period and compares against
// the baseline window. All-time carries no comparison.
func Summarize(records []model.FinancialRecord, p Period, now time.Time) FinanceSummary {
	current, baseline := Resolve(p, now)

	income, expense := totals(records, current)
	out := FinanceSummary{Income: income, Expense: expense, Net: income - expense}
	if baseline == nil {
		return out
	}

	prevIncome, prevExpense := totals(records, *baseline)
	incomeChange := PercentChange(income, prevIncome)
	expenseChange := PercentChange(expense, prevExpense)
	netChange := PercentChange(income-expense, prevIncome-prevExpense)
	out.IncomeChange = &incomeChange
	out.ExpenseChange = &expenseChange
	out.NetChange = &netChange
	return out
}

func totals(records []model.FinancialRecord, w Window) (income, expense float64) {
	for _, r := range records {
		t, ok := model.ParseDate(r.Date)
		if !ok || !w.Contains(t) {
			continue
		}
		switch r.Type {
		case model.FinanceIncome:
			income += r.Amount
		case model.FinanceExpense:
			expense += r.Amount
		}
	}
	return income, expense
}

// MonthBucket is one calendar month of summed income and expense.
type MonthBucket struct {
	Label   string  `json:"label"`
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// MonthlyBuckets groups records by calendar month, chronologically ascending.
// Ordering is deterministic for identical input. Records with unparseable
// dates are skipped.
func MonthlyBuckets(records []model.FinancialRecord) []MonthBucket {
	type ym struct {
		year  int
		month time.Month
	}
	byMonth := make(map[ym]*MonthBucket)
	for _, r := range records {
		t, ok := model.ParseDate(r.Date)
		if !ok {
			continue
		}
		k := ym{year: t.Year(), month: t.Month()}
		b, exists := byMonth[k]
		if !exists {
			b = &MonthBucket{
				Label: t.Format("Jan"),
				Year:  t.Year(),
				Month: int(t.Month()),
			}
			byMonth[k] = b
		}
		switch r.Type {
		case model.FinanceIncome:
			b.Income += r.Amount
		case model.FinanceExpense:
			b.Expense += r.Amount
		}
	}

	out := make([]MonthBucket, 0, len(byMonth))
	for _, b := range byMonth {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// TodaysTasks returns incomplete tasks due on the current calendar day.
// Time of day on the due date is ignored.
func TodaysTasks(tasks []model.Task, now time.Time) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		due, ok := model.ParseDate(t.DueDate)
		if !ok {
			continue
		}
		if model.SameDay(due, now) {
			out = append(out, t)
		}
	}
	return out
}

// Overview carries the headline dashboard counts.
type Overview struct {
	TotalAnimals  int `json:"totalAnimals"`
	ActivityCount int `json:"activityCount"`
	PendingTasks  int `json:"pendingTasks"`
	TodaysTasks   int `json:"todaysTasks"`
}

func BuildOverview(animals []model.Animal, activities []model.Activity, tasks []model.Task, now time.Time) Overview {
	o := Overview{ActivityCount: len(activities)}
	for _, a := range animals {
		o.TotalAnimals += a.HeadCount()
	}
	for _, t := range tasks {
		if !t.Completed {
			o.PendingTasks++
		}
	}
	o.TodaysTasks = len(TodaysTasks(tasks, now))
	return o
}

// CategoryReport is the summary block rendered on page one of the PDF report.
type CategoryReport struct {
	HealthEvents30      int `json:"healthEvents30"`
	ProductionMetrics30 int `json:"productionMetrics30"`

	TotalAnimals         int `json:"totalAnimals"`
	AnimalsAddedLastYear int `json:"animalsAddedLastYear"`
	HealthEvents365      int `json:"healthEvents365"`
	ProductionMetrics365 int `json:"productionMetrics365"`
}

// BuildCategoryReport counts a category's health and production records over
// the trailing 30 and 365 day windows. "Added in the last year" is judged by
// birth date, the only lifecycle date the record model carries.
func BuildCategoryReport(animals []model.Animal, category string, now time.Time) CategoryReport {
	last30 := Window{Start: now.AddDate(0, 0, -30), End: now.AddDate(0, 0, 1)}
	last365 := Window{Start: now.AddDate(0, 0, -365), End: now.AddDate(0, 0, 1)}

	var out CategoryReport
	for _, a := range model.AnimalsInCategory(animals, category) {
		out.TotalAnimals += a.HeadCount()
		if born, ok := model.ParseDate(a.BirthDate); ok && last365.Contains(born) {
			out.AnimalsAddedLastYear += a.HeadCount()
		}
		for _, h := range a.HealthRecords {
			t, ok := model.ParseDate(h.Date)
			if !ok {
				continue
			}
			if last30.Contains(t) {
				out.HealthEvents30++
			}
			if last365.Contains(t) {
				out.HealthEvents365++
			}
		}
		for _, p := range a.ProductionMetrics {
			t, ok := model.ParseDate(p.Date)
			if !ok {
				continue
			}
			if last30.Contains(t) {
				out.ProductionMetrics30++
			}
			if last365.Contains(t) {
				out.ProductionMetrics365++
			}
		}
	}
	return out
}
