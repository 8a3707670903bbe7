package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmkeep/backend/internal/model"
)

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodLast30Days, ParsePeriod("last-30-days"))
	assert.Equal(t, PeriodThisYear, ParsePeriod("this-year"))
	assert.Equal(t, PeriodAllTime, ParsePeriod("all-time"))
	assert.Equal(t, PeriodThisMonth, ParsePeriod("this-month"))
	assert.Equal(t, PeriodThisMonth, ParsePeriod(""))
	assert.Equal(t, PeriodThisMonth, ParsePeriod("bogus"))
}

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name              string
		current, baseline float64
		want              float64
	}{
		{"growth", 150, 100, 50},
		{"decline", 50, 100, -50},
		{"appeared from zero", 100, 0, 100},
		{"both zero", 0, 0, 0},
		{"vanished to zero", 0, 50, -100},
		{"negative from zero", -20, 0, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentChange(tt.current, tt.baseline), 1e-9)
		})
	}
}

func TestResolveThisMonth(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	current, baseline := Resolve(PeriodThisMonth, now)

	assert.Equal(t, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), current.Start)
	assert.Equal(t, time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), current.End)
	require.NotNil(t, baseline)
	assert.Equal(t, time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), baseline.Start)
	assert.Equal(t, current.Start, baseline.End)
}

func TestResolveAllTimeHasNoBaseline(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	current, baseline := Resolve(PeriodAllTime, now)
	assert.Nil(t, baseline)
	assert.True(t, current.Contains(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, current.Contains(now))
}

func TestWindowIsHalfOpen(t *testing.T) {
	w := Window{
		Start: time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	records := []model.FinancialRecord{
		{ID: "f1", Type: model.FinanceIncome, Amount: 500, Date: "2026-08-10"},
		{ID: "f2", Type: model.FinanceIncome, Amount: 250, Date: "2026-08-12"},
		{ID: "f3", Type: model.FinanceExpense, Amount: 300, Date: "2026-08-05"},
		{ID: "f4", Type: model.FinanceIncome, Amount: 500, Date: "2026-07-20"}, // baseline month
		{ID: "f5", Type: model.FinanceExpense, Amount: 100, Date: "not-a-date"},
	}

	got := Summarize(records, PeriodThisMonth, now)
	assert.Equal(t, 750.0, got.Income)
	assert.Equal(t, 300.0, got.Expense)
	assert.Equal(t, 450.0, got.Net)
	require.NotNil(t, got.IncomeChange)
	assert.InDelta(t, 50, *got.IncomeChange, 1e-9)
	require.NotNil(t, got.ExpenseChange)
	assert.InDelta(t, 100, *got.ExpenseChange, 1e-9) // expenses appeared from an empty baseline
}

func TestSummarizeAllTimeOmitsChanges(t *testing.T) {
	now := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	records := []model.FinancialRecord{
		{ID: "f1", Type: model.FinanceIncome, Amount: 100, Date: "2020-01-01"},
	}
	got := Summarize(records, PeriodAllTime, now)
	assert.Equal(t, 100.0, got.Income)
	assert.Nil(t, got.IncomeChange)
	assert.Nil(t, got.ExpenseChange)
	assert.Nil(t, got.NetChange)
}

func TestMonthlyBuckets(t *testing.T) {
	records := []model.FinancialRecord{
		{Type: model.FinanceExpense, Amount: 40, Date: "2026-02-10"},
		{Type: model.FinanceIncome, Amount: 100, Date: "2026-01-05"},
		{Type: model.FinanceIncome, Amount: 60, Date: "2026-01-20"},
		{Type: model.FinanceIncome, Amount: 90, Date: "2025-12-31"},
		{Type: model.FinanceIncome, Amount: 10, Date: "garbage"},
	}

	got := MonthlyBuckets(records)
	require.Len(t, got, 3)
	assert.Equal(t, MonthBucket{Label: "Dec", Year: 2025, Month: 12, Income: 90}, got[0])
	assert.Equal(t, MonthBucket{Label: "Jan", Year: 2026, Month: 1, Income: 160}, got[1])
	assert.Equal(t, MonthBucket{Label: "Feb", Year: 2026, Month: 2, Expense: 40}, got[2])
}

func TestMonthlyBucketsDeterministic(t *testing.T) {
	records := []model.FinancialRecord{
		{Type: model.FinanceIncome, Amount: 1, Date: "2026-03-01"},
		{Type: model.FinanceIncome, Amount: 1, Date: "2026-01-01"},
		{Type: model.FinanceIncome, Amount: 1, Date: "2026-02-01"},
	}
	first := MonthlyBuckets(records)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, MonthlyBuckets(records))
	}
}

func TestTodaysTasksIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "t1", Title: "late tonight", DueDate: "2026-08-31T23:59", Completed: false},
		{ID: "t2", Title: "tomorrow", DueDate: "2026-09-01T00:01", Completed: false},
		{ID: "t3", Title: "done already", DueDate: "2026-08-31", Completed: true},
		{ID: "t4", Title: "plain date", DueDate: "2026-08-31", Completed: false},
		{ID: "t5", Title: "bad date", DueDate: "whenever", Completed: false},
	}

	got := TodaysTasks(tasks, now)
	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].ID)
	assert.Equal(t, "t4", got[1].ID)
}

func TestBuildOverviewCountsBatches(t *testing.T) {
	now := time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)
	animals := []model.Animal{
		{ID: "a1", Name: "Bessie", Category: "Cattle"},
		{ID: "a2", Name: "Layer flock", Category: "Poultry", Count: 25},
	}
	tasks := []model.Task{
		{ID: "t1", DueDate: "2026-08-31", Completed: false},
		{ID: "t2", DueDate: "2026-09-15", Completed: false},
		{ID: "t3", DueDate: "2026-08-31", Completed: true},
	}

	got := BuildOverview(animals, []model.Activity{{ID: "ac1"}}, tasks, now)
	assert.Equal(t, 26, got.TotalAnimals)
	assert.Equal(t, 1, got.ActivityCount)
	assert.Equal(t, 2, got.PendingTasks)
	assert.Equal(t, 1, got.TodaysTasks)
}

func TestBuildCategoryReport(t *testing.T) {
	now := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	animals := []model.Animal{
		{
			ID: "a1", Name: "Bessie", Category: "Cattle", BirthDate: "2026-03-01",
			HealthRecords: []model.HealthRecord{
				{ID: "h1", Date: "2026-08-20", Event: "Vaccination"}, // inside 30d
				{ID: "h2", Date: "2026-01-15", Event: "Checkup"},    // inside 365d only
				{ID: "h3", Date: "2020-01-01", Event: "Ancient"},    // outside both
			},
			ProductionMetrics: []model.ProductionMetric{
				{ID: "p1", Date: "2026-08-25", Type: model.MetricMilk, Value: "18"},
			},
		},
		{ID: "a2", Name: "Old Bull", Category: "cattle", BirthDate: "2019-05-01"},
		{ID: "a3", Name: "Hen house", Category: "Poultry", Count: 30},
	}

	got := BuildCategoryReport(animals, "Cattle", now)
	assert.Equal(t, 2, got.TotalAnimals)
	assert.Equal(t, 1, got.AnimalsAddedLastYear)
	assert.Equal(t, 1, got.HealthEvents30)
	assert.Equal(t, 2, got.HealthEvents365)
	assert.Equal(t, 1, got.ProductionMetrics30)
	assert.Equal(t, 1, got.ProductionMetrics365)
}
