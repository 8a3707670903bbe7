// Package model defines the farm record types persisted by the local store.
// Collections are flat JSON arrays keyed by name; cross-collection references
// are plain id strings that may dangle and must be resolved defensively.
package model

import (
	"strings"
	"time"
)

// Collection keys used by the local store.
const (
	KeyLivestock   = "livestockData"
	KeyFinancial   = "financialData"
	KeyActivityLog = "activityLogData"
	KeyTasks       = "tasksData"
	KeyCategories  = "categoriesData"
	KeyCurrency    = "currency"
	KeyCustomIcon  = "customIcon"
)

// Financial record types.
const (
	FinanceIncome  = "Income"
	FinanceExpense = "Expense"
)

// Production metric types.
const (
	MetricMilk     = "Milk"
	MetricWeight   = "Weight"
	MetricBreeding = "Breeding"
	MetricEggs     = "Eggs"
)

// Category management styles.
const (
	StylePerAnimal = "per-animal"
	StyleBatch     = "batch"
)

type HealthRecord struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Event       string `json:"event"`
	Description string `json:"description"`
	Treatment   string `json:"treatment,omitempty"`
}

type ProductionMetric struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Notes string `json:"notes,omitempty"`
}

type Animal struct {
	ID        string `json:"id"`
	TagID     string `json:"tagId"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Breed     string `json:"breed,omitempty"`
	Gender    string `json:"gender,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
	Status    string `json:"status,omitempty"`
	// Count > 1 marks a batch group (e.g. a flock tracked as one record).
	Count  int    `json:"count,omitempty"`
	SireID string `json:"sireId,omitempty"`
	DamID  string `json:"damId,omitempty"`

	HealthRecords     []HealthRecord     `json:"healthRecords"`
	ProductionMetrics []ProductionMetric `json:"productionMetrics"`
}

// HeadCount returns the number of animals this record stands for.
func (a Animal) HeadCount() int {
	if a.Count > 1 {
		return a.Count
	}
	return 1
}

type Activity struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	// Weak reference; name/category are denormalized for display so the
	// activity log renders without a join even if the animal is gone.
	AnimalID       string `json:"animalId,omitempty"`
	AnimalName     string `json:"animalName,omitempty"`
	AnimalCategory string `json:"animalCategory,omitempty"`
}

type Task struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	DueDate    string `json:"dueDate"`
	Completed  bool   `json:"completed"`
	Category   string `json:"category,omitempty"`
	AnimalID   string `json:"animalId,omitempty"`
	AnimalName string `json:"animalName,omitempty"`
}

type FinancialRecord struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Description string  `json:"description,omitempty"`
}

type CategoryDefinition struct {
	Name            string `json:"name"`
	Icon            string `json:"icon,omitempty"`
	ManagementStyle string `json:"managementStyle"`
}

// ParseDate parses an ISO-8601 date or datetime string. Records store dates
// as strings and parse them lazily at aggregation/render time.
func ParseDate(s string) (time.Time, bool) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// FindAnimal resolves a weak animal reference. A missing or empty id yields
// ok=false, never an error: deleting an animal does not touch referrers.
func FindAnimal(animals []Animal, id string) (Animal, bool) {
	if strings.TrimSpace(id) == "" {
		return Animal{}, false
	}
	for _, a := range animals {
		if a.ID == id {
			return a, true
		}
	}
	return Animal{}, false
}

// AnimalsInCategory returns the animals belonging to a category, matched
// case-insensitively, in stored order.
func AnimalsInCategory(animals []Animal, category string) []Animal {
	want := strings.ToLower(strings.TrimSpace(category))
	out := make([]Animal, 0)
	for _, a := range animals {
		if strings.ToLower(strings.TrimSpace(a.Category)) == want {
			out = append(out, a)
		}
	}
	return out
}
