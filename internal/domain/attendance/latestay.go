package attendance

import (
	"sort"
	"strings"
)

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// UnknownKey buckets late-stay employees with an empty grouping field.
const UnknownKey = "Unknown"

// LateStayEmployee is an employee who checked out at or after LateStayThreshold.
type LateStayEmployee struct {
	EmployeeID   string `json:"employee_id"`
	Name         string `json:"name"`
	Gender       string `json:"gender"`
	CheckoutTime string `json:"checkout_time"`
	ProjectID    string `json:"project_id"`
	Office       string `json:"office,omitempty"`
}

func (e LateStayEmployee) IsFemale() bool {
	return strings.EqualFold(strings.TrimSpace(e.Gender), GenderFemale)
}

func (e LateStayEmployee) IsMale() bool {
	return strings.EqualFold(strings.TrimSpace(e.Gender), GenderMale)
}

type LateStayList struct {
	Date        string             `json:"date,omitempty"`
	Employees   []LateStayEmployee `json:"late_stay_employees"`
	TotalCount  int                `json:"total_count"`
	FemaleCount int                `json:"female_count"`
}

type WomenLateStayList struct {
	Date      string             `json:"date,omitempty"`
	Employees []LateStayEmployee `json:"women_late_stay_employees"`
	Count     int                `json:"count"`
}

// Bucket is one group of an aggregation.
type Bucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// CountBy groups employees by key. Buckets are ordered by count descending,
// then key ascending.
func CountBy(employees []LateStayEmployee, key func(LateStayEmployee) string) []Bucket {
	counts := make(map[string]int)
	for _, e := range employees {
		k := strings.TrimSpace(key(e))
		if k == "" {
			k = UnknownKey
		}
		counts[k]++
	}

	buckets := make([]Bucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, Bucket{Key: k, Count: c})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

func ByProject(employees []LateStayEmployee) []Bucket {
	return CountBy(employees, func(e LateStayEmployee) string { return e.ProjectID })
}

func ByOffice(employees []LateStayEmployee) []Bucket {
	return CountBy(employees, func(e LateStayEmployee) string { return e.Office })
}

func ByGender(employees []LateStayEmployee) []Bucket {
	return CountBy(employees, func(e LateStayEmployee) string { return e.Gender })
}

// GenderCounts returns the male and female counts used by the gender chart.
func GenderCounts(employees []LateStayEmployee) (male, female int) {
	for _, e := range employees {
		switch {
		case e.IsMale():
			male++
		case e.IsFemale():
			female++
		}
	}
	return male, female
}
