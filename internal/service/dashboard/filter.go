package dashboard

import (
	"cmp"
	"slices"
	"strings"

	"github.com/nareshdhoriwin/attendance-latestay-copilot/internal/domain/attendance"
)

// FilterAttendance returns the records matching q, sorted by q.SortBy.
// The input slice is never modified.
func FilterAttendance(records []attendance.Record, q attendance.AttendanceQuery) []attendance.Record {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	status, filterStatus := attendance.ParseStatus(q.Status)

	out := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if search != "" && !containsFold(search, r.EmployeeID, r.Name) {
			continue
		}
		if filterStatus && r.Status() != status {
			continue
		}
		out = append(out, r)
	}

	if compare := attendanceComparator(q.SortBy); compare != nil {
		sortStable(out, compare, q.Order)
	}
	return out
}

// FilterLateStay returns the late-stay employees matching q, sorted by q.SortBy.
func FilterLateStay(employees []attendance.LateStayEmployee, q attendance.LateStayQuery) []attendance.LateStayEmployee {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]attendance.LateStayEmployee, 0, len(employees))
	for _, e := range employees {
		if search != "" && !containsFold(search, e.EmployeeID, e.Name) {
			continue
		}
		if !matchKey(q.Gender, e.Gender) || !matchKey(q.ProjectID, e.ProjectID) || !matchKey(q.Office, e.Office) {
			continue
		}
		out = append(out, e)
	}

	if compare := lateStayComparator(q.SortBy); compare != nil {
		sortStable(out, compare, q.Order)
	}
	return out
}

// sortStable keeps equal elements in input order in both directions, so
// sorting an already sorted slice again is a no-op.
func sortStable[T any](items []T, compare func(a, b T) int, order attendance.SortOrder) {
	if order == attendance.SortDesc {
		slices.SortStableFunc(items, func(a, b T) int { return compare(b, a) })
		return
	}
	slices.SortStableFunc(items, compare)
}

func attendanceComparator(sortBy string) func(a, b attendance.Record) int {
	switch sortBy {
	case attendance.SortByEmployeeID:
		return func(a, b attendance.Record) int { return compareFold(a.EmployeeID, b.EmployeeID) }
	case attendance.SortByName:
		return func(a, b attendance.Record) int { return compareFold(a.Name, b.Name) }
	case attendance.SortByCheckinTime:
		return func(a, b attendance.Record) int { return cmp.Compare(a.CheckinTime, b.CheckinTime) }
	case attendance.SortByCheckoutTime:
		return func(a, b attendance.Record) int { return cmp.Compare(a.CheckoutTime, b.CheckoutTime) }
	case attendance.SortByTotalHours:
		return func(a, b attendance.Record) int { return cmp.Compare(totalHours(a), totalHours(b)) }
	case attendance.SortByStatus:
		return func(a, b attendance.Record) int { return cmp.Compare(statusRank(a.Status()), statusRank(b.Status())) }
	}
	return nil
}

func lateStayComparator(sortBy string) func(a, b attendance.LateStayEmployee) int {
	switch sortBy {
	case attendance.SortByEmployeeID:
		return func(a, b attendance.LateStayEmployee) int { return compareFold(a.EmployeeID, b.EmployeeID) }
	case attendance.SortByName:
		return func(a, b attendance.LateStayEmployee) int { return compareFold(a.Name, b.Name) }
	case attendance.SortByGender:
		return func(a, b attendance.LateStayEmployee) int { return compareFold(a.Gender, b.Gender) }
	case attendance.SortByCheckoutTime:
		return func(a, b attendance.LateStayEmployee) int { return cmp.Compare(a.CheckoutTime, b.CheckoutTime) }
	case attendance.SortByProjectID:
		return func(a, b attendance.LateStayEmployee) int { return compareFold(a.ProjectID, b.ProjectID) }
	case attendance.SortByOffice:
		return func(a, b attendance.LateStayEmployee) int { return compareFold(a.Office, b.Office) }
	}
	return nil
}

// totalHours prefers the upstream "Xh Ym" value and falls back to the clock times
func totalHours(r attendance.Record) int64 {
	if d, ok := attendance.ParseHours(r.TotalHours); ok {
		return int64(d)
	}
	return int64(r.WorkDuration())
}

func statusRank(s attendance.Status) int {
	return slices.Index(attendance.Statuses, s)
}

func compareFold(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func containsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// matchKey treats an empty filter as match-all and an empty value as UnknownKey
func matchKey(filter, value string) bool {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return true
	}
	value = strings.TrimSpace(value)
	if value == "" {
		value = attendance.UnknownKey
	}
	return strings.EqualFold(filter, value)
}
