// Package view derives the list, calendar, and notice presentations from
// the full item collection. Everything here is a pure function of its
// inputs; nothing is cached between calls.
package view

import (
	"sort"
	"time"

	"github.com/dori/larder/internal/expiry"
	"github.com/dori/larder/internal/model"
)

// SortOrder selects the list's date ordering
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ListQuery holds the list screen's filter and sort state. Empty filter
// values match everything.
type ListQuery struct {
	Genre string
	Area  string
	Sort  SortOrder
}

// Row pairs an item with its expiry status as classified at derivation time.
type Row struct {
	Item   model.Item
	Status expiry.Status
}

// DeriveList filters, sorts, and classifies the collection for the list
// screen. Filters match genre/area exactly; the sort is by expiry date with
// ties keeping the collection's insertion order. Status is computed against
// today on every call, so an item that expired since the last derivation
// reclassifies without any explicit refresh.
func DeriveList(items []model.Item, q ListQuery, today time.Time) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		if q.Genre != "" && it.Genre != q.Genre {
			continue
		}
		if q.Area != "" && it.Area != q.Area {
			continue
		}
		rows = append(rows, Row{Item: it, Status: it.Classify(today)})
	}

	desc := q.Sort == SortDesc
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Item.Date, rows[j].Item.Date
		if desc {
			return a > b
		}
		return a < b
	})

	return rows
}

// Day is one cell of the calendar grid. Day 0 marks a blank padding cell.
type Day struct {
	Day   int
	Items []Row
}

// Week is one 7-wide calendar row, Sunday first.
type Week [7]Day

// Month is the derived calendar grid for one viewed month.
type Month struct {
	Year  int
	Month time.Month
	Weeks []Week
}

// MonthOf resolves the viewed month as an integer offset from now's real
// month. The offset is unbounded in either direction.
func MonthOf(now time.Time, offset int) (int, time.Month) {
	t := time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// DeriveCalendar lays the month out as 7-wide weeks. Leading blanks equal
// the weekday index of day 1 (Sunday = 0). Every item dated on a cell's
// exact calendar day lands in that cell, classified against the real today
// rather than the cell's date, so a future cell still colors by actual
// proximity.
func DeriveCalendar(items []model.Item, year int, month time.Month, today time.Time) Month {
	byDate := make(map[string][]Row)
	for _, it := range items {
		byDate[it.Date] = append(byDate[it.Date], Row{Item: it, Status: it.Classify(today)})
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	startWeekday := int(first.Weekday())
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	m := Month{Year: year, Month: month}
	var week Week
	col := startWeekday
	for d := 1; d <= daysInMonth; d++ {
		date := expiry.FormatDate(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
		week[col] = Day{Day: d, Items: byDate[date]}
		col++
		if col == 7 {
			m.Weeks = append(m.Weeks, week)
			week = Week{}
			col = 0
		}
	}
	if col > 0 {
		m.Weeks = append(m.Weeks, week)
	}

	return m
}

// Notices is the aggregate expiry warning across the whole collection. It
// ignores any list filter in effect; a filtered-out expired item still
// warns.
type Notices struct {
	Expired  []model.Item
	Upcoming []model.Item
}

// DeriveNotices partitions the full collection into expired and upcoming
// items relative to today.
func DeriveNotices(items []model.Item, today time.Time) Notices {
	var n Notices
	for _, it := range items {
		st := it.Classify(today)
		switch {
		case st.IsExpired:
			n.Expired = append(n.Expired, it)
		case st.IsUpcoming:
			n.Upcoming = append(n.Upcoming, it)
		}
	}
	return n
}

// Empty reports whether there is nothing to warn about.
func (n Notices) Empty() bool {
	return len(n.Expired) == 0 && len(n.Upcoming) == 0
}
