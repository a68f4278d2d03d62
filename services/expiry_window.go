package services

import (
	"sort"
	"time"

	"monchai-insurance/models"
	"monchai-insurance/utils"
)

const (
	MinWindowDays = 1
	MaxWindowDays = 365
)

// DueItem is one customer of the due list with its expiry distances.
type DueItem struct {
	Customer models.Customer
	Days     ExpiryDays
	MinDays  *int
	Status   models.Status
}

// ClampWindow keeps a requested view window within 1..365 days.
func ClampWindow(days int) int {
	if days < MinWindowDays {
		return MinWindowDays
	}
	if days > MaxWindowDays {
		return MaxWindowDays
	}
	return days
}

// SelectDue keeps customers with at least one expiry strictly inside
// windowDays (no lower bound) and orders them by their nearest expiry, nil
// last, then by the act expiry/timestamp/act issued date.
func SelectDue(customers []models.Customer, windowDays int, now time.Time) []DueItem {
	items := make([]DueItem, 0, len(customers))
	for _, c := range customers {
		days := ExpiryDaysFor(c, now)
		if !days.AnyWithin(windowDays) {
			continue
		}
		items = append(items, DueItem{
			Customer: c,
			Days:     days,
			MinDays:  days.Min(),
			Status:   c.CanonicalStatus(),
		})
	}

	loc := now.Location()
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].MinDays, items[j].MinDays
		switch {
		case a == nil && b != nil:
			return false
		case a != nil && b == nil:
			return true
		case a != nil && b != nil && *a != *b:
			return *a < *b
		}
		return sortTime(items[i].Customer, loc) < sortTime(items[j].Customer, loc)
	})
	return items
}

// sortTime picks the first non-empty of act expiry, timestamp and act issued
// date; an unparsable pick counts as the epoch.
func sortTime(c models.Customer, loc *time.Location) int64 {
	value := c.ActExpiryDate
	if value == "" {
		value = c.Timestamp
	}
	if value == "" {
		value = c.ActIssuedDate
	}
	if value == "" {
		return 0
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UnixMilli()
	}
	if t, ok := utils.ParseDate(value, loc); ok {
		return t.UnixMilli()
	}
	return 0
}
