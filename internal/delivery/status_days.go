package delivery

import (
	"strings"

	"retailorders/internal/domain"
)

// StatusDayTable maps a normalized status to the number of days left until delivery.
type StatusDayTable map[string]int

// DefaultStatusDays returns a fresh copy of the default table.
func DefaultStatusDays() StatusDayTable {
	return StatusDayTable{
		domain.OrderStatusOrdered:          10,
		domain.OrderStatusProcessing:       7,
		domain.OrderStatusTransit:          3,
		domain.OrderStatusReadyForDelivery: 1,
		domain.OrderStatusDelivered:        0,
	}
}

// Normalize upper-cases a status label and joins its words with underscores.
func Normalize(status string) string {
	return strings.ReplaceAll(strings.ToUpper(status), " ", "_")
}

// ingest copies table with upper-cased keys. When two keys collide after
// upper-casing, the one already written in upper case wins.
func ingest(table StatusDayTable) StatusDayTable {
	out := make(StatusDayTable, len(table))
	for k, v := range table {
		if k != strings.ToUpper(k) {
			out[strings.ToUpper(k)] = v
		}
	}
	for k, v := range table {
		if k == strings.ToUpper(k) {
			out[k] = v
		}
	}
	return out
}
