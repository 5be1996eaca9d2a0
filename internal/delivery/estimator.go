// Package delivery estimates delivery dates from order status and mints
// order identifiers.
//
// All timestamps are UTC. The service is read-only after construction and
// safe for concurrent use.
package delivery

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"retailorders/internal/domain"
	apperrors "retailorders/internal/errors"
)

const (
	// DefaultOrderIDPrefix is used when no prefix is configured.
	DefaultOrderIDPrefix = "ORD"

	orderIDTimeLayout = "20060102150405"
	orderIDSuffixLen  = 4
)

// OrderEstimate is the identifier, normalized status and delivery estimate
// computed for a new or updated order.
type OrderEstimate struct {
	OrderID           string
	Status            string
	EstimatedDelivery time.Time
}

// Option configures a Service at construction.
type Option func(*Service)

// WithClock replaces the time source. The function must be safe for concurrent use.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithDigitSource replaces the source of identifier suffix digits. The
// function receives 10 and must return a value in [0, 10).
func WithDigitSource(intN func(n int) int) Option {
	return func(s *Service) {
		s.intN = intN
	}
}

// WithOrderIDPrefix sets the prefix used by CreateOrderEstimate and by
// GenerateOrderID when called with an empty prefix.
func WithOrderIDPrefix(prefix string) Option {
	return func(s *Service) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// Service estimates delivery dates and generates order identifiers.
type Service struct {
	statusDays StatusDayTable
	prefix     string
	now        func() time.Time
	intN       func(n int) int
}

// New builds a Service over statusDays, or over DefaultStatusDays when the
// table is empty. Keys are upper-cased; the caller's map is not retained.
// Negative day counts are accepted and yield estimates in the past.
func New(statusDays StatusDayTable, opts ...Option) *Service {
	if len(statusDays) == 0 {
		statusDays = DefaultStatusDays()
	}

	s := &Service{
		statusDays: ingest(statusDays),
		prefix:     DefaultOrderIDPrefix,
		now:        time.Now,
		intN:       rand.Intn,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StatusDays returns a copy of the table the service was built with.
func (s *Service) StatusDays() StatusDayTable {
	out := make(StatusDayTable, len(s.statusDays))
	for k, v := range s.statusDays {
		out[k] = v
	}
	return out
}

// GenerateOrderID returns "{prefix}-{YYYYMMDDHHMMSS}{dddd}". An empty prefix
// means the service prefix, DefaultOrderIDPrefix unless configured.
//
// Identifiers are not checked for collisions: two calls within the same
// second share a 1 in 10,000 chance of matching. Uniqueness must be enforced
// where the identifier is stored.
func (s *Service) GenerateOrderID(prefix string) string {
	if prefix == "" {
		prefix = s.prefix
	}

	var b strings.Builder
	b.Grow(len(prefix) + 1 + len(orderIDTimeLayout) + orderIDSuffixLen)
	b.WriteString(prefix)
	b.WriteByte('-')
	b.WriteString(s.now().UTC().Format(orderIDTimeLayout))
	for i := 0; i < orderIDSuffixLen; i++ {
		b.WriteByte(byte('0' + s.intN(10)))
	}
	return b.String()
}

// EstimateDeliveryByStatus returns now plus the day count of the normalized
// status. Statuses missing from the table use the ORDERED count; if ORDERED
// is missing too, a ConfigurationError is returned.
func (s *Service) EstimateDeliveryByStatus(status string) (time.Time, error) {
	days, err := s.daysFor(Normalize(status))
	if err != nil {
		return time.Time{}, err
	}
	return s.now().UTC().Add(time.Duration(days) * 24 * time.Hour), nil
}

// CreateOrderEstimate mints an identifier with the service prefix and
// estimates delivery for the normalized status.
func (s *Service) CreateOrderEstimate(status string) (OrderEstimate, error) {
	orderID := s.GenerateOrderID(s.prefix)
	normalized := Normalize(status)

	eta, err := s.EstimateDeliveryByStatus(normalized)
	if err != nil {
		return OrderEstimate{}, err
	}

	return OrderEstimate{
		OrderID:           orderID,
		Status:            normalized,
		EstimatedDelivery: eta,
	}, nil
}

func (s *Service) daysFor(key string) (int, error) {
	if days, ok := s.statusDays[key]; ok {
		return days, nil
	}
	if days, ok := s.statusDays[domain.OrderStatusOrdered]; ok {
		return days, nil
	}
	return 0, apperrors.NewConfigurationError(
		fmt.Sprintf("no delivery days for status %s and no fallback", key),
		domain.OrderStatusOrdered,
	)
}
