package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// OrderNumberPrefix is the fixed prefix of generated order numbers
const OrderNumberPrefix = "ORD"

// NextOrderNumber derives the next order number from the most recent one.
// An empty last number starts the sequence at ORD-001. The numeric suffix is
// zero-padded to at least three digits.
func NextOrderNumber(last string) (string, error) {
	next := 1
	if last != "" {
		parts := strings.SplitN(last, "-", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("malformed order number %q", last)
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			return "", fmt.Errorf("malformed order number %q: %w", last, err)
		}
		// Atoi accepts signs; the suffix must be plain digits
		if n < 0 || strings.ContainsAny(parts[1][:1], "+-") {
			return "", fmt.Errorf("malformed order number %q", last)
		}
		next = n + 1
	}
	return fmt.Sprintf("%s-%03d", OrderNumberPrefix, next), nil
}

// Round rounds v to the given number of decimal places
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// SummarizeTracking computes the tracking page KPIs from the order list
func SummarizeTracking(orders []Order) TrackingSummary {
	s := TrackingSummary{TotalOrders: len(orders)}
	for _, o := range orders {
		if o.Status == OrderStatusDelivered {
			s.DeliveredCount++
		}
	}
	if s.TotalOrders > 0 {
		s.OnTimeRate = Round(float64(s.DeliveredCount)/float64(s.TotalOrders)*100, 1)
	}
	return s
}
