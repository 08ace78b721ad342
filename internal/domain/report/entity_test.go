package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSalesSummary(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	empty := NewSalesSummary(from, to, Totals{})
	assert.Equal(t, int64(0), empty.TotalRevenueCents)
	assert.Equal(t, int64(0), empty.TransactionCount)
	assert.Equal(t, int64(0), empty.AverageOrderValueCents)

	s := NewSalesSummary(from, to, Totals{RevenueCents: 1000, Count: 3})
	assert.Equal(t, int64(333), s.AverageOrderValueCents)
	assert.Equal(t, from, s.FromDate)
	assert.Equal(t, to, s.ToDate)
}
