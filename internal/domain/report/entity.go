package report

import (
	"time"
)

// Totals é o agregado bruto de vendas em um intervalo
type Totals struct {
	RevenueCents int64
	Count        int64
}

// SalesSummary é o resumo de vendas de um intervalo de datas
type SalesSummary struct {
	FromDate               time.Time `json:"from_date"`
	ToDate                 time.Time `json:"to_date"`
	TotalRevenueCents      int64     `json:"total_revenue_cents"`
	TransactionCount       int64     `json:"transaction_count"`
	AverageOrderValueCents int64     `json:"average_order_value_cents"`
}

// NewSalesSummary monta o resumo a partir dos totais; sem vendas o ticket médio é zero
func NewSalesSummary(from, to time.Time, t Totals) SalesSummary {
	s := SalesSummary{
		FromDate:          from,
		ToDate:            to,
		TotalRevenueCents: t.RevenueCents,
		TransactionCount:  t.Count,
	}
	if t.Count > 0 {
		s.AverageOrderValueCents = t.RevenueCents / t.Count
	}
	return s
}
