package dto

import (
	"github.com/hugohenrick/rms-api/internal/domain/report"
)

// SalesSummaryResponse representa o resumo de vendas
type SalesSummaryResponse struct {
	FromDate               string `json:"from_date" example:"2024-01-01"`
	ToDate                 string `json:"to_date" example:"2024-01-31"`
	TotalRevenueCents      int64  `json:"total_revenue_cents"`
	TransactionCount       int64  `json:"transaction_count"`
	AverageOrderValueCents int64  `json:"average_order_value_cents"`
}

// ToSalesSummaryResponse converte o resumo em resposta
func ToSalesSummaryResponse(s report.SalesSummary) SalesSummaryResponse {
	return SalesSummaryResponse{
		FromDate:               s.FromDate.Format("2006-01-02"),
		ToDate:                 s.ToDate.Format("2006-01-02"),
		TotalRevenueCents:      s.TotalRevenueCents,
		TransactionCount:       s.TransactionCount,
		AverageOrderValueCents: s.AverageOrderValueCents,
	}
}
