package reporting

import (
	"context"
	"strings"
	"time"

	"github.com/hugohenrick/rms-api/internal/domain/product"
	"github.com/hugohenrick/rms-api/internal/domain/report"
	"github.com/hugohenrick/rms-api/pkg/apperr"
)

// DateLayout é o formato aceito para datas de relatório
const DateLayout = "2006-01-02"

// Service agrega vendas e estoque para os relatórios
type Service struct {
	repo     report.Repository
	location *time.Location
}

// NewService cria uma nova instância de Service. Datas são interpretadas em loc; nil usa UTC.
func NewService(repo report.Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		location: loc,
	}
}

// ParseDate converte YYYY-MM-DD para a meia-noite do dia no fuso do serviço
func (s *Service) ParseDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, apperr.InvalidRequest("%s is required", field)
	}

	d, err := time.ParseInLocation(DateLayout, value, s.location)
	if err != nil {
		return time.Time{}, apperr.InvalidRequest("%s must be a date in YYYY-MM-DD format", field)
	}
	return d, nil
}

// Summarize soma as vendas de fromDate 00:00 até o último instante de toDate.
// Um intervalo invertido resulta no resumo zerado.
func (s *Service) Summarize(ctx context.Context, fromDate, toDate time.Time) (report.SalesSummary, error) {
	start := startOfDay(fromDate, s.location)
	end := startOfDay(toDate, s.location).AddDate(0, 0, 1)

	if !end.After(start) {
		return report.NewSalesSummary(fromDate, toDate, report.Totals{}), nil
	}

	totals, err := s.repo.SalesTotals(ctx, start, end)
	if err != nil {
		return report.SalesSummary{}, err
	}

	return report.NewSalesSummary(fromDate, toDate, totals), nil
}

// LowStock lista os produtos no limite informado ou, sem limite, no próprio nível de reposição
func (s *Service) LowStock(ctx context.Context, threshold *int64) ([]*product.Product, error) {
	return s.repo.LowStock(ctx, threshold)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
