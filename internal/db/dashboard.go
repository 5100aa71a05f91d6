package db

import (
	"fmt"
	"log/slog"

	"backoffice/internal/model"
	"backoffice/internal/util"
)

const recentOrderLimit = 5

// Stats computes the dashboard summary.
func (s *Store) Stats() (model.DashboardStats, error) {
	var stats model.DashboardStats

	counts := []struct {
		dest  *int
		query string
	}{
		{&stats.TotalOrders, "SELECT COUNT(*) FROM orders"},
		{&stats.Products, "SELECT COUNT(*) FROM products"},
		{&stats.ActiveUsers, "SELECT COUNT(*) FROM users WHERE status = 'active'"},
	}
	for _, c := range counts {
		if err := s.db.QueryRow(c.query).Scan(c.dest); err != nil {
			return model.DashboardStats{}, fmt.Errorf("failed to compute stats: %w", err)
		}
	}

	rows, err := s.db.Query("SELECT amount FROM payments WHERE status = 'completed'")
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("failed to sum revenue: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var amount string
		if err := rows.Scan(&amount); err != nil {
			return model.DashboardStats{}, fmt.Errorf("failed to scan amount: %w", err)
		}
		v, err := util.ParseMoney(amount)
		if err != nil {
			s.logger.Warn("skipping unparsable payment amount", slog.String("amount", amount), slog.Any("error", err))
			continue
		}
		stats.Revenue += v
	}
	if err := rows.Err(); err != nil {
		return model.DashboardStats{}, fmt.Errorf("error iterating payments: %w", err)
	}

	sc, err := schemaFor(model.EntityOrders)
	if err != nil {
		return model.DashboardStats{}, err
	}
	query := fmt.Sprintf("SELECT %s FROM orders ORDER BY date DESC, id DESC LIMIT %d", columnList(sc), recentOrderLimit)
	stats.RecentOrders, err = selectRecords(s.db, sc, query)
	if err != nil {
		return model.DashboardStats{}, fmt.Errorf("failed to load recent orders: %w", err)
	}

	return stats, nil
}

// Related returns the records linked to r for its detail screen.
//
// orders link to their payments, users to orders placed under their name,
// payments to their order.
func (s *Store) Related(e model.Entity, r model.Record) ([]model.RelatedGroup, error) {
	var (
		target model.Entity
		field  string
		value  string
		title  string
	)
	switch e {
	case model.EntityOrders:
		target, field, value, title = model.EntityPayments, "orderId", r.ID(), "Payments"
	case model.EntityUsers:
		target, field, value, title = model.EntityOrders, "customer", r.Value("name").String(), "Orders"
	case model.EntityPayments:
		target, field, value, title = model.EntityOrders, "id", r.Value("orderId").String(), "Order"
	default:
		return nil, nil
	}

	records, err := s.ListWhere(target, field, value)
	if err != nil {
		return nil, err
	}
	return []model.RelatedGroup{{Title: title, Entity: target, Records: records}}, nil
}
