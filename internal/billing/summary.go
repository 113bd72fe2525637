// Package billing derives the dashboard's financial summaries from the
// domain collections. It is pure computation over snapshots; the realtime
// store owns the data.
package billing

import "github.com/reposelink/reposelink/internal/models"

// DashboardStats are the headline figures shown on the dashboard.
type DashboardStats struct {
	// TotalClients is the size of the client collection.
	TotalClients int `json:"totalClients"`

	// ActiveServices counts clients with a scheduled service.
	ActiveServices int `json:"activeServices"`

	// Revenue is the sum of completed payment amounts.
	Revenue float64 `json:"revenue"`

	// PendingPayments counts clients whose paid amount has not reached
	// their quoted total.
	PendingPayments int `json:"pendingPayments"`

	// Outstanding is the sum of unpaid remainders across all clients.
	Outstanding float64 `json:"outstanding"`
}

// Stats computes the dashboard figures from collection snapshots.
func Stats(clients []models.Client, payments []models.Payment) DashboardStats {
	var stats DashboardStats
	stats.TotalClients = len(clients)

	for _, c := range clients {
		if c.Status == models.StatusScheduled {
			stats.ActiveServices++
		}
		if c.PaidAmount < c.TotalAmount {
			stats.PendingPayments++
			stats.Outstanding += c.Outstanding()
		}
	}
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			stats.Revenue += p.Amount
		}
	}
	return stats
}

// UpcomingServices returns clients with a scheduled service and a service
// date set, up to limit entries (0 means no limit). Collection order is
// preserved.
func UpcomingServices(clients []models.Client, limit int) []models.Client {
	var out []models.Client
	for _, c := range clients {
		if c.Status != models.StatusScheduled || c.ServiceDate == "" {
			continue
		}
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// PlanPrice returns the monthly price in rand for a subscription plan.
func PlanPrice(plan models.Plan) float64 {
	switch plan {
	case models.PlanProfessional:
		return 299
	case models.PlanPremium:
		return 599
	default:
		return 0
	}
}
