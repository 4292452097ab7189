package models

// DashboardStats are the aggregate counters shown on the dashboard.
type DashboardStats struct {
	TotalClients    int     `json:"total_clients"`
	ActiveProjects  int     `json:"active_projects"`
	TotalProjects   int     `json:"total_projects"`
	TotalRevenue    float64 `json:"total_revenue"`
	PendingInvoices int     `json:"pending_invoices"`
}
