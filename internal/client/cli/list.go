package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

func (a *App) table(header string, rows [][]string) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, header)
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	return w.Flush()
}

func deref[T any](p *T) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprint(*p)
}

func (a *App) team(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}
	users, err := a.api.Team(ctx, tok)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{u.Username, u.Email, u.Role, u.ID})
	}
	return a.table("USERNAME\tEMAIL\tROLE\tID", rows)
}

func (a *App) stats(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}
	st, err := a.api.Stats(ctx, tok)
	if err != nil {
		return err
	}
	return a.table("METRIC\tVALUE", [][]string{
		{"total_clients", fmt.Sprint(st.TotalClients)},
		{"active_projects", fmt.Sprint(st.ActiveProjects)},
		{"total_projects", fmt.Sprint(st.TotalProjects)},
		{"total_revenue", fmt.Sprintf("%.2f", st.TotalRevenue)},
		{"pending_invoices", fmt.Sprint(st.PendingInvoices)},
	})
}

func (a *App) clients(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}
	list, err := a.api.Clients(ctx, tok)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{c.Name, c.Email, deref(c.Company), c.Status, c.ID})
	}
	return a.table("NAME\tEMAIL\tCOMPANY\tSTATUS\tID", rows)
}

func (a *App) projects(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}
	list, err := a.api.Projects(ctx, tok)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{p.Name, p.Status, deref(p.Budget), fmt.Sprint(len(p.TeamMembers)), p.ID})
	}
	return a.table("NAME\tSTATUS\tBUDGET\tMEMBERS\tID", rows)
}

func (a *App) invoices(ctx context.Context) error {
	tok, err := a.token()
	if err != nil {
		return err
	}
	list, err := a.api.Invoices(ctx, tok)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(list))
	for _, inv := range list {
		rows = append(rows, []string{inv.InvoiceNumber, fmt.Sprintf("%.2f", inv.Amount), inv.Status, inv.DueDate, inv.ID})
	}
	return a.table("NUMBER\tAMOUNT\tSTATUS\tDUE\tID", rows)
}
