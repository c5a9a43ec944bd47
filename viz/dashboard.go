// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides a styled overview of clients, negotiations, revenue, and upcoming appointments
package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ostwick/crm/crm"
	"github.com/ostwick/crm/models"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	crm.Dashboard

	// Pipeline overview
	PipelineByStatus map[models.NegotiationStatus]PipelineStatusStats
}

type PipelineStatusStats struct {
	Status models.NegotiationStatus
	Count  int
	Amount decimal.Decimal
}

var (
	dashTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	statLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(26)

	statValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// GenerateDashboardStats gathers the overview and per-status pipeline
// figures at now.
func GenerateDashboardStats(s *crm.State, now time.Time) *DashboardStats {
	stats := &DashboardStats{
		Dashboard:        s.Dashboard(now),
		PipelineByStatus: make(map[models.NegotiationStatus]PipelineStatusStats),
	}

	for _, n := range s.Negotiations() {
		pstats := stats.PipelineByStatus[n.Status]
		pstats.Status = n.Status
		pstats.Count++
		pstats.Amount = pstats.Amount.Add(s.NegotiationTotal(n.ID))
		stats.PipelineByStatus[n.Status] = pstats
	}

	return stats
}

// FormatMoney renders an amount with two decimals and a dollar sign.
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

func RenderDashboard(stats *DashboardStats, labels Labels) string {
	var out strings.Builder

	out.WriteString(dashTitleStyle.Render(strings.ToUpper(labels.Title)))
	out.WriteString("\n\n")

	stat := func(label, value string) {
		out.WriteString("  " + statLabelStyle.Render(label) + statValueStyle.Render(value) + "\n")
	}
	stat(labels.TotalClients, fmt.Sprintf("%d", stats.TotalClients))
	stat(labels.OpenNegotiations, fmt.Sprintf("%d", stats.OpenNegotiations))
	stat(labels.WonRevenue, FormatMoney(stats.WonRevenue))
	stat(labels.Upcoming, fmt.Sprintf("%d", len(stats.Upcoming)))
	out.WriteString("\n")

	out.WriteString(sectionStyle.Render(strings.ToUpper(labels.Pipeline)) + "\n")
	renderPipeline(&out, stats.PipelineByStatus, labels)
	out.WriteString("\n")

	out.WriteString(sectionStyle.Render(strings.ToUpper(labels.Upcoming)) + "\n")
	if len(stats.Upcoming) == 0 {
		out.WriteString("  " + dimStyle.Render(labels.NoUpcoming) + "\n")
		return out.String()
	}
	for _, a := range stats.Upcoming {
		client := a.ClientName
		if client == crm.UnknownClient {
			client = labels.UnknownClient
		}
		out.WriteString(fmt.Sprintf("  %s  %-24s %s\n",
			a.When.Local().Format("2006-01-02 15:04"),
			client,
			dimStyle.Render(labels.AppointmentType(a.Type))))
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline map[models.NegotiationStatus]PipelineStatusStats, labels Labels) {
	// Find max count for scaling
	maxCount := 0
	for _, pstats := range pipeline {
		if pstats.Count > maxCount {
			maxCount = pstats.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, status := range models.NegotiationStatuses {
		pstats, exists := pipeline[status]
		if !exists {
			continue
		}

		// Calculate bar length (0-10 blocks)
		barLength := (pstats.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-10s %s  %2d (%s)\n",
			labels.Status(status), bar, pstats.Count, FormatMoney(pstats.Amount)))
	}
}
