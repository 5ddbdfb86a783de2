package triage

import "github.com/triagehq/mailtriage/pkg/models"

// BuildReport aggregates a batch of resolved tickets into a summary. It is
// computed fresh after all workers join; nothing is accumulated mid-flight.
func BuildReport(tickets []*models.Ticket) models.SummaryReport {
	report := models.SummaryReport{
		ByUrgency:   make(map[models.Urgency]int),
		BySentiment: make(map[models.Sentiment]int),
		ByCategory:  make(map[string]int),
	}

	for _, t := range tickets {
		report.Total++
		if t.Status == models.TicketEscalated {
			report.Escalated++
		} else {
			report.AutoDrafted++
		}
		report.ByUrgency[t.Classification.Urgency]++
		report.BySentiment[t.Classification.Sentiment]++
		report.ByCategory[t.Classification.Category]++
	}

	if report.Total > 0 {
		report.EscalationRate = float64(report.Escalated) / float64(report.Total)
	}

	return report
}
