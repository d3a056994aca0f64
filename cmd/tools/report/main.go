// Command report prints the hub's aggregate reports as tables, straight from
// the database. Intended for operators without frontend access.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dcortes/volunteer-hub/internal/config"
	dbpkg "github.com/dcortes/volunteer-hub/internal/db"
)

func main() {
	kind := flag.String("kind", "event-summary", "report to run: volunteer-participation, event-summary, or volunteer-summary")
	from := flag.String("from", "", "optional start date (YYYY-MM-DD)")
	to := flag.String("to", "", "optional end date (YYYY-MM-DD)")
	status := flag.String("status", "", "optional event status filter (event-summary only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := dbpkg.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	store := dbpkg.NewStore(pool)
	params := dbpkg.ReportParams{Status: *status}
	if *from != "" {
		t, err := time.Parse("2006-01-02", *from)
		if err != nil {
			log.Fatalf("Invalid -from date: %v", err)
		}
		params.From = &t
	}
	if *to != "" {
		t, err := time.Parse("2006-01-02", *to)
		if err != nil {
			log.Fatalf("Invalid -to date: %v", err)
		}
		params.To = &t
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	switch *kind {
	case "volunteer-participation":
		rows, err := store.VolunteerParticipationReport(ctx, params)
		if err != nil {
			log.Fatalf("Report failed: %v", err)
		}
		t.AppendHeader(table.Row{"ID", "Volunteer", "Events", "Hours"})
		for _, r := range rows {
			t.AppendRow(table.Row{r.VolunteerID, r.VolunteerName, r.EventsJoined, fmt.Sprintf("%.1f", r.TotalHours)})
		}
	case "event-summary":
		rows, err := store.EventSummaryReport(ctx, params)
		if err != nil {
			log.Fatalf("Report failed: %v", err)
		}
		t.AppendHeader(table.Row{"ID", "Event", "Date", "Status", "Urgency", "Matched", "Confirmed", "Capacity"})
		for _, r := range rows {
			t.AppendRow(table.Row{
				r.EventID, r.EventName, r.EventDate.Format("2006-01-02"),
				r.Status, r.Urgency, r.Matched, r.Confirmed, r.MaxVolunteers,
			})
		}
	case "volunteer-summary":
		rows, err := store.VolunteerSummaryReport(ctx, params)
		if err != nil {
			log.Fatalf("Report failed: %v", err)
		}
		t.AppendHeader(table.Row{"ID", "Volunteer", "Pending", "Confirmed", "Declined", "Avg Score"})
		for _, r := range rows {
			t.AppendRow(table.Row{
				r.VolunteerID, r.VolunteerName, r.PendingMatches,
				r.Confirmed, r.Declined, fmt.Sprintf("%.1f", r.AvgMatchScore),
			})
		}
	default:
		log.Fatalf("Unknown report kind %q", *kind)
	}

	t.Render()
}
