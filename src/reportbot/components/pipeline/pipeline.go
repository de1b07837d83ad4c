// Package pipeline carries one inbound command from raw text to a persisted
// report and a reply for the originating session.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"

	"github.com/redcell-sec/reportbot/src/reportbot/components/command"
	"github.com/redcell-sec/reportbot/src/reportbot/components/directory"
	"github.com/redcell-sec/reportbot/src/reportbot/components/taxonomy"
	"github.com/redcell-sec/reportbot/src/shared/data"
	"github.com/redcell-sec/reportbot/src/shared/platform"
	"github.com/redcell-sec/reportbot/src/shared/store"
	"github.com/redcell-sec/reportbot/src/shared/types"
)

const myReportsLimit = 20

// Pipeline is the dependency-injected command handler shared by all session
// workers. It holds no per-session state.
type Pipeline struct {
	store     *store.Store
	rdb       *redis.Client // optional; nil skips event publishing
	sanitizer *bluemonday.Policy
}

func New(st *store.Store, rdb *redis.Client) *Pipeline {
	return &Pipeline{
		store:     st,
		rdb:       rdb,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// HandleMessage processes one inbound message and returns the reply text.
// An empty reply means the message is not a command for this agent.
func (p *Pipeline) HandleMessage(ctx context.Context, sess platform.Session, msg platform.Message) string {
	switch command.Verb(msg.Text) {
	case "start":
		return welcomeText()
	case "categories":
		return categoriesText()
	case "my_reports":
		return p.myReportsText(ctx, sess)
	case "stats":
		return p.statsText(ctx)
	case "report_user", "report_channel", "report_group", "report_bot":
		return p.handleReport(ctx, sess, msg.Text)
	}
	return ""
}

func (p *Pipeline) handleReport(ctx context.Context, sess platform.Session, text string) string {
	intent := command.Parse(text)
	if intent == nil {
		return usageText()
	}

	code, severity := taxonomy.Classify(intent.RawReason)
	cat, _ := taxonomy.Lookup(code)

	info, err := directory.Resolve(ctx, sess, intent.TargetRef)
	if err != nil {
		if errors.Is(err, directory.ErrInvalidTarget) {
			return fmt.Sprintf("Invalid target format: %s. Use @handle or a numeric id.", intent.TargetRef)
		}
		log.Printf("target not found: %s", intent.TargetRef)
		return fmt.Sprintf("Target not found: %s", intent.TargetRef)
	}

	acct := sess.Account()
	reason := cat.DisplayName
	if clean := strings.TrimSpace(p.sanitizer.Sanitize(intent.RawReason)); clean != "" {
		reason = cat.DisplayName + ": " + clean
	}

	report := &types.Report{
		ReporterID:     acct.ID,
		ReporterPhone:  acct.Phone,
		TargetType:     info.Kind,
		TargetID:       info.ID,
		TargetUsername: info.Handle,
		TargetTitle:    info.Title,
		Category:       cat.Code,
		Reason:         reason,
		Severity:       severity,
		Status:         "pending",
	}

	id, err := p.store.Insert(ctx, report)
	if err != nil {
		log.Printf("persist report for %s: %v", intent.TargetRef, err)
		return "Failed to save report. Please try again."
	}

	if p.rdb != nil {
		if err := data.PublishReport(ctx, p.rdb, map[string]interface{}{
			"id":       id,
			"reporter": acct.ID,
			"type":     info.Kind,
			"target":   info.ID,
			"category": cat.Code,
			"severity": severity,
		}); err != nil {
			log.Printf("publish report %d: %v", id, err)
		}
	}

	log.Printf("report #%d: %s %s (%s) by account %d", id, info.Kind, intent.TargetRef, cat.Code, acct.ID)

	return fmt.Sprintf("Report #%d saved (severity %d/5)\nTarget: %s %s\nCategory: %s\nReason: %s",
		id, severity, info.Kind, intent.TargetRef, cat.Code, reason)
}

func (p *Pipeline) myReportsText(ctx context.Context, sess platform.Session) string {
	acct := sess.Account()
	reports, err := p.store.ListByReporter(ctx, acct.ID, myReportsLimit)
	if err != nil {
		log.Printf("list reports for %d: %v", acct.ID, err)
		return "Failed to load your reports. Please try again."
	}

	if len(reports) == 0 {
		return "No reports yet. Try: /report_user @target spam"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your reports (%d shown):\n", len(reports))
	for _, r := range reports {
		fmt.Fprintf(&b, "%s #%d %s @%s | %s (%d) - %s | %s\n",
			severityMarker(r.Severity), r.ID, strings.ToUpper(r.TargetType), r.TargetUsername,
			r.Category, r.Severity, r.Status, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

func (p *Pipeline) statsText(ctx context.Context) string {
	total, err := p.store.Total(ctx)
	if err != nil {
		log.Printf("report stats: %v", err)
		return "Failed to load stats. Please try again."
	}

	stats, err := p.store.AggregateByCategory(ctx)
	if err != nil {
		log.Printf("report stats: %v", err)
		return "Failed to load stats. Please try again."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Report stats | total: %d\n", total)
	for _, s := range stats {
		fmt.Fprintf(&b, "- %s: %d (avg %.1f) last %s\n",
			s.Category, s.Count, s.AvgSeverity, s.LastReportAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

func severityMarker(severity int) string {
	switch {
	case severity >= 4:
		return "[!!]"
	case severity >= 3:
		return "[!]"
	default:
		return "[-]"
	}
}

func welcomeText() string {
	codes := make([]string, 0, len(taxonomy.Categories))
	for _, c := range taxonomy.Categories {
		codes = append(codes, c.Code)
	}

	return "Report agent online.\n\n" +
		"Commands:\n" +
		"/report_user <target> [reason]\n" +
		"/report_channel <target> [reason]\n" +
		"/report_group <target> [reason]\n" +
		"/report_bot <target> [reason]\n\n" +
		"Categories: " + strings.Join(codes, " ") + "\n\n" +
		"Management: /categories /my_reports /stats"
}

func usageText() string {
	return "Usage: /report_user @target spam\nSee /categories for the category list."
}

func categoriesText() string {
	var b strings.Builder
	b.WriteString("Report categories (severity 1-5):\n")
	for _, c := range taxonomy.Categories {
		fmt.Fprintf(&b, "- %s (%d) %s: %s\n", c.Code, c.Severity, c.DisplayName, c.Description)
	}
	b.WriteString("\nExample: /report_user @target spam")
	return b.String()
}
