package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/camelcase"

	"github.com/tradecheck/tradecheck/internal/domain"
	"github.com/tradecheck/tradecheck/internal/domain/appraisal"
)

// ── Dealer-lot palette ──
var (
	accent  = lipgloss.Color("#2563EB") // blue
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	lime    = lipgloss.Color("#A3E635")
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	orange  = lipgloss.Color("#FB923C")
	danger  = lipgloss.Color("#EF4444") // red
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	warnTagStyle  = lipgloss.NewStyle().Foreground(warning).Bold(true)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	labelStyle    = lipgloss.NewStyle().Foreground(dim)
	valueStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a full assessment for terminal output.
func RenderReport(r *domain.AssessmentReport) string {
	var b strings.Builder

	// ── Header ──
	grade := appraisal.Grade(r.VisualScore)
	color := scoreColor(r.VisualScore)
	title := headerStyle.Render("tradecheck")
	subtitle := dimStyle.Render("Trade-in Assessment")
	scoreStyled := lipgloss.NewStyle().Bold(true).Foreground(color).
		Render(fmt.Sprintf("%d / %d", r.VisualScore, r.MaxScore))
	gradeStyled := lipgloss.NewStyle().Bold(true).Foreground(color).Render(grade)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + gradeStyled))
	b.WriteString("\n\n")
	b.WriteString("  " + dimStyle.Render(r.ScoreDescription) + "\n\n")

	// ── Vehicle ──
	v := r.VehicleDetails
	b.WriteString("  " + titleStyle.Render("Vehicle") + "\n")
	renderField(&b, "Make", v.Make)
	renderField(&b, "Model", v.Model)
	renderField(&b, "Year", fmt.Sprintf("%d", v.Year))
	renderField(&b, "Mileage", v.Mileage)
	renderField(&b, "VIN", v.VIN)
	b.WriteString("\n  " + separatorLine + "\n\n")

	// ── Condition ──
	renderIssues(&b, r.ConditionIssues)
	b.WriteString("\n  " + separatorLine + "\n\n")

	// ── Value ──
	b.WriteString("  " + titleStyle.Render("Value") + "\n")
	renderField(&b, "Market range", r.MarketValueRange)
	renderField(&b, "Trade-in", r.TradeInValue)
	b.WriteString("    " + faintStyle.Render(r.TradeInDescription) + "\n\n")

	// ── Confidence ──
	fmt.Fprintf(&b, "  %s %s  %s\n",
		titleStyle.Render(padRight("AI confidence", 20)),
		coloredBar(r.AIConfidence, 20),
		lipgloss.NewStyle().Bold(true).Foreground(scoreColor(r.AIConfidence)).Render(fmt.Sprintf("%d", r.AIConfidence)),
	)
	b.WriteString("    " + dimStyle.Render(r.AIConfidenceDescription) + "\n\n")

	return b.String()
}

// RenderScore formats an offline condition and confidence result.
func RenderScore(c appraisal.ConditionScore, conf appraisal.Confidence, issues []domain.ConditionIssue, rejections []domain.Rejection) string {
	var b strings.Builder

	color := scoreColor(c.Score)
	fmt.Fprintf(&b, "\n  %s %s  %s %s\n",
		titleStyle.Render(padRight("Visual condition", 20)),
		coloredBar(c.Score, 20),
		lipgloss.NewStyle().Bold(true).Foreground(color).Render(fmt.Sprintf("%d", c.Score)),
		dimStyle.Render(fmt.Sprintf("-%d", c.TotalDeduction)),
	)
	b.WriteString("    " + dimStyle.Render(c.Description) + "\n")
	fmt.Fprintf(&b, "  %s %s  %s\n",
		titleStyle.Render(padRight("AI confidence", 20)),
		coloredBar(conf.Score, 20),
		lipgloss.NewStyle().Bold(true).Foreground(scoreColor(conf.Score)).Render(fmt.Sprintf("%d", conf.Score)),
	)
	b.WriteString("    " + dimStyle.Render(conf.Description) + "\n\n")

	renderIssues(&b, issues)

	if len(rejections) > 0 {
		b.WriteString("\n  " + warnTagStyle.Render(fmt.Sprintf("%d findings dropped", len(rejections))) + "\n")
		for _, r := range rejections {
			b.WriteString("    " + faintStyle.Render(r.String()) + "\n")
		}
	}
	b.WriteString("\n")
	return b.String()
}

// RenderMarket formats market percentiles.
func RenderMarket(mv domain.MarketValues, rng string, listings int) string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Market value") + "  " +
		dimStyle.Render(fmt.Sprintf("%d listings", listings)) + "\n")
	renderField(&b, "p25", appraisal.FormatUSD(mv.P25))
	renderField(&b, "p50", appraisal.FormatUSD(mv.P50))
	renderField(&b, "p75", appraisal.FormatUSD(mv.P75))
	renderField(&b, "Range", rng)
	b.WriteString("\n")
	return b.String()
}

func renderIssues(b *strings.Builder, issues []domain.ConditionIssue) {
	if len(issues) == 0 {
		b.WriteString("  " + passStyle.Render("No visible condition issues.") + "\n")
		return
	}

	b.WriteString("  " + titleStyle.Render("Condition issues") + "  " +
		warnTagStyle.Render(fmt.Sprintf("%d found", len(issues))) + "\n\n")
	for _, ci := range issues {
		fmt.Fprintf(b, "    %s %s  %s\n",
			warnTagStyle.Render("●"),
			valueStyle.Render(ci.Title),
			faintStyle.Render("["+HumanizeIcon(ci.Icon)+"]"),
		)
		fmt.Fprintf(b, "      %s\n", dimStyle.Render(ci.Description))
	}
}

func renderField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "    %s %s\n", labelStyle.Render(padRight(label, 14)), valueStyle.Render(value))
}

// HumanizeIcon turns an icon name like "AlertTriangle" into "alert triangle".
func HumanizeIcon(icon string) string {
	words := camelcase.Split(strings.TrimSpace(icon))
	kept := words[:0]
	for _, w := range words {
		if w = strings.Trim(w, " -_"); w != "" {
			kept = append(kept, strings.ToLower(w))
		}
	}
	return strings.Join(kept, " ")
}

func coloredBar(score, width int) string {
	filled := max(0, min(score*width/100, width))
	empty := width - filled

	color := scoreColor(score)
	filledStr := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	emptyStr := lipgloss.NewStyle().Foreground(faint).Render(strings.Repeat("░", empty))
	return filledStr + emptyStr
}

// scoreColor follows the condition bands.
func scoreColor(score int) lipgloss.Color {
	switch {
	case score >= 90:
		return success
	case score >= 80:
		return lime
	case score >= 70:
		return warning
	case score >= 60:
		return orange
	default:
		return danger
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// RenderHistory formats assessment history for terminal output.
func RenderHistory(entries []domain.ReportEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No assessment history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Assessment History") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 64)) + "\n\n")

	for _, e := range entries {
		rev := e.ProfileRevision
		if rev == "" {
			rev = "·······"
		}
		date := e.Timestamp
		if len(date) > 10 {
			date = date[:10]
		}

		scoreStyled := lipgloss.NewStyle().
			Foreground(scoreColor(e.VisualScore)).
			Render(fmt.Sprintf("%d/100", e.VisualScore))

		fmt.Fprintf(&b, "  %s  %s  %s  %s  %s  %s\n",
			dimStyle.Render(date),
			faintStyle.Render(rev),
			padRight(e.Vehicle, 24),
			scoreStyled,
			valueStyle.Render(padRight(e.TradeInValue, 9)),
			dimStyle.Render(fmt.Sprintf("conf %d", e.AIConfidence)),
		)
	}

	return b.String()
}
