package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

const dateLayout = "2006-01-02"

var (
	primaryColor   = lipgloss.Color("#7C3AED")
	secondaryColor = lipgloss.Color("#10B981")
	warningColor   = lipgloss.Color("#F59E0B")
	mutedColor     = lipgloss.Color("#6B7280")
	textColor      = lipgloss.Color("#F9FAFB")

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(1, 2)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Width(12)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	badgeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)

	mottoStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(secondaryColor).
			MarginTop(1)

	progressFullStyle  = lipgloss.NewStyle().Foreground(secondaryColor)
	progressEmptyStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// RenderSummary renders the score card for one period.
func RenderSummary(s Summary) string {
	title := cardTitleStyle.Render(fmt.Sprintf("%s summary  %s → %s", titleCase(s.Period), s.From, s.To))

	lines := []string{
		title,
		metric("Score", fmt.Sprintf("%.1f / 100", s.Score)),
		metric("Rank", fmt.Sprintf("Top %d%%", s.Percentile)),
		metric("Workouts", fmt.Sprintf("%s %d/%d", progressBar(s.WorkoutsDone, s.WorkoutsTarget, 20), s.WorkoutsDone, s.WorkoutsTarget)),
		metric("Meals", fmt.Sprintf("%s %d/%d", progressBar(s.MealsDone, s.MealsTarget, 20), s.MealsDone, s.MealsTarget)),
	}
	if s.Body.Weight != "" {
		lines = append(lines, metric("Body", s.Body.Weight+" · "+s.Body.Height))
	}
	lines = append(lines,
		"",
		badgeStyle.Render(s.Badge)+"  "+s.Achievement,
	)
	if s.AthleteLabel != "" {
		lines = append(lines, "Top "+fmt.Sprint(s.Percentile)+"% of "+s.AthleteLabel)
	}
	lines = append(lines, mottoStyle.Render(s.Motivational))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RenderHistory charts workouts and meals per day from the oldest logged day
// through today.
func RenderHistory(points []LogPoint, days int, today time.Time) string {
	title := cardTitleStyle.Render(fmt.Sprintf("Last %d days", days))

	workouts, meals := series(points, days, today)
	if len(workouts) == 0 {
		return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, "No logs yet"))
	}

	graph := asciigraph.PlotMany([][]float64{workouts, meals},
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green),
		asciigraph.Caption("workouts (blue) · meals (green)"),
	)

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, graph))
}

// series lays the points out on a contiguous day axis ending today. Days
// without a log count as zero.
func series(points []LogPoint, days int, today time.Time) ([]float64, []float64) {
	if len(points) == 0 || days <= 0 {
		return nil, nil
	}

	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -days)

	byDate := make(map[string]LogPoint, len(points))
	for _, p := range points {
		byDate[p.Date] = p
	}

	workouts := make([]float64, 0, days+1)
	meals := make([]float64, 0, days+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		p := byDate[d.Format(dateLayout)]
		workouts = append(workouts, float64(p.Workouts))
		meals = append(meals, float64(p.Meals))
	}
	return workouts, meals
}

func metric(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Left, metricLabelStyle.Render(label), metricValueStyle.Render(value))
}

func progressBar(done, target, width int) string {
	ratio := 1.0
	if target > 0 {
		ratio = float64(done) / float64(target)
	}
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return progressFullStyle.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
