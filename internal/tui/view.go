package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bakhva/appraise/internal/cli"
)

// labelWidth aligns form values into a column.
const labelWidth = 18

// View implements tea.Model.
func (f *Form) View() string {
	if f.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(f.theme.Title.Render("Vehicle price estimate"))
	b.WriteString("\n")

	panels := []string{f.theme.Panel.Render(f.viewForm())}
	if f.result != nil {
		panels = append(panels, f.theme.Panel.Render(f.viewResult()))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
	b.WriteString("\n")

	if f.status.level != statusNone {
		b.WriteString(f.statusView())
		b.WriteString("\n")
	}

	sum := f.ds.Summary()
	b.WriteString(f.theme.Subtle.Render(fmt.Sprintf("%d records loaded", sum.Count)))
	b.WriteString("\n")
	b.WriteString(f.help.View(f.keys))

	return b.String()
}

func (f *Form) viewForm() string {
	var b strings.Builder
	for i := range f.fields {
		ff := &f.fields[i]
		cursor := "  "
		if i == f.cursor {
			cursor = f.theme.Selected.Render("▸ ")
		}
		label := f.theme.Label.Render(fmt.Sprintf("%-*s", labelWidth, string(ff.field)))
		b.WriteString(cursor + label + f.fieldValue(i))
		if i < len(f.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (f *Form) fieldValue(i int) string {
	ff := &f.fields[i]
	selected := i == f.cursor

	switch ff.kind {
	case kindChoice:
		text := "(any)"
		if ff.choice >= 0 {
			text = f.ds.Decode(ff.field, ff.codes[ff.choice])
		}
		if selected {
			return f.theme.Selected.Render("‹ " + text + " ›")
		}
		if ff.choice < 0 {
			return f.theme.Unset.Render(text)
		}
		return f.theme.Value.Render(text)
	case kindToggle:
		text := "No"
		if ff.toggle {
			text = "Yes"
		}
		if selected {
			return f.theme.Selected.Render("‹ " + text + " ›")
		}
		return f.theme.Value.Render(text)
	default:
		return ff.input.View()
	}
}

func (f *Form) viewResult() string {
	res := f.result
	if res.Record == nil {
		return f.theme.StatusWarn.Render("no records to match against")
	}

	var b strings.Builder
	b.WriteString(f.theme.Price.Render(cli.FormatPrice(res.Record.PredictedPrice, f.currency)))
	b.WriteString("\n")
	if res.Exact {
		b.WriteString(f.theme.StatusOK.Render("✓ Exact match"))
	} else {
		b.WriteString(f.theme.Subtle.Render(fmt.Sprintf("≈ Closest match (score %.2f)", res.Score)))
	}
	b.WriteString("\n")
	if gauge := f.priceGauge(res.Record.PredictedPrice); gauge != "" {
		b.WriteString(gauge)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, line := range cli.RecordLines(f.ds, res.Record) {
		b.WriteString(f.theme.Subtle.Render(line))
		b.WriteString("\n")
	}

	if len(f.similar) > 0 {
		b.WriteString("\n")
		b.WriteString(f.theme.Label.Render("Similar cars"))
		b.WriteString("\n")
		for i, alt := range f.similar {
			b.WriteString(fmt.Sprintf("%d. %s  %s\n",
				i+1,
				cli.RecordSummary(f.ds, alt.Record),
				f.theme.Value.Render(cli.FormatPrice(alt.Record.PredictedPrice, f.currency))))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// priceGauge shows where the estimate sits between the dataset's lowest
// and highest known prices.
func (f *Form) priceGauge(price float64) string {
	sum := f.ds.Summary()
	span := sum.MaxPrice - sum.MinPrice
	if span <= 0 {
		return ""
	}
	ratio := (price - sum.MinPrice) / span
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return f.gauge.ViewAs(ratio)
}

func (f *Form) statusView() string {
	switch f.status.level {
	case statusError:
		return f.theme.StatusError.Render("✗ " + f.status.text)
	case statusWarn:
		return f.theme.StatusWarn.Render("! " + f.status.text)
	case statusOK:
		return f.theme.StatusOK.Render("✓ " + f.status.text)
	default:
		return f.theme.StatusInfo.Render(f.status.text)
	}
}
