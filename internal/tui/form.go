// Package tui implements the interactive estimate form: every car attribute
// on one screen, choice fields cycling through the dataset's known codes,
// and the matched price rendered next to the form on submit.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/match"
	"github.com/bakhva/appraise/internal/model"
)

// Config wires the form to its collaborators.
type Config struct {
	Dataset  *dataset.Dataset
	Matcher  *match.Matcher
	Currency string
}

// similarCount is how many alternates the result panel lists.
const similarCount = 3

type fieldKind int

const (
	kindChoice fieldKind = iota
	kindNumber
	kindToggle
)

// formField is one row of the form.
type formField struct {
	input  textinput.Model
	field  model.Field
	codes  []int
	choice int // index into codes, -1 when unset
	kind   fieldKind
	toggle bool
}

// cycle moves a choice field through unset and every known code, wrapping
// in both directions.
func (ff *formField) cycle(delta int) {
	if len(ff.codes) == 0 {
		return
	}
	n := len(ff.codes) + 1
	pos := (ff.choice + 1 + delta + n) % n
	ff.choice = pos - 1
}

// Form is the bubbletea model for the estimate screen.
type Form struct {
	ds       *dataset.Dataset
	matcher  *match.Matcher
	currency string

	keys  KeyMap
	help  help.Model
	theme Theme
	gauge progress.Model

	fields []formField
	cursor int

	result  *match.Result
	similar []match.Result

	status    status
	statusSeq int

	width    int
	height   int
	quitting bool
}

// NewForm builds the form over a loaded dataset.
func NewForm(cfg Config) *Form {
	f := &Form{
		ds:       cfg.Dataset,
		matcher:  cfg.Matcher,
		currency: cfg.Currency,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		theme:    DefaultTheme(),
		gauge:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	f.gauge.Width = 30

	placeholders := map[model.Field]string{
		model.FieldProductionYear: "2016",
		model.FieldEngineVolume:   "2.0",
		model.FieldMileage:        "120000",
		model.FieldAirbags:        "4",
	}

	for _, field := range model.Fields() {
		switch {
		case field.IsCategorical():
			f.fields = append(f.fields, formField{
				field:  field,
				kind:   kindChoice,
				codes:  cfg.Dataset.UniqueValues(field),
				choice: -1,
			})
		case field == model.FieldLeatherInterior:
			f.fields = append(f.fields, formField{
				field: field,
				kind:  kindToggle,
			})
		default:
			ti := textinput.New()
			ti.Placeholder = placeholders[field]
			ti.CharLimit = 10
			ti.Width = 12
			ti.Prompt = ""
			f.fields = append(f.fields, formField{
				field: field,
				kind:  kindNumber,
				input: ti,
			})
		}
	}

	return f
}

// Init implements tea.Model.
func (f *Form) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
		f.help.Width = msg.Width
		return f, nil

	case clearStatusMsg:
		if msg.seq == f.statusSeq {
			f.status = status{}
		}
		return f, nil

	case tea.KeyMsg:
		return f.updateKey(msg)
	}

	return f, nil
}

func (f *Form) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Quit):
		f.quitting = true
		return f, tea.Quit
	case key.Matches(msg, f.keys.Up):
		f.moveCursor(-1)
		return f, f.focusCurrent()
	case key.Matches(msg, f.keys.Down):
		f.moveCursor(1)
		return f, f.focusCurrent()
	case key.Matches(msg, f.keys.Submit):
		return f, f.submit()
	case key.Matches(msg, f.keys.Reset):
		f.reset()
		return f, tea.Batch(f.focusCurrent(), f.setStatus(statusInfo, "form cleared"))
	}

	cur := &f.fields[f.cursor]
	switch cur.kind {
	case kindChoice:
		switch {
		case key.Matches(msg, f.keys.Left):
			cur.cycle(-1)
		case key.Matches(msg, f.keys.Right):
			cur.cycle(1)
		case key.Matches(msg, f.keys.Help):
			f.help.ShowAll = !f.help.ShowAll
		}
	case kindToggle:
		switch {
		case key.Matches(msg, f.keys.Left), key.Matches(msg, f.keys.Right), key.Matches(msg, f.keys.Toggle):
			cur.toggle = !cur.toggle
		case key.Matches(msg, f.keys.Help):
			f.help.ShowAll = !f.help.ShowAll
		}
	case kindNumber:
		// Everything else belongs to the focused input.
		var cmd tea.Cmd
		cur.input, cmd = cur.input.Update(msg)
		return f, cmd
	}

	return f, nil
}

func (f *Form) moveCursor(delta int) {
	n := len(f.fields)
	f.cursor = (f.cursor + delta + n) % n
}

// focusCurrent keeps exactly the numeric input under the cursor focused.
func (f *Form) focusCurrent() tea.Cmd {
	var cmds []tea.Cmd
	for i := range f.fields {
		ff := &f.fields[i]
		if ff.kind != kindNumber {
			continue
		}
		if i == f.cursor {
			cmds = append(cmds, ff.input.Focus())
		} else {
			ff.input.Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (f *Form) reset() {
	for i := range f.fields {
		ff := &f.fields[i]
		switch ff.kind {
		case kindChoice:
			ff.choice = -1
		case kindToggle:
			ff.toggle = false
		case kindNumber:
			ff.input.SetValue("")
		}
	}
	f.result = nil
	f.similar = nil
	f.cursor = 0
}

// submit builds the query from the form state and runs the lookup.
func (f *Form) submit() tea.Cmd {
	q, err := f.query()
	if err != nil {
		f.result = nil
		f.similar = nil
		return f.setStatus(statusError, err.Error())
	}

	res := f.matcher.Find(q, f.ds)
	f.result = &res
	f.similar = nil

	if res.Record == nil {
		return f.setStatus(statusWarn, "no records to match against")
	}

	if ranked := f.matcher.Rank(q, f.ds, similarCount+1); len(ranked) > 1 {
		f.similar = ranked[1:]
	}

	if res.Exact {
		return f.setStatus(statusOK, "exact match found")
	}
	return f.setStatus(statusOK, fmt.Sprintf("closest match, score %.2f", res.Score))
}

// query collects the form state into a validated query.
func (f *Form) query() (model.Query, error) {
	var q model.Query

	for i := range f.fields {
		ff := &f.fields[i]
		switch ff.kind {
		case kindChoice:
			if ff.choice >= 0 {
				q.SetCode(ff.field, ff.codes[ff.choice])
			}
		case kindToggle:
			q.LeatherInterior = ff.toggle
		case kindNumber:
			raw := strings.TrimSpace(ff.input.Value())
			if raw == "" {
				continue
			}
			switch ff.field {
			case model.FieldProductionYear:
				v, err := strconv.Atoi(raw)
				if err != nil {
					return q, fmt.Errorf("%s must be a whole number", ff.field)
				}
				q.ProductionYear = v
			case model.FieldAirbags:
				v, err := strconv.Atoi(raw)
				if err != nil {
					return q, fmt.Errorf("%s must be a whole number", ff.field)
				}
				q.Airbags = v
			case model.FieldEngineVolume:
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return q, fmt.Errorf("%s must be a number", ff.field)
				}
				q.EngineVolume = v
			case model.FieldMileage:
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return q, fmt.Errorf("%s must be a number", ff.field)
				}
				q.Mileage = v
			}
		}
	}

	if err := q.Validate(); err != nil {
		return q, err
	}
	return q, nil
}

func (f *Form) setStatus(level statusLevel, text string) tea.Cmd {
	f.statusSeq++
	f.status = status{level: level, text: text}
	return expireStatus(f.statusSeq)
}
