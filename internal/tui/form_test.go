package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bakhva/appraise/internal/dataset"
	"github.com/bakhva/appraise/internal/match"
	"github.com/bakhva/appraise/internal/model"
	"github.com/bakhva/appraise/internal/testutil"
)

func newTestForm(t *testing.T) *Form {
	t.Helper()
	return NewForm(Config{
		Dataset:  testutil.FleetDataset(t),
		Matcher:  match.New(match.DefaultWeights()),
		Currency: "USD",
	})
}

// row finds the form row for a field.
func row(t *testing.T, f *Form, field model.Field) *formField {
	t.Helper()
	for i := range f.fields {
		if f.fields[i].field == field {
			return &f.fields[i]
		}
	}
	t.Fatalf("form has no row for %s", field)
	return nil
}

// moveTo puts the cursor on a field's row.
func moveTo(t *testing.T, f *Form, field model.Field) {
	t.Helper()
	for i := range f.fields {
		if f.fields[i].field == field {
			f.cursor = i
			return
		}
	}
	t.Fatalf("form has no row for %s", field)
}

// setChoice selects a code on a choice row.
func setChoice(t *testing.T, f *Form, field model.Field, code int) {
	t.Helper()
	ff := row(t, f, field)
	for i, c := range ff.codes {
		if c == code {
			ff.choice = i
			return
		}
	}
	t.Fatalf("code %d is not offered for %s", code, field)
}

func press(f *Form, msg tea.KeyMsg) (*Form, tea.Cmd) {
	m, cmd := f.Update(msg)
	return m.(*Form), cmd
}

func TestNewFormBuildsRows(t *testing.T) {
	f := newTestForm(t)

	fields := model.Fields()
	require.Len(t, f.fields, len(fields))
	for i, field := range fields {
		assert.Equal(t, field, f.fields[i].field)
	}

	maker := row(t, f, model.FieldManufacturer)
	assert.Equal(t, kindChoice, maker.kind)
	assert.Equal(t, []int{1, 2, 3}, maker.codes)
	assert.Equal(t, -1, maker.choice)

	leather := row(t, f, model.FieldLeatherInterior)
	assert.Equal(t, kindToggle, leather.kind)
	assert.False(t, leather.toggle)

	year := row(t, f, model.FieldProductionYear)
	assert.Equal(t, kindNumber, year.kind)

	doors := row(t, f, model.FieldDoors)
	assert.Equal(t, []int{1}, doors.codes)
}

func TestCursorNavigationWraps(t *testing.T) {
	f := newTestForm(t)
	require.Equal(t, 0, f.cursor)

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, len(f.fields)-1, f.cursor)

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, f.cursor)

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, f.cursor)
}

func TestChoiceCyclingWraps(t *testing.T) {
	f := newTestForm(t)
	maker := row(t, f, model.FieldManufacturer)

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 0, maker.choice)

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyRight})
	f, _ = press(f, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, maker.choice)

	// Past the last code wraps back to unset.
	f, _ = press(f, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, -1, maker.choice)

	_, _ = press(f, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, maker.choice)
}

func TestToggleFlips(t *testing.T) {
	f := newTestForm(t)
	moveTo(t, f, model.FieldLeatherInterior)
	leather := row(t, f, model.FieldLeatherInterior)

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	assert.True(t, leather.toggle)

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyRight})
	assert.False(t, leather.toggle)

	_, _ = press(f, tea.KeyMsg{Type: tea.KeyLeft})
	assert.True(t, leather.toggle)
}

func TestTypingGoesToFocusedInput(t *testing.T) {
	f := newTestForm(t)

	// Production Year is two rows down from the top.
	f, _ = press(f, tea.KeyMsg{Type: tea.KeyDown})
	f, _ = press(f, tea.KeyMsg{Type: tea.KeyDown})
	year := row(t, f, model.FieldProductionYear)
	require.True(t, year.input.Focused())

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2016")})
	assert.Equal(t, "2016", year.input.Value())

	// Moving away blurs the input.
	_, _ = press(f, tea.KeyMsg{Type: tea.KeyDown})
	assert.False(t, year.input.Focused())
}

func fillExactQuery(t *testing.T, f *Form) {
	t.Helper()
	setChoice(t, f, model.FieldManufacturer, 1)
	setChoice(t, f, model.FieldModel, 10)
	setChoice(t, f, model.FieldCategory, 1)
	setChoice(t, f, model.FieldFuelType, 1)
	setChoice(t, f, model.FieldGearboxType, 1)
	setChoice(t, f, model.FieldDriveWheels, 2)
	setChoice(t, f, model.FieldDoors, 1)
	setChoice(t, f, model.FieldWheel, 1)
	row(t, f, model.FieldLeatherInterior).toggle = true
	row(t, f, model.FieldProductionYear).input.SetValue("2016")
	row(t, f, model.FieldEngineVolume).input.SetValue("2.0")
	row(t, f, model.FieldMileage).input.SetValue("90000")
	row(t, f, model.FieldAirbags).input.SetValue("8")
}

func TestSubmitExactMatch(t *testing.T) {
	f := newTestForm(t)
	fillExactQuery(t, f)

	f, cmd := press(f, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.NotNil(t, f.result)
	assert.True(t, f.result.Exact)
	assert.InDelta(t, 13500.0, f.result.Record.PredictedPrice, 1e-9)
	assert.Equal(t, statusOK, f.status.level)
	assert.Equal(t, "exact match found", f.status.text)

	// The duplicate listing at a different price leads the alternates.
	require.Len(t, f.similar, similarCount)
	assert.InDelta(t, 13900.0, f.similar[0].Record.PredictedPrice, 1e-9)

	view := f.View()
	assert.Contains(t, view, "13500 USD")
	assert.Contains(t, view, "Exact match")
	assert.Contains(t, view, "Similar cars")
}

func TestSubmitClosestMatch(t *testing.T) {
	f := newTestForm(t)
	fillExactQuery(t, f)
	row(t, f, model.FieldProductionYear).input.SetValue("2017")

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, f.result)
	assert.False(t, f.result.Exact)
	assert.InDelta(t, 0.3, f.result.Score, 1e-9)
	assert.InDelta(t, 13500.0, f.result.Record.PredictedPrice, 1e-9)
	assert.Contains(t, f.status.text, "closest match")
}

func TestSubmitRejectsBadNumber(t *testing.T) {
	f := newTestForm(t)
	fillExactQuery(t, f)
	row(t, f, model.FieldProductionYear).input.SetValue("soon")

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, f.result)
	assert.Equal(t, statusError, f.status.level)
	assert.Equal(t, "Production Year must be a whole number", f.status.text)
}

func TestSubmitReportsValidationErrors(t *testing.T) {
	f := newTestForm(t)
	row(t, f, model.FieldProductionYear).input.SetValue("2016")

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, f.result)
	assert.Equal(t, statusError, f.status.level)
	assert.Contains(t, f.status.text, "Manufacturer is required")
	assert.Contains(t, f.status.text, "Model is required")
}

func TestSubmitEmptyDataset(t *testing.T) {
	unique := map[model.Field][]int{
		model.FieldManufacturer: {1},
		model.FieldModel:        {10},
	}
	f := NewForm(Config{
		Dataset: dataset.New(nil, unique, nil),
		Matcher: match.New(match.DefaultWeights()),
	})
	setChoice(t, f, model.FieldManufacturer, 1)
	setChoice(t, f, model.FieldModel, 10)
	row(t, f, model.FieldProductionYear).input.SetValue("2016")

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, f.result)
	assert.Nil(t, f.result.Record)
	assert.Equal(t, statusWarn, f.status.level)
	assert.Contains(t, f.View(), "no records to match against")
}

func TestResetClearsForm(t *testing.T) {
	f := newTestForm(t)
	fillExactQuery(t, f)
	f, _ = press(f, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, f.result)

	f, _ = press(f, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Nil(t, f.result)
	assert.Nil(t, f.similar)
	assert.Equal(t, 0, f.cursor)
	assert.Equal(t, -1, row(t, f, model.FieldManufacturer).choice)
	assert.False(t, row(t, f, model.FieldLeatherInterior).toggle)
	assert.Empty(t, row(t, f, model.FieldProductionYear).input.Value())
	assert.Equal(t, statusInfo, f.status.level)
}

func TestStatusExpiryIgnoresStaleTimer(t *testing.T) {
	f := newTestForm(t)
	f, _ = press(f, tea.KeyMsg{Type: tea.KeyEnter}) // validation error sets a status
	require.Equal(t, statusError, f.status.level)
	seq := f.statusSeq

	m, _ := f.Update(clearStatusMsg{seq: seq - 1})
	f = m.(*Form)
	assert.Equal(t, statusError, f.status.level)

	m, _ = f.Update(clearStatusMsg{seq: seq})
	f = m.(*Form)
	assert.Equal(t, statusNone, f.status.level)
}

func TestViewListsEveryField(t *testing.T) {
	f := newTestForm(t)
	view := f.View()

	for _, field := range model.Fields() {
		assert.Contains(t, view, string(field))
	}
	assert.Contains(t, view, "6 records loaded")
	assert.NotContains(t, view, "Exact match")
}

func TestViewDecodesSelectedChoice(t *testing.T) {
	f := newTestForm(t)
	setChoice(t, f, model.FieldManufacturer, 2)

	assert.Contains(t, f.View(), "Toyota")
}

func TestPriceGaugeClampsRatio(t *testing.T) {
	f := newTestForm(t)

	low := f.priceGauge(7500)
	high := f.priceGauge(28000)
	assert.NotEmpty(t, low)
	assert.NotEmpty(t, high)
	assert.Equal(t, high, f.priceGauge(1e6))
	assert.Equal(t, low, f.priceGauge(0))

	empty := NewForm(Config{
		Dataset: dataset.New(nil, nil, nil),
		Matcher: match.New(match.DefaultWeights()),
	})
	assert.Empty(t, empty.priceGauge(1000))
}

func TestRunValidatesConfig(t *testing.T) {
	err := Run(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset is required")

	err = Run(context.Background(), Config{Dataset: dataset.New(nil, nil, nil)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matcher is required")
}
