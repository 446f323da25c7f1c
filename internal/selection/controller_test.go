package selection

import (
	"testing"

	"github.com/hightemp/countrypicker/internal/countries"
	"github.com/hightemp/countrypicker/internal/projection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioDirectory(t *testing.T) *countries.Directory {
	t.Helper()
	d, err := countries.New([]countries.Record{
		{Code: "FR", CommonName: "France", Translations: map[string]string{"fra": "France"}, CallingCodes: []string{"33"}},
		{Code: "DE", CommonName: "Germany", Translations: map[string]string{"fra": "Allemagne"}, CallingCodes: []string{"49"}},
		{Code: "AQ", CommonName: "Antarctica"},
	})
	require.NoError(t, err)
	return d
}

func TestSelectEmitsEvent(t *testing.T) {
	var events []Event
	c := New(scenarioDirectory(t),
		WithLanguage("eng"),
		WithHandler(func(e Event) { events = append(events, e) }),
	)
	c.SetOpen(true)

	c.Select("DE")

	require.Len(t, events, 1)
	assert.Equal(t, Event{PickerID: c.ID(), Code: "DE", CallingCode: "49", Name: "Germany"}, events[0])
	assert.Equal(t, "DE", c.State().SelectedCode)
	assert.False(t, c.State().Open)
}

func TestSelectResolvesConfiguredLanguage(t *testing.T) {
	var got Event
	c := New(scenarioDirectory(t),
		WithLanguage("fra"),
		WithHandler(func(e Event) { got = e }),
	)

	c.Select("DE")
	assert.Equal(t, "Allemagne", got.Name)
}

func TestSelectWithoutCallingCode(t *testing.T) {
	var got Event
	c := New(scenarioDirectory(t), WithHandler(func(e Event) { got = e }))

	c.Select("AQ")
	assert.Equal(t, "AQ", got.Code)
	assert.Empty(t, got.CallingCode)
	assert.Equal(t, "Antarctica", got.Name)
}

func TestSelectUnknownCodeAccepted(t *testing.T) {
	var got Event
	c := New(scenarioDirectory(t), WithHandler(func(e Event) { got = e }))

	c.Select("ZZ")
	assert.Equal(t, "ZZ", c.State().SelectedCode)
	assert.Equal(t, "ZZ", got.Code)
	assert.Empty(t, got.Name)
	assert.Empty(t, got.CallingCode)

	_, ok := c.Selected()
	assert.False(t, ok)
}

func TestSelectWithoutHandler(t *testing.T) {
	c := New(scenarioDirectory(t))
	c.Select("FR")
	assert.Equal(t, "FR", c.State().SelectedCode)
}

func TestInitialState(t *testing.T) {
	c := New(scenarioDirectory(t), WithInitialCode("FR"), WithID("picker-1"))

	assert.Equal(t, State{SelectedCode: "FR"}, c.State())
	assert.Equal(t, "picker-1", c.ID())

	rec, ok := c.Selected()
	require.True(t, ok)
	assert.Equal(t, "France", rec.CommonName)

	empty := New(scenarioDirectory(t))
	_, ok = empty.Selected()
	assert.False(t, ok)
	assert.NotEmpty(t, empty.ID())
	assert.NotEqual(t, empty.ID(), New(scenarioDirectory(t)).ID())
}

func TestSetOpenAndFilter(t *testing.T) {
	c := New(scenarioDirectory(t), WithInitialCode("FR"))

	c.SetOpen(true)
	assert.True(t, c.State().Open)
	c.SetFilter("many")
	assert.Equal(t, "many", c.State().Filter)
	assert.Equal(t, "FR", c.State().SelectedCode, "open and filter leave the selection alone")

	c.SetOpen(false)
	assert.False(t, c.State().Open)
	assert.Equal(t, "many", c.State().Filter)
}

func TestOpenRespectsEnabled(t *testing.T) {
	c := New(scenarioDirectory(t), WithEnabled(false))

	assert.False(t, c.Open())
	assert.False(t, c.State().Open)

	// SetOpen bypasses the enabled flag
	c.SetOpen(true)
	assert.True(t, c.State().Open)

	enabled := New(scenarioDirectory(t))
	assert.True(t, enabled.Enabled())
	assert.True(t, enabled.Open())
}

func TestProjectUsesActiveFilter(t *testing.T) {
	d := scenarioDirectory(t)
	p := projection.NewProjector(d, countries.NewResolver("eng"))
	c := New(d, WithLanguage("eng"))

	assert.Len(t, c.Project(p), 3)

	c.SetFilter("many")
	got := c.Project(p)
	require.Len(t, got, 1)
	assert.Equal(t, "DE", got[0].Code)

	c.Select(got[0].Code)
	assert.Equal(t, "DE", c.State().SelectedCode)
}

func TestLanguageDefaultsToResolver(t *testing.T) {
	c := New(scenarioDirectory(t), WithResolver(countries.NewResolver("fra")))
	assert.Equal(t, "fra", c.Language())

	var got Event
	c = New(scenarioDirectory(t), WithResolver(countries.NewResolver("fra")), WithHandler(func(e Event) { got = e }))
	c.Select("DE")
	assert.Equal(t, "Allemagne", got.Name)
}
