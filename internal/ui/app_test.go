package ui

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PrintQuote/internal/model"
	"github.com/piwi3910/PrintQuote/internal/project"
	"github.com/piwi3910/PrintQuote/internal/session"
)

func sampleResult(shipping int64) model.QuoteResult {
	return model.QuoteResult{
		Filament:      model.FilamentRecord{ID: "grilon3_pla_0a1b2c3d", Brand: "Grilon3", Type: model.FilamentPLA},
		DurationHours: decimal.RequireFromString("2.5"),
		MaterialCost:  decimal.NewFromInt(925),
		TotalCost:     decimal.RequireFromString("1230.2003352"),
		SalePrice:     decimal.RequireFromString("1845.3005028"),
		ShippingCost:  decimal.NewFromInt(shipping),
		FinalPrice:    decimal.RequireFromString("1845.3005028").Add(decimal.NewFromInt(shipping)),
	}
}

func TestResultRowsWithoutShipping(t *testing.T) {
	rows := resultRows(sampleResult(0))

	require.Len(t, rows, 10)
	assert.Equal(t, "Grilon3 (PLA)", rows[0].value)
	assert.Equal(t, "2.5 h", rows[1].value)
	assert.Equal(t, resultRow{label: "SALE PRICE", value: "$ 1,845.30", bold: true}, rows[9])
	for _, r := range rows {
		assert.NotEqual(t, "Shipping", r.label)
	}
}

func TestResultRowsWithShipping(t *testing.T) {
	rows := resultRows(sampleResult(350))

	require.Len(t, rows, 12)
	assert.Equal(t, resultRow{label: "Shipping", value: "$ 350.00"}, rows[10])
	assert.Equal(t, resultRow{label: model.FinalPriceLabel, value: "$ 2,195.30", bold: true}, rows[11])
}

func TestSettingEntryCommitsOnFocusLost(t *testing.T) {
	test.NewTempApp(t)

	var gotKey model.SettingKey
	var gotText string
	calls := 0
	e := newSettingEntry(model.KeyPowerDraw, "150", func(key model.SettingKey, text string) {
		calls++
		gotKey, gotText = key, text
	})

	e.SetText("200")
	assert.Equal(t, 0, calls, "typing must not commit")

	e.FocusLost()
	assert.Equal(t, 1, calls)
	assert.Equal(t, model.KeyPowerDraw, gotKey)
	assert.Equal(t, "200", gotText)
}

func TestSettingEntryCommitsOnSubmit(t *testing.T) {
	test.NewTempApp(t)

	calls := 0
	e := newSettingEntry(model.KeyShippingCost, "0", func(model.SettingKey, string) { calls++ })
	e.OnSubmitted(e.Text)

	assert.Equal(t, 1, calls)
}

func TestShutdownCommitsFocusedSetting(t *testing.T) {
	fyneApp := test.NewTempApp(t)
	path := filepath.Join(t.TempDir(), project.ConfigFileName)

	sess := session.New(project.NewConfigStore(path, nil), nil)
	a := NewApp(fyneApp.NewWindow("test"), sess, nil)
	a.window.SetContent(a.Build())

	// Typed but never blurred or submitted.
	a.settingEntries[model.KeyShippingCost].SetText("350")
	a.settingEntries[model.KeyPowerDraw].SetText("-1")
	a.Shutdown()

	reloaded, _ := project.NewConfigStore(path, nil).Load()
	assert.Equal(t, "350", reloaded.Get(model.KeyShippingCost))
	assert.Equal(t, model.DefaultSettings().Get(model.KeyPowerDraw), reloaded.Get(model.KeyPowerDraw))
}
