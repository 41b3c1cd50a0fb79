// Package ui provides the PrintQuote desktop window: settings, quote form,
// results and the filament manager.
package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/PrintQuote/internal/model"
	"github.com/piwi3910/PrintQuote/internal/session"
)

// Version is shown in the About dialog.
const Version = "1.0.0"

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	session *session.Session
	log     *zap.Logger
	tabs    *container.AppTabs

	settingEntries map[model.SettingKey]*settingEntry

	// Quote form
	filamentSelect *widget.Select
	filamentIDs    []string
	gramsEntry     *widget.Entry
	daysEntry      *widget.Entry
	hoursEntry     *widget.Entry
	minutesEntry   *widget.Entry
	secondsEntry   *widget.Entry
	shippingEntry  *widget.Entry

	resultContainer   *fyne.Container
	filamentContainer *fyne.Container

	lastResult *model.QuoteResult
}

// NewApp creates the UI for sess. Save failures reported by the session
// are shown as error dialogs.
func NewApp(window fyne.Window, sess *session.Session, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		window:         window,
		session:        sess,
		log:            log,
		settingEntries: make(map[model.SettingKey]*settingEntry),
	}
	sess.SetSaveErrorHandler(func(err error) {
		dialog.ShowError(fmt.Errorf("settings could not be saved: %w", err), a.window)
	})
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Export Quote PDF...", func() {
			a.exportQuotePDF(false)
		}),
		fyne.NewMenuItem("Export Spool Labels...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Filaments from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Filaments from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItem("Import Catalog...", func() {
			a.importCatalog()
		}),
		fyne.NewMenuItem("Export Catalog...", func() {
			a.exportCatalog()
		}),
		fyne.NewMenuItem("Export Catalog to Excel...", func() {
			a.exportCatalogXLSX()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Backup All Data...", func() {
			a.exportBackup()
		}),
		fyne.NewMenuItem("Restore Backup...", func() {
			a.importBackup()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", a.Shutdown),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Manage Filaments", func() {
			a.tabs.SelectIndex(2)
		}),
		fyne.NewMenuItem("Clear Quote Form", func() {
			a.clearQuoteForm()
		}),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Calculate", func() {
			a.tabs.SelectIndex(0)
			a.calculate()
		}),
		fyne.NewMenuItem("Compare Filaments", func() {
			a.showCompareDialog()
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
}

// Shutdown commits any settings field still being edited, stores the
// window size, saves the session and closes the window.
func (a *App) Shutdown() {
	a.commitPendingSettings()
	size := a.window.Canvas().Size()
	if err := a.session.SetWindowGeometry(int(size.Width), int(size.Height)); err != nil {
		a.log.Warn("window size not stored", zap.Error(err))
	}
	a.session.SetSaveErrorHandler(nil)
	if err := a.session.Close(); err != nil {
		a.log.Error("final save failed", zap.Error(err))
	}
	a.window.Close()
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PrintQuote",
		"PrintQuote - 3D Print Cost Calculator\n\n"+
			"Estimates the cost and sale price of a 3D print from\n"+
			"filament, electricity, machine wear and shipping.\n\n"+
			"Version "+Version,
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	quoteTab := container.NewTabItemWithIcon("Quote", theme.DocumentIcon(), a.buildQuotePanel())
	settingsTab := container.NewTabItemWithIcon("Settings", theme.SettingsIcon(), a.buildSettingsPanel())
	filamentsTab := container.NewTabItemWithIcon("Filaments", theme.ListIcon(), a.buildFilamentPanel())

	a.tabs = container.NewAppTabs(quoteTab, settingsTab, filamentsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)
	return a.tabs
}

// ─── Settings Panel ────────────────────────────────────────

// settingsSections groups the settings fields into cards.
var settingsSections = []struct {
	title string
	keys  []model.SettingKey
}{
	{"Electricity", []model.SettingKey{model.KeyElectricityPrice, model.KeyPowerDraw, model.KeyElectricityTax}},
	{"Machine", []model.SettingKey{model.KeyMachineLifetime, model.KeySparePartsCost}},
	{"Pricing", []model.SettingKey{model.KeyErrorMargin, model.KeyProfitMultiplier, model.KeyShippingCost}},
}

func (a *App) buildSettingsPanel() fyne.CanvasObject {
	settings := a.session.Settings()

	cards := container.NewVBox()
	for _, section := range settingsSections {
		grid := container.NewGridWithColumns(2)
		for _, key := range section.keys {
			entry := newSettingEntry(key, settings.Get(key), a.commitSetting)
			a.settingEntries[key] = entry
			grid.Add(widget.NewLabel(key.Label()))
			grid.Add(entry)
		}
		cards.Add(widget.NewCard(section.title, "", grid))
	}
	cards.Add(widget.NewLabelWithStyle(
		"Changes are saved when you leave a field.",
		fyne.TextAlignLeading, fyne.TextStyle{Italic: true},
	))
	return container.NewVScroll(cards)
}

// commitSetting stores one settings field. A rejected value is reported
// and the entry reverts to the stored value.
func (a *App) commitSetting(key model.SettingKey, text string) {
	if err := a.session.OnSettingsChanged(key, text); err != nil {
		a.log.Debug("setting rejected", zap.String("key", string(key)), zap.Error(err))
		dialog.ShowError(err, a.window)
	}
	if entry, ok := a.settingEntries[key]; ok {
		if stored := a.session.Settings().Get(key); entry.Text != stored {
			entry.SetText(stored)
		}
	}
}

// commitPendingSettings stores entries whose text differs from the session,
// which happens when a field still has focus. Rejected values are logged
// and dropped.
func (a *App) commitPendingSettings() {
	settings := a.session.Settings()
	for _, key := range model.SettingKeys() {
		entry, ok := a.settingEntries[key]
		if !ok || entry.Text == settings.Get(key) {
			continue
		}
		if err := a.session.OnSettingsChanged(key, entry.Text); err != nil {
			a.log.Warn("unsaved setting dropped", zap.String("key", string(key)), zap.Error(err))
		}
	}
}

// ─── Quote Panel ───────────────────────────────────────────

func (a *App) buildQuotePanel() fyne.CanvasObject {
	a.filamentSelect = widget.NewSelect(nil, nil)
	a.filamentSelect.PlaceHolder = "Select a filament"
	a.refreshFilamentSelect()

	newNumberEntry := func(placeholder string) *widget.Entry {
		e := widget.NewEntry()
		e.SetPlaceHolder(placeholder)
		e.OnSubmitted = func(string) { a.calculate() }
		return e
	}
	a.gramsEntry = newNumberEntry("grams")
	a.daysEntry = newNumberEntry("0")
	a.hoursEntry = newNumberEntry("0")
	a.minutesEntry = newNumberEntry("0")
	a.secondsEntry = newNumberEntry("0")
	a.shippingEntry = newNumberEntry("from settings")

	durationRow := container.NewGridWithColumns(8,
		widget.NewLabel("Days"), a.daysEntry,
		widget.NewLabel("Hours"), a.hoursEntry,
		widget.NewLabel("Min"), a.minutesEntry,
		widget.NewLabel("Sec"), a.secondsEntry,
	)

	form := widget.NewForm(
		widget.NewFormItem("Filament", a.filamentSelect),
		widget.NewFormItem("Weight (g)", a.gramsEntry),
		widget.NewFormItem("Print time", durationRow),
		widget.NewFormItem("Shipping", a.shippingEntry),
	)

	calcBtn := widget.NewButtonWithIcon("Calculate", theme.ConfirmIcon(), a.calculate)
	calcBtn.Importance = widget.HighImportance
	compareBtn := widget.NewButtonWithIcon("Compare Filaments", theme.ViewRefreshIcon(), a.showCompareDialog)
	pdfBtn := widget.NewButtonWithIcon("Export PDF", theme.DocumentSaveIcon(), func() { a.exportQuotePDF(false) })

	a.resultContainer = container.NewVBox(
		widget.NewLabel("No quote yet. Fill in the job and click Calculate."),
	)

	left := widget.NewCard("Print Job", "", container.NewVBox(
		form,
		container.NewHBox(calcBtn, compareBtn, layout.NewSpacer(), pdfBtn),
	))
	right := widget.NewCard("Results", "", container.NewVScroll(a.resultContainer))

	split := container.NewHSplit(left, right)
	split.SetOffset(0.55)
	return split
}

// refreshFilamentSelect reloads the selector options, keeping the current
// selection when that filament still exists.
func (a *App) refreshFilamentSelect() {
	selected := a.selectedFilamentID()
	filaments := a.session.Filaments()

	options := make([]string, len(filaments))
	a.filamentIDs = make([]string, len(filaments))
	keep := -1
	for i, f := range filaments {
		options[i] = f.DisplayName()
		a.filamentIDs[i] = f.ID
		if f.ID == selected {
			keep = i
		}
	}
	a.filamentSelect.SetOptions(options)
	if keep >= 0 {
		a.filamentSelect.SetSelectedIndex(keep)
	} else {
		a.filamentSelect.ClearSelected()
	}
}

// selectedFilamentID maps the selector index to a record id. Display
// names may repeat, so the index is authoritative.
func (a *App) selectedFilamentID() string {
	if a.filamentSelect == nil {
		return ""
	}
	idx := a.filamentSelect.SelectedIndex()
	if idx < 0 || idx >= len(a.filamentIDs) {
		return ""
	}
	return a.filamentIDs[idx]
}

func (a *App) quoteForm() model.QuoteForm {
	return model.QuoteForm{
		FilamentID: a.selectedFilamentID(),
		Grams:      a.gramsEntry.Text,
		Days:       a.daysEntry.Text,
		Hours:      a.hoursEntry.Text,
		Minutes:    a.minutesEntry.Text,
		Seconds:    a.secondsEntry.Text,
		Shipping:   a.shippingEntry.Text,
	}
}

func (a *App) clearQuoteForm() {
	for _, e := range []*widget.Entry{a.gramsEntry, a.daysEntry, a.hoursEntry, a.minutesEntry, a.secondsEntry, a.shippingEntry} {
		e.SetText("")
	}
	a.lastResult = nil
	a.resultContainer.RemoveAll()
	a.resultContainer.Add(widget.NewLabel("No quote yet. Fill in the job and click Calculate."))
}

func (a *App) calculate() {
	result, err := a.session.Quote(a.quoteForm())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.lastResult = &result
	a.renderResult(result)
}

// ─── Results ───────────────────────────────────────────────

// resultRow is one line of the results panel.
type resultRow struct {
	label string
	value string
	bold  bool
}

// resultRows lists what the results panel shows for r.
func resultRows(r model.QuoteResult) []resultRow {
	rows := []resultRow{
		{label: "Filament", value: r.Filament.DisplayName()},
		{label: "Print time", value: r.DurationHours.Round(2).String() + " h"},
	}
	for _, line := range r.Breakdown() {
		rows = append(rows, resultRow{label: line.Label, value: model.FormatMoney(line.Amount), bold: line.Total})
	}
	return rows
}

func (a *App) renderResult(r model.QuoteResult) {
	a.resultContainer.RemoveAll()
	grid := container.NewGridWithColumns(2)
	for _, row := range resultRows(r) {
		style := fyne.TextStyle{Bold: row.bold}
		grid.Add(widget.NewLabelWithStyle(row.label, fyne.TextAlignLeading, style))
		grid.Add(widget.NewLabelWithStyle(row.value, fyne.TextAlignTrailing, style))
	}
	a.resultContainer.Add(grid)
	a.resultContainer.Refresh()
}

// ─── Compare ───────────────────────────────────────────────

func (a *App) showCompareDialog() {
	if len(a.session.Filaments()) == 0 {
		dialog.ShowInformation("No filaments", "Add at least one filament first.", a.window)
		return
	}
	comparisons, err := a.session.Compare(a.quoteForm())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	list := container.NewVBox(container.NewGridWithColumns(4,
		widget.NewLabelWithStyle("#", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Filament", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Total cost", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Final price", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
	), widget.NewSeparator())
	for _, c := range comparisons {
		list.Add(container.NewGridWithColumns(4,
			widget.NewLabel(fmt.Sprintf("%d", c.Rank)),
			widget.NewLabel(c.Filament.DisplayName()),
			widget.NewLabelWithStyle(model.FormatMoney(c.Result.TotalCost), fyne.TextAlignTrailing, fyne.TextStyle{}),
			widget.NewLabelWithStyle(model.FormatMoney(c.Result.FinalPrice), fyne.TextAlignTrailing, fyne.TextStyle{}),
		))
	}

	exportBtn := widget.NewButtonWithIcon("Export PDF with Comparison", theme.DocumentSaveIcon(), func() {
		a.exportQuotePDF(true)
	})
	content := container.NewBorder(nil, container.NewHBox(layout.NewSpacer(), exportBtn), nil, nil, container.NewVScroll(list))

	d := dialog.NewCustom("Compare Filaments", "Close", content, a.window)
	d.Resize(fyne.NewSize(650, 450))
	d.Show()
}

// ─── Import Results ────────────────────────────────────────

// joinErrors renders errors one per line for a dialog.
func joinErrors(errs []error) string {
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = err.Error()
	}
	return strings.Join(lines, "\n")
}

// afterCatalogChange refreshes every view of the catalog.
func (a *App) afterCatalogChange() {
	a.refreshFilamentSelect()
	a.refreshFilamentList()
}

// afterSettingsChange reloads the settings entries from the session.
func (a *App) afterSettingsChange() {
	settings := a.session.Settings()
	for key, entry := range a.settingEntries {
		entry.SetText(settings.Get(key))
	}
}
