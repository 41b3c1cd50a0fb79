package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrintQuote/internal/model"
)

// ─── Filament Panel ────────────────────────────────────────

func (a *App) buildFilamentPanel() fyne.CanvasObject {
	a.filamentContainer = container.NewVBox()
	a.refreshFilamentList()

	addBtn := widget.NewButtonWithIcon("Add Filament", theme.ContentAddIcon(), func() {
		a.showFilamentDialog(nil)
	})
	importBtn := widget.NewButtonWithIcon("Import...", theme.FolderOpenIcon(), func() {
		a.importCSV()
	})
	exportBtn := widget.NewButtonWithIcon("Export...", theme.DocumentSaveIcon(), func() {
		a.exportCatalog()
	})
	labelsBtn := widget.NewButtonWithIcon("Labels...", theme.DocumentPrintIcon(), func() {
		a.exportLabels()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Filament Catalog", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn, importBtn, exportBtn, labelsBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.filamentContainer),
	)
}

func (a *App) refreshFilamentList() {
	if a.filamentContainer == nil {
		return
	}
	a.filamentContainer.RemoveAll()

	filaments := a.session.Filaments()
	if len(filaments) == 0 {
		a.filamentContainer.Add(widget.NewLabel("No filaments yet. Click 'Add Filament' to begin."))
		return
	}

	header := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Brand", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Price / kg", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.filamentContainer.Add(header)
	a.filamentContainer.Add(widget.NewSeparator())

	for _, f := range filaments {
		f := f
		row := container.NewGridWithColumns(5,
			widget.NewLabel(f.Brand),
			widget.NewLabel(string(f.Type)),
			widget.NewLabelWithStyle(model.FormatMoney(f.PricePerKg), fyne.TextAlignTrailing, fyne.TextStyle{}),
			newIconButtonWithTooltip(theme.DocumentCreateIcon(), "Edit filament", func() {
				a.showFilamentDialog(&f)
			}),
			newIconButtonWithTooltip(theme.DeleteIcon(), "Delete filament", func() {
				a.confirmRemoveFilament(f)
			}),
		)
		a.filamentContainer.Add(row)
	}
	a.filamentContainer.Refresh()
}

// showFilamentDialog opens the add form, or the edit form when existing
// is set.
func (a *App) showFilamentDialog(existing *model.FilamentRecord) {
	brandEntry := widget.NewEntry()
	brandEntry.SetPlaceHolder("e.g. Grilon3")

	typeSelect := widget.NewSelect(model.FilamentTypeOptions(), nil)
	typeSelect.SetSelected(string(model.FilamentPLA))

	priceEntry := widget.NewEntry()
	priceEntry.SetPlaceHolder("price per kg")

	title, confirm := "Add Filament", "Add"
	if existing != nil {
		title, confirm = "Edit Filament", "Save"
		brandEntry.SetText(existing.Brand)
		typeSelect.SetSelected(string(existing.Type))
		priceEntry.SetText(model.FormatPlain(existing.PricePerKg))
	}

	form := dialog.NewForm(title, confirm, "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Brand", brandEntry),
			widget.NewFormItem("Type", typeSelect),
			widget.NewFormItem("Price per kg", priceEntry),
		},
		func(ok bool) {
			if !ok {
				return
			}
			var err error
			if existing == nil {
				_, err = a.session.AddFilament(brandEntry.Text, typeSelect.Selected, priceEntry.Text)
			} else {
				_, err = a.session.UpdateFilament(existing.ID, brandEntry.Text, typeSelect.Selected, priceEntry.Text)
			}
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.afterCatalogChange()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 250))
	form.Show()
}

func (a *App) confirmRemoveFilament(f model.FilamentRecord) {
	dialog.ShowConfirm("Delete Filament",
		fmt.Sprintf("Delete %s at %s per kg?", f.DisplayName(), model.FormatMoney(f.PricePerKg)),
		func(ok bool) {
			if !ok {
				return
			}
			a.session.RemoveFilament(f.ID)
			a.afterCatalogChange()
		},
		a.window,
	)
}
