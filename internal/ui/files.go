package ui

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"go.uber.org/zap"

	"github.com/piwi3910/PrintQuote/internal/export"
	"github.com/piwi3910/PrintQuote/internal/importer"
	"github.com/piwi3910/PrintQuote/internal/project"
)

// saveFile asks for a destination and passes its path to write. The
// dialog's writer is closed first so write can replace the file.
func (a *App) saveFile(defaultName string, exts []string, write func(path string) error, done string) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			a.log.Error("export failed", zap.String("path", path), zap.Error(err))
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", fmt.Sprintf("%s saved to %s", done, path), a.window)
	}, a.window)
	d.SetFileName(defaultName)
	if len(exts) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(exts))
	}
	d.Show()
}

// openFile asks for a source file and passes its path to read.
func (a *App) openFile(exts []string, read func(path string)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		read(path)
	}, a.window)
	if len(exts) > 0 {
		d.SetFilter(storage.NewExtensionFileFilter(exts))
	}
	d.Show()
}

// ─── Export Functions ───────────────────────────────────────

func (a *App) exportQuotePDF(withComparison bool) {
	if a.lastResult == nil {
		dialog.ShowInformation("No quote", "Calculate a quote before exporting it.", a.window)
		return
	}
	sheet := export.QuoteSheet{
		Result:    *a.lastResult,
		Settings:  a.session.Settings(),
		CreatedAt: time.Now(),
	}
	if withComparison {
		comparisons, err := a.session.Compare(a.quoteForm())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		sheet.Comparisons = comparisons
	}
	name := fmt.Sprintf("quote_%s.pdf", sheet.CreatedAt.Format("20060102_1504"))
	a.saveFile(name, []string{".pdf"}, func(path string) error {
		return export.ExportQuotePDF(path, sheet)
	}, "Quote")
}

func (a *App) exportLabels() {
	filaments := a.session.Filaments()
	if len(filaments) == 0 {
		dialog.ShowInformation("No filaments", "Add filaments before printing labels.", a.window)
		return
	}
	a.saveFile("spool_labels.pdf", []string{".pdf"}, func(path string) error {
		return export.ExportFilamentLabels(path, filaments)
	}, "Labels")
}

func (a *App) exportCatalog() {
	catalog := a.session.Catalog()
	a.saveFile("filaments.json", []string{".json"}, func(path string) error {
		return project.ExportCatalog(path, catalog)
	}, "Catalog")
}

func (a *App) exportCatalogXLSX() {
	catalog := a.session.Catalog()
	a.saveFile("filaments.xlsx", []string{".xlsx"}, func(path string) error {
		return export.ExportCatalogXLSX(path, catalog)
	}, "Catalog")
}

func (a *App) exportBackup() {
	settings, catalog := a.session.Settings(), a.session.Catalog()
	name := fmt.Sprintf("printquote_backup_%s.json", time.Now().Format("20060102"))
	a.saveFile(name, []string{".json"}, func(path string) error {
		return project.ExportAllData(path, settings, catalog)
	}, "Backup")
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	a.openFile([]string{".csv", ".txt"}, func(path string) {
		a.handleImportResult(importer.ImportCSV(path))
	})
}

func (a *App) importExcel() {
	a.openFile([]string{".xlsx", ".xlsm"}, func(path string) {
		a.handleImportResult(importer.ImportExcel(path))
	})
}

func (a *App) handleImportResult(result importer.ImportResult) {
	if len(result.Warnings) > 0 {
		a.log.Info("import warnings", zap.Strings("warnings", result.Warnings))
	}

	added, rejected := a.session.ImportFilaments(result.Rows)
	if added > 0 {
		a.afterCatalogChange()
	}

	problems := append([]string{}, result.Errors...)
	if len(rejected) > 0 {
		problems = append(problems, joinErrors(rejected))
	}

	switch {
	case added == 0 && len(problems) > 0:
		dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s", strings.Join(problems, "\n")), a.window)
	case added == 0:
		dialog.ShowInformation("Import", "No filaments found in the file.", a.window)
	default:
		msg := fmt.Sprintf("Successfully imported %d filaments.", added)
		if len(problems) > 0 {
			msg += fmt.Sprintf("\n\nThe following rows were skipped:\n%s", strings.Join(problems, "\n"))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}

func (a *App) importCatalog() {
	a.openFile([]string{".json"}, func(path string) {
		added, rejected, err := a.session.ImportCatalog(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if added > 0 {
			a.afterCatalogChange()
		}
		msg := fmt.Sprintf("Imported %d new filaments.", added)
		if len(rejected) > 0 {
			msg += fmt.Sprintf("\n\nThe following filaments were skipped:\n%s", joinErrors(rejected))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	})
}

func (a *App) importBackup() {
	a.openFile([]string{".json"}, func(path string) {
		data, err := project.ImportAllData(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		msg := fmt.Sprintf("Replace all settings and %d filaments with the backup from %s?",
			len(a.session.Filaments()), data.CreatedAt)
		dialog.ShowConfirm("Restore Backup", msg, func(ok bool) {
			if !ok {
				return
			}
			rejected, err := a.session.RestoreBackup(data.Settings, data.Catalog)
			if err != nil {
				dialog.ShowError(err, a.window)
				return
			}
			a.afterSettingsChange()
			a.afterCatalogChange()
			if len(rejected) > 0 {
				dialog.ShowInformation("Restore Complete",
					fmt.Sprintf("The following filaments were skipped:\n%s", joinErrors(rejected)), a.window)
			}
		}, a.window)
	})
}
