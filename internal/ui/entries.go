package ui

import (
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/PrintQuote/internal/model"
)

// settingEntry is an Entry bound to one settings field. Its value is
// committed when the entry loses focus or Enter is pressed, never on
// every keystroke.
type settingEntry struct {
	widget.Entry
	key      model.SettingKey
	onCommit func(key model.SettingKey, text string)
}

func newSettingEntry(key model.SettingKey, text string, onCommit func(model.SettingKey, string)) *settingEntry {
	e := &settingEntry{key: key, onCommit: onCommit}
	e.ExtendBaseWidget(e)
	e.SetText(text)
	e.OnSubmitted = func(string) { e.commit() }
	return e
}

// FocusLost commits the current text.
func (e *settingEntry) FocusLost() {
	e.Entry.FocusLost()
	e.commit()
}

func (e *settingEntry) commit() {
	if e.onCommit != nil {
		e.onCommit(e.key, e.Text)
	}
}
