package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"vessel-sim/internal/params"
)

// FieldForm renders parameter fields as an accordion of forms, one
// accordion item per field section. Widgets write to the parameters only
// through Field.Set.
type FieldForm struct {
	fields  []params.Field
	entries map[string]*widget.Entry
	radios  map[string]*widget.RadioGroup
	checks  map[string]*widget.Check

	win    fyne.Window
	logger *slog.Logger
	form   *fyne.Container
}

// NewFieldForm creates a form for fields. win parents the file dialogs.
func NewFieldForm(fields []params.Field, win fyne.Window, logger *slog.Logger) *FieldForm {
	ff := &FieldForm{
		fields:  fields,
		entries: make(map[string]*widget.Entry),
		radios:  make(map[string]*widget.RadioGroup),
		checks:  make(map[string]*widget.Check),
		win:     win,
		logger:  logger,
	}

	var sections []string
	items := make(map[string][]*widget.FormItem)
	for _, f := range fields {
		if _, ok := items[f.Section]; !ok {
			sections = append(sections, f.Section)
		}
		item := widget.NewFormItem(fieldLabel(f), ff.newFieldWidget(f))
		item.HintText = f.Tooltip
		items[f.Section] = append(items[f.Section], item)
	}

	accordion := widget.NewAccordion()
	accordion.MultiOpen = true
	for _, s := range sections {
		accordion.Append(widget.NewAccordionItem(s, widget.NewForm(items[s]...)))
	}
	// The first section holds the vessel model, which every run needs.
	if len(sections) > 0 {
		accordion.Open(0)
	}

	ff.form = container.NewVBox(accordion)
	return ff
}

func fieldLabel(f params.Field) string {
	if f.Unit == "" || f.Unit == "-" {
		return f.Label
	}
	return fmt.Sprintf("%s [%s]", f.Label, f.Unit)
}

func (ff *FieldForm) newFieldWidget(f params.Field) fyne.CanvasObject {
	switch f.Kind {
	case params.KindChoice:
		radio := widget.NewRadioGroup(f.Choices, nil)
		radio.Horizontal = len(f.Choices) <= 3
		radio.Required = true
		radio.SetSelected(f.Value())
		radio.OnChanged = func(s string) { ff.set(f, s) }
		ff.radios[f.Key] = radio
		return radio

	case params.KindBool:
		check := widget.NewCheck("", nil)
		check.SetChecked(f.Value() == "true")
		check.OnChanged = func(b bool) { ff.set(f, strconv.FormatBool(b)) }
		ff.checks[f.Key] = check
		return check
	}

	entry := widget.NewEntry()
	entry.SetText(f.Value())
	if f.Kind == params.KindFloat || f.Kind == params.KindInt {
		entry.Validator = f.Check
	}
	// Invalid text is left in the entry, marked by the validator; the
	// parameter keeps its last valid value.
	entry.OnChanged = func(s string) {
		if f.Check(s) == nil {
			ff.set(f, s)
		}
	}
	ff.entries[f.Key] = entry

	if f.Kind != params.KindFile {
		return entry
	}
	entry.SetPlaceHolder("vessel.yml")
	browse := widget.NewButton("...", func() { ff.chooseFile(entry) })
	return container.NewBorder(nil, nil, nil, browse, entry)
}

func (ff *FieldForm) set(f params.Field, text string) {
	if err := f.Set(text); err != nil && ff.logger != nil {
		ff.logger.Debug("field rejected", "key", f.Key, "error", err)
	}
}

func (ff *FieldForm) chooseFile(entry *widget.Entry) {
	if ff.win == nil {
		return
	}
	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		r.Close()
		entry.SetText(path)
	}, ff.win)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".yml", ".yaml"}))
	if entry.Text != "" {
		dir := storage.NewFileURI(filepath.Dir(entry.Text))
		if l, err := storage.ListerForURI(dir); err == nil {
			d.SetLocation(l)
		}
	}
	d.Show()
}

// Container returns the form's Fyne container.
func (ff *FieldForm) Container() *fyne.Container {
	return ff.form
}

// Validate reports every entry whose text is not accepted.
func (ff *FieldForm) Validate() error {
	var errs []error
	for _, f := range ff.fields {
		entry, ok := ff.entries[f.Key]
		if !ok {
			continue
		}
		if err := f.Check(entry.Text); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Label, err))
		}
	}
	return errors.Join(errs...)
}

// Refresh reloads every widget from the parameters, e.g. after a
// project was opened.
func (ff *FieldForm) Refresh() {
	for _, f := range ff.fields {
		v := f.Value()
		if e, ok := ff.entries[f.Key]; ok && e.Text != v {
			e.SetText(v)
		}
		if r, ok := ff.radios[f.Key]; ok && r.Selected != v {
			r.SetSelected(v)
		}
		if c, ok := ff.checks[f.Key]; ok {
			c.SetChecked(v == "true")
		}
	}
}

// SetText types text into the field's widget, as a user would.
func (ff *FieldForm) SetText(key, text string) {
	if e, ok := ff.entries[key]; ok {
		e.SetText(text)
		return
	}
	if r, ok := ff.radios[key]; ok {
		r.SetSelected(text)
		return
	}
	if c, ok := ff.checks[key]; ok {
		c.SetChecked(text == "true")
	}
}

// LoadPreferences restores field values from persistent preferences.
// Stored values that no longer parse are ignored.
func (ff *FieldForm) LoadPreferences(prefs fyne.Preferences, prefix string) {
	for _, f := range ff.fields {
		if v := prefs.String(prefix + "." + f.Key); v != "" {
			if err := f.Set(v); err != nil && ff.logger != nil {
				ff.logger.Warn("ignoring stored preference", "key", prefix+"."+f.Key, "error", err)
			}
		}
	}
	ff.Refresh()
}

// SavePreferences persists field values to preferences.
func (ff *FieldForm) SavePreferences(prefs fyne.Preferences, prefix string) {
	for _, f := range ff.fields {
		prefs.SetString(prefix+"."+f.Key, f.Value())
	}
}
