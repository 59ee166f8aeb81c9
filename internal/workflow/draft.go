package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kalpyotish/kalp-admin/internal/api"
)

// ErrSubmitting is returned by Begin while a submission is in flight.
var ErrSubmitting = errors.New("submission already in progress")

var validate = validator.New()

// Draft is a create form that has not been submitted yet. Files and their
// preview handles always have the same length and order.
type Draft struct {
	spec     api.FormSpec
	registry *Previews

	fields   map[string]string
	lists    map[string][]string
	files    []string
	previews []Preview

	submitting bool
	disposed   bool
	err        error
}

// NewDraft returns an empty draft for spec whose previews live in registry.
func NewDraft(spec api.FormSpec, registry *Previews) *Draft {
	if registry == nil {
		registry = NewPreviews()
	}
	return &Draft{
		spec:     spec,
		registry: registry,
		fields:   make(map[string]string),
		lists:    make(map[string][]string),
	}
}

// UpdateField sets a text field.
func (d *Draft) UpdateField(name, value string) {
	d.fields[name] = value
}

func (d *Draft) Field(name string) string {
	return d.fields[name]
}

// AddListItem appends a trimmed tag to a list field. Blank and duplicate
// items are ignored.
func (d *Draft) AddListItem(name, item string) bool {
	item = strings.TrimSpace(item)
	if item == "" {
		return false
	}
	for _, existing := range d.lists[name] {
		if existing == item {
			return false
		}
	}
	d.lists[name] = append(d.lists[name], item)
	return true
}

// RemoveListItem drops the tag at index.
func (d *Draft) RemoveListItem(name string, index int) bool {
	items := d.lists[name]
	if index < 0 || index >= len(items) {
		return false
	}
	next := make([]string, 0, len(items)-1)
	next = append(next, items[:index]...)
	next = append(next, items[index+1:]...)
	d.lists[name] = next
	return true
}

// PopListItem drops the last tag.
func (d *Draft) PopListItem(name string) (string, bool) {
	items := d.lists[name]
	if len(items) == 0 {
		return "", false
	}
	last := items[len(items)-1]
	d.lists[name] = items[:len(items)-1]
	return last, true
}

// List returns a copy of a list field.
func (d *Draft) List(name string) []string {
	out := make([]string, len(d.lists[name]))
	copy(out, d.lists[name])
	return out
}

// AddFiles selects files, creating one preview per file in order. Either
// every path is accepted or none is. A single-file slot keeps only the first
// path and releases the preview of the file it replaces.
func (d *Draft) AddFiles(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	if d.spec.FileField == "" {
		return api.NewValidationError("This form takes no files.")
	}
	if !d.spec.MultiFile {
		paths = paths[:1]
	}

	created := make([]Preview, 0, len(paths))
	rollback := func() {
		for _, pv := range created {
			d.registry.Release(pv.Handle)
		}
	}
	for _, path := range paths {
		path = strings.TrimSpace(path)
		pv, err := d.registry.Create(path)
		if err != nil {
			rollback()
			return api.NewValidationError(fmt.Sprintf("Cannot read %s.", path))
		}
		created = append(created, pv)
		if !pv.IsImage() {
			rollback()
			return api.NewValidationError(fmt.Sprintf("%s is not an image.", pv.Name))
		}
	}

	if !d.spec.MultiFile {
		for _, old := range d.previews {
			d.registry.Release(old.Handle)
		}
		d.files = nil
		d.previews = nil
	}
	for _, pv := range created {
		d.files = append(d.files, pv.Path)
		d.previews = append(d.previews, pv)
	}
	return nil
}

// RemoveFile drops the file at index and releases exactly its preview.
func (d *Draft) RemoveFile(index int) bool {
	if index < 0 || index >= len(d.files) {
		return false
	}
	d.registry.Release(d.previews[index].Handle)
	files := make([]string, 0, len(d.files)-1)
	files = append(files, d.files[:index]...)
	files = append(files, d.files[index+1:]...)
	previews := make([]Preview, 0, len(d.previews)-1)
	previews = append(previews, d.previews[:index]...)
	previews = append(previews, d.previews[index+1:]...)
	d.files, d.previews = files, previews
	return true
}

// Files returns the selected paths in order.
func (d *Draft) Files() []string {
	out := make([]string, len(d.files))
	copy(out, d.files)
	return out
}

// Previews returns the preview of each selected file in order.
func (d *Draft) Previews() []Preview {
	out := make([]Preview, len(d.previews))
	copy(out, d.previews)
	return out
}

// Validate checks required-field presence and the file requirement.
func (d *Draft) Validate() error {
	for _, f := range d.spec.Fields {
		if !f.Required {
			continue
		}
		if f.List {
			if err := validate.Var(d.lists[f.Name], "required,min=1"); err != nil {
				return api.NewValidationError(fmt.Sprintf("%s is required.", f.Label))
			}
			continue
		}
		if err := validate.Var(strings.TrimSpace(d.fields[f.Name]), "required"); err != nil {
			return api.NewValidationError(fmt.Sprintf("%s is required.", f.Label))
		}
	}
	if d.spec.RequireFile && len(d.files) == 0 {
		msg := d.spec.FileRequiredMessage
		if msg == "" {
			msg = fmt.Sprintf("%s is required.", d.spec.FileLabel)
		}
		return api.NewValidationError(msg)
	}
	return nil
}

// Begin validates the draft, marks it submitting, and builds the multipart
// form. List fields become one JSON string each. A failed check leaves the
// draft editable and records the error.
func (d *Draft) Begin() (*api.Form, error) {
	if d.submitting {
		return nil, ErrSubmitting
	}
	if err := d.Validate(); err != nil {
		d.err = err
		return nil, err
	}
	form := api.NewForm()
	for _, f := range d.spec.Fields {
		if f.List {
			if err := form.AddList(f.Name, d.lists[f.Name]); err != nil {
				d.err = err
				return nil, err
			}
			continue
		}
		form.AddField(f.Name, strings.TrimSpace(d.fields[f.Name]))
	}
	for _, path := range d.files {
		form.AddFile(d.spec.FileField, path)
	}
	d.submitting = true
	d.err = nil
	return form, nil
}

// Finish ends a submission. On failure the entered values are kept so the
// same draft can be resubmitted.
func (d *Draft) Finish(err error) {
	d.submitting = false
	d.err = err
}

// Dispose releases every preview handle. Later calls do nothing.
func (d *Draft) Dispose() {
	if d.disposed {
		return
	}
	d.disposed = true
	for _, pv := range d.previews {
		d.registry.Release(pv.Handle)
	}
	d.files = nil
	d.previews = nil
}

func (d *Draft) Submitting() bool { return d.submitting }

func (d *Draft) Disposed() bool { return d.disposed }

// Err returns the last validation or submission error.
func (d *Draft) Err() error { return d.err }
