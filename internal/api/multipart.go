package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// FormFile is one selected file bound to a multipart field.
type FormFile struct {
	Field string
	Path  string
}

type formField struct {
	name  string
	value string
}

// Form is a multipart submission under construction. Fields keep insertion
// order so the server sees them the way the form listed them.
type Form struct {
	fields []formField
	files  []FormFile
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) {
	f.fields = append(f.fields, formField{name: name, value: value})
}

// AddList appends a list-valued field as one JSON-encoded string part, never
// as repeated parts.
func (f *Form) AddList(name string, items []string) error {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	f.AddField(name, string(data))
	return nil
}

// AddFile appends a file part.
func (f *Form) AddFile(field, path string) {
	f.files = append(f.files, FormFile{Field: field, Path: path})
}

// Value returns the first value of a text field.
func (f *Form) Value(name string) (string, bool) {
	for _, fld := range f.fields {
		if fld.name == name {
			return fld.value, true
		}
	}
	return "", false
}

// Files returns the file parts in order.
func (f *Form) Files() []FormFile {
	out := make([]FormFile, len(f.files))
	copy(out, f.files)
	return out
}

// Encode writes the multipart body. A file that cannot be read is a
// transport error: the request could not be constructed.
func (f *Form) Encode() (*bytes.Buffer, string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, fld := range f.fields {
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, "", transportError(fmt.Errorf("write field %s: %w", fld.name, err))
		}
	}
	for _, file := range f.files {
		if err := writeFilePart(w, file); err != nil {
			return nil, "", transportError(err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", transportError(fmt.Errorf("close multipart: %w", err))
	}
	return &body, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, file FormFile) error {
	src, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Path, err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return fmt.Errorf("detect %s: %w", file.Path, err)
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewind %s: %w", file.Path, err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.Field, filepath.Base(file.Path)))
	h.Set("Content-Type", mtype.String())
	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", file.Field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy %s: %w", file.Path, err)
	}
	return nil
}
