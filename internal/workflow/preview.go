package workflow

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const previewScheme = "preview://"

// Preview is a revocable local reference to a selected file.
type Preview struct {
	Handle string
	Path   string
	Name   string
	Size   int64
	MIME   string
}

// IsImage reports whether the file sniffed as an image.
func (p Preview) IsImage() bool {
	return strings.HasPrefix(p.MIME, "image/")
}

// Previews is the table of live preview handles.
type Previews struct {
	mu   sync.Mutex
	live map[string]Preview
}

// NewPreviews returns an empty table.
func NewPreviews() *Previews {
	return &Previews{live: make(map[string]Preview)}
}

// Create stats and sniffs path and registers a new handle for it.
func (p *Previews) Create(path string) (Preview, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Preview{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return Preview{}, fmt.Errorf("%s is a directory", path)
	}
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return Preview{}, fmt.Errorf("detect %s: %w", path, err)
	}
	pv := Preview{
		Handle: previewScheme + uuid.NewString(),
		Path:   path,
		Name:   filepath.Base(path),
		Size:   info.Size(),
		MIME:   mtype.String(),
	}
	p.mu.Lock()
	p.live[pv.Handle] = pv
	p.mu.Unlock()
	return pv, nil
}

// Release revokes handle. It returns false if the handle was not live.
func (p *Previews) Release(handle string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.live[handle]; !ok {
		return false
	}
	delete(p.live, handle)
	return true
}

// Get returns a live preview.
func (p *Previews) Get(handle string) (Preview, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pv, ok := p.live[handle]
	return pv, ok
}

// Live returns the number of unreleased handles.
func (p *Previews) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}
