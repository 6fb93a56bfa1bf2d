package assets

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/jinzhu/copier"
)

// SpherePath is the template sphere inside the data directory.
const SpherePath = "sphere.off"

// Library loads assets from a data directory. The sphere template is parsed once and
// every caller gets its own deep copy.
type Library struct {
	fsys fs.FS

	mu     sync.Mutex
	sphere *Mesh
}

// NewLibrary returns a library reading from fsys (usually os.DirFS(dataDir)).
func NewLibrary(fsys fs.FS) *Library {
	return &Library{fsys: fsys}
}

// Sphere returns a copy of the cached template sphere, loading it on first use.
func (l *Library) Sphere() (*Mesh, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sphere == nil {
		f, err := l.fsys.Open(SpherePath)
		if err != nil {
			return nil, fmt.Errorf("assets: open sphere: %w", err)
		}
		defer f.Close()
		off, err := LoadOFF(f)
		if err != nil {
			return nil, err
		}
		m, err := BuildSphere(off)
		if err != nil {
			return nil, err
		}
		l.sphere = m
	}
	var out Mesh
	if err := copier.CopyWithOption(&out, l.sphere, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("assets: copy sphere: %w", err)
	}
	return &out, nil
}

// Image decodes and flips the image at name, relative to the data directory.
func (l *Library) Image(name string) (*Image, error) {
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w: %w", name, ErrImageLoad, err)
	}
	defer f.Close()
	img, err := DecodeImage(f)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", name, err)
	}
	return img, nil
}
