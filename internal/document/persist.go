package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/tupshar/internal/cdl"
	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
)

// CompressedExt is the file extension of xz-compressed documents.
const CompressedExt = ".xz"

// IsCompressed reports whether path names a compressed document.
func IsCompressed(path string) bool {
	return strings.EqualFold(filepath.Ext(path), CompressedExt)
}

// Open reads a document from path.
func Open(path string, resolver cdl.Resolver, opts ...Option) (*Document, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := Decode(data, resolver, opts...)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	d.path = path
	return d, nil
}

// ReadFile returns the envelope stored at path, decompressing it when the
// path carries CompressedExt.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if IsCompressed(path) {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadData, path, err)
		}
		r = xr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		if IsCompressed(path) {
			return nil, fmt.Errorf("%w: %s: %v", ErrBadData, path, err)
		}
		return nil, err
	}
	return data, nil
}

// Save writes the document to its path.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the document to path and makes path its new location. The
// file is replaced atomically.
func (d *Document) SaveAs(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if err := WriteFile(path, data); err != nil {
		return err
	}

	d.path = path
	d.saved = blake3.Sum256(data)
	d.logger.Info("saved %s (%d lemmas)", path, d.store.Len())
	return nil
}

// WriteFile atomically replaces path with data, compressing it when the path
// carries CompressedExt.
func WriteFile(path string, data []byte) error {
	payload := data
	if IsCompressed(path) {
		var err error
		if payload, err = compress(data); err != nil {
			return fmt.Errorf("compress %s: %w", path, err)
		}
	}
	return writeFileAtomic(path, payload)
}

func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tupshar-*")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// Digest returns the BLAKE3 digest of the current encoding.
func (d *Document) Digest() ([32]byte, error) {
	data, err := d.Encode()
	if err != nil {
		return [32]byte{}, err
	}
	return blake3.Sum256(data), nil
}

// IsModified reports whether the document differs from its last saved or
// loaded state.
func (d *Document) IsModified() bool {
	sum, err := d.Digest()
	if err != nil {
		return true
	}
	return sum != d.saved
}

func (d *Document) markSaved() {
	if sum, err := d.Digest(); err == nil {
		d.saved = sum
	}
}
