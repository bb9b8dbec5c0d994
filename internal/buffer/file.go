package buffer

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
)

// BackupExt is the suffix appended to a file's original name when the
// 'bak' mode keeps a copy of what was overwritten (ground: file.c's
// BACKUP_EXT, writeout()).
const BackupExt = ".bak"

// SaveMode selects how Write picks an output path (spec.md §4.1
// "file.c backup/safe-save algorithm").
type SaveMode uint8

const (
	// SaveDirect writes straight to Filename, truncating it.
	SaveDirect SaveMode = iota
	// SaveSafe writes to a temporary file in the same directory, then
	// renames it over the original only once the write succeeds, so a
	// crash mid-write never leaves a half-written original.
	SaveSafe
	// SaveBackup does what SaveSafe does, and additionally preserves
	// the previous contents at Filename+BackupExt (skipped if that name
	// is already taken, matching writeout()'s "Enable 'bak' save if
	// backup file does not already exist").
	SaveBackup
)

// Writer is the minimal interface file.go depends on so tests can
// substitute a fake filesystem without touching disk (spec.md §1 test
// tooling: the teacher's repos favor small interfaces over a mock
// library for this kind of thing).
type Writer interface {
	Stat(name string) (os.FileInfo, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

type osWriter struct{}

func (osWriter) Stat(name string) (os.FileInfo, error) { return os.Stat(name) }
func (osWriter) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}
func (osWriter) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (osWriter) Remove(name string) error             { return os.Remove(name) }

// DefaultWriter is the production Writer, backed by the os package.
var DefaultWriter Writer = osWriter{}

// serialize concatenates the buffer's lines with its delimiter.
func (b *Buffer) serialize() []byte {
	out := make([]byte, 0, b.nByte+b.nLine)
	for l := b.first; l != nil; l = l.Next() {
		out = append(out, l.Bytes()...)
		if l.Next() != nil {
			out = append(out, b.Delim...)
		}
	}
	return out
}

// detectDelim reports the first line-ending style found in data (NL,
// CR-LF, or CR, in that priority order, ground: file.c's "first of NL,
// CR-LF, CR" delimiter sniff), defaulting to "\n" when data has none.
func detectDelim(data []byte) string {
	for i, c := range data {
		switch c {
		case '\n':
			return "\n"
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				return "\r\n"
			}
			return "\r"
		}
	}
	return "\n"
}

// Read replaces b's content with data, split on delim (auto-detected
// from data unless delim is non-empty, spec.md §6 "File format"). The
// buffer's existing marks are discarded, since a fresh read has no
// correspondence to the old text's positions.
func (b *Buffer) Read(data []byte, delim string) {
	if delim == "" {
		delim = detectDelim(data)
	}
	b.Delim = delim
	parts := bytes.Split(data, []byte(delim))
	if len(parts) > 1 && len(parts[len(parts)-1]) == 0 {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		parts = [][]byte{{}}
	}

	first := NewLineFromBytes(parts[0])
	l := first
	nByte := l.Len()
	for _, p := range parts[1:] {
		nl := NewLineFromBytes(p)
		nl.prev = l
		l.next = nl
		l = nl
		nByte += nl.Len()
	}
	first.prev = l
	l.next = nil

	b.first = first
	b.nLine = len(parts)
	b.nByte = nByte
	b.Marks = nil
	b.hiddenHead = nil
	b.hiddenTail = nil
	b.Flags &^= FlNarrowed
	b.SetChanged(false)
	b.notify(WFHard)
}

// ReadFile loads path's contents into b via r, auto-detecting its line
// delimiter and recording path as b.Filename (spec.md §6).
func (b *Buffer) ReadFile(r Reader, path string) error {
	data, err := r.ReadFile(path)
	if err != nil {
		return err
	}
	b.Read(data, "")
	b.Filename = path
	return nil
}

// Reader is the minimal interface file-reading needs, the read-side
// counterpart of Writer.
type Reader interface {
	ReadFile(name string) ([]byte, error)
}

type osReader struct{}

func (osReader) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// DefaultReader is the production Reader, backed by the os package.
var DefaultReader Reader = osReader{}

// Write saves the buffer's content to path using mode, following the
// original safe/backup-save algorithm: write to a sibling temp file,
// then atomically rename it over the destination, optionally keeping
// the prior contents as a .bak file first.
func (b *Buffer) Write(w Writer, path string, mode SaveMode) error {
	if mode == SaveDirect {
		if err := w.WriteFile(path, b.serialize(), 0644); err != nil {
			return err
		}
		b.SetChanged(false)
		return nil
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	var tmp string
	for {
		tmp = filepath.Join(dir, fmt.Sprintf(".%s.%04x", base, rand.Intn(0x10000)))
		if _, err := w.Stat(tmp); os.IsNotExist(err) {
			break
		}
	}

	if err := w.WriteFile(tmp, b.serialize(), 0644); err != nil {
		_ = w.Remove(tmp)
		return err
	}

	if mode == SaveBackup {
		bak := path + BackupExt
		if _, err := w.Stat(bak); os.IsNotExist(err) {
			if err := w.Rename(path, bak); err != nil {
				_ = w.Remove(tmp)
				return fmt.Errorf("backing up %s: %w", path, err)
			}
		} else if err := w.Remove(path); err != nil && !os.IsNotExist(err) {
			_ = w.Remove(tmp)
			return fmt.Errorf("removing %s: %w", path, err)
		}
	} else if err := w.Remove(path); err != nil && !os.IsNotExist(err) {
		_ = w.Remove(tmp)
		return fmt.Errorf("removing %s: %w", path, err)
	}

	if err := w.Rename(tmp, path); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", tmp, path, err)
	}
	b.SetChanged(false)
	return nil
}
