// Package keystore implements the file-backed name->recipe map: load,
// reload, save, add, delete, one entry per line as "<name>:<wire form>".
package keystore

import (
	"bufio"
	"os"
	"strings"

	"github.com/permutecrypt/transpose/recipe"
	"github.com/permutecrypt/transpose/serial"
	"github.com/permutecrypt/transpose/xerr"
)

// OpenMode selects the file's create semantics: create-only, must-exist,
// or create-if-missing.
type OpenMode int

const (
	CreateNew OpenMode = iota
	LoadExisting
	CreateIfAbsent
)

// Keystore is a name->recipe map backed by a single text file. The
// in-memory map is authoritative between Reload and Save.
type Keystore struct {
	file    *os.File
	entries map[string]*recipe.Recipe
}

// Open opens path under the given mode and reads all entries into memory.
func Open(path string, mode OpenMode) (*Keystore, error) {
	var flags int
	switch mode {
	case CreateNew:
		flags = os.O_RDWR | os.O_CREATE | os.O_EXCL
	case LoadExisting:
		flags = os.O_RDWR
	case CreateIfAbsent:
		flags = os.O_RDWR | os.O_CREATE
	default:
		return nil, xerr.Wrap(xerr.ErrInvalidConfig, "unknown keystore open mode %d", mode)
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return nil, xerr.Wrap(xerr.ErrIO, "opening keystore %q", path)
	}

	k := &Keystore{file: file}
	if err := k.Reload(); err != nil {
		file.Close()
		return nil, err
	}
	return k, nil
}

// Reload seeks to the start of the file, re-parses it, and replaces the
// in-memory map atomically: on a parse failure the previous map is kept
// and the error is surfaced.
func (k *Keystore) Reload() error {
	if _, err := k.file.Seek(0, 0); err != nil {
		return xerr.Wrap(xerr.ErrIO, "seeking keystore to start")
	}

	entries := make(map[string]*recipe.Recipe)
	scanner := bufio.NewScanner(k.file)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		name, wireForm, ok := strings.Cut(line, ":")
		if !ok || name == "" {
			return xerr.Wrap(xerr.ErrMalformedEntry, "keystore line missing name: %q", line)
		}

		r, err := serial.Read(strings.NewReader(wireForm))
		if err != nil {
			return xerr.Wrap(xerr.ErrMalformedEntry, "keystore entry %q: %v", name, err)
		}
		entries[name] = r
	}
	if err := scanner.Err(); err != nil {
		return xerr.Wrap(xerr.ErrIO, "reading keystore")
	}

	k.entries = entries
	return nil
}

// Save truncates the file and writes every entry; iteration order is
// unspecified since the store is not an ordered container.
func (k *Keystore) Save() error {
	if err := k.file.Truncate(0); err != nil {
		return xerr.Wrap(xerr.ErrIO, "truncating keystore")
	}
	if _, err := k.file.Seek(0, 0); err != nil {
		return xerr.Wrap(xerr.ErrIO, "seeking keystore to start")
	}

	w := bufio.NewWriter(k.file)
	for name, r := range k.entries {
		if _, err := w.WriteString(name + ":"); err != nil {
			return xerr.Wrap(xerr.ErrIO, "writing keystore entry %q", name)
		}
		if err := serial.Write(w, r); err != nil {
			return xerr.Wrap(err, "writing keystore entry %q", name)
		}
		if _, err := w.WriteString("\n"); err != nil {
			return xerr.Wrap(xerr.ErrIO, "writing keystore entry %q", name)
		}
	}
	if err := w.Flush(); err != nil {
		return xerr.Wrap(xerr.ErrIO, "flushing keystore")
	}
	return k.file.Sync()
}

// Add inserts or replaces name's recipe, reporting the recipe it replaced
// if one existed.
func (k *Keystore) Add(name string, r *recipe.Recipe) (*recipe.Recipe, bool) {
	previous, existed := k.entries[name]
	k.entries[name] = r
	return previous, existed
}

// Delete removes name, reporting the recipe it removed if one existed.
func (k *Keystore) Delete(name string) (*recipe.Recipe, bool) {
	removed, existed := k.entries[name]
	if existed {
		delete(k.entries, name)
	}
	return removed, existed
}

// Get looks up name without mutating the store.
func (k *Keystore) Get(name string) (*recipe.Recipe, bool) {
	r, ok := k.entries[name]
	return r, ok
}

// Keys lists every name currently held in memory.
func (k *Keystore) Keys() []string {
	keys := make([]string, 0, len(k.entries))
	for name := range k.entries {
		keys = append(keys, name)
	}
	return keys
}

// Close releases the underlying file handle without saving.
func (k *Keystore) Close() error {
	return k.file.Close()
}
