package keystore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/permutecrypt/transpose/block"
	"github.com/permutecrypt/transpose/domain"
	"github.com/permutecrypt/transpose/recipe"
	"github.com/permutecrypt/transpose/transposer"
)

// k1's wire form below completes both layers the S6 scenario names
// (padding/byte/simple and padding/byte/rail); the literal spec string
// only spells out the first layer's pad mode and domain, see DESIGN.md.
const s6WireForm = "k1:2 padding byte simple 4 0 1 2 3 padding byte rail 8 3 \n"

func TestOpenLoadsOneEntryStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")
	if err := os.WriteFile(path, []byte(s6WireForm), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	k, err := Open(path, LoadExisting)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer k.Close()

	if keys := k.Keys(); len(keys) != 1 || keys[0] != "k1" {
		t.Fatalf("Keys() = %v, expected [k1]", keys)
	}

	r, ok := k.Get("k1")
	if !ok {
		t.Fatal("Get(k1) expected an entry")
	}
	if r.Len() != 2 {
		t.Fatalf("loaded recipe has %d layers, expected 2", r.Len())
	}
}

func TestSaveAfterDeleteLeavesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")
	if err := os.WriteFile(path, []byte(s6WireForm), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	k, err := Open(path, LoadExisting)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer k.Close()

	if _, existed := k.Delete("k1"); !existed {
		t.Fatal("Delete(k1) expected the entry to exist")
	}
	if err := k.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	if len(contents) != 0 {
		t.Fatalf("file contents = %q, expected empty", contents)
	}
}

func TestCreateNewFailsIfFileExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	if _, err := Open(path, CreateNew); err == nil {
		t.Fatal("Open(CreateNew) expected an error when the file already exists")
	}
}

func TestCreateIfAbsentCreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")

	k, err := Open(path, CreateIfAbsent)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer k.Close()

	if len(k.Keys()) != 0 {
		t.Fatalf("Keys() = %v, expected empty store", k.Keys())
	}
}

func TestAddSaveReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")

	k, err := Open(path, CreateIfAbsent)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer k.Close()

	r := recipe.New().Push(block.Padding, domain.NewByte(), transposer.TrivialSimple(4))
	if _, existed := k.Add("mine", r); existed {
		t.Fatal("Add(mine) did not expect a previous entry")
	}
	if err := k.Save(); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := k.Reload(); err != nil {
		t.Fatalf("Reload returned error: %v", err)
	}

	reloaded, ok := k.Get("mine")
	if !ok {
		t.Fatal("Get(mine) expected an entry after reload")
	}
	if reloaded.Fingerprint() != r.Fingerprint() {
		t.Fatalf("reloaded fingerprint %q != original %q", reloaded.Fingerprint(), r.Fingerprint())
	}
}

func TestReloadKeepsPreviousMapOnParseFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store")
	if err := os.WriteFile(path, []byte(s6WireForm), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}

	k, err := Open(path, LoadExisting)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer k.Close()

	if err := os.WriteFile(path, []byte("bogus:not a recipe\n"), 0o644); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	if err := k.Reload(); err == nil {
		t.Fatal("Reload expected an error for a malformed entry")
	}

	if _, ok := k.Get("k1"); !ok {
		t.Fatal("Reload on failure must preserve the previous in-memory map")
	}
}
