package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryKV_GetMissing(t *testing.T) {
	kv := NewMemoryKV()

	_, ok, err := kv.Get("absent")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() reported a value for a missing key")
	}
}

func TestMemoryKV_RoundTrip(t *testing.T) {
	kv := NewMemoryKV()

	if err := kv.Set("k", []byte(`"v"`)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, ok, err := kv.Get("k")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok || string(got) != `"v"` {
		t.Errorf("Get() = %q, %v, want %q, true", got, ok, `"v"`)
	}
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	kv := NewMemoryKV()

	in := []byte(`"v"`)
	if err := kv.Set("k", in); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	in[0] = 'x'

	got, _, _ := kv.Get("k")
	if string(got) != `"v"` {
		t.Error("mutating the input slice changed the stored value")
	}

	got[0] = 'x'
	again, _, _ := kv.Get("k")
	if string(again) != `"v"` {
		t.Error("mutating a returned slice changed the stored value")
	}
}

func TestOpenFileKV_MissingFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	kv, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("OpenFileKV() error: %v", err)
	}

	if _, ok, _ := kv.Get("anything"); ok {
		t.Error("fresh store reported a value")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("opening a missing state file created it before any Set")
	}
}

func TestOpenFileKV_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenFileKV(path); err == nil {
		t.Error("OpenFileKV() on a corrupt file did not return an error")
	}
}

func TestFileKV_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	first, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("OpenFileKV() error: %v", err)
	}
	if err := first.Set("timer-start/clock", []byte(`"2026-08-26T09:00:00Z"`)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	second, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, ok, err := second.Get("timer-start/clock")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok || string(got) != `"2026-08-26T09:00:00Z"` {
		t.Errorf("reopened store returned %q, %v", got, ok)
	}
}

func TestFileKV_SetOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	kv, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("OpenFileKV() error: %v", err)
	}
	if err := kv.Set("k", []byte(`1`)); err != nil {
		t.Fatal(err)
	}
	if err := kv.Set("k", []byte(`2`)); err != nil {
		t.Fatal(err)
	}

	got, _, _ := kv.Get("k")
	if string(got) != `2` {
		t.Errorf("Get() = %q after overwrite, want 2", got)
	}

	// no temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("%d files in state directory, want 1", len(entries))
	}
}
