package preset

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	apperrors "github.com/yrbane/acidgrid/internal/errors"
)

func TestBuiltinCatalog(t *testing.T) {
	names := BuiltinNames()
	if len(names) != 13 {
		t.Fatalf("got %d builtin presets, want 13", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Error("builtin names are not sorted")
	}

	for _, name := range names {
		p, ok := Builtin(name)
		if !ok {
			t.Fatalf("builtin %q not found", name)
		}
		if p.Style == "" {
			t.Errorf("builtin %q has no style", name)
		}
		if p.Measures <= 0 {
			t.Errorf("builtin %q has measures %d", name, p.Measures)
		}
		if p.Swing == nil {
			t.Errorf("builtin %q has no swing", name)
		}
	}

	p, _ := Builtin("berlin-warehouse")
	if p.Tempo != 132 || p.Measures != 256 || p.Style != "techno" {
		t.Errorf("berlin-warehouse = %+v", p)
	}
	if p.Swing == nil || *p.Swing != 0.05 {
		t.Errorf("berlin-warehouse swing = %v, want 0.05", p.Swing)
	}
}

func TestBuiltinImmutable(t *testing.T) {
	p, ok := Builtin("hardfloor")
	if !ok {
		t.Fatal("hardfloor not found")
	}
	*p.Swing = 0.99
	p.Tempo = 1

	q, _ := Builtin("hardfloor")
	if *q.Swing != 0.0 {
		t.Errorf("catalog swing changed to %v", *q.Swing)
	}
	if q.Tempo != 165 {
		t.Errorf("catalog tempo changed to %d", q.Tempo)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	in := Preset{
		Name:        "my-sunday-set",
		Description: "warmup groove",
		Style:       "house",
		Tempo:       120,
		Measures:    128,
		Swing:       f64(0.2),
	}
	if err := store.Save(in, false); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get("my-sunday-set")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != in.Name || got.Style != in.Style || got.Tempo != in.Tempo || got.Measures != in.Measures {
		t.Errorf("got %+v, want %+v", got, in)
	}
	if got.Swing == nil || *got.Swing != 0.2 {
		t.Errorf("swing = %v, want 0.2", got.Swing)
	}
	if got.Seed != nil {
		t.Errorf("seed = %v, want nil", got.Seed)
	}
}

func TestStoreSaveRejectsBuiltinName(t *testing.T) {
	store := NewStore(t.TempDir())
	err := store.Save(Preset{Name: "berlin-warehouse", Style: "techno"}, true)
	if !errors.Is(err, apperrors.ErrPresetProtected) {
		t.Fatalf("got %v, want ErrPresetProtected", err)
	}
}

func TestStoreSaveWithoutOverwrite(t *testing.T) {
	store := NewStore(t.TempDir())
	p := Preset{Name: "dup", Style: "techno", Measures: 64}

	if err := store.Save(p, false); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(p, false); err == nil {
		t.Fatal("second save without overwrite should fail")
	}
	if err := store.Save(p, true); err != nil {
		t.Fatalf("save with overwrite: %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(t.TempDir())
	p := Preset{Name: "short-lived", Style: "idm", Measures: 32}

	if err := store.Save(p, false); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete("short-lived"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get("short-lived"); err == nil {
		t.Fatal("preset still retrievable after delete")
	}

	if err := store.Delete("berlin-warehouse"); !errors.Is(err, apperrors.ErrPresetProtected) {
		t.Fatalf("deleting a builtin: got %v, want ErrPresetProtected", err)
	}
	if err := store.Delete("never-existed"); !errors.Is(err, apperrors.ErrPresetNotFound) {
		t.Fatalf("deleting a missing preset: got %v, want ErrPresetNotFound", err)
	}
}

func TestStoreList(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Save(Preset{Name: "zz-custom", Style: "trap", Measures: 64}, false); err != nil {
		t.Fatalf("save: %v", err)
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !sort.StringsAreSorted(names) {
		t.Error("list is not sorted")
	}
	if len(names) != 14 {
		t.Fatalf("got %d names, want 14", len(names))
	}

	found := false
	for _, name := range names {
		if name == "zz-custom" {
			found = true
		}
	}
	if !found {
		t.Error("custom preset missing from list")
	}
}

func TestGetMissingPreset(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Get("no-such-preset")
	if !errors.Is(err, apperrors.ErrPresetNotFound) {
		t.Fatalf("got %v, want ErrPresetNotFound", err)
	}
}

func TestGetFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	raw := []byte("description: handwritten\nstyle: techno\n")
	if err := os.WriteFile(filepath.Join(dir, "sparse.yaml"), raw, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := store.Get("sparse")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "sparse" {
		t.Errorf("name = %q, want %q", got.Name, "sparse")
	}
	if got.Measures != DefaultMeasures {
		t.Errorf("measures = %d, want %d", got.Measures, DefaultMeasures)
	}
	if got.Swing != nil {
		t.Errorf("swing = %v, want nil", got.Swing)
	}
}
