package config

import (
	"testing"
)

func TestLevelFor(t *testing.T) {
	lt := &LevelThresholds{Thresholds: []int{100, 250, 450}}

	tests := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{450, 4},
		{100000, 4}, // capped at the top of the table
	}
	for _, tt := range tests {
		if got := lt.LevelFor(tt.xp); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}

	if lt.MaxLevel() != 4 {
		t.Errorf("MaxLevel() = %d, want 4", lt.MaxLevel())
	}
}

func TestCategoryNormalize(t *testing.T) {
	catalog := NewCategoryCatalog([]Category{
		{ID: "fitness", Name: "Fitness"},
		{ID: "learning", Name: "Learning & Growth"},
	})

	tests := []struct {
		in     string
		wantID string
		wantOK bool
	}{
		{"fitness", "fitness", true},
		{"Fitness", "fitness", true},
		{"FITNESS", "fitness", true},
		{" fitness ", "fitness", true},
		{"learning & growth", "learning", true},
		{"astrology", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		id, ok := catalog.Normalize(tt.in)
		if id != tt.wantID || ok != tt.wantOK {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.in, id, ok, tt.wantID, tt.wantOK)
		}
	}
}

func TestDefaultCatalogLoads(t *testing.T) {
	t.Setenv("CATEGORY_CATALOG_FILE", "")
	catalog, err := LoadCategoryCatalog()
	if err != nil {
		t.Fatalf("LoadCategoryCatalog failed: %v", err)
	}
	if len(catalog.Categories()) == 0 {
		t.Fatal("Default catalog is empty")
	}
	if _, ok := catalog.Normalize("fitness"); !ok {
		t.Error("Default catalog should include fitness")
	}
}
