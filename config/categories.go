package config

import (
	"encoding/json"
	"os"
	"strings"
)

// Category is one entry of the static category catalog used to validate
// and normalize evaluator output.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CategoryCatalog struct {
	categories []Category
	byKey      map[string]string // lowercased id or name -> canonical id
}

// defaultCategories backs the catalog when CATEGORY_CATALOG_FILE is unset.
var defaultCategories = []Category{
	{ID: "fitness", Name: "Fitness"},
	{ID: "nutrition", Name: "Nutrition"},
	{ID: "mindfulness", Name: "Mindfulness"},
	{ID: "learning", Name: "Learning"},
	{ID: "productivity", Name: "Productivity"},
	{ID: "social", Name: "Social"},
	{ID: "finance", Name: "Finance"},
	{ID: "creativity", Name: "Creativity"},
}

// LoadCategoryCatalog builds the catalog from the JSON file named by
// CATEGORY_CATALOG_FILE, falling back to the built-in list.
func LoadCategoryCatalog() (*CategoryCatalog, error) {
	categories := defaultCategories
	if path := os.Getenv("CATEGORY_CATALOG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		var loaded []Category
		if err := json.Unmarshal(data, &loaded); err != nil {
			return nil, err
		}
		categories = loaded
	}
	return NewCategoryCatalog(categories), nil
}

func NewCategoryCatalog(categories []Category) *CategoryCatalog {
	byKey := make(map[string]string, len(categories)*2)
	for _, c := range categories {
		byKey[strings.ToLower(c.ID)] = c.ID
		byKey[strings.ToLower(c.Name)] = c.ID
	}
	return &CategoryCatalog{categories: categories, byKey: byKey}
}

// Normalize resolves a case-insensitive id or name to the canonical
// category id.
func (c *CategoryCatalog) Normalize(idOrName string) (string, bool) {
	id, ok := c.byKey[strings.ToLower(strings.TrimSpace(idOrName))]
	return id, ok
}

func (c *CategoryCatalog) Categories() []Category {
	return c.categories
}
