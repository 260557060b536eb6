package catalog

// Item is a catalog entity that recipes produce and consume.
// Identity is the ID; names are display-only and may collide.
type Item struct {
	ID       string
	Name     string
	Slug     string
	ImageURL string

	// IsRawMaterial marks the item as a supply boundary. A raw item never gets a
	// producing recipe selected, even when one exists in the catalog.
	IsRawMaterial bool

	Category string
	Rarity   int
	SortID   int
}

// DisplayName returns the item name, falling back to the ID
func (i *Item) DisplayName() string {
	if i == nil {
		return ""
	}
	if i.Name == "" {
		return i.ID
	}
	return i.Name
}
