package catalog

// AllowedCategories is the closed set of categories customers may order from.
// The catalog can hold other categories (postres, snacks); they stay invisible
// to ordering surfaces even when marked available. Order matters: menu
// sections are rendered in this sequence.
var AllowedCategories = []string{"alimentos", "bebidas"}

// CategoryAllowed reports whether a category is on the allow-list.
func CategoryAllowed(category string) bool {
	for _, c := range AllowedCategories {
		if c == category {
			return true
		}
	}
	return false
}

// FilterOrderable keeps only products that are available and belong to an
// allow-listed category. The repository query already restricts categories;
// this filter is applied again on every read path so the invariant does not
// depend on upstream behavior.
func FilterOrderable(products []*Product) []*Product {
	orderable := make([]*Product, 0, len(products))
	for _, p := range products {
		if p == nil || !p.Available {
			continue
		}
		if !CategoryAllowed(p.Category) {
			continue
		}
		orderable = append(orderable, p)
	}
	return orderable
}

// Section is one category block of the customer-facing menu.
type Section struct {
	Category string     `json:"categoria"`
	Products []*Product `json:"productos"`
}

// GroupByCategory arranges orderable products into sections following the
// allow-list order, keeping the incoming order within each section. Empty
// categories are omitted.
func GroupByCategory(products []*Product) []Section {
	sections := make([]Section, 0, len(AllowedCategories))
	for _, category := range AllowedCategories {
		var group []*Product
		for _, p := range products {
			if p != nil && p.Category == category {
				group = append(group, p)
			}
		}
		if len(group) > 0 {
			sections = append(sections, Section{Category: category, Products: group})
		}
	}
	return sections
}
