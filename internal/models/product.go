package models

// Product is not a stored entity: it is the distinct set of SQ codes
// observed across the design collection, re-derived on every fetch.
type Product struct {
	SQ          string      `json:"sq"`
	ProductType string      `json:"productType"`
	TabSettings TabSettings `json:"tabSettings"`
}

// GroupProducts derives the product list from raw designs in first-seen
// order. The first record observed per SQ decides the product's type and
// tab settings; later records sharing the SQ are expected to carry the
// same metadata but are not trusted to.
func GroupProducts(designs []LayerDesign) []Product {
	seen := make(map[string]bool, len(designs))
	products := make([]Product, 0, len(designs))
	for _, d := range designs {
		if seen[d.SQ] {
			continue
		}
		seen[d.SQ] = true
		tabs := DefaultTabSettings()
		if d.TabSettings != nil {
			tabs = *d.TabSettings
		}
		products = append(products, Product{
			SQ:          d.SQ,
			ProductType: d.ProductType,
			TabSettings: tabs,
		})
	}
	return products
}

// VisibleDesigns hides the placeholder record. A collection holding only
// the placeholder renders as empty.
func VisibleDesigns(designs []LayerDesign) []LayerDesign {
	visible := make([]LayerDesign, 0, len(designs))
	for _, d := range designs {
		if d.DesignName == DefaultDesignName {
			continue
		}
		visible = append(visible, d)
	}
	return visible
}

// VisibleUsers hides superadmin accounts from the managed user list.
func VisibleUsers(users []User) []User {
	visible := make([]User, 0, len(users))
	for _, u := range users {
		if u.Role == RoleSuperadmin {
			continue
		}
		visible = append(visible, u)
	}
	return visible
}
