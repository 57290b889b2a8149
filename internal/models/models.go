package models

import "encoding/json"

// Identity is the profile snapshot taken at login. It is not refreshed
// until the next login; Role is the only authorization signal the console
// consults, the upstream API stays the authority of record.
type Identity struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

const (
	RoleUser       = "user"
	RoleSuperadmin = "superadmin"
)

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Active bool   `json:"active"`
	Role   string `json:"role"`
}

type StoreConfiguration struct {
	ID               string `json:"id,omitempty"`
	StoreID          string `json:"storeId"`
	StoreURL         string `json:"storeUrl"`
	StoreAccessToken string `json:"storeAccessToken"`
	StoreEndpoint    string `json:"storeEndpoint"`
	Subscription     string `json:"subscription"`
}

// TabSettings are the editor tabs toggled per product. New products
// default to everything enabled.
type TabSettings struct {
	AiEditor  bool `json:"aiEditor"`
	ImageEdit bool `json:"imageEdit"`
	TextEdit  bool `json:"textEdit"`
	Colors    bool `json:"colors"`
	Clipart   bool `json:"clipart"`
}

func DefaultTabSettings() TabSettings {
	return TabSettings{AiEditor: true, ImageEdit: true, TextEdit: true, Colors: true, Clipart: true}
}

// CustomizableData is one title/description/image triple shown to the end
// customer. Files holds at most one durable URL.
type CustomizableData struct {
	Title            string   `json:"title"`
	ShortDescription string   `json:"shortDescription"`
	Files            []string `json:"files"`
}

// LayerDesign is the upstream design record. LayersDesign is an opaque
// payload the console never inspects, only carries. ProductType and
// TabSettings are product metadata denormalized onto the record; writes
// that are not about the product leave them nil so a field-applying
// upstream keeps whatever is stored.
type LayerDesign struct {
	ID               string             `json:"id,omitempty"`
	SQ               string             `json:"sq"`
	DesignName       string             `json:"designName"`
	ProductType      string             `json:"productType,omitempty"`
	TabSettings      *TabSettings       `json:"tabSettings,omitempty"`
	LayersDesign     json.RawMessage    `json:"layersDesign,omitempty"`
	CustomizableData []CustomizableData `json:"customizableData,omitempty"`
}

// DefaultDesignName marks the placeholder record created when a product is
// first added. It is hidden from design listings.
const DefaultDesignName = "Default Design"
