package products

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
)

// structured semantic attributes produced by the AI analyzer
type Metadata struct {
	Style              string   `json:"style"`
	Materials          []string `json:"materials"`
	Category           string   `json:"category"`
	Colors             []string `json:"colors"`
	RoomType           []string `json:"roomType"`
	FunctionalFeatures []string `json:"functionalFeatures"`
	DesignStyle        string   `json:"designStyle"`
	Condition          string   `json:"condition"`
	SuitableFor        []string `json:"suitableFor"`
	VisualDescription  string   `json:"visualDescription"`
}

// Value serializes metadata for the jsonb column. The pool runs in simple
// protocol mode, where arguments carry no type OID, so the struct must
// encode itself as JSON text.
func (m Metadata) Value() (driver.Value, error) {
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = Metadata{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}

	return fmt.Errorf("cannot scan %T into Metadata", value)
}

// fallback metadata used when analysis fails, so a product still gets stored
func DefaultMetadata() Metadata {
	return Metadata{
		Style:              "moderni",
		Materials:          []string{},
		Category:           "muut",
		Colors:             []string{},
		RoomType:           []string{},
		FunctionalFeatures: []string{},
		DesignStyle:        "",
		Condition:          "Ei tietoa",
		SuitableFor:        []string{},
		VisualDescription:  "Ei kuvausta saatavilla",
	}
}

// one listing as extracted from a category page, before enrichment.
// ExternalID is the site-assigned identifier and is only unique per company.
type ScrapedProduct struct {
	ExternalID   string   `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Condition    string   `json:"condition"`
	ImageURL     string   `json:"imageUrl"`
	Category     string   `json:"category"`
	Availability string   `json:"availability"`
	ProductURL   string   `json:"productUrl"`
	Company      string   `json:"company"`
}

// a persisted catalog row
type Product struct {
	ID           string    `json:"id"`
	ExternalID   string    `json:"externalId"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	Condition    string    `json:"condition"`
	ImageURL     string    `json:"imageUrl"`
	ProductURL   string    `json:"productUrl"`
	Category     string    `json:"category"`
	Availability string    `json:"availability"`
	Company      string    `json:"company"`
	Metadata     Metadata  `json:"metadata"`
	SearchTerms  string    `json:"searchTerms"`
	IsTestData   bool      `json:"isTestData"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// everything needed to insert or refresh a row. Embedding is nil when
// generation failed or when an update should keep the stored vector.
type UpsertParams struct {
	ScrapedProduct
	Metadata    Metadata
	SearchTerms string
	Embedding   *pgvector.Vector
	IsTestData  bool
}
