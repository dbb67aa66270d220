package domain

// Catalog entities form a four-level hierarchy: stadium -> category ->
// brand -> item. They are read-only reference data after seed time.

type Stadium struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Category struct {
	ID        string `json:"id"`
	StadiumID string `json:"stadiumId"`
	Name      string `json:"name"`
	NameEn    string `json:"nameEn,omitempty"`
}

type Brand struct {
	ID         string `json:"id"`
	CategoryID string `json:"categoryId"`
	Name       string `json:"name"`
	NameEn     string `json:"nameEn,omitempty"`
}

func (b Brand) DisplayName() string {
	if b.Name != "" {
		return b.Name
	}
	return b.NameEn
}

type Item struct {
	ID          string `json:"id"`
	BrandID     string `json:"brandId"`
	Name        string `json:"name"`
	NameEn      string `json:"nameEn,omitempty"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
}

// DisplayName resolves the localized name with an English fallback.
func (i Item) DisplayName() string {
	if i.Name != "" {
		return i.Name
	}
	return i.NameEn
}
