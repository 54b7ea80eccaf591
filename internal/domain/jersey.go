package domain

import "time"

// Jersey is a purchasable design. DownloadURL is the protected asset and is
// stripped from public catalog reads.
type Jersey struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Player        string    `json:"player"`
	Price         Cents     `json:"price"`
	OriginalPrice *Cents    `json:"originalPrice,omitempty"`
	Image         string    `json:"image"`
	DownloadURL   string    `json:"downloadUrl,omitempty"`
	Badge         *string   `json:"badge,omitempty"`
	BadgeColor    *string   `json:"badgeColor,omitempty"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"reviewCount"`
	CategoryID    string    `json:"categoryId"`
	Category      *Category `json:"category,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Public returns a copy without the download location.
func (j Jersey) Public() Jersey {
	j.DownloadURL = ""
	return j
}

// JerseyFilter narrows catalog listings. Zero values mean "no constraint".
type JerseyFilter struct {
	CategoryID string
	MinPrice   *Cents
	MaxPrice   *Cents
	Search     string
	Page       PageRequest
}
