package app

import (
	"strings"

	"listing_portal/internal/domain"
)

const noImagesText = "No images available"

// CardView is one entry of the "My Properties" list.
type CardView struct {
	ID        domain.PropertyID
	Address   string
	Location  string // "city, state, country"
	ImageURLs []string
	Details   []string
	IDLabel   string
}

func NewCardView(p domain.PropertyRecord) CardView {
	urls := make([]string, 0, len(p.Images))
	for _, im := range p.Images {
		urls = append(urls, im.URL)
	}
	return CardView{
		ID:        p.ID,
		Address:   p.Address,
		Location:  strings.Join([]string{p.City, p.State, p.Country}, ", "),
		ImageURLs: urls,
		Details: []string{
			"Bedrooms: " + domain.FormatNumber(p.Bedrooms),
			"Bathrooms: " + domain.FormatNumber(p.Bathrooms),
			"Area: " + domain.FormatNumber(p.Area) + " sq ft",
		},
		IDLabel: "Property ID: " + p.ID.String(),
	}
}

func (c CardView) HasImages() bool { return len(c.ImageURLs) > 0 }

// ImagesPlaceholder is shown instead of thumbnails when the card has none.
func (c CardView) ImagesPlaceholder() string {
	if c.HasImages() {
		return ""
	}
	return noImagesText
}

// Gallery returns a closed gallery over the card's images; it cannot be
// opened when the card has none.
func (c CardView) Gallery() domain.GalleryState { return domain.NewGallery(len(c.ImageURLs)) }

type Section struct {
	Title string
	Lines []string
}

// GalleryView is the enlarged-image overlay; zero when closed.
type GalleryView struct {
	Open     bool
	ImageURL string
	Alt      string
	Counter  string // "2 / 5 images"
}

// DetailView is the fully formatted overlay for one listing.
type DetailView struct {
	ID                  domain.PropertyID
	Title               string
	RepresentativeImage string // empty when the listing has no images
	ImageURLs           []string
	Sections            []Section
	Gallery             GalleryView
}

func (d DetailView) HasImages() bool { return d.RepresentativeImage != "" }

func buildDetailView(p domain.PropertyRecord, s domain.ListingSummary, g domain.GalleryState, locale string) DetailView {
	urls := make([]string, 0, len(p.Images))
	for _, im := range p.Images {
		urls = append(urls, im.URL)
	}
	v := DetailView{
		ID:        p.ID,
		Title:     p.Description,
		ImageURLs: urls,
		Sections: []Section{
			{Title: "Price & Status", Lines: []string{
				"Price: " + FormatPrice(s.Price),
				"Status: " + FormatStatus(s.ForSale),
				"Available From: " + FormatDate(s.AvailableFrom, locale),
			}},
			{Title: "Address", Lines: []string{
				strings.Join([]string{p.Address, p.City, p.State, p.PostalCode, p.Country}, ", "),
			}},
			{Title: "Specifications", Lines: []string{
				"Bedrooms: " + domain.FormatNumber(p.Bedrooms),
				"Bathrooms: " + domain.FormatNumber(p.Bathrooms),
				"Area: " + domain.FormatNumber(p.Area) + " sq. ft.",
				"Lot Size: " + domain.FormatNumber(p.LotSize) + " acres",
				"Year Built: " + domain.FormatNumber(float64(p.YearBuilt)),
			}},
			{Title: "Financial Details", Lines: []string{
				"HOA Fee: " + money(p.HOAFee),
				"Taxes: " + money(p.Taxes),
			}},
			{Title: "Features", Lines: []string{
				"Parking: " + JoinTokens(p.Parking),
				"Utilities: " + JoinTokens(p.Utilities),
				"Property Features: " + JoinTokens(p.Features),
			}},
		},
	}
	if len(urls) > 0 {
		v.RepresentativeImage = urls[0]
	}
	if g.Open && g.Index < len(urls) {
		v.Gallery = GalleryView{
			Open:     true,
			ImageURL: urls[g.Index],
			Alt:      "Property " + p.ID.String() + " - " + domain.FormatNumber(float64(g.Index+1)),
			Counter:  g.Counter() + " images",
		}
	}
	return v
}
