package models

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"kredita/internal/coreapi"
)

// DefaultUUID identifies the built-in Kredita brand.
const DefaultUUID = "_"

// themeShift is how far the light and dark variants move from the main
// color, as a fraction of HSL lightness.
const themeShift = 0.20

// Theme is a brand's palette as CSS hex colors.
type Theme struct {
	Light string `json:"light"`
	Main  string `json:"main"`
	Dark  string `json:"dark"`
}

// Brand is the white-label presentation applied to every page.
type Brand struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	HomepageURL string `json:"homepageUrl"`
	Theme       Theme  `json:"theme"`
}

// IsDefault reports whether b is the built-in brand.
func (b Brand) IsDefault() bool {
	return b.UUID == DefaultUUID
}

// Set is a resolved brand together with the API key used for requests made
// on its behalf.
type Set struct {
	Brand  Brand  `json:"brand"`
	APIKey string `json:"apiKey,omitempty"`
}

// Default returns the built-in Kredita brand.
func Default() Brand {
	return Brand{
		UUID:        DefaultUUID,
		Name:        "Kredita",
		Logo:        "/logo.svg",
		HomepageURL: "/",
		Theme: Theme{
			Light: "#FACE6F",
			Main:  "#FFAD00",
			Dark:  "#CB8A00",
		},
	}
}

// FromDTO maps the core service's brand record. A nil record maps to the
// default brand.
func FromDTO(dto *coreapi.BrandDTO) Brand {
	if dto == nil {
		return Default()
	}
	return Brand{
		UUID:        dto.UUID,
		Name:        dto.ReceiverName,
		Logo:        dto.LogoImageURL,
		HomepageURL: dto.HomepageURL,
		Theme:       ThemeFrom(dto.PrimaryColor),
	}
}

// ThemeFrom derives light and dark variants from a main color. An
// unparseable color falls back to the default theme.
func ThemeFrom(main string) Theme {
	c, err := colorful.Hex(main)
	if err != nil {
		return Default().Theme
	}
	h, s, l := c.Hsl()
	return Theme{
		Light: colorful.Hsl(h, s, clamp01(l+themeShift)).Clamped().Hex(),
		Main:  main,
		Dark:  colorful.Hsl(h, s, clamp01(l-themeShift)).Clamped().Hex(),
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
