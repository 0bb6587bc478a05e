package chart

// Gold-on-black theme values.
const (
	GoldStrong       = "rgba(212, 175, 55, 0.8)"
	BrightGoldStrong = "rgba(255, 215, 0, 0.8)"
	GoldMedium       = "rgba(212, 175, 55, 0.6)"
	BrightGoldMedium = "rgba(255, 215, 0, 0.6)"
	GoldLight        = "rgba(212, 175, 55, 0.4)"
	BrightGoldLight  = "rgba(255, 215, 0, 0.4)"

	DefaultBackgroundColor = GoldMedium
	DefaultBorderColor     = "#d4af37"
	DefaultBorderWidth     = 2.0

	TitleColor      = "#d4af37"
	TitleFontSize   = 16
	TitleFontWeight = "300"
	LegendColor     = "#ffffff"
	LegendFontSize  = 12
)

var palette = [...]string{
	GoldStrong,
	BrightGoldStrong,
	GoldMedium,
	BrightGoldMedium,
	GoldLight,
	BrightGoldLight,
}

// Palette returns the segment colors used for pie and doughnut charts, in
// cycling order.
func Palette() []string {
	return append([]string(nil), palette[:]...)
}

// Theme returns a copy of doc with default colors, borders and title/legend
// plugins filled in. Only absent fields are filled, so Theme is idempotent
// and never changes a value the model chose.
func Theme(doc *Document) *Document {
	out := doc.Clone()
	for i := range out.Charts {
		themeChart(&out.Charts[i])
	}
	return out
}

func themeChart(c *Chart) {
	if c.Data != nil {
		segmented := c.Type == TypePie || c.Type == TypeDoughnut
		for i := range c.Data.Datasets {
			themeDataset(&c.Data.Datasets[i], segmented)
		}
	}

	if c.Options == nil {
		c.Options = map[string]any{}
	}
	raw, ok := c.Options["plugins"]
	if !ok {
		raw = map[string]any{}
		c.Options["plugins"] = raw
	}
	plugins, ok := raw.(map[string]any)
	if !ok {
		// Not ours to fix; leave the model's value alone.
		return
	}
	if _, ok := plugins["title"]; !ok {
		plugins["title"] = map[string]any{
			"display": true,
			"text":    c.Title,
			"color":   TitleColor,
			"font":    map[string]any{"size": TitleFontSize, "weight": TitleFontWeight},
		}
	}
	if _, ok := plugins["legend"]; !ok {
		plugins["legend"] = map[string]any{
			"display": true,
			"labels": map[string]any{
				"color": LegendColor,
				"font":  map[string]any{"size": LegendFontSize},
			},
		}
	}
}

func themeDataset(ds *Dataset, segmented bool) {
	if ds.BackgroundColor == nil {
		if segmented {
			colors := make([]string, len(ds.Data))
			for i := range colors {
				colors[i] = palette[i%len(palette)]
			}
			ds.BackgroundColor = &Color{List: colors}
		} else {
			ds.BackgroundColor = &Color{Single: DefaultBackgroundColor}
		}
	}
	if ds.BorderColor == nil {
		s := DefaultBorderColor
		ds.BorderColor = &s
	}
	if ds.BorderWidth == nil {
		w := DefaultBorderWidth
		ds.BorderWidth = &w
	}
}
