package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	// Model images arrive as PNG or JPEG; register both decoders.
	_ "image/jpeg"
	_ "image/png"

	"github.com/fogleman/gg"
)

// Point is a pixel coordinate on the model image.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout describes where and how invitee text is drawn on the model.
type Layout struct {
	// NameAt is the anchor point for the invitee name (text centered on it).
	NameAt Point `json:"name_at"`

	// TableAt is the anchor point for the table text. Ignored when the
	// record carries no table assignment.
	TableAt Point `json:"table_at"`

	// NameSize is the font size in points for the name (default 48).
	NameSize float64 `json:"name_size"`

	// TableSize is the font size in points for the table text (default 32).
	TableSize float64 `json:"table_size"`

	// Color is the text color as "#rgb" or "#rrggbb" hex (default black).
	Color string `json:"color"`

	// FontPath is the path to a TTF font file. When empty, the built-in
	// bitmap face is used.
	FontPath string `json:"-"`
}

// applyDefaults fills in default values for empty layout fields.
func (l *Layout) applyDefaults() {
	if l.NameSize == 0 {
		l.NameSize = 48
	}
	if l.TableSize == 0 {
		l.TableSize = 32
	}
	if l.Color == "" {
		l.Color = "#000000"
	}
}

// Validate checks the layout for out-of-range values.
func (l *Layout) Validate() error {
	if l.NameAt.X < 0 || l.NameAt.Y < 0 || l.TableAt.X < 0 || l.TableAt.Y < 0 {
		return fmt.Errorf("%w: negative coordinates", ErrInvalidLayout)
	}
	if l.NameSize < 0 || l.TableSize < 0 {
		return fmt.Errorf("%w: negative font size", ErrInvalidLayout)
	}
	if l.Color != "" {
		if _, err := parseHexColor(l.Color); err != nil {
			return err
		}
	}
	return nil
}

// Renderer composites text onto one decoded model image. It is safe for
// concurrent use: each Render call draws on its own context.
type Renderer struct {
	model  image.Image
	layout Layout
	color  color.Color
}

// New decodes the model image and prepares a renderer with the given
// layout. Layout defaults are applied before validation.
func New(model []byte, layout Layout) (*Renderer, error) {
	layout.applyDefaults()
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(model))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}

	c, err := parseHexColor(layout.Color)
	if err != nil {
		return nil, err
	}

	return &Renderer{model: img, layout: layout, color: c}, nil
}

// Bounds returns the model image dimensions, used by callers to validate
// that layout coordinates land on the canvas.
func (r *Renderer) Bounds() (width, height int) {
	b := r.model.Bounds()
	return b.Dx(), b.Dy()
}

// Render draws the name and table text onto a copy of the model and
// returns the result as PNG bytes.
func (r *Renderer) Render(name, table string) ([]byte, error) {
	dc := gg.NewContextForImage(r.model)
	dc.SetColor(r.color)

	if err := r.drawText(dc, name, r.layout.NameAt, r.layout.NameSize); err != nil {
		return nil, err
	}
	if table != "" {
		if err := r.drawText(dc, table, r.layout.TableAt, r.layout.TableSize); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return buf.Bytes(), nil
}

// drawText renders one string centered on its anchor point.
func (r *Renderer) drawText(dc *gg.Context, text string, at Point, size float64) error {
	if r.layout.FontPath != "" {
		if err := dc.LoadFontFace(r.layout.FontPath, size); err != nil {
			return fmt.Errorf("%w: %v", ErrFontNotFound, err)
		}
	}
	dc.DrawStringAnchored(text, at.X, at.Y, 0.5, 0.5)
	return nil
}

// parseHexColor parses "#rgb" and "#rrggbb" notations.
func parseHexColor(s string) (color.Color, error) {
	var c color.RGBA
	c.A = 0xff

	switch len(s) {
	case 7: // #rrggbb
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
	case 4: // #rgb
		if _, err := fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		c.R *= 0x11
		c.G *= 0x11
		c.B *= 0x11
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}
