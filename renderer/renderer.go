package renderer

import "github.com/printfab/zplrender/label"

// Renderer turns one analyzed label into final bytes, e.g. a PNG image.
type Renderer interface {
	Render(lab label.Label) ([]byte, error)
}
