package zpl

import (
	"strconv"
	"strings"

	"github.com/printfab/zplrender/label"
)

// Parameter tails are comma separated; a malformed or absent value always
// falls back to the caller's documented default, never to an error.

func splitParams(tail string) []string {
	if tail == "" {
		return nil
	}
	return strings.Split(tail, ",")
}

func strAt(params []string, i int) string {
	if i < 0 || i >= len(params) {
		return ""
	}
	return strings.TrimSpace(params[i])
}

func intAt(params []string, i, def int) int {
	s := strAt(params, i)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func floatAt(params []string, i int, def float64) float64 {
	s := strAt(params, i)
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func ynAt(params []string, i int, def bool) bool {
	switch strAt(params, i) {
	case "Y", "y":
		return true
	case "N", "n":
		return false
	}
	return def
}

// splitOrientation peels a leading orientation letter off a command tail.
// Barcode and font commands place the orientation before their comma
// separated parameters.
func splitOrientation(tail string) (label.Orientation, string) {
	if tail != "" {
		if o, ok := label.ParseOrientation(tail[0]); ok {
			return o, tail[1:]
		}
	}
	return label.OrientNormal, tail
}

// tailParams drops the separator left between an orientation (or font
// designator) and the first comma separated value.
func tailParams(rest string) []string {
	return splitParams(strings.TrimPrefix(rest, ","))
}
