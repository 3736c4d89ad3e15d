package zpl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeSplitsOnIntroducers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "simple label",
			src:  "^XA^FO10,20^FDHI^FS^XZ",
			want: []string{"^XA", "^FO10,20", "^FDHI", "^FS", "^XZ"},
		},
		{
			name: "tilde commands",
			src:  "~DGR:IMG.GRF,8,1,FF00~DYR:L.PNG,P,P,4,,,AA",
			want: []string{"~DGR:IMG.GRF,8,1,FF00", "~DYR:L.PNG,P,P,4,,,AA"},
		},
		{
			name: "vertical whitespace stripped",
			src:  "^XA\n^FO1,2\r\n^FDX\x0b^FS\x0c^XZ\n",
			want: []string{"^XA", "^FO1,2", "^FDX", "^FS", "^XZ"},
		},
		{
			name: "leading material discarded",
			src:  "garbage^XA^XZ",
			want: []string{"^XA", "^XZ"},
		},
		{
			name: "empty input",
			src:  "",
			want: nil,
		},
		{
			name: "introducer at end",
			src:  "^XA^",
			want: []string{"^XA", "^"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Tokenize(tt.src))
		})
	}
}

// Concatenating the tokens of a document that starts with an introducer
// reproduces the cleaned input.
func TestTokenizeRoundTrip(t *testing.T) {
	src := "^XA\n^LH5,5^FO10,20^A0N,30,20\n^FDHello, world^FS\n^GB100,50,3,B^FS^XZ"
	cleaned := stripVertical(src)
	require.Equal(t, cleaned, strings.Join(Tokenize(src), ""))
}

func TestStripVertical(t *testing.T) {
	require.Equal(t, "abc", stripVertical("a\nb\r\x0b\x0cc"))
	require.Equal(t, "a b\tc", stripVertical("a b\tc"), "horizontal whitespace is data")
}
