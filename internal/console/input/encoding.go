package input

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// LookupEncoding resolves a WHATWG encoding label such as "big5" or
// "windows-1252". An empty label or any UTF-8 label returns nil, meaning
// no conversion.
func LookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("input encoding %q: %w", label, err)
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return nil, nil
	}
	return enc, nil
}

// DecodeReader converts r from enc to UTF-8.
func DecodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// EncodeWriter converts UTF-8 written to the result into enc. Characters
// enc cannot represent are replaced rather than failing the write.
func EncodeWriter(w io.Writer, enc encoding.Encoding) io.Writer {
	if enc == nil {
		return w
	}
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder()))
}
