package main

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/pxscale"
)

var errEmptySource = errors.New("empty image source")

// loadSource decodes the image named by arg. arg is a path, a file:// URI,
// or, with isBase64, base64 data optionally prefixed with "data:...;base64,".
func loadSource(arg string, isBase64 bool) (*pxscale.Raster, string, error) {
	var data []byte
	var err error
	if isBase64 {
		data, err = decodeBase64(arg)
	} else {
		data, err = readPath(arg)
	}
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", errEmptySource
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	r, err := pxscale.RasterFromImage(img)
	if err != nil {
		return nil, "", err
	}
	return r, format, nil
}

// readPath reads a local path or file:// URI.
func readPath(arg string) ([]byte, error) {
	if arg == "" {
		return nil, errEmptySource
	}
	path := arg
	if strings.HasPrefix(arg, "file://") {
		u, err := url.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", arg, err)
		}
		path = u.Path
	}
	return os.ReadFile(path)
}

// decodeBase64 accepts raw base64 or a data URI and ignores whitespace.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		i := strings.Index(s, ",")
		if i < 0 {
			return nil, errors.New("data URI has no payload")
		}
		s = s[i+1:]
	}
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil, errEmptySource
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		// Unpadded input.
		if raw, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
			return raw, nil
		}
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	return data, nil
}
