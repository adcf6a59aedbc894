package document

import (
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-calendar/internal/config"
)

// AssetKind selects the MIME fallback of an asset.
type AssetKind int

const (
	ImageAsset AssetKind = iota
	LogoAsset
)

var mimeByExt = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"svg":  "image/svg+xml",
	"webp": "image/webp",
	"bmp":  "image/bmp",
}

// MIMEType infers the content type of an asset from the extension of name.
// Unknown extensions fall back to image/jpeg for images and image/png for logos.
func MIMEType(name string, kind AssetKind) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if mime, ok := mimeByExt[ext]; ok {
		return mime
	}
	if kind == LogoAsset {
		return config.DefaultLogoMIME
	}
	return config.DefaultImageMIME
}

// Asset is an already-resolved image or logo. Err records a failure of the
// caller to obtain the bytes; such assets are skipped with a warning.
type Asset struct {
	Name string
	Data []byte
	MIME string
	Err  error
}

// NewAsset wraps raw bytes, inferring the MIME type from name.
func NewAsset(name string, data []byte, kind AssetKind) *Asset {
	return &Asset{Name: name, Data: data, MIME: MIMEType(name, kind)}
}

// FailedAsset records an asset that could not be read.
func FailedAsset(name string, err error) *Asset {
	return &Asset{Name: name, Err: err}
}

// DataURI embeds the asset in a data: URL.
func (a *Asset) DataURI() string {
	return "data:" + a.MIME + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

func (a *Asset) usable() error {
	if a.Err != nil {
		return a.Err
	}
	if len(a.Data) == 0 {
		return errors.New(config.ErrAssetEmpty)
	}
	return nil
}
