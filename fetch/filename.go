package fetch

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ccollins476ad/imgfetch/fileutil"
	"github.com/flytam/filenamify"
)

// unsafeChars matches every character that is not allowed in a derived
// filename.
var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// extByType maps image content types to the file extension used for
// fallback filenames. Unknown types default to ".jpg".
var extByType = map[string]string{
	"image/avif":    ".avif",
	"image/bmp":     ".bmp",
	"image/gif":     ".gif",
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/svg+xml": ".svg",
	"image/tiff":    ".tiff",
	"image/webp":    ".webp",
	"image/x-icon":  ".ico",
}

// Sanitize replaces unsafe characters in a filename with underscores. The
// result only contains characters from [A-Za-z0-9._-]. An empty result
// becomes "downloaded_image".
func Sanitize(name string) string {
	name = strings.TrimSpace(name)

	fixed, err := filenamify.Filenamify(name, filenamify.Options{Replacement: "_"})
	if err == nil {
		name = fixed
	}

	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" {
		return "downloaded_image"
	}
	return name
}

// DeriveFilename produces a safe local filename for a downloaded image.
// It prefers the last url path segment, then the content-disposition
// filename parameter, and finally falls back to a timestamped name with
// an extension guessed from the content-type.
func DeriveFilename(rawURL string, header http.Header) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		// The substring after the last "/" rather than path.Base: a
		// directory-style url ("/images/") has no usable segment and
		// must fall through to the header-based fallbacks.
		seg := parsed.Path[strings.LastIndex(parsed.Path, "/")+1:]
		if seg != "" && seg != "." {
			return Sanitize(seg)
		}
	}

	if cd := header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if fn := params["filename"]; fn != "" {
				return Sanitize(fn)
			}
		}
	}

	ctype, _, _ := mime.ParseMediaType(header.Get("Content-Type"))
	ext, ok := extByType[ctype]
	if !ok {
		ext = ".jpg"
	}
	return fmt.Sprintf("downloaded_%d%s", time.Now().Unix(), ext)
}

// AvoidCollision returns a destination path that does not clash with an
// existing file. If p already exists, a unix timestamp is inserted before
// the file extension.
func AvoidCollision(p string) string {
	if !fileutil.FileExists(p) {
		return p
	}

	ext := filepath.Ext(p)
	stem := strings.TrimSuffix(p, ext)
	return fmt.Sprintf("%s_%d%s", stem, time.Now().Unix(), ext)
}
