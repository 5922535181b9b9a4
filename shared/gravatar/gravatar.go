// Package gravatar derives avatar URLs from email addresses.
package gravatar

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"
)

const baseURL = "https://www.gravatar.com/avatar/"

// Options controls the image returned by the avatar service.
type Options struct {
	Size    int    // s
	Rating  string // r
	Default string // d
}

// DefaultOptions are the avatar settings used for new accounts.
var DefaultOptions = Options{Size: 200, Rating: "pg", Default: "mm"}

// URL returns the avatar URL for email. It performs no network call.
func URL(email string, opts Options) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))

	q := url.Values{}
	if opts.Size > 0 {
		q.Set("s", strconv.Itoa(opts.Size))
	}
	if opts.Rating != "" {
		q.Set("r", opts.Rating)
	}
	if opts.Default != "" {
		q.Set("d", opts.Default)
	}

	u := baseURL + hex.EncodeToString(sum[:])
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	return u
}
