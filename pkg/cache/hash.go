package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Hash returns the hex SHA-256 digest of data. Stream hashes and file cache
// paths both use it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// renderKey returns "render:<format>:<digest>". The digest covers the stream
// hash and every option in opts; the format is repeated in clear so entries
// of one kind can be listed in Redis or MongoDB.
func renderKey(streamHash string, opts RenderKeyOpts) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00%s\x00", streamHash, opts.Format, opts.Charset, opts.ColorMode)
	for _, set := range []bool{opts.HFlip, opts.VFlip, opts.Reverse, opts.Labels} {
		b := byte('0')
		if set {
			b = '1'
		}
		h.Write([]byte{b})
	}
	return "render:" + opts.Format + ":" + hex.EncodeToString(h.Sum(nil))
}
