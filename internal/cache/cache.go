package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/ppiankov/slotparse/internal/slot"
)

// Cache stores parse results. Values are kept decoded: the JSON form of an
// instant does not survive a decode.
type Cache interface {
	Get(key string) ([]slot.Value, bool)
	Set(key string, values []slot.Value, ttl time.Duration)
	Delete(key string)
	Clear()
	Len() int
}

// Key identifies a parse call. The reference time is part of the key since
// relative expressions resolve against it.
func Key(lang string, kinds []string, ref time.Time, query string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(lang)))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(kinds, ",")))
	h.Write([]byte{0})
	h.Write([]byte(ref.Format(time.RFC3339Nano)))
	h.Write([]byte{0})
	h.Write([]byte(query))
	return "slotparse:v1:" + hex.EncodeToString(h.Sum(nil))
}
