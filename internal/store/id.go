package store

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
)

// newID builds a collection-prefixed identifier: prefix, millisecond
// timestamp, then a short random base-36 suffix. Unique in practice within a
// session, which is all the id contract requires.
func newID(prefix string) string {
	var buf [4]byte
	suffix := "00000"
	if _, err := rand.Read(buf[:]); err == nil {
		suffix = strconv.FormatUint(uint64(binary.BigEndian.Uint32(buf[:])), 36)
		if len(suffix) > 5 {
			suffix = suffix[:5]
		}
	}
	return fmt.Sprintf("%s%d%s", prefix, time.Now().UnixMilli(), suffix)
}
