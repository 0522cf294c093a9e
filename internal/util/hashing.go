package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"quadix/pkg/container/quadtree"
)

// HashQuery derives a stable cache key from the index generation and a query
// region.
func HashQuery(generation uint64, r quadtree.Rect) string {
	buffer := GetBytesBuffer()
	defer PutBytesBuffer(buffer)
	defer buffer.Reset()
	buffer.WriteString(strconv.FormatUint(generation, 10))
	for _, v := range [4]float64{r.X, r.Y, r.Width, r.Height} {
		buffer.WriteString(strconv.FormatFloat(v, 'g', 16, 64))
	}
	sum := sha256.Sum256(buffer.Bytes())
	return hex.EncodeToString(sum[:])
}
