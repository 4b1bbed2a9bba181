package services

import (
	"encoding/binary"
	"math"
	"nearest-route-service/internal/domain"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// RouteKey digests a solve input into a cache key.
// Point order is part of the key because it decides tie-breaking.
// A nil endpoint hashes differently from any concrete point.
func RouteKey(start, end *domain.Point, points []domain.Point) string {
	d := xxhash.New()
	var buf [8]byte

	writeFloat := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = d.Write(buf[:])
	}
	writeEndpoint := func(p *domain.Point) {
		if p == nil {
			_, _ = d.Write([]byte{0})
			return
		}
		_, _ = d.Write([]byte{1})
		writeFloat(p.X)
		writeFloat(p.Y)
	}

	writeEndpoint(start)
	writeEndpoint(end)
	binary.LittleEndian.PutUint64(buf[:], uint64(len(points)))
	_, _ = d.Write(buf[:])
	for _, p := range points {
		writeFloat(p.X)
		writeFloat(p.Y)
	}

	return strconv.FormatUint(d.Sum64(), 16)
}
