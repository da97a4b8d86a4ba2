package service

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"upvotes_analyzer/internal/models"
)

// CacheKey — режим не входит в ключ: все режимы дают одинаковый результат.
func CacheKey(req models.AnalyzeRequest) string {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range req.Values {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = d.Write(buf[:])
	}
	return fmt.Sprintf("wm:%d:%d:%016x", req.N, req.K, d.Sum64())
}
