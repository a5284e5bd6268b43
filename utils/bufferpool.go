package utils

import (
	"math/bits"
	"sync"
)

var BufferSizeClass = [...]int{64, 128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768}

// SizeIndex returns the smallest size class holding n bytes, or -1 when n is
// out of the pooled range.
func SizeIndex(n int) int {
	if n <= 0 || n > 32768 {
		return -1
	}
	idx := bits.Len(uint(n))
	if idx < 7 {
		return 0
	}
	if n&(n-1) == 0 {
		return idx - 7
	}
	return idx - 6
}

// BufferPool hands out append buffers grouped by capacity class. The encoder
// draws scratch buffers from it while assembling nested length-delimited
// frames.
type BufferPool struct {
	pools [len(BufferSizeClass)]sync.Pool
}

func NewBufferPool() *BufferPool {
	var bp BufferPool
	for i, sz := range BufferSizeClass {
		size := sz
		bp.pools[i].New = func() any {
			b := make([]byte, 0, size)
			return &b
		}
	}
	return &bp
}

// Acquire returns an empty buffer with capacity for at least n bytes.
func (bp *BufferPool) Acquire(n int) []byte {
	idx := SizeIndex(n)
	if idx < 0 {
		return make([]byte, 0, n)
	}
	bufPtr := bp.pools[idx].Get().(*[]byte)
	return (*bufPtr)[:0]
}

// AcquireDefault returns an empty buffer of the smallest size class.
func (bp *BufferPool) AcquireDefault() []byte {
	bufPtr := bp.pools[0].Get().(*[]byte)
	return (*bufPtr)[:0]
}

// Release returns a buffer to the pool keyed by the largest size class its
// capacity covers. Buffers outside the pooled range are dropped.
func (bp *BufferPool) Release(b []byte) {
	c := cap(b)
	idx := SizeIndex(c)
	if idx < 0 {
		return
	}
	if BufferSizeClass[idx] > c {
		idx--
		if idx < 0 {
			return
		}
	}
	b = b[:0]
	bp.pools[idx].Put(&b)
}
