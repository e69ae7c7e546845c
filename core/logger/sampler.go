package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// ratioSampler passes the first numerator events of every denominator-sized window.
// A zero ratio disables sampling.
type ratioSampler struct {
	ratio atomic.Uint64 // numerator<<32 | denominator
	seq   atomic.Uint64
}

func newRatioSampler(numerator, denominator int) *ratioSampler {
	s := new(ratioSampler)
	s.Set(numerator, denominator)
	return s
}

// Set replaces the ratio and restarts the window.
func (s *ratioSampler) Set(numerator, denominator int) {
	var packed uint64
	if numerator > 0 && denominator > 0 {
		packed = uint64(uint32(min(numerator, denominator)))<<32 | uint64(uint32(denominator))
	}
	s.ratio.Store(packed)
	s.seq.Store(0)
}

// Allow reports whether the next event passes.
func (s *ratioSampler) Allow() bool {
	r := s.ratio.Load()
	if r == 0 {
		return true
	}
	num, den := r>>32, r&0xffffffff
	return (s.seq.Add(1)-1)%den < num
}

// parseRatioSpec accepts "n/d" or "d" (meaning 1/d). Anything else disables sampling.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if n, d, ok := strings.Cut(spec, "/"); ok {
		num, err1 := strconv.Atoi(strings.TrimSpace(n))
		den, err2 := strconv.Atoi(strings.TrimSpace(d))
		if err1 != nil || err2 != nil {
			return 0, 0
		}
		return num, den
	}
	if d, err := strconv.Atoi(spec); err == nil && d > 0 {
		return 1, d
	}
	return 0, 0
}
