package cache

import (
	"encoding/binary"
	"math"
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/rootfind/rootfind/internal/engine"
)

// Fingerprint identifies a set of searches by every input that affects
// their outcome. Searches are deterministic for a fixed seed, so equal
// fingerprints mean equal results. The target is identified by name only.
func Fingerprint(cfgs []engine.Config) string {
	d := xxhash.New()
	var buf [8]byte
	putF := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	putI := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	for _, c := range cfgs {
		_, _ = d.WriteString(c.Function)
		_, _ = d.Write([]byte{0})
		putF(c.DomainMin)
		putF(c.DomainMax)
		putI(uint64(c.Roots))
		putI(uint64(c.IterationCap))
		putF(c.CoarseTolerance)
		putF(c.FineTolerance)
		putF(c.TruncationConstant)
		_, _ = d.WriteString(string(c.Strategy))
		_, _ = d.Write([]byte{0})
		putI(uint64(c.MaxResamples))
		putI(uint64(c.ScanSteps))
		putI(c.Seed)
		putF(c.MinSeparation)
		putI(uint64(c.MaxRejections))
	}
	return strconv.FormatUint(d.Sum64(), 16)
}
