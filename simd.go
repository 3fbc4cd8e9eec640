package atmos

import (
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-highway/hwy"
)

// SimdLevel mirrors the original's numeric get_simd_level() report: a
// coarse indicator of the widest vector ISA detected on the host CPU.
// The value is informational only — per the SIMD optionality design
// note, the arithmetic kernels below must produce the same result
// within tolerance regardless of level.
type SimdLevel int32

const (
	SimdLevelScalar SimdLevel = iota
	SimdLevelSSE2
	SimdLevelAVX2
	SimdLevelAVX512
)

// GetSimdLevel reports the widest vector ISA golang.org/x/sys/cpu detects
// on the running host. It never changes the code path taken by the
// kernels below (hwy picks its own dispatch independently); it exists
// purely so a host can log/report what hardware it's running on.
func GetSimdLevel() SimdLevel {
	if cpu.X86.HasAVX512F {
		return SimdLevelAVX512
	}
	if cpu.X86.HasAVX2 {
		return SimdLevelAVX2
	}
	return SimdLevelSSE2
}

// horizontalSum adds every lane of a short float32 run. Backed by
// hwy.Load/hwy.ReduceSum so the same code path that vectorizes on
// capable hardware also serves as the scalar fallback — per the SIMD
// optionality note, the two must agree within tolerance by construction,
// since they are the same call. Runs longer than one hardware vector are
// walked chunk-by-chunk, since hwy.Load caps a single call at MaxLanes.
func horizontalSum(xs []float32) float32 {
	lanes := hwy.MaxLanes[float32]()
	var sum float32
	for i := 0; i < len(xs); i += lanes {
		end := i + lanes
		if end > len(xs) {
			end = len(xs)
		}
		sum += hwy.ReduceSum(hwy.Load[float32](xs[i:end]))
	}
	return sum
}

// dotProduct computes the inner product of two equal-length short runs,
// e.g. moles · specificHeats for heat-capacity computation.
func dotProduct(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	lanes := hwy.MaxLanes[float32]()
	var sum float32
	for i := 0; i < n; i += lanes {
		end := i + lanes
		if end > n {
			end = n
		}
		va := hwy.Load[float32](a[i:end])
		vb := hwy.Load[float32](b[i:end])
		sum += hwy.ReduceSum(hwy.Mul(va, vb))
	}
	return sum
}

// addInto writes dst[i] = a[i] + b[i] for the overlapping prefix.
func addInto(dst, a, b []float32) {
	n := len(dst)
	if len(a) < n {
		n = len(a)
	}
	if len(b) < n {
		n = len(b)
	}
	lanes := hwy.MaxLanes[float32]()
	for i := 0; i < n; i += lanes {
		end := i + lanes
		if end > n {
			end = n
		}
		v := hwy.Add(hwy.Load[float32](a[i:end]), hwy.Load[float32](b[i:end]))
		hwy.Store(v, dst[i:end])
	}
}

// subInto writes dst[i] = a[i] - b[i] for the overlapping prefix.
func subInto(dst, a, b []float32) {
	n := len(dst)
	if len(a) < n {
		n = len(a)
	}
	if len(b) < n {
		n = len(b)
	}
	lanes := hwy.MaxLanes[float32]()
	for i := 0; i < n; i += lanes {
		end := i + lanes
		if end > n {
			end = n
		}
		v := hwy.Sub(hwy.Load[float32](a[i:end]), hwy.Load[float32](b[i:end]))
		hwy.Store(v, dst[i:end])
	}
}

// scaleInto writes dst[i] = a[i] * scalar for the overlapping prefix.
func scaleInto(dst, a []float32, scalar float32) {
	n := len(dst)
	if len(a) < n {
		n = len(a)
	}
	lanes := hwy.MaxLanes[float32]()
	sv := hwy.Set[float32](scalar)
	for i := 0; i < n; i += lanes {
		end := i + lanes
		if end > n {
			end = n
		}
		v := hwy.Mul(hwy.Load[float32](a[i:end]), sv)
		hwy.Store(v, dst[i:end])
	}
}

// copyInto writes dst[i] = src[i] for the overlapping prefix.
func copyInto(dst, src []float32) {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	lanes := hwy.MaxLanes[float32]()
	for i := 0; i < n; i += lanes {
		end := i + lanes
		if end > n {
			end = n
		}
		hwy.Store(hwy.Load[float32](src[i:end]), dst[i:end])
	}
}

// zeroFill sets every element of dst to 0.
func zeroFill(dst []float32) {
	lanes := hwy.MaxLanes[float32]()
	for i := 0; i < len(dst); i += lanes {
		end := i + lanes
		if end > len(dst) {
			end = len(dst)
		}
		hwy.Store(hwy.Zero[float32](), dst[i:end])
	}
}

// totalMolesSlice sums a tile's GasCount real species entries; split out
// of TotalMoles so the other bulk primitives can reuse the same kernel
// over arbitrary sub-slices (e.g. a remove_ratio scratch buffer).
func totalMolesSlice(moles []float32) float32 {
	return horizontalSum(moles)
}
