// Package simdmath provides the batched division kernel the canvas
// sprite animator runs once per tick (spec.md §4.8, §9 design note "SIMD
// batching in canvas: express as a generic over vector width with a
// scalar fallback; select at build time").
//
// This build targets the portable scalar fallback: Width always reports 1
// so every call processes one lane at a time. The function signatures
// match what a build-tagged vector implementation (AVX2/NEON) would
// expose, so swapping one in later is a matter of adding a build-tagged
// file under this package, not changing call sites.
package simdmath

// Width reports how many lanes one batched call processes. The scalar
// fallback always reports 1; a vector build would report 4/8/16 depending
// on the target ISA's float width (spec §4.8: "power of two up to the
// SIMD width (4/8/16 floats)").
func Width() int { return 1 }

// DivBatch computes out[i] = num[i] / den[i] for i in [0, Width()), the
// four-division step spec §4.8 batches per sprite-block tick (t, below,
// mix numerator, mix denominator). den entries of zero produce 0 rather
// than panicking or propagating Inf, since a zero frame_distance means a
// single-frame sprite that never reaches this path.
func DivBatch(num, den, out []float64) {
	n := Width()
	for i := 0; i < n && i < len(num) && i < len(den) && i < len(out); i++ {
		if den[i] == 0 {
			out[i] = 0
			continue
		}
		out[i] = num[i] / den[i]
	}
}

// SpriteTick is the per-sprite per-tick quantities spec §4.8 computes:
//
//	t     = (global_tick + offset) * speed        (modulo 256)
//	below = floor(t / frame_distance) mod N
//	above = (below + 1) mod N
//	mix   = (t - below*frame_distance) / frame_distance
type SpriteTick struct {
	Below int
	Above int
	Mix   float64
}

// ComputeTicks evaluates SpriteTick for a block of sprites sharing one
// global tick, processing Width() sprites per DivBatch call — on the
// scalar fallback that's one sprite per call, but the loop shape is what
// a vector build batches across lanes.
func ComputeTicks(globalTick int, offsets, speeds []int, frameDistances []int, frameCounts []int) []SpriteTick {
	n := len(offsets)
	out := make([]SpriteTick, n)

	lane := Width()
	for start := 0; start < n; start += lane {
		end := start + lane
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			fd := frameDistances[i]
			count := frameCounts[i]
			if fd <= 0 || count <= 0 {
				continue
			}

			t := float64((globalTick+offsets[i])*speeds[i] % 256)
			if t < 0 {
				t += 256
			}

			num := []float64{t}
			den := []float64{float64(fd)}
			div := make([]float64, 1)
			DivBatch(num, den, div)

			below := int(div[0]) % count
			above := (below + 1) % count
			mixNum := []float64{t - float64(below*fd)}
			mixDen := []float64{float64(fd)}
			mixOut := make([]float64, 1)
			DivBatch(mixNum, mixDen, mixOut)

			out[i] = SpriteTick{Below: below, Above: above, Mix: mixOut[0]}
		}
	}
	return out
}
