package simdmath

import "testing"

func TestDivBatchComputesElementwiseQuotient(t *testing.T) {
	out := make([]float64, 1)
	DivBatch([]float64{10}, []float64{4}, out)
	if out[0] != 2.5 {
		t.Errorf("got %v, want 2.5", out[0])
	}
}

func TestDivBatchZeroDenominatorIsZero(t *testing.T) {
	out := make([]float64, 1)
	DivBatch([]float64{10}, []float64{0}, out)
	if out[0] != 0 {
		t.Errorf("got %v, want 0", out[0])
	}
}

func TestComputeTicksAtZeroTickIsFrameZeroWithZeroMix(t *testing.T) {
	ticks := ComputeTicks(0, []int{0}, []int{1}, []int{64}, []int{4})
	if len(ticks) != 1 {
		t.Fatalf("expected one tick result")
	}
	tk := ticks[0]
	if tk.Below != 0 || tk.Mix != 0 {
		t.Errorf("got %+v, want below=0 mix=0", tk)
	}
}

func TestComputeTicksAtHalfwayMixesTowardNextFrame(t *testing.T) {
	ticks := ComputeTicks(32, []int{0}, []int{1}, []int{64}, []int{4})
	tk := ticks[0]
	if tk.Below != 0 || tk.Above != 1 {
		t.Fatalf("got %+v, want below=0 above=1", tk)
	}
	if tk.Mix != 0.5 {
		t.Errorf("got mix %v, want 0.5", tk.Mix)
	}
}

func TestComputeTicksAtFullFrameDistanceAdvancesFrame(t *testing.T) {
	ticks := ComputeTicks(64, []int{0}, []int{1}, []int{64}, []int{4})
	tk := ticks[0]
	if tk.Below != 1 || tk.Mix != 0 {
		t.Errorf("got %+v, want below=1 mix=0", tk)
	}
}
