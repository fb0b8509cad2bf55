package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/blockpath/internal/scene"
)

const eps = 1e-12

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func newPool() *scene.Pool {
	return scene.NewDetachedPool(scene.OrdinaryBlocks)
}

func TestPlaceBlockCoordinates(t *testing.T) {
	opts := DefaultOptions()
	pool := newPool()

	tests := []struct {
		name  string
		step  int
		shift Shift
		x, y  float64
	}{
		{"origin", 0, ShiftCenter, 0, 0},
		{"step 3 center", 3, ShiftCenter, 0, 0.1*3 - 0.002469135802*3},
		{"step 5 right", 5, ShiftRight, 0.05 - 0.001234567901, 0.1*5 - 0.002469135802*5},
		{"step 5 left", 5, ShiftLeft, -0.05 + 0.001234567901, 0.1*5 - 0.002469135802*5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pool.HideAll()
			PlaceBlock(pool, 2, tc.step, tc.shift, opts)
			b := pool.At(2)
			if b.Hidden {
				t.Error("placed block should be visible")
			}
			if !approx(b.Position.X, tc.x) {
				t.Errorf("X = %.12f, expected %.12f", b.Position.X, tc.x)
			}
			if !approx(b.Position.Y, tc.y) {
				t.Errorf("Y = %.12f, expected %.12f", b.Position.Y, tc.y)
			}
		})
	}
}

func TestRequiredBlocks(t *testing.T) {
	tests := []struct {
		steps, maxRun, expected int
	}{
		{0, 1, 1},
		{1, 1, 2},   // single + home
		{2, 1, 4},   // S D + home
		{10, 1, 16}, // 5 doubles
		{15, 1, 23}, // 7 doubles
		{15, 2, 26}, // 10 doubles, fills the pool exactly
		{15, 0, 16}, // doubles disabled
		{2 * scene.OrdinaryBlocks, 0, 2*scene.OrdinaryBlocks + 1},
	}

	for _, tc := range tests {
		got := RequiredBlocks(tc.steps, tc.maxRun)
		if got != tc.expected {
			t.Errorf("RequiredBlocks(%d, %d) = %d, expected %d", tc.steps, tc.maxRun, got, tc.expected)
		}
	}
}

func TestGenerateAllSingles(t *testing.T) {
	pool := newPool()
	pool.HideAll()

	seq := NewSequence(0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9, 0.9)
	if err := Generate(pool, 10, seq, DefaultOptions()); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	snap := Capture(pool, DefaultOptions())
	if snap.BlockCount() != 10 {
		t.Fatalf("expected 10 blocks, got %d", snap.BlockCount())
	}
	if snap.Doubles() != 0 {
		t.Errorf("expected no doubles, got %d", snap.Doubles())
	}
	for i, b := range snap.Blocks {
		if b.Index != i || b.Step != i || b.Shift != ShiftCenter {
			t.Errorf("block %d: got index=%d step=%d shift=%v", i, b.Index, b.Step, b.Shift)
		}
	}
	if snap.Home == nil || snap.Home.Step != 10 || snap.Home.X != 0 {
		t.Errorf("home should be centered at step 10, got %+v", snap.Home)
	}

	// block-11 .. block-25 stay hidden
	for i := 10; i < scene.OrdinaryBlocks; i++ {
		if !pool.At(i).Hidden {
			t.Errorf("block %s should be hidden", pool.At(i).Name)
		}
	}
}

func TestGenerateDrawsOncePerStep(t *testing.T) {
	pool := newPool()
	seq := NewSequence(0.1, 0.9, 0.3)
	if err := Generate(pool, 12, seq, DefaultOptions()); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if seq.Draws() != 12 {
		t.Errorf("expected 12 draws, got %d", seq.Draws())
	}
}

func TestGenerateFirstStepNeverDouble(t *testing.T) {
	for steps := 1; steps <= 15; steps++ {
		pool := newPool()
		pool.HideAll()
		if err := Generate(pool, steps, NewSequence(0.0), DefaultOptions()); err != nil {
			t.Fatalf("Generate(%d) failed: %v", steps, err)
		}
		sizes := Capture(pool, DefaultOptions()).StepSizes()
		if sizes[0] != 1 {
			t.Errorf("steps=%d: first step has %d blocks, expected 1", steps, sizes[0])
		}
	}
}

func TestGenerateForcedDoublesFifteenSteps(t *testing.T) {
	pool := newPool()
	pool.HideAll()

	// 0.0 asks for a double on every step; the run limit decides.
	if err := Generate(pool, 15, NewSequence(0.0), DefaultOptions()); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	snap := Capture(pool, DefaultOptions())
	count := snap.BlockCount()
	if count <= 15 || count >= 30 {
		t.Errorf("block count %d should be strictly between 15 and 30", count)
	}
	if count+1 > scene.PoolSize {
		t.Errorf("blocks used %d exceed pool size %d", count+1, scene.PoolSize)
	}
	if snap.LongestDoubleRun() > 1 {
		t.Errorf("found %d consecutive doubles", snap.LongestDoubleRun())
	}

	// Singles on even steps, doubles on odd steps
	for step, size := range snap.StepSizes() {
		expected := 1
		if step%2 == 1 {
			expected = 2
		}
		if size != expected {
			t.Errorf("step %d has %d blocks, expected %d", step, size, expected)
		}
	}
	if snap.Home == nil || snap.Home.Step != 15 {
		t.Errorf("home should be at step 15, got %+v", snap.Home)
	}
}

func TestGenerateDoubleOrder(t *testing.T) {
	pool := newPool()
	pool.HideAll()

	// step 0 forced single (index 0), step 1 double (index 1 left, 2 right)
	if err := Generate(pool, 2, NewSequence(0.0), DefaultOptions()); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if pool.At(1).Position.X >= 0 {
		t.Errorf("index 1 should be shifted left, x = %f", pool.At(1).Position.X)
	}
	if pool.At(2).Position.X <= 0 {
		t.Errorf("index 2 should be shifted right, x = %f", pool.At(2).Position.X)
	}
	if !approx(pool.At(1).Position.Y, pool.At(2).Position.Y) {
		t.Error("double blocks should share a step")
	}
}

func TestGenerateInvariantsAcrossSeeds(t *testing.T) {
	opts := DefaultOptions()
	for seed := uint64(1); seed <= 300; seed++ {
		rng := NewRNG(seed)
		for steps := 1; steps <= 15; steps++ {
			pool := newPool()
			pool.HideAll()
			if err := Generate(pool, steps, rng, opts); err != nil {
				t.Fatalf("seed=%d steps=%d: %v", seed, steps, err)
			}

			visible := len(pool.Visible())
			if visible > 2*steps+1 {
				t.Fatalf("seed=%d steps=%d: %d visible blocks exceed %d", seed, steps, visible, 2*steps+1)
			}

			snap := Capture(pool, opts)
			sizes := snap.StepSizes()
			if len(sizes) != steps {
				t.Fatalf("seed=%d steps=%d: got %d content steps", seed, steps, len(sizes))
			}
			if sizes[0] != 1 {
				t.Fatalf("seed=%d steps=%d: first step is a double", seed, steps)
			}
			for i, size := range sizes {
				if size != 1 && size != 2 {
					t.Fatalf("seed=%d steps=%d: step %d has %d blocks", seed, steps, i, size)
				}
				if i > 0 && size == 2 && sizes[i-1] == 2 {
					t.Fatalf("seed=%d steps=%d: consecutive doubles at %d", seed, steps, i)
				}
			}
			if snap.BlockCount() != steps+snap.Doubles() {
				t.Fatalf("seed=%d steps=%d: %d blocks for %d doubles", seed, steps, snap.BlockCount(), snap.Doubles())
			}
		}
	}
}

func TestGenerateLegacyDoubleRuns(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxConsecutiveDoubles = 2

	pool := newPool()
	pool.HideAll()
	if err := Generate(pool, 15, NewSequence(0.0), opts); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	snap := Capture(pool, opts)
	if snap.BlockCount() != scene.OrdinaryBlocks {
		t.Errorf("expected the full %d ordinary blocks, got %d", scene.OrdinaryBlocks, snap.BlockCount())
	}
	if snap.LongestDoubleRun() != 2 {
		t.Errorf("expected runs of 2 doubles, got %d", snap.LongestDoubleRun())
	}
}

func TestGenerateNoDoublesWhenDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxConsecutiveDoubles = 0

	pool := newPool()
	pool.HideAll()
	if err := Generate(pool, 15, NewSequence(0.0), opts); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if d := Capture(pool, opts).Doubles(); d != 0 {
		t.Errorf("expected no doubles, got %d", d)
	}
}

func TestGenerateOutOfCapacity(t *testing.T) {
	pool := scene.NewDetachedPool(5)
	pool.HideAll()

	err := Generate(pool, 10, NewSequence(0.9), DefaultOptions())
	if !errors.Is(err, ErrOutOfCapacity) {
		t.Fatalf("expected ErrOutOfCapacity, got %v", err)
	}
	if len(pool.Visible()) != 0 {
		t.Error("a rejected generation must not touch the pool")
	}
}

func TestGenerateInvalidSteps(t *testing.T) {
	err := Generate(newPool(), -1, NewSequence(), DefaultOptions())
	if !errors.Is(err, ErrInvalidSteps) {
		t.Fatalf("expected ErrInvalidSteps, got %v", err)
	}
}

func TestGenerateZeroSteps(t *testing.T) {
	pool := newPool()
	pool.HideAll()
	if err := Generate(pool, 0, NewSequence(), DefaultOptions()); err != nil {
		t.Fatalf("Generate(0) failed: %v", err)
	}
	vis := pool.Visible()
	if len(vis) != 1 || vis[0] != pool.HomeIndex() {
		t.Errorf("only home should be visible, got %v", vis)
	}
	if pool.Home().Position.Y != 0 {
		t.Errorf("home should sit at step 0, y = %f", pool.Home().Position.Y)
	}
}

func TestLayoutDefault(t *testing.T) {
	opts := DefaultOptions()
	pool := newPool()
	pool.HideAll()

	if err := LayoutDefault(pool, opts); err != nil {
		t.Fatalf("LayoutDefault() failed: %v", err)
	}

	snap := Capture(pool, opts)
	if snap.BlockCount() != 9 {
		t.Fatalf("expected 9 blocks, got %d", snap.BlockCount())
	}

	expectedSizes := []int{1, 1, 1, 2, 1, 2, 1}
	sizes := snap.StepSizes()
	if len(sizes) != len(expectedSizes) {
		t.Fatalf("StepSizes() = %v, expected %v", sizes, expectedSizes)
	}
	for i := range expectedSizes {
		if sizes[i] != expectedSizes[i] {
			t.Errorf("step %d has %d blocks, expected %d", i, sizes[i], expectedSizes[i])
		}
	}

	if pool.At(3).Position.X <= 0 || pool.At(4).Position.X >= 0 {
		t.Error("step 3 should place index 3 right and index 4 left")
	}
	if pool.At(6).Position.X <= 0 || pool.At(7).Position.X >= 0 {
		t.Error("step 5 should place index 6 right and index 7 left")
	}
	if snap.Home == nil || snap.Home.Step != DefaultHomeStep {
		t.Errorf("home should be at step %d, got %+v", DefaultHomeStep, snap.Home)
	}
	for i := 9; i < scene.OrdinaryBlocks; i++ {
		if !pool.At(i).Hidden {
			t.Errorf("block %d should be hidden", i)
		}
	}
}

func TestRNGDeterminism(t *testing.T) {
	a := NewRNG(12345)
	b := NewRNG(12345)
	for i := 0; i < 1000; i++ {
		va, vb := a.Float(), b.Float()
		if va != vb {
			t.Fatalf("draw %d differs: %f vs %f", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of range: %f", i, va)
		}
	}
}

func TestSequenceCycles(t *testing.T) {
	s := NewSequence(0.1, 0.2)
	got := []float64{s.Float(), s.Float(), s.Float()}
	if got[0] != 0.1 || got[1] != 0.2 || got[2] != 0.1 {
		t.Errorf("Sequence values = %v", got)
	}
	if NewSequence().Float() != 0 {
		t.Error("empty sequence should return 0")
	}
}

func TestMathRandSource(t *testing.T) {
	a, b := NewMathRand(9), NewMathRand(9)
	for i := 0; i < 100; i++ {
		va, vb := a.Float(), b.Float()
		if va != vb || va < 0 || va >= 1 {
			t.Fatalf("draw %d: %f vs %f", i, va, vb)
		}
	}

	pool := newPool()
	if err := Generate(pool, 15, NewMathRand(1), DefaultOptions()); err != nil {
		t.Fatalf("Generate with math/rand source failed: %v", err)
	}
	if snap := Capture(pool, DefaultOptions()); snap.LongestDoubleRun() > 1 {
		t.Errorf("LongestDoubleRun = %d", snap.LongestDoubleRun())
	}
}
