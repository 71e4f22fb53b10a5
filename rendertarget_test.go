package refraction

import "testing"

// --- SizePolicy ---

func TestDownsampleDivisor(t *testing.T) {
	tests := []struct {
		factor, want int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{4, 4},
		{5, 8},
		{16, 16},
	}
	for _, tt := range tests {
		got := Downsample(tt.factor).Divisor()
		if got != tt.want {
			t.Errorf("Downsample(%d).Divisor() = %d, want %d", tt.factor, got, tt.want)
		}
	}
}

func TestFullResolutionIsZeroValue(t *testing.T) {
	if FullResolution() != (SizePolicy{}) {
		t.Error("FullResolution() should be the zero SizePolicy")
	}
	if FullResolution().Divisor() != 1 {
		t.Errorf("Divisor() = %d, want 1", FullResolution().Divisor())
	}
}

func TestSizePolicyResolve(t *testing.T) {
	tests := []struct {
		name         string
		policy       SizePolicy
		vw, vh       int
		wantW, wantH int
	}{
		{"full 640x480", FullResolution(), 640, 480, 640, 480},
		{"half 640x480", Downsample(2), 640, 480, 320, 240},
		{"half 1920x1080", Downsample(2), 1920, 1080, 960, 540},
		{"half odd rounds up", Downsample(2), 641, 481, 321, 241},
		{"half 1x1", Downsample(2), 1, 1, 1, 1},
		{"half 0x0", Downsample(2), 0, 0, 1, 1},
		{"full 0x0", FullResolution(), 0, 0, 1, 1},
		{"full negative", FullResolution(), -5, -5, 1, 1},
		{"quarter 3x7", Downsample(4), 3, 7, 1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.policy.Resolve(tt.vw, tt.vh)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Resolve(%d, %d) = (%d, %d), want (%d, %d)", tt.vw, tt.vh, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

// --- Pool ---

func TestPoolAcquireExactSize(t *testing.T) {
	var pool targetPool
	img := pool.acquire(100, 50)
	defer pool.release(img)

	b := img.Bounds()
	if b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("size = %dx%d, want 100x50", b.Dx(), b.Dy())
	}
}

func TestPoolAcquireClampsToOne(t *testing.T) {
	var pool targetPool
	img := pool.acquire(0, -3)
	defer pool.release(img)

	b := img.Bounds()
	if b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("size = %dx%d, want 1x1", b.Dx(), b.Dy())
	}
}

func TestPoolReleaseAndReacquire(t *testing.T) {
	var pool targetPool
	img1 := pool.acquire(64, 64)
	pool.release(img1)

	img2 := pool.acquire(64, 64)
	if img1 != img2 {
		t.Error("expected pool to return the same image after release")
	}
	pool.release(img2)
}

func TestPoolDifferentSizes(t *testing.T) {
	var pool targetPool
	a := pool.acquire(32, 32)
	b := pool.acquire(64, 64)
	if a == b {
		t.Error("different sizes should return different images")
	}
	pool.release(a)
	pool.release(b)
}

func TestPoolLiveAndIdleCounts(t *testing.T) {
	var pool targetPool
	a := pool.acquire(16, 16)
	b := pool.acquire(16, 16)
	if pool.live != 2 {
		t.Errorf("live = %d, want 2", pool.live)
	}
	pool.release(a)
	pool.release(b)
	if pool.live != 0 {
		t.Errorf("live = %d, want 0", pool.live)
	}
	if pool.idle() != 2 {
		t.Errorf("idle = %d, want 2", pool.idle())
	}
	pool.drain()
	if pool.idle() != 0 {
		t.Errorf("idle after drain = %d, want 0", pool.idle())
	}
}

func TestPoolReleaseNilNoPanic(t *testing.T) {
	var pool targetPool
	pool.release(nil) // should not panic
}
