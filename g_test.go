package argon2core

import "testing"

func TestRotr64(t *testing.T) {
	if got := rotr64(1, 1); got != 1<<63 {
		t.Fatalf("rotr64(1,1) = %x, want %x", got, uint64(1)<<63)
	}
	if got := rotr64(0x8000000000000000, 63); got != 1 {
		t.Fatalf("rotr64(high bit, 63) = %x, want 1", got)
	}
}

func TestGAllZero(t *testing.T) {
	a, b, c, d := g(0, 0, 0, 0)
	if a != 0 || b != 0 || c != 0 || d != 0 {
		t.Fatalf("g(0,0,0,0) should stay all-zero, got %x %x %x %x", a, b, c, d)
	}
}

func TestGRoundChangesState(t *testing.T) {
	v := make([]uint64, 16)
	for i := range v {
		v[i] = uint64(i + 1)
	}
	before := append([]uint64(nil), v...)
	gRound(v)
	same := true
	for i := range v {
		if v[i] != before[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("gRound left the state unchanged")
	}
}

func TestGRoundDeterministic(t *testing.T) {
	v1 := make([]uint64, 16)
	v2 := make([]uint64, 16)
	for i := range v1 {
		v1[i] = uint64(i) * 7
		v2[i] = uint64(i) * 7
	}
	gRound(v1)
	gRound(v2)
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("gRound is not deterministic at index %d", i)
		}
	}
}
