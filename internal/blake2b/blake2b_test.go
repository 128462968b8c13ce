package blake2b

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestKnownAnswer512(t *testing.T) {
	cases := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "empty",
			input: nil,
			want:  "786a02f742015903c6c6fd852552d272912f4740e15847618a86e217f71f5419d25e1031afee585313896444934eb04b903a685b1448b755d56f701afe9be8",
		},
		{
			name:  "abc",
			input: []byte("abc"),
			want:  "ba80a53f981c4d0d6a2797b69f12f6e94c212f14685ac4b74b12bb6fdbffa2d17d87c5392aab792dc252d5de4533cc9518d38aa8dbf1925ab92386edd4009923",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Sum512(c.input)
			want := mustHex(c.want)
			if !bytes.Equal(got[:], want) {
				t.Errorf("Sum512(%q) = %x, want %x", c.input, got, want)
			}
		})
	}
}

func TestSumOutputLengths(t *testing.T) {
	for size := 1; size <= MaxOutput; size++ {
		out := make([]byte, size)
		if err := Sum(out, nil, []byte("argon2")); err != nil {
			t.Fatalf("Sum(size=%d): %v", size, err)
		}
	}
}

func TestSumRejectsBadLengths(t *testing.T) {
	if err := Sum(make([]byte, 0), nil, nil); err == nil {
		t.Error("expected error for zero-length output")
	}
	if err := Sum(make([]byte, MaxOutput+1), nil, nil); err == nil {
		t.Error("expected error for output over MaxOutput")
	}
}

func TestKeyedHashDiffersFromUnkeyed(t *testing.T) {
	var unkeyed, keyed [64]byte
	if err := Sum(unkeyed[:], nil, []byte("message")); err != nil {
		t.Fatal(err)
	}
	if err := Sum(keyed[:], []byte("secret-key"), []byte("message")); err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(unkeyed[:], keyed[:]) {
		t.Error("keyed and unkeyed digests should not collide")
	}
}

func TestSumDeterministic(t *testing.T) {
	var a, b [32]byte
	if err := Sum(a[:], nil, []byte("repeat me")); err != nil {
		t.Fatal(err)
	}
	if err := Sum(b[:], nil, []byte("repeat me")); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a[:], b[:]) {
		t.Error("Sum is not deterministic")
	}
}

func TestMultiBlockInput(t *testing.T) {
	// Exercise the streaming compress() loop across several 128-byte blocks.
	data := bytes.Repeat([]byte{0x42}, BlockSize*3+17)
	var out [64]byte
	if err := Sum(out[:], nil, data); err != nil {
		t.Fatal(err)
	}
	if out == ([64]byte{}) {
		t.Error("digest of non-trivial input should not be all zero")
	}
}
