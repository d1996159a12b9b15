package stats

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgbpack/pack"
)

func TestEntropy(t *testing.T) {
	tests := []struct {
		in   []byte
		want float64
	}{
		{nil, 0},
		{[]byte{5, 5, 5, 5}, 0},
		{[]byte{0, 1}, 1},
		{[]byte{0, 1, 2, 3}, 2},
		{[]byte{0, 0, 0, 1}, -(0.75*math.Log2(0.75) + 0.25*math.Log2(0.25))},
	}
	for _, tt := range tests {
		if got := Entropy(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Entropy(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLiteralEntropyBound(t *testing.T) {
	// On repetitive pixel data the literals that remain carry no more
	// entropy than the original sequence. This does not hold for every
	// input: short text can leave a more even spread of literals.
	var stripes []byte
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			stripes = append(stripes, byte(x/4*60), byte(y*20), 200)
		}
	}
	inputs := [][]byte{
		bytes.Repeat([]byte{1, 2, 3, 4}, 100),
		bytes.Repeat([]byte{9}, 50),
		stripes,
	}
	for _, in := range inputs {
		tokens, err := pack.Encode(in, 20)
		if err != nil {
			t.Fatal(err)
		}
		r := NewReport(in, tokens, 0, 0)
		if r.Matches == 0 {
			t.Fatalf("%q: expected some matches", in)
		}
		if r.EncodedEntropy > r.OriginalEntropy+1e-9 {
			t.Fatalf("%q: literal entropy %v exceeds original %v", in, r.EncodedEntropy, r.OriginalEntropy)
		}
	}
}

func TestReport(t *testing.T) {
	in := []byte{1, 1, 1, 1, 1}
	tokens, _ := pack.Encode(in, 3)
	r := NewReport(in, tokens, 300, 100)
	if r.Tokens != 3 || r.Matches != 2 || r.Literals != 2 {
		t.Fatalf("counts: %+v", r)
	}
	if r.Ratio() != 3 {
		t.Fatalf("ratio %v, want 3", r.Ratio())
	}
	if r.Redundancy() != 0 {
		// Both entropies are zero.
		t.Fatalf("redundancy %v, want 0", r.Redundancy())
	}

	r = Report{OriginalEntropy: 4, EncodedEntropy: 3}
	if r.Redundancy() != 25 {
		t.Fatalf("redundancy %v, want 25", r.Redundancy())
	}
	if r.Ratio() != 0 {
		t.Fatalf("ratio with nothing encoded: %v", r.Ratio())
	}

	var b strings.Builder
	if _, err := r.WriteTo(&b); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "Redundancy: 25.00%") {
		t.Fatalf("report text:\n%s", b.String())
	}
	if r.Fields()["redundancy"] != 25.0 {
		t.Fatalf("fields: %v", r.Fields())
	}
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "f")
	if err := os.WriteFile(name, make([]byte, 123), 0o644); err != nil {
		t.Fatal(err)
	}
	if n := FileSize(name); n != 123 {
		t.Fatalf("got %d", n)
	}
	if n := FileSize(filepath.Join(dir, "missing")); n != 0 {
		t.Fatalf("missing file: got %d", n)
	}
}

func TestWriteChart(t *testing.T) {
	tokens := []pack.Token{
		pack.Literal(1),
		pack.NewMatch(0, 1, 2),
		pack.NewMatch(0, 2, 2),
		pack.NewMatch(1, 2, 3),
		pack.FinalMatch(0, 5),
	}
	hist := Histogram(tokens)
	if hist[2] != 2 || hist[1] != 1 || hist[5] != 1 {
		t.Fatalf("histogram %v", hist)
	}

	var b bytes.Buffer
	if err := WriteChart(&b, hist); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(b.Bytes(), []byte("<svg")) {
		t.Fatal("output is not SVG")
	}

	if err := WriteChart(&b, map[int]int{3: 1}); err != ErrNotEnoughData {
		t.Fatalf("want ErrNotEnoughData, got %v", err)
	}
}
