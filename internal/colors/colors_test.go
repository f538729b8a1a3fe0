package colors

import (
	"errors"
	"image/color"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Triplet
		wantErr bool
	}{
		{"with prefix", "#FF00AA", Triplet{255, 0, 170}, false},
		{"without prefix", "FF00AA", Triplet{255, 0, 170}, false},
		{"lowercase", "#ff00aa", Triplet{255, 0, 170}, false},
		{"mixed case", "1a2B3c", Triplet{0x1A, 0x2B, 0x3C}, false},
		{"black", "#000000", Triplet{}, false},
		{"invalid digit", "#GG0000", Triplet{}, true},
		{"invalid blue", "#0000ZZ", Triplet{}, true},
		{"too short", "#FFF", Triplet{}, true},
		{"empty", "", Triplet{}, true},
		{"prefix only", "#", Triplet{}, true},
		{"trailing characters", "#FF00AA00", Triplet{}, true},
		{"sign", "+F0000", Triplet{}, true},
		{"double prefix", "##FF00AA", Triplet{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Decode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodePrefixInvariant(t *testing.T) {
	for _, hex := range []string{"000000", "FFFFFF", "123456", "abcdef", "0f0F0f"} {
		a, errA := Decode(hex)
		b, errB := Decode("#" + hex)
		if errA != nil || errB != nil {
			t.Fatalf("Decode(%q) errors: %v, %v", hex, errA, errB)
		}
		if a != b {
			t.Errorf("Decode(%q) = %v, Decode(%q) = %v", hex, a, "#"+hex, b)
		}
	}
}

func TestDecodeParseError(t *testing.T) {
	_, err := Decode("#00GG00")
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Decode() error = %T, want *ParseError", err)
	}
	if pe.Offset != 2 {
		t.Errorf("ParseError.Offset = %d, want 2", pe.Offset)
	}
	if pe.Input != "#00GG00" {
		t.Errorf("ParseError.Input = %q, want %q", pe.Input, "#00GG00")
	}

	_, err = Decode("abc")
	if !errors.Is(err, ErrLength) {
		t.Errorf("Decode(%q) error = %v, want ErrLength", "abc", err)
	}
}

func TestMustDecodePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustDecode() with invalid input did not panic")
		}
	}()
	MustDecode("nope")
}

func TestTripletConversions(t *testing.T) {
	tr := Triplet{R: 0x12, G: 0xAB, B: 0xFF}
	if got := tr.String(); got != "#12ABFF" {
		t.Errorf("String() = %q, want %q", got, "#12ABFF")
	}
	if got := tr.RGBA(); got != (color.RGBA{0x12, 0xAB, 0xFF, 0xFF}) {
		t.Errorf("RGBA() = %v", got)
	}
	if got := FromColor(tr.RGBA()); got != tr {
		t.Errorf("FromColor(RGBA()) = %v, want %v", got, tr)
	}
	if tr.IsBlack() || !Black.IsBlack() {
		t.Error("IsBlack() mismatch")
	}
}

func TestPaletteColor(t *testing.T) {
	p := Palette{Off: Black, On: Triplet{R: 200, G: 100, B: 0}, Levels: 4}

	if got := p.Color(0); got != Black {
		t.Errorf("Color(0) = %v, want %v", got, Black)
	}
	if got := p.Color(4); got != p.On {
		t.Errorf("Color(4) = %v, want %v", got, p.On)
	}
	if got := p.Color(9); got != p.On {
		t.Errorf("Color(9) = %v, want %v", got, p.On)
	}

	mid := p.Color(2)
	if mid == p.Off || mid == p.On {
		t.Errorf("Color(2) = %v, want a blend", mid)
	}
	if lo, hi := p.Color(1), p.Color(3); lo == hi {
		t.Errorf("Color(1) = Color(3) = %v, want distinct levels", lo)
	}

	binary := Palette{Off: Black, On: p.On, Levels: 1}
	if got := binary.Color(1); got != p.On {
		t.Errorf("binary Color(1) = %v, want %v", got, p.On)
	}
}
