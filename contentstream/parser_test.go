package contentstream

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestParseSimpleOperator tests parsing a simple operator with no operands
func TestParseSimpleOperator(t *testing.T) {
	ops, err := NewParser([]byte("q")).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := []Operation{{Operator: "q"}}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

// TestParseOperands covers every operand type in one stream
func TestParseOperands(t *testing.T) {
	input := []byte(`100 -3.5 .5 +2 (Hello) <48656C6C6F> /F1 [1 (a) /N] true false null <</K 42>> op`)
	ops, err := NewParser(input).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []Operation{{
		Operator: "op",
		Operands: []Object{
			Int(100), Real(-3.5), Real(0.5), Int(2),
			String("Hello"), String("Hello"), Name("F1"),
			Array{Int(1), String("a"), Name("N")},
			Bool(true), Bool(false), Null{},
			Dict{"K": Int(42)},
		},
	}}
	if diff := cmp.Diff(want, ops); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRealWorld(t *testing.T) {
	input := []byte(`BT
/F1 12 Tf
1 0 0 1 72 720 Tm
0 Tc
0 Tw
(The quick brown fox) Tj
0 -14 Td
(jumps over the lazy dog.) Tj
T*
(quoted) '
1 2 (dq) "
ET`)

	ops, err := NewParser(input).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	expectedOps := []string{"BT", "Tf", "Tm", "Tc", "Tw", "Tj", "Td", "Tj", "T*", "'", "\"", "ET"}
	if len(ops) != len(expectedOps) {
		t.Fatalf("expected %d operations, got %d", len(expectedOps), len(ops))
	}
	for i, expected := range expectedOps {
		if ops[i].Operator != expected {
			t.Errorf("operation %d: expected %q, got %q", i, expected, ops[i].Operator)
		}
	}
	if len(ops[10].Operands) != 3 {
		t.Errorf("expected 3 operands for \", got %d", len(ops[10].Operands))
	}
}

func TestParseStringEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  String
	}{
		{"newline", `(a\nb) Tj`, "a\nb"},
		{"parens", `(\(x\)) Tj`, "(x)"},
		{"nested", `(a(b)c) Tj`, "a(b)c"},
		{"octal", `(\101\102) Tj`, "AB"},
		{"short octal", `(\7x) Tj`, "\ax"},
		{"continuation", "(ab\\\ncd) Tj", "abcd"},
		{"unknown escape", `(\q) Tj`, "q"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ops, err := NewParser([]byte(tt.input)).Parse()
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := ops[0].Operands[0]; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseHexStringVariants(t *testing.T) {
	tests := []struct {
		input string
		want  String
	}{
		{"<41 42> Tj", "AB"},
		{"<414> Tj", "A@"},
		{"<6162> Tj", "ab"},
		{"<> Tj", ""},
	}
	for _, tt := range tests {
		ops, err := NewParser([]byte(tt.input)).Parse()
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.input, err)
		}
		if got := ops[0].Operands[0]; got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseNameEscapes(t *testing.T) {
	ops, err := NewParser([]byte("/A#20B#2fC cs")).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := ops[0].Operands[0]; got != Name("A B/C") {
		t.Errorf("got %v, want /A B/C", got)
	}
}

func TestParseComments(t *testing.T) {
	input := []byte("q % save\n1 0 0 1 0 0 cm %comment\nQ")
	ops, err := NewParser(input).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(ops))
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t "} {
		ops, err := NewParser([]byte(input)).Parse()
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", input, err)
		}
		if len(ops) != 0 {
			t.Errorf("Parse(%q) returned %d operations", input, len(ops))
		}
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := NewParser([]byte("(unclosed Tj")).Parse()
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
}

func TestNextIteratesTokens(t *testing.T) {
	p := NewParser([]byte("1 2 m"))
	var got []Token
	for {
		tok, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		got = append(got, tok)
	}
	want := []Token{{Operand: Int(1)}, {Operand: Int(2)}, {Operator: "m"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	if _, err := p.Next(); err != io.EOF {
		t.Errorf("expected io.EOF after the last token, got %v", err)
	}
}

func TestParseInlineImage(t *testing.T) {
	input := []byte("q BI /W 2 /H 2 /CS /G /BPC 8 ID \x00\xffEI EI Q")
	ops, err := NewParser(input).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ops) != 3 {
		t.Fatalf("expected 3 operations, got %d", len(ops))
	}
	bi := ops[1]
	if bi.Operator != "BI" || bi.Image == nil {
		t.Fatalf("expected BI with image, got %+v", bi)
	}
	wantParams := Dict{
		"Width":            Int(2),
		"Height":           Int(2),
		"ColorSpace":       Name("DeviceGray"),
		"BitsPerComponent": Int(8),
	}
	if diff := cmp.Diff(wantParams, bi.Image.Params); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	// the data length is known, so the EI bytes inside the data are kept
	if diff := cmp.Diff([]byte("\x00\xffEI"), bi.Image.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
	if ops[2].Operator != "Q" {
		t.Errorf("expected Q after the image, got %q", ops[2].Operator)
	}
}

func TestParseInlineImageFiltered(t *testing.T) {
	input := []byte("BI /W 4 /H 4 /F [/AHx] ID 00ff00ff> EI")
	ops, err := NewParser(input).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	img := ops[0].Image
	if diff := cmp.Diff(Array{Name("ASCIIHexDecode")}, img.Params["Filter"]); diff != "" {
		t.Errorf("filter mismatch (-want +got):\n%s", diff)
	}
	if string(img.Data) != "00ff00ff>" {
		t.Errorf("data = %q", img.Data)
	}
}

func TestParseInlineImageMissingEI(t *testing.T) {
	_, err := NewParser([]byte("BI /W 1 /H 1 /F /Fl ID xyz")).Parse()
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("expected ErrSyntax, got %v", err)
	}
}

func TestToFloat(t *testing.T) {
	if f, ok := ToFloat(Int(3)); !ok || f != 3 {
		t.Errorf("ToFloat(Int) = %v, %v", f, ok)
	}
	if f, ok := ToFloat(Real(2.5)); !ok || f != 2.5 {
		t.Errorf("ToFloat(Real) = %v, %v", f, ok)
	}
	if _, ok := ToFloat(Name("x")); ok {
		t.Error("ToFloat(Name) should fail")
	}
	if _, ok := ToFloats([]Object{Int(1), String("a")}); ok {
		t.Error("ToFloats with a string should fail")
	}
}

func TestIsRegular(t *testing.T) {
	for _, c := range []byte("abcXYZ019*'\".#") {
		if !isRegular(c) {
			t.Errorf("isRegular(%q) = false", c)
		}
	}
	for _, c := range []byte(" \n()<>[]{}/%") {
		if isRegular(c) {
			t.Errorf("isRegular(%q) = true", c)
		}
	}
}
