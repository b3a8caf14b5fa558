package tokens

import (
	"strings"
	"testing"
)

func TestGenerateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("GenerateCode err: %v", err)
		}
		if len(code) != CodeLength {
			t.Fatalf("code length: got %d want %d", len(code), CodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(digits, r) {
				t.Fatalf("non-digit %q in code %q", r, code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Fatalf("50 codes produced %d distinct values", len(seen))
	}
}

func TestGenerateTempToken(t *testing.T) {
	tok, err := GenerateTempToken()
	if err != nil {
		t.Fatalf("GenerateTempToken err: %v", err)
	}
	if len(tok) != TempTokenLength {
		t.Fatalf("token length: got %d want %d", len(tok), TempTokenLength)
	}
	for _, r := range tok {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("unexpected rune %q in token %q", r, tok)
		}
	}

	other, err := GenerateTempToken()
	if err != nil {
		t.Fatalf("GenerateTempToken err: %v", err)
	}
	if tok == other {
		t.Fatalf("two tokens collided: %q", tok)
	}
}
