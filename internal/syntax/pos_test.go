package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		pos  Pos
		want string
	}{
		{NewPos(1, 1), "1:1"},
		{NewPos(12, 34), "12:34"},
		{Pos{}, "0:0"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestPosIsValid(t *testing.T) {
	if (Pos{}).IsValid() {
		t.Error("zero Pos should be invalid")
	}
	if !NewPos(1, 0).IsValid() {
		t.Error("Pos with line > 0 should be valid")
	}
}

func TestPosAccessors(t *testing.T) {
	p := NewPos(7, 9)
	if p.Line() != 7 || p.Col() != 9 {
		t.Errorf("got %d:%d, want 7:9", p.Line(), p.Col())
	}
}
