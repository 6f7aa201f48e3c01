package dsl

import "testing"

func TestProgramEval(t *testing.T) {
	prg, err := NewProgram(`category == "club" && nsfw`, "category", "nsfw")
	if err != nil {
		t.Fatalf("NewProgram: %v", err)
	}

	tests := []struct {
		name  string
		input map[string]any
		want  bool
	}{
		{name: "both match", input: map[string]any{"category": "club", "nsfw": true}, want: true},
		{name: "category mismatch", input: map[string]any{"category": "event", "nsfw": true}, want: false},
		{name: "flag off", input: map[string]any{"category": "club", "nsfw": false}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := prg.Eval(tt.input)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgramContains(t *testing.T) {
	prg, err := NewProgram(`source.contains("eventbrite")`, "source")
	if err != nil {
		t.Fatal(err)
	}
	got, err := prg.Eval(map[string]any{"source": "www.eventbrite.com"})
	if err != nil || !got {
		t.Errorf("contains = %v, %v, want true", got, err)
	}
}

func TestProgramErrors(t *testing.T) {
	if _, err := NewProgram(`category ==`, "category"); err == nil {
		t.Error("expected compile error")
	}

	// 非布尔结果
	prg, err := NewProgram(`1 + 1`)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := prg.Eval(nil); err == nil {
		t.Error("expected error for non-boolean expression")
	}

	// 缺少变量
	prg, err = NewProgram(`category == "x"`, "category")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := prg.Eval(map[string]any{}); err == nil {
		t.Error("expected error for missing variable")
	}
}

func TestExpr(t *testing.T) {
	prg, err := NewProgram(`true`)
	if err != nil {
		t.Fatal(err)
	}
	if prg.Expr() != "true" {
		t.Errorf("Expr = %q", prg.Expr())
	}
}
