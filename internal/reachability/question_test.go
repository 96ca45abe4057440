package reachability

import (
	"testing"

	"github.com/xonecas/reach/internal/treesitter"
)

func TestQuestionText(t *testing.T) {
	tests := []struct {
		q    Question
		want string
		dir  treesitter.Direction
	}{
		{Question{ArgumentOrigin, "x"}, "How was `x` created?", treesitter.Backward},
		{Question{ArgumentOrigin, ""}, "How was this argument created?", treesitter.Backward},
		{Question{VariableMutation, "y"}, "How is `y` modified?", treesitter.Forward},
		{Question{VariableMutation, ""}, "How is this variable modified?", treesitter.Forward},
		{Question{NoQuestion, "z"}, "", treesitter.Forward},
	}
	for _, tt := range tests {
		if got := tt.q.Text(); got != tt.want {
			t.Errorf("%+v: Text() = %q, want %q", tt.q, got, tt.want)
		}
		if got := tt.q.Direction(); got != tt.dir {
			t.Errorf("%+v: Direction() = %v, want %v", tt.q, got, tt.dir)
		}
	}
}
