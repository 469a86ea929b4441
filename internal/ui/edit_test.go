package ui

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditPrompt_Show(t *testing.T) {
	tests := []struct {
		name    string
		initial string
		input   string
		want    string
		wantErr error
	}{
		{name: "keep initial on empty line", initial: "feat: add login", input: "\n", want: "feat: add login"},
		{name: "replace with typed line", initial: "feat: add login", input: "feat(auth): add JWT login\n", want: "feat(auth): add JWT login"},
		{name: "trims whitespace", initial: "x", input: "  fix: typo  \n", want: "fix: typo"},
		{name: "EOF", initial: "x", input: "", wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := &bytes.Buffer{}
			prompt := &EditPrompt{Prompt: "Edit the commit message:", Hint: "Press Enter to keep it unchanged."}

			got, err := prompt.Show(context.Background(), tt.initial, strings.NewReader(tt.input), output)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			outputStr := output.String()
			assert.Contains(t, outputStr, "Edit the commit message:")
			assert.Contains(t, outputStr, "Press Enter to keep it unchanged.")
			assert.Contains(t, outputStr, tt.initial)
		})
	}
}

func TestEditPrompt_EmptyInitialAndInput(t *testing.T) {
	prompt := &EditPrompt{Prompt: "Edit:"}

	_, err := prompt.Show(context.Background(), "", strings.NewReader("   \n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestEditPrompt_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prompt := &EditPrompt{Prompt: "Edit:"}
	_, err := prompt.Show(ctx, "feat: x", strings.NewReader("\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInterrupted)
}
