package gemini

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCompleter replays canned responses in order.
type stubCompleter struct {
	responses []string
	calls     int
	prompts   []string
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.calls >= len(s.responses) {
		return "", nil
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare array", `[1,2]`, `[1,2]`},
		{"markdown fences", "```json\n[1,2]\n```", `[1,2]`},
		{"chatty preamble", `Here you go: [{"a":1}] hope that helps`, `[{"a":1}]`},
		{"no array", `nothing here`, `nothing here`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractJSONArray(tt.in))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ExtractJSONObject("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, ExtractJSONObject(`Sure! {"a":1}`))
	assert.Equal(t, "plain", ExtractJSONObject("plain"))
}

func TestDecodeArrayWithRepairFirstTry(t *testing.T) {
	ai := &stubCompleter{}

	var out []int
	err := DecodeArrayWithRepair(context.Background(), ai, "[1,2,3]", &out, "[1]", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.Zero(t, ai.calls)
}

func TestDecodeArrayWithRepairRetries(t *testing.T) {
	ai := &stubCompleter{responses: []string{"[1,2,", "[1,2,3]"}}

	var out []int
	err := DecodeArrayWithRepair(context.Background(), ai, "[1,2,!", &out, "[1]", 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, out)
	assert.Equal(t, 2, ai.calls)
	assert.Contains(t, ai.prompts[0], "Fix this invalid JSON")
}

func TestDecodeArrayWithRepairGivesUp(t *testing.T) {
	ai := &stubCompleter{responses: []string{"still broken", "nope"}}

	var out []int
	err := DecodeArrayWithRepair(context.Background(), ai, "garbage", &out, "[1]", 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not parse JSON")
	assert.Equal(t, 2, ai.calls)
}
