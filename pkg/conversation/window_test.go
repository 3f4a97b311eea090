package conversation

import (
	"fmt"
	"testing"

	"emoticore-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeHistory(n int) []HistoryEntry {
	h := make([]HistoryEntry, n)
	for i := range h {
		h[i] = HistoryEntry{Content: fmt.Sprintf("m%d", i), IsBot: i%2 == 1}
	}
	return h
}

func TestBuildWindow_KeepsLastTen(t *testing.T) {
	window := BuildWindow("SYS", makeHistory(15), "new")

	require.Len(t, window, 12)
	assert.Equal(t, llm.Message{Role: llm.RoleSystem, Content: "SYS"}, window[0])
	for i := 0; i < MaxHistoryEntries; i++ {
		src := i + 5
		want := llm.RoleUser
		if src%2 == 1 {
			want = llm.RoleAssistant
		}
		assert.Equal(t, fmt.Sprintf("m%d", src), window[i+1].Content)
		assert.Equal(t, want, window[i+1].Role)
	}
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "new"}, window[11])
}

func TestBuildWindow_Sizes(t *testing.T) {
	tests := []struct {
		historyLen int
		wantLen    int
	}{
		{0, 2},
		{3, 5},
		{10, 12},
		{11, 12},
		{100, 12},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("history_%d", tt.historyLen), func(t *testing.T) {
			window := BuildWindow("SYS", makeHistory(tt.historyLen), "new")
			assert.Len(t, window, tt.wantLen)
			assert.LessOrEqual(t, len(window), MaxHistoryEntries+2)
		})
	}
}

func TestBuildWindow_DoesNotMutateInput(t *testing.T) {
	history := makeHistory(12)
	_ = BuildWindow("SYS", history, "new")
	assert.Len(t, history, 12)
	assert.Equal(t, "m0", history[0].Content)
}
