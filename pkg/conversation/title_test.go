package conversation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"ten words", "a b c d e f g h i j", "a b c d e f g h..."},
		{"five words", "I feel anxious about exams", "I feel anxious about exams"},
		{"exactly eight words", "one two three four five six seven eight", "one two three four five six seven eight"},
		{"long words truncated", "extraordinarily overwhelming circumstances surrounding everything", "extraordinarily overwhelming circumstanc"},
		{"long and many words", "supercalifragilistic expialidocious wonderfully amazing a b c d e", "supercalifragilistic expialidocious wond..."},
		{"single word", "hello", "hello"},
		{"double space counts as empty word", "a  b c d e f g h", "a  b c d e f g..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveTitle(tt.message)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveTitle_Deterministic(t *testing.T) {
	msg := "I have been struggling to sleep for weeks now and I do not know why"
	assert.Equal(t, DeriveTitle(msg), DeriveTitle(msg))
}

func TestDeriveTitle_TruncatesByCharacterNotByte(t *testing.T) {
	msg := strings.Repeat("é", 50)
	got := DeriveTitle(msg)
	assert.Equal(t, 40, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}
