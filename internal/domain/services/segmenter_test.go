package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(text string) []string {
	var out []string
	for s := range Sentences(text) {
		out = append(out, s)
	}
	return out
}

func TestSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single sentence without terminator",
			text: "這是一段沒有結尾標點的訊息",
			want: []string{"這是一段沒有結尾標點的訊息"},
		},
		{
			name: "fullwidth terminators",
			text: "第一句話完成了。第二句話也完成了！第三句話呢？",
			want: []string{"第一句話完成了。", "第二句話也完成了！", "第三句話呢？"},
		},
		{
			name: "newline separates",
			text: "上面一行的內容\n下面一行的內容",
			want: []string{"上面一行的內容", "下面一行的內容"},
		},
		{
			name: "ascii period needs trailing whitespace",
			text: "請看 http://example.com/a.b/c 然後回覆我",
			want: []string{"請看 http://example.com/a.b/c 然後回覆我"},
		},
		{
			name: "ascii sentences",
			text: "This is the first one. And the second one here.",
			want: []string{"This is the first one.", "And the second one here."},
		},
		{
			name: "short leading fragment merges forward",
			text: "好。這是一個完整的句子。",
			want: []string{"好。這是一個完整的句子。"},
		},
		{
			name: "short trailing fragment merges back",
			text: "這是一個完整的句子。好。",
			want: []string{"這是一個完整的句子。好。"},
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(tt.text))
		})
	}
}

func TestSentencesAreSubstrings(t *testing.T) {
	text := "帳戶異常！請立即登入 http://bit.ly/x 驗證。\n否則帳戶將被凍結；後果自負。"
	got := collect(text)
	require.NotEmpty(t, got)
	for _, s := range got {
		assert.True(t, strings.Contains(text, s), "segment %q not a substring", s)
		assert.Equal(t, strings.TrimSpace(s), s)
		assert.NotEmpty(t, s)
	}
}

func TestSentencesRestartable(t *testing.T) {
	seq := Sentences("第一句話完成了。第二句話也完成了。")
	first := make([]string, 0)
	for s := range seq {
		first = append(first, s)
	}
	second := make([]string, 0)
	for s := range seq {
		second = append(second, s)
	}
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestSentencesEarlyStop(t *testing.T) {
	n := 0
	for range Sentences("一句完整的話。另一句完整的話。再一句完整的話。") {
		n++
		break
	}
	assert.Equal(t, 1, n)
}
