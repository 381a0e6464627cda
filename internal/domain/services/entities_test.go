package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractEntities(t *testing.T) {
	t.Run("urls deduped and trimmed", func(t *testing.T) {
		ents := ExtractEntities("請點 http://bit.ly/abc。 再點 http://bit.ly/abc 或 www.example.com/p，")
		assert.Equal(t, []string{"http://bit.ly/abc", "www.example.com/p"}, ents.URLs)
	})

	t.Run("taiwan mobile with separators", func(t *testing.T) {
		ents := ExtractEntities("來電 0912-345-678 或 +886 912 333 444")
		assert.Contains(t, ents.Phones, "0912345678")
		assert.Contains(t, ents.Phones, "+886912333444")
	})

	t.Run("phones keep text order across forms", func(t *testing.T) {
		ents := ExtractEntities("先打 0912-345-678，不然打 +886 922 111 222")
		assert.Equal(t, []string{"0912345678", "+886922111222"}, ents.Phones)
	})

	t.Run("landline", func(t *testing.T) {
		ents := ExtractEntities("市話 02-2345-6789")
		assert.Contains(t, ents.Phones, "0223456789")
	})

	t.Run("emails", func(t *testing.T) {
		ents := ExtractEntities("回信到 support@fake-bank.example.com 謝謝")
		assert.Equal(t, []string{"support@fake-bank.example.com"}, ents.Emails)
	})

	t.Run("long numbers bounded to 10-19 digits", func(t *testing.T) {
		ents := ExtractEntities("帳號 1234567890123456 金額 500 序號 123456789")
		assert.Equal(t, []string{"1234567890123456"}, ents.LongNumbers)
	})

	t.Run("no matches gives empty lists", func(t *testing.T) {
		ents := ExtractEntities("早安，今天天氣真好")
		assert.Empty(t, ents.URLs)
		assert.Empty(t, ents.Phones)
		assert.Empty(t, ents.Emails)
		assert.Empty(t, ents.LongNumbers)
		assert.NotNil(t, ents.URLs)
	})

	t.Run("empty input", func(t *testing.T) {
		ents := ExtractEntities("")
		assert.NotNil(t, ents.URLs)
		assert.Empty(t, ents.URLs)
	})
}
