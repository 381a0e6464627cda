package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims", "  你好  ", "你好"},
		{"crlf to lf", "第一行\r\n第二行", "第一行\n第二行"},
		{"cr to lf", "第一行\r第二行", "第一行\n第二行"},
		{"collapses spaces and tabs", "a \t  b", "a b"},
		{"collapses fullwidth space", "a　　b", "a b"},
		{"keeps newlines", "a  \nb", "a\nb"},
		{"whitespace only", " \t \n ", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}
