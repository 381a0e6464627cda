package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeURL(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		wantScore  int
		wantReason string
	}{
		{
			name:       "shortener",
			url:        "http://bit.ly/a1b2c3",
			wantScore:  25,
			wantReason: "使用短網址服務",
		},
		{
			name:       "bare ipv4 host",
			url:        "http://203.0.113.7/login",
			wantScore:  30,
			wantReason: "以 IP 位址直連",
		},
		{
			name:       "suspicious tld",
			url:        "https://secure-login.xyz/verify",
			wantScore:  12,
			wantReason: "可疑頂級網域 .xyz",
		},
		{
			name:       "punycode label",
			url:        "https://xn--fake.login.example.com/",
			wantScore:  20 + 8,
			wantReason: "含國際化網域編碼（xn--）；子網域層級過多",
		},
		{
			name:       "clean url",
			url:        "https://www.example.com/help",
			wantScore:  0,
			wantReason: "無明顯風險訊號",
		},
		{
			name:       "unparseable",
			url:        "http://%zz",
			wantScore:  0,
			wantReason: "無法解析網域",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AnalyzeURL(tt.url)
			assert.Equal(t, tt.url, got.URL)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

func TestAnalyzeURLCapped(t *testing.T) {
	// Shortener-style host with IP, deep labels, fake tld, length and @.
	long := "http://203.0.113.9/a/" + strings.Repeat("x", 70) + "@b"
	got := AnalyzeURL(long)
	assert.LessOrEqual(t, got.Score, maxURLScore)
	assert.Positive(t, got.Score)
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "bit.ly", DomainOf("http://bit.ly/abc"))
	assert.Equal(t, "www.example.com", DomainOf("www.example.com/path"))
	assert.Equal(t, "example.com", DomainOf("HTTPS://EXAMPLE.COM/X"))
	assert.Equal(t, "", DomainOf("http://%zz"))
}
