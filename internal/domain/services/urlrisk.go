package services

import (
	"net/url"
	"regexp"
	"strings"

	"scamshield/internal/domain/models"
)

// Per-URL risk score cap.
const maxURLScore = 50

// Known link-shortening services.
var urlShorteners = map[string]bool{
	"bit.ly": true, "tinyurl.com": true, "t.co": true, "goo.gl": true,
	"ow.ly": true, "is.gd": true, "buff.ly": true, "adf.ly": true,
	"j.mp": true, "rb.gy": true, "cutt.ly": true, "short.io": true,
	"rebrand.ly": true, "bl.ink": true, "soo.gd": true, "s.id": true,
	"clk.sh": true, "shorturl.at": true, "tiny.cc": true, "bc.vc": true,
	"reurl.cc": true, "lihi.cc": true, "pse.is": true,
}

// TLDs disproportionately used by throwaway phishing domains.
var suspiciousTLDs = map[string]bool{
	"xyz": true, "top": true, "club": true, "work": true, "click": true,
	"link": true, "gq": true, "ml": true, "cf": true, "tk": true, "ga": true,
}

var ipv4HostPattern = regexp.MustCompile(`^\d{1,3}(\.\d{1,3}){3}$`)

// AnalyzeURL scores a single URL on domain heuristics. The function is
// pure: the score is order-independent, the reason string deterministic.
// An unparseable URL degrades to score 0 rather than failing the analysis.
func AnalyzeURL(raw string) models.SuspiciousURL {
	result := models.SuspiciousURL{URL: raw}

	host := DomainOf(raw)
	if host == "" {
		result.Reason = "無法解析網域"
		return result
	}

	score := 0
	var reasons []string
	add := func(points int, reason string) {
		score += points
		reasons = append(reasons, reason)
	}

	if urlShorteners[host] {
		add(25, "使用短網址服務")
	}
	labels := strings.Split(host, ".")
	for _, label := range labels {
		if strings.HasPrefix(label, "xn--") {
			add(20, "含國際化網域編碼（xn--）")
			break
		}
	}
	if ipv4HostPattern.MatchString(host) {
		add(30, "以 IP 位址直連")
	} else {
		if tld := labels[len(labels)-1]; suspiciousTLDs[tld] {
			add(12, "可疑頂級網域 ."+tld)
		}
		if len(labels) >= 4 {
			add(8, "子網域層級過多")
		}
	}
	if len(raw) >= 80 {
		add(6, "網址過長")
	}
	if strings.Contains(raw, "@") {
		add(10, "包含 @ 符號")
	}

	if score == 0 {
		result.Reason = "無明顯風險訊號"
		return result
	}
	if score > maxURLScore {
		score = maxURLScore
	}
	result.Score = score
	result.Reason = strings.Join(reasons, "；")
	return result
}

// DomainOf returns the lowercased hostname of a URL, or "" when it
// cannot be parsed. Bare www. URLs are tolerated.
func DomainOf(raw string) string {
	u := raw
	if strings.HasPrefix(strings.ToLower(u), "www.") {
		u = "https://" + u
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
