// Utilities for parsing cURL commands.
package shared

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
)

var (
	curlHeaderRegex = regexp.MustCompile(`(?:-H|--header)\s+'([^']+)'|(?:-H|--header)\s+"([^"]+)"`)
	curlCookieRegex = regexp.MustCompile(`(?:-b|--cookie)\s+'([^']+)'|(?:-b|--cookie)\s+"([^"]+)"`)
	curlURLRegex    = regexp.MustCompile(`(?:^|\s)['"]?(https?://[^\s'"]+)`)
)

// curlValueFlagRegex matches flags whose values may themselves contain URLs.
var curlValueFlagRegex = regexp.MustCompile(
	`(?:^|\s)(?:-H|--header|-b|--cookie|-d|--data|--data-raw|--data-binary|--data-urlencode|-e|--referer|-A|--user-agent)\s+(?:'[^']*'|"[^"]*"|\S+)`,
)

// CurlRequest represents the URL, headers and cookies parsed from a cURL command,
// typically produced by a browser's "Copy as cURL".
type CurlRequest struct {
	URL     string
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a .sh file containing a cURL command and extracts the request.
func ParseCurlFile(filepath string) (*CurlRequest, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts its URL, headers and cookie string.
//
// A -b/--cookie flag wins over a Cookie header.
func ParseCurlCommand(data []byte) (*CurlRequest, error) {
	curlCmd := strings.ReplaceAll(string(data), "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	req := &CurlRequest{Headers: make(map[string]string)}
	var headerCookie string

	for _, match := range curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1) {
		key, value, ok := strings.Cut(firstGroup(match), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if strings.EqualFold(key, "cookie") {
			if headerCookie == "" {
				headerCookie = value
			}
			continue
		}
		req.Headers[key] = value
	}

	if match := curlCookieRegex.FindStringSubmatch(curlCmd); match != nil {
		req.Cookie = firstGroup(match)
	}
	if req.Cookie == "" {
		req.Cookie = headerCookie
	}

	if match := curlURLRegex.FindStringSubmatch(curlValueFlagRegex.ReplaceAllString(curlCmd, " ")); match != nil {
		req.URL = match[1]
	}

	if len(req.Headers) == 0 && req.Cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}
	return req, nil
}

// Cookies splits the cookie string into individual [http.Cookie] values.
//
// Malformed pairs are skipped.
func (c *CurlRequest) Cookies() []*http.Cookie {
	if c.Cookie == "" {
		return nil
	}

	var cookies []*http.Cookie
	for _, pair := range strings.Split(c.Cookie, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parsed, err := http.ParseCookie(pair)
		if err != nil {
			continue
		}
		cookies = append(cookies, parsed...)
	}
	return cookies
}

func firstGroup(match []string) string {
	for _, g := range match[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
