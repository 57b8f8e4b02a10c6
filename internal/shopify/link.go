package shopify

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	linkTargetPattern = regexp.MustCompile(`^\s*<([^>]*)>(.*)$`)
	linkRelPattern    = regexp.MustCompile(`(?i);\s*rel\s*=\s*(?:"([^"]*)"|([^\s;,]+))`)
)

// NextCursor extracts the page_info token of the rel="next" entry from Link
// header values. It returns "" when there is no next page.
//
//	Link: <https://shop.myshopify.com/admin/api/2024-01/products.json?limit=50&page_info=abc>; rel="next"
func NextCursor(linkHeaders []string) string {
	for _, header := range linkHeaders {
		for _, part := range strings.Split(header, ",") {
			match := linkTargetPattern.FindStringSubmatch(part)
			if match == nil || !hasRel(match[2], "next") {
				continue
			}

			target, err := url.Parse(strings.TrimSpace(match[1]))
			if err != nil {
				continue
			}
			if cursor := target.Query().Get("page_info"); cursor != "" {
				return cursor
			}
		}
	}
	return ""
}

// hasRel reports whether the link parameters carry the given relation type.
func hasRel(params, rel string) bool {
	for _, m := range linkRelPattern.FindAllStringSubmatch(params, -1) {
		value := m[1]
		if value == "" {
			value = m[2]
		}
		for _, r := range strings.Fields(value) {
			if strings.EqualFold(r, rel) {
				return true
			}
		}
	}
	return false
}
