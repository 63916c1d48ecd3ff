package glassdoor

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

var apostrophes = strings.NewReplacer("’", "'", "ʼ", "'")

// normalizeText composes accents (NFC) and folds typographic apostrophes so
// literal comparisons against French page text hold.
func normalizeText(s string) string {
	return apostrophes.Replace(norm.NFC.String(s))
}

// cleanText normalizes rendered text and trims the outer whitespace.
func cleanText(s string) string {
	return strings.TrimSpace(normalizeText(s))
}

// anchorLinks returns the absolute link of every anchor matching selector, in
// document order. Anchors without an href are skipped.
func anchorLinks(doc *goquery.Document, selector, baseURL string) []string {
	var links []string
	doc.Find(selector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		links = append(links, absoluteURL(baseURL, strings.TrimSpace(href)))
	})
	return links
}

// absoluteURL prefixes a site-relative href with the site origin.
func absoluteURL(baseURL, href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return strings.TrimRight(baseURL, "/") + href
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

// cleanSalaryTitle turns "Salaires d'un Ingénieur chez Acme" into "Ingénieur".
func cleanSalaryTitle(raw, group string) string {
	title := normalizeText(raw)
	title = strings.TrimPrefix(title, salaryTitlePrefix)
	title = strings.TrimSuffix(title, salaryTitleJoin+normalizeText(group))
	return strings.TrimSpace(title)
}

// PageURL returns the salary listing URL for a zero-based page index: the
// base URL for page 0, otherwise "_P{index+1}" inserted before ".htm".
func PageURL(baseURL string, index int) string {
	if index == 0 {
		return baseURL
	}
	stem, _, _ := strings.Cut(baseURL, ".htm")
	return fmt.Sprintf("%s_P%d.htm", stem, index+1)
}
