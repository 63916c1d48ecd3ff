package scrapertest

import (
	"fmt"
	"strings"
)

// JobListingHTML renders a job listing page with one anchor per href. An
// empty href renders an anchor without the attribute.
func JobListingHTML(hrefs ...string) string {
	return listing(`<div class="jobsList__JobsListStyles__jobListContainer"><ul>%s</ul></div>`, hrefs)
}

// SalaryListingHTML renders a salary listing page with one anchor per href.
func SalaryListingHTML(hrefs ...string) string {
	return listing(`<div id="SalariesRef"><ul>%s</ul></div>`, hrefs)
}

// EmptyListingHTML renders a page that has none of the listing containers.
func EmptyListingHTML() string {
	return `<html><body><p>Aucun résultat</p></body></html>`
}

func listing(container string, hrefs []string) string {
	var items strings.Builder
	for i, href := range hrefs {
		if href == "" {
			fmt.Fprintf(&items, "<li><a name=\"n%d\">no link</a></li>\n", i)
			continue
		}
		fmt.Fprintf(&items, "<li><a href=%q>item %d</a></li>\n", href, i)
	}
	return fmt.Sprintf("<html><body><a href=\"/outside\">nav</a>"+container+"</body></html>", items.String())
}

// JobDetailHTML renders a job detail page. The employer block carries the
// rating on a second line like the live site.
func JobDetailHTML(title, location, employer, rating string) string {
	return fmt.Sprintf(`<html><body>
<div id="JDCol">
  <div data-test="employerName">%s
<div class="rating">%s ★</div></div>
  <div data-test="jobTitle">%s</div>
  <div data-test="location">%s</div>
  <span data-test="detailRating">%s</span>
</div>
</body></html>`, employer, rating, title, location, rating)
}

// SalaryDetailHTML renders a salary detail page.
func SalaryDetailHTML(heading, salary string) string {
	return fmt.Sprintf(`<html><body>
<div class="ReactEISalariesDetailPage">
  <h1>%s</h1>
  <h2>%s</h2>
</div>
</body></html>`, heading, salary)
}
