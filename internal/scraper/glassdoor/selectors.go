package glassdoor

// CSS selectors for the rendered Glassdoor pages. Any markup change on the
// site breaks extraction here first.
const (
	// Job listing page
	JobLinkSelector = `.jobsList__JobsListStyles__jobListContainer a[href]`

	// Job detail page
	JobTitleSelector    = `#JDCol [data-test*="jobTitle"]`
	JobLocationSelector = `#JDCol [data-test*="location"]`
	JobEmployerSelector = `#JDCol [data-test*="employerName"]`
	JobRatingSelector   = `#JDCol [data-test*="detailRating"]`

	// Salary listing page
	SalaryLinkSelector = `#SalariesRef a[href]`

	// Salary detail page
	SalaryTitleSelector  = `.ReactEISalariesDetailPage h1`
	SalaryAmountSelector = `.ReactEISalariesDetailPage h2`
)

// Salary detail titles read "Salaires d'un <role> chez <group>".
const (
	salaryTitlePrefix = "Salaires d'un "
	salaryTitleJoin   = " chez "
)
