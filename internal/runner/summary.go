package runner

import (
	"fmt"
	"strings"

	"go-glassdoor-scraper/internal/scraper"
)

type StageSummary struct {
	Existing  int
	Collected int
	Persisted int
	Failures  []scraper.Failure
	Err       error
}

type Summary struct {
	Group    string
	Jobs     StageSummary
	Salaries StageSummary
}

// maxListedFailures caps how many failures the status message spells out.
const maxListedFailures = 5

func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏁 %s run finished\n", s.Group)
	writeStage(&b, "Jobs", s.Jobs)
	writeStage(&b, "Salaries", s.Salaries)
	return strings.TrimRight(b.String(), "\n")
}

func writeStage(b *strings.Builder, name string, st StageSummary) {
	fmt.Fprintf(b, "%s: %d collected, %d saved (%d already stored), %d failures\n",
		name, st.Collected, st.Persisted, st.Existing, len(st.Failures))
	if st.Err != nil {
		fmt.Fprintf(b, "  ❌ %v\n", st.Err)
	}
	for i, f := range st.Failures {
		if i == maxListedFailures {
			fmt.Fprintf(b, "  … %d more\n", len(st.Failures)-maxListedFailures)
			break
		}
		fmt.Fprintf(b, "  ⚠️ %v\n", f)
	}
}
