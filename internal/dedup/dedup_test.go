package dedup

import (
	"testing"

	"go-glassdoor-scraper/internal/scraper"

	"github.com/stretchr/testify/assert"
)

func TestUniqueBy_FirstOccurrenceWins(t *testing.T) {
	jobs := []scraper.JobRecord{
		{Link: "https://a", Title: "first"},
		{Link: "https://b", Title: "b"},
		{Link: "https://a", Title: "second"},
		{Link: "https://c", Title: "c"},
	}

	unique := UniqueBy(jobs, scraper.JobRecord.Key)

	assert.Len(t, unique, 3)
	assert.Equal(t, "first", unique[0].Title)
	assert.Equal(t, []string{"https://a", "https://b", "https://c"},
		[]string{unique[0].Link, unique[1].Link, unique[2].Link})
}

func TestUniqueBy_Empty(t *testing.T) {
	unique := UniqueBy([]string{}, func(s string) string { return s })
	assert.Empty(t, unique)
}

func TestLinksOf(t *testing.T) {
	salaries := []scraper.SalaryRecord{
		{Link: "https://x/1"},
		{Link: "https://x/2"},
		{Link: "https://x/1"},
	}

	set := LinksOf(salaries)

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has("https://x/2"))
	assert.False(t, set.Has("https://x/3"))
}
