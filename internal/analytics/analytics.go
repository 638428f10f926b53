package analytics

import (
	"cmp"
	"math"
	"slices"

	"github.com/p-shah256/bridge/pkg/types"
)

const topN = 5

// JobStats summarises a set of jobs. Callers pass the active jobs.
func JobStats(jobs []types.JobOpportunity) types.JobStats {
	stats := types.JobStats{
		TotalJobs:     len(jobs),
		TopCountries:  []types.CountryCount{},
		TopIndustries: []types.IndustryCount{},
	}

	countries := map[string]int{}
	industries := map[string]int{}
	for _, job := range jobs {
		if job.VisaSponsorship {
			stats.VisaSponsorshipJobs++
		}
		countries[job.Country]++
		industries[job.Industry]++
	}

	if stats.TotalJobs > 0 {
		stats.VisaSponsorshipPercentage = int(math.Round(float64(stats.VisaSponsorshipJobs) / float64(stats.TotalJobs) * 100))
	}

	for _, kc := range top(countries) {
		stats.TopCountries = append(stats.TopCountries, types.CountryCount{Country: kc.key, Count: kc.count})
	}
	for _, kc := range top(industries) {
		stats.TopIndustries = append(stats.TopIndustries, types.IndustryCount{Industry: kc.key, Count: kc.count})
	}
	return stats
}

type keyCount struct {
	key   string
	count int
}

// top returns the topN entries by count desc, ties broken by key asc.
func top(counts map[string]int) []keyCount {
	out := make([]keyCount, 0, len(counts))
	for k, c := range counts {
		out = append(out, keyCount{k, c})
	}
	slices.SortFunc(out, func(a, b keyCount) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.key, b.key)
	})
	return out[:min(topN, len(out))]
}
