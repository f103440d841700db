package stream

import (
	"sort"
	"strings"
	"time"

	"github.com/cheeseb1234/fhrss/app/provider"
)

// SelectedStream is the single video chosen as the authoritative daily
// livestream for a business date.
type SelectedStream struct {
	ID          string
	URL         string
	Title       string
	MatchedDate time.Time
}

// Selector picks the best-matching livestream for a target date.
type Selector struct {
	excludedTerms []string
}

func NewSelector(excludedTerms []string) *Selector {
	return &Selector{excludedTerms: excludedTerms}
}

// Run selects the target stream for targetDate, or nil when no candidate
// qualifies. Candidates whose title contains an excluded term are never
// considered. Among same-day uploads the longest stream wins; otherwise
// the most recent earlier upload wins, preferring longer streams among
// same-date ties. Pure function over the candidate list.
func (s *Selector) Run(candidates []provider.Candidate, targetDate time.Time) *SelectedStream {
	var eligible []provider.Candidate
	for _, candidate := range candidates {
		if s.isExcluded(candidate.Title) {
			continue
		}
		eligible = append(eligible, candidate)
	}

	var sameDay []provider.Candidate
	for _, candidate := range eligible {
		if candidate.UploadDate != nil && sameDate(*candidate.UploadDate, targetDate) {
			sameDay = append(sameDay, candidate)
		}
	}
	if len(sameDay) > 0 {
		best := sameDay[0]
		for _, candidate := range sameDay[1:] {
			if candidate.DurationSeconds > best.DurationSeconds {
				best = candidate
			}
		}
		return selected(best, targetDate)
	}

	var prior []provider.Candidate
	for _, candidate := range eligible {
		if candidate.UploadDate != nil && !afterDate(*candidate.UploadDate, targetDate) {
			prior = append(prior, candidate)
		}
	}
	if len(prior) == 0 {
		return nil
	}
	sort.SliceStable(prior, func(i, j int) bool {
		di, dj := *prior[i].UploadDate, *prior[j].UploadDate
		if !sameDate(di, dj) {
			return di.After(dj)
		}
		return prior[i].DurationSeconds > prior[j].DurationSeconds
	})
	return selected(prior[0], targetDate)
}

func (s *Selector) isExcluded(title string) bool {
	lowered := strings.ToLower(title)
	for _, term := range s.excludedTerms {
		if strings.Contains(lowered, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func selected(candidate provider.Candidate, matchedDate time.Time) *SelectedStream {
	return &SelectedStream{
		ID:          candidate.ID,
		URL:         candidate.URL,
		Title:       candidate.Title,
		MatchedDate: matchedDate,
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func afterDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay > by
	}
	if am != bm {
		return am > bm
	}
	return ad > bd
}
