package catalog

import (
	"strconv"
	"strings"
)

// Params is a bag of named filter values, usually lifted straight from URL
// query parameters. An empty value means the predicate is not applied;
// unrecognized names are ignored. All supplied predicates must hold.
type Params map[string]string

// ContainsFold reports whether needle occurs in haystack, case-insensitively.
// Empty haystack or needle never matches.
func ContainsFold(haystack, needle string) bool {
	if haystack == "" || needle == "" {
		return false
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func FilterPapers(list []*PaperAgg, params Params) []*PaperAgg {
	out := list
	if v := params["paper_id"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool { return p.PaperID == v })
	}
	if v := params["title_contains"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool { return ContainsFold(p.Title, v) })
	}
	if v := params["paper_type"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool { return p.PaperType == v })
	}
	if v := params["abstract_contains"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool { return ContainsFold(p.Abstract, v) })
	}
	if v := params["number_of_authors"]; v != "" {
		n, err := strconv.Atoi(v)
		out = filter(out, func(p *PaperAgg) bool { return err == nil && p.NumberOfAuthors == n })
	}
	if v := params["session_contains"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool { return ContainsFold(p.Session, v) })
	}
	if v := params["year"]; v != "" {
		n, err := strconv.Atoi(v)
		out = filter(out, func(p *PaperAgg) bool { return err == nil && p.Year == n })
	}
	if v := params["session"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool { return p.Session == v })
	}
	if v := params["division"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool { return p.Division == v })
	}
	if v := params["has_author"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool { return anyContainsFold(p.AuthorNames, v) })
	}
	if v := params["first_author"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool {
			return len(p.Authorships) > 0 && strings.EqualFold(p.Authorships[0].AuthorName, v)
		})
	}
	if v := params["last_author"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool {
			return len(p.Authorships) > 0 && strings.EqualFold(p.Authorships[len(p.Authorships)-1].AuthorName, v)
		})
	}
	if v := params["session_id"]; v != "" {
		out = filter(out, func(p *PaperAgg) bool { return p.SessionInfo != nil && p.SessionInfo.SessionID == v })
	}
	return out
}

func FilterAuthors(list []*AuthorAgg, params Params) []*AuthorAgg {
	out := list
	if v := params["author_name"]; v != "" {
		out = filter(out, func(a *AuthorAgg) bool { return strings.EqualFold(a.AuthorName, v) })
	}
	if v := params["min_attend_count"]; v != "" {
		n, err := strconv.Atoi(v)
		out = filter(out, func(a *AuthorAgg) bool { return err == nil && a.AttendCount >= n })
	}
	if v := params["min_paper_count"]; v != "" {
		n, err := strconv.Atoi(v)
		out = filter(out, func(a *AuthorAgg) bool { return err == nil && a.PaperCount >= n })
	}
	if v := params["affiliation_contains"]; v != "" {
		out = filter(out, func(a *AuthorAgg) bool { return anyContainsFold(a.Affiliations, v) })
	}
	if v := params["year_attended"]; v != "" {
		n, err := strconv.Atoi(v)
		out = filter(out, func(a *AuthorAgg) bool { return err == nil && containsInt(a.YearsAttended, n) })
	}
	return out
}

func FilterSessions(list []*SessionAgg, params Params) []*SessionAgg {
	out := list
	if v := params["session"]; v != "" {
		out = filter(out, func(s *SessionAgg) bool { return strings.EqualFold(s.Session, v) })
	}
	if v := params["session_type"]; v != "" {
		out = filter(out, func(s *SessionAgg) bool { return strings.EqualFold(s.SessionType, v) })
	}
	if v := params["chair_name"]; v != "" {
		out = filter(out, func(s *SessionAgg) bool { return ContainsFold(s.ChairName, v) })
	}
	if v := params["chair_affiliation"]; v != "" {
		out = filter(out, func(s *SessionAgg) bool { return ContainsFold(s.ChairAffiliation, v) })
	}
	if v := params["division"]; v != "" {
		out = filter(out, func(s *SessionAgg) bool { return strings.EqualFold(s.Division, v) })
	}
	if v := params["year"]; v != "" {
		n, err := strconv.Atoi(v)
		out = filter(out, func(s *SessionAgg) bool { return err == nil && containsInt(s.Years, n) })
	}
	if v := params["paper_count"]; v != "" {
		n, err := strconv.Atoi(v)
		out = filter(out, func(s *SessionAgg) bool { return err == nil && s.PaperCount == n })
	}
	return out
}

func filter[T any](list []T, keep func(T) bool) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func anyContainsFold(list []string, needle string) bool {
	for _, s := range list {
		if ContainsFold(s, needle) {
			return true
		}
	}
	return false
}
