package catalog

import (
	"sort"
	"strings"

	"confdex/internal/models"
)

// Aggregate joins the three raw tables into the derived collections. It is a
// pure function of the dataset: output order follows input order (papers) or
// first-seen order (authors, sessions), never map iteration order.
func Aggregate(ds models.Dataset) *Snapshot {
	papers := aggregatePapers(ds)
	return &Snapshot{
		Papers:   papers,
		Authors:  aggregateAuthors(papers),
		Sessions: aggregateSessions(papers),
	}
}

func aggregatePapers(ds models.Dataset) []*PaperAgg {
	// Sessions are indexed by title alone. Rows sharing a title merge into
	// one record: years accumulate deduplicated, scalar fields keep the
	// first non-empty value seen.
	sessionIndex := make(map[string]*SessionInfo, len(ds.Sessions))
	for _, s := range ds.Sessions {
		if s.Title == "" {
			continue
		}
		info, ok := sessionIndex[s.Title]
		if !ok {
			info = &SessionInfo{
				Session:          s.Title,
				SessionType:      s.Type,
				ChairName:        s.ChairName,
				ChairAffiliation: s.ChairAffiliation,
				Division:         s.Division,
				Years:            []int{},
				SessionID:        SessionID(s.Title, s.Division),
			}
			if s.Year != 0 {
				info.Years = append(info.Years, s.Year)
			}
			sessionIndex[s.Title] = info
			continue
		}
		if s.Year != 0 && !containsInt(info.Years, s.Year) {
			info.Years = append(info.Years, s.Year)
		}
		if info.SessionType == "" {
			info.SessionType = s.Type
		}
		if info.ChairName == "" {
			info.ChairName = s.ChairName
		}
		if info.ChairAffiliation == "" {
			info.ChairAffiliation = s.ChairAffiliation
		}
		if info.Division == "" {
			info.Division = s.Division
		}
	}

	byPaper := make(map[string][]Authorship, len(ds.Papers))
	for _, a := range ds.Authors {
		byPaper[a.PaperID] = append(byPaper[a.PaperID], Authorship{
			Position:          a.Position,
			AuthorName:        a.Name,
			AuthorAffiliation: a.Affiliation,
		})
	}

	// Single left-to-right scan; each paper increments its session's
	// PaperCount exactly once.
	out := make([]*PaperAgg, 0, len(ds.Papers))
	for _, p := range ds.Papers {
		authorships := append([]Authorship(nil), byPaper[p.PaperID]...)
		sort.SliceStable(authorships, func(i, j int) bool {
			return authorships[i].Position < authorships[j].Position
		})
		names := make([]string, 0, len(authorships))
		for _, a := range authorships {
			if a.AuthorName != "" {
				names = append(names, a.AuthorName)
			}
		}

		var sinfo *SessionInfo
		if p.Session != "" {
			if info, ok := sessionIndex[p.Session]; ok {
				info.PaperCount++
				sinfo = info
			}
		}

		agg := &PaperAgg{
			PaperID:         p.PaperID,
			Title:           p.Title,
			PaperType:       p.PaperType,
			Abstract:        p.Abstract,
			NumberOfAuthors: p.NumAuthors,
			Year:            p.Year,
			Session:         p.Session,
			Division:        p.Division,
			SessionInfo:     sinfo,
		}
		if len(authorships) > 0 {
			agg.Authorships = authorships
		}
		if len(names) > 0 {
			agg.AuthorNames = names
		}
		out = append(out, agg)
	}
	return out
}

// aggregateAuthors folds the papers' authorship lists into one record per
// author name, in first-seen order. Entries with an empty name are dropped.
func aggregateAuthors(papers []*PaperAgg) []*AuthorAgg {
	index := make(map[string]*AuthorAgg)
	var order []string
	for _, p := range papers {
		for _, a := range p.Authorships {
			if a.AuthorName == "" {
				continue
			}
			it, ok := index[a.AuthorName]
			if !ok {
				it = &AuthorAgg{AuthorName: a.AuthorName}
				index[a.AuthorName] = it
				order = append(order, a.AuthorName)
			}
			it.PaperCount++
			if p.PaperID != "" {
				it.PaperIDs = append(it.PaperIDs, p.PaperID)
			}
			if a.AuthorAffiliation != "" {
				it.Affiliations = append(it.Affiliations, a.AuthorAffiliation)
			}
			if p.Year != 0 && !containsInt(it.YearsAttended, p.Year) {
				it.YearsAttended = append(it.YearsAttended, p.Year)
			}
		}
	}

	out := make([]*AuthorAgg, 0, len(order))
	for _, name := range order {
		it := index[name]
		it.Affiliations = dedupStrings(it.Affiliations)
		it.AffiliationHistory = strings.Join(it.Affiliations, " -> ")
		it.AttendCount = len(it.YearsAttended)
		out = append(out, it)
	}
	return out
}

// aggregateSessions folds papers with a session title into one record per
// title. The id reuses the embedded SessionInfo when the session row index
// knew the session, otherwise it is recomputed from the paper's own fields.
func aggregateSessions(papers []*PaperAgg) []*SessionAgg {
	index := make(map[string]*SessionAgg)
	var order []string
	for _, p := range papers {
		if p.Session == "" {
			continue
		}
		it, ok := index[p.Session]
		if !ok {
			it = &SessionAgg{
				Session:  p.Session,
				Division: p.Division,
				Years:    []int{},
			}
			if p.SessionInfo != nil {
				it.SessionType = p.SessionInfo.SessionType
				it.ChairName = p.SessionInfo.ChairName
				it.ChairAffiliation = p.SessionInfo.ChairAffiliation
				it.SessionID = p.SessionInfo.SessionID
			}
			if it.SessionID == "" {
				it.SessionID = SessionID(p.Session, p.Division)
			}
			index[p.Session] = it
			order = append(order, p.Session)
		}
		if p.Year != 0 && !containsInt(it.Years, p.Year) {
			it.Years = append(it.Years, p.Year)
		}
		it.PaperCount++
	}

	out := make([]*SessionAgg, 0, len(order))
	for _, title := range order {
		out = append(out, index[title])
	}
	return out
}

func containsInt(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}

func dedupStrings(list []string) []string {
	if len(list) == 0 {
		return list
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
