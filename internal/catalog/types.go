package catalog

// Derived, cross-referenced views built by joining the raw tables. All three
// collections are rebuilt wholesale on each load and never mutated afterwards.

type Authorship struct {
	Position          int    `json:"position,omitempty"`
	AuthorName        string `json:"author_name,omitempty"`
	AuthorAffiliation string `json:"author_affiliation,omitempty"`
}

// SessionInfo is shared by every paper that belongs to the session; its
// PaperCount is accumulated during the single paper scan in Aggregate.
type SessionInfo struct {
	Session          string `json:"session"`
	SessionType      string `json:"session_type,omitempty"`
	ChairName        string `json:"chair_name,omitempty"`
	ChairAffiliation string `json:"chair_affiliation,omitempty"`
	Division         string `json:"division,omitempty"`
	Years            []int  `json:"years"`
	PaperCount       int    `json:"paper_count"`
	SessionID        string `json:"session_id"`
}

type PaperAgg struct {
	PaperID         string       `json:"paper_id"`
	Title           string       `json:"title"`
	PaperType       string       `json:"paper_type,omitempty"`
	Abstract        string       `json:"abstract,omitempty"`
	NumberOfAuthors int          `json:"number_of_authors,omitempty"`
	Year            int          `json:"year,omitempty"`
	Session         string       `json:"session,omitempty"`
	Division        string       `json:"division,omitempty"`
	Authorships     []Authorship `json:"authorships,omitempty"`
	AuthorNames     []string     `json:"author_names,omitempty"`
	SessionInfo     *SessionInfo `json:"session_info,omitempty"`
}

type AuthorAgg struct {
	AuthorName         string   `json:"author_name"`
	AttendCount        int      `json:"attend_count"`
	PaperCount         int      `json:"paper_count"`
	PaperIDs           []string `json:"paper_ids,omitempty"`
	Affiliations       []string `json:"affiliations,omitempty"`
	AffiliationHistory string   `json:"affiliation_history,omitempty"`
	YearsAttended      []int    `json:"years_attended,omitempty"`
}

type SessionAgg struct {
	Session          string `json:"session"`
	SessionType      string `json:"session_type,omitempty"`
	ChairName        string `json:"chair_name,omitempty"`
	ChairAffiliation string `json:"chair_affiliation,omitempty"`
	Division         string `json:"division,omitempty"`
	Years            []int  `json:"years"`
	PaperCount       int    `json:"paper_count"`
	SessionID        string `json:"session_id"`
}

type Snapshot struct {
	Papers   []*PaperAgg
	Authors  []*AuthorAgg
	Sessions []*SessionAgg
}
