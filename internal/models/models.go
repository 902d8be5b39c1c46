package models

// Raw rows as produced by a dataset loader. Optional numeric fields use zero
// as "absent"; the source tables leave them blank.

type PaperRow struct {
	PaperID    string   `json:"paper_id"`
	Title      string   `json:"title"`
	PaperType  string   `json:"paper_type,omitempty"`
	Abstract   string   `json:"abstract,omitempty"`
	NumAuthors int      `json:"number_of_authors,omitempty"`
	Year       int      `json:"year,omitempty"`
	Session    string   `json:"session,omitempty"`
	Division   string   `json:"division,omitempty"`
	Authors    []string `json:"authors,omitempty"`
}

type AuthorRow struct {
	PaperID     string `json:"paper_id"`
	Title       string `json:"title"`
	Position    int    `json:"position,omitempty"`
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
	Year        int    `json:"year,omitempty"`
}

type SessionRow struct {
	Year             int    `json:"year,omitempty"`
	Type             string `json:"type,omitempty"`
	Title            string `json:"title"`
	Division         string `json:"division,omitempty"`
	ChairName        string `json:"chair_name,omitempty"`
	ChairAffiliation string `json:"chair_affiliation,omitempty"`
}

type Dataset struct {
	Papers   []PaperRow   `json:"papers"`
	Authors  []AuthorRow  `json:"authors"`
	Sessions []SessionRow `json:"sessions"`
}
