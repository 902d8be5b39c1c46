package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"confdex/internal/models"
)

// CSVLoader reads papers.csv, authors.csv and sessions.csv from Dir. Records
// are keyed by trimmed header name so column order in the files does not
// matter.
type CSVLoader struct {
	Dir string
}

func (l CSVLoader) Load(_ context.Context) (models.Dataset, error) {
	paperRecs, err := readCSV(filepath.Join(l.Dir, "papers.csv"))
	if err != nil {
		return models.Dataset{}, err
	}
	authorRecs, err := readCSV(filepath.Join(l.Dir, "authors.csv"))
	if err != nil {
		return models.Dataset{}, err
	}
	sessionRecs, err := readCSV(filepath.Join(l.Dir, "sessions.csv"))
	if err != nil {
		return models.Dataset{}, err
	}

	ds := models.Dataset{
		Papers:   make([]models.PaperRow, 0, len(paperRecs)),
		Authors:  make([]models.AuthorRow, 0, len(authorRecs)),
		Sessions: make([]models.SessionRow, 0, len(sessionRecs)),
	}
	for _, rec := range paperRecs {
		ds.Papers = append(ds.Papers, models.PaperRow{
			PaperID:    rec["Paper ID"],
			Title:      rec["Title"],
			PaperType:  rec["Paper Type"],
			Abstract:   rec["Abstract"],
			NumAuthors: toIntSafe(rec["Number of Authors"]),
			Year:       toIntSafe(rec["Year"]),
			Session:    rec["Session"],
			Division:   rec["Division/Unit"],
			Authors:    SplitAuthors(rec["Authors"]),
		})
	}
	for _, rec := range authorRecs {
		ds.Authors = append(ds.Authors, models.AuthorRow{
			PaperID:     rec["Paper ID"],
			Title:       rec["Title"],
			Position:    toIntSafe(rec["Author Position"]),
			Name:        rec["Author Name"],
			Affiliation: rec["Author Affiliation"],
			Year:        toIntSafe(rec["Year"]),
		})
	}
	for _, rec := range sessionRecs {
		ds.Sessions = append(ds.Sessions, models.SessionRow{
			Year:             toIntSafe(rec["Year"]),
			Type:             rec["Session Type"],
			Title:            rec["Session Title"],
			Division:         rec["Division/Unit"],
			ChairName:        rec["Chair Name"],
			ChairAffiliation: rec["Chair Affiliation"],
		})
	}
	return ds, nil
}

func readCSV(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header %s: %w", filepath.Base(path), err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var out []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %s: %w", filepath.Base(path), err)
		}
		row := make(map[string]string, len(header))
		empty := true
		for i, h := range header {
			if i >= len(rec) {
				break
			}
			row[h] = rec[i]
			if strings.TrimSpace(rec[i]) != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// SplitAuthors breaks the concatenated author blob on the separators seen in
// the source data.
func SplitAuthors(blob string) []string {
	if blob == "" {
		return nil
	}
	parts := strings.FieldsFunc(blob, func(r rune) bool {
		return r == ';' || r == '|' || r == ','
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toIntSafe(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
