package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"confdex/internal/models"
)

// DatasetRepo serves the three raw tables from Postgres. It implements
// dataset.Loader, so the API can run against a seeded database instead of
// the CSV files. The seq column preserves source row order, which the
// aggregation pass depends on.
type DatasetRepo struct {
	db *DB
}

func NewDatasetRepo(db *DB) *DatasetRepo {
	return &DatasetRepo{db: db}
}

func (r *DatasetRepo) Load(ctx context.Context) (models.Dataset, error) {
	papers, err := r.listPapers(ctx)
	if err != nil {
		return models.Dataset{}, err
	}
	authors, err := r.listAuthors(ctx)
	if err != nil {
		return models.Dataset{}, err
	}
	sessions, err := r.listSessions(ctx)
	if err != nil {
		return models.Dataset{}, err
	}
	return models.Dataset{Papers: papers, Authors: authors, Sessions: sessions}, nil
}

func (r *DatasetRepo) listPapers(ctx context.Context) ([]models.PaperRow, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT COALESCE(paper_id,''), COALESCE(title,''), COALESCE(paper_type,''), COALESCE(abstract,''),
       COALESCE(num_authors,0), COALESCE(year,0), COALESCE(session,''), COALESCE(division,''),
       COALESCE(authors,'{}')
FROM papers
ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}
	defer rows.Close()

	out := make([]models.PaperRow, 0)
	for rows.Next() {
		var p models.PaperRow
		if err := rows.Scan(&p.PaperID, &p.Title, &p.PaperType, &p.Abstract, &p.NumAuthors, &p.Year, &p.Session, &p.Division, &p.Authors); err != nil {
			return nil, fmt.Errorf("scan paper: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate papers: %w", err)
	}
	return out, nil
}

func (r *DatasetRepo) listAuthors(ctx context.Context) ([]models.AuthorRow, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT COALESCE(paper_id,''), COALESCE(title,''), COALESCE(position,0), COALESCE(name,''),
       COALESCE(affiliation,''), COALESCE(year,0)
FROM authors
ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	out := make([]models.AuthorRow, 0)
	for rows.Next() {
		var a models.AuthorRow
		if err := rows.Scan(&a.PaperID, &a.Title, &a.Position, &a.Name, &a.Affiliation, &a.Year); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}
	return out, nil
}

func (r *DatasetRepo) listSessions(ctx context.Context) ([]models.SessionRow, error) {
	rows, err := r.db.Pool.Query(ctx, `
SELECT COALESCE(year,0), COALESCE(session_type,''), COALESCE(title,''), COALESCE(division,''),
       COALESCE(chair_name,''), COALESCE(chair_affiliation,'')
FROM sessions
ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := make([]models.SessionRow, 0)
	for rows.Next() {
		var s models.SessionRow
		if err := rows.Scan(&s.Year, &s.Type, &s.Title, &s.Division, &s.ChairName, &s.ChairAffiliation); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (r *DatasetRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS papers (
  seq bigserial PRIMARY KEY,
  paper_id text,
  title text,
  paper_type text,
  abstract text,
  num_authors int,
  year int,
  session text,
  division text,
  authors text[]
);
CREATE TABLE IF NOT EXISTS authors (
  seq bigserial PRIMARY KEY,
  paper_id text,
  title text,
  position int,
  name text,
  affiliation text,
  year int
);
CREATE TABLE IF NOT EXISTS sessions (
  seq bigserial PRIMARY KEY,
  year int,
  session_type text,
  title text,
  division text,
  chair_name text,
  chair_affiliation text
)`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ReplaceDataset wipes the three tables and writes the rows in order.
func (r *DatasetRepo) ReplaceDataset(ctx context.Context, ds models.Dataset) error {
	batch := &pgx.Batch{}
	batch.Queue(`TRUNCATE papers, authors, sessions RESTART IDENTITY`)
	for _, p := range ds.Papers {
		batch.Queue(`
INSERT INTO papers (paper_id, title, paper_type, abstract, num_authors, year, session, division, authors)
VALUES (NULLIF($1,''), NULLIF($2,''), NULLIF($3,''), NULLIF($4,''), NULLIF($5,0), NULLIF($6,0), NULLIF($7,''), NULLIF($8,''), $9)`,
			p.PaperID, p.Title, p.PaperType, p.Abstract, p.NumAuthors, p.Year, p.Session, p.Division, p.Authors)
	}
	for _, a := range ds.Authors {
		batch.Queue(`
INSERT INTO authors (paper_id, title, position, name, affiliation, year)
VALUES (NULLIF($1,''), NULLIF($2,''), NULLIF($3,0), NULLIF($4,''), NULLIF($5,''), NULLIF($6,0))`,
			a.PaperID, a.Title, a.Position, a.Name, a.Affiliation, a.Year)
	}
	for _, s := range ds.Sessions {
		batch.Queue(`
INSERT INTO sessions (year, session_type, title, division, chair_name, chair_affiliation)
VALUES (NULLIF($1,0), NULLIF($2,''), NULLIF($3,''), NULLIF($4,''), NULLIF($5,''), NULLIF($6,''))`,
			s.Year, s.Type, s.Title, s.Division, s.ChairName, s.ChairAffiliation)
	}

	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("seed dataset: %w", err)
		}
	}
	return nil
}
