package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/segmentio/encoding/json"
	_ "modernc.org/sqlite"
)

// DB is a SQLite-backed Source.
type DB struct {
	db *sql.DB
}

// Ensure DB implements Source.
var _ Source = (*DB)(nil)

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS journals (
			id INTEGER PRIMARY KEY,
			path TEXT NOT NULL DEFAULT '',
			print_issn TEXT NOT NULL DEFAULT '',
			online_issn TEXT NOT NULL DEFAULT '',
			names_json TEXT NOT NULL,
			primary_locale TEXT NOT NULL,
			locales_json TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS issues (
			id INTEGER PRIMARY KEY,
			journal_id INTEGER NOT NULL,
			volume TEXT NOT NULL DEFAULT '',
			number TEXT NOT NULL DEFAULT '',
			year INTEGER NOT NULL DEFAULT 0,
			covers_json TEXT NOT NULL DEFAULT '{}'
		);

		CREATE TABLE IF NOT EXISTS sections (
			id INTEGER PRIMARY KEY,
			titles_json TEXT NOT NULL,
			abbrevs_json TEXT NOT NULL DEFAULT '{}'
		);

		-- One row per submission; seq keeps the import order.
		CREATE TABLE IF NOT EXISTS articles (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id INTEGER NOT NULL UNIQUE,
			publication_id INTEGER NOT NULL UNIQUE,
			journal_id INTEGER NOT NULL,
			issue_id INTEGER NOT NULL,
			section_id INTEGER NOT NULL,
			status INTEGER NOT NULL,
			locale TEXT NOT NULL DEFAULT '',
			titles_json TEXT NOT NULL,
			abstracts_json TEXT NOT NULL DEFAULT '{}',
			pages TEXT NOT NULL DEFAULT '',
			date_submitted TEXT NOT NULL DEFAULT '',
			doi TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_articles_issue ON articles(issue_id, journal_id, status);

		CREATE TABLE IF NOT EXISTS authors (
			publication_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			given_json TEXT NOT NULL DEFAULT '{}',
			family_json TEXT NOT NULL DEFAULT '{}',
			affiliation_json TEXT NOT NULL DEFAULT '{}',
			orcid TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS citations (
			publication_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			raw TEXT NOT NULL
		);

		-- Controlled vocabulary entries: keyword, agency, subject.
		CREATE TABLE IF NOT EXISTS vocab (
			publication_id INTEGER NOT NULL,
			kind TEXT NOT NULL,
			locale TEXT NOT NULL DEFAULT '',
			seq INTEGER NOT NULL,
			value TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_vocab ON vocab(publication_id, kind, locale);

		CREATE TABLE IF NOT EXISTS galleys (
			id INTEGER PRIMARY KEY,
			publication_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			file_path TEXT,
			file_names_json TEXT
		);
	`
	_, err := db.Exec(schema)
	return err
}

const (
	vocabKeyword = "keyword"
	vocabAgency  = "agency"
	vocabSubject = "subject"
)

// Import writes every entity of a snapshot into the database in a single
// transaction.
func (d *DB) Import(ctx context.Context, snap *Snapshot) (err error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, j := range snap.Journals {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO journals (id, path, print_issn, online_issn, names_json, primary_locale, locales_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			j.ID, j.Path, j.PrintISSN, j.OnlineISSN, mustJSON(j.Names), j.PrimaryLocale, mustJSON(j.SupportedLocales),
		); err != nil {
			return fmt.Errorf("inserting journal %d: %w", j.ID, err)
		}
	}

	for _, is := range snap.Issues {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO issues (id, journal_id, volume, number, year, covers_json) VALUES (?, ?, ?, ?, ?, ?)`,
			is.ID, is.JournalID, is.Volume, is.Number, is.Year, mustJSON(is.CoverImages),
		); err != nil {
			return fmt.Errorf("inserting issue %d: %w", is.ID, err)
		}
	}

	for _, s := range snap.Sections {
		if _, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO sections (id, titles_json, abbrevs_json) VALUES (?, ?, ?)`,
			s.ID, mustJSON(s.Titles), mustJSON(s.Abbrevs),
		); err != nil {
			return fmt.Errorf("inserting section %d: %w", s.ID, err)
		}
	}

	for _, a := range snap.Articles {
		if err = importArticle(ctx, tx, &a); err != nil {
			return fmt.Errorf("inserting article %d: %w", a.ID, err)
		}
	}

	return tx.Commit()
}

func importArticle(ctx context.Context, tx *sql.Tx, a *SnapshotArticle) error {
	pub := a.PublicationID

	// Re-importing an article replaces its rows; seq keeps its first value.
	for _, table := range []string{"authors", "citations", "vocab", "galleys"} {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE publication_id = ?
			 OR publication_id IN (SELECT publication_id FROM articles WHERE id = ?)`, pub, a.ID,
		); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO articles (id, publication_id, journal_id, issue_id, section_id, status, locale,
			titles_json, abstracts_json, pages, date_submitted, doi)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			publication_id = excluded.publication_id, journal_id = excluded.journal_id,
			issue_id = excluded.issue_id, section_id = excluded.section_id, status = excluded.status,
			locale = excluded.locale, titles_json = excluded.titles_json,
			abstracts_json = excluded.abstracts_json, pages = excluded.pages,
			date_submitted = excluded.date_submitted, doi = excluded.doi`,
		a.ID, pub, a.JournalID, a.IssueID, a.SectionID, a.Status, a.Locale,
		mustJSON(a.Titles), mustJSON(a.Abstracts), a.Pages, a.DateSubmitted, a.DOI,
	); err != nil {
		return err
	}

	for _, au := range a.Authors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO authors (publication_id, seq, given_json, family_json, affiliation_json, orcid, email, country)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			pub, au.Seq, mustJSON(au.GivenNames), mustJSON(au.FamilyNames), mustJSON(au.Affiliations),
			au.ORCID, au.Email, au.Country,
		); err != nil {
			return fmt.Errorf("author %d: %w", au.Seq, err)
		}
	}

	for _, c := range a.Citations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO citations (publication_id, seq, raw) VALUES (?, ?, ?)`, pub, c.Seq, c.Raw,
		); err != nil {
			return fmt.Errorf("citation %d: %w", c.Seq, err)
		}
	}

	insertVocab := func(kind, locale string, values []string) error {
		for i, v := range values {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO vocab (publication_id, kind, locale, seq, value) VALUES (?, ?, ?, ?, ?)`,
				pub, kind, locale, i, v,
			); err != nil {
				return fmt.Errorf("%s %q: %w", kind, v, err)
			}
		}
		return nil
	}
	for locale, values := range a.Keywords {
		if err := insertVocab(vocabKeyword, locale, values); err != nil {
			return err
		}
	}
	for locale, values := range a.Agencies {
		if err := insertVocab(vocabAgency, locale, values); err != nil {
			return err
		}
	}
	if err := insertVocab(vocabSubject, "", a.Subjects); err != nil {
		return err
	}

	for i, g := range a.Galleys {
		var path, names sql.NullString
		if g.File != nil {
			path = sql.NullString{String: g.File.Path, Valid: true}
			names = sql.NullString{String: mustJSON(g.File.Names), Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO galleys (id, publication_id, seq, label, file_path, file_names_json) VALUES (?, ?, ?, ?, ?, ?)`,
			g.ID, pub, i, g.Label, path, names,
		); err != nil {
			return fmt.Errorf("galley %d: %w", g.ID, err)
		}
	}

	return nil
}

// Journal returns the journal with the given ID.
func (d *DB) Journal(ctx context.Context, id int64) (*Journal, error) {
	var j Journal
	var names, locales string
	err := d.db.QueryRowContext(ctx,
		`SELECT id, path, print_issn, online_issn, names_json, primary_locale, locales_json FROM journals WHERE id = ?`, id,
	).Scan(&j.ID, &j.Path, &j.PrintISSN, &j.OnlineISSN, &names, &j.PrimaryLocale, &locales)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("journal %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	if err := unmarshalColumns(names, &j.Names, locales, &j.SupportedLocales); err != nil {
		return nil, err
	}
	return &j, nil
}

// Issue returns the issue with the given ID.
func (d *DB) Issue(ctx context.Context, id int64) (*Issue, error) {
	var is Issue
	var covers string
	err := d.db.QueryRowContext(ctx,
		`SELECT id, journal_id, volume, number, year, covers_json FROM issues WHERE id = ?`, id,
	).Scan(&is.ID, &is.JournalID, &is.Volume, &is.Number, &is.Year, &covers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("issue %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying issue: %w", err)
	}
	if err := unmarshalColumns(covers, &is.CoverImages); err != nil {
		return nil, err
	}
	return &is, nil
}

// Section returns the section with the given ID.
func (d *DB) Section(ctx context.Context, id int64) (*Section, error) {
	var s Section
	var titles, abbrevs string
	err := d.db.QueryRowContext(ctx,
		`SELECT id, titles_json, abbrevs_json FROM sections WHERE id = ?`, id,
	).Scan(&s.ID, &titles, &abbrevs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("section %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying section: %w", err)
	}
	if err := unmarshalColumns(titles, &s.Titles, abbrevs, &s.Abbrevs); err != nil {
		return nil, err
	}
	return &s, nil
}

// PublishedArticles returns the published articles of an issue in import order.
func (d *DB) PublishedArticles(ctx context.Context, issueID, journalID int64) ([]*Article, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, publication_id, journal_id, issue_id, section_id, status, locale,
			titles_json, abstracts_json, pages, date_submitted, doi
		 FROM articles WHERE issue_id = ? AND journal_id = ? AND status = ? ORDER BY seq`,
		issueID, journalID, StatusPublished,
	)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	var articles []*Article
	for rows.Next() {
		var a Article
		var titles, abstracts string
		if err := rows.Scan(&a.ID, &a.PublicationID, &a.JournalID, &a.IssueID, &a.SectionID, &a.Status, &a.Locale,
			&titles, &abstracts, &a.Pages, &a.DateSubmitted, &a.DOI); err != nil {
			return nil, fmt.Errorf("scanning article: %w", err)
		}
		if err := unmarshalColumns(titles, &a.Titles, abstracts, &a.Abstracts); err != nil {
			return nil, err
		}
		articles = append(articles, &a)
	}
	return articles, rows.Err()
}

// Authors returns the authors of a publication ordered by sequence.
func (d *DB) Authors(ctx context.Context, publicationID int64) ([]Author, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT seq, given_json, family_json, affiliation_json, orcid, email, country
		 FROM authors WHERE publication_id = ? ORDER BY seq, rowid`, publicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying authors: %w", err)
	}
	defer rows.Close()

	var authors []Author
	for rows.Next() {
		var au Author
		var given, family, affiliation string
		if err := rows.Scan(&au.Seq, &given, &family, &affiliation, &au.ORCID, &au.Email, &au.Country); err != nil {
			return nil, fmt.Errorf("scanning author: %w", err)
		}
		if err := unmarshalColumns(given, &au.GivenNames, family, &au.FamilyNames, affiliation, &au.Affiliations); err != nil {
			return nil, err
		}
		authors = append(authors, au)
	}
	return authors, rows.Err()
}

// Citations returns the citations of a publication ordered by sequence.
func (d *DB) Citations(ctx context.Context, publicationID int64) ([]Citation, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT seq, raw FROM citations WHERE publication_id = ? ORDER BY seq, rowid`, publicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying citations: %w", err)
	}
	defer rows.Close()

	var citations []Citation
	for rows.Next() {
		var c Citation
		if err := rows.Scan(&c.Seq, &c.Raw); err != nil {
			return nil, fmt.Errorf("scanning citation: %w", err)
		}
		citations = append(citations, c)
	}
	return citations, rows.Err()
}

// Keywords returns the keywords of a publication in a locale.
func (d *DB) Keywords(ctx context.Context, publicationID int64, locale string) ([]string, error) {
	return d.vocab(ctx, publicationID, vocabKeyword, locale)
}

// FundingAgencies returns the funding agencies of a publication in a locale.
func (d *DB) FundingAgencies(ctx context.Context, publicationID int64, locale string) ([]string, error) {
	return d.vocab(ctx, publicationID, vocabAgency, locale)
}

// Subjects returns the subject codes of a publication.
func (d *DB) Subjects(ctx context.Context, publicationID int64) ([]string, error) {
	return d.vocab(ctx, publicationID, vocabSubject, "")
}

func (d *DB) vocab(ctx context.Context, publicationID int64, kind, locale string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT value FROM vocab WHERE publication_id = ? AND kind = ? AND locale = ? ORDER BY seq`,
		publicationID, kind, locale,
	)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", kind, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", kind, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// Galleys returns the galleys of a publication in import order.
func (d *DB) Galleys(ctx context.Context, publicationID int64) ([]Galley, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, label, file_path, file_names_json FROM galleys WHERE publication_id = ? ORDER BY seq`,
		publicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying galleys: %w", err)
	}
	defer rows.Close()

	var galleys []Galley
	for rows.Next() {
		var g Galley
		var path, names sql.NullString
		if err := rows.Scan(&g.ID, &g.Label, &path, &names); err != nil {
			return nil, fmt.Errorf("scanning galley: %w", err)
		}
		if path.Valid {
			g.File = &SubmissionFile{Path: path.String}
			if names.Valid {
				if err := unmarshalColumns(names.String, &g.File.Names); err != nil {
					return nil, err
				}
			}
		}
		galleys = append(galleys, g)
	}
	return galleys, rows.Err()
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		// Only maps and slices of strings are stored here.
		panic(fmt.Sprintf("encoding column: %v", err))
	}
	return string(data)
}

// unmarshalColumns decodes pairs of (json text, destination).
func unmarshalColumns(pairs ...any) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		text, _ := pairs[i].(string)
		if text == "" || text == "null" {
			continue
		}
		if err := json.Unmarshal([]byte(text), pairs[i+1]); err != nil {
			return fmt.Errorf("decoding column: %w", err)
		}
	}
	return nil
}
