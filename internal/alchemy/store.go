package alchemy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"curator/internal/logging"
	"curator/internal/migrate"
)

// PictureRow is a read-only snapshot of one distinct picture referenced by
// page content, joined with its optional credit title.
type PictureRow struct {
	UID      string
	Title    string
	FileName string
	Format   string
}

// PageRow is one credit page variant: a document name, a source locale, and
// the page's essences in authored order.
type PageRow struct {
	URLName      string
	LanguageCode string
	Essences     []EssenceRef
}

// Store reads the Alchemy CMS schema from Postgres.
type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// Open connects to the source database and verifies the connection.
func Open(ctx context.Context, url string, logger *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect to source database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping source database: %w", err)
	}
	return &Store{pool: pool, logger: logging.NewComponentLogger(logger, "alchemy")}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

const picturesSQL = `
SELECT DISTINCT ON (ap.id, ap.image_file_uid, ap.image_file_format, ap.image_file_name)
	ap.image_file_uid,
	COALESCE(aec.title, ''),
	ap.image_file_name,
	COALESCE(ap.image_file_format, '')
FROM alchemy_essence_pictures aep
INNER JOIN alchemy_pictures ap ON aep.picture_id = ap.id
INNER JOIN alchemy_contents ac ON ac.essence_id = aep.id AND ac.essence_type = 'Alchemy::EssencePicture'
INNER JOIN alchemy_elements ae ON ac.element_id = ae.id
LEFT JOIN alchemy_contents acc ON acc.element_id = ae.id AND acc.essence_type = 'Alchemy::EssenceCredit'
LEFT JOIN alchemy_essence_credits aec ON acc.essence_id = aec.id
`

// Pictures returns every distinct picture referenced by content, one row per
// image file.
func (s *Store) Pictures(ctx context.Context) ([]PictureRow, error) {
	rows, err := s.pool.Query(ctx, picturesSQL)
	if err != nil {
		return nil, fmt.Errorf("query pictures: %w", err)
	}
	defer rows.Close()

	var pictures []PictureRow
	for rows.Next() {
		var p PictureRow
		if err := rows.Scan(&p.UID, &p.Title, &p.FileName, &p.Format); err != nil {
			return nil, fmt.Errorf("scan picture row: %w", err)
		}
		pictures = append(pictures, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pictures: %w", err)
	}
	s.logger.Debug("loaded picture rows", logging.Int("pictures", len(pictures)))
	return pictures, nil
}

const creditPagesSQL = `
SELECT
	ap.urlname,
	ap.language_code,
	COALESCE((
		SELECT json_agg(
			json_build_object('id', ac.essence_id, 'type', ac.essence_type)
			ORDER BY ae.position, ac.position
		)
		FROM alchemy_elements ae
		INNER JOIN alchemy_contents ac ON ac.element_id = ae.id
		WHERE ae.page_id = ap.id
	), '[]'::json) AS essences
FROM alchemy_pages ap
WHERE ap.depth > 1
	AND ap.page_layout = 'exhibition_credit_page'
ORDER BY ap.urlname, ap.language_code
`

// CreditPages returns all credit page variants with their essence listings in
// authored order.
func (s *Store) CreditPages(ctx context.Context) ([]PageRow, error) {
	rows, err := s.pool.Query(ctx, creditPagesSQL)
	if err != nil {
		return nil, fmt.Errorf("query credit pages: %w", err)
	}
	defer rows.Close()

	var pages []PageRow
	for rows.Next() {
		var page PageRow
		var essences []byte
		if err := rows.Scan(&page.URLName, &page.LanguageCode, &essences); err != nil {
			return nil, fmt.Errorf("scan credit page row: %w", err)
		}
		page.Essences, err = decodeEssenceRefs(essences)
		if err != nil {
			return nil, fmt.Errorf("page %s (%s): %w", page.URLName, page.LanguageCode, err)
		}
		pages = append(pages, page)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credit pages: %w", err)
	}
	s.logger.Debug("loaded credit pages", logging.Int("pages", len(pages)))
	return pages, nil
}

// essenceQuery returns the scalar-value query for a recognized essence type.
// An unknown type is a violated schema assumption and yields a fatal error.
func essenceQuery(t EssenceType) (string, error) {
	switch t {
	case EssenceText:
		return `SELECT body FROM alchemy_essence_texts WHERE id = $1`, nil
	case EssenceRichText:
		return `SELECT body FROM alchemy_essence_richtexts WHERE id = $1`, nil
	case EssencePicture:
		return `
			SELECT ap.image_file_uid
			FROM alchemy_essence_pictures aep
			INNER JOIN alchemy_pictures ap ON aep.picture_id = ap.id
			WHERE aep.id = $1`, nil
	default:
		return "", migrate.Wrap(migrate.ErrSchema, "alchemy", "", fmt.Sprintf("unknown essence type %q", t), nil)
	}
}

// FetchEssence resolves one essence reference. A missing row or an empty
// stored value returns (nil, nil): the fragment simply contributes nothing.
// An unrecognized essence type is fatal.
func (s *Store) FetchEssence(ctx context.Context, ref EssenceRef) (*EssenceData, error) {
	query, err := essenceQuery(ref.Type)
	if err != nil {
		return nil, err
	}

	var value *string
	err = s.pool.QueryRow(ctx, query, ref.ID).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch essence %s/%d: %w", ref.Type, ref.ID, err)
	}
	if value == nil || *value == "" {
		return nil, nil
	}
	return &EssenceData{Type: ref.Type, Value: *value}, nil
}
