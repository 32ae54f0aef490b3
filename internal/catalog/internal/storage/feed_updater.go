package storage

import (
	"bufio"
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/lib/pq"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"hkcatalog_api/internal/catalog/internal/models"
)

// FeedSource points at one supplier price/stock feed: a small .inf file
// carrying the last-modified timestamp and the CSV payload itself.
type FeedSource struct {
	InfURL      string
	CSVURL      string
	MetadataKey string
}

// feedRow is one parsed CSV line: product id, price, stock on hand.
type feedRow struct {
	ProductID int64
	Price     float64
	Inventory int
}

// FeedUpdater merges a supplier feed into one site's product shard table.
// Imports are attributed to the system actor and only touch live rows, so
// operator soft-deletes survive a feed run. Fetches are rate limited to
// stay polite with supplier hosts.
type FeedUpdater struct {
	db      *sql.DB
	siteID  int64
	source  FeedSource
	client  *http.Client
	limiter *rate.Limiter
}

func NewFeedUpdater(db *sql.DB, siteID int64, source FeedSource) *FeedUpdater {
	return &FeedUpdater{
		db:      db,
		siteID:  siteID,
		source:  source,
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// Update fetches the feed and applies it when the supplier's timestamp is
// newer than the one recorded in catalog.metadata.
func (u *FeedUpdater) Update(ctx context.Context) error {
	modTime, err := u.fetchInfTime(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch feed timestamp: %w", err)
	}

	var storedTime time.Time
	err = u.db.QueryRow(
		"SELECT last_update FROM catalog.metadata WHERE key_name = $1",
		u.source.MetadataKey,
	).Scan(&storedTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			storedTime = time.Time{}
		} else {
			return fmt.Errorf("failed to read feed metadata: %w", err)
		}
	}

	if !modTime.After(storedTime) {
		return nil
	}

	rows, err := u.fetchCSVData(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch feed data: %w", err)
	}

	if err := u.applyFeed(rows); err != nil {
		return err
	}

	_, err = u.db.Exec(`
		INSERT INTO catalog.metadata (key_name, value, last_update)
		VALUES ($1, $2, $3)
		ON CONFLICT (key_name) DO UPDATE SET last_update = EXCLUDED.last_update
	`, u.source.MetadataKey, u.source.CSVURL, modTime)
	if err != nil {
		return fmt.Errorf("failed to record feed timestamp: %w", err)
	}
	return nil
}

func (u *FeedUpdater) fetchInfTime(ctx context.Context) (time.Time, error) {
	body, err := u.get(ctx, u.source.InfURL)
	if err != nil {
		return time.Time{}, err
	}
	defer body.Close()

	scanner := bufio.NewScanner(body)
	if !scanner.Scan() {
		return time.Time{}, errors.New("empty response from inf file")
	}
	return time.Parse("2006-01-02 15:04:05", scanner.Text())
}

// fetchCSVData downloads and parses the feed. Supplier feeds arrive
// Windows-1251 encoded with ';' separators.
func (u *FeedUpdater) fetchCSVData(ctx context.Context) ([]feedRow, error) {
	body, err := u.get(ctx, u.source.CSVURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	reader := transform.NewReader(bytes.NewReader(raw), charmap.Windows1251.NewDecoder())
	r := csv.NewReader(reader)
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return parseFeedRecords(records)
}

// parseFeedRecords converts raw CSV records into typed rows, skipping a
// header line when present.
func parseFeedRecords(records [][]string) ([]feedRow, error) {
	rows := make([]feedRow, 0, len(records))
	for i, record := range records {
		if len(record) < 3 {
			continue
		}
		productID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			if i == 0 {
				continue // header line
			}
			return nil, fmt.Errorf("bad product id %q on line %d", record[0], i+1)
		}
		price, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad price %q on line %d", record[1], i+1)
		}
		inventory, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("bad inventory %q on line %d", record[2], i+1)
		}
		if inventory < 0 {
			inventory = 0
		}
		rows = append(rows, feedRow{ProductID: productID, Price: price, Inventory: inventory})
	}
	return rows, nil
}

// applyFeed bulk-loads the rows into a temp table and merges price and
// inventory into the shard table in one transaction.
func (u *FeedUpdater) applyFeed(rows []feedRow) error {
	tx, err := u.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin feed transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		CREATE TEMP TABLE feed_rows (
		product_id BIGINT,
		price NUMERIC(12, 2),
		inventory INT
		) ON COMMIT DROP
	`)
	if err != nil {
		return fmt.Errorf("failed to create feed temp table: %w", err)
	}

	stmt, err := tx.Prepare(pq.CopyIn("feed_rows", "product_id", "price", "inventory"))
	if err != nil {
		return fmt.Errorf("failed to prepare feed copy: %w", err)
	}

	for _, row := range rows {
		if _, err := stmt.Exec(row.ProductID, row.Price, row.Inventory); err != nil {
			stmt.Close()
			return fmt.Errorf("failed to copy feed row: %w", err)
		}
	}
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush feed copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close feed copy: %w", err)
	}

	mergeQuery := fmt.Sprintf(`
		UPDATE %s AS p
		SET price = f.price, inventory = f.inventory,
		updated_at = CURRENT_TIMESTAMP, updated_by = $1
		FROM feed_rows AS f
		WHERE p.product_id = f.product_id AND p.deleted_at IS NULL
	`, tableFor(FamilyProducts, u.siteID))

	if _, err := tx.Exec(mergeQuery, models.SystemActor); err != nil {
		return fmt.Errorf("failed to merge feed rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feed transaction: %w", err)
	}
	return nil
}

func (u *FeedUpdater) get(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := u.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return resp.Body, nil
}
