package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// Schema migrations follow the bookkeeping pattern: each migration records
// itself in migrations.migrations and is skipped on the next run. Sharded
// families are created once per suffix, _a through _j.

type MigrationsSchema struct{}

func (m *MigrationsSchema) UpMigration(db *sql.DB) error {
	query :=
		`
		CREATE SCHEMA IF NOT EXISTS migrations;
		`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations schema: %w", err)
	}
	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS migrations.migrations (
            id SERIAL PRIMARY KEY,
            time TIMESTAMP NOT NULL,
            name VARCHAR(255) UNIQUE NOT NULL
        );
    `)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

type CatalogSchema struct{}

func (m *CatalogSchema) UpMigration(db *sql.DB) error {
	query :=
		`
		CREATE SCHEMA IF NOT EXISTS catalog;
		`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

const auditColumns = `
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		created_by BIGINT NOT NULL DEFAULT 0,
		updated_by BIGINT NOT NULL DEFAULT 0,
		deleted_at TIMESTAMP`

// shardTableDDL builds the CREATE TABLE statement of one family on one
// shard suffix.
func shardTableDDL(family TableFamily, suffix string) (string, error) {
	table, err := TableName(family, suffix)
	if err != nil {
		return "", err
	}

	switch family {
	case FamilyProducts:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
			product_id BIGSERIAL PRIMARY KEY,
			site_id BIGINT NOT NULL,
			platform_category_id BIGINT NOT NULL DEFAULT 0,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			type VARCHAR(64) NOT NULL DEFAULT '',
			price NUMERIC(12, 2) NOT NULL DEFAULT 0,
			member_price NUMERIC(12, 2) NOT NULL DEFAULT 0,
			supply_status INT NOT NULL DEFAULT 0,
			inventory INT NOT NULL DEFAULT 0 CHECK (inventory >= 0),
			scheduled_release_time TIMESTAMP,
			scheduled_offshelf_time TIMESTAMP,
			auto_offshelf_soldout BOOLEAN NOT NULL DEFAULT FALSE,
			only_member BOOLEAN NOT NULL DEFAULT FALSE,
			status INT NOT NULL DEFAULT 0,%s
			);
			CREATE INDEX IF NOT EXISTS idx_%s_site ON %s (site_id) WHERE deleted_at IS NULL;
			`, table, auditColumns, string(family)+suffix, table), nil
	case FamilyMainSpecs:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
			main_spec_id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			img_url TEXT NOT NULL DEFAULT '',
			price NUMERIC(12, 2) NOT NULL DEFAULT 0,
			member_price NUMERIC(12, 2) NOT NULL DEFAULT 0,
			supply_status INT NOT NULL DEFAULT 0,
			inventory INT NOT NULL DEFAULT 0 CHECK (inventory >= 0),%s
			);
			CREATE INDEX IF NOT EXISTS idx_%s_product ON %s (product_id) WHERE deleted_at IS NULL;
			`, table, auditColumns, string(family)+suffix, table), nil
	case FamilySubSpecs:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
			sub_spec_id BIGSERIAL PRIMARY KEY,
			main_spec_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,
			price NUMERIC(12, 2) NOT NULL DEFAULT 0,
			member_price NUMERIC(12, 2) NOT NULL DEFAULT 0,
			supply_status INT NOT NULL DEFAULT 0,
			inventory INT NOT NULL DEFAULT 0 CHECK (inventory >= 0),%s
			);
			CREATE INDEX IF NOT EXISTS idx_%s_main_spec ON %s (main_spec_id) WHERE deleted_at IS NULL;
			`, table, auditColumns, string(family)+suffix, table), nil
	case FamilyCategories:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
			category_id BIGSERIAL PRIMARY KEY,
			parent_id BIGINT,
			site_id BIGINT NOT NULL,
			name VARCHAR(255) NOT NULL,%s
			);
			CREATE INDEX IF NOT EXISTS idx_%s_site ON %s (site_id) WHERE deleted_at IS NULL;
			`, table, auditColumns, string(family)+suffix, table), nil
	case FamilyCategoryLinks:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
			product_id BIGINT NOT NULL,
			category_id BIGINT NOT NULL,
			PRIMARY KEY (product_id, category_id)
			);
			`, table), nil
	case FamilyImages:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL,
			img_url TEXT NOT NULL,
			cover_pic BOOLEAN NOT NULL DEFAULT FALSE,%s
			);
			CREATE INDEX IF NOT EXISTS idx_%s_product ON %s (product_id) WHERE deleted_at IS NULL;
			`, table, auditColumns, string(family)+suffix, table), nil
	case FamilyVideos:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			product_id BIGINT NOT NULL,
			video_url TEXT NOT NULL,%s
			);
			CREATE INDEX IF NOT EXISTS idx_%s_product ON %s (product_id) WHERE deleted_at IS NULL;
			`, table, auditColumns, string(family)+suffix, table), nil
	}
	return "", &ValidationError{Field: "family", Reason: fmt.Sprintf("unknown table family %q", family)}
}

type ShardedCatalogTables struct{}

func (m *ShardedCatalogTables) UpMigration(db *sql.DB) error {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = 'catalog.sharded_tables')").Scan(&migrationExists)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Println("Migration 'catalog.sharded_tables' already completed. Skipping.")
		return nil
	}

	sharded := []TableFamily{
		FamilyProducts, FamilyMainSpecs, FamilySubSpecs,
		FamilyCategories, FamilyCategoryLinks, FamilyImages, FamilyVideos,
	}
	for _, suffix := range AllSuffixes() {
		for _, family := range sharded {
			ddl, err := shardTableDDL(family, suffix)
			if err != nil {
				return err
			}
			if _, err := db.Exec(ddl); err != nil {
				return fmt.Errorf("failed to create %s%s: %w", family, suffix, err)
			}
		}
	}

	_, err = db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ('catalog.sharded_tables', current_timestamp)")
	if err != nil {
		return fmt.Errorf("failed to mark catalog.sharded_tables migration as complete: %w", err)
	}

	log.Println("Migration 'catalog.sharded_tables' completed successfully.")
	return nil
}

type PlatformCategoryTables struct{}

func (m *PlatformCategoryTables) UpMigration(db *sql.DB) error {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = 'catalog.platform_product_categories')").Scan(&migrationExists)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Println("Migration 'catalog.platform_product_categories' already completed. Skipping.")
		return nil
	}

	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
		category_id BIGSERIAL PRIMARY KEY,
		parent_id BIGINT,
		name VARCHAR(255) NOT NULL,
		retail BOOLEAN NOT NULL DEFAULT FALSE,
		inquiry BOOLEAN NOT NULL DEFAULT FALSE,
		is_sensitive BOOLEAN NOT NULL DEFAULT FALSE,
		sensitive_type INT NOT NULL DEFAULT 0,%s
		);
		`, PlatformCategoryTable, auditColumns)
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create platform_product_categories table: %w", err)
	}

	_, err = db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ('catalog.platform_product_categories', current_timestamp)")
	if err != nil {
		return fmt.Errorf("failed to mark catalog.platform_product_categories migration as complete: %w", err)
	}

	log.Println("Migration 'catalog.platform_product_categories' completed successfully.")
	return nil
}

type FeedMetadata struct{}

func (m *FeedMetadata) UpMigration(db *sql.DB) error {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = 'catalog.metadata')").Scan(&migrationExists)
	if err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Println("Migration 'catalog.metadata' already completed. Skipping.")
		return nil
	}

	query := `
		CREATE TABLE IF NOT EXISTS catalog.metadata (
		    id SERIAL PRIMARY KEY,
		    key_name VARCHAR(255) UNIQUE NOT NULL,
		    value TEXT,
		    last_update TIMESTAMP
		);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create catalog.metadata table: %w", err)
	}

	_, err = db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ('catalog.metadata', current_timestamp)")
	if err != nil {
		return fmt.Errorf("failed to mark catalog.metadata migration as complete: %w", err)
	}

	log.Println("Migration 'catalog.metadata' completed successfully.")
	return nil
}
