package storage

import (
	"fmt"
	"strings"
)

// Schema is the Postgres schema holding every catalog table.
const Schema = "catalog"

// ShardCount is fixed at ten; changing it would require a data migration.
const ShardCount = 10

// TableFamily enumerates the sharded catalog tables. Table names are only
// ever built from this closed set plus a router-produced suffix, never from
// caller input.
type TableFamily string

const (
	FamilyProducts      TableFamily = "site_products"
	FamilyMainSpecs     TableFamily = "site_product_main_spec"
	FamilySubSpecs      TableFamily = "site_product_sub_spec"
	FamilyCategories    TableFamily = "site_product_categories"
	FamilyCategoryLinks TableFamily = "site_product_category"
	FamilyImages        TableFamily = "site_product_images"
	FamilyVideos        TableFamily = "site_product_videos"
)

// PlatformCategoryTable is platform-wide and not sharded.
const PlatformCategoryTable = Schema + ".platform_product_categories"

var families = map[TableFamily]bool{
	FamilyProducts:      true,
	FamilyMainSpecs:     true,
	FamilySubSpecs:      true,
	FamilyCategories:    true,
	FamilyCategoryLinks: true,
	FamilyImages:        true,
	FamilyVideos:        true,
}

// ShardSuffix maps a site id onto one of the ten shard suffixes "_a".."_j".
// The modulo is normalized so negative ids land on the same fixed set.
func ShardSuffix(siteID int64) string {
	m := siteID % ShardCount
	if m < 0 {
		m += ShardCount
	}
	return "_" + string(rune('a'+m))
}

// AllSuffixes returns the full shard suffix set in order, "_a" through "_j".
func AllSuffixes() []string {
	suffixes := make([]string, 0, ShardCount)
	for i := int64(0); i < ShardCount; i++ {
		suffixes = append(suffixes, ShardSuffix(i))
	}
	return suffixes
}

// ValidSuffix reports whether suffix belongs to the fixed shard set.
func ValidSuffix(suffix string) bool {
	if len(suffix) != 2 || suffix[0] != '_' {
		return false
	}
	return suffix[1] >= 'a' && suffix[1] <= 'j'
}

// TableName resolves a schema-qualified table name for one entity family on
// one shard. Both inputs are validated against the closed enumerations.
func TableName(family TableFamily, suffix string) (string, error) {
	if !families[family] {
		return "", &ValidationError{Field: "family", Reason: fmt.Sprintf("unknown table family %q", family)}
	}
	if !ValidSuffix(suffix) {
		return "", &ValidationError{Field: "suffix", Reason: fmt.Sprintf("unknown shard suffix %q", suffix)}
	}
	return Schema + "." + string(family) + suffix, nil
}

// tableFor is the internal shortcut used by the repositories: suffix comes
// straight out of ShardSuffix, so resolution cannot fail.
func tableFor(family TableFamily, siteID int64) string {
	name, _ := TableName(family, ShardSuffix(siteID))
	return name
}

// ProductCoding derives the human-readable product code: the upper-cased
// shard letter followed by the product id zero-padded to 11 digits.
func ProductCoding(productID int64, suffix string) (string, error) {
	if !ValidSuffix(suffix) {
		return "", &ValidationError{Field: "suffix", Reason: fmt.Sprintf("unknown shard suffix %q", suffix)}
	}
	if productID < 0 {
		return "", &ValidationError{Field: "product_id", Reason: "must not be negative"}
	}
	letter := strings.ToUpper(strings.TrimPrefix(suffix, "_"))
	return fmt.Sprintf("%s%011d", letter, productID), nil
}
