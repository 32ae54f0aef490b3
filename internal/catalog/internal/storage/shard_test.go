package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShardSuffix(t *testing.T) {
	tests := []struct {
		name   string
		siteID int64
		want   string
	}{
		{"zero", 0, "_a"},
		{"one", 1, "_b"},
		{"nine", 9, "_j"},
		{"wraps at ten", 10, "_a"},
		{"site 23", 23, "_d"},
		{"large id", 1000000007, "_h"},
		{"negative lands on fixed set", -1, "_j"},
		{"negative multiple", -10, "_a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShardSuffix(tt.siteID))
		})
	}
}

func TestShardSuffixPeriodicity(t *testing.T) {
	for siteID := int64(0); siteID < 50; siteID++ {
		assert.Equal(t, ShardSuffix(siteID), ShardSuffix(siteID+ShardCount),
			"site %d and %d must share a shard", siteID, siteID+ShardCount)
	}
}

func TestAllSuffixes(t *testing.T) {
	want := []string{"_a", "_b", "_c", "_d", "_e", "_f", "_g", "_h", "_i", "_j"}
	assert.Equal(t, want, AllSuffixes())
}

func TestValidSuffix(t *testing.T) {
	for _, suffix := range AllSuffixes() {
		assert.True(t, ValidSuffix(suffix), "suffix %q", suffix)
	}

	invalid := []string{"", "_", "_k", "_z", "a", "_A", "_ab", "x_a", "_a; DROP TABLE"}
	for _, suffix := range invalid {
		assert.False(t, ValidSuffix(suffix), "suffix %q", suffix)
	}
}

func TestTableName(t *testing.T) {
	tests := []struct {
		name    string
		family  TableFamily
		suffix  string
		want    string
		wantErr bool
	}{
		{"products on a", FamilyProducts, "_a", "catalog.site_products_a", false},
		{"main specs on j", FamilyMainSpecs, "_j", "catalog.site_product_main_spec_j", false},
		{"links on d", FamilyCategoryLinks, "_d", "catalog.site_product_category_d", false},
		{"unknown family", TableFamily("site_orders"), "_a", "", true},
		{"unknown suffix", FamilyProducts, "_k", "", true},
		{"injection attempt", FamilyProducts, "_a; --", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TableName(tt.family, tt.suffix)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductCoding(t *testing.T) {
	tests := []struct {
		name      string
		productID int64
		suffix    string
		want      string
		wantErr   bool
	}{
		{"small id", 7, "_d", "D00000000007", false},
		{"zero id", 0, "_a", "A00000000000", false},
		{"wide id", 98765432101, "_j", "J98765432101", false},
		{"bad suffix", 7, "_k", "", true},
		{"negative id", -1, "_a", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProductCoding(tt.productID, tt.suffix)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		pageSize int
		want     int
		wantErr  bool
	}{
		{"first page", 1, 20, 0, false},
		{"third page", 3, 10, 20, false},
		{"page zero", 0, 20, 0, true},
		{"negative page", -2, 20, 0, true},
		{"zero page size", 1, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pageOffset(tt.page, tt.pageSize)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
