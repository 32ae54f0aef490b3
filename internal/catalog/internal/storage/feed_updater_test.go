package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedRecords(t *testing.T) {
	tests := []struct {
		name    string
		records [][]string
		want    []feedRow
		wantErr bool
	}{
		{
			name: "plain rows",
			records: [][]string{
				{"101", "19.90", "5"},
				{"102", "24.50", "0"},
			},
			want: []feedRow{
				{ProductID: 101, Price: 19.90, Inventory: 5},
				{ProductID: 102, Price: 24.50, Inventory: 0},
			},
		},
		{
			name: "header line skipped",
			records: [][]string{
				{"product_id", "price", "stock"},
				{"101", "19.90", "5"},
			},
			want: []feedRow{{ProductID: 101, Price: 19.90, Inventory: 5}},
		},
		{
			name: "short rows skipped",
			records: [][]string{
				{"101", "19.90", "5"},
				{"junk"},
				{},
			},
			want: []feedRow{{ProductID: 101, Price: 19.90, Inventory: 5}},
		},
		{
			name: "negative stock clamps to zero",
			records: [][]string{
				{"101", "19.90", "-3"},
			},
			want: []feedRow{{ProductID: 101, Price: 19.90, Inventory: 0}},
		},
		{
			name: "bad id past the header fails",
			records: [][]string{
				{"101", "19.90", "5"},
				{"abc", "19.90", "5"},
			},
			wantErr: true,
		},
		{
			name: "bad price fails",
			records: [][]string{
				{"101", "free", "5"},
			},
			wantErr: true,
		},
		{
			name: "bad inventory fails",
			records: [][]string{
				{"101", "19.90", "lots"},
			},
			wantErr: true,
		},
		{
			name:    "empty feed",
			records: [][]string{},
			want:    []feedRow{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFeedRecords(tt.records)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
