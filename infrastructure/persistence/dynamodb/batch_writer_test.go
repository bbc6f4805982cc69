package dynamodb

import (
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
	"trustnet-backend/domain/content"
	"trustnet-backend/domain/threat"
)

var testTables = TableNames{
	Threats:  "trustnet-threats",
	Likes:    "trustnet-likes",
	Articles: "trustnet-articles",
	Reports:  "trustnet-reports",
}

func testWriter() *BatchWriter {
	return &BatchWriter{tables: testTables, logger: zap.NewNop()}
}

func likeRecords(n int) []ports.DeletableRecord {
	records := make([]ports.DeletableRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, ports.LikeRecord(fmt.Sprintf("user-%d", i), "threat-1"))
	}
	return records
}

func TestChunkRecords(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		wantChunks []int
	}{
		{"empty", 0, nil},
		{"single", 1, []int{1}},
		{"exact boundary", 25, []int{25}},
		{"one over", 26, []int{25, 1}},
		{"several full and a remainder", 60, []int{25, 25, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := chunkRecords(likeRecords(tt.total), maxBatchWriteItems)
			require.Len(t, chunks, len(tt.wantChunks))
			for i, want := range tt.wantChunks {
				assert.Len(t, chunks[i], want)
			}
		})
	}
}

func TestChunkRecords_PreservesOrder(t *testing.T) {
	chunks := chunkRecords(likeRecords(30), maxBatchWriteItems)
	require.Len(t, chunks, 2)
	assert.Equal(t, "user-0", chunks[0][0].LikeKey.UserID)
	assert.Equal(t, "user-24", chunks[0][24].LikeKey.UserID)
	assert.Equal(t, "user-25", chunks[1][0].LikeKey.UserID)
}

func TestRecordKey_ResolvesTableAndKey(t *testing.T) {
	w := testWriter()

	tests := []struct {
		name      string
		record    ports.DeletableRecord
		wantTable string
		wantKeys  map[string]string
	}{
		{
			name:      "threat",
			record:    ports.ThreatRecord(threat.Key{ThreatID: "t-1", CreatedAt: "2026-01-01T00:00:00Z"}),
			wantTable: testTables.Threats,
			wantKeys:  map[string]string{"threatId": "t-1", "createdAt": "2026-01-01T00:00:00Z"},
		},
		{
			name:      "like",
			record:    ports.LikeRecord("user-1", "t-1"),
			wantTable: testTables.Likes,
			wantKeys:  map[string]string{"userId": "user-1", "threatId": "t-1"},
		},
		{
			name:      "article",
			record:    ports.ArticleRecord("a-1"),
			wantTable: testTables.Articles,
			wantKeys:  map[string]string{"articleId": "a-1"},
		},
		{
			name:      "report",
			record:    ports.ReportRecord(content.ReportKey{ReportID: "r-1", CreatedAt: "2026-01-02T00:00:00Z"}),
			wantTable: testTables.Reports,
			wantKeys:  map[string]string{"reportId": "r-1", "createdAt": "2026-01-02T00:00:00Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, key, err := w.recordKey(tt.record)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTable, table)
			require.Len(t, key, len(tt.wantKeys))
			for name, want := range tt.wantKeys {
				assert.Equal(t, want, stringAttr(key, name))
			}
		})
	}
}

func TestRecordKey_UnknownKind(t *testing.T) {
	w := testWriter()

	_, _, err := w.recordKey(ports.DeletableRecord{Kind: "widget"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown record kind")
}

func TestRecordFromKey_RoundTrips(t *testing.T) {
	w := testWriter()

	records := []ports.DeletableRecord{
		ports.ThreatRecord(threat.Key{ThreatID: "t-1", CreatedAt: "2026-01-01T00:00:00Z"}),
		ports.LikeRecord("user-1", "t-1"),
		ports.ArticleRecord("a-1"),
		ports.ReportRecord(content.ReportKey{ReportID: "r-1", CreatedAt: "2026-01-02T00:00:00Z"}),
	}

	for _, original := range records {
		t.Run(string(original.Kind), func(t *testing.T) {
			table, key, err := w.recordKey(original)
			require.NoError(t, err)

			rebuilt, ok := w.recordFromKey(table, key)
			require.True(t, ok)
			assert.Equal(t, original, rebuilt)
		})
	}
}

func TestRecordFromKey_UnknownTable(t *testing.T) {
	w := testWriter()

	_, ok := w.recordFromKey("some-other-table", map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: "x"},
	})

	assert.False(t, ok)
}

func TestCollectUnprocessed_SkipsNonDeleteRequests(t *testing.T) {
	w := testWriter()

	records := w.collectUnprocessed(map[string][]types.WriteRequest{
		testTables.Likes: {
			{PutRequest: &types.PutRequest{}},
			{DeleteRequest: &types.DeleteRequest{Key: likeKeyAV("user-1", "t-1")}},
		},
	})

	require.Len(t, records, 1)
	assert.Equal(t, ports.KindLike, records[0].Kind)
	assert.Equal(t, "user-1", records[0].LikeKey.UserID)
}

func TestStringAttr(t *testing.T) {
	key := map[string]types.AttributeValue{
		"threatId": &types.AttributeValueMemberS{Value: "t-1"},
		"likes":    &types.AttributeValueMemberN{Value: "3"},
	}

	assert.Equal(t, "t-1", stringAttr(key, "threatId"))
	assert.Equal(t, "", stringAttr(key, "likes"), "non-string attributes read as empty")
	assert.Equal(t, "", stringAttr(key, "missing"))
}
