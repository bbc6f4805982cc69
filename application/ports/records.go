package ports

import (
	"fmt"

	"trustnet-backend/domain/content"
	"trustnet-backend/domain/threat"
)

// RecordKind identifies the table a deletable record belongs to
type RecordKind string

const (
	KindThreat  RecordKind = "threat"
	KindLike    RecordKind = "like"
	KindArticle RecordKind = "article"
	KindReport  RecordKind = "report"
)

// DeletableRecord is a tagged union carrying its own table identity, so the
// batch writer never has to infer the destination table from key shape.
// Exactly one key field is set, matching Kind.
type DeletableRecord struct {
	Kind RecordKind

	ThreatKey *threat.Key
	LikeKey   *LikeKey
	ArticleID string
	ReportKey *content.ReportKey
}

// LikeKey identifies a like membership row
type LikeKey struct {
	UserID   string
	ThreatID string
}

// ThreatRecord builds a deletable record for a threat
func ThreatRecord(key threat.Key) DeletableRecord {
	return DeletableRecord{Kind: KindThreat, ThreatKey: &key}
}

// LikeRecord builds a deletable record for a like membership row
func LikeRecord(userID, threatID string) DeletableRecord {
	return DeletableRecord{Kind: KindLike, LikeKey: &LikeKey{UserID: userID, ThreatID: threatID}}
}

// ArticleRecord builds a deletable record for an article
func ArticleRecord(articleID string) DeletableRecord {
	return DeletableRecord{Kind: KindArticle, ArticleID: articleID}
}

// ReportRecord builds a deletable record for a scam report
func ReportRecord(key content.ReportKey) DeletableRecord {
	return DeletableRecord{Kind: KindReport, ReportKey: &key}
}

// String renders the record for warning messages
func (r DeletableRecord) String() string {
	switch r.Kind {
	case KindThreat:
		return fmt.Sprintf("threat %s/%s", r.ThreatKey.ThreatID, r.ThreatKey.CreatedAt)
	case KindLike:
		return fmt.Sprintf("like %s/%s", r.LikeKey.UserID, r.LikeKey.ThreatID)
	case KindArticle:
		return fmt.Sprintf("article %s", r.ArticleID)
	case KindReport:
		return fmt.Sprintf("report %s/%s", r.ReportKey.ReportID, r.ReportKey.CreatedAt)
	}
	return string(r.Kind)
}
