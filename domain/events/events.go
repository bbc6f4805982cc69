package events

import "time"

// SourceBackend is the event source attached to every published event.
const SourceBackend = "trustnet.backend"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// ThreatCreated is raised when a new threat report is submitted
type ThreatCreated struct {
	BaseEvent
	ThreatID    string `json:"threat_id"`
	SubmittedBy string `json:"submitted_by"`
	Artifact    string `json:"artifact"`
	Type        string `json:"type"`
}

// NewThreatCreated creates a ThreatCreated event
func NewThreatCreated(threatID, submittedBy, artifact, artifactType string) ThreatCreated {
	return ThreatCreated{
		BaseEvent: BaseEvent{
			AggregateID: threatID,
			EventType:   "threat.created",
			Timestamp:   time.Now().UTC(),
			Version:     1,
		},
		ThreatID:    threatID,
		SubmittedBy: submittedBy,
		Artifact:    artifact,
		Type:        artifactType,
	}
}

// ThreatVerified is raised when an admin transitions a threat to verified
type ThreatVerified struct {
	BaseEvent
	ThreatID    string `json:"threat_id"`
	SubmittedBy string `json:"submitted_by"`
	VerifiedBy  string `json:"verified_by"`
}

// NewThreatVerified creates a ThreatVerified event
func NewThreatVerified(threatID, submittedBy, verifiedBy string) ThreatVerified {
	return ThreatVerified{
		BaseEvent: BaseEvent{
			AggregateID: threatID,
			EventType:   "threat.verified",
			Timestamp:   time.Now().UTC(),
			Version:     1,
		},
		ThreatID:    threatID,
		SubmittedBy: submittedBy,
		VerifiedBy:  verifiedBy,
	}
}

// ThreatDeleted is raised after a threat and its likes are removed
type ThreatDeleted struct {
	BaseEvent
	ThreatID     string `json:"threat_id"`
	DeletedBy    string `json:"deleted_by"`
	LikesRemoved int    `json:"likes_removed"`
}

// NewThreatDeleted creates a ThreatDeleted event
func NewThreatDeleted(threatID, deletedBy string, likesRemoved int) ThreatDeleted {
	return ThreatDeleted{
		BaseEvent: BaseEvent{
			AggregateID: threatID,
			EventType:   "threat.deleted",
			Timestamp:   time.Now().UTC(),
			Version:     1,
		},
		ThreatID:     threatID,
		DeletedBy:    deletedBy,
		LikesRemoved: likesRemoved,
	}
}

// UserDeleted is raised after a user and their dependent records are removed
type UserDeleted struct {
	BaseEvent
	UserID         string `json:"user_id"`
	DeletedBy      string `json:"deleted_by"`
	RecordsRemoved int    `json:"records_removed"`
	Warnings       int    `json:"warnings"`
}

// NewUserDeleted creates a UserDeleted event
func NewUserDeleted(userID, deletedBy string, recordsRemoved, warnings int) UserDeleted {
	return UserDeleted{
		BaseEvent: BaseEvent{
			AggregateID: userID,
			EventType:   "user.deleted",
			Timestamp:   time.Now().UTC(),
			Version:     1,
		},
		UserID:         userID,
		DeletedBy:      deletedBy,
		RecordsRemoved: recordsRemoved,
		Warnings:       warnings,
	}
}
