package threat

// Like is a membership marker: the existence of a row means "this user has
// liked this threat". userId is the partition key and threatId the sort key;
// createdAt is carried so the threat's composite key can be rebuilt from a
// like row during cascade cleanup.
//
// At most one row may exist per (userId, threatId). Each row corresponds to
// exactly one unit counted in the threat's Likes field; the conditional
// transaction in the like repository is what holds that invariant.
type Like struct {
	UserID    string `json:"userId" dynamodbav:"userId"`
	ThreatID  string `json:"threatId" dynamodbav:"threatId"`
	CreatedAt string `json:"createdAt" dynamodbav:"createdAt"`
}

// NewLike builds the membership row for a user liking a threat
func NewLike(userID string, key Key) Like {
	return Like{
		UserID:    userID,
		ThreatID:  key.ThreatID,
		CreatedAt: key.CreatedAt,
	}
}
