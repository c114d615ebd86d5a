package models

import (
	"time"
)

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// Valid reports whether the vote type is one of the two accepted values.
func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

// Sign returns the signed score contribution of an active vote of this type.
func (t VoteType) Sign() int {
	if t == VoteUp {
		return 1
	}
	return -1
}

// TargetKind identifies which kind of entity a vote applies to. Post and
// comment votes share one ledger, parameterized by this kind.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Label returns the capitalized entity name for messages ("Post", "Comment").
func (k TargetKind) Label() string {
	if k == TargetPost {
		return "Post"
	}
	return "Comment"
}

// IDField returns the JSON field name carrying the target ID for this kind.
func (k TargetKind) IDField() string {
	if k == TargetPost {
		return "post_id"
	}
	return "comment_id"
}

// Vote is the authoritative record of one user's vote on one target.
// The unique index enforces at most one active vote per (user, target);
// the denormalized score on the target must equal the signed sum of its
// active votes at all times.
type Vote struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"not null;uniqueIndex:idx_vote_user_target" json:"user_id"`
	TargetType TargetKind `gorm:"size:16;not null;uniqueIndex:idx_vote_user_target" json:"target_type"`
	TargetID   uint       `gorm:"not null;uniqueIndex:idx_vote_user_target" json:"target_id"`
	VoteType   VoteType   `gorm:"size:16;not null" json:"vote_type"`
	CreatedAt  time.Time  `json:"created_at"`
}
