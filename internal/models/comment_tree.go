package models

import (
	"fmt"
	"time"
)

// OrphanPolicy decides what happens to a comment whose parent_comment_id
// does not resolve within the same post's comment set.
type OrphanPolicy string

const (
	// OrphanDrop silently leaves the orphan (and its subtree) out of the
	// assembled forest. This matches the original behavior and is the default.
	OrphanDrop OrphanPolicy = "drop"
	// OrphanPromote attaches orphans as additional roots at read time.
	OrphanPromote OrphanPolicy = "promote"
	// OrphanReject refuses comment creation when the parent is missing or
	// belongs to another post. Tree assembly under this policy drops any
	// orphan it still encounters.
	OrphanReject OrphanPolicy = "reject"
)

// ParseOrphanPolicy validates a configured policy string.
func ParseOrphanPolicy(s string) (OrphanPolicy, error) {
	switch OrphanPolicy(s) {
	case OrphanDrop, OrphanPromote, OrphanReject:
		return OrphanPolicy(s), nil
	}
	return "", fmt.Errorf("invalid orphan comment policy %q (want drop, promote or reject)", s)
}

// PostComment is a flat comment row joined with its author's username,
// as listed for one post in insertion order.
type PostComment struct {
	ID              uint
	ParentCommentID *uint
	Content         string
	Username        string
	CreatedAt       time.Time
	Score           int
}

// CommentNode is one comment in the assembled tree served by
// GET /api/post/:id. Replies holds direct children in listing order.
type CommentNode struct {
	ID        uint           `json:"id"`
	ParentID  *uint          `json:"parent_id"`
	Content   string         `json:"content"`
	Username  string         `json:"username"`
	CreatedAt time.Time      `json:"created_at"`
	Score     int            `json:"score"`
	Replies   []*CommentNode `json:"replies"`
}

// BuildCommentForest reconstructs the parent/child hierarchy from a flat
// per-post comment list. Comments with a nil parent become roots; every
// other comment attaches to the node matching its parent ID. Children keep
// the input order. Orphans are handled per policy; note that under drop an
// orphan's own descendants attach to it and disappear with it.
func BuildCommentForest(rows []PostComment, policy OrphanPolicy) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(rows))
	for _, row := range rows {
		nodes[row.ID] = &CommentNode{
			ID:        row.ID,
			ParentID:  row.ParentCommentID,
			Content:   row.Content,
			Username:  row.Username,
			CreatedAt: row.CreatedAt,
			Score:     row.Score,
			Replies:   []*CommentNode{},
		}
	}

	roots := []*CommentNode{}
	for _, row := range rows {
		node := nodes[row.ID]
		if row.ParentCommentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*row.ParentCommentID]; ok {
			parent.Replies = append(parent.Replies, node)
			continue
		}
		if policy == OrphanPromote {
			roots = append(roots, node)
		}
	}
	return roots
}
