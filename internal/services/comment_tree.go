package services

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/udhekryqi/udhekryqi-backend/internal/models"
)

// CommentNode is a comment with its replies nested for rendering.
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree turns the flat comment sequence of a post into a nested
// tree: comments are grouped by parent id and each sibling group is ordered
// newest-first. Comments whose parent is missing (deleted on another client)
// are simply not rendered. The store never validates parent pointers, so an
// adversarial parentId could form a cycle; the visited set guarantees the walk
// terminates regardless.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	children := make(map[primitive.ObjectID][]models.Comment)
	var roots []models.Comment
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	visited := make(map[primitive.ObjectID]bool)
	var build func(group []models.Comment) []*CommentNode
	build = func(group []models.Comment) []*CommentNode {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].CreatedAt.After(group[j].CreatedAt)
		})
		nodes := make([]*CommentNode, 0, len(group))
		for _, c := range group {
			if visited[c.ID] {
				continue
			}
			visited[c.ID] = true
			nodes = append(nodes, &CommentNode{
				Comment: c,
				Replies: build(children[c.ID]),
			})
		}
		return nodes
	}
	return build(roots)
}

// CommentSubtreeIDs returns the id of the given comment plus every descendant
// reachable through parent pointers. Used by the cascade delete, so an orphan
// can never be left behind in the store.
func CommentSubtreeIDs(comments []models.Comment, commentID primitive.ObjectID) []primitive.ObjectID {
	children := make(map[primitive.ObjectID][]primitive.ObjectID)
	for _, c := range comments {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}

	seen := map[primitive.ObjectID]bool{commentID: true}
	ids := []primitive.ObjectID{commentID}
	for i := 0; i < len(ids); i++ {
		for _, child := range children[ids[i]] {
			if !seen[child] {
				seen[child] = true
				ids = append(ids, child)
			}
		}
	}
	return ids
}
