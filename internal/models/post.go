package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is an article with its engagement state embedded: the like set and the
// flat comment sequence both live inside the post document so every mutation
// is a single-document update.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	Title   string   `bson:"title" json:"title"`
	Content string   `bson:"content" json:"content"` // rich-text HTML blob, not parsed server-side
	Tags    []string `bson:"tags" json:"tags"`       // lower-cased, trimmed
	Media   []string `bson:"media" json:"media"`     // Cloudinary URLs

	Author primitive.ObjectID `bson:"author" json:"author"`
	// AuthorName is a snapshot of the author's name at creation time. It does
	// not follow later renames; only a direct admin edit of the post changes it.
	AuthorName string `bson:"authorName" json:"authorName"`

	Likes    []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments []Comment            `bson:"comments" json:"comments"`
}

// Comment is embedded in a Post. The thread structure is flat: replies point
// at their parent via ParentID, nil meaning top-level.
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	User      primitive.ObjectID  `bson:"user" json:"user"`
	Name      string              `bson:"name" json:"name"` // commenter name snapshot
	Content   string              `bson:"content" json:"content"`
	ParentID  *primitive.ObjectID `bson:"parentId" json:"parentId"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
}

// LikeResult is what a like toggle reports back so the client can resync
// without a second fetch.
type LikeResult struct {
	Liked      bool                 `json:"liked"`
	LikesCount int                  `json:"likesCount"`
	Likes      []primitive.ObjectID `json:"likes"`
}
