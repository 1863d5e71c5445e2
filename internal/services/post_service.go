package services

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/udhekryqi/udhekryqi-backend/internal/auth"
	"github.com/udhekryqi/udhekryqi-backend/internal/models"
)

// PostService owns the posts collection and every mutation of the embedded
// engagement state (likes, comments). Like and comment updates are always
// single-document atomic operations, never read-then-write on the like set.
type PostService struct {
	col *mongo.Collection
}

func NewPostService(db *mongo.Database) *PostService {
	return &PostService{col: db.Collection("posts")}
}

// PostUpdate enumerates the fields an admin edit may touch. A nil field is
// left unchanged. AuthorName is included on purpose: a direct admin edit is
// the only way the creation-time snapshot ever changes.
type PostUpdate struct {
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	Tags       []string `json:"tags"`
	Media      []string `json:"media"`
	AuthorName *string  `json:"authorName"`
}

// NormalizeTags lower-cases and trims tags, dropping any that trim to empty.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *PostService) Create(ctx context.Context, authorID primitive.ObjectID, authorName, title, content string, tags, media []string) (*models.Post, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Title and content are required")
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:         primitive.NewObjectID(),
		CreatedAt:  now,
		UpdatedAt:  now,
		Title:      strings.TrimSpace(title),
		Content:    content,
		Tags:       NormalizeTags(tags),
		Media:      media,
		Author:     authorID,
		AuthorName: authorName,
		Likes:      []primitive.ObjectID{},
		Comments:   []models.Comment{},
	}
	if post.Media == nil {
		post.Media = []string{}
	}

	if _, err := s.col.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Update(ctx context.Context, id primitive.ObjectID, upd PostUpdate) (*models.Post, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = strings.TrimSpace(*upd.Title)
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Tags != nil {
		set["tags"] = NormalizeTags(upd.Tags)
	}
	if upd.Media != nil {
		set["media"] = upd.Media
	}
	if upd.AuthorName != nil {
		set["authorName"] = strings.TrimSpace(*upd.AuthorName)
	}

	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, after).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *PostService) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteByAuthor removes every post authored by the given user. Backs the
// deletePosts flag of account deletion.
func (s *PostService) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) (int64, error) {
	res, err := s.col.DeleteMany(ctx, bson.M{"author": authorID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ToggleLike flips the user's membership in the post's like set. Each branch
// is one guarded document update ($pull behind a membership filter, $addToSet
// behind its absence), so two concurrent toggles can never produce a
// duplicate entry. Returns the new membership flag, the new cardinality and
// the full updated set so the caller resyncs without a second fetch.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID primitive.ObjectID) (*models.LikeResult, error) {
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)
	now := time.Now().UTC()

	var post models.Post
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": postID, "likes": userID},
		bson.M{"$pull": bson.M{"likes": userID}, "$set": bson.M{"updatedAt": now}},
		after,
	).Decode(&post)
	if err == nil {
		return &models.LikeResult{Liked: false, LikesCount: len(post.Likes), Likes: post.Likes}, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// Not currently liked (or post absent): add, with the filter distinguishing
	// the two cases.
	err = s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}, "$set": bson.M{"updatedAt": now}},
		after,
	).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &models.LikeResult{Liked: true, LikesCount: len(post.Likes), Likes: post.Likes}, nil
}

// AddComment appends a comment to the post. ParentID is stored as supplied —
// nil for a top-level comment — without checking that the parent exists,
// matching how the tree is rebuilt on read. Name and content must be
// non-empty after trimming.
func (s *PostService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, name, content string, parentID *primitive.ObjectID) (*models.Comment, error) {
	name = strings.TrimSpace(name)
	content = strings.TrimSpace(content)
	if name == "" || content == "" {
		return nil, models.NewValidationError("Name and content are required")
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Name:      name,
		Content:   content,
		ParentID:  parentID,
		CreatedAt: time.Now().UTC(),
	}

	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}, "$set": bson.M{"updatedAt": comment.CreatedAt}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, models.ErrNotFound
	}
	return &comment, nil
}

// DeleteComment removes a comment and its whole reply subtree. Only the
// comment's owner or an admin may delete it. The subtree is resolved from the
// fetched document and pulled in a single update.
func (s *PostService) DeleteComment(ctx context.Context, postID, commentID, requesterID primitive.ObjectID, requesterRole string) error {
	post, err := s.Get(ctx, postID)
	if err != nil {
		return err
	}

	var comment *models.Comment
	for i := range post.Comments {
		if post.Comments[i].ID == commentID {
			comment = &post.Comments[i]
			break
		}
	}
	if comment == nil {
		return models.ErrNotFound
	}

	if !auth.IsSelfOrAdmin(requesterID.Hex(), comment.User.Hex(), requesterRole) {
		return models.ErrForbidden
	}

	ids := CommentSubtreeIDs(post.Comments, commentID)
	_, err = s.col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{
			"$pull": bson.M{"comments": bson.M{"_id": bson.M{"$in": ids}}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}
