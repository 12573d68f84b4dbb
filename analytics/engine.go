package analytics

import (
	"context"

	"miniblog/models"
	"miniblog/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Engine runs the read-only aggregation pipelines over the posts and
// comments collections. It holds no state beyond the collection handles
// and never caches: every call reads the live collections.
type Engine struct {
	posts    *mongo.Collection
	comments *mongo.Collection
}

func NewEngine(posts, comments *mongo.Collection) *Engine {
	return &Engine{posts: posts, comments: comments}
}

// TopAuthors groups all posts by author and counts per group. Sorted by
// post count descending, author name ascending on ties. No limit.
func (e *Engine) TopAuthors(ctx context.Context) ([]models.AuthorPostCount, error) {
	cursor, err := e.posts.Aggregate(ctx, topAuthorsPipeline())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []models.AuthorPostCount{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func topAuthorsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$author"},
			{Key: "postCount", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "postCount", Value: -1},
			{Key: "_id", Value: 1},
		}}},
	}
}

// TopCommented returns the 5 posts with the most comments, ties broken
// by most recent creation time. Posts with no comments count as 0.
// Content is projected away.
func (e *Engine) TopCommented(ctx context.Context) ([]models.CommentedPost, error) {
	cursor, err := e.posts.Aggregate(ctx, topCommentedPipeline(e.comments.Name()))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	results := []models.CommentedPost{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func topCommentedPipeline(commentsColl string) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	pipeline = append(pipeline, commentCountStages(commentsColl)...)
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{
			{Key: "commentCount", Value: -1},
			{Key: "createdAt", Value: -1},
		}}},
		bson.D{{Key: "$limit", Value: 5}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "author", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "commentCount", Value: 1},
		}}},
	)
}

// ListPosts applies a normalized listing query: filter, enrich each
// matching post with its comment count, sort by creation time descending
// and page. The total is a second, independent count over the same
// filter so pagination metadata reflects the whole match set, not the
// returned slice. The two queries may see different snapshots under
// concurrent writes; that is accepted.
func (e *Engine) ListPosts(ctx context.Context, q query.ListQuery) ([]models.EnrichedPost, int64, error) {
	cursor, err := e.posts.Aggregate(ctx, listPipeline(q, e.comments.Name()))
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	items := []models.EnrichedPost{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}

	total, err := e.posts.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func listPipeline(q query.ListQuery, commentsColl string) mongo.Pipeline {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: q.Filter}},
	}
	pipeline = append(pipeline, commentCountStages(commentsColl)...)
	return append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		bson.D{{Key: "$skip", Value: q.Skip}},
		bson.D{{Key: "$limit", Value: q.Limit}},
	)
}

// commentCountStages joins the comment count for each post onto the
// document as commentCount. The lookup sub-pipeline counts inside the
// store, so per-post comment arrays are never materialized into the
// result set.
func commentCountStages(commentsColl string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: commentsColl},
			{Key: "let", Value: bson.D{{Key: "pid", Value: "$_id"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{
					{Key: "$expr", Value: bson.D{
						{Key: "$eq", Value: bson.A{"$postId", "$$pid"}},
					}},
				}}},
				bson.D{{Key: "$count", Value: "count"}},
			}},
			{Key: "as", Value: "commentTotals"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "commentCount", Value: bson.D{
				{Key: "$ifNull", Value: bson.A{
					bson.D{{Key: "$arrayElemAt", Value: bson.A{"$commentTotals.count", 0}}},
					0,
				}},
			}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "commentTotals", Value: 0}}}},
	}
}
