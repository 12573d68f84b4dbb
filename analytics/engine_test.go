package analytics

import (
	"testing"

	"miniblog/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func stageValue(t *testing.T, stage bson.D, op string) bson.D {
	t.Helper()
	require.Len(t, stage, 1)
	require.Equal(t, op, stage[0].Key)
	v, ok := stage[0].Value.(bson.D)
	require.True(t, ok, "%s stage value should be a bson.D", op)
	return v
}

func TestTopAuthorsPipeline(t *testing.T) {
	pipeline := topAuthorsPipeline()
	require.Len(t, pipeline, 2)

	group := stageValue(t, pipeline[0], "$group")
	assert.Equal(t, bson.E{Key: "_id", Value: "$author"}, group[0])
	assert.Equal(t, bson.E{Key: "postCount", Value: bson.D{{Key: "$sum", Value: 1}}}, group[1])

	// Count descending, author name ascending on ties — key order in the
	// sort document is the tie-break order
	sort := stageValue(t, pipeline[1], "$sort")
	require.Len(t, sort, 2)
	assert.Equal(t, bson.E{Key: "postCount", Value: -1}, sort[0])
	assert.Equal(t, bson.E{Key: "_id", Value: 1}, sort[1])
}

func TestTopCommentedPipeline(t *testing.T) {
	pipeline := topCommentedPipeline("comments")
	require.Len(t, pipeline, 6)

	// Comment counts are joined first, then ranked
	assert.Equal(t, "$lookup", pipeline[0][0].Key)
	assert.Equal(t, "$addFields", pipeline[1][0].Key)
	assert.Equal(t, "$project", pipeline[2][0].Key)

	sort := stageValue(t, pipeline[3], "$sort")
	require.Len(t, sort, 2)
	assert.Equal(t, bson.E{Key: "commentCount", Value: -1}, sort[0])
	assert.Equal(t, bson.E{Key: "createdAt", Value: -1}, sort[1])

	require.Equal(t, "$limit", pipeline[4][0].Key)
	assert.Equal(t, 5, pipeline[4][0].Value)

	// Output carries only id, title, author, commentCount (createdAt is
	// kept for decoding but never serialized); content must be dropped
	project := stageValue(t, pipeline[5], "$project")
	fields := make([]string, 0, len(project))
	for _, e := range project {
		fields = append(fields, e.Key)
		assert.Equal(t, 1, e.Value, "projection of %s should be inclusive", e.Key)
	}
	assert.ElementsMatch(t, []string{"title", "author", "createdAt", "commentCount"}, fields)
	assert.NotContains(t, fields, "content")
}

func TestListPipeline(t *testing.T) {
	q := query.Build(query.RawListQuery{Author: "alice", Page: "3", Limit: "20"})

	pipeline := listPipeline(q, "comments")
	require.Len(t, pipeline, 7)

	// Filter first, then the comment-count join, then ordering and paging
	require.Equal(t, "$match", pipeline[0][0].Key)
	filter, ok := pipeline[0][0].Value.(bson.M)
	require.True(t, ok)
	assert.Contains(t, filter, "author")

	assert.Equal(t, "$lookup", pipeline[1][0].Key)
	assert.Equal(t, "$addFields", pipeline[2][0].Key)
	assert.Equal(t, "$project", pipeline[3][0].Key)

	sort := stageValue(t, pipeline[4], "$sort")
	require.Len(t, sort, 1)
	assert.Equal(t, bson.E{Key: "createdAt", Value: -1}, sort[0])

	require.Equal(t, "$skip", pipeline[5][0].Key)
	assert.Equal(t, int64(40), pipeline[5][0].Value)

	require.Equal(t, "$limit", pipeline[6][0].Key)
	assert.Equal(t, int64(20), pipeline[6][0].Value)
}

func TestCommentCountStages(t *testing.T) {
	stages := commentCountStages("comments")
	require.Len(t, stages, 3)

	lookup := stages[0]
	require.Equal(t, "$lookup", lookup[0].Key)
	spec, ok := lookup[0].Value.(bson.D)
	require.True(t, ok)
	assert.Equal(t, bson.E{Key: "from", Value: "comments"}, spec[0])

	// The join sub-pipeline counts inside the store instead of pulling
	// comment documents back
	var pipelineStage interface{}
	for _, e := range spec {
		if e.Key == "pipeline" {
			pipelineStage = e.Value
		}
	}
	require.NotNil(t, pipelineStage)
	sub, ok := pipelineStage.(bson.A)
	require.True(t, ok)
	require.Len(t, sub, 2)
	countStage, ok := sub[1].(bson.D)
	require.True(t, ok)
	assert.Equal(t, "$count", countStage[0].Key)

	// And the join output array is projected away before documents
	// leave the pipeline
	project := stages[2]
	require.Equal(t, "$project", project[0].Key)
	assert.Equal(t, bson.D{{Key: "commentTotals", Value: 0}}, project[0].Value)
}
