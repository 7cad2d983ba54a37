//go:build unit

package review_test

import (
	"strings"
	"testing"

	"barberbook/internal/domain/review"
	"barberbook/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReviewBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewReviewBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestReview(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, 5, actual.Rating().Value())
		assert.Equal(t, "Excellent service!", actual.Comment().String())
		assert.Equal(t, []string{"Professional", "On Time"}, actual.Tags().Values())
		assert.Empty(t, actual.Photos().Refs())
		assert.False(t, actual.SubmittedAt().IsZero())
	})

	t.Run("rating validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "below minimum rating",
				mutate: func(b *builder.ReviewBuilder) { b.Rating = 0 },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "minimum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.Rating = 1 },
			},
			{
				name:   "maximum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.Rating = 5 },
			},
			{
				name:   "above maximum rating",
				mutate: func(b *builder.ReviewBuilder) { b.Rating = 6 },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "negative rating",
				mutate: func(b *builder.ReviewBuilder) { b.Rating = -1 },
				errIs:  review.ErrInvalidRating,
			},
		})
	})

	t.Run("comment validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty comment is valid",
				mutate: func(b *builder.ReviewBuilder) { b.Comment = "" },
			},
			{
				name: "maximum length comment",
				mutate: func(b *builder.ReviewBuilder) {
					b.Comment = strings.Repeat("a", review.MaxCommentLength)
				},
			},
			{
				name: "comment exceeds maximum length",
				mutate: func(b *builder.ReviewBuilder) {
					b.Comment = strings.Repeat("a", review.MaxCommentLength+1)
				},
				errIs: review.ErrCommentTooLong,
			},
		})
	})

	t.Run("tag validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no tags is valid",
				mutate: func(b *builder.ReviewBuilder) { b.Tags = nil },
			},
			{
				name:   "empty tag is rejected",
				mutate: func(b *builder.ReviewBuilder) { b.Tags = []string{"Professional", " "} },
				errIs:  review.ErrInvalidTag,
			},
			{
				name: "tag exceeds maximum length",
				mutate: func(b *builder.ReviewBuilder) {
					b.Tags = []string{strings.Repeat("x", review.MaxTagLength+1)}
				},
				errIs: review.ErrInvalidTag,
			},
			{
				name: "too many tags",
				mutate: func(b *builder.ReviewBuilder) {
					tags := make([]string, review.MaxTags+1)
					for i := range tags {
						tags[i] = "tag" + strings.Repeat("a", i+1)
					}
					b.Tags = tags
				},
				errIs: review.ErrTooManyTags,
			},
		})
	})

	t.Run("photo validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "maximum photo count",
				mutate: func(b *builder.ReviewBuilder) {
					b.Photos = []string{"p1", "p2", "p3", "p4", "p5", "p6"}
				},
			},
			{
				name: "too many photos",
				mutate: func(b *builder.ReviewBuilder) {
					b.Photos = []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7"}
				},
				errIs: review.ErrTooManyPhotos,
			},
			{
				name:   "empty photo reference",
				mutate: func(b *builder.ReviewBuilder) { b.Photos = []string{""} },
				errIs:  review.ErrEmptyPhotoRef,
			},
		})
	})

	t.Run("comment trimming", func(t *testing.T) {
		comment, err := review.NewComment("  Trimmed comment  ")
		require.NoError(t, err)
		assert.Equal(t, "Trimmed comment", comment.String())
	})

	t.Run("tag de-duplication is case insensitive and order preserving", func(t *testing.T) {
		tags, err := review.NewTags([]string{"Professional", "on time", "professional", "On Time"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Professional", "on time"}, tags.Values())
		assert.True(t, tags.Contains("PROFESSIONAL"))
		assert.False(t, tags.Contains("Friendly"))
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		first, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)
		second, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}
