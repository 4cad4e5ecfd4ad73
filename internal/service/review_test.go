package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veldkraal/farm_shop/internal/transport"
)

func TestCreateReview(t *testing.T) {
	t.Parallel()

	r := newTestRepo(t)
	svc := &ReviewService{Repo: r}
	ctx := context.Background()

	user := createUser(t, r, "reviewer@example.com")
	prod := createProduct(t, r, "Farm Butter", "farm-butter", 6000)

	review, err := svc.Create(ctx, user.ID, prod.ID, transport.CreateReviewRequest{Rating: 5, Comment: "Best butter in the Overberg"})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, prod.ID, review.ProductID)

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Create(ctx, user.ID, prod.ID, transport.CreateReviewRequest{Rating: rating})
		require.ErrorIs(t, err, ErrValidation)
	}

	_, err = svc.Create(ctx, user.ID, 9999, transport.CreateReviewRequest{Rating: 4})
	require.ErrorIs(t, err, ErrNotFound)

	total, reviews, err := svc.ListByProduct(ctx, prod.ID, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, reviews, 1)
	assert.Equal(t, user.ID, reviews[0].UserID)
}
