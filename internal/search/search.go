package search

import (
	"context"

	"github.com/PawBook/post-service/internal/model"
)

// postsIndex is the collection the denormalized post documents live in.
const postsIndex = "post"

// Index abstracts the search service. One document per post, written
// once at creation; reads are fuzzy matches over pet names and caption.
type Index interface {
	IndexPost(ctx context.Context, doc model.PostDocument) error
	SearchPosts(ctx context.Context, query string, from int, size int) ([]model.PostDocument, error)
}
