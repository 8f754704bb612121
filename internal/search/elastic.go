package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/PawBook/post-service/internal/model"
	elasticsearch "github.com/elastic/go-elasticsearch/v8"
)

type elasticIndex struct {
	es *elasticsearch.Client
}

func NewElastic(addr string) (Index, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{addr},
	})
	if err != nil {
		return nil, err
	}

	return &elasticIndex{
		es: es,
	}, nil
}

func (i *elasticIndex) IndexPost(ctx context.Context, doc model.PostDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	res, err := i.es.Index(
		postsIndex,
		bytes.NewReader(body),
		i.es.Index.WithDocumentID(strconv.FormatInt(doc.ID, 10)),
		i.es.Index.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index post(%d): %s", doc.ID, res.String())
	}

	return nil
}

func (i *elasticIndex) SearchPosts(ctx context.Context, query string, from int, size int) ([]model.PostDocument, error) {
	searchBody := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"fields":    []string{"pet_names", "caption"},
				"query":     query,
				"fuzziness": 1,
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(searchBody); err != nil {
		return nil, err
	}

	res, err := i.es.Search(
		i.es.Search.WithContext(ctx),
		i.es.Search.WithIndex(postsIndex),
		i.es.Search.WithBody(&buf),
		i.es.Search.WithFrom(from),
		i.es.Search.WithSize(size),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("failed to search posts: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source model.PostDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}

	docs := make([]model.PostDocument, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		docs = append(docs, hit.Source)
	}

	return docs, nil
}
