// Package search maintains an optional elasticsearch index over the
// catalog. When no cluster is configured the rest of the system falls
// back to repository substring search; a nil *Service drops index
// updates silently.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"bikeshop/internal/models"
)

// Doc is the flattened catalog entry stored in the index: bikes carry
// brand+model in Name, parts their name, with Description holding the
// secondary attribute.
type Doc struct {
	ID          uint            `json:"id"`
	Kind        models.ItemKind `json:"kind"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Quantity    uint            `json:"quantity"`
}

type Service struct {
	ES    *elasticsearch.Client
	Index string
}

func docID(kind models.ItemKind, id uint) string {
	return fmt.Sprintf("%s-%d", kind, id)
}

func (s *Service) IndexBike(ctx context.Context, bike *models.Bike) error {
	if s == nil {
		return nil
	}
	return s.index(ctx, Doc{
		ID:          bike.ID,
		Kind:        models.KindBike,
		Name:        bike.Brand + " " + bike.Model,
		Description: bike.Brand,
		Price:       bike.Price,
		Quantity:    bike.Quantity,
	})
}

func (s *Service) IndexPart(ctx context.Context, part *models.Part) error {
	if s == nil {
		return nil
	}
	return s.index(ctx, Doc{
		ID:          part.ID,
		Kind:        models.KindPart,
		Name:        part.Name,
		Description: part.Category,
		Price:       part.Price,
		Quantity:    part.Quantity,
	})
}

func (s *Service) index(ctx context.Context, doc Doc) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return err
	}
	res, err := s.ES.Index(
		s.Index,
		&buf,
		s.ES.Index.WithDocumentID(docID(doc.Kind, doc.ID)),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index %s: %w", docID(doc.Kind, doc.ID), err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index %s: %s", docID(doc.Kind, doc.ID), res.Status())
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, kind models.ItemKind, id uint) error {
	if s == nil {
		return nil
	}
	res, err := s.ES.Delete(s.Index, docID(kind, id), s.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete %s: %w", docID(kind, id), err)
	}
	defer res.Body.Close()
	// 404 means the doc was never indexed, which is fine
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete %s: %s", docID(kind, id), res.Status())
	}
	return nil
}

func (s *Service) Search(ctx context.Context, query string, from, size int) (int64, []Doc, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct{ Value int64 } `json:"total"`
			Hits  []struct {
				Source Doc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	docs := make([]Doc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
