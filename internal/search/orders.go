package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/ecommerce/internal/models"
)

var ErrSearch = errors.New("search failed")

type OrderDocument struct {
	ID           uint      `json:"id"`
	Username     string    `json:"username"`
	Status       string    `json:"status"`
	Total        int64     `json:"total"`
	Products     []string  `json:"products"`
	City         string    `json:"city"`
	CreationDate time.Time `json:"creation_date"`
}

func NewOrderDocument(o *models.Order) OrderDocument {
	names := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if it.Product.Name != "" {
			names = append(names, it.Product.Name)
		}
	}
	return OrderDocument{
		ID:           o.ID,
		Username:     o.User.Username,
		Status:       string(o.Status),
		Total:        o.Total,
		Products:     names,
		City:         o.Address.City,
		CreationDate: o.CreationDate,
	}
}

type OrderIndex struct {
	ES    *elasticsearch.Client
	Index string
}

func (i *OrderIndex) IndexOrder(ctx context.Context, o *models.Order) error {
	body, err := json.Marshal(NewOrderDocument(o))
	if err != nil {
		return err
	}
	res, err := i.ES.Index(
		i.Index,
		bytes.NewReader(body),
		i.ES.Index.WithDocumentID(strconv.FormatUint(uint64(o.ID), 10)),
		i.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("index order %d: %w", o.ID, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return fmt.Errorf("index order %d: %s: %s", o.ID, res.Status(), msg)
	}
	return nil
}

func Query(q string, from, size int) map[string]any {
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"username^2", "products", "status", "city"},
				"fuzziness": "AUTO",
			},
		},
		"sort": []any{map[string]any{"id": map[string]any{"order": "desc"}}},
		"from": from,
		"size": size,
	}
}

func (i *OrderIndex) Search(ctx context.Context, q string, from, size int) (int64, []OrderDocument, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(Query(q, from, size)); err != nil {
		return 0, nil, err
	}

	res, err := i.ES.Search(
		i.ES.Search.WithContext(ctx),
		i.ES.Search.WithIndex(i.Index),
		i.ES.Search.WithBody(&buf),
		i.ES.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrSearch, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("%w: %s", ErrSearch, res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source OrderDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("decode search response: %w", err)
	}

	docs := make([]OrderDocument, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}
