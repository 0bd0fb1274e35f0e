package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/inventory/services/inventory/internal/models"
)

var ErrDisabled = errors.New("search is not configured")

// Index mirrors items into a full-text index and queries it.
type Index interface {
	IndexItem(ctx context.Context, item models.Item) error
	DeleteItem(ctx context.Context, id string) error
	Search(ctx context.Context, query string, from, size int) (int64, []models.Item, error)
}

type Nop struct{}

func (Nop) IndexItem(context.Context, models.Item) error { return nil }
func (Nop) DeleteItem(context.Context, string) error { return nil }
func (Nop) Search(context.Context, string, int, int) (int64, []models.Item, error) {
	return 0, nil, ErrDisabled
}

type ESIndex struct {
	Client *elasticsearch.Client
	Index  string
}

func NewClient(url, user, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Username:  user,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch info: %s: %s", res.Status(), body)
	}
	return client, nil
}

// New returns Nop when url is empty.
func New(url, user, password, index string) (Index, error) {
	if url == "" {
		return Nop{}, nil
	}
	client, err := NewClient(url, user, password)
	if err != nil {
		return nil, err
	}
	return &ESIndex{Client: client, Index: index}, nil
}

func (s *ESIndex) IndexItem(ctx context.Context, item models.Item) error {
	body, err := json.Marshal(item)
	if err != nil {
		return err
	}
	res, err := s.Client.Index(
		s.Index,
		bytes.NewReader(body),
		s.Client.Index.WithContext(ctx),
		s.Client.Index.WithDocumentID(item.ID.String()),
	)
	if err != nil {
		return fmt.Errorf("index item: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index item: %s", res.Status())
	}
	return nil
}

func (s *ESIndex) DeleteItem(ctx context.Context, id string) error {
	res, err := s.Client.Delete(s.Index, id, s.Client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete item: %s", res.Status())
	}
	return nil
}

func (s *ESIndex) Search(ctx context.Context, query string, from, size int) (int64, []models.Item, error) {
	body := map[string]any{
		"query": map[string]any{
			"match": map[string]any{
				"name": map[string]any{
					"query":     query,
					"fuzziness": "AUTO",
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := s.Client.Search(
		s.Client.Search.WithContext(ctx),
		s.Client.Search.WithIndex(s.Index),
		s.Client.Search.WithBody(&buf),
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
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Item `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	items := make([]models.Item, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		items[i] = hit.Source
	}
	return r.Hits.Total.Value, items, nil
}
