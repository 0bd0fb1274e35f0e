package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/inventory/pkg/events"
	"github.com/Skotchmaster/inventory/pkg/logging"
	"github.com/Skotchmaster/inventory/services/inventory/internal/models"
	"github.com/Skotchmaster/inventory/services/inventory/internal/repo"
	"github.com/Skotchmaster/inventory/services/inventory/internal/search"
	"github.com/Skotchmaster/inventory/services/inventory/internal/transport"
)

type InventoryService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
	Search search.Index
}

func (s *InventoryService) publish(ctx context.Context, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Events.PublishEvent(pubCtx, events.InventoryTopic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_failed", "topic", events.InventoryTopic, "type", event["type"], "error", err)
	}
}

func (s *InventoryService) index(ctx context.Context, item *models.Item) {
	if s.Search == nil {
		return
	}
	if err := s.Search.IndexItem(ctx, *item); err != nil {
		logging.FromContext(ctx).Warn("index_failed", "item_id", item.ID.String(), "error", err)
	}
}

func (s *InventoryService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.Repo.ListItems(ctx)
}

func (s *InventoryService) CreateItem(ctx context.Context, req transport.CreateItemRequest) (*models.Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	item, err := s.Repo.CreateItem(ctx, &models.Item{
		Name:     name,
		Quantity: req.Quantity,
		Price:    req.Price,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, item.ID.String(), map[string]any{
		"type":     "item_created",
		"itemID":   item.ID.String(),
		"name":     item.Name,
		"quantity": item.Quantity,
		"price":    item.Price,
	})
	s.index(ctx, item)
	return item, nil
}

func (s *InventoryService) PatchItem(ctx context.Context, req transport.PatchItemRequest, id uuid.UUID) (*models.Item, error) {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrValidation)
		}
		req.Name = &name
	}

	item, err := s.Repo.PatchItem(ctx, req, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.publish(ctx, item.ID.String(), map[string]any{
		"type":     "item_updated",
		"itemID":   item.ID.String(),
		"name":     item.Name,
		"quantity": item.Quantity,
		"price":    item.Price,
	})
	s.index(ctx, item)
	return item, nil
}

func (s *InventoryService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.publish(ctx, id.String(), map[string]any{
		"type":   "item_deleted",
		"itemID": id.String(),
	})
	if s.Search != nil {
		if err := s.Search.DeleteItem(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("unindex_failed", "item_id", id.String(), "error", err)
		}
	}
	return nil
}

func (s *InventoryService) SearchItems(ctx context.Context, query string, offset, limit int) (int64, []models.Item, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, fmt.Errorf("%w: query is required", ErrValidation)
	}
	if s.Search == nil {
		return 0, nil, search.ErrDisabled
	}
	return s.Search.Search(ctx, query, offset, limit)
}
