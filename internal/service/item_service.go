package service

import (
	"context"
	"fmt"
	"time"

	"itemhub/internal/apierr"
	"itemhub/internal/model"
	"itemhub/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemService defines operations for items
type ItemService interface {
	Create(ctx context.Context, req model.CreateItemRequest, owner *primitive.ObjectID) (*model.Item, error)
	GetByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Update(ctx context.Context, id string, req model.UpdateItemRequest) (*model.Item, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, params model.SearchParams) (*model.SearchResult, error)
}

type itemService struct {
	repo repository.ItemRepository
}

// NewItemService creates a new ItemService
func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func parseItemID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apierr.InvalidID("item")
	}
	return oid, nil
}

func (s *itemService) Create(ctx context.Context, req model.CreateItemRequest, owner *primitive.ObjectID) (*model.Item, error) {
	now := time.Now()
	item := &model.Item{
		Title:     req.Title,
		Content:   req.Content,
		Owner:     owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item in repo: %w", err)
	}
	return item, nil
}

func (s *itemService) GetByID(ctx context.Context, id string) (*model.Item, error) {
	oid, err := parseItemID(id)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to find item by ID: %w", err)
	}
	if item == nil {
		return nil, apierr.ItemNotFound()
	}
	return item, nil
}

func (s *itemService) List(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// Update merges the provided fields into the stored item. Anyone who knows an
// item's ID may mutate it; items record an owner but ownership is not enforced.
func (s *itemService) Update(ctx context.Context, id string, req model.UpdateItemRequest) (*model.Item, error) {
	oid, err := parseItemID(id)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("failed to find item for update: %w", err)
	}
	if existing == nil {
		return nil, apierr.ItemNotFound()
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Content != nil {
		existing.Content = *req.Content
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update item in repo: %w", err)
	}
	return existing, nil
}

func (s *itemService) Delete(ctx context.Context, id string) error {
	oid, err := parseItemID(id)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, oid)
	if err != nil {
		return fmt.Errorf("failed to delete item in repo: %w", err)
	}
	if !deleted {
		return apierr.ItemNotFound()
	}
	return nil
}

func (s *itemService) Search(ctx context.Context, params model.SearchParams) (*model.SearchResult, error) {
	items, total, err := s.repo.Search(ctx, params.Query, params.Page, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))
	if items == nil {
		items = []model.Item{}
	}

	return &model.SearchResult{
		Items: items,
		Pagination: model.Pagination{
			Page:        params.Page,
			Limit:       params.Limit,
			Total:       total,
			TotalPages:  totalPages,
			HasNextPage: params.Page < totalPages,
			HasPrevPage: params.Page > 1,
		},
	}, nil
}
