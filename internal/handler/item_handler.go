package handler

import (
	"net/http"

	"itemhub/internal/middleware"
	"itemhub/internal/model"
	"itemhub/internal/notify"
	"itemhub/internal/service"
	"itemhub/internal/validation"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ItemHandler handles item CRUD and search requests
type ItemHandler struct {
	service  service.ItemService
	notifier notify.Notifier
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(s service.ItemService, n notify.Notifier) *ItemHandler {
	return &ItemHandler{service: s, notifier: n}
}

// ownerID returns the authenticated user's ID, or nil for anonymous requests
func ownerID(c *gin.Context) *primitive.ObjectID {
	userIDVal, exists := c.Get(middleware.AuthUserKey)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return nil
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}
	return &oid
}

func (h *ItemHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if items == nil {
		items = []model.Item{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"items":   items,
		"count":   len(items),
	})
}

func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item":    item,
	})
}

func (h *ItemHandler) Create(c *gin.Context) {
	var req model.CreateItemRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		c.Error(apiErr)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req, ownerID(c))
	if err != nil {
		c.Error(err)
		return
	}
	h.notifier.Notify(c.Request.Context(), notify.EventItemCreated, item)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Item created successfully",
		"item":    item,
	})
}

func (h *ItemHandler) Update(c *gin.Context) {
	var req model.UpdateItemRequest
	if apiErr := validation.BindJSON(c, &req); apiErr != nil {
		c.Error(apiErr)
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}
	h.notifier.Notify(c.Request.Context(), notify.EventItemUpdated, item)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item updated successfully",
		"item":    item,
	})
}

func (h *ItemHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	h.notifier.Notify(c.Request.Context(), notify.EventItemDeleted, gin.H{"_id": id})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Item deleted successfully",
	})
}

func (h *ItemHandler) Search(c *gin.Context) {
	var params model.SearchParams
	if apiErr := validation.BindQuery(c, &params); apiErr != nil {
		c.Error(apiErr)
		return
	}

	result, err := h.service.Search(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"query":      params.Query,
		"results":    result.Items,
		"pagination": result.Pagination,
	})
}

// RegisterItemRoutes registers item routes. Reads are public; mutations go
// through optional auth so an owner is recorded when credentials are present.
func (h *ItemHandler) RegisterItemRoutes(rg *gin.RouterGroup, optionalAuthMW gin.HandlerFunc) {
	itemGroup := rg.Group("/items")
	{
		itemGroup.GET("", h.List)
		itemGroup.GET("/search", h.Search)
		itemGroup.GET("/:id", h.Get)
		itemGroup.POST("", optionalAuthMW, h.Create)
		itemGroup.PUT("/:id", optionalAuthMW, h.Update)
		itemGroup.DELETE("/:id", optionalAuthMW, h.Delete)
	}
}
