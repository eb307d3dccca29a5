package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// crudService 各平铺内容服务共有的接口
type crudService[T any, In any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id uint) (*T, error)
	Create(ctx context.Context, input In) (*T, error)
	Update(ctx context.Context, id uint, input In) (*T, error)
	Delete(ctx context.Context, id uint) error
}

// Resource 单个内容集合的 CRUD 处理器
type Resource interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type resourceHandler[T any, In any] struct {
	name string
	svc  crudService[T, In]
}

func newResourceHandler[T any, In any](name string, svc crudService[T, In]) *resourceHandler[T, In] {
	return &resourceHandler[T, In]{name: name, svc: svc}
}

func (h *resourceHandler[T, In]) Create(c *gin.Context) {
	var input In
	if !bindJSON(c, &input, "invalid request body") {
		return
	}

	item, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err, "failed to create "+h.name)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *resourceHandler[T, In]) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "failed to list "+h.name+" entries")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *resourceHandler[T, In]) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	item, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "failed to load "+h.name)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *resourceHandler[T, In]) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input In
	if !bindJSON(c, &input, "invalid request body") {
		return
	}

	item, err := h.svc.Update(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "failed to update "+h.name)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *resourceHandler[T, In]) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err, "failed to delete "+h.name)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": h.name + " deleted successfully"})
}
