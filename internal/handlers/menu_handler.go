package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imrishuroy/go-restaurant-orders/internal/menu"
	"github.com/imrishuroy/go-restaurant-orders/internal/validation"
)

const (
	menuNotFound    = "Menu item not found"
	menuFetchFailed = "Failed to fetch menu items"
)

func menuInput(req validation.MenuItemRequest) menu.Input {
	return menu.Input{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.MustFloat(),
		Category:    req.Category,
		Image:       req.Image,
		Available:   req.Available,
	}
}

// RegisterMenuRoutes registers the menu routes on g.
func RegisterMenuRoutes(g *gin.RouterGroup, cfg HandlerConfig) {
	v := validation.New()
	store := menu.NewStore(cfg.DynamoDBClient, cfg.MenuTable)
	r := g.Group("/menu")

	r.GET("", func(c *gin.Context) {
		items, err := store.List(c.Request.Context(), c.Query("category"))
		if err != nil {
			failure(c, err, menuNotFound, menuFetchFailed)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "items": items})
	})

	r.GET("/category/:category", func(c *gin.Context) {
		category := c.Param("category")
		items, err := store.List(c.Request.Context(), category)
		if err != nil {
			failure(c, err, menuNotFound, menuFetchFailed)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "category": category, "items": items})
	})

	r.GET("/:id", func(c *gin.Context) {
		item, err := store.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			failure(c, err, menuNotFound, "Failed to fetch menu item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "item": item})
	})

	r.POST("", func(c *gin.Context) {
		var req validation.MenuItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			failure(c, err, menuNotFound, "Failed to create menu item")
			return
		}
		item, err := store.Create(c.Request.Context(), menuInput(req))
		if err != nil {
			failure(c, err, menuNotFound, "Failed to create menu item")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Menu item created successfully", "item": item})
	})

	r.PUT("/:id", func(c *gin.Context) {
		var req validation.MenuItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			failure(c, err, menuNotFound, "Failed to update menu item")
			return
		}
		item, err := store.Replace(c.Request.Context(), c.Param("id"), menuInput(req))
		if err != nil {
			failure(c, err, menuNotFound, "Failed to update menu item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu item updated successfully", "item": item})
	})

	r.DELETE("/:id", func(c *gin.Context) {
		if err := store.Delete(c.Request.Context(), c.Param("id")); err != nil {
			failure(c, err, menuNotFound, "Failed to delete menu item")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Menu item deleted successfully"})
	})
}
