// Package api exposes the persisted output files over a read-only HTTP API.
package api

import (
	"net/http"
	"os"

	"go-glassdoor-scraper/internal/scraper"
	"go-glassdoor-scraper/internal/storage"

	"github.com/gin-gonic/gin"
)

func NewRouter(store *storage.Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Glassdoor scraper API is running!",
			"status":  "healthy",
		})
	})

	r.GET("/groups", func(c *gin.Context) {
		groups, err := store.Groups()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"groups": groups})
	})

	groups := r.Group("/groups/:group", requireGroup(store))
	groups.GET("/jobs", func(c *gin.Context) {
		c.JSON(http.StatusOK, storage.Load[scraper.JobRecord](store, c.Param("group"), storage.JobsFile))
	})
	groups.GET("/salaries", func(c *gin.Context) {
		c.JSON(http.StatusOK, storage.Load[scraper.SalaryRecord](store, c.Param("group"), storage.SalariesFile))
	})

	return r
}

// requireGroup rejects malformed group names and groups never scraped.
func requireGroup(store *storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		group := c.Param("group")
		if err := storage.ValidateGroup(group); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if info, err := os.Stat(store.GroupDir(group)); err != nil || !info.IsDir() {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown group"})
			return
		}
		c.Next()
	}
}
