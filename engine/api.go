package engine

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type routeInfo struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// GetHealth reports that the server is up
func (serverHandler *ServerHandler) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": Version,
		"routes":  serverHandler.Table.Len(),
	})
}

// GetRoutes returns the client route table in declaration order
func (serverHandler *ServerHandler) GetRoutes(c echo.Context) error {
	entries := serverHandler.Table.Entries()
	result := make([]routeInfo, 0, len(entries))
	for _, route := range entries {
		result = append(result, routeInfo{Path: route.Path, Name: route.Name})
	}
	return c.JSON(http.StatusOK, result)
}

// GetAboutInfo returns information about the application configuration
func (serverHandler *ServerHandler) GetAboutInfo(c echo.Context) error {
	aboutInfo := map[string]interface{}{
		"name":        serverHandler.ServerConfig.AppName,
		"title":       serverHandler.ServerConfig.Title,
		"description": serverHandler.ServerConfig.Description,
		"version":     Version,
		"shell":       serverHandler.ServerConfig.Shell,
		"paths":       serverHandler.Table.Paths(),
	}
	return c.JSON(http.StatusOK, aboutInfo)
}
