package httpresp

import "github.com/gin-gonic/gin"

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}

// SearchResponse distinguishes an empty result set from an error: a
// no-match search still answers 200 with Total 0.
type SearchResponse[T any] struct {
	Query   string `json:"query"`
	Results []T    `json:"results"`
	Total   int    `json:"total"`
}

func Search[T any](c *gin.Context, query string, results []T) {
	if results == nil {
		results = []T{}
	}
	c.JSON(200, SearchResponse[T]{
		Query:   query,
		Results: results,
		Total:   len(results),
	})
}
