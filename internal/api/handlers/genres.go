package handlers

import (
	"net/http"

	"github.com/Conceptual-Machines/echo-api/internal/models"
	"github.com/gin-gonic/gin"
)

type subGenreResponse struct {
	Name       string `json:"name"`
	SamplePath string `json:"sample_path"`
}

type genreResponse struct {
	Name       string             `json:"name"`
	SamplePath string             `json:"sample_path"`
	SubGenres  []subGenreResponse `json:"sub_genres"`
}

// ListGenres returns the tile catalog with preview clip paths
func ListGenres(c *gin.Context) {
	out := make([]genreResponse, 0, len(models.Genres))
	for _, g := range models.Genres {
		subs := make([]subGenreResponse, 0, len(g.SubGenres))
		for _, sub := range g.SubGenres {
			subs = append(subs, subGenreResponse{Name: sub, SamplePath: models.GenreSamplePath(g.Name, sub)})
		}
		out = append(out, genreResponse{
			Name:       g.Name,
			SamplePath: models.GenreSamplePath(g.Name, ""),
			SubGenres:  subs,
		})
	}
	c.JSON(http.StatusOK, gin.H{"genres": out})
}
