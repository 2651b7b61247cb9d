package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ferrybackend/internal/config"
	"ferrybackend/internal/domain"
	"ferrybackend/internal/repositories"
)

// SearchSailings lists scheduled sailings for a route and date.
func SearchSailings(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	date := c.Query("date")
	if from == "" || to == "" {
		RespondDomainError(c, domain.ValidationError{Field: "route", Msg: "from and to are required"})
		return
	}

	repo := repositories.SailingRepository{DB: config.DB}
	sailings, err := repo.Search(c.Request.Context(), from, to, date)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sailings": sailings, "count": len(sailings)})
}

// GetSailing returns one scheduled sailing.
func GetSailing(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "id", Msg: "invalid sailing id"})
		return
	}

	repo := repositories.SailingRepository{DB: config.DB}
	sailing, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, sailing)
}
