package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-survey-catalog/model"
)

// MatchRequest is the body of a match request. Query keys keep the order they were sent in;
// a null value asks for rows that leave the field open, an omitted key leaves it unconstrained.
type MatchRequest struct {
	Query model.Query `json:"query"`
}

// MatchHandler finds the best fitting entries of a catalog for a partial query.
func (api *API) MatchHandler(c *gin.Context) {
	name := c.Param("name")

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	result, err := api.engine.Match(c.Request.Context(), name, req.Query)
	if err != nil {
		SendEngineError(c, "match", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
