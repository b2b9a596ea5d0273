package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jengzang/ridetiles/internal/repository"
	"github.com/jengzang/ridetiles/internal/service"
	"github.com/jengzang/ridetiles/internal/tiles"
	"github.com/jengzang/ridetiles/pkg/response"
	"github.com/pkg/errors"
)

var badInput = []error{
	service.ErrInvalidInput,
	tiles.ErrInvalidCoordinate,
	tiles.ErrInvalidZoom,
	tiles.ErrInvalidK,
	tiles.ErrInvalidDepth,
	tiles.ErrInvalidSquare,
	tiles.ErrInvalidOptions,
}

// fail maps err to a 400, 404 or 500 response
func fail(c *gin.Context, err error) {
	_ = c.Error(err)

	if errors.Is(err, repository.ErrNotFound) {
		response.NotFound(c, err.Error())
		return
	}
	for _, target := range badInput {
		if errors.Is(err, target) {
			response.BadRequest(c, err.Error())
			return
		}
	}
	response.InternalError(c, err.Error())
}
