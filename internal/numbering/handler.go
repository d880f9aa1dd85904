package numbering

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedContext "github.com/sample1/member-api/internal/shared/context"
	"github.com/sample1/member-api/internal/shared/handler"
)

type NumberingHandler struct {
	numberingService *NumberingService
}

func NewNumberingHandler(numberingService *NumberingService) *NumberingHandler {
	return &NumberingHandler{
		numberingService: numberingService,
	}
}

func (h *NumberingHandler) Get(c *gin.Context) {
	response, err := h.numberingService.Current(c.Request.Context(), c.Param("seqId"))
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *NumberingHandler) Reset(c *gin.Context) {
	operator, ok := sharedContext.RequireOperatorID(c)
	if !ok {
		return
	}

	var request ResetRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.numberingService.Reset(c.Request.Context(), c.Param("seqId"), *request.NextVal, operator)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
