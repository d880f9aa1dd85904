package member

import (
	"net/http"

	"github.com/gin-gonic/gin"
	sharedError "github.com/sample1/member-api/internal/shared/error"
	"github.com/sample1/member-api/internal/shared/handler"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

func (h *MemberHandler) Register(c *gin.Context) {
	var request MemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Register(c.Request.Context(), &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := handler.ParamInt64(c, "id")
	if !ok {
		return
	}

	response, err := h.memberService.Get(c.Request.Context(), id)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) List(c *gin.Context) {
	var query ListMembersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	response, err := h.memberService.List(c.Request.Context(), &query)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Update(c *gin.Context) {
	id, ok := handler.ParamInt64(c, "id")
	if !ok {
		return
	}

	var request UpdateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Update(c.Request.Context(), id, &request)
	if err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Delete(c *gin.Context) {
	id, ok := handler.ParamInt64(c, "id")
	if !ok {
		return
	}

	var query DeleteMemberQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handler.RespondError(c, err, sharedError.InvalidRequest)
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), id, query.Version); err != nil {
		handler.RespondDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Validate checks a candidate without storing it
func (h *MemberHandler) Validate(c *gin.Context) {
	var request MemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	result := h.memberService.Validate(&request)
	violations := result.Violations
	if violations == nil {
		violations = []Violation{}
	}

	c.JSON(http.StatusOK, ValidateResponse{
		Valid:      result.Valid(),
		Violations: violations,
	})
}
