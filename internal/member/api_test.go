package member_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sample1/member-api/internal/member"
	"github.com/sample1/member-api/internal/model"
	"github.com/sample1/member-api/internal/numbering"
	sharedError "github.com/sample1/member-api/internal/shared/error"
	"github.com/sample1/member-api/internal/shared/metrics"
	"github.com/sample1/member-api/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRouter wires the member routes over an in-memory database
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	db := testutil.SetupTestDB(t)
	testutil.SeedNumbering(t, db, model.MemberSequenceID, 1)

	numberingService := numbering.NewNumberingService(db, numbering.NewNumberingRepository(1), metrics.NopRecorder{})
	memberService := member.NewMemberService(db, member.NewMemberRepository(), numberingService, member.NewValidator(), metrics.NopRecorder{})
	memberHandler := member.NewMemberHandler(memberService)

	router := testutil.SetupTestRouter()
	members := router.Group("/api/v1/members")
	members.POST("", memberHandler.Register)
	members.GET("", memberHandler.List)
	members.POST("/validate", memberHandler.Validate)
	members.GET("/:id", memberHandler.Get)
	members.PUT("/:id", memberHandler.Update)
	members.DELETE("/:id", memberHandler.Delete)
	return router
}

func registerTaro(t *testing.T, router *gin.Engine) member.MemberResponse {
	t.Helper()

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Body:   taroRequest(),
	})
	require.Equal(t, http.StatusCreated, recorder.Code)

	var resp member.MemberResponse
	testutil.ParseResponse(t, recorder, &resp)
	return resp
}

func TestRegisterAPI_Success(t *testing.T) {
	// Given
	router := setupTestRouter(t)

	// When
	resp := registerTaro(t, router)

	// Then
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, int64(0), resp.Version)
	assert.Equal(t, "taro@example.com", resp.Email)
}

func TestRegisterAPI_ValidationDetails(t *testing.T) {
	// Given: Name with digit and short phone
	router := setupTestRouter(t)
	req := taroRequest()
	req.Name = "Taro1"
	req.PhoneNumber = "0801"

	// When
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Body:   req,
	})

	// Then: 400 with one detail per failing field
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "MEMBER-003", errorResponse.Code)
	require.Len(t, errorResponse.Details, 2)
	assert.Equal(t, "name", errorResponse.Details[0].Field)
	assert.Equal(t, "pattern", errorResponse.Details[0].Rule)
	assert.Equal(t, "phoneNumber", errorResponse.Details[1].Field)
	assert.Equal(t, "size", errorResponse.Details[1].Rule)
	assert.NotEmpty(t, errorResponse.Details[0].Message)
}

func TestRegisterAPI_DuplicateEmail(t *testing.T) {
	router := setupTestRouter(t)
	registerTaro(t, router)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Body:   taroRequest(),
	})

	assert.Equal(t, http.StatusConflict, recorder.Code)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "MEMBER-002", errorResponse.Code)
}

func TestRegisterAPI_MalformedJSON(t *testing.T) {
	router := setupTestRouter(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPost,
		URL:    "/api/v1/members",
		Body:   "{not json",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetMemberAPI(t *testing.T) {
	router := setupTestRouter(t)
	created := registerTaro(t, router)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("/api/v1/members/%d", created.ID),
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp member.MemberResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, "Taro", resp.Name)
}

func TestGetMemberAPI_NotFoundAndBadID(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		url  string
		code int
	}{
		{"/api/v1/members/99", http.StatusNotFound},
		{"/api/v1/members/abc", http.StatusBadRequest},
		{"/api/v1/members/0", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodGet,
				URL:    tt.url,
			})
			assert.Equal(t, tt.code, recorder.Code)
		})
	}
}

func TestListMembersAPI(t *testing.T) {
	router := setupTestRouter(t)
	registerTaro(t, router)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members?page=1&size=10",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp member.ListMembersResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.Equal(t, int64(1), resp.Total)
	assert.Len(t, resp.Items, 1)
	assert.Equal(t, 10, resp.Size)
}

func TestListMembersAPI_InvalidPaging(t *testing.T) {
	router := setupTestRouter(t)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodGet,
		URL:    "/api/v1/members?size=1000",
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateMemberAPI_VersionFlow(t *testing.T) {
	// Given
	router := setupTestRouter(t)
	created := registerTaro(t, router)
	url := fmt.Sprintf("/api/v1/members/%d", created.ID)

	body := updateRequest(taroRequest(), created.Version)
	body.Name = "Hanako"

	// When: First update with the current version
	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    url,
		Body:   body,
	})

	// Then
	require.Equal(t, http.StatusOK, recorder.Code)
	var resp member.MemberResponse
	testutil.ParseResponse(t, recorder, &resp)
	assert.Equal(t, int64(1), resp.Version)
	assert.Equal(t, "Hanako", resp.Name)

	// When: Same request again with the now stale version
	recorder = testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    url,
		Body:   body,
	})

	// Then
	assert.Equal(t, http.StatusConflict, recorder.Code)
	var errorResponse sharedError.ErrorResponse
	testutil.ParseResponse(t, recorder, &errorResponse)
	assert.Equal(t, "MEMBER-004", errorResponse.Code)
}

func TestUpdateMemberAPI_VersionRequired(t *testing.T) {
	router := setupTestRouter(t)
	created := registerTaro(t, router)

	recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodPut,
		URL:    fmt.Sprintf("/api/v1/members/%d", created.ID),
		Body:   taroRequest(),
	})

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestDeleteMemberAPI(t *testing.T) {
	router := setupTestRouter(t)
	created := registerTaro(t, router)
	url := fmt.Sprintf("/api/v1/members/%d", created.ID)

	stale := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    url + "?version=3",
	})
	assert.Equal(t, http.StatusConflict, stale.Code)

	deleted := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    url + "?version=0",
	})
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	missing := testutil.ExecuteRequest(t, router, testutil.TestRequest{
		Method: http.MethodDelete,
		URL:    url,
	})
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestValidateAPI(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		name       string
		mutate     func(r *member.MemberRequest)
		valid      bool
		violations []member.Violation
	}{
		{"valid", func(*member.MemberRequest) {}, true, []member.Violation{}},
		{"digit in name", func(r *member.MemberRequest) { r.Name = "Taro1" }, false,
			[]member.Violation{{Field: "name", Rule: "pattern"}}},
		{"seven digit membershipCd", func(r *member.MemberRequest) { r.MembershipCd = 9999999 }, false,
			[]member.Violation{{Field: "membershipCd", Rule: "range"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := taroRequest()
			tt.mutate(req)

			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/members/validate",
				Body:   req,
			})

			require.Equal(t, http.StatusOK, recorder.Code)
			var resp member.ValidateResponse
			testutil.ParseResponse(t, recorder, &resp)
			assert.Equal(t, tt.valid, resp.Valid)
			assert.Equal(t, tt.violations, resp.Violations)
		})
	}
}

func TestMembershipCdBeyondInt32(t *testing.T) {
	router := setupTestRouter(t)

	for _, code := range []int64{9999999999, -9999999999, 4307312974} {
		body := map[string]any{
			"name":         "Taro",
			"membershipCd": code,
			"email":        "taro@example.com",
			"phoneNumber":  "08012345678",
		}

		t.Run(fmt.Sprintf("validate %d", code), func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/members/validate",
				Body:   body,
			})

			require.Equal(t, http.StatusOK, recorder.Code)
			var resp member.ValidateResponse
			testutil.ParseResponse(t, recorder, &resp)
			assert.False(t, resp.Valid)
			assert.Equal(t, []member.Violation{{Field: "membershipCd", Rule: "range"}}, resp.Violations)
		})

		t.Run(fmt.Sprintf("register %d", code), func(t *testing.T) {
			recorder := testutil.ExecuteRequest(t, router, testutil.TestRequest{
				Method: http.MethodPost,
				URL:    "/api/v1/members",
				Body:   body,
			})

			require.Equal(t, http.StatusBadRequest, recorder.Code)
			var errorResponse sharedError.ErrorResponse
			testutil.ParseResponse(t, recorder, &errorResponse)
			assert.Equal(t, "MEMBER-003", errorResponse.Code)
			require.Len(t, errorResponse.Details, 1)
			assert.Equal(t, "membershipCd", errorResponse.Details[0].Field)
			assert.Equal(t, "range", errorResponse.Details[0].Rule)
		})
	}
}
