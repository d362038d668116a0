package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/hosteldesk/core/complaint"
	"github.com/trezcool/hosteldesk/core/feedback"
	"github.com/trezcool/hosteldesk/core/user"
	emailsvc "github.com/trezcool/hosteldesk/services/email"
	testutil "github.com/trezcool/hosteldesk/tests"
)

func TestFeedbackAPI_Submit(t *testing.T) {
	env := setup(t)

	parent := testutil.CreateUser(t, env.usrRepo, "Robert Smith", "robert@test.com", "Xw7#kPz2!", []string{user.RoleParent}, true,
		testutil.UserOptions{Relationship: "Father"})

	t.Run("requires auth", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/feedback", []byte(`{}`))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("attribution defaults to the logged in parent", func(t *testing.T) {
		body := []byte(`{"type":"appreciation","message":"Thank you for the quick fix."}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/feedback", getToken(t, parent), body)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var fb feedback.ParentFeedback
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fb))
		assert.NotEmpty(t, fb.ID)
		assert.Equal(t, "Robert Smith", fb.ParentName)
		assert.Equal(t, "robert@test.com", fb.ParentEmail)
		assert.Equal(t, "Father", fb.Relationship)
		assert.Equal(t, complaint.PriorityMedium, fb.Priority)
		assert.Equal(t, feedback.StatusPending, fb.Status)
		assert.False(t, fb.IsRead)
		assert.True(t, fb.RepliedAt.IsZero())
	})

	t.Run("invalid type fails validation", func(t *testing.T) {
		body := []byte(`{"type":"rant","message":"m"}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/feedback", getToken(t, parent), body)
		env.app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"type":"type must be one of: appreciation, concern, suggestion, complaint_status"}`),
		}
		checkCodeAndData(t, tt, rec)
	})
}

func TestFeedbackAPI_AdminQuery(t *testing.T) {
	env := setup(t)

	admin := testutil.CreateUser(t, env.usrRepo, "Admin", "admin@test.com", "Xw7#kPz2!", []string{user.RoleAdmin}, true)
	parent := testutil.CreateUser(t, env.usrRepo, "Robert Smith", "robert@test.com", "Xw7#kPz2!", []string{user.RoleParent}, true,
		testutil.UserOptions{Relationship: "Father"})

	fb1 := testutil.CreateFeedback(t, env.fbRepo, "Robert Smith", "robert@test.com", "Father", feedback.TypeConcern, "Noise at night")
	testutil.CreateFeedback(t, env.fbRepo, "Mary Doe", "mary@test.com", "Mother", feedback.TypeAppreciation, "Great staff")

	adminToken := getToken(t, admin)

	t.Run("non admin is refused", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/feedback", getToken(t, parent))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		checkCodeAndData(t, tt, rec)
	})

	query := func(t *testing.T, path string) []feedback.ParentFeedback {
		t.Helper()
		req, rec := newAuthRequest(http.MethodGet, path, adminToken)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var fbs []feedback.ParentFeedback
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fbs))
		return fbs
	}

	t.Run("admin lists all", func(t *testing.T) {
		assert.Len(t, query(t, "/v1/feedback"), 2)
	})

	t.Run("filter by type", func(t *testing.T) {
		fbs := query(t, "/v1/feedback?type=concern")
		require.Len(t, fbs, 1)
		assert.Equal(t, fb1.ID, fbs[0].ID)
	})

	t.Run("search matches parent name", func(t *testing.T) {
		fbs := query(t, "/v1/feedback?search=robert")
		require.Len(t, fbs, 1)
		assert.Equal(t, fb1.ID, fbs[0].ID)
	})

	t.Run("all sentinels match everything", func(t *testing.T) {
		assert.Len(t, query(t, "/v1/feedback?type=all&status=all"), 2)
	})

	t.Run("unread filter", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/feedback/"+fb1.ID+"/read", adminToken)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		fbs := query(t, "/v1/feedback?unread=true")
		require.Len(t, fbs, 1)
		assert.NotEqual(t, fb1.ID, fbs[0].ID)
	})
}

func TestFeedbackAPI_AdminWorkflow(t *testing.T) {
	env := setup(t)

	admin := testutil.CreateUser(t, env.usrRepo, "Admin", "admin@test.com", "Xw7#kPz2!", []string{user.RoleAdmin}, true)
	fb := testutil.CreateFeedback(t, env.fbRepo, "Robert Smith", "robert@test.com", "Father", feedback.TypeSuggestion, "More study rooms")

	adminToken := getToken(t, admin)

	t.Run("review marks reviewed and read", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/feedback/"+fb.ID+"/review", adminToken)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res feedback.ParentFeedback
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, feedback.StatusReviewed, res.Status)
		assert.True(t, res.IsRead)
	})

	t.Run("reply marks responded and emails the parent", func(t *testing.T) {
		emailsvc.ClearSentMessages()

		req, rec := newAuthRequest(http.MethodPut, "/v1/feedback/"+fb.ID+"/reply", adminToken,
			[]byte(`{"reply":"We are adding two rooms next term."}`))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res feedback.ParentFeedback
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, feedback.StatusResponded, res.Status)
		assert.Equal(t, "We are adding two rooms next term.", res.AdminReply)
		assert.False(t, res.RepliedAt.IsZero())

		var found bool
		for _, msg := range emailsvc.SentMessages {
			for _, to := range msg.To {
				if to.Address == "robert@test.com" {
					found = true
				}
			}
		}
		assert.True(t, found, "expected a reply notification email")
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/feedback/deadbeef/reply", adminToken, []byte(`{"reply":"r"}`))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "feedback not found"})}
		checkCodeAndData(t, tt, rec)
	})
}
