package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/hosteldesk/apps/api/echo"
	"github.com/trezcool/hosteldesk/core/complaint"
	"github.com/trezcool/hosteldesk/core/user"
	testutil "github.com/trezcool/hosteldesk/tests"
)

func TestComplaintAPI_Create(t *testing.T) {
	env := setup(t)

	student := testutil.CreateUser(t, env.usrRepo, "John Smith", "john@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true,
		testutil.UserOptions{StudentID: "stu001", Room: "Room 201", Block: "Block A"})

	body := []byte(`{
		"title": "Broken AC",
		"description": "The AC unit stopped working.",
		"category": "Maintenance",
		"priority": "high",
		"room": "Room 201",
		"block": "Block A"
	}`)

	t.Run("requires auth", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/complaints", body)
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("success pins status to pending and owner identity", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/complaints", getToken(t, student), body)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var res echoapi.ComplaintResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, complaint.StatusPending, res.Status)
		assert.Equal(t, "stu001", res.StudentID)
		assert.Equal(t, "John Smith", res.StudentName)
		assert.Equal(t, complaint.PriorityHigh, res.Priority) // case normalized
		assert.Equal(t, "bg-orange-100 text-orange-800", res.StatusColor)
		assert.Equal(t, "bg-red-100 text-red-800", res.PriorityColor)
	})

	t.Run("invalid category fails validation", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/complaints", getToken(t, student),
			[]byte(`{"title":"t","description":"d","category":"Aliens","priority":"Low","room":"r","block":"b"}`))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusBadRequest, wantData: []byte(`{"category":"invalid category"}`)}
		checkCodeAndData(t, tt, rec)
	})
}

func TestComplaintAPI_Query(t *testing.T) {
	env := setup(t)

	john := testutil.CreateUser(t, env.usrRepo, "John Smith", "john@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true,
		testutil.UserOptions{StudentID: "stu001", Block: "Block A"})
	jane := testutil.CreateUser(t, env.usrRepo, "Jane Doe", "jane@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true,
		testutil.UserOptions{StudentID: "stu002", Block: "Block B"})
	admin := testutil.CreateUser(t, env.usrRepo, "Admin", "admin@test.com", "Xw7#kPz2!", []string{user.RoleAdmin}, true)

	c1 := testutil.CreateComplaint(t, env.cplRepo, john, "Broken AC", "Maintenance", complaint.PriorityHigh, complaint.StatusPending)
	testutil.CreateComplaint(t, env.cplRepo, john, "Slow Wi-Fi", "Technical", complaint.PriorityLow, complaint.StatusResolved)
	testutil.CreateComplaint(t, env.cplRepo, jane, "Loud music", "Noise", complaint.PriorityMedium, complaint.StatusInProgress)

	count := func(t *testing.T, token, path string) []echoapi.ComplaintResponse {
		t.Helper()
		req, rec := newAuthRequest(http.MethodGet, path, token)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res []echoapi.ComplaintResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		return res
	}

	t.Run("student only sees their own partition", func(t *testing.T) {
		res := count(t, getToken(t, john), "/v1/complaints")
		require.Len(t, res, 2)
		for _, c := range res {
			assert.Equal(t, "stu001", c.StudentID)
		}
	})

	t.Run("admin sees everything", func(t *testing.T) {
		res := count(t, getToken(t, admin), "/v1/complaints")
		assert.Len(t, res, 3)
	})

	t.Run("admin filter is ANDed", func(t *testing.T) {
		res := count(t, getToken(t, admin), "/v1/complaints?search=broken&status=pending&priority=high&block=Block+A")
		require.Len(t, res, 1)
		assert.Equal(t, c1.ID, res[0].ID)
	})

	t.Run("all sentinels match everything", func(t *testing.T) {
		res := count(t, getToken(t, admin), "/v1/complaints?category=all&status=all&priority=all&block=all")
		assert.Len(t, res, 3)
	})

	t.Run("student cannot read another student's complaint", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/complaints/"+c1.ID, getToken(t, jane))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}
		checkCodeAndData(t, tt, rec)
	})
}

func TestComplaintAPI_Stats(t *testing.T) {
	env := setup(t)

	john := testutil.CreateUser(t, env.usrRepo, "John Smith", "john@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true,
		testutil.UserOptions{StudentID: "stu001"})
	jane := testutil.CreateUser(t, env.usrRepo, "Jane Doe", "jane@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true,
		testutil.UserOptions{StudentID: "stu002"})
	admin := testutil.CreateUser(t, env.usrRepo, "Admin", "admin@test.com", "Xw7#kPz2!", []string{user.RoleAdmin}, true)

	testutil.CreateComplaint(t, env.cplRepo, john, "a", "Other", complaint.PriorityLow, complaint.StatusPending)
	testutil.CreateComplaint(t, env.cplRepo, john, "b", "Other", complaint.PriorityLow, complaint.StatusResolved)
	testutil.CreateComplaint(t, env.cplRepo, jane, "c", "Other", complaint.PriorityLow, complaint.StatusInProgress)

	tests := []httpTest{
		{
			name:     "admin stats cover all complaints",
			token:    getToken(t, admin),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, complaint.Stats{Total: 3, Pending: 1, InProgress: 1, Resolved: 1}),
		},
		{
			name:     "student stats cover their partition",
			token:    getToken(t, john),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, complaint.Stats{Total: 2, Pending: 1, Resolved: 1}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, "/v1/complaints/stats", tt.token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestComplaintAPI_AdminActions(t *testing.T) {
	env := setup(t)

	john := testutil.CreateUser(t, env.usrRepo, "John Smith", "john@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true,
		testutil.UserOptions{StudentID: "stu001"})
	admin := testutil.CreateUser(t, env.usrRepo, "Admin", "admin@test.com", "Xw7#kPz2!", []string{user.RoleAdmin}, true)

	cpl := testutil.CreateComplaint(t, env.cplRepo, john, "Broken AC", "Maintenance", complaint.PriorityHigh, complaint.StatusPending)

	adminToken := getToken(t, admin)
	johnToken := getToken(t, john)

	t.Run("student cannot update status", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/complaints/"+cpl.ID+"/status", johnToken, []byte(`{"status":"resolved"}`))
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin updates status with notes", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/complaints/"+cpl.ID+"/status", adminToken,
			[]byte(`{"status":"resolved","notes":"Fixed."}`))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res echoapi.ComplaintResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, complaint.StatusResolved, res.Status)
		assert.Equal(t, "Fixed.", res.AdminReply)
		assert.Equal(t, "bg-green-100 text-green-800", res.StatusColor)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/complaints/d182513e-ac34-46be-8937-f2a9e7b6eb05/status", adminToken,
			[]byte(`{"status":"resolved"}`))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "complaint not found"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			req, rec := newAuthRequest(http.MethodDelete, "/v1/complaints/"+cpl.ID, adminToken)
			env.app.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusNoContent, rec.Code)
		}

		all, err := env.cplRepo.QueryAllComplaints(context.Background())
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}
