package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/trezcool/hosteldesk/apps/api/echo"
	"github.com/trezcool/hosteldesk/core/user"
	testutil "github.com/trezcool/hosteldesk/tests"
)

func TestUserAPI_Login(t *testing.T) {
	env := setup(t)

	active := testutil.CreateUser(t, env.usrRepo, "John Smith", "john@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true,
		testutil.UserOptions{StudentID: "stu001", Room: "Room 201", Block: "Block A"})
	testutil.CreateUser(t, env.usrRepo, "Gone Guy", "gone@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, false)

	tests := []httpTest{
		{
			name:     "empty body fails validation",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"this field is required","password":"this field is required"}`),
		},
		{
			name:     "unknown email",
			body:     []byte(`{"email":"nobody@test.com","password":"Xw7#kPz2!"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "wrong password",
			body:     []byte(`{"email":"john@test.com","password":"nope nope"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "deactivated account is rejected distinctly",
			body:     []byte(`{"email":"gone@test.com","password":"Xw7#kPz2!"}`),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("success returns token and profile", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/login", []byte(`{"email":"john@test.com","password":"Xw7#kPz2!"}`))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var res echoapi.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, active.ID, res.User.ID)
		assert.Equal(t, "stu001", res.User.StudentID)
	})
}

func TestUserAPI_Register(t *testing.T) {
	env := setup(t)

	testutil.CreateUser(t, env.usrRepo, "Taken", "taken@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true)

	body := func(email string) []byte {
		return []byte(`{
			"name": "Sarah Johnson",
			"email": "` + email + `",
			"mobile": "+1234567890",
			"student_id": "stu042",
			"room": "Room 305",
			"block": "Block B",
			"password": "Xw7#kPz2!",
			"password_confirm": "Xw7#kPz2!"
		}`)
	}

	t.Run("success creates an active student", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/register", body("sarah@test.com"))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var res echoapi.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, []string{user.RoleStudent}, res.User.Roles)
		assert.True(t, res.User.Active())
		assert.Equal(t, "stu042", res.User.StudentID)
	})

	t.Run("duplicate email is a field error", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/register", body("taken@test.com"))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"a user with this email already exists"}`),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("missing profile fields fail validation", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/users/register", []byte(`{"name":"X","email":"x@test.com","password":"Xw7#kPz2!","password_confirm":"Xw7#kPz2!"}`))
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "student_id")
		assert.Contains(t, rec.Body.String(), "room")
		assert.Contains(t, rec.Body.String(), "block")
	})
}

func TestUserAPI_Me(t *testing.T) {
	env := setup(t)

	usr := testutil.CreateUser(t, env.usrRepo, "John Smith", "john@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true)

	t.Run("requires auth", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/users/me")
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("returns the caller profile", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/me", getToken(t, usr))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, usr)}
		checkCodeAndData(t, tt, rec)
	})
}

func TestUserAPI_AdminOnly(t *testing.T) {
	env := setup(t)

	admin := testutil.CreateUser(t, env.usrRepo, "Admin", "admin@test.com", "Xw7#kPz2!", []string{user.RoleAdmin}, true)
	student := testutil.CreateUser(t, env.usrRepo, "John Smith", "john@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true)

	adminToken := getToken(t, admin)
	studentToken := getToken(t, student)

	t.Run("student cannot list users", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users", studentToken)
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("admin lists users", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users", adminToken)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var users []user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
		assert.Len(t, users, 2)
	})

	t.Run("admin filters by role", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users?role=student", adminToken)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var users []user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
		require.Len(t, users, 1)
		assert.Equal(t, student.ID, users[0].ID)
	})

	t.Run("admin cannot delete themselves", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/users/"+admin.ID, adminToken)
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin deactivates a student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+student.ID, adminToken, []byte(`{"is_active":false}`))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.False(t, updated.Active())
	})

	t.Run("student cannot self-activate", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+student.ID, studentToken, []byte(`{"is_active":true}`))
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("student cannot list students", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/students", studentToken)
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("admin lists students", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/students", adminToken)
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var users []user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
		require.Len(t, users, 1)
		assert.Equal(t, student.ID, users[0].ID)
	})

	t.Run("activation endpoint is admin only", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+student.ID+"/active", studentToken, []byte(`{"is_active":true}`))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("activation flag is required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+student.ID+"/active", adminToken, []byte(`{}`))
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusBadRequest, wantData: []byte(`{"is_active":"this field is required"}`)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("admin reactivates a student", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+student.ID+"/active", adminToken, []byte(`{"is_active":true}`))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var updated user.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.True(t, updated.Active())
	})

	t.Run("admin cannot deactivate themselves", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPut, "/v1/users/"+admin.ID+"/active", adminToken, []byte(`{"is_active":false}`))
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestUserAPI_TokenRefresh(t *testing.T) {
	env := setup(t)

	usr := testutil.CreateUser(t, env.usrRepo, "John Smith", "john@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true)

	t.Run("refresh succeeds for an active account", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", getToken(t, usr))
		env.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var res echoapi.TokenResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.NotEmpty(t, res.Token)
	})

	t.Run("refresh is refused once the account is deactivated", func(t *testing.T) {
		token := getToken(t, usr)
		_, err := env.usrRepo.UpdateUser(context.Background(), user.User{ID: usr.ID}, boolPtr(false))
		require.NoError(t, err)

		req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", token)
		env.app.ServeHTTP(rec, req)
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "account deactivated"})}
		checkCodeAndData(t, tt, rec)
	})
}

func TestUserAPI_PasswordReset(t *testing.T) {
	env := setup(t)

	testutil.CreateUser(t, env.usrRepo, "John Smith", "john@test.com", "Xw7#kPz2!", []string{user.RoleStudent}, true)

	// the response never leaks whether the account exists
	for _, email := range []string{"john@test.com", "nobody@test.com"} {
		req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", []byte(`{"email":"`+email+`"}`))
		env.app.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "an email will arrive in your inbox shortly")
	}
}

func boolPtr(b bool) *bool { return &b }
