package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studenthub/auth"
	"studenthub/models"
	"studenthub/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	handler   *AdminHandler
	users     *fakeUserRepo
	education *fakeEducationRepo
	posts     *fakePostRepo
	admin     *models.User
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()

	users := newFakeUserRepo()
	education := newFakeEducationRepo()
	posts := newFakePostRepo()

	admin := &models.User{
		Name: "Root", Email: "root@x.com", Password: "x",
		Role: models.RoleAdmin, Status: models.StatusApproved,
	}
	require.NoError(t, users.CreateUser(admin))

	return &adminFixture{
		handler:   &AdminHandler{Users: users, Education: education, Posts: posts},
		users:     users,
		education: education,
		posts:     posts,
		admin:     admin,
	}
}

func (f *adminFixture) addUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: email, Password: "x"}
	require.NoError(t, f.users.CreateUser(u))
	return u
}

func TestAdminApprove(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	u := f.addUser(t, "Ann", "ann@x.com")

	rec := httptest.NewRecorder()
	req := auth.WithUser(httptest.NewRequest(http.MethodPut, "/admin/users/"+u.ID+"/approve", nil), f.admin)
	f.handler.Approve(rec, req, u.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.users.GetUserByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, stored.Status)
}

func TestAdminReject_DefaultReason(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	u := f.addUser(t, "Ann", "ann@x.com")

	rec := httptest.NewRecorder()
	req := auth.WithUser(jsonRequest(t, http.MethodPut, "/admin/users/"+u.ID+"/reject", map[string]string{}), f.admin)
	f.handler.Reject(rec, req, u.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.users.GetUserByID(u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, stored.Status)
	assert.Equal(t, "No reason provided", stored.RejectionReason)
}

func TestAdminUpdateRole(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	u := f.addUser(t, "Ann", "ann@x.com")

	t.Run("promote", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := auth.WithUser(jsonRequest(t, http.MethodPut, "/admin/users/"+u.ID+"/role", map[string]string{
			"role": models.RoleAdmin,
		}), f.admin)
		f.handler.UpdateRole(rec, req, u.ID)
		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := f.users.GetUserByID(u.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, stored.Role)
	})

	t.Run("invalid role", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := auth.WithUser(jsonRequest(t, http.MethodPut, "/admin/users/"+u.ID+"/role", map[string]string{
			"role": "SUPERUSER",
		}), f.admin)
		f.handler.UpdateRole(rec, req, u.ID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("self demotion blocked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := auth.WithUser(jsonRequest(t, http.MethodPut, "/admin/users/"+f.admin.ID+"/role", map[string]string{
			"role": models.RoleUser,
		}), f.admin)
		f.handler.UpdateRole(rec, req, f.admin.ID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		stored, err := f.users.GetUserByID(f.admin.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, stored.Role, "role must be unchanged")
	})

	t.Run("self promotion is a no-op but allowed", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := auth.WithUser(jsonRequest(t, http.MethodPut, "/admin/users/"+f.admin.ID+"/role", map[string]string{
			"role": models.RoleAdmin,
		}), f.admin)
		f.handler.UpdateRole(rec, req, f.admin.ID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminDeleteUser_CascadesOwnedRecords(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	u := f.addUser(t, "Ann", "ann@x.com")

	require.NoError(t, f.education.CreateEducation(&models.Education{
		UserID: u.ID, Degree: "BTech", Department: "CSE", CurrentCollege: "IIT",
	}))
	require.NoError(t, f.posts.CreatePost(&models.Post{UserID: u.ID, Content: "one"}))
	require.NoError(t, f.posts.CreatePost(&models.Post{UserID: u.ID, Content: "two"}))

	rec := httptest.NewRecorder()
	req := auth.WithUser(httptest.NewRequest(http.MethodDelete, "/admin/users/"+u.ID, nil), f.admin)
	f.handler.DeleteUser(rec, req, u.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	gone, err := f.users.GetUserByID(u.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	edu, err := f.education.GetEducationByUser(u.ID)
	require.NoError(t, err)
	assert.Nil(t, edu)

	posts, total, err := f.posts.ListPosts(repository.PostQuery{UserID: u.ID, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Zero(t, total)
}

func TestAdminDeleteUser_Guards(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)

	t.Run("self deletion blocked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := auth.WithUser(httptest.NewRequest(http.MethodDelete, "/admin/users/"+f.admin.ID, nil), f.admin)
		f.handler.DeleteUser(rec, req, f.admin.ID)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		still, err := f.users.GetUserByID(f.admin.ID)
		require.NoError(t, err)
		assert.NotNil(t, still)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := auth.WithUser(httptest.NewRequest(http.MethodDelete, "/admin/users/missing", nil), f.admin)
		f.handler.DeleteUser(rec, req, "missing")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("user without education still deletable", func(t *testing.T) {
		u := f.addUser(t, "Bare", "bare@x.com")
		rec := httptest.NewRecorder()
		req := auth.WithUser(httptest.NewRequest(http.MethodDelete, "/admin/users/"+u.ID, nil), f.admin)
		f.handler.DeleteUser(rec, req, u.ID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAdminBulkApprove_SkipsMissingIDs(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	a := f.addUser(t, "Ann", "ann@x.com")
	b := f.addUser(t, "Bob", "bob@x.com")

	rec := httptest.NewRecorder()
	req := auth.WithUser(jsonRequest(t, http.MethodPut, "/admin/users/bulk/approve", map[string]any{
		"userIds": []string{a.ID, b.ID, "does-not-exist"},
	}), f.admin)
	f.handler.BulkApprove(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ModifiedCount int64 `json:"modifiedCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.ModifiedCount)

	for _, id := range []string{a.ID, b.ID} {
		stored, err := f.users.GetUserByID(id)
		require.NoError(t, err)
		assert.Equal(t, models.StatusApproved, stored.Status)
	}
}

func TestAdminBulkReject(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	a := f.addUser(t, "Ann", "ann@x.com")

	t.Run("empty id list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := auth.WithUser(jsonRequest(t, http.MethodPut, "/admin/users/bulk/reject", map[string]any{
			"userIds": []string{},
		}), f.admin)
		f.handler.BulkReject(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("records the reason", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := auth.WithUser(jsonRequest(t, http.MethodPut, "/admin/users/bulk/reject", map[string]any{
			"userIds": []string{a.ID},
			"reason":  "Incomplete application",
		}), f.admin)
		f.handler.BulkReject(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := f.users.GetUserByID(a.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusRejected, stored.Status)
		assert.Equal(t, "Incomplete application", stored.RejectionReason)
	})
}

func TestAdminPendingUsers(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	f.addUser(t, "Ann", "ann@x.com")
	b := f.addUser(t, "Bob", "bob@x.com")
	_, err := f.users.UpdateStatus(b.ID, models.StatusApproved, "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := auth.WithUser(httptest.NewRequest(http.MethodGet, "/admin/users/pending", nil), f.admin)
	f.handler.PendingUsers(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Users        []models.User `json:"users"`
		TotalPending int64         `json:"totalPending"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Users, 1)
	assert.Equal(t, "Ann", resp.Users[0].Name)
	assert.Equal(t, int64(1), resp.TotalPending)
}

func TestAdminUserDetails(t *testing.T) {
	t.Parallel()

	f := newAdminFixture(t)
	u := f.addUser(t, "Ann", "ann@x.com")
	require.NoError(t, f.education.CreateEducation(&models.Education{
		UserID: u.ID, Degree: "BTech", Department: "CSE", CurrentCollege: "IIT",
	}))

	rec := httptest.NewRecorder()
	req := auth.WithUser(httptest.NewRequest(http.MethodGet, "/admin/users/"+u.ID, nil), f.admin)
	f.handler.UserDetails(rec, req, u.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User      *models.User      `json:"user"`
		Education *models.Education `json:"education"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, u.ID, resp.User.ID)
	require.NotNil(t, resp.Education)
	assert.Equal(t, "BTech", resp.Education.Degree)
}
