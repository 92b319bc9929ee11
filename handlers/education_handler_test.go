package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"studenthub/auth"
	"studenthub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func educationBody(degree string) map[string]any {
	return map[string]any{
		"degree":         degree,
		"department":     "CSE",
		"batchYear":      "2024",
		"currentCollege": "IIT Delhi",
	}
}

func TestEducationCreate(t *testing.T) {
	t.Parallel()

	repo := newFakeEducationRepo()
	h := &EducationHandler{Repo: repo}
	me := &models.User{ID: "u1", Name: "Ann"}

	t.Run("owner comes from the session", func(t *testing.T) {
		body := educationBody("BTech")
		body["userId"] = "someone-else"

		rec := httptest.NewRecorder()
		h.Create(rec, auth.WithUser(jsonRequest(t, http.MethodPost, "/education", body), me))
		require.Equal(t, http.StatusCreated, rec.Code)

		edu, err := repo.GetEducationByUser("u1")
		require.NoError(t, err)
		require.NotNil(t, edu)
		assert.Equal(t, "u1", edu.UserID)

		other, err := repo.GetEducationByUser("someone-else")
		require.NoError(t, err)
		assert.Nil(t, other)
	})

	t.Run("second profile rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Create(rec, auth.WithUser(jsonRequest(t, http.MethodPost, "/education", educationBody("MTech")), me))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already exists")
	})

	t.Run("required fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Create(rec, auth.WithUser(jsonRequest(t, http.MethodPost, "/education", map[string]any{
			"degree": "BTech",
		}), &models.User{ID: "u2"}))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEducationUpdate(t *testing.T) {
	t.Parallel()

	repo := newFakeEducationRepo()
	h := &EducationHandler{Repo: repo}
	me := &models.User{ID: "u1"}

	require.NoError(t, repo.CreateEducation(&models.Education{
		UserID: "u1", Degree: "BTech", Department: "CSE", CurrentCollege: "IIT Delhi",
	}))

	t.Run("fields change, owner does not", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Update(rec, auth.WithUser(jsonRequest(t, http.MethodPut, "/education", educationBody("MTech")), me))
		require.Equal(t, http.StatusOK, rec.Code)

		edu, err := repo.GetEducationByUser("u1")
		require.NoError(t, err)
		require.NotNil(t, edu)
		assert.Equal(t, "MTech", edu.Degree)
		assert.Equal(t, "u1", edu.UserID)
	})

	t.Run("no profile yet", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Update(rec, auth.WithUser(jsonRequest(t, http.MethodPut, "/education", educationBody("MTech")), &models.User{ID: "u2"}))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestEducationByUser(t *testing.T) {
	t.Parallel()

	repo := newFakeEducationRepo()
	h := &EducationHandler{Repo: repo}

	require.NoError(t, repo.CreateEducation(&models.Education{
		UserID: "u1", Degree: "BTech", Department: "CSE", CurrentCollege: "IIT Delhi",
	}))

	rec := httptest.NewRecorder()
	h.ByUser(rec, httptest.NewRequest(http.MethodGet, "/education/u1", nil), "u1")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ByUser(rec, httptest.NewRequest(http.MethodGet, "/education/missing", nil), "missing")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEducationDelete(t *testing.T) {
	t.Parallel()

	repo := newFakeEducationRepo()
	h := &EducationHandler{Repo: repo}
	me := &models.User{ID: "u1"}

	require.NoError(t, repo.CreateEducation(&models.Education{
		UserID: "u1", Degree: "BTech", Department: "CSE", CurrentCollege: "IIT Delhi",
	}))

	rec := httptest.NewRecorder()
	h.Delete(rec, auth.WithUser(httptest.NewRequest(http.MethodDelete, "/education", nil), me))
	require.Equal(t, http.StatusOK, rec.Code)

	edu, err := repo.GetEducationByUser("u1")
	require.NoError(t, err)
	assert.Nil(t, edu)

	// deleting again surfaces the missing profile
	rec = httptest.NewRecorder()
	h.Delete(rec, auth.WithUser(httptest.NewRequest(http.MethodDelete, "/education", nil), me))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEducationBrowse_Filters(t *testing.T) {
	t.Parallel()

	repo := newFakeEducationRepo()
	h := &EducationHandler{Repo: repo}

	require.NoError(t, repo.CreateEducation(&models.Education{
		UserID: "u1", Degree: "BTech", Department: "CSE", BatchYear: "2024", CurrentCollege: "IIT Delhi",
	}))
	require.NoError(t, repo.CreateEducation(&models.Education{
		UserID: "u2", Degree: "MBA", Department: "Management", BatchYear: "2023", CurrentCollege: "IIM Bangalore",
	}))

	browse := func(t *testing.T, query string) (int, []models.Education) {
		t.Helper()
		rec := httptest.NewRecorder()
		h.Browse(rec, httptest.NewRequest(http.MethodGet, "/education/browse"+query, nil))

		var resp struct {
			Educations []models.Education `json:"educations"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return rec.Code, resp.Educations
	}

	code, all := browse(t, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, all, 2)

	code, cse := browse(t, "?department=cse")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, cse, 1)
	assert.Equal(t, "BTech", cse[0].Degree)

	code, batch := browse(t, "?batchYear=2023")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, batch, 1)
	assert.Equal(t, "MBA", batch[0].Degree)

	code, none := browse(t, "?degree=PhD")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, none)
}
