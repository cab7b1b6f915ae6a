package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coursify/coursify/internal/models"
)

func bearer(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}

func TestAdminCourseLifecycle(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.signupAndVerify(t, "/admin", "creator", "secret1", "creator@x.com")

	rec := env.requestWithHeader(t, http.MethodPost, "/admin/courses", map[string]any{
		"title": "Go from scratch", "description": "intro", "price": 49.9, "published": true,
	}, bearer(adminToken))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	courseID := decode(t, rec)["courseId"].(string)

	// List returns only the creator's own courses.
	otherToken, _ := env.signupAndVerify(t, "/admin", "rival", "secret1", "rival@x.com")
	rec = env.requestWithHeader(t, http.MethodGet, "/admin/courses", nil, bearer(otherToken))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode(t, rec)["courses"])

	rec = env.requestWithHeader(t, http.MethodGet, "/admin/courses", nil, bearer(adminToken))
	require.Len(t, decode(t, rec)["courses"], 1)

	// A non-creator cannot update or delete; the response does not reveal
	// that the course exists.
	rec = env.requestWithHeader(t, http.MethodPut, "/admin/courses/"+courseID, map[string]any{
		"title": "hijacked", "price": 0.0,
	}, bearer(otherToken))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.requestWithHeader(t, http.MethodDelete, "/admin/courses/"+courseID, nil, bearer(otherToken))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.requestWithHeader(t, http.MethodPut, "/admin/courses/"+courseID, map[string]any{
		"title": "Go from scratch", "description": "updated", "price": 59.9, "published": false,
	}, bearer(adminToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var course models.Course
	require.NoError(t, env.db.First(&course, "title = ?", "Go from scratch").Error)
	require.Equal(t, "updated", course.Description)
	require.False(t, course.Published)

	rec = env.requestWithHeader(t, http.MethodDelete, "/admin/courses/"+courseID, nil, bearer(adminToken))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Course{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCourseRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/admin/courses", map[string]any{"title": "x", "price": 1.0})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodGet, "/users/purchasedCourses", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserBrowsesOnlyPublishedCourses(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.signupAndVerify(t, "/admin", "creator", "secret1", "creator@x.com")

	for _, payload := range []map[string]any{
		{"title": "published one", "price": 10.0, "published": true},
		{"title": "draft one", "price": 10.0, "published": false},
	} {
		rec := env.requestWithHeader(t, http.MethodPost, "/admin/courses", payload, bearer(adminToken))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.request(t, http.MethodGet, "/users/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	courses := decode(t, rec)["courses"].([]any)
	require.Len(t, courses, 1)
	require.Equal(t, "published one", courses[0].(map[string]any)["title"])
}

func TestPurchaseIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	adminToken, _ := env.signupAndVerify(t, "/admin", "creator", "secret1", "creator@x.com")
	userToken, _ := env.signupAndVerify(t, "/users", "alice", "secret1", "a@x.com")

	rec := env.requestWithHeader(t, http.MethodPost, "/admin/courses", map[string]any{
		"title": "Go from scratch", "price": 49.9, "published": true,
	}, bearer(adminToken))
	require.Equal(t, http.StatusCreated, rec.Code)
	courseID := decode(t, rec)["courseId"].(string)

	for i := 0; i < 2; i++ {
		rec = env.requestWithHeader(t, http.MethodPost, "/users/courses/"+courseID, nil, bearer(userToken))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, "Course purchased successfully", decode(t, rec)["message"])
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Enrollment{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	rec = env.requestWithHeader(t, http.MethodGet, "/users/purchasedCourses", nil, bearer(userToken))
	require.Equal(t, http.StatusOK, rec.Code)
	purchased := decode(t, rec)["purchasedCourses"].([]any)
	require.Len(t, purchased, 1)
	require.Equal(t, "Go from scratch", purchased[0].(map[string]any)["title"])
}

func TestPurchaseWithBadCourseID(t *testing.T) {
	env := newTestEnv(t)
	userToken, _ := env.signupAndVerify(t, "/users", "alice", "secret1", "a@x.com")

	rec := env.requestWithHeader(t, http.MethodPost, "/users/courses/not-a-uuid", nil, bearer(userToken))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
