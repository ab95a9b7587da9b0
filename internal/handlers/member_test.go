package handlers_test

import (
	"net/http"
	"testing"

	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/models"
)

func seedProject(t *testing.T, slug string, published bool) models.Project {
	t.Helper()
	project := models.Project{Title: slug, Slug: slug, Published: published}
	if err := db.DB.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func TestAddMemberDuplicatePair(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)
	friend := createUser(t, "alice", "p1", models.RoleFriend)
	project := seedProject(t, "x", true)

	first := performRequest(r, http.MethodPost, "/api/admin/projects/1/members", map[string]interface{}{
		"user_id": friend.ID,
	}, cookie)
	if first.Code != http.StatusOK {
		t.Fatalf("first add status = %d, body %s", first.Code, first.Body.String())
	}

	second := performRequest(r, http.MethodPost, "/api/admin/projects/1/members", map[string]interface{}{
		"user_id": friend.ID,
	}, cookie)
	if second.Code != http.StatusBadRequest {
		t.Fatalf("second add status = %d, expected 400", second.Code)
	}
	if body := parseBody(t, second); body["error"] != "Already a member" {
		t.Errorf("error = %v, expected %q", body["error"], "Already a member")
	}

	var count int64
	db.DB.Model(&models.ProjectMember{}).Where("project_id = ?", project.ID).Count(&count)
	if count != 1 {
		t.Errorf("member count = %d, expected 1", count)
	}
}

func TestAddMemberRequiresUserID(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)
	seedProject(t, "x", true)

	w := performRequest(r, http.MethodPost, "/api/admin/projects/1/members", map[string]interface{}{
		"role": "designer",
	}, cookie)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, expected 400", w.Code)
	}
	if body := parseBody(t, w); body["error"] != "Missing user_id" {
		t.Errorf("error = %v, expected %q", body["error"], "Missing user_id")
	}
}

func TestAddMemberDefaultsRole(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)
	friend := createUser(t, "alice", "p1", models.RoleFriend)
	seedProject(t, "x", true)

	w := performRequest(r, http.MethodPost, "/api/admin/projects/1/members", map[string]interface{}{
		"user_id": friend.ID,
	}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var member models.ProjectMember
	if err := db.DB.First(&member, "user_id = ?", friend.ID).Error; err != nil {
		t.Fatalf("member not created: %v", err)
	}
	if member.Role != "contributor" {
		t.Errorf("role = %q, expected contributor", member.Role)
	}
}

func TestUpdateMemberOverwrites(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)
	friend := createUser(t, "alice", "p1", models.RoleFriend)
	project := seedProject(t, "x", true)

	contribution := "initial work"
	member := models.ProjectMember{
		ProjectID:    project.ID,
		UserID:       friend.ID,
		Role:         "designer",
		Contribution: &contribution,
	}
	if err := db.DB.Create(&member).Error; err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}

	// Empty role falls back to the default.
	w := performRequest(r, http.MethodPut, "/api/admin/projects/1/members/1", map[string]interface{}{
		"contribution": "backend",
	}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var updated models.ProjectMember
	if err := db.DB.First(&updated, member.ID).Error; err != nil {
		t.Fatalf("member vanished: %v", err)
	}
	if updated.Role != "contributor" {
		t.Errorf("role = %q, expected contributor", updated.Role)
	}
	if updated.Contribution == nil || *updated.Contribution != "backend" {
		t.Errorf("contribution = %v, expected backend", updated.Contribution)
	}
}

func TestRemoveMember(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)
	friend := createUser(t, "alice", "p1", models.RoleFriend)
	project := seedProject(t, "x", true)

	member := models.ProjectMember{ProjectID: project.ID, UserID: friend.ID, Role: "contributor"}
	if err := db.DB.Create(&member).Error; err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}

	w := performRequest(r, http.MethodDelete, "/api/admin/projects/1/members/1", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var count int64
	db.DB.Model(&models.ProjectMember{}).Count(&count)
	if count != 0 {
		t.Errorf("member count = %d, expected 0", count)
	}
}

func TestListMembersJoinsUsers(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)
	friend := createUser(t, "alice", "p1", models.RoleFriend)
	project := seedProject(t, "x", true)

	member := models.ProjectMember{ProjectID: project.ID, UserID: friend.ID, Role: "designer"}
	if err := db.DB.Create(&member).Error; err != nil {
		t.Fatalf("failed to seed member: %v", err)
	}

	w := performRequest(r, http.MethodGet, "/api/admin/projects/1/members", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	members := parseBody(t, w)["members"].([]interface{})
	if len(members) != 1 {
		t.Fatalf("members length = %d, expected 1", len(members))
	}

	row := members[0].(map[string]interface{})
	if row["username"] != "alice" {
		t.Errorf("username = %v, expected alice", row["username"])
	}
	if row["role"] != "designer" {
		t.Errorf("role = %v, expected designer", row["role"])
	}
}
