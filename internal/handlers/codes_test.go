package handlers_test

import (
	"net/http"
	"testing"

	"github.com/showfolio-dev/showfolio/db"
	"github.com/showfolio-dev/showfolio/internal/models"
)

func TestGenerateCodesDefaultsToOne(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)

	w := performRequest(r, http.MethodPost, "/api/codes", map[string]interface{}{}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	created := parseBody(t, w)["created"].([]interface{})
	if len(created) != 1 {
		t.Fatalf("created length = %d, expected 1", len(created))
	}
}

func TestGenerateCodesBulk(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)

	w := performRequest(r, http.MethodPost, "/api/codes", map[string]interface{}{
		"count": 5,
	}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	created := parseBody(t, w)["created"].([]interface{})
	if len(created) != 5 {
		t.Fatalf("created length = %d, expected 5", len(created))
	}

	seen := make(map[string]bool)
	for _, raw := range created {
		code := raw.(string)
		if seen[code] {
			t.Errorf("duplicate code generated: %s", code)
		}
		seen[code] = true
	}

	// Every generated code is attributed to the requesting owner and
	// starts unused.
	var owner models.User
	if err := db.DB.Where("username = ?", "admin").First(&owner).Error; err != nil {
		t.Fatalf("owner not found: %v", err)
	}

	var count int64
	db.DB.Model(&models.InviteCode{}).
		Where("created_by = ? AND used = ?", owner.ID, false).
		Count(&count)
	if count != 5 {
		t.Errorf("unused codes attributed to owner = %d, expected 5", count)
	}
}

func TestListCodesNewestFirst(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)

	performRequest(r, http.MethodPost, "/api/codes", map[string]interface{}{"count": 3}, cookie)

	w := performRequest(r, http.MethodGet, "/api/codes", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	codes := parseBody(t, w)["codes"].([]interface{})
	if len(codes) != 3 {
		t.Fatalf("codes length = %d, expected 3", len(codes))
	}
	for _, raw := range codes {
		row := raw.(map[string]interface{})
		if row["used"] != false {
			t.Errorf("code should start unused: %v", row)
		}
	}
}

func TestDeleteCodeRegardlessOfUsedState(t *testing.T) {
	r := setupRouter(t)
	cookie := loginOwner(t, r)

	var owner models.User
	if err := db.DB.Where("username = ?", "admin").First(&owner).Error; err != nil {
		t.Fatalf("owner not found: %v", err)
	}

	used := true
	code := models.InviteCode{Code: "spent", CreatedBy: owner.ID, Used: used, UsedBy: &owner.ID}
	if err := db.DB.Create(&code).Error; err != nil {
		t.Fatalf("failed to seed code: %v", err)
	}

	w := performRequest(r, http.MethodDelete, "/api/codes/spent", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var count int64
	db.DB.Model(&models.InviteCode{}).Count(&count)
	if count != 0 {
		t.Errorf("code count = %d, expected 0", count)
	}
}
