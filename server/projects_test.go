package server_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCreateProject_OwnerIsCreator(t *testing.T) {
	srv := newTestServer(t)
	bearer, userID := registerAndLogin(t, srv, "Alice", "a@x.com")

	rec := doJSON(t, srv, http.MethodPost, "/projects", bearer, map[string]string{
		"name":        "P1",
		"description": "d",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var p struct {
		ID      string `json:"id"`
		OwnerID string `json:"owner_id"`
		Status  string `json:"status"`
	}
	decodeBody(t, rec, &p)
	if p.OwnerID != userID {
		t.Fatalf("expected owner %s, got %s", userID, p.OwnerID)
	}
	if p.Status != "open" {
		t.Fatalf("expected default status open, got %s", p.Status)
	}
}

func TestCreateProject_Validation(t *testing.T) {
	srv := newTestServer(t)
	bearer, _ := registerAndLogin(t, srv, "Alice", "a@x.com")

	rec := doJSON(t, srv, http.MethodPost, "/projects", bearer, map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Errors []struct {
			Field string `json:"field"`
		} `json:"errors"`
	}
	decodeBody(t, rec, &resp)
	if len(resp.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %s", len(resp.Errors), rec.Body.String())
	}
}

func TestListProjects_ScopedToOwner(t *testing.T) {
	srv := newTestServer(t)
	alice, _ := registerAndLogin(t, srv, "Alice", "a@x.com")
	bob, _ := registerAndLogin(t, srv, "Bob", "b@x.com")

	createProject(t, srv, alice, "Alice P1")
	createProject(t, srv, bob, "Bob P1")

	rec := doJSON(t, srv, http.MethodGet, "/projects", alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		TotalProjects int `json:"totalProjects"`
		Projects      []struct {
			Name string `json:"name"`
		} `json:"projects"`
	}
	decodeBody(t, rec, &resp)
	if resp.TotalProjects != 1 || len(resp.Projects) != 1 {
		t.Fatalf("expected exactly Alice's project, got %s", rec.Body.String())
	}
	if resp.Projects[0].Name != "Alice P1" {
		t.Fatalf("listing leaked %q", resp.Projects[0].Name)
	}
}

func TestListProjects_Pagination(t *testing.T) {
	srv := newTestServer(t)
	bearer, _ := registerAndLogin(t, srv, "Alice", "a@x.com")

	for i := 0; i < 12; i++ {
		createProject(t, srv, bearer, fmt.Sprintf("P%02d", i))
	}

	rec := doJSON(t, srv, http.MethodGet, "/projects?page=2&limit=5", bearer, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Page          int `json:"page"`
		Limit         int `json:"limit"`
		TotalPages    int `json:"totalPages"`
		TotalProjects int `json:"totalProjects"`
		Projects      []struct {
			Name string `json:"name"`
		} `json:"projects"`
	}
	decodeBody(t, rec, &resp)

	if resp.Page != 2 || resp.Limit != 5 {
		t.Fatalf("echoed params wrong: %+v", resp)
	}
	if resp.TotalProjects != 12 || resp.TotalPages != 3 {
		t.Fatalf("expected 12 items over 3 pages, got %d/%d", resp.TotalProjects, resp.TotalPages)
	}
	if len(resp.Projects) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(resp.Projects))
	}
	// Page 2 of 5 covers items 5..9 of the stable creation order.
	if resp.Projects[0].Name != "P05" || resp.Projects[4].Name != "P09" {
		t.Fatalf("unexpected window: first=%s last=%s", resp.Projects[0].Name, resp.Projects[4].Name)
	}
}

// Degenerate page/limit input falls back to defaults instead of
// producing negative offsets.
func TestListProjects_DegeneratePaginationInput(t *testing.T) {
	srv := newTestServer(t)
	bearer, _ := registerAndLogin(t, srv, "Alice", "a@x.com")
	createProject(t, srv, bearer, "P1")

	for _, query := range []string{"?page=-3&limit=0", "?page=abc&limit=xyz"} {
		rec := doJSON(t, srv, http.MethodGet, "/projects"+query, bearer, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", query, rec.Code)
		}

		var resp struct {
			Page  int `json:"page"`
			Limit int `json:"limit"`
		}
		decodeBody(t, rec, &resp)
		if resp.Page != 1 || resp.Limit != 10 {
			t.Fatalf("%s: expected defaults 1/10, got %d/%d", query, resp.Page, resp.Limit)
		}
	}
}

func TestUpdateProject_OwnerOnly(t *testing.T) {
	srv := newTestServer(t)
	alice, _ := registerAndLogin(t, srv, "Alice", "a@x.com")
	bob, _ := registerAndLogin(t, srv, "Bob", "b@x.com")
	projectID := createProject(t, srv, alice, "P1")

	rec := doJSON(t, srv, http.MethodPut, "/projects/"+projectID, bob, map[string]string{
		"name": "Hijacked",
	})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d: %s", rec.Code, rec.Body.String())
	}
	var denied struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &denied)
	if denied.Message != "not owner" {
		t.Fatalf("unexpected reason %q", denied.Message)
	}

	rec = doJSON(t, srv, http.MethodPut, "/projects/"+projectID, alice, map[string]string{
		"name":   "Renamed",
		"status": "completed",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	decodeBody(t, rec, &updated)
	if updated.Name != "Renamed" || updated.Status != "completed" {
		t.Fatalf("update not applied: %+v", updated)
	}
	// An omitted field stays untouched.
	if updated.Description != "a description" {
		t.Fatalf("description clobbered: %q", updated.Description)
	}
}

func TestUpdateProject_InvalidStatus(t *testing.T) {
	srv := newTestServer(t)
	alice, _ := registerAndLogin(t, srv, "Alice", "a@x.com")
	projectID := createProject(t, srv, alice, "P1")

	rec := doJSON(t, srv, http.MethodPut, "/projects/"+projectID, alice, map[string]string{
		"status": "bogus",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateProject_Missing(t *testing.T) {
	srv := newTestServer(t)
	alice, _ := registerAndLogin(t, srv, "Alice", "a@x.com")

	rec := doJSON(t, srv, http.MethodPut, "/projects/no-such-id", alice, map[string]string{
		"name": "X",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteProject_OwnerOnly(t *testing.T) {
	srv := newTestServer(t)
	alice, _ := registerAndLogin(t, srv, "Alice", "a@x.com")
	bob, _ := registerAndLogin(t, srv, "Bob", "b@x.com")
	projectID := createProject(t, srv, alice, "P1")

	rec := doJSON(t, srv, http.MethodDelete, "/projects/"+projectID, bob, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner, got %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, "/projects/"+projectID, alice, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodDelete, "/projects/"+projectID, alice, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

// End-to-end walk through the main flow: register, login, create,
// list, and a cross-user denial.
func TestProjects_EndToEnd(t *testing.T) {
	srv := newTestServer(t)

	alice, aliceID := registerAndLogin(t, srv, "Alice", "a@x.com")
	mallory, _ := registerAndLogin(t, srv, "Mallory", "m@x.com")

	rec := doJSON(t, srv, http.MethodPost, "/projects", alice, map[string]string{
		"name":        "P1",
		"description": "d",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", rec.Code)
	}
	var p struct {
		ID      string `json:"id"`
		OwnerID string `json:"owner_id"`
	}
	decodeBody(t, rec, &p)
	if p.OwnerID != aliceID {
		t.Fatalf("owner mismatch: %s vs %s", p.OwnerID, aliceID)
	}

	rec = doJSON(t, srv, http.MethodGet, "/projects", alice, nil)
	var list struct {
		Projects []struct {
			ID string `json:"id"`
		} `json:"projects"`
	}
	decodeBody(t, rec, &list)
	found := false
	for _, item := range list.Projects {
		if item.ID == p.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("P1 missing from listing: %s", rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPut, "/projects/"+p.ID, mallory, map[string]string{"name": "X"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for other user, got %d", rec.Code)
	}
}
