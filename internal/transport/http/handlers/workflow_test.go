package handlers_test

import (
	"net/http"
	"testing"
)

func onboard(t *testing.T, client *http.Client, baseURL, hrToken, name, email string) (string, string) {
	t.Helper()
	var created struct {
		Employee struct {
			ID string `json:"id"`
		} `json:"employee"`
	}
	if status := call(t, client, http.MethodPost, baseURL+"/api/v1/employees", hrToken, map[string]any{
		"name": name, "email": email, "salary": 30000,
	}, &created); status != http.StatusCreated {
		t.Fatalf("create %s: %d", email, status)
	}
	if status := call(t, client, http.MethodPost, baseURL+"/api/v1/auth/register", "", map[string]any{
		"email": email, "password": "secret1", "confirmPassword": "secret1",
	}, nil); status != http.StatusCreated {
		t.Fatalf("register %s: %d", email, status)
	}
	return created.Employee.ID, login(t, client, baseURL, email, "secret1", "employee")
}

func TestCRMTaskProgressUpdatesLead(t *testing.T) {
	ts, cfg := startApp(t)
	client := ts.Client()
	hrToken := login(t, client, ts.URL, cfg.SeedHREmail, cfg.SeedHRPassword, "hr")
	aliceID, aliceToken := onboard(t, client, ts.URL, hrToken, "Alice", "alice@example.com")
	_, bobToken := onboard(t, client, ts.URL, hrToken, "Bob", "bob@example.com")

	var lead struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	if status := call(t, client, http.MethodPost, ts.URL+"/api/v1/leads", hrToken, map[string]any{"name": "Acme"}, &lead); status != http.StatusCreated || lead.Status != "Cold" {
		t.Fatalf("expected cold lead, got %d %+v", status, lead)
	}

	var task struct {
		ID     string `json:"id"`
		LeadID string `json:"leadId"`
	}
	status := call(t, client, http.MethodPost, ts.URL+"/api/v1/tasks", hrToken, map[string]any{
		"title":            "Call Acme",
		"assignedTo":       aliceID,
		"type":             "CRM",
		"leadId":           lead.ID,
		"nextFollowUpDate": "2030-05-02",
	}, &task)
	if status != http.StatusCreated || task.LeadID != lead.ID {
		t.Fatalf("expected crm task, got %d %+v", status, task)
	}

	var followUps []struct {
		ID string `json:"id"`
	}
	call(t, client, http.MethodGet, ts.URL+"/api/v1/tasks/follow-ups?date=2030-05-02", aliceToken, nil, &followUps)
	if len(followUps) != 1 || followUps[0].ID != task.ID {
		t.Fatalf("expected one follow-up, got %+v", followUps)
	}

	if status := call(t, client, http.MethodPost, ts.URL+"/api/v1/tasks/"+task.ID+"/progress", bobToken, map[string]any{"status": "In Progress"}, nil); status != http.StatusForbidden {
		t.Fatalf("expected other employee to be refused, got %d", status)
	}

	status = call(t, client, http.MethodPost, ts.URL+"/api/v1/tasks/"+task.ID+"/progress", aliceToken, map[string]any{
		"status":     "In Progress",
		"remarks":    "Left a voicemail",
		"leadStatus": "Warm",
		"lastRemark": "Interested in a demo",
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("expected progress update, got %d", status)
	}

	var updated struct {
		Status     string `json:"status"`
		LastRemark string `json:"lastRemark"`
	}
	call(t, client, http.MethodGet, ts.URL+"/api/v1/leads/"+lead.ID, aliceToken, nil, &updated)
	if updated.Status != "Warm" || updated.LastRemark != "Interested in a demo" {
		t.Fatalf("expected lead updated from task, got %+v", updated)
	}

	// In Progress is not a completion, so HR hears nothing yet.
	if notes := listNotifications(t, client, ts.URL, hrToken); len(notes) != 0 {
		t.Fatalf("expected no hr notifications, got %+v", notes)
	}
}

func TestEmployeesCannotReachHROperations(t *testing.T) {
	ts, cfg := startApp(t)
	client := ts.Client()
	hrToken := login(t, client, ts.URL, cfg.SeedHREmail, cfg.SeedHRPassword, "hr")
	aliceID, aliceToken := onboard(t, client, ts.URL, hrToken, "Alice", "alice@example.com")
	bobID, _ := onboard(t, client, ts.URL, hrToken, "Bob", "bob@example.com")

	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"list employees", http.MethodGet, "/api/v1/employees", nil},
		{"delete employee", http.MethodDelete, "/api/v1/employees/" + bobID, nil},
		{"salaries", http.MethodPut, "/api/v1/employees/salaries", map[string]any{"changes": []map[string]any{{"id": aliceID, "salary": 1}}}},
		{"hr dashboard", http.MethodGet, "/api/v1/dashboard/hr", nil},
		{"legacy delete", http.MethodPost, "/api/delete-employee", map[string]any{"employeeId": bobID}},
		{"legacy email", http.MethodPost, "/api/send-email", map[string]any{"to": "x@example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := send(t, client, tc.method, ts.URL+tc.path, aliceToken, tc.body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", resp.StatusCode)
			}
		})
	}

	resp := send(t, client, http.MethodGet, ts.URL+"/api/v1/payroll/statements/"+bobID, aliceToken, nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected statement of another employee to be refused, got %d", resp.StatusCode)
	}
}

func TestSalaryBulkUpdateAndNotificationOwnership(t *testing.T) {
	ts, cfg := startApp(t)
	client := ts.Client()
	hrToken := login(t, client, ts.URL, cfg.SeedHREmail, cfg.SeedHRPassword, "hr")
	aliceID, aliceToken := onboard(t, client, ts.URL, hrToken, "Alice", "alice@example.com")
	bobID, bobToken := onboard(t, client, ts.URL, hrToken, "Bob", "bob@example.com")

	status := call(t, client, http.MethodPut, ts.URL+"/api/v1/employees/salaries", hrToken, map[string]any{
		"changes": []map[string]any{{"id": aliceID, "salary": 41000}, {"id": bobID, "salary": 42000}},
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("expected salary update, got %d", status)
	}
	var summary struct {
		Total   float64 `json:"total"`
		Average float64 `json:"average"`
	}
	call(t, client, http.MethodGet, ts.URL+"/api/v1/payroll/summary", hrToken, nil, &summary)
	if summary.Total != 83000 || summary.Average != 41500 {
		t.Fatalf("unexpected payroll summary %+v", summary)
	}

	call(t, client, http.MethodPost, ts.URL+"/api/v1/tasks", hrToken, map[string]any{"title": "Onboarding", "assignedTo": aliceID}, nil)
	notes := listNotifications(t, client, ts.URL, aliceToken)
	if len(notes) != 1 {
		t.Fatalf("expected one notification for alice, got %d", len(notes))
	}

	if status := call(t, client, http.MethodDelete, ts.URL+"/api/v1/notifications/"+notes[0].ID, bobToken, nil, nil); status != http.StatusNotFound {
		t.Fatalf("expected bob to be refused alice's notification, got %d", status)
	}
	if status := call(t, client, http.MethodDelete, ts.URL+"/api/v1/notifications/"+notes[0].ID, aliceToken, nil, nil); status != http.StatusOK {
		t.Fatalf("expected alice to delete her notification, got %d", status)
	}
}
