package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/mckinnonberry/familyqa/core/person"
)

func Test_adminApi_pins(t *testing.T) {
	app := setup(t)
	adminToken := getAdminToken(t)

	setPin(t, person.Eben, "1234")

	t.Run("admin required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/pins", getToken(t, person.Eben))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("list", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/pins", adminToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v", rec.Code)
		}
		var pins []map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &pins); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if len(pins) != 1 || pins[0]["person"] != person.Eben {
			t.Errorf("failed! pins = %v", pins)
		}
		// hashes never serialize
		if _, ok := pins[0]["pin_hash"]; ok {
			t.Error("failed! pin hash exposed")
		}
	})

	resetPin := func(pin string) []byte {
		data, _ := json.Marshal(map[string]string{"pin": pin})
		return data
	}

	tests := []httpTest{
		{
			name: "reset: unknown person", path: "/v1/admin/pins/grandma", body: resetPin("4321"),
			wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound),
		},
		{
			name: "reset: bad pin", path: "/v1/admin/pins/eben", body: resetPin("abc"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"pin": "PIN must be exactly 4 digits"}),
		},
		{name: "reset: ok", path: "/v1/admin/pins/eben", body: resetPin("4321"), wantCode: http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPut, tt.path, adminToken, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// the reset stuck
	if err := personSvc.Verify(context.Background(), person.Eben, "4321"); err != nil {
		t.Errorf("Verify() after reset failed: %v", err)
	}
}

func Test_adminApi_accountRequests(t *testing.T) {
	app := setup(t)
	adminToken := getAdminToken(t)

	// intake is public
	intake, _ := json.Marshal(map[string]string{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"how_heard":  "family reunion",
	})
	req, rec := newRequest(http.MethodPost, "/v1/account-requests", intake)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshalling response: %v", err)
	}

	t.Run("admin required", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/account-requests", getToken(t, person.Lindy))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)
	})

	t.Run("list", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/admin/account-requests", adminToken)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v", rec.Code)
		}
		var reqs []map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &reqs); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if len(reqs) != 1 || reqs[0]["handled"] != false {
			t.Errorf("failed! requests = %v", reqs)
		}
	})

	t.Run("mark handled", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/account-requests/"+created.ID+"/handled", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNoContent}, rec)

		req, rec = newAuthRequest(http.MethodGet, "/v1/admin/account-requests", adminToken)
		app.ServeHTTP(rec, req)
		var reqs []map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &reqs); err != nil {
			t.Fatalf("unmarshalling response: %v", err)
		}
		if len(reqs) != 1 || reqs[0]["handled"] != true {
			t.Errorf("failed! requests = %v", reqs)
		}
	})

	t.Run("mark handled: unknown", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodPost, "/v1/admin/account-requests/f7f1a2c2-0000-0000-0000-00000000dead/handled", adminToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)
	})
}

func Test_requestApi_create_validation(t *testing.T) {
	app := setup(t)

	intake := func(first, last, email string) []byte {
		data, _ := json.Marshal(map[string]string{"first_name": first, "last_name": last, "email": email})
		return data
	}

	tests := []httpTest{
		{
			name: "missing first name", body: intake("", "Lovelace", "ada@example.com"),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"first_name": "this field is required"}),
		},
		{
			name: "missing email", body: intake("Ada", "Lovelace", ""),
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"email": "this field is required"}),
		},
		{name: "bad email", body: intake("Ada", "Lovelace", "nope"), wantCode: http.StatusBadRequest},
		{name: "ok", body: intake("Ada", "Lovelace", "ada@example.com"), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/account-requests", tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
