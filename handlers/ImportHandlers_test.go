package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"quotedesk/importer"
	"quotedesk/models"

	"github.com/gin-gonic/gin"
)

func wizardContext(t *testing.T, sessionID, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: sessionID}}
	c.Set("user", &models.User{Username: "alice", Role: "user", Region: "Indonesia"})
	return c, w
}

func TestConfirmMappingWrongStateLeavesSessionUntouched(t *testing.T) {
	session := ImportSessions.Create(importer.Identity{Username: "alice", Region: "Indonesia"})
	defer ImportSessions.Delete(session.ID)
	session.HeaderLabels = []string{"设备名称"}
	session.DataRows = [][]string{{"pump"}}
	// Still in the uploaded state: confirming a mapping is out of order.

	c, w := wizardContext(t, session.ID, `{"mapping":["item_name"]}`)
	ConfirmMapping(nil)(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if session.Mapping != nil {
		t.Fatalf("rejected request wrote a mapping: %v", session.Mapping)
	}
	if session.Table.Columns != nil || session.EmptyTargets != nil {
		t.Fatal("rejected request materialized the table")
	}
	if session.State != importer.StateUploaded {
		t.Fatalf("state moved to %s", session.State)
	}
}

func TestApplyImportGlobalsWrongStateLeavesSessionUntouched(t *testing.T) {
	session := ImportSessions.Create(importer.Identity{Username: "alice", Region: "Indonesia"})
	defer ImportSessions.Delete(session.ID)
	session.Table = importer.Materialize([][]string{{"pump"}}, []string{"item_name"}, session.User)
	before := session.Table.Rows[0][1] // item_name cell

	c, w := wizardContext(t, session.ID,
		`{"project":"P","supplier":"S","inquirer":"I","date":"2026-08-01"}`)
	ApplyImportGlobals(nil)(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if session.Table.Rows[0][1] != before {
		t.Fatal("rejected request mutated the table")
	}
	if session.Valid.Rows != nil || session.Invalid.Rows != nil {
		t.Fatal("rejected request ran validation")
	}
	if session.State != importer.StateUploaded {
		t.Fatalf("state moved to %s", session.State)
	}
}
