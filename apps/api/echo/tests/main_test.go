package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"reflect"
	"testing"

	. "github.com/mckinnonberry/familyqa/apps/api/echo"
	"github.com/mckinnonberry/familyqa/core"
	"github.com/mckinnonberry/familyqa/core/person"
	"github.com/mckinnonberry/familyqa/core/question"
	"github.com/mckinnonberry/familyqa/core/request"
	"github.com/mckinnonberry/familyqa/core/settings"
	emailsvc "github.com/mckinnonberry/familyqa/services/email"
	dummydb "github.com/mckinnonberry/familyqa/storage/database/dummy"
)

var (
	pinRepo      person.Repository
	questionRepo question.Repository
	requestRepo  request.Repository

	personSvc   *person.Service
	questionSvc *question.Service
	requestSvc  *request.Service

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
	errAuthFailed   = httpErr{Error: "authentication failed"}
)

const testAdminPassword = "test-admin-pass"

func TestMain(m *testing.M) {
	core.Conf.Debug = false
	core.Conf.TestMode = true
	core.Conf.AdminPassword = testAdminPassword
	core.Conf.NotificationEmails = map[string]string{
		person.Eben:  "eben@test.fam",
		person.Steph: "", // deliberately unconfigured
	}

	os.Exit(m.Run())
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func setup(t *testing.T) Server {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup(): %v", err)
	}
	pinRepo = dummydb.NewPinRepository(db)
	questionRepo = dummydb.NewQuestionRepository(db)
	requestRepo = dummydb.NewRequestRepository(db)

	// set up services
	emailsvc.ClearSentMessages()
	mailSvc := emailsvc.NewConsoleServiceMock()
	logger := nopLogger{}
	notifier := emailsvc.NewQuestionNotifier(mailSvc, logger)

	personSvc = person.NewService(pinRepo)
	settingsSvc := settings.NewService(dummydb.NewSettingsRepository(db))
	questionSvc = question.NewService(questionRepo, notifier, logger)
	requestSvc = request.NewService(requestRepo)

	// set up server
	return NewServer(
		&Options{
			DisableReqLogs: true,
			Logger:         logger,
			PersonSvc:      personSvc,
			SettingsSvc:    settingsSvc,
			QuestionSvc:    questionSvc,
			RequestSvc:     requestSvc,
			Notifier:       notifier,
		},
	)
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, personID string) string {
	token, err := GenerateToken(GetPersonClaims(personID))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

func getAdminToken(t *testing.T) string {
	token, err := GenerateToken(GetAdminClaims())
	if err != nil {
		t.Fatalf("getAdminToken(): %v", err)
	}
	return token
}

func setPin(t *testing.T, personID, pin string) {
	t.Helper()
	if err := personSvc.Reset(context.Background(), personID, pin); err != nil {
		t.Fatalf("setPin(): %v", err)
	}
}

func submitQuestion(t *testing.T, submitter, assignee, title string) question.Question {
	t.Helper()
	q, err := questionSvc.Submit(context.Background(), submitter, question.NewQuestion{
		AssignedTo:  assignee,
		Title:       title,
		Description: "some details",
	})
	if err != nil {
		t.Fatalf("submitQuestion(): %v", err)
	}
	return q
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil { // only the code matters
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
