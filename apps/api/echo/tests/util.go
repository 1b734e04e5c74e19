package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	. "github.com/trezcool/questboard/apps/api/echo"
	"github.com/trezcool/questboard/core"
	"github.com/trezcool/questboard/core/dashboard"
	inmemdb "github.com/trezcool/questboard/storage/database/inmem"
	testutil "github.com/trezcool/questboard/tests"
)

type sourceStub struct {
	snapshot dashboard.Snapshot
	err      error
}

func (s *sourceStub) FetchAll(context.Context) (dashboard.Snapshot, error) {
	return s.snapshot, s.err
}

func (s *sourceStub) FetchPartial(context.Context) (dashboard.PartialSnapshot, error) {
	if s.err != nil {
		return dashboard.PartialSnapshot{}, s.err
	}
	return dashboard.PartialSnapshot{
		User:            s.snapshot.User,
		ActiveQuests:    s.snapshot.ActiveQuests,
		Activities:      s.snapshot.Activities,
		UpcomingClasses: s.snapshot.UpcomingClasses,
	}, nil
}

func setup(t *testing.T) (Server, *dashboard.Store, *sourceStub) {
	t.Helper()

	conf := &core.Config{TestMode: true, AppName: "Questboard"}
	logger := core.NewStdLogger(log.New(ioutil.Discard, "", 0), false)

	src := &sourceStub{snapshot: testutil.NewSnapshot("u1")}
	prefs := inmemdb.NewPreferenceRepository(inmemdb.Open())
	store := dashboard.NewStore(context.Background(), "u1", src, prefs, logger, time.Second)

	app := NewServer(&Options{
		DisableReqLogs: true,
		Conf:           conf,
		Logger:         logger,
		Store:          store,
	})
	return app, store, src
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
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
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v\ndiff:\n%s",
			rec.Body.String(), string(tt.wantData), testutil.JSONDiff(rec.Body.Bytes(), tt.wantData))
	}
}
