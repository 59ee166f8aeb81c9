package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(srv.URL)
	return srv, client
}

func jsonResponse(data any) []byte {
	b, _ := json.Marshal(map[string]any{"data": data})
	return b
}

// pngBytes is the smallest header mimetype recognises as image/png.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func writeTempPNG(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, pngBytes, 0o600))
	return path
}

func TestListAllReturnsRecordsInOrder(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/astrologer/all", r.URL.Path)
		w.Write([]byte(`{"data":[{"_id":"a1","name":"Ravi","skills":["vedic"]},{"_id":"a2","name":"Meera"}]}`))
	})

	records, err := client.Resource(MustLookup(Astrologers)).ListAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a1", records[0].ID())
	assert.Equal(t, "Ravi", records[0].Text("name"))
	assert.Equal(t, []string{"_id", "name", "skills"}, records[0].Fields.Keys())
	assert.Equal(t, "a2", records[1].ID())
}

func TestListAllMissingDataIsEmpty(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	})

	records, err := client.Resource(MustLookup(Users)).ListAll()
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListAllGroupedPoojas(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/all-poojas", r.URL.Path)
		w.Write([]byte(`{"data":{"Health":[{"_id":"p1","name":"Ganesh Puja"}],"Wealth":[{"_id":"p2","name":"Lakshmi Puja"},{"_id":"p3","name":"Kubera Puja"}]}}`))
	})

	records, err := client.Resource(MustLookup(Poojas)).ListAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Health", records[0].Group)
	assert.Equal(t, "Ganesh Puja", records[0].Text("name"))
	assert.Equal(t, "Wealth", records[1].Group)
	assert.Equal(t, "Wealth", records[2].Group)
}

func TestListAllSuccessFalseIsServerError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Failed to fetch banners."}`))
	})

	_, err := client.Resource(MustLookup(Banners)).ListAll()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindServer))
	assert.Equal(t, "Failed to fetch banners.", err.Error())
}

func TestServerErrorUsesMessageWhenParseable(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Email already registered"}`))
	})

	_, err := client.Resource(MustLookup(Users)).ListAll()
	require.Error(t, err)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Email already registered", apiErr.Message)
}

func TestServerErrorFallsBackToStatus(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := client.Resource(MustLookup(Users)).ListAll()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindServer))
	assert.Equal(t, "Server Error: 502", err.Error())
}

func TestTransportErrorIsDistinct(t *testing.T) {
	srv, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := client.Resource(MustLookup(Users)).ListAll()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
	assert.Equal(t, NetworkErrorMessage, err.Error())
}

func TestMalformedJSONIsDecodeError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})

	_, err := client.Resource(MustLookup(Users)).ListAll()
	require.Error(t, err)
	assert.True(t, IsKind(err, KindDecode))
}

func TestCreateSendsMultipartWithJSONListField(t *testing.T) {
	photo := writeTempPNG(t, "ravi.png")
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/astrologer/register", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, []string{"Ravi"}, r.MultipartForm.Value["name"])
		assert.Equal(t, []string{`["vedic","tarot"]`}, r.MultipartForm.Value["skills"])

		files := r.MultipartForm.File["profilePhoto"]
		require.Len(t, files, 1)
		assert.Equal(t, "ravi.png", files[0].Filename)
		assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		w.Write(jsonResponse(map[string]any{"_id": "a9", "name": "Ravi"}))
	})

	form := NewForm()
	form.AddField("name", "Ravi")
	require.NoError(t, form.AddList("skills", []string{"vedic", "tarot"}))
	form.AddFile("profilePhoto", photo)

	rec, err := client.Resource(MustLookup(Astrologers)).Create(form)
	require.NoError(t, err)
	assert.Equal(t, "a9", rec.ID())
}

func TestCreateWithUnreadableFileIsTransportErrorWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	form := NewForm()
	form.AddField("name", "Rudraksha")
	form.AddFile("images", filepath.Join(t.TempDir(), "missing.png"))

	_, err := client.Resource(MustLookup(Products)).Create(form)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindTransport))
	assert.Equal(t, int32(0), hits.Load())
}

func TestCreateWithoutDataReturnsEmptyRecord(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"message":"Banners uploaded"}`))
	})

	form := NewForm()
	form.AddFile("images", writeTempPNG(t, "b.png"))
	rec, err := client.Resource(MustLookup(Banners)).Create(form)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Fields.Len())
}

func TestRemoveUsesEscapedID(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/delete-pooja/p1", r.URL.Path)
		w.Write([]byte(`{"success":true,"message":"deleted"}`))
	})

	require.NoError(t, client.Resource(MustLookup(Poojas)).Remove("p1"))
}

func TestRemoveSuccessFalseIsError(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Banner not found"}`))
	})

	err := client.Resource(MustLookup(Banners)).Remove("b1")
	require.Error(t, err)
	assert.Equal(t, "Banner not found", err.Error())
}

func TestRemoveUnsupported(t *testing.T) {
	client := NewClient("http://example.invalid")
	err := client.Resource(MustLookup(Users)).Remove("u1")
	assert.Error(t, err)
}

func TestSetApprovalLocalStubMakesNoRequest(t *testing.T) {
	var hits atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	})

	require.NoError(t, client.Resource(MustLookup(Users)).SetApproval("u1", false))
	assert.Equal(t, int32(0), hits.Load())
}

func TestSetApprovalRemote(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/astrologer/status/a1", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"isApproved":false}`, string(body))
		w.Write([]byte(`{"success":true}`))
	})

	require.NoError(t, client.Resource(MustLookup(Astrologers)).SetApproval("a1", false))
}

func TestStatsTotals(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case userStatsPath:
			w.Write(jsonResponse(map[string]any{"total": 1200}))
		case astrologerStatsPath:
			w.Write([]byte(`{"data":{}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	users, err := client.UserTotal()
	require.NoError(t, err)
	assert.Equal(t, int64(1200), users)

	astrologers, err := client.AstrologerTotal()
	require.NoError(t, err)
	assert.Equal(t, int64(0), astrologers)
}

func TestLoginReturnsAdmin(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, adminLoginPath, r.URL.Path)
		var body LoginInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@kalp.in", body.Email)
		w.Write([]byte(`{"admin":{"_id":"ad1","name":"Asha","email":"admin@kalp.in"},"token":"tok"}`))
	})

	admin, err := client.Login(LoginInput{Email: "admin@kalp.in", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "ad1", admin.ID)
	assert.Equal(t, "Asha", admin.Name)
	assert.Equal(t, "tok", admin.Token)
}

func TestLoginRejected(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	})

	_, err := client.Login(LoginInput{Email: "admin@kalp.in", Password: "bad"})
	require.Error(t, err)
	assert.Equal(t, "Invalid credentials!", err.Error())
}

func TestClientSendsBearerToken(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write(jsonResponse([]any{}))
	})
	client.SetToken("tok")

	_, err := client.Resource(MustLookup(Products)).ListAll()
	require.NoError(t, err)
}

func TestClientConcurrentListCalls(t *testing.T) {
	var count atomic.Int32
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		count.Add(1)
		w.Write(jsonResponse([]map[string]any{{"_id": "u1", "name": "Anu"}}))
	})

	const workers = 20
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	users := client.Resource(MustLookup(Users))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := users.ListAll()
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(workers), count.Load())
}
