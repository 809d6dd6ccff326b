package pinata

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/x-xyz/launchpad/base/ctx"
)

func TestPin(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(pinPath, r.URL.Path)
		req.Equal("Bearer jwt", r.Header.Get("Authorization"))
		file, header, err := r.FormFile("file")
		req.NoError(err)
		req.Equal("cat.png", header.Filename)
		body, _ := io.ReadAll(file)
		req.Equal("png-bytes", string(body))
		req.Contains(r.FormValue("pinataMetadata"), `"name":"cat"`)
		_, _ = w.Write([]byte(`{"IpfsHash":"QmFile"}`))
	}))
	defer srv.Close()

	s := New(Cfg{Jwt: "jwt", Endpoint: srv.URL})
	cid, err := s.Pin(ctx.Background(), strings.NewReader("png-bytes"), "cat.png", WithName("cat"))
	req.NoError(err)
	req.Equal("QmFile", cid)
}

func TestPinJson(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(pinJsonPath, r.URL.Path)
		req.Equal("key", r.Header.Get("pinata_api_key"))
		req.Equal("secret", r.Header.Get("pinata_secret_api_key"))
		body := map[string]interface{}{}
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal(map[string]interface{}{"name": "meta"}, body["pinataContent"])
		_, _ = w.Write([]byte(`{"IpfsHash":"QmJson"}`))
	}))
	defer srv.Close()

	s := New(Cfg{ApiKey: "key", ApiSecret: "secret", Endpoint: srv.URL})
	cid, err := s.PinJson(ctx.Background(), map[string]string{"name": "meta"})
	req.NoError(err)
	req.Equal("QmJson", cid)
}

func TestPinRequestFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := New(Cfg{Jwt: "bad", Endpoint: srv.URL})
	_, err := s.PinJson(ctx.Background(), map[string]string{})
	require.ErrorIs(t, err, ErrRequestFailed)
}
