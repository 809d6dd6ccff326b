package repository

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
)

func TestDataUriReader(t *testing.T) {
	r := NewDataUriReaderRepo()
	c := bCtx.Background()

	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr bool
	}{
		{name: "base64", uri: "data:application/json;base64,eyJuYW1lIjoiQXJ0In0=", want: `{"name":"Art"}`},
		{name: "plain", uri: `data:application/json,{"name":"Art"}`, want: `{"name":"Art"}`},
		{name: "escaped", uri: "data:application/json,%7B%22name%22%3A%22Art%22%7D", want: `{"name":"Art"}`},
		{name: "no data", uri: "data:application/json,", wantErr: true},
		{name: "not data", uri: "ipfs://bafy", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			b, err := r.Get(c, tt.uri)
			if tt.wantErr {
				req.Error(err)
				return
			}
			req.NoError(err)
			req.Equal(tt.want, string(b))
		})
	}
}

func TestIpfsGatewayReader(t *testing.T) {
	req := require.New(t)
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		if r.URL.Path == "/ipfs/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"name":"Art #1"}`))
	}))
	defer srv.Close()

	r := NewIpfsGatewayReaderRepo(http.Client{}, srv.URL+"/ipfs/", time.Second)
	c := bCtx.Background()

	b, err := r.Get(c, "ipfs://bafymeta/1")
	req.NoError(err)
	req.Equal(`{"name":"Art #1"}`, string(b))

	_, err = r.Get(c, "ipfs://ipfs/bafymeta")
	req.NoError(err)

	_, err = r.Get(c, "ipfs://missing")
	req.Error(err)

	mu.Lock()
	defer mu.Unlock()
	req.Equal([]string{"/ipfs/bafymeta/1", "/ipfs/bafymeta", "/ipfs/missing"}, paths)
}

func TestHttpReaderHeaders(t *testing.T) {
	req := require.New(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.Header.Get("User-Agent")))
	}))
	defer srv.Close()

	r := NewHttpReaderRepo(http.Client{}, time.Second, map[string]string{"User-Agent": "launchpad"})
	b, err := r.Get(bCtx.Background(), srv.URL)
	req.NoError(err)
	req.Equal("launchpad", string(b))
}
