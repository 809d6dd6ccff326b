package repository

import (
	"net/http"
	"strings"
	"time"

	bCtx "github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/domain/file"
)

type ipfsGatewayReaderRepo struct {
	http    *httpReaderRepo
	gateway string
}

// NewIpfsGatewayReaderRepo reads ipfs://<cid>[/path] uris through a public gateway such as
// https://ipfs.io/ipfs
func NewIpfsGatewayReaderRepo(client http.Client, gateway string, timeout time.Duration) file.ReaderRepo {
	return &ipfsGatewayReaderRepo{
		http:    &httpReaderRepo{client: client, ctxTimeout: timeout},
		gateway: strings.TrimSuffix(gateway, "/"),
	}
}

func (r *ipfsGatewayReaderRepo) Get(c bCtx.Ctx, uri string) ([]byte, error) {
	cid := strings.TrimPrefix(uri, file.IpfsScheme)
	cid = strings.TrimPrefix(cid, "ipfs/")
	return r.http.Get(c, r.gateway+"/"+cid)
}
