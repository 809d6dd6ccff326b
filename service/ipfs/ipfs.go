// Package ipfs pins content through the http api of an ipfs node
package ipfs

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	ipfsapi "github.com/ipfs/go-ipfs-api"

	"github.com/x-xyz/launchpad/base/ctx"
	"github.com/x-xyz/launchpad/base/log"
	"github.com/x-xyz/launchpad/service/pinata"
)

type nodeImpl struct {
	shell *ipfsapi.Shell
}

// New returns a pinner backed by the node at url, e.g. localhost:5001. It implements the same
// interface as the pinata service so either can back file uploads.
func New(url string, timeout time.Duration) pinata.Service {
	shell := ipfsapi.NewShell(url)
	shell.SetTimeout(timeout)
	return &nodeImpl{shell: shell}
}

func (im *nodeImpl) Pin(c ctx.Ctx, file io.Reader, filename string, _ ...pinata.Options) (string, error) {
	cid, err := im.shell.Add(file, ipfsapi.Pin(true), ipfsapi.CidVersion(1))
	if err != nil {
		c.WithFields(log.Fields{"err": err, "filename": filename}).Error("shell.Add failed")
		return "", err
	}
	return cid, nil
}

func (im *nodeImpl) PinJson(c ctx.Ctx, value interface{}, opts ...pinata.Options) (string, error) {
	body, err := json.Marshal(value)
	if err != nil {
		c.WithField("err", err).Error("json.Marshal failed")
		return "", err
	}
	return im.Pin(c, bytes.NewReader(body), "metadata.json", opts...)
}
