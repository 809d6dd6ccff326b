package ethereum

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/x-xyz/launchpad/base/log"
)

// ThrottledClient caps the number of in-flight read calls against an rpc node. It is used as
// the contract backend for name resolution.
type ThrottledClient struct {
	*ethclient.Client
	tokens chan int
}

func NewTrottledClient(client *ethclient.Client, n int) *ThrottledClient {
	tokens := make(chan int, n)
	for i := 0; i < n; i++ {
		tokens <- i + 1
	}
	return &ThrottledClient{
		Client: client,
		tokens: tokens,
	}
}

func (c *ThrottledClient) CodeAt(ctx context.Context, address common.Address, number *big.Int) ([]byte, error) {
	token := c.before(ctx)
	defer c.after(token)
	return c.Client.CodeAt(ctx, address, number)
}

func (c *ThrottledClient) CallContract(ctx context.Context, msg ethereum.CallMsg, number *big.Int) ([]byte, error) {
	token := c.before(ctx)
	defer c.after(token)
	return c.Client.CallContract(ctx, msg, number)
}

func (c *ThrottledClient) before(ctx context.Context) int {
	now := time.Now()
	select {
	case <-ctx.Done():
		log.Log().WithField("wait", time.Since(now)).Warn("throttle ctx done")
		return 0
	case token := <-c.tokens:
		if wait := time.Since(now); wait > time.Second {
			log.Log().WithFields(log.Fields{"token": token, "wait": wait}).Info("throttle slow acquire")
		}
		return token
	}
}

func (c *ThrottledClient) after(token int) {
	if token != 0 {
		c.tokens <- token
	}
}
