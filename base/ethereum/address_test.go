package ethereum

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestContractAddress(t *testing.T) {
	req := require.New(t)
	deployer := common.HexToAddress("0x6ac7ea33f8831ea9dcc53393aaa88b25a785dbf0")
	// well known CREATE results for this deployer
	req.Equal(common.HexToAddress("0xcd234a471b72ba2f1ccf0a70fcaba648a5eecd8d"), ContractAddress(deployer, 0))
	req.Equal(common.HexToAddress("0x343c43a37d37dff08ae8c4a11544c718abb4fcf8"), ContractAddress(deployer, 1))
	req.NotEqual(ContractAddress(deployer, 1), ContractAddress(deployer, 2))
}

func TestTxHash(t *testing.T) {
	req := require.New(t)
	from := common.HexToAddress("0x1111111111111111111111111111111111111111")
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	h1 := TxHash(from, 0, to, "stake(uint256)", 10)
	req.Equal(h1, TxHash(from, 0, to, "stake(uint256)", 10))
	req.NotEqual(h1, TxHash(from, 1, to, "stake(uint256)", 10))
	req.NotEqual(h1, TxHash(from, 0, to, "stake(uint256)", 11))
	req.NotEqual(h1, TxHash(from, 0, to, "withdraw(uint256)", 10))
}
