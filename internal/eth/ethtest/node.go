// Package ethtest serves fake Uniswap V2 pair storage over an in-process
// JSON-RPC server for tests.
package ethtest

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Node answers eth_blockNumber and eth_getStorageAt.
type Node struct {
	Block uint64
	// Storage[address][positionHash] = 32-byte value
	Storage map[common.Address]map[common.Hash][]byte
}

func (n *Node) BlockNumber(ctx context.Context) (hexutil.Uint64, error) {
	return hexutil.Uint64(n.Block), nil
}

func (n *Node) GetStorageAt(ctx context.Context, addr common.Address, position common.Hash, _ gethrpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	if m, ok := n.Storage[addr]; ok {
		if v, ok2 := m[position]; ok2 {
			return hexutil.Bytes(v), nil
		}
	}
	// default empty 32 bytes
	return hexutil.Bytes(make([]byte, 32)), nil
}

// NewPairNode returns a Node at block holding a single pair at pool.
func NewPairNode(block uint64, pool, token0, token1 common.Address, reserve0, reserve1 uint64) *Node {
	return &Node{
		Block: block,
		Storage: map[common.Address]map[common.Hash][]byte{
			pool: PairStorage(token0, token1, reserve0, reserve1),
		},
	}
}

// PairStorage lays out token0, token1 and reserves the way a UniswapV2Pair
// stores them.
func PairStorage(token0, token1 common.Address, reserve0, reserve1 uint64) map[common.Hash][]byte {
	return map[common.Hash][]byte{
		slot(6): rightAlign(token0.Bytes()),
		slot(7): rightAlign(token1.Bytes()),
		slot(8): PackReserves(reserve0, reserve1, 0),
	}
}

// Dial registers n under the "eth" namespace of an in-process RPC server and
// returns a client connected to it.
func Dial(t testing.TB, n *Node) *ethclient.Client {
	t.Helper()
	srv := gethrpc.NewServer()
	if err := srv.RegisterName("eth", n); err != nil {
		t.Fatalf("register rpc service: %v", err)
	}
	c := ethclient.NewClient(gethrpc.DialInProc(srv))
	t.Cleanup(func() {
		c.Close()
		srv.Stop()
	})
	return c
}

// PackReserves builds the 32-byte reserve word of a pair.
func PackReserves(r0, r1 uint64, ts uint32) []byte {
	v := new(big.Int).SetUint64(uint64(ts))
	v.Lsh(v, 112)
	v.Or(v, new(big.Int).SetUint64(r1))
	v.Lsh(v, 112)
	v.Or(v, new(big.Int).SetUint64(r0))
	return rightAlign(v.Bytes())
}

func slot(i uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(i))
}

func rightAlign(b []byte) []byte {
	if len(b) > 32 {
		panic("value does not fit in 32 bytes")
	}
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}
