package eth

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Storage slots of a UniswapV2Pair:
//
//	address public token0;              // slot 6
//	address public token1;              // slot 7
//	uint112 private reserve0;           // slot 8, packed with reserve1
//	uint112 private reserve1;           //   and blockTimestampLast
//	uint32  private blockTimestampLast;
const (
	slotToken0   = 6
	slotToken1   = 7
	slotReserves = 8
)

// StorageReader is the subset of ethclient.Client used to read pair state.
type StorageReader interface {
	BlockNumber(ctx context.Context) (uint64, error)
	StorageAt(ctx context.Context, account common.Address, key common.Hash, blockNumber *big.Int) ([]byte, error)
}

// Pair is a snapshot of a pair's tokens and reserves at one block.
type Pair struct {
	Address  common.Address
	Block    uint64
	Token0   common.Address
	Token1   common.Address
	Reserve0 *big.Int
	Reserve1 *big.Int
}

// ReservesFor orders the pair's reserves for a src -> dst trade. ok is false
// when src and dst are not the pair's two tokens.
func (p *Pair) ReservesFor(src, dst common.Address) (reserveIn, reserveOut *big.Int, ok bool) {
	switch {
	case src == p.Token0 && dst == p.Token1:
		return p.Reserve0, p.Reserve1, true
	case src == p.Token1 && dst == p.Token0:
		return p.Reserve1, p.Reserve0, true
	default:
		return nil, nil, false
	}
}

// ReadPair loads token0, token1 and the packed reserves of pool at the latest
// block.
func ReadPair(ctx context.Context, r StorageReader, pool common.Address) (*Pair, error) {
	bn, err := r.BlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("block number: %w", err)
	}
	blockNum := new(big.Int).SetUint64(bn)

	b0, err := readSlot(ctx, r, pool, blockNum, slotToken0)
	if err != nil {
		return nil, err
	}
	b1, err := readSlot(ctx, r, pool, blockNum, slotToken1)
	if err != nil {
		return nil, err
	}
	br, err := readSlot(ctx, r, pool, blockNum, slotReserves)
	if err != nil {
		return nil, err
	}
	reserve0, reserve1 := parseReserves(br)

	return &Pair{
		Address:  pool,
		Block:    bn,
		Token0:   common.BytesToAddress(b0),
		Token1:   common.BytesToAddress(b1),
		Reserve0: reserve0,
		Reserve1: reserve1,
	}, nil
}

func readSlot(ctx context.Context, r StorageReader, pool common.Address, blockNum *big.Int, slot uint64) ([]byte, error) {
	key := common.BigToHash(new(big.Int).SetUint64(slot))
	b, err := r.StorageAt(ctx, pool, key, blockNum)
	if err != nil {
		return nil, fmt.Errorf("storageAt slot %d (pool %s, block %s): %w",
			slot, pool.Hex(), blockNum.String(), err)
	}
	return b, nil
}

// parseReserves unpacks two uint112 reserves from the 32-byte storage word:
//
//	[ 32 bits timestamp | 112 bits reserve1 | 112 bits reserve0 ]
//
// read big-endian, so reserve0 occupies the low bits.
func parseReserves(b []byte) (reserve0, reserve1 *big.Int) {
	v := new(big.Int).SetBytes(b)
	one := big.NewInt(1)
	mask112 := new(big.Int).Sub(new(big.Int).Lsh(one, 112), one)

	reserve0 = new(big.Int).And(v, mask112)
	reserve1 = new(big.Int).And(new(big.Int).Rsh(v, 112), mask112)
	return
}
