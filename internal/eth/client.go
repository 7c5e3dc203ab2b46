// Package eth reads Uniswap V2 style pair state from an Ethereum node.
package eth

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// DialTimeout bounds the initial connection to the RPC endpoint.
const DialTimeout = 15 * time.Second

func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, DialTimeout)
	defer cancel()

	return ethclient.DialContext(ctx, url)
}
