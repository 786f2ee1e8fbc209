package blockchain

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

var (
	dialEVMClient    = ethclient.Dial
	getClientChainID = func(client *ethclient.Client, ctx context.Context) (*big.Int, error) {
		return client.ChainID(ctx)
	}
)

// TxLookupState tags the outcome of a transaction lookup. Connectivity
// faults are reported as errors, never as a lookup state.
type TxLookupState int

const (
	TxFound TxLookupState = iota
	TxNotFound
)

// TxResult carries a transaction body and its receipt when found
type TxResult struct {
	State   TxLookupState
	Tx      *types.Transaction
	Receipt *types.Receipt
}

// EVMClient is the typed data-fetch boundary to an EVM node. It performs
// no business validation.
type EVMClient struct {
	client  *ethclient.Client
	chainID *big.Int
	rpcURL  string
}

// NewEVMClient creates a new EVM client
func NewEVMClient(rpcURL string) (*EVMClient, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, err
	}

	chainID, err := getClientChainID(client, context.Background())
	if err != nil {
		return nil, err
	}

	return &EVMClient{
		client:  client,
		chainID: chainID,
		rpcURL:  rpcURL,
	}, nil
}

// ChainID returns the chain ID
func (c *EVMClient) ChainID() *big.Int {
	return c.chainID
}

// FetchTransaction looks up a transaction and its receipt by hash. A hash
// unknown to the node (not yet broadcast or mined) yields TxNotFound; any
// other fault is a connectivity error.
func (c *EVMClient) FetchTransaction(ctx context.Context, txHash string) (*TxResult, error) {
	hash := common.HexToHash(txHash)

	receipt, err := c.client.TransactionReceipt(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return &TxResult{State: TxNotFound}, nil
		}
		return nil, err
	}

	tx, _, err := c.client.TransactionByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return &TxResult{State: TxNotFound}, nil
		}
		return nil, err
	}

	return &TxResult{State: TxFound, Tx: tx, Receipt: receipt}, nil
}

// BlockNumber returns the current chain height
func (c *EVMClient) BlockNumber(ctx context.Context) (uint64, error) {
	return c.client.BlockNumber(ctx)
}

// Close closes the client connection
func (c *EVMClient) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
