package chain

import (
	"time"

	"github.com/gagliardetto/solana-go"
)

// Config holds the chain settings shared by every binary
type Config struct {
	RPCURL    string           `env:"RPC_URL,required,notEmpty"`
	StakePool solana.PublicKey `env:"STAKE_POOL_ADDRESS" envDefault:"DpooSqZRL3qCmiq82YyB4zWmLfH3iEqx2gy8f2B6zjru"`
	Timeout   time.Duration    `env:"RPC_TIMEOUT" envDefault:"30s"`
}
