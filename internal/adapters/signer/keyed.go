package signer

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/trebuchet-org/stake-deployer/internal/domain"
	"github.com/trebuchet-org/stake-deployer/internal/domain/config"
	"github.com/trebuchet-org/stake-deployer/internal/usecase"
)

// KeyedSigner signs with the private key from [deployer] private_key.
// The key is parsed on first use so commands that never sign don't need one.
type KeyedSigner struct {
	rawKey string

	once    sync.Once
	key     *ecdsa.PrivateKey
	address common.Address
	err     error
}

// NewKeyedSigner creates a signer from the runtime configuration
func NewKeyedSigner(cfg *config.RuntimeConfig) *KeyedSigner {
	var rawKey string
	if cfg.DeployerFile != nil {
		rawKey = cfg.DeployerFile.Deployer.PrivateKey
	}
	return NewKeyedSignerFromHex(rawKey)
}

// NewKeyedSignerFromHex creates a signer from a hex encoded private key
func NewKeyedSignerFromHex(rawKey string) *KeyedSigner {
	return &KeyedSigner{rawKey: strings.TrimSpace(rawKey)}
}

func (s *KeyedSigner) load() error {
	s.once.Do(func() {
		if s.rawKey == "" {
			s.err = domain.ErrMissingSigner
			return
		}
		s.key, s.address, s.err = parsePrivateKey(s.rawKey)
	})
	return s.err
}

// DeployerAddress returns the address derived from the key
func (s *KeyedSigner) DeployerAddress(ctx context.Context) (common.Address, error) {
	if err := s.load(); err != nil {
		return common.Address{}, err
	}
	return s.address, nil
}

// Transactor returns transaction options signing for chainID
func (s *KeyedSigner) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return bind.NewKeyedTransactorWithChainID(s.key, chainID)
}

// parsePrivateKey parses a private key string and returns the address
func parsePrivateKey(privateKeyHex string) (*ecdsa.PrivateKey, common.Address, error) {
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")

	privateKeyBytes, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("%w: failed to decode private key: %v", domain.ErrInvalidSigner, err)
	}

	privateKey, err := crypto.ToECDSA(privateKeyBytes)
	if err != nil {
		return nil, common.Address{}, fmt.Errorf("%w: %v", domain.ErrInvalidSigner, err)
	}

	return privateKey, crypto.PubkeyToAddress(privateKey.PublicKey), nil
}

// Ensure the adapter implements the interface
var _ usecase.SignerProvider = (*KeyedSigner)(nil)
