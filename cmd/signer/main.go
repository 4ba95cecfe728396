// The signer binary is the isolated key-custody process: it unwraps the
// envelope-encrypted session key through KMS at startup, seals it into
// locked memory, and serves EIP-712 order signatures to the engine over a
// Unix domain socket. It holds no market state and places no orders.
package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/awnumar/memguard"
	"go.uber.org/zap"

	"github.com/caesar-terminal/arbiter/internal/config"
	"github.com/caesar-terminal/arbiter/internal/kms"
	"github.com/caesar-terminal/arbiter/internal/signer"
)

// usdcScale converts whole USDC into 6-decimal atomic units.
const usdcScale = 1_000_000

func main() {
	defer memguard.Purge()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("signer: starting",
		zap.String("env", cfg.Env),
		zap.String("socket", cfg.Signer.SocketPath))

	ttl := time.Duration(cfg.Signer.SessionTTLSec) * time.Second
	session := signer.NewSessionManager(ttl)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Signer.KeyCiphertextPath != "" {
		if err := activateFromKMS(ctx, cfg, session); err != nil {
			logger.Error("signer: session key activation failed", zap.Error(err))
			os.Exit(1)
		}
		logger.Info("signer: session active", zap.String("address", session.Address()))
	} else {
		logger.Warn("signer: no key ciphertext configured, starting with no active session")
	}

	srv, err := signer.New(cfg.Signer.SocketPath, session)
	if err != nil {
		logger.Error("signer: failed to create server", zap.Error(err))
		os.Exit(1)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve()
	}()

	logger.Info("signer: ready, listening on UDS")

	select {
	case <-ctx.Done():
		logger.Info("signer: shutting down")
		session.Destroy()
		srv.GracefulStop()
	case err := <-errCh:
		if err != nil {
			logger.Error("signer: server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("signer: stopped")
}

// activateFromKMS reads the envelope-encrypted key from disk, unwraps it
// through KMS, activates the session, and wipes the plaintext copy.
func activateFromKMS(ctx context.Context, cfg *config.Config, session *signer.SessionManager) error {
	ciphertext, err := os.ReadFile(cfg.Signer.KeyCiphertextPath)
	if err != nil {
		return fmt.Errorf("read key ciphertext: %w", err)
	}

	kmsClient, err := kms.New(ctx, cfg.Signer.AWSRegion, cfg.Signer.KMSKeyID, cfg.LocalStackEndpoint)
	if err != nil {
		return err
	}

	plaintext, err := kmsClient.Decrypt(ctx, ciphertext)
	if err != nil {
		return err
	}

	limit := new(big.Int).Mul(
		big.NewInt(cfg.Signer.MaxSessionValueUSDC),
		big.NewInt(usdcScale),
	)
	err = session.Activate(plaintext, limit)
	memguard.WipeBytes(plaintext)
	if err != nil {
		return fmt.Errorf("activate session: %w", err)
	}
	return nil
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
