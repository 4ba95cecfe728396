package signer

import (
	"context"
	"fmt"
	"math/big"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/caesar-terminal/arbiter/internal/adapter/poly"
	signerv1 "github.com/caesar-terminal/arbiter/internal/gen/signer/v1"
)

// polygonChainID keys the EIP-712 domain separator.
const polygonChainID = 137

// Client is the engine-side stub for the isolated signer process: it
// forwards order-signing requests over the Unix domain socket and never
// sees key material. It satisfies poly.OrderSigner.
type Client struct {
	conn *grpc.ClientConn
	rpc  signerv1.SignerServiceClient
}

// Dial connects to the signer's Unix socket. The socket is local and
// owner-only, so transport security is the filesystem, not TLS.
func Dial(socketPath string) (*Client, error) {
	conn, err := grpc.NewClient("unix://"+socketPath,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("signer: dial %s: %w", socketPath, err)
	}
	return &Client{conn: conn, rpc: signerv1.NewSignerServiceClient(conn)}, nil
}

// Close releases the connection.
func (c *Client) Close() error { return c.conn.Close() }

var _ poly.OrderSigner = (*Client)(nil)

// SignOrder implements poly.OrderSigner by forwarding to the signer
// process. The signer enforces its own session TTL and cumulative value
// limit; a limit rejection surfaces here as an error and the order is
// never submitted.
func (c *Client) SignOrder(ctx context.Context, req poly.SignRequest) (poly.SignedOrder, error) {
	side := signerv1.OrderSide_ORDER_SIDE_SELL
	if req.Buy {
		side = signerv1.OrderSide_ORDER_SIDE_BUY
	}

	resp, err := c.rpc.SignOrder(ctx, &signerv1.SignOrderRequest{
		Order: &signerv1.Order{
			TokenId:       req.TokenID,
			MakerAmount:   big.NewInt(req.MakerAmount).String(),
			TakerAmount:   big.NewInt(req.TakerAmount).String(),
			Expiration:    uint64(req.Expiration),
			Nonce:         uint64(req.Nonce),
			FeeRateBps:    uint32(req.FeeRateBps),
			Side:          side,
			SignatureType: signerv1.SignatureType_SIGNATURE_TYPE_EOA,
		},
		Domain: &signerv1.EIP712Domain{
			Name:              "Polymarket CTF Exchange",
			Version:           "1",
			ChainId:           polygonChainID,
			VerifyingContract: req.Contract,
		},
	})
	if err != nil {
		return poly.SignedOrder{}, fmt.Errorf("signer: sign order: %w", err)
	}

	return poly.SignedOrder{
		Signature: resp.Signature,
		Maker:     resp.SignerAddress,
	}, nil
}

// SessionStatus reports whether the signer currently holds an active
// session key, for the operator health surface.
func (c *Client) SessionStatus(ctx context.Context) (active bool, address string, err error) {
	resp, err := c.rpc.GetSessionStatus(ctx, &signerv1.GetSessionStatusRequest{})
	if err != nil {
		return false, "", fmt.Errorf("signer: session status: %w", err)
	}
	return resp.Active, resp.SessionAddress, nil
}
