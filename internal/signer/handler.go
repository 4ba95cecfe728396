package signer

import (
	"context"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	signerv1 "github.com/caesar-terminal/arbiter/internal/gen/signer/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Handler implements the SignerService RPC surface over a SessionManager.
type Handler struct {
	signerv1.UnimplementedSignerServiceServer
	session *SessionManager
}

// NewHandler creates a Handler wired to the given SessionManager.
func NewHandler(session *SessionManager) *Handler {
	return &Handler{session: session}
}

// SignOrder signs one CLOB order with the session key. The maker amount
// doubles as the order's USDC value for the session's cumulative limit.
// Maker and signer addresses default to the session's own address when the
// request leaves them empty — the engine does not need to know the key's
// address to ask for a signature.
func (h *Handler) SignOrder(_ context.Context, req *signerv1.SignOrderRequest) (*signerv1.SignOrderResponse, error) {
	if req.Order == nil {
		return nil, status.Errorf(codes.InvalidArgument, "order is required")
	}
	if req.Domain == nil {
		return nil, status.Errorf(codes.InvalidArgument, "domain is required")
	}

	orderValue, ok := new(big.Int).SetString(req.Order.MakerAmount, 10)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "invalid maker_amount: %s", req.Order.MakerAmount)
	}

	domain := &DomainData{
		Name:              req.Domain.Name,
		Version:           req.Domain.Version,
		ChainID:           big.NewInt(req.Domain.ChainId),
		VerifyingContract: common.HexToAddress(req.Domain.VerifyingContract),
	}

	maker := req.Order.Maker
	if maker == "" {
		maker = h.session.Address()
	}

	salt := new(big.Int)
	if req.Order.Salt != "" {
		if _, ok := salt.SetString(req.Order.Salt, 10); !ok {
			return nil, status.Errorf(codes.InvalidArgument, "invalid salt: %s", req.Order.Salt)
		}
	}

	tokenID := new(big.Int)
	tokenID.SetString(req.Order.TokenId, 10)

	takerAmt := new(big.Int)
	takerAmt.SetString(req.Order.TakerAmount, 10)

	order := &OrderData{
		Salt:          salt,
		Maker:         common.HexToAddress(maker),
		Signer:        common.HexToAddress(maker),
		Taker:         common.HexToAddress(req.Order.Taker),
		TokenID:       tokenID,
		MakerAmount:   new(big.Int).Set(orderValue),
		TakerAmount:   takerAmt,
		Expiration:    new(big.Int).SetUint64(req.Order.Expiration),
		Nonce:         new(big.Int).SetUint64(req.Order.Nonce),
		FeeRateBps:    new(big.Int).SetUint64(uint64(req.Order.FeeRateBps)),
		Side:          protoSideToUint8(req.Order.Side),
		SignatureType: protoSigTypeToUint8(req.Order.SignatureType),
	}

	sig, err := h.session.Sign(orderValue, domain, order)
	if err != nil {
		switch err {
		case ErrNoActiveSession:
			return nil, status.Errorf(codes.FailedPrecondition, "no active session")
		case ErrSessionExpired:
			return nil, status.Errorf(codes.FailedPrecondition, "session expired")
		case ErrValueLimitExceeded:
			return nil, status.Errorf(codes.ResourceExhausted, "cumulative value limit exceeded")
		default:
			return nil, status.Errorf(codes.Internal, "signing failed: %v", err)
		}
	}

	return &signerv1.SignOrderResponse{
		Signature:     "0x" + hex.EncodeToString(sig),
		SignerAddress: h.session.Address(),
		SignedAt:      time.Now().UnixNano(),
	}, nil
}

// GetSessionStatus returns the current session key status.
func (h *Handler) GetSessionStatus(_ context.Context, _ *signerv1.GetSessionStatusRequest) (*signerv1.GetSessionStatusResponse, error) {
	st := h.session.Status()

	return &signerv1.GetSessionStatusResponse{
		Active:         st.Active,
		TtlSeconds:     int64(st.TTLRemaining.Seconds()),
		MaxValueLimit:  st.MaxValueLimit,
		ValueUsed:      st.ValueUsed,
		SessionAddress: st.Address,
	}, nil
}

// protoSideToUint8 maps the proto side enum to the CLOB's uint8 convention
// (BUY=0, SELL=1).
func protoSideToUint8(s signerv1.OrderSide) uint8 {
	if s == signerv1.OrderSide_ORDER_SIDE_SELL {
		return 1
	}
	return 0
}

// protoSigTypeToUint8 maps the proto signature-type enum to the CLOB's
// uint8 convention.
func protoSigTypeToUint8(s signerv1.SignatureType) uint8 {
	switch s {
	case signerv1.SignatureType_SIGNATURE_TYPE_POLY_PROXY:
		return 1
	case signerv1.SignatureType_SIGNATURE_TYPE_POLY_GNOSIS_SAFE:
		return 2
	default:
		return 0
	}
}
