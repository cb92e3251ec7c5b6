package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"mendikot/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// gRPC status codes used by RPC errors.
const (
	codeInvalidArgument = 3
	codeNotFound        = 5
	codeInternal        = 13
)

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcRoundRecord, rpcRoundRecord)
}

// RoundRecordRequest is the payload of the round_record RPC.
type RoundRecordRequest struct {
	RoundID string `json:"round_id"`
}

// rpcRoundRecord returns the full stored snapshot of a finished round.
//
// Payload: {"round_id": "<uuid>"}
// Returns: the RoundSnapshot JSON with every hand, as stored at round end.
func rpcRoundRecord(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	return roundRecord(ctx, logger, NewNakamaRoundStore(nk), payload)
}

func roundRecord(ctx context.Context, logger runtime.Logger, store ports.RoundStore, payload string) (string, error) {
	var req RoundRecordRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", codeInvalidArgument)
	}
	if req.RoundID == "" {
		return "", runtime.NewError("round_id is required", codeInvalidArgument)
	}

	round, err := store.LoadRound(ctx, req.RoundID)
	if errors.Is(err, ports.ErrRoundNotFound) {
		return "", runtime.NewError("round not found", codeNotFound)
	}
	if err != nil {
		logger.Error("RpcRoundRecord: Failed to load round %s: %v", req.RoundID, err)
		return "", runtime.NewError("failed to load round", codeInternal)
	}

	data, err := EncodeSnapshot(round, AllSeats)
	if err != nil {
		logger.Error("RpcRoundRecord: Failed to encode round %s: %v", req.RoundID, err)
		return "", runtime.NewError("failed to encode round", codeInternal)
	}
	return string(data), nil
}
