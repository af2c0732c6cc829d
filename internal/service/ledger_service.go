package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/dutchpay/internal/auth"
	"github.com/mmynk/dutchpay/internal/calculator"
	"github.com/mmynk/dutchpay/internal/ledger"
	"github.com/mmynk/dutchpay/internal/middleware"
	"github.com/mmynk/dutchpay/internal/models"
	"github.com/mmynk/dutchpay/internal/storage"
	"github.com/mmynk/dutchpay/internal/summary"
	"github.com/mmynk/dutchpay/pkg/api"
	"github.com/mmynk/dutchpay/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService.
// Every call except CreateSession operates on the caller's session ledger.
type LedgerService struct {
	store      storage.Store
	tokens     *auth.JWTManager
	summarizer summary.Summarizer
}

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a LedgerService with the given session store,
// token issuer and summary collaborator.
func NewLedgerService(store storage.Store, tokens *auth.JWTManager, summarizer summary.Summarizer) *LedgerService {
	return &LedgerService{store: store, tokens: tokens, summarizer: summarizer}
}

// PublicProcedures lists the procedures that do not need a session token.
func PublicProcedures() []string {
	return []string{apiconnect.LedgerServiceCreateSessionProcedure}
}

// toConnectError maps ledger and storage errors to Connect codes.
func toConnectError(err error) *connect.Error {
	switch {
	case errors.Is(err, ledger.ErrInvalidConfiguration), errors.Is(err, ledger.ErrInvalidItem):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, storage.ErrSessionNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, ledger.ErrInvalidState):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// withLedger runs fn against the caller's ledger while holding the session lock.
func (s *LedgerService) withLedger(ctx context.Context, fn func(l *ledger.Ledger) error) error {
	sessionID := middleware.GetSessionID(ctx)
	if sessionID == "" {
		return connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	session, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return toConnectError(err)
	}
	if err := session.Do(fn); err != nil {
		var connectErr *connect.Error
		if errors.As(err, &connectErr) {
			return connectErr
		}
		return toConnectError(err)
	}
	return nil
}

// CreateSession starts a new group session and returns its bearer token.
func (s *LedgerService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	session, err := s.store.CreateSession(ctx)
	if err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.tokens.Generate(session.ID)
	if err != nil {
		slog.Error("CreateSession token generation failed", "session_id", session.ID, "error", err)
		_ = s.store.DeleteSession(ctx, session.ID)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Session created", "session_id", session.ID)

	return connect.NewResponse(&api.CreateSessionResponse{
		SessionID: session.ID,
		Token:     token,
		State:     ledger.StateSetup.String(),
	}), nil
}

// InitParticipants creates the roster and activates the session.
func (s *LedgerService) InitParticipants(ctx context.Context, req *connect.Request[api.InitParticipantsRequest]) (*connect.Response[api.InitParticipantsResponse], error) {
	var participants []models.Participant
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		var err error
		participants, err = l.InitParticipants(req.Msg.Count)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Participants initialized", "session_id", middleware.GetSessionID(ctx), "count", len(participants))

	return connect.NewResponse(&api.InitParticipantsResponse{
		Participants: toAPIParticipants(participants),
	}), nil
}

// RenameParticipant changes a participant's display name.
func (s *LedgerService) RenameParticipant(ctx context.Context, req *connect.Request[api.RenameParticipantRequest]) (*connect.Response[api.RenameParticipantResponse], error) {
	var participant models.Participant
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		if err := l.RenameParticipant(req.Msg.ParticipantID, req.Msg.Name); err != nil {
			return err
		}
		var err error
		participant, err = l.Participant(req.Msg.ParticipantID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.RenameParticipantResponse{
		Participant: toAPIParticipant(participant),
	}), nil
}

// SetSettlementAccount records the bank account printed on receipts.
func (s *LedgerService) SetSettlementAccount(ctx context.Context, req *connect.Request[api.SetSettlementAccountRequest]) (*connect.Response[api.SetSettlementAccountResponse], error) {
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		return l.SetSettlementAccount(models.SettlementAccount{
			BankName:      req.Msg.BankName,
			AccountNumber: req.Msg.AccountNumber,
		})
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.SetSettlementAccountResponse{}), nil
}

// AddItem appends an expense item shared by the given participants.
func (s *LedgerService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	slog.Debug("Processing item",
		"name", req.Msg.Name,
		"price", req.Msg.Price.String(),
		"sharers", req.Msg.SharerIDs,
	)

	var itemID string
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		var err error
		itemID, err = l.AddItem(req.Msg.Name, req.Msg.Price, req.Msg.SharerIDs)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Item added", "session_id", middleware.GetSessionID(ctx), "item_id", itemID)

	return connect.NewResponse(&api.AddItemResponse{ItemID: itemID}), nil
}

// DeleteItem removes an item. A second delete of the same id is NotFound.
func (s *LedgerService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		return l.DeleteItem(req.Msg.ItemID)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Item deleted", "session_id", middleware.GetSessionID(ctx), "item_id", req.Msg.ItemID)

	return connect.NewResponse(&api.DeleteItemResponse{}), nil
}

// ResetAll clears the session back to setup.
func (s *LedgerService) ResetAll(ctx context.Context, req *connect.Request[api.ResetAllRequest]) (*connect.Response[api.ResetAllResponse], error) {
	var state ledger.State
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		l.ResetAll()
		state = l.State()
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Session reset", "session_id", middleware.GetSessionID(ctx))

	return connect.NewResponse(&api.ResetAllResponse{State: state.String()}), nil
}

// GetLedger returns the session's state, roster, items and settlement account.
func (s *LedgerService) GetLedger(ctx context.Context, req *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error) {
	resp := &api.GetLedgerResponse{}
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		resp.State = l.State().String()
		resp.Participants = toAPIParticipants(l.Participants())
		resp.Items = toAPIItems(l.Items())
		resp.Account = toAPIAccount(l.SettlementAccount())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// GetReceipt computes one participant's receipt.
func (s *LedgerService) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	var receipt api.Receipt
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		r, err := l.Receipt(req.Msg.ParticipantID)
		if err != nil {
			return err
		}
		receipt = toAPIReceipt(r, l.SettlementAccount())
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("Receipt computed",
		"participant_id", req.Msg.ParticipantID,
		"lines", len(receipt.Lines),
		"total", receipt.Total,
	)

	return connect.NewResponse(&api.GetReceiptResponse{Receipt: receipt}), nil
}

// ListReceipts computes receipts for every participant plus the grand total.
func (s *LedgerService) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	resp := &api.ListReceiptsResponse{}
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		receipts, err := l.Receipts()
		if err != nil {
			return err
		}
		grandTotal, err := l.GrandTotal()
		if err != nil {
			return err
		}

		account := l.SettlementAccount()
		resp.Receipts = make([]api.Receipt, 0, len(receipts))
		for _, r := range receipts {
			resp.Receipts = append(resp.Receipts, toAPIReceipt(r, account))
			resp.RoundedSum = resp.RoundedSum.Add(calculator.RoundForDisplay(r.Total))
		}
		resp.GrandTotal = grandTotal
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// GetGrandTotal returns the sum of all item prices.
func (s *LedgerService) GetGrandTotal(ctx context.Context, req *connect.Request[api.GetGrandTotalRequest]) (*connect.Response[api.GetGrandTotalResponse], error) {
	resp := &api.GetGrandTotalResponse{}
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		var err error
		resp.GrandTotal, err = l.GrandTotal()
		return err
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// Summarize asks the summary collaborator for commentary on the current items.
// Collaborator failures come back as a fallback message, never as an RPC error.
func (s *LedgerService) Summarize(ctx context.Context, req *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error) {
	var (
		items        []models.ExpenseItem
		participants []models.Participant
	)
	err := s.withLedger(ctx, func(l *ledger.Ledger) error {
		if l.State() != ledger.StateActive {
			return fmt.Errorf("%w: ledger is in %s", ledger.ErrInvalidState, l.State())
		}
		items = l.Items()
		participants = l.Participants()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The ledger lock is released before the external call.
	text := s.summarizer.Summarize(ctx, items, participants)
	return connect.NewResponse(&api.SummarizeResponse{Summary: text}), nil
}
