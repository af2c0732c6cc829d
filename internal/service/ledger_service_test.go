package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/dutchpay/internal/auth"
	"github.com/mmynk/dutchpay/internal/middleware"
	"github.com/mmynk/dutchpay/internal/models"
	"github.com/mmynk/dutchpay/internal/storage/memory"
	"github.com/mmynk/dutchpay/internal/summary"
	"github.com/mmynk/dutchpay/pkg/api"
	"github.com/mmynk/dutchpay/pkg/api/apiconnect"
)

type stubSummarizer struct {
	text string

	mu    sync.Mutex
	items []models.ExpenseItem
}

func (s *stubSummarizer) Summarize(ctx context.Context, items []models.ExpenseItem, participants []models.Participant) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	return s.text
}

func (s *stubSummarizer) seen() []models.ExpenseItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// setupTestServer creates a test server backed by an in-memory session store
func setupTestServer(t *testing.T, summarizer summary.Summarizer) apiconnect.LedgerServiceClient {
	t.Helper()

	store := memory.New(0)
	tokens, err := auth.NewJWTManager("test-secret", "dutchpay-test", time.Hour)
	require.NoError(t, err)

	svc := NewLedgerService(store, tokens, summarizer)
	path, handler := apiconnect.NewLedgerServiceHandler(svc, connect.WithInterceptors(
		middleware.RequireSession(tokens, PublicProcedures()...),
	))

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL)
}

// newSession creates a session and returns the bearer header to use with it.
func newSession(t *testing.T, client apiconnect.LedgerServiceClient) string {
	t.Helper()
	resp, err := client.CreateSession(context.Background(), connect.NewRequest(&api.CreateSessionRequest{}))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Msg.Token)
	assert.Equal(t, "SETUP", resp.Msg.State)
	return "Bearer " + resp.Msg.Token
}

func authed[T any](bearer string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set("Authorization", bearer)
	return req
}

func activeSession(t *testing.T, client apiconnect.LedgerServiceClient, count int) string {
	t.Helper()
	bearer := newSession(t, client)
	_, err := client.InitParticipants(context.Background(), authed(bearer, &api.InitParticipantsRequest{Count: count}))
	require.NoError(t, err)
	return bearer
}

func TestPizzaScenario(t *testing.T) {
	client := setupTestServer(t, &stubSummarizer{})
	ctx := context.Background()

	bearer := newSession(t, client)
	initResp, err := client.InitParticipants(ctx, authed(bearer, &api.InitParticipantsRequest{Count: 2}))
	require.NoError(t, err)
	require.Len(t, initResp.Msg.Participants, 2)
	assert.Equal(t, "1", initResp.Msg.Participants[0].ID)
	assert.Equal(t, "Person 1", initResp.Msg.Participants[0].Name)

	renamed, err := client.RenameParticipant(ctx, authed(bearer, &api.RenameParticipantRequest{ParticipantID: "1", Name: "Alice"}))
	require.NoError(t, err)
	assert.Equal(t, "Alice", renamed.Msg.Participant.Name)
	_, err = client.RenameParticipant(ctx, authed(bearer, &api.RenameParticipantRequest{ParticipantID: "2", Name: "Bob"}))
	require.NoError(t, err)

	added, err := client.AddItem(ctx, authed(bearer, &api.AddItemRequest{
		Name:      "Pizza",
		Price:     decimal.NewFromInt(10000),
		SharerIDs: []string{"1", "2"},
	}))
	require.NoError(t, err)
	assert.NotEmpty(t, added.Msg.ItemID)

	receipt, err := client.GetReceipt(ctx, authed(bearer, &api.GetReceiptRequest{ParticipantID: "1"}))
	require.NoError(t, err)
	r := receipt.Msg.Receipt
	assert.Equal(t, "Alice", r.Participant.Name)
	require.Len(t, r.Lines, 1)
	assert.Equal(t, "Pizza", r.Lines[0].Name)
	assert.True(t, r.Lines[0].OriginalPrice.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, 2, r.Lines[0].SharerCount)
	assert.Equal(t, "5000", r.Lines[0].Amount)
	assert.Equal(t, "5000", r.Total)
	assert.True(t, r.TotalDisplay.Equal(decimal.NewFromInt(5000)))
	assert.Nil(t, r.Account)

	total, err := client.GetGrandTotal(ctx, authed(bearer, &api.GetGrandTotalRequest{}))
	require.NoError(t, err)
	assert.True(t, total.Msg.GrandTotal.Equal(decimal.NewFromInt(10000)))
}

func TestSnackScenario_RoundingArtifact(t *testing.T) {
	client := setupTestServer(t, &stubSummarizer{})
	ctx := context.Background()
	bearer := activeSession(t, client, 3)

	_, err := client.AddItem(ctx, authed(bearer, &api.AddItemRequest{
		Name:      "Snack",
		Price:     decimal.NewFromInt(10000),
		SharerIDs: []string{"1", "2", "3"},
	}))
	require.NoError(t, err)

	resp, err := client.ListReceipts(ctx, authed(bearer, &api.ListReceiptsRequest{}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Receipts, 3)
	for _, r := range resp.Msg.Receipts {
		assert.Equal(t, "10000/3", r.Total)
		assert.Equal(t, "3333.33", r.TotalApprox.StringFixed(2))
		assert.True(t, r.TotalDisplay.Equal(decimal.NewFromInt(3333)))
	}
	assert.True(t, resp.Msg.GrandTotal.Equal(decimal.NewFromInt(10000)))
	assert.Contains(t, []int64{9999, 10000, 10001}, resp.Msg.RoundedSum.IntPart())
}

func TestDeleteItem(t *testing.T) {
	client := setupTestServer(t, &stubSummarizer{})
	ctx := context.Background()
	bearer := activeSession(t, client, 2)

	added, err := client.AddItem(ctx, authed(bearer, &api.AddItemRequest{
		Name: "Taxi", Price: decimal.NewFromInt(8000), SharerIDs: []string{"2"},
	}))
	require.NoError(t, err)

	_, err = client.DeleteItem(ctx, authed(bearer, &api.DeleteItemRequest{ItemID: added.Msg.ItemID}))
	require.NoError(t, err)

	receipt, err := client.GetReceipt(ctx, authed(bearer, &api.GetReceiptRequest{ParticipantID: "2"}))
	require.NoError(t, err)
	assert.Empty(t, receipt.Msg.Receipt.Lines)
	assert.Equal(t, "0", receipt.Msg.Receipt.Total)

	_, err = client.DeleteItem(ctx, authed(bearer, &api.DeleteItemRequest{ItemID: added.Msg.ItemID}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestErrorCodes(t *testing.T) {
	client := setupTestServer(t, &stubSummarizer{})
	ctx := context.Background()

	t.Run("missing token", func(t *testing.T) {
		_, err := client.GetLedger(ctx, connect.NewRequest(&api.GetLedgerRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("bad token", func(t *testing.T) {
		_, err := client.GetLedger(ctx, authed("Bearer nope", &api.GetLedgerRequest{}))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("participant count out of range", func(t *testing.T) {
		bearer := newSession(t, client)
		_, err := client.InitParticipants(ctx, authed(bearer, &api.InitParticipantsRequest{Count: 21}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("queries before setup completes", func(t *testing.T) {
		bearer := newSession(t, client)
		_, err := client.GetReceipt(ctx, authed(bearer, &api.GetReceiptRequest{ParticipantID: "1"}))
		assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
		_, err = client.Summarize(ctx, authed(bearer, &api.SummarizeRequest{}))
		assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
		_, err = client.SetSettlementAccount(ctx, authed(bearer, &api.SetSettlementAccountRequest{BankName: "Kakao Bank"}))
		assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))
	})

	t.Run("price too large", func(t *testing.T) {
		bearer := activeSession(t, client, 2)
		_, err := client.AddItem(ctx, authed(bearer, &api.AddItemRequest{
			Name: "Overflow", Price: decimal.New(1, 16), SharerIDs: []string{"1", "2"},
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("empty sharer set leaves ledger unchanged", func(t *testing.T) {
		bearer := activeSession(t, client, 2)
		_, err := client.AddItem(ctx, authed(bearer, &api.AddItemRequest{Name: "Nobody's", Price: decimal.NewFromInt(100)}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

		ledgerResp, err := client.GetLedger(ctx, authed(bearer, &api.GetLedgerRequest{}))
		require.NoError(t, err)
		assert.Empty(t, ledgerResp.Msg.Items)
	})

	t.Run("unknown sharer and negative price", func(t *testing.T) {
		bearer := activeSession(t, client, 2)
		_, err := client.AddItem(ctx, authed(bearer, &api.AddItemRequest{Name: "X", Price: decimal.NewFromInt(100), SharerIDs: []string{"5"}}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
		_, err = client.AddItem(ctx, authed(bearer, &api.AddItemRequest{Name: "X", Price: decimal.NewFromInt(-100), SharerIDs: []string{"1"}}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("unknown participant", func(t *testing.T) {
		bearer := activeSession(t, client, 2)
		_, err := client.GetReceipt(ctx, authed(bearer, &api.GetReceiptRequest{ParticipantID: "3"}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
		_, err = client.RenameParticipant(ctx, authed(bearer, &api.RenameParticipantRequest{ParticipantID: "3", Name: "Ghost"}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})
}

func TestSessionsAreIsolated(t *testing.T) {
	client := setupTestServer(t, &stubSummarizer{})
	ctx := context.Background()

	first := activeSession(t, client, 2)
	second := activeSession(t, client, 4)

	_, err := client.AddItem(ctx, authed(first, &api.AddItemRequest{Name: "Beer", Price: decimal.NewFromInt(5000), SharerIDs: []string{"1"}}))
	require.NoError(t, err)

	secondLedger, err := client.GetLedger(ctx, authed(second, &api.GetLedgerRequest{}))
	require.NoError(t, err)
	assert.Len(t, secondLedger.Msg.Participants, 4)
	assert.Empty(t, secondLedger.Msg.Items)
}

func TestResetAllAndSettlementAccount(t *testing.T) {
	client := setupTestServer(t, &stubSummarizer{})
	ctx := context.Background()
	bearer := activeSession(t, client, 2)

	_, err := client.SetSettlementAccount(ctx, authed(bearer, &api.SetSettlementAccountRequest{BankName: "Kakao Bank", AccountNumber: "3333-01-1234567"}))
	require.NoError(t, err)
	_, err = client.AddItem(ctx, authed(bearer, &api.AddItemRequest{Name: "Pizza", Price: decimal.NewFromInt(10000), SharerIDs: []string{"1", "2"}}))
	require.NoError(t, err)

	receipt, err := client.GetReceipt(ctx, authed(bearer, &api.GetReceiptRequest{ParticipantID: "2"}))
	require.NoError(t, err)
	require.NotNil(t, receipt.Msg.Receipt.Account)
	assert.Equal(t, "Kakao Bank", receipt.Msg.Receipt.Account.BankName)

	for i := 0; i < 2; i++ {
		reset, err := client.ResetAll(ctx, authed(bearer, &api.ResetAllRequest{}))
		require.NoError(t, err)
		assert.Equal(t, "SETUP", reset.Msg.State)

		ledgerResp, err := client.GetLedger(ctx, authed(bearer, &api.GetLedgerRequest{}))
		require.NoError(t, err)
		assert.Equal(t, "SETUP", ledgerResp.Msg.State)
		assert.Empty(t, ledgerResp.Msg.Participants)
		assert.Empty(t, ledgerResp.Msg.Items)
		assert.Nil(t, ledgerResp.Msg.Account)
	}

	_, err = client.InitParticipants(ctx, authed(bearer, &api.InitParticipantsRequest{Count: 3}))
	require.NoError(t, err)
}

func TestSummarize(t *testing.T) {
	stub := &stubSummarizer{text: "Everyone loves pizza."}
	client := setupTestServer(t, stub)
	ctx := context.Background()
	bearer := activeSession(t, client, 2)

	_, err := client.AddItem(ctx, authed(bearer, &api.AddItemRequest{Name: "Pizza", Price: decimal.NewFromInt(10000), SharerIDs: []string{"1", "2"}}))
	require.NoError(t, err)

	resp, err := client.Summarize(ctx, authed(bearer, &api.SummarizeRequest{}))
	require.NoError(t, err)
	assert.Equal(t, "Everyone loves pizza.", resp.Msg.Summary)
	seen := stub.seen()
	require.Len(t, seen, 1)
	assert.Equal(t, "Pizza", seen[0].Name)
}

func TestSummarize_FallbackIsNotAnError(t *testing.T) {
	client := setupTestServer(t, summary.New(nil))
	ctx := context.Background()
	bearer := activeSession(t, client, 2)

	resp, err := client.Summarize(ctx, authed(bearer, &api.SummarizeRequest{}))
	require.NoError(t, err)
	assert.Equal(t, summary.FallbackNotConfigured, resp.Msg.Summary)
}
