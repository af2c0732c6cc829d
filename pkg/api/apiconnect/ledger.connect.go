// Package apiconnect wires the dutchpay.v1.LedgerService messages to Connect
// handlers and clients.
package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/dutchpay/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "dutchpay.v1.LedgerService"

// Procedure paths of the LedgerService RPCs.
const (
	LedgerServiceCreateSessionProcedure        = "/dutchpay.v1.LedgerService/CreateSession"
	LedgerServiceInitParticipantsProcedure     = "/dutchpay.v1.LedgerService/InitParticipants"
	LedgerServiceRenameParticipantProcedure    = "/dutchpay.v1.LedgerService/RenameParticipant"
	LedgerServiceSetSettlementAccountProcedure = "/dutchpay.v1.LedgerService/SetSettlementAccount"
	LedgerServiceAddItemProcedure              = "/dutchpay.v1.LedgerService/AddItem"
	LedgerServiceDeleteItemProcedure           = "/dutchpay.v1.LedgerService/DeleteItem"
	LedgerServiceResetAllProcedure             = "/dutchpay.v1.LedgerService/ResetAll"
	LedgerServiceGetLedgerProcedure            = "/dutchpay.v1.LedgerService/GetLedger"
	LedgerServiceGetReceiptProcedure           = "/dutchpay.v1.LedgerService/GetReceipt"
	LedgerServiceListReceiptsProcedure         = "/dutchpay.v1.LedgerService/ListReceipts"
	LedgerServiceGetGrandTotalProcedure        = "/dutchpay.v1.LedgerService/GetGrandTotal"
	LedgerServiceSummarizeProcedure            = "/dutchpay.v1.LedgerService/Summarize"
)

// LedgerServiceHandler is implemented by the server side of the LedgerService.
type LedgerServiceHandler interface {
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	InitParticipants(context.Context, *connect.Request[api.InitParticipantsRequest]) (*connect.Response[api.InitParticipantsResponse], error)
	RenameParticipant(context.Context, *connect.Request[api.RenameParticipantRequest]) (*connect.Response[api.RenameParticipantResponse], error)
	SetSettlementAccount(context.Context, *connect.Request[api.SetSettlementAccountRequest]) (*connect.Response[api.SetSettlementAccountResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	ResetAll(context.Context, *connect.Request[api.ResetAllRequest]) (*connect.Response[api.ResetAllResponse], error)
	GetLedger(context.Context, *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error)
	GetGrandTotal(context.Context, *connect.Request[api.GetGrandTotalRequest]) (*connect.Response[api.GetGrandTotalResponse], error)
	Summarize(context.Context, *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)

	routes := map[string]http.Handler{
		LedgerServiceCreateSessionProcedure:        connect.NewUnaryHandler(LedgerServiceCreateSessionProcedure, svc.CreateSession, opts...),
		LedgerServiceInitParticipantsProcedure:     connect.NewUnaryHandler(LedgerServiceInitParticipantsProcedure, svc.InitParticipants, opts...),
		LedgerServiceRenameParticipantProcedure:    connect.NewUnaryHandler(LedgerServiceRenameParticipantProcedure, svc.RenameParticipant, opts...),
		LedgerServiceSetSettlementAccountProcedure: connect.NewUnaryHandler(LedgerServiceSetSettlementAccountProcedure, svc.SetSettlementAccount, opts...),
		LedgerServiceAddItemProcedure:              connect.NewUnaryHandler(LedgerServiceAddItemProcedure, svc.AddItem, opts...),
		LedgerServiceDeleteItemProcedure:           connect.NewUnaryHandler(LedgerServiceDeleteItemProcedure, svc.DeleteItem, opts...),
		LedgerServiceResetAllProcedure:             connect.NewUnaryHandler(LedgerServiceResetAllProcedure, svc.ResetAll, opts...),
		LedgerServiceGetLedgerProcedure:            connect.NewUnaryHandler(LedgerServiceGetLedgerProcedure, svc.GetLedger, opts...),
		LedgerServiceGetReceiptProcedure:           connect.NewUnaryHandler(LedgerServiceGetReceiptProcedure, svc.GetReceipt, opts...),
		LedgerServiceListReceiptsProcedure:         connect.NewUnaryHandler(LedgerServiceListReceiptsProcedure, svc.ListReceipts, opts...),
		LedgerServiceGetGrandTotalProcedure:        connect.NewUnaryHandler(LedgerServiceGetGrandTotalProcedure, svc.GetGrandTotal, opts...),
		LedgerServiceSummarizeProcedure:            connect.NewUnaryHandler(LedgerServiceSummarizeProcedure, svc.Summarize, opts...),
	}

	return "/" + LedgerServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := routes[r.URL.Path]; ok {
			h.ServeHTTP(w, r)
			return
		}
		http.NotFound(w, r)
	})
}

// LedgerServiceClient is a client for the dutchpay.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateSession(context.Context, *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error)
	InitParticipants(context.Context, *connect.Request[api.InitParticipantsRequest]) (*connect.Response[api.InitParticipantsResponse], error)
	RenameParticipant(context.Context, *connect.Request[api.RenameParticipantRequest]) (*connect.Response[api.RenameParticipantResponse], error)
	SetSettlementAccount(context.Context, *connect.Request[api.SetSettlementAccountRequest]) (*connect.Response[api.SetSettlementAccountResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	ResetAll(context.Context, *connect.Request[api.ResetAllRequest]) (*connect.Response[api.ResetAllResponse], error)
	GetLedger(context.Context, *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error)
	GetReceipt(context.Context, *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error)
	ListReceipts(context.Context, *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error)
	GetGrandTotal(context.Context, *connect.Request[api.GetGrandTotalRequest]) (*connect.Response[api.GetGrandTotalResponse], error)
	Summarize(context.Context, *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error)
}

// NewLedgerServiceClient constructs a client for the LedgerService at baseURL
// (e.g. http://localhost:8080).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ledgerServiceClient{
		createSession:        connect.NewClient[api.CreateSessionRequest, api.CreateSessionResponse](httpClient, baseURL+LedgerServiceCreateSessionProcedure, opts...),
		initParticipants:     connect.NewClient[api.InitParticipantsRequest, api.InitParticipantsResponse](httpClient, baseURL+LedgerServiceInitParticipantsProcedure, opts...),
		renameParticipant:    connect.NewClient[api.RenameParticipantRequest, api.RenameParticipantResponse](httpClient, baseURL+LedgerServiceRenameParticipantProcedure, opts...),
		setSettlementAccount: connect.NewClient[api.SetSettlementAccountRequest, api.SetSettlementAccountResponse](httpClient, baseURL+LedgerServiceSetSettlementAccountProcedure, opts...),
		addItem:              connect.NewClient[api.AddItemRequest, api.AddItemResponse](httpClient, baseURL+LedgerServiceAddItemProcedure, opts...),
		deleteItem:           connect.NewClient[api.DeleteItemRequest, api.DeleteItemResponse](httpClient, baseURL+LedgerServiceDeleteItemProcedure, opts...),
		resetAll:             connect.NewClient[api.ResetAllRequest, api.ResetAllResponse](httpClient, baseURL+LedgerServiceResetAllProcedure, opts...),
		getLedger:            connect.NewClient[api.GetLedgerRequest, api.GetLedgerResponse](httpClient, baseURL+LedgerServiceGetLedgerProcedure, opts...),
		getReceipt:           connect.NewClient[api.GetReceiptRequest, api.GetReceiptResponse](httpClient, baseURL+LedgerServiceGetReceiptProcedure, opts...),
		listReceipts:         connect.NewClient[api.ListReceiptsRequest, api.ListReceiptsResponse](httpClient, baseURL+LedgerServiceListReceiptsProcedure, opts...),
		getGrandTotal:        connect.NewClient[api.GetGrandTotalRequest, api.GetGrandTotalResponse](httpClient, baseURL+LedgerServiceGetGrandTotalProcedure, opts...),
		summarize:            connect.NewClient[api.SummarizeRequest, api.SummarizeResponse](httpClient, baseURL+LedgerServiceSummarizeProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	createSession        *connect.Client[api.CreateSessionRequest, api.CreateSessionResponse]
	initParticipants     *connect.Client[api.InitParticipantsRequest, api.InitParticipantsResponse]
	renameParticipant    *connect.Client[api.RenameParticipantRequest, api.RenameParticipantResponse]
	setSettlementAccount *connect.Client[api.SetSettlementAccountRequest, api.SetSettlementAccountResponse]
	addItem              *connect.Client[api.AddItemRequest, api.AddItemResponse]
	deleteItem           *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
	resetAll             *connect.Client[api.ResetAllRequest, api.ResetAllResponse]
	getLedger            *connect.Client[api.GetLedgerRequest, api.GetLedgerResponse]
	getReceipt           *connect.Client[api.GetReceiptRequest, api.GetReceiptResponse]
	listReceipts         *connect.Client[api.ListReceiptsRequest, api.ListReceiptsResponse]
	getGrandTotal        *connect.Client[api.GetGrandTotalRequest, api.GetGrandTotalResponse]
	summarize            *connect.Client[api.SummarizeRequest, api.SummarizeResponse]
}

func (c *ledgerServiceClient) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) InitParticipants(ctx context.Context, req *connect.Request[api.InitParticipantsRequest]) (*connect.Response[api.InitParticipantsResponse], error) {
	return c.initParticipants.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) RenameParticipant(ctx context.Context, req *connect.Request[api.RenameParticipantRequest]) (*connect.Response[api.RenameParticipantResponse], error) {
	return c.renameParticipant.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SetSettlementAccount(ctx context.Context, req *connect.Request[api.SetSettlementAccountRequest]) (*connect.Response[api.SetSettlementAccountResponse], error) {
	return c.setSettlementAccount.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ResetAll(ctx context.Context, req *connect.Request[api.ResetAllRequest]) (*connect.Response[api.ResetAllResponse], error) {
	return c.resetAll.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetLedger(ctx context.Context, req *connect.Request[api.GetLedgerRequest]) (*connect.Response[api.GetLedgerResponse], error) {
	return c.getLedger.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetReceipt(ctx context.Context, req *connect.Request[api.GetReceiptRequest]) (*connect.Response[api.GetReceiptResponse], error) {
	return c.getReceipt.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListReceipts(ctx context.Context, req *connect.Request[api.ListReceiptsRequest]) (*connect.Response[api.ListReceiptsResponse], error) {
	return c.listReceipts.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetGrandTotal(ctx context.Context, req *connect.Request[api.GetGrandTotalRequest]) (*connect.Response[api.GetGrandTotalResponse], error) {
	return c.getGrandTotal.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) Summarize(ctx context.Context, req *connect.Request[api.SummarizeRequest]) (*connect.Response[api.SummarizeResponse], error) {
	return c.summarize.CallUnary(ctx, req)
}
