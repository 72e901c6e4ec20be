package grpc

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/f1r3sky/wallet-backend/internal/domain"
	"github.com/f1r3sky/wallet-backend/internal/usecase/balancegraph"
	"github.com/f1r3sky/wallet-backend/internal/usecase/dashboard"
	"github.com/f1r3sky/wallet-backend/internal/usecase/history"
	"github.com/f1r3sky/wallet-backend/internal/usecase/transfer"
	"github.com/f1r3sky/wallet-backend/internal/usecase/wallets"
)

// Server implements the WalletService gRPC server
type Server struct {
	TransferService  *transfer.TransferService
	DashboardService *dashboard.DashboardService
	HistoryService   *history.HistoryService
	WalletService    *wallets.WalletService
}

var _ WalletServiceServer = (*Server)(nil)

// NewServer creates a new gRPC server instance
func NewServer(
	transferService *transfer.TransferService,
	dashboardService *dashboard.DashboardService,
	historyService *history.HistoryService,
	walletService *wallets.WalletService,
) *Server {
	return &Server{
		TransferService:  transferService,
		DashboardService: dashboardService,
		HistoryService:   historyService,
		WalletService:    walletService,
	}
}

// ValidateTransfer handles the ValidateTransfer RPC.
// Validation failures are returned as data, never as an RPC error.
func (s *Server) ValidateTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	kind := transfer.FormKind(strings.ToUpper(stringArg(req, "kind")))
	if kind == "" {
		kind = transfer.FormKindTransfer
	}

	result, err := s.TransferService.ValidateForm(ctx, transfer.ValidateFormInput{
		Kind:            kind,
		From:            stringArg(req, "from"),
		Amount:          optionalArg(req, "amount"),
		Address:         optionalArg(req, "address"),
		TransferAddress: optionalArg(req, "transferAddress"),
		Description:     optionalArg(req, "description"),
	})
	if err != nil {
		return nil, mapError(err)
	}

	response := map[string]any{
		"ready": result.Ready,
		"error": "",
		"fields": map[string]any{
			"amount":          fieldValue[domain.Amount](result.State.Amount),
			"address":         fieldValue[domain.Address](result.State.Address),
			"transferAddress": fieldValue[domain.Address](result.State.TransferAddress),
			"description":     fieldValue[domain.Description](result.State.Description),
		},
	}
	if result.Error != nil {
		response["error"] = result.Error.Message
		response["errorField"] = string(result.Error.Field)
		response["errorKind"] = string(result.Error.Kind)
	}

	return newStruct(response)
}

// SubmitTransfer handles the SubmitTransfer RPC
func (s *Server) SubmitTransfer(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	receipt, err := s.TransferService.SubmitTransfer(ctx, transfer.SubmitTransferInput{
		From:        stringArg(req, "from"),
		To:          optionalArg(req, "to"),
		Amount:      optionalArg(req, "amount"),
		Description: optionalArg(req, "description"),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(receiptFields(receipt))
}

// SubmitBoost handles the SubmitBoost RPC
func (s *Server) SubmitBoost(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	receipt, err := s.TransferService.SubmitBoost(ctx, transfer.SubmitBoostInput{
		From:        stringArg(req, "from"),
		To:          stringArg(req, "to"),
		PostID:      stringArg(req, "postId"),
		Amount:      optionalArg(req, "amount"),
		Description: optionalArg(req, "description"),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(receiptFields(receipt))
}

// UpdateBoostSettings handles the UpdateBoostSettings RPC
func (s *Server) UpdateBoostSettings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	settings, err := s.TransferService.UpdateBoostSettings(ctx, transfer.UpdateBoostSettingsInput{
		OwnerDID:    stringArg(req, "ownerDid"),
		Address:     optionalArg(req, "address"),
		Description: optionalArg(req, "description"),
	})
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{
		"ownerDid":      settings.OwnerDID,
		"walletAddress": settings.WalletAddress.String(),
		"message":       settings.Message.String(),
		"updatedAt":     timestamp(settings.UpdatedAt),
	})
}

// GetBalanceGraph handles the GetBalanceGraph RPC. An unknown scale falls back to the default.
func (s *Server) GetBalanceGraph(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	address, err := domain.ParseAddress(stringArg(req, "address"))
	if err != nil {
		return nil, mapError(err)
	}

	scale, err := balancegraph.ParseScale(stringArg(req, "scale"))
	if err != nil {
		scale = balancegraph.DefaultScale
	}

	graph, err := s.DashboardService.GetBalanceGraph(ctx, address, scale)
	if err != nil {
		return nil, mapError(err)
	}

	points := list(graph.Points, func(p balancegraph.BalancePoint) map[string]any {
		return map[string]any{"value": p.Value.String(), "timestamp": timestamp(p.Timestamp)}
	})
	labels := make([]any, 0, len(graph.Labels))
	for _, label := range graph.Labels {
		labels = append(labels, timestamp(label))
	}

	return newStruct(map[string]any{
		"scale":  string(graph.Window.Scale),
		"min":    timestamp(graph.Window.Min),
		"max":    timestamp(graph.Window.Max),
		"points": points,
		"labels": labels,
	})
}

// GetSummary handles the GetSummary RPC
func (s *Server) GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	address, err := domain.ParseAddress(stringArg(req, "address"))
	if err != nil {
		return nil, mapError(err)
	}

	summary, err := s.DashboardService.GetSummary(ctx, address)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{
		"address":   summary.Address.String(),
		"balance":   summary.Balance.String(),
		"compact":   summary.Compact,
		"formatted": summary.Formatted,
		"requests":  summary.Requests,
		"boosts":    summary.Boosts,
		"transfers": summary.Transfers,
	})
}

// ListHistory handles the ListHistory RPC.
// kind selects the history: requests, transfers or boosts.
func (s *Server) ListHistory(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	address, err := domain.ParseAddress(stringArg(req, "address"))
	if err != nil {
		return nil, mapError(err)
	}

	page, err := intArg(req, "page")
	if err != nil {
		return nil, err
	}
	pageSize, err := intArg(req, "pageSize")
	if err != nil {
		return nil, err
	}

	opts := history.ListOptions{
		Page:     page,
		PageSize: pageSize,
		Order:    history.SortOrder(strings.ToLower(stringArg(req, "order"))),
		Key:      history.SortKey(strings.ToLower(stringArg(req, "sortBy"))),
	}

	switch kind := stringArg(req, "kind"); kind {
	case "requests":
		result, err := s.HistoryService.ListRequests(ctx, address, opts)
		if err != nil {
			return nil, mapError(err)
		}
		return pageStruct(result, requestFields)
	case "transfers", "":
		result, err := s.HistoryService.ListTransfers(ctx, address, opts)
		if err != nil {
			return nil, mapError(err)
		}
		return pageStruct(result, transferFields)
	case "boosts":
		result, err := s.HistoryService.ListBoosts(ctx, address, opts)
		if err != nil {
			return nil, mapError(err)
		}
		return pageStruct(result, boostFields)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "invalid history kind %q", kind)
	}
}

// AddWallet handles the AddWallet RPC.
// A privateKey derives the address; an address alone links an external wallet.
func (s *Server) AddWallet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var (
		wallet *domain.Wallet
		err    error
	)

	label := stringArg(req, "label")
	if key := stringArg(req, "privateKey"); key != "" {
		wallet, err = s.WalletService.AddWallet(ctx, wallets.AddWalletInput{
			PrivateKey: key,
			Type:       domain.WalletType(strings.ToUpper(stringArg(req, "type"))),
			Label:      label,
		})
	} else {
		wallet, err = s.WalletService.AddExternalWallet(ctx, stringArg(req, "address"), label)
	}
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(walletFields(wallet))
}

// ListWallets handles the ListWallets RPC
func (s *Server) ListWallets(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	linked, err := s.WalletService.ListWallets(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{
		"wallets": list(linked, walletFields),
	})
}

// RemoveWallet handles the RemoveWallet RPC
func (s *Server) RemoveWallet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	address, err := domain.ParseAddress(stringArg(req, "address"))
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.WalletService.RemoveWallet(ctx, address); err != nil {
		return nil, mapError(err)
	}

	return newStruct(map[string]any{"address": address.String()})
}

func receiptFields(receipt *domain.TransferReceipt) map[string]any {
	return map[string]any{
		"id":          receipt.ID.String(),
		"kind":        string(receipt.Kind),
		"amount":      receipt.Amount.String(),
		"cost":        receipt.Cost.String(),
		"newBalance":  receipt.NewBalance.String(),
		"finalizedAt": timestamp(receipt.FinalizedAt),
	}
}

func walletFields(wallet *domain.Wallet) map[string]any {
	return map[string]any{
		"type":    string(wallet.Type),
		"address": wallet.Address.String(),
		"label":   wallet.Label,
	}
}

func requestFields(entry domain.RequestEntry) map[string]any {
	return map[string]any{
		"id":        entry.ID,
		"timestamp": timestamp(entry.Timestamp),
		"amount":    entry.Amount.String(),
		"status":    string(entry.Status),
	}
}

func transferFields(entry domain.TransferEntry) map[string]any {
	return map[string]any{
		"id":           entry.ID,
		"timestamp":    timestamp(entry.Timestamp),
		"amount":       entry.Amount.String(),
		"cost":         entry.Cost.String(),
		"direction":    string(entry.Direction),
		"counterparty": entry.CounterpartyAddress,
		"description":  entry.Description,
	}
}

func boostFields(entry domain.BoostEntry) map[string]any {
	return map[string]any{
		"id":           entry.ID,
		"timestamp":    timestamp(entry.Timestamp),
		"amount":       entry.Amount.String(),
		"direction":    string(entry.Direction),
		"counterparty": entry.CounterpartyAddress,
		"username":     entry.Username,
		"postId":       entry.PostID,
	}
}

func pageStruct[T any](page *history.Page[T], encode func(T) map[string]any) (*structpb.Struct, error) {
	return newStruct(map[string]any{
		"items":   list(page.Items, encode),
		"page":    page.Page,
		"maxPage": page.MaxPage,
		"total":   page.Total,
	})
}

// mapError maps domain errors to gRPC status codes
func mapError(err error) error {
	if err == nil {
		return nil
	}

	// A rejected form carries exactly one user-facing message
	var validationErr *transfer.ValidationError
	if errors.As(err, &validationErr) {
		return status.Error(codes.InvalidArgument, validationErr.Error())
	}

	switch {
	case errors.Is(err, domain.ErrWalletNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrWalletExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrDescriptionTooLong),
		errors.Is(err, domain.ErrInvalidPrivateKey):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	errorMsg := err.Error()

	// Map common validation errors to InvalidArgument
	if strings.Contains(errorMsg, "must not be empty") ||
		strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "unknown") {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}

	// Map "not found" errors to NotFound
	if strings.Contains(errorMsg, "not found") {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}
