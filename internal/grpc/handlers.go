package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/order"
	"github.com/icnaming/icnaming/internal/principal"
	"github.com/icnaming/icnaming/internal/quota"
)

// toStatus maps an icnerrors.Error onto the nearest grpc status code.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	e, ok := icnerrors.As(err)
	if !ok {
		return status.Error(codes.Internal, err.Error())
	}
	switch e.Code {
	case icnerrors.CodeNameUnavailable, icnerrors.CodeRegistrationNotFound,
		icnerrors.CodeRegistryNotFoundError, icnerrors.CodeResolverNotFoundError,
		icnerrors.CodeOrderNotFound:
		return status.Error(codes.NotFound, e.Error())
	case icnerrors.CodePermissionDenied, icnerrors.CodeOwnerOnly, icnerrors.CodeUnauthorized:
		return status.Error(codes.PermissionDenied, e.Error())
	case icnerrors.CodeRegistrationHasBeenTaken, icnerrors.CodeTopNameAlreadyExists,
		icnerrors.CodeAlreadyAssigned, icnerrors.CodeAlreadyExists, icnerrors.CodeConflict,
		icnerrors.CodePendingOrder:
		return status.Error(codes.AlreadyExists, e.Error())
	case icnerrors.CodeInsufficientQuota:
		return status.Error(codes.ResourceExhausted, e.Error())
	case icnerrors.CodeSystemMaintaining:
		return status.Error(codes.Unavailable, e.Error())
	case icnerrors.CodeCanisterCallError, icnerrors.CodeRemoteError:
		return status.Error(codes.Unavailable, e.Error())
	default:
		return status.Error(codes.InvalidArgument, e.Error())
	}
}

// RegisterRequest is one direct, quota-backed registration call.
type RegisterRequest struct {
	Name       string
	Owner      principal.Principal
	QuotaOwner principal.Principal
	Years      uint32
	Class      quota.Class
}

// Register registers a name against quota.
func (s *Server) Register(_ context.Context, req *RegisterRequest) (*struct{}, error) {
	if err := s.registrar.Register(req.Name, req.Owner, req.QuotaOwner, req.Years, req.Class); err != nil {
		return nil, toStatus(err)
	}
	return &struct{}{}, nil
}

// SubmitOrderRequest starts a paid registration order.
type SubmitOrderRequest struct {
	User  principal.Principal
	Name  string
	Years uint32
	Class quota.Class
}

// SubmitOrderResponse carries the newly created order for the caller to
// pay against.
type SubmitOrderResponse struct {
	Order order.Order
}

// SubmitOrder creates a new pending paid-registration order.
func (s *Server) SubmitOrder(_ context.Context, req *SubmitOrderRequest) (*SubmitOrderResponse, error) {
	o, err := s.registrar.SubmitOrder(req.User, req.Name, req.Years, req.Class)
	if err != nil {
		return nil, toStatus(err)
	}
	return &SubmitOrderResponse{Order: o}, nil
}

// CancelOrderRequest cancels the caller's own pending order.
type CancelOrderRequest struct {
	User principal.Principal
	Now  int64
}

func (s *Server) CancelOrder(_ context.Context, req *CancelOrderRequest) (*struct{}, error) {
	if err := s.registrar.CancelOrder(req.User, req.Now); err != nil {
		return nil, toStatus(err)
	}
	return &struct{}{}, nil
}

// RefundOrderRequest retries a stuck refund for the caller's order.
type RefundOrderRequest struct {
	User principal.Principal
}

func (s *Server) RefundOrder(_ context.Context, req *RefundOrderRequest) (*struct{}, error) {
	if err := s.registrar.RefundOrder(req.User); err != nil {
		return nil, toStatus(err)
	}
	return &struct{}{}, nil
}

// TransferRequest transfers ownership of name to a new owner.
type TransferRequest struct {
	Name     string
	Caller   principal.Principal
	NewOwner principal.Principal
}

func (s *Server) Transfer(_ context.Context, req *TransferRequest) (*struct{}, error) {
	if err := s.registrar.Transfer(req.Name, req.Caller, req.NewOwner); err != nil {
		return nil, toStatus(err)
	}
	return &struct{}{}, nil
}

// ApproveRequest grants a one-time transfer approval on name to "to".
type ApproveRequest struct {
	Caller principal.Principal
	Name   string
	To     principal.Principal
}

func (s *Server) Approve(_ context.Context, req *ApproveRequest) (*struct{}, error) {
	if err := s.registrar.Approve(req.Caller, req.Name, req.To); err != nil {
		return nil, toStatus(err)
	}
	return &struct{}{}, nil
}

// TransferFromRequest claims name under a previously granted approval.
type TransferFromRequest struct {
	Caller principal.Principal
	Name   string
}

func (s *Server) TransferFrom(_ context.Context, req *TransferFromRequest) (*struct{}, error) {
	if err := s.registrar.TransferFrom(req.Caller, req.Name); err != nil {
		return nil, toStatus(err)
	}
	return &struct{}{}, nil
}

// RenewNameRequest extends a name's registration.
type RenewNameRequest struct {
	Name          string
	Years         uint32
	ApproveAmount int64
	Class         quota.Class
}

func (s *Server) RenewName(_ context.Context, req *RenewNameRequest) (*struct{}, error) {
	if err := s.registrar.RenewName(req.Name, req.Years, req.ApproveAmount, req.Class); err != nil {
		return nil, toStatus(err)
	}
	return &struct{}{}, nil
}

// GetControlledNamesRequest pages through an owner's controlled names.
type GetControlledNamesRequest struct {
	Owner  principal.Principal
	Offset int
	Limit  int
}

// GetControlledNamesResponse carries one page of names.
type GetControlledNamesResponse struct {
	Names []string
}

func (s *Server) GetControlledNames(_ context.Context, req *GetControlledNamesRequest) (*GetControlledNamesResponse, error) {
	names, err := s.registrar.GetControlledNames(req.Owner, req.Offset, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}
	return &GetControlledNamesResponse{Names: names}, nil
}

// AvailableRequest checks whether a name can be registered.
type AvailableRequest struct {
	Name string
	Now  int64
}

func (s *Server) Available(_ context.Context, req *AvailableRequest) (*struct{}, error) {
	if _, err := s.registrar.Available(req.Name, req.Now); err != nil {
		return nil, toStatus(err)
	}
	return &struct{}{}, nil
}

// ImportQuotaRequest is the gateway admin's compressed CSV payload.
type ImportQuotaRequest struct {
	CompressedCSV []byte
}

// ImportQuotaResponse reports how many entries were applied.
type ImportQuotaResponse struct {
	Applied int
}

// ImportQuota verifies, parses, and applies a whitelisted quota-import
// batch. A batch whose digest was already imported is rejected with
// AlreadyExists and changes no quota.
func (s *Server) ImportQuota(_ context.Context, req *ImportQuotaRequest) (*ImportQuotaResponse, error) {
	items, digest, err := s.registrar.Gateway.VerifyAndParse(req.CompressedCSV)
	if err != nil {
		return nil, toStatus(err)
	}
	s.registrar.ImportQuota(items)
	s.registrar.Gateway.MarkImported(digest)
	return &ImportQuotaResponse{Applied: len(items)}, nil
}

// AssignNameRequest is the gateway admin's off-chain name assignment.
type AssignNameRequest struct {
	Name  string
	Owner principal.Principal
	Years uint32
}

func (s *Server) AssignName(_ context.Context, req *AssignNameRequest) (*struct{}, error) {
	if err := s.registrar.Gateway.AssignName(req.Name); err != nil {
		return nil, toStatus(err)
	}
	if err := s.registrar.RegisterFromGateway(req.Name, req.Owner, req.Years); err != nil {
		return nil, toStatus(err)
	}
	return &struct{}{}, nil
}
