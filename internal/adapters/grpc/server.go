package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
	"github.com/andrescamacho/craftchain-go/internal/domain/shared"
)

const (
	requestIDKey    = "x-request-id"
	errorTrailerKey = "craftchain-error"
)

// PlannerServer serves craftchain.v1.Planner over an api.Service
type PlannerServer struct {
	service    api.Service
	logger     common.Logger
	grpcServer *grpc.Server
}

// NewPlannerServer creates the gRPC server and registers the planner service
func NewPlannerServer(service api.Service, logger common.Logger) *PlannerServer {
	s := &PlannerServer{
		service: service,
		logger:  logger,
	}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(s.intercept))
	RegisterPlannerService(s.grpcServer, s)
	return s
}

// Serve accepts connections on l until GracefulStop is called
func (s *PlannerServer) Serve(l net.Listener) error {
	s.logger.Log(common.LevelInfo, "gRPC server listening", map[string]interface{}{
		"action":  "grpc_listen",
		"address": l.Addr().String(),
	})
	if err := s.grpcServer.Serve(l); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("gRPC server error: %w", err)
	}
	return nil
}

// GracefulStop waits for in-flight calls, then stops the server
func (s *PlannerServer) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// Stop closes all connections immediately
func (s *PlannerServer) Stop() {
	s.grpcServer.Stop()
}

// intercept attaches the request id and logger, logs the call, and turns
// service errors into status codes with the error view in a trailer
func (s *PlannerServer) intercept(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	requestID := ""
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(requestIDKey); len(values) > 0 {
			requestID = strings.TrimSpace(values[0])
		}
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = common.WithRequestID(ctx, requestID)
	ctx = common.WithLogger(ctx, s.logger)

	start := time.Now()
	resp, err := handler(ctx, req)

	fields := map[string]interface{}{
		"action":      "grpc_call",
		"method":      info.FullMethod,
		"request_id":  requestID,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err == nil {
		s.logger.Log(common.LevelInfo, "gRPC call", fields)
		return resp, nil
	}

	view := api.NewErrorView(err)
	fields["error"] = err.Error()
	level := common.LevelWarn
	if api.ErrorKind(view.Kind) == api.KindInternal {
		level = common.LevelError
	}
	s.logger.Log(level, "gRPC call failed", fields)

	if data, marshalErr := json.Marshal(view); marshalErr == nil {
		_ = grpc.SetTrailer(ctx, metadata.Pairs(errorTrailerKey, string(data)))
	}
	return nil, status.Error(codeFor(api.ErrorKind(view.Kind)), view.Error)
}

func codeFor(kind api.ErrorKind) codes.Code {
	switch kind {
	case api.KindInvalid:
		return codes.InvalidArgument
	case api.KindNotFound:
		return codes.NotFound
	case api.KindRateLimited:
		return codes.ResourceExhausted
	default:
		return codes.Internal
	}
}

func (s *PlannerServer) ListItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in api.ItemListRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	view, err := s.service.ListItems(ctx, in)
	if err != nil {
		return nil, err
	}
	return toStruct(view)
}

func (s *PlannerServer) GetItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in struct {
		ItemID string `json:"itemId"`
	}
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	view, err := s.service.GetItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	return toStruct(view)
}

func (s *PlannerServer) BuildChain(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in api.ChainRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	view, err := s.service.BuildChain(ctx, in)
	if err != nil {
		return nil, err
	}
	return toStruct(view)
}

func (s *PlannerServer) ComputePlan(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in api.PlanRequest
	if err := decodeRequest(req, &in); err != nil {
		return nil, err
	}
	view, err := s.service.ComputePlan(ctx, in)
	if err != nil {
		return nil, err
	}
	return toStruct(view)
}

func decodeRequest(req *structpb.Struct, out interface{}) error {
	if err := fromStruct(req, out); err != nil {
		return shared.NewValidationError("request", err.Error())
	}
	return nil
}
