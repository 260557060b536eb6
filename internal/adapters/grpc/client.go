package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	"github.com/andrescamacho/craftchain-go/internal/application/common"
)

// PlannerClient implements api.Service against a remote craftchain.v1.Planner
type PlannerClient struct {
	conn    *grpc.ClientConn
	ownConn bool
}

// NewPlannerClient dials address (host:port or unix:/path)
func NewPlannerClient(address string) (*PlannerClient, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to planner at %s: %w", address, err)
	}
	return &PlannerClient{conn: conn, ownConn: true}, nil
}

// NewPlannerClientFromConn uses an existing connection, which the caller closes
func NewPlannerClientFromConn(conn *grpc.ClientConn) *PlannerClient {
	return &PlannerClient{conn: conn}
}

// Close closes the connection if the client opened it
func (c *PlannerClient) Close() error {
	if c.ownConn && c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *PlannerClient) ListItems(ctx context.Context, req api.ItemListRequest) (*api.ItemListView, error) {
	var view api.ItemListView
	if err := c.call(ctx, methodListItems, req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *PlannerClient) GetItem(ctx context.Context, itemID string) (*api.ItemDetailView, error) {
	req := map[string]string{"itemId": itemID}
	var view api.ItemDetailView
	if err := c.call(ctx, methodGetItem, req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *PlannerClient) BuildChain(ctx context.Context, req api.ChainRequest) (*api.ChainView, error) {
	var view api.ChainView
	if err := c.call(ctx, methodBuildChain, req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *PlannerClient) ComputePlan(ctx context.Context, req api.PlanRequest) (*api.PlanView, error) {
	var view api.PlanView
	if err := c.call(ctx, methodComputePlan, req, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *PlannerClient) call(ctx context.Context, method string, req interface{}, out interface{}) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	if id := common.RequestIDFromContext(ctx); id != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, requestIDKey, id)
	}

	resp := new(structpb.Struct)
	var trailer metadata.MD
	if err := c.conn.Invoke(ctx, fullMethod(method), in, resp, grpc.Trailer(&trailer)); err != nil {
		return remoteError(err, trailer)
	}
	return fromStruct(resp, out)
}

// remoteError rebuilds the typed error from the error trailer when present
func remoteError(err error, trailer metadata.MD) error {
	if values := trailer.Get(errorTrailerKey); len(values) > 0 {
		var view api.ErrorView
		if json.Unmarshal([]byte(values[0]), &view) == nil && view.Kind != "" {
			return view.AsError()
		}
	}
	if st, ok := status.FromError(err); ok {
		return &api.RemoteError{Message: fmt.Sprintf("%s: %s", st.Code(), st.Message())}
	}
	return err
}

var _ api.Service = (*PlannerClient)(nil)
