package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrescamacho/craftchain-go/internal/adapters/api"
	grpcadapter "github.com/andrescamacho/craftchain-go/internal/adapters/grpc"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/bootstrap"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/config"
	"github.com/andrescamacho/craftchain-go/internal/infrastructure/logging"
)

// session is an open connection to a planner, local or remote
type session struct {
	service api.Service

	// local is set when running in-process
	local *bootstrap.Runtime
	close func() error
}

func (s *session) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// openSession connects to --remote when given, otherwise wires the planner
// in-process from config. needDatabase forces the database open locally.
func openSession(needDatabase bool) (*session, error) {
	if remote != "" {
		if needDatabase {
			return nil, fmt.Errorf("this command only runs locally; drop --remote")
		}
		return openRemote(remote)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	logger := logging.NewWriterLogger(os.Stderr, cfg.Logging.Format, level)

	rt, err := bootstrap.New(cfg, logger, bootstrap.Options{OpenDatabase: needDatabase})
	if err != nil {
		return nil, err
	}
	return &session{service: rt.Service, local: rt, close: rt.Close}, nil
}

func openRemote(address string) (*session, error) {
	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		return &session{service: api.NewRESTClient(address)}, nil
	}

	client, err := grpcadapter.NewPlannerClient(address)
	if err != nil {
		return nil, err
	}
	return &session{service: client, close: client.Close}, nil
}

var _ io.Closer = (*session)(nil)
