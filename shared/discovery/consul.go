// Package discovery registers the service with a Consul agent.
package discovery

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hashicorp/consul/api"
	"github.com/rs/zerolog"
)

// Config holds Consul registration settings. Registration is skipped when Addr is empty.
type Config struct {
	Addr           string `env:"ADDR"`
	ServiceAddress string `env:"SERVICE_ADDRESS" envDefault:"127.0.0.1"`
	CheckInterval  string `env:"CHECK_INTERVAL"  envDefault:"10s"`
	CheckTimeout   string `env:"CHECK_TIMEOUT"   envDefault:"2s"`
}

// Enabled reports whether a Consul agent address is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}

// agent is the subset of *api.Agent used for registration.
type agent interface {
	ServiceRegister(service *api.AgentServiceRegistration) error
	ServiceDeregister(serviceID string) error
}

// Registrar registers one service instance and removes it on shutdown.
type Registrar struct {
	agent  agent
	logger *zerolog.Logger
	reg    *api.AgentServiceRegistration
}

// NewConsulRegistrar creates a Registrar for the given service name and HTTP port.
func NewConsulRegistrar(cfg Config, logger *zerolog.Logger, serviceName, port, healthPath string) (*Registrar, error) {
	client, err := api.NewClient(&api.Config{Address: cfg.Addr})
	if err != nil {
		return nil, fmt.Errorf("create consul client: %w", err)
	}

	return newRegistrar(client.Agent(), logger, cfg, serviceName, port, healthPath)
}

func newRegistrar(a agent, logger *zerolog.Logger, cfg Config, serviceName, port, healthPath string) (*Registrar, error) {
	p, err := strconv.Atoi(port)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q: %w", port, err)
	}

	hostPort := net.JoinHostPort(cfg.ServiceAddress, port)

	return &Registrar{
		agent:  a,
		logger: logger,
		reg: &api.AgentServiceRegistration{
			ID:      fmt.Sprintf("%s-%s", serviceName, hostPort),
			Name:    serviceName,
			Address: cfg.ServiceAddress,
			Port:    p,
			Check: &api.AgentServiceCheck{
				HTTP:                           "http://" + hostPort + healthPath,
				Interval:                       cfg.CheckInterval,
				Timeout:                        cfg.CheckTimeout,
				DeregisterCriticalServiceAfter: "1m",
			},
		},
	}, nil
}

// Register registers the service instance with the agent.
func (r *Registrar) Register() error {
	if err := r.agent.ServiceRegister(r.reg); err != nil {
		return fmt.Errorf("register service %s: %w", r.reg.ID, err)
	}

	r.logger.Info().Str("service_id", r.reg.ID).Msg("registered with consul")

	return nil
}

// Deregister removes the service instance from the agent.
func (r *Registrar) Deregister() error {
	if err := r.agent.ServiceDeregister(r.reg.ID); err != nil {
		return fmt.Errorf("deregister service %s: %w", r.reg.ID, err)
	}

	r.logger.Info().Str("service_id", r.reg.ID).Msg("deregistered from consul")

	return nil
}
