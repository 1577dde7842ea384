package modeserver

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sarchlab/modeline/config"
	"github.com/sarchlab/modeline/modedb"
)

// Builder can build servers.
type Builder struct {
	portNumber     int
	defaultRefresh int
	openBrowser    bool
	catalog        Catalog
	registry       *prometheus.Registry
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		defaultRefresh: config.DefaultRefresh,
	}
}

// WithPortNumber sets the port the server listens on. Ports below 1024 are
// replaced by a random port.
func (b Builder) WithPortNumber(portNumber int) Builder {
	if portNumber != 0 && portNumber < 1024 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the mode server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	b.portNumber = portNumber

	return b
}

// WithDefaultRefresh sets the refresh rate used by requests that give none.
func (b Builder) WithDefaultRefresh(refresh int) Builder {
	b.defaultRefresh = refresh
	return b
}

// WithOpenBrowser sets whether the server URL is opened in a browser once
// the server listens.
func (b Builder) WithOpenBrowser(open bool) Builder {
	b.openBrowser = open
	return b
}

// WithCatalog sets the catalog exposed by the server.
func (b Builder) WithCatalog(catalog Catalog) Builder {
	b.catalog = catalog
	return b
}

// WithRegistry sets the registry the server metrics are registered to.
func (b Builder) WithRegistry(registry *prometheus.Registry) Builder {
	b.registry = registry
	return b
}

// Build creates the server. Without a catalog, the server keeps one in
// memory. Without a registry, the server creates its own.
func (b Builder) Build() *Server {
	s := &Server{
		portNumber:     b.portNumber,
		defaultRefresh: b.defaultRefresh,
		openBrowser:    b.openBrowser,
		catalog:        b.catalog,
		registry:       b.registry,
	}

	if s.catalog == nil {
		s.catalog = modedb.NewCatalog(modedb.NewSequentialIDGenerator())
	}

	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}

	s.metrics = newMetrics(s.registry, s.catalog)
	s.router = s.buildRouter()

	return s
}
