package di

import (
	"context"
	"os"
	"strings"

	"github.com/icnaming/icnaming/internal/config"
	"github.com/icnaming/icnaming/internal/gateway"
	"github.com/icnaming/icnaming/internal/icnerrors"
	"github.com/icnaming/icnaming/internal/kvstore"
	"github.com/icnaming/icnaming/internal/kvstore/leveldb"
	"github.com/icnaming/icnaming/internal/kvstore/pebble"
	"github.com/icnaming/icnaming/internal/locker"
	"github.com/icnaming/icnaming/internal/order"
	"github.com/icnaming/icnaming/internal/paymentoracle"
	"github.com/icnaming/icnaming/internal/persistence"
	"github.com/icnaming/icnaming/internal/priceoracle"
	"github.com/icnaming/icnaming/internal/principal"
	"github.com/icnaming/icnaming/internal/quota"
	"github.com/icnaming/icnaming/internal/registrar"
	"github.com/icnaming/icnaming/internal/registration"
	"github.com/icnaming/icnaming/internal/registry"
	"github.com/icnaming/icnaming/internal/resolver"
)

// Provider configures and registers every component store and the
// orchestrator in the container, the way the teacher's Provider wires
// ledger/storage/rpc builders.
type Provider struct {
	container *Container
	config    *config.Config

	// persistDBs holds the namespaced DB each persisted store was loaded
	// from, so SaveAll can flush them back without re-resolving builders.
	persistDBs map[string]kvstore.DB
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config) *Provider {
	return &Provider{container: container, config: cfg, persistDBs: make(map[string]kvstore.DB)}
}

// RegisterAll registers all services.
func (p *Provider) RegisterAll() error {
	p.container.Register(ServiceConfig, p.config)
	p.registerStorageBuilders()
	p.registerComponentBuilders()
	p.registerRegistrarBuilder()
	return nil
}

func (p *Provider) registerStorageBuilders() {
	p.container.RegisterBuilder(ServiceKVManager, func(c *Container) (interface{}, error) {
		switch p.config.Storage.Backend {
		case "leveldb":
			return leveldb.NewManager(p.config.Storage.Dir), nil
		default:
			return pebble.NewManager(p.config.Storage.Dir), nil
		}
	})

	// The gateway's import ledger and assigned-name overlay are always
	// backed by goleveldb, independent of Storage.Backend: low write
	// volume, no need for pebble's LSM tuning.
	p.container.RegisterBuilder(ServiceGatewayKVManager, func(c *Container) (interface{}, error) {
		return leveldb.NewManager(p.config.Storage.Dir + "-gateway"), nil
	})
}

func (p *Provider) kvManager(c *Container) (kvstore.Manager, error) {
	m, err := c.Get(ServiceKVManager)
	if err != nil {
		return nil, err
	}
	return m.(kvstore.Manager), nil
}

// openNamespace opens namespace's DB through the shared manager and
// remembers it under name so SaveAll can flush it later.
func (p *Provider) openNamespace(c *Container, name, namespace string) (kvstore.DB, error) {
	mgr, err := p.kvManager(c)
	if err != nil {
		return nil, err
	}
	db, err := mgr.Open(namespace)
	if err != nil {
		return nil, err
	}
	p.persistDBs[name] = db
	return db, nil
}

func (p *Provider) registerComponentBuilders() {
	p.container.RegisterBuilder(ServiceResolver, func(c *Container) (interface{}, error) {
		db, err := p.openNamespace(c, ServiceResolver, "resolver")
		if err != nil {
			return nil, err
		}
		store := resolver.NewStore(1024)
		var snap resolver.Snapshot
		found, err := persistence.Load(context.Background(), db, &snap)
		if err != nil {
			return nil, err
		}
		if found {
			store.Restore(snap)
		}
		return store, nil
	})

	p.container.RegisterBuilder(ServiceRegistry, func(c *Container) (interface{}, error) {
		res, err := c.Get(ServiceResolver)
		if err != nil {
			return nil, err
		}
		db, err := p.openNamespace(c, ServiceRegistry, "registry")
		if err != nil {
			return nil, err
		}
		store := registry.NewStore(res.(*resolver.Store))
		var snap registry.Snapshot
		found, err := persistence.Load(context.Background(), db, &snap)
		if err != nil {
			return nil, err
		}
		if found {
			store.Restore(snap)
		}
		return store, nil
	})

	p.container.RegisterBuilder(ServiceRegistration, func(c *Container) (interface{}, error) {
		db, err := p.openNamespace(c, ServiceRegistration, "registration")
		if err != nil {
			return nil, err
		}
		store := registration.NewStore()
		var snap registration.Snapshot
		found, err := persistence.Load(context.Background(), db, &snap)
		if err != nil {
			return nil, err
		}
		if found {
			store.Restore(snap)
		}
		return store, nil
	})

	p.container.RegisterBuilder(ServiceQuotaLedger, func(c *Container) (interface{}, error) {
		db, err := p.openNamespace(c, ServiceQuotaLedger, "quota")
		if err != nil {
			return nil, err
		}
		store := quota.NewLedger()
		var snap quota.Snapshot
		found, err := persistence.Load(context.Background(), db, &snap)
		if err != nil {
			return nil, err
		}
		if found {
			store.Restore(snap)
		}
		return store, nil
	})

	p.container.RegisterBuilder(ServiceNameLocker, func(c *Container) (interface{}, error) {
		return locker.New(), nil
	})

	p.container.RegisterBuilder(ServiceOrderStore, func(c *Container) (interface{}, error) {
		return order.NewStore(), nil
	})

	p.container.RegisterBuilder(ServicePaymentOracle, func(c *Container) (interface{}, error) {
		// The reference in-memory oracle stands in for the real
		// icnaming_ledger collaborator, which this module treats as an
		// opaque external dependency per spec.md §1.
		return paymentoracle.NewFake(), nil
	})

	p.container.RegisterBuilder(ServicePriceOracle, func(c *Container) (interface{}, error) {
		pay, err := c.Get(ServicePaymentOracle)
		if err != nil {
			return nil, err
		}
		return priceoracle.New(tipRateAdapter{pay.(paymentoracle.Client)}, priceoracle.XDRTable(p.config.Pricing.XDRTable)), nil
	})

	p.container.RegisterBuilder(ServiceGateway, func(c *Container) (interface{}, error) {
		hashes, err := loadWhitelist(p.config.ImportWhitelistFile)
		if err != nil {
			return nil, err
		}
		store := gateway.NewStore(hashes)

		mgr, err := c.Get(ServiceGatewayKVManager)
		if err != nil {
			return nil, err
		}
		db, err := mgr.(kvstore.Manager).Open("gateway")
		if err != nil {
			return nil, err
		}
		p.persistDBs[ServiceGateway] = db

		var snap gateway.Snapshot
		found, err := persistence.Load(context.Background(), db, &snap)
		if err != nil {
			return nil, err
		}
		if found {
			store.Restore(snap)
		}
		return store, nil
	})
}

// tipRateAdapter is the price oracle's rate source in the absence of a
// dedicated cycles-minting collaborator wired into this build. It holds the
// payment oracle client but never calls it; the rate is a fixed constant.
type tipRateAdapter struct {
	pay paymentoracle.Client
}

func (a tipRateAdapter) GetXDRPermyriadPerICP() (int64, error) {
	// Placeholder fixed rate until a cycles-minting collaborator is wired
	// in; kept behind the RateClient interface so swapping it in later
	// requires no change to priceoracle or registrar.
	return 10_000, nil
}

// loadWhitelist reads newline-separated lower-case hex SHA-256 digests from
// the release artifact named by ImportWhitelistFile. A missing file (common
// in dev/test flavors) just means nothing is whitelisted yet.
func loadWhitelist(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var hashes []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			hashes = append(hashes, line)
		}
	}
	return hashes, nil
}

func (p *Provider) registerRegistrarBuilder() {
	p.container.RegisterBuilder(ServiceRegistrar, func(c *Container) (interface{}, error) {
		reg, err := c.Get(ServiceRegistry)
		if err != nil {
			return nil, err
		}
		res, err := c.Get(ServiceResolver)
		if err != nil {
			return nil, err
		}
		regn, err := c.Get(ServiceRegistration)
		if err != nil {
			return nil, err
		}
		q, err := c.Get(ServiceQuotaLedger)
		if err != nil {
			return nil, err
		}
		lk, err := c.Get(ServiceNameLocker)
		if err != nil {
			return nil, err
		}
		ords, err := c.Get(ServiceOrderStore)
		if err != nil {
			return nil, err
		}
		pay, err := c.Get(ServicePaymentOracle)
		if err != nil {
			return nil, err
		}
		price, err := c.Get(ServicePriceOracle)
		if err != nil {
			return nil, err
		}
		gw, err := c.Get(ServiceGateway)
		if err != nil {
			return nil, err
		}

		topLabel, err := config.TopLabel(p.config.Flavor)
		if err != nil {
			return nil, err
		}
		collaborators, err := config.Collaborators(p.config.Flavor)
		if err != nil {
			return nil, err
		}

		self := principal.Principal(collaborators.Registrar)

		reg0 := reg.(*registry.Store)
		if err := reg0.SetTopName(topLabel, self); err != nil {
			// TopNameAlreadyExists on a warm restart is expected; any
			// other failure should abort startup.
			if e, ok := icnerrors.As(err); !ok || e.Code != icnerrors.CodeTopNameAlreadyExists {
				return nil, err
			}
		}

		return registrar.New(
			self,
			topLabel,
			reg0,
			res.(*resolver.Store),
			regn.(*registration.Store),
			q.(*quota.Ledger),
			lk.(*locker.Locker),
			ords.(*order.Store),
			pay.(paymentoracle.Client),
			price.(*priceoracle.Oracle),
			gw.(*gateway.Store),
		), nil
	})
}

// GetRegistrar returns the orchestrator from the container.
func (p *Provider) GetRegistrar() (*registrar.Registrar, error) {
	svc, err := p.container.Get(ServiceRegistrar)
	if err != nil {
		return nil, err
	}
	return svc.(*registrar.Registrar), nil
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}

// SaveAll flushes every persisted component's current state to its
// namespaced DB. Called on each heartbeat tick and at shutdown.
func (p *Provider) SaveAll(ctx context.Context) error {
	if db, ok := p.persistDBs[ServiceResolver]; ok {
		res, err := p.container.Get(ServiceResolver)
		if err != nil {
			return err
		}
		if err := persistence.Save(ctx, db, res.(*resolver.Store).Snapshot()); err != nil {
			return err
		}
	}
	if db, ok := p.persistDBs[ServiceRegistry]; ok {
		reg, err := p.container.Get(ServiceRegistry)
		if err != nil {
			return err
		}
		if err := persistence.Save(ctx, db, reg.(*registry.Store).Snapshot()); err != nil {
			return err
		}
	}
	if db, ok := p.persistDBs[ServiceRegistration]; ok {
		regn, err := p.container.Get(ServiceRegistration)
		if err != nil {
			return err
		}
		if err := persistence.Save(ctx, db, regn.(*registration.Store).Snapshot()); err != nil {
			return err
		}
	}
	if db, ok := p.persistDBs[ServiceQuotaLedger]; ok {
		q, err := p.container.Get(ServiceQuotaLedger)
		if err != nil {
			return err
		}
		if err := persistence.Save(ctx, db, q.(*quota.Ledger).Snapshot()); err != nil {
			return err
		}
	}
	if db, ok := p.persistDBs[ServiceGateway]; ok {
		gw, err := p.container.Get(ServiceGateway)
		if err != nil {
			return err
		}
		if err := persistence.Save(ctx, db, gw.(*gateway.Store).Snapshot()); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying KV managers, closing every namespaced DB.
func (p *Provider) Close() error {
	var lastErr error
	if p.container.Has(ServiceKVManager) {
		if mgr, err := p.kvManager(p.container); err == nil {
			if err := mgr.Close(); err != nil {
				lastErr = err
			}
		} else {
			lastErr = err
		}
	}
	if p.container.Has(ServiceGatewayKVManager) {
		svc, err := p.container.Get(ServiceGatewayKVManager)
		if err == nil {
			if err := svc.(kvstore.Manager).Close(); err != nil {
				lastErr = err
			}
		} else {
			lastErr = err
		}
	}
	return lastErr
}
