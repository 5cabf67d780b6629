package container

import (
	"context"
	"fmt"
	"time"

	"replenish-backend/internal/config"
	infraCache "replenish-backend/internal/infrastructure/cache"
	"replenish-backend/internal/infrastructure/database"
	"replenish-backend/pkg/cache"
	"replenish-backend/pkg/logger"

	allocHandler "replenish-backend/internal/domains/allocation/handler"
	allocService "replenish-backend/internal/domains/allocation/service"
	invHandler "replenish-backend/internal/domains/inventory/handler"
	invRepo "replenish-backend/internal/domains/inventory/repository"
	invService "replenish-backend/internal/domains/inventory/service"
	productRepo "replenish-backend/internal/domains/product/repository"
	rulesHandler "replenish-backend/internal/domains/rules/handler"
	rulesModel "replenish-backend/internal/domains/rules/model"
	rulesRepo "replenish-backend/internal/domains/rules/repository"
	rulesService "replenish-backend/internal/domains/rules/service"
	salesRepo "replenish-backend/internal/domains/sales/repository"
	shipmentHandler "replenish-backend/internal/domains/shipment/handler"
	shipmentRepo "replenish-backend/internal/domains/shipment/repository"
	shipmentService "replenish-backend/internal/domains/shipment/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services, and handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	RulesRepo    rulesRepo.RepositoryInterface
	SalesRepo    salesRepo.RepositoryInterface
	InvRepo      invRepo.RepositoryInterface
	ProductRepo  productRepo.RepositoryInterface
	ShipmentRepo shipmentRepo.RepositoryInterface

	RulesService    rulesService.ServiceInterface
	InvService      invService.ServiceInterface
	AllocService    allocService.ServiceInterface
	ShipmentService shipmentService.ServiceInterface

	RulesHandler    *rulesHandler.Handler
	InvHandler      *invHandler.Handler
	AllocHandler    *allocHandler.Handler
	ShipmentHandler *shipmentHandler.Handler
}

// NewContainer builds and wires the whole application.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Ping(ctx); err != nil {
		// The cache is an accelerator, not a dependency: services fall
		// back to the database when Redis is down.
		logger.Warn("container: redis unreachable, cache disabled paths degrade to db reads", map[string]interface{}{
			"host": cfg.Redis.Host,
		})
	}
	c.Cache = redisCache

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	if err := c.RulesService.EnsureDefault(ctx, defaultRules(cfg)); err != nil {
		return nil, fmt.Errorf("failed to seed default planning rules: %w", err)
	}

	logger.Info("container: initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

func (c *Container) initRepositories() {
	c.RulesRepo = rulesRepo.NewRepository(c.DB.Pool)
	c.SalesRepo = salesRepo.NewRepository(c.DB.Pool)
	c.InvRepo = invRepo.NewRepository(c.DB.Pool)
	c.ProductRepo = productRepo.NewRepository(c.DB.Pool)
	c.ShipmentRepo = shipmentRepo.NewRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.RulesService = rulesService.NewService(c.RulesRepo, c.Cache)
	c.InvService = invService.NewService(c.InvRepo, c.Cache)

	engine := allocService.NewEngine(allocService.DefaultSourcingPolicy())
	c.AllocService = allocService.NewService(engine, c.SalesRepo, c.InvRepo, c.ProductRepo)

	split := shipmentService.DefaultSplitPolicy()
	c.ShipmentService = shipmentService.NewService(
		shipmentService.NewCalculator(split),
		shipmentService.NewAdjuster(split),
		c.ShipmentRepo,
		c.RulesService,
		c.SalesRepo,
		c.InvRepo,
		c.ProductRepo,
	)
}

func (c *Container) initHandlers() {
	c.RulesHandler = rulesHandler.NewHandler(c.RulesService)
	c.InvHandler = invHandler.NewHandler(c.InvService)
	c.AllocHandler = allocHandler.NewHandler(c.AllocService, c.RulesService)
	c.ShipmentHandler = shipmentHandler.NewHandler(c.ShipmentService)
}

// defaultRules is the template a fresh deployment starts with, taken
// from the PLAN_* environment variables.
func defaultRules(cfg *config.Config) rulesModel.PlanningRules {
	return rulesModel.PlanningRules{
		Name:               "default",
		LookBackDays:       cfg.Planning.DefaultLookBackDays,
		TargetCoverDays:    cfg.Planning.DefaultTargetCoverDays,
		MinUnitsPerSKU:     cfg.Planning.DefaultMinUnitsPerSKU,
		MaxUnitsPerSKU:     cfg.Planning.DefaultMaxUnitsPerSKU,
		SafetyStockPercent: cfg.Planning.DefaultSafetyStockPct,
	}
}

// Cleanup closes infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("container: failed to close redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
