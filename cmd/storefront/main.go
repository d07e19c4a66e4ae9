// Package main runs the storefront HTTP server. It loads configuration,
// opens the local persistence database, connects the remote store gateway,
// wires the shopper and admin services together and serves the Gin router.
//
// Package main 运行店面HTTP服务器。它加载配置、打开本地持久化数据库、
// 连接远程存储网关、将购物者和管理员服务连接在一起并提供Gin路由服务。
package main

import (
	"flag"
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	apihttp "github.com/achrafamalou77/ephedia-store/api/http"
	"github.com/achrafamalou77/ephedia-store/configs"
	"github.com/achrafamalou77/ephedia-store/internal/admin"
	"github.com/achrafamalou77/ephedia-store/internal/cart"
	"github.com/achrafamalou77/ephedia-store/internal/catalog"
	"github.com/achrafamalou77/ephedia-store/internal/checkout"
	"github.com/achrafamalou77/ephedia-store/internal/localstore"
	"github.com/achrafamalou77/ephedia-store/internal/remotestore"
	"github.com/achrafamalou77/ephedia-store/internal/search"
	"github.com/achrafamalou77/ephedia-store/internal/shipping"
	"github.com/achrafamalou77/ephedia-store/pkg/store"
)

// main is the entry point for the storefront server.
// It loads the configuration, builds every service layer and starts
// the HTTP server.
//
// main 是店面服务器的入口点。
// 它加载配置，构建每个服务层，并启动HTTP服务器。
func main() {
	// Parse command line flags
	// 解析命令行参数
	configFile := flag.String("config", "", "Path to the configuration file (YAML or JSON)")
	addr := flag.String("addr", "", "Listen address override, e.g. :8080")
	adminSecret := flag.String("admin-secret", "", "Admin access code override")
	flag.Parse()

	// Load configuration, with hot reload when enabled
	// 加载配置，启用时进行热重载
	cfg := configs.DefaultConfig()
	if *configFile != "" {
		vc, err := configs.LoadViperConfig(*configFile, false)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		if hr := vc.Get().Extensions.HotReload; hr.Enable {
			// File system notifications by default; polling where a
			// watch interval is configured, for filesystems that miss
			// change events.
			// 默认使用文件系统通知；配置了轮询间隔时改用轮询，
			// 适用于遗漏变更事件的文件系统。
			if hr.WatchInterval > 0 {
				stop := vc.StartPolling(hr.WatchInterval)
				defer stop()
			} else {
				vc.EnableHotReload()
			}
			vc.Subscribe(func(c *configs.Config) {
				log.Printf("[CONFIG] Reloaded configuration from %s", *configFile)
			})
		}
		cfg = vc.Get()
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *adminSecret != "" {
		cfg.Admin.Secret = *adminSecret
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.Admin.Secret == configs.DefaultAdminSecret {
		log.Println("[ADMIN] Using the development admin secret; set admin.secret or -admin-secret for production")
	}

	gin.SetMode(cfg.Server.Mode)

	// Open local persistence for carts, views and the admin flag
	// 打开用于购物车、浏览记录和管理员标志的本地持久化
	local, err := localstore.Open(cfg.Local.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	// Connect the remote store gateway; without a base URL the shop runs
	// against an in-memory store, useful for local development.
	// 连接远程存储网关；没有基础URL时商店使用内存存储运行，便于本地开发。
	var gateway store.RemoteStore
	if cfg.RemoteStore.BaseURL != "" {
		gateway = remotestore.New(cfg.RemoteStore.BaseURL, cfg.RemoteStore.APIKey)
	} else {
		log.Println("[STORE] No remote store configured, using in-memory store")
		gateway = store.NewMockStore()
	}

	// Load the shipping rate table, watching the file when asked to
	// 加载运费表，按要求监视文件
	var rates checkout.RateSource
	if cfg.Shipping.RatesFile != "" && cfg.Shipping.WatchRates {
		watcher, err := shipping.NewWatcher(cfg.Shipping.RatesFile)
		if err != nil {
			log.Fatalf("Failed to watch rates file: %v", err)
		}
		defer watcher.Close()
		rates = watcher
	} else if cfg.Shipping.RatesFile != "" {
		table, err := shipping.LoadTable(cfg.Shipping.RatesFile)
		if err != nil {
			log.Fatalf("Failed to load rates file: %v", err)
		}
		rates = checkout.StaticRates{T: table}
	} else {
		rates = checkout.StaticRates{T: shipping.DefaultTable()}
	}

	// Wire the services
	// 连接服务
	gate := admin.NewGate(cfg.Admin.Secret, local)
	searches := search.NewManager(gateway,
		search.WithDebounce(cfg.Search.Debounce),
		search.WithMinQueryLen(cfg.Search.MinQueryLen),
		search.WithResultLimit(cfg.Search.ResultLimit),
	)
	defer searches.Close()

	server := apihttp.NewServer(
		catalog.NewService(gateway, local),
		cart.NewManager(local),
		checkout.NewAssembler(gateway, rates),
		rates,
		gate,
		admin.NewService(gate, gateway),
		searches,
	)

	// Start HTTP server
	// 启动HTTP服务器
	httpServer := &stdhttp.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	log.Printf("Starting storefront on %s", cfg.Server.Addr)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
