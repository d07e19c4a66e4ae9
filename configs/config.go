// Package configs provides configuration structures and utilities for the storefront.
// It offers mechanisms for loading, validating, and saving configuration from various sources
// including JSON and YAML files. The package defines a configuration structure that
// controls the HTTP server, the remote store gateway, admin access, shipping rates
// and local persistence.
//
// Package configs 提供店面的配置结构和工具。
// 它提供从各种来源（包括JSON和YAML文件）加载、验证和保存配置的机制。
// 该包定义的配置结构控制HTTP服务器、远程存储网关、管理员访问、运费表和本地持久化。
package configs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"encoding/json"

	"gopkg.in/yaml.v3"
)

// DefaultAdminSecret is the out-of-the-box admin access code. It keeps a
// flagless development run working end to end; deployments override it via
// the config file or the -admin-secret flag.
//
// DefaultAdminSecret 是开箱即用的管理员访问码。它使无参数的开发运行端到端可用；
// 部署时通过配置文件或-admin-secret参数覆盖。
const DefaultAdminSecret = "ephedia-dev"

// Config represents the complete configuration for the storefront.
// It contains all settings needed to run the shop, organized into
// logical sections for different components.
//
// Config 表示店面的完整配置。
// 它包含运行商店所需的所有设置，按不同组件的逻辑部分进行组织。
type Config struct {
	// Server contains HTTP listener settings
	// Server 包含HTTP监听器设置
	Server ServerConfig `json:"server" yaml:"server"`

	// RemoteStore configures the hosted collection-store gateway
	// RemoteStore 配置托管集合存储网关
	RemoteStore RemoteStoreConfig `json:"remote_store" yaml:"remote_store"`

	// Admin configures access to the management operations
	// Admin 配置管理操作的访问
	Admin AdminConfig `json:"admin" yaml:"admin"`

	// Shipping configures the delivery rate table
	// Shipping 配置配送运费表
	Shipping ShippingConfig `json:"shipping" yaml:"shipping"`

	// Local configures on-device persistence (cart, views, admin flag)
	// Local 配置本地持久化（购物车、浏览记录、管理员标志）
	Local LocalConfig `json:"local" yaml:"local"`

	// Search configures the live product search
	// Search 配置实时产品搜索
	Search SearchConfig `json:"search" yaml:"search"`

	// Log configures the logging behavior
	// Log 配置日志行为
	Log LogConfig `json:"log" yaml:"log"`

	// Extensions configures optional features like hot reloading
	// Extensions 配置可选功能，如热重载
	Extensions ExtensionsConfig `json:"extensions" yaml:"extensions"`

	// Extra allows for custom configuration options
	// Extra 允许自定义配置选项
	Extra map[string]interface{} `json:"extra" yaml:"extra"`
}

// ServerConfig contains settings for the HTTP server.
//
// ServerConfig 包含HTTP服务器的设置。
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080"
	// Addr 是监听地址，例如":8080"
	Addr string `json:"addr" yaml:"addr"`

	// ReadTimeout bounds how long reading a request may take
	// ReadTimeout 限定读取请求的时长
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// WriteTimeout bounds how long writing a response may take
	// WriteTimeout 限定写入响应的时长
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout"`

	// Mode selects the gin mode ("debug", "release", "test")
	// Mode 选择gin模式（"debug"、"release"、"test"）
	Mode string `json:"mode" yaml:"mode"`
}

// RemoteStoreConfig contains settings for the hosted collection store.
// These settings identify the backend holding the product and order
// collections and the key used to authenticate against it.
//
// RemoteStoreConfig 包含托管集合存储的设置。
// 这些设置标识保存产品和订单集合的后端以及用于认证的密钥。
type RemoteStoreConfig struct {
	// BaseURL is the collection API root
	// BaseURL 是集合API根地址
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is sent with every request to the store
	// APIKey 随每个请求发送到存储
	APIKey string `json:"api_key" yaml:"api_key"`
}

// AdminConfig contains settings for the admin gate.
//
// AdminConfig 包含管理员门禁的设置。
type AdminConfig struct {
	// Secret is the shared access code admins present to log in
	// Secret 是管理员登录时出示的共享访问码
	Secret string `json:"secret" yaml:"secret"`
}

// ShippingConfig contains settings for the delivery rate table.
//
// ShippingConfig 包含配送运费表的设置。
type ShippingConfig struct {
	// RatesFile is the path to the YAML rate table; empty uses the built-in table
	// RatesFile 是YAML运费表的路径；为空时使用内置表
	RatesFile string `json:"rates_file" yaml:"rates_file"`

	// WatchRates enables reloading the rate table when the file changes
	// WatchRates 启用文件变化时重新加载运费表
	WatchRates bool `json:"watch_rates" yaml:"watch_rates"`
}

// LocalConfig contains settings for local persistence.
// Carts, recently viewed products and the admin flag are kept in a
// small on-device database so they survive restarts.
//
// LocalConfig 包含本地持久化的设置。
// 购物车、最近浏览的产品和管理员标志保存在小型本地数据库中，以便在重启后留存。
type LocalConfig struct {
	// DatabasePath is the SQLite file path; ":memory:" keeps everything in RAM
	// DatabasePath 是SQLite文件路径；":memory:"表示全部保存在内存中
	DatabasePath string `json:"database_path" yaml:"database_path"`
}

// SearchConfig contains settings for the live product search.
//
// SearchConfig 包含实时产品搜索的设置。
type SearchConfig struct {
	// Debounce is how long to wait after the last keystroke before querying
	// Debounce 是最后一次按键后等待多久再查询
	Debounce time.Duration `json:"debounce" yaml:"debounce"`

	// MinQueryLen is the minimum query length that triggers a search
	// MinQueryLen 是触发搜索的最小查询长度
	MinQueryLen int `json:"min_query_len" yaml:"min_query_len"`

	// ResultLimit caps how many results a live search returns
	// ResultLimit 限定实时搜索返回的结果数量
	ResultLimit int `json:"result_limit" yaml:"result_limit"`
}

// LogConfig contains settings for logging.
// These settings control the logging behavior, including
// log level and output destination.
//
// LogConfig 包含日志记录的设置。
// 这些设置控制日志行为，包括日志级别和输出目的地。
type LogConfig struct {
	// Level sets the minimum log level ("debug", "info", "warn", "error")
	// Level 设置最低日志级别（"debug"、"info"、"warn"、"error"）
	Level string `json:"level" yaml:"level"`

	// Output determines where logs are written ("stdout", "stderr", "file")
	// Output 确定日志写入的位置（"stdout"、"stderr"、"file"）
	Output string `json:"output" yaml:"output"`

	// FilePath is the path to the log file when Output is "file"
	// FilePath 是当Output为"file"时的日志文件路径
	FilePath string `json:"file_path" yaml:"file_path"`
}

// ExtensionsConfig contains settings for extensions.
//
// ExtensionsConfig 包含扩展的设置。
type ExtensionsConfig struct {
	// HotReload contains settings for dynamic configuration reloading
	// HotReload 包含动态配置重新加载的设置
	HotReload HotReloadConfig `json:"hot_reload" yaml:"hot_reload"`
}

// HotReloadConfig contains settings for hot reloading.
// These settings control how configuration changes are
// detected and applied without restarting the shop.
//
// HotReloadConfig 包含热重载的设置。
// 这些设置控制如何检测和应用配置更改而无需重启商店。
type HotReloadConfig struct {
	// Enable determines whether hot reloading is active
	// Enable 确定是否启用热重载
	Enable bool `json:"enable" yaml:"enable"`

	// WatchInterval, when set, switches change detection from file system
	// notifications to polling at this interval
	// WatchInterval 设置后将变更检测从文件系统通知切换为按此间隔轮询
	WatchInterval time.Duration `json:"watch_interval" yaml:"watch_interval"`
}

// DefaultConfig returns a new Config with default values.
// This provides a starting point for configuration with reasonable defaults
// for all settings, which can then be customized as needed.
//
// DefaultConfig 返回具有默认值的新Config。
// 这为所有设置提供了具有合理默认值的配置起点，然后可以根据需要进行自定义。
//
// Returns:
//   - *Config: A new configuration instance with default values
//
// 返回：
//   - *Config: 具有默认值的新配置实例
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			Mode:         "release",
		},
		RemoteStore: RemoteStoreConfig{
			BaseURL: "",
			APIKey:  "",
		},
		Admin: AdminConfig{
			Secret: DefaultAdminSecret,
		},
		Shipping: ShippingConfig{
			RatesFile:  "",
			WatchRates: false,
		},
		Local: LocalConfig{
			DatabasePath: "storefront.db",
		},
		Search: SearchConfig{
			Debounce:    300 * time.Millisecond,
			MinQueryLen: 3,
			ResultLimit: 6,
		},
		Log: LogConfig{
			Level:    "info",
			Output:   "stdout",
			FilePath: "/var/log/storefront.log",
		},
		Extensions: ExtensionsConfig{
			HotReload: HotReloadConfig{
				Enable:        false,
				WatchInterval: 0,
			},
		},
		Extra: make(map[string]interface{}),
	}
}

// LoadFromFile loads configuration from a file.
// It supports both YAML and JSON formats, automatically
// detecting the format based on the file extension.
//
// LoadFromFile 从文件加载配置。
// 它支持YAML和JSON格式，根据文件扩展名自动检测格式。
//
// Parameters:
//   - filename: Path to the configuration file
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
//
// 参数：
//   - filename: 配置文件的路径
//
// 返回：
//   - *Config: 加载的配置
//   - error: 如果加载失败则返回错误
func LoadFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer file.Close()

	config := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(file).Decode(config)
	case ".json":
		err = json.NewDecoder(file).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// LoadFromReader loads configuration from an io.Reader.
// This allows loading configuration from sources other than files,
// such as network streams or in-memory data.
//
// LoadFromReader 从io.Reader加载配置。
// 这允许从文件以外的源加载配置，如网络流或内存中的数据。
//
// Parameters:
//   - r: The reader providing the configuration data
//   - format: The format of the data ("json", "yaml", or "yml")
//
// Returns:
//   - *Config: The loaded configuration
//   - error: An error if loading fails
//
// 参数：
//   - r: 提供配置数据的读取器
//   - format: 数据的格式（"json"、"yaml"或"yml"）
//
// 返回：
//   - *Config: 加载的配置
//   - error: 如果加载失败则返回错误
func LoadFromReader(r io.Reader, format string) (*Config, error) {
	config := DefaultConfig()
	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(config)
	case "json":
		err = json.NewDecoder(r).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a file.
// It supports both YAML and JSON formats, automatically
// selecting the format based on the file extension.
//
// SaveToFile 将配置保存到文件。
// 它支持YAML和JSON格式，根据文件扩展名自动选择格式。
//
// Parameters:
//   - filename: Path where the configuration will be saved
//
// Returns:
//   - error: An error if saving fails
//
// 参数：
//   - filename: 配置将保存的路径
//
// 返回：
//   - error: 如果保存失败则返回错误
func (c *Config) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		encoder := yaml.NewEncoder(file)
		defer encoder.Close()
		err = encoder.Encode(c)
	case ".json":
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(c)
	default:
		return fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	return nil
}

// Validate validates the configuration.
// It checks that all settings have valid values and
// that there are no conflicts or inconsistencies.
//
// Validate 验证配置。
// 它检查所有设置是否具有有效值，并且没有冲突或不一致。
//
// Returns:
//   - error: An error describing the validation failure, or nil if valid
//
// 返回：
//   - error: 描述验证失败的错误，如果有效则为nil
func (c *Config) Validate() error {
	// Validate server settings
	// 验证服务器设置
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("server.read_timeout must be non-negative")
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("server.write_timeout must be non-negative")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
		// Valid modes
		// 有效模式
	default:
		return fmt.Errorf("server.mode must be one of: debug, release, test")
	}

	// Validate remote store settings
	// 验证远程存储设置
	if c.RemoteStore.BaseURL != "" && !strings.HasPrefix(c.RemoteStore.BaseURL, "http") {
		return fmt.Errorf("remote_store.base_url must be an http(s) URL")
	}

	// Validate admin settings
	// 验证管理员设置
	if c.Admin.Secret == "" {
		return fmt.Errorf("admin.secret must be specified")
	}

	// Validate local persistence settings
	// 验证本地持久化设置
	if c.Local.DatabasePath == "" {
		return fmt.Errorf("local.database_path must not be empty")
	}

	// Validate search settings
	// 验证搜索设置
	if c.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must be non-negative")
	}
	if c.Search.MinQueryLen < 1 {
		return fmt.Errorf("search.min_query_len must be positive")
	}
	if c.Search.ResultLimit <= 0 {
		return fmt.Errorf("search.result_limit must be positive")
	}

	// Validate log settings
	// 验证日志设置
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
		// 有效级别
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch c.Log.Output {
	case "stdout", "stderr", "file":
		// Valid outputs
		// 有效输出
	default:
		return fmt.Errorf("log.output must be one of: stdout, stderr, file")
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		return fmt.Errorf("log.file_path must be specified when log.output is 'file'")
	}

	// Validate extensions settings; a zero interval means file system
	// notifications rather than polling
	// 验证扩展设置；间隔为零表示使用文件系统通知而不是轮询
	if hr := c.Extensions.HotReload; hr.Enable && hr.WatchInterval != 0 && hr.WatchInterval < time.Second {
		return fmt.Errorf("extensions.hot_reload.watch_interval must be at least 1 second")
	}

	return nil
}
