package main

import (
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/dep2p/go-dishub/config"
	"github.com/dep2p/go-dishub/pkg/types"
)

// cliFlags 命令行参数
//
// 命令行参数用于「这次运行」的覆盖，持久配置放在 JSON 文件中。
type cliFlags struct {
	set map[string]bool

	configFile string
	listen     string
	port       int
	mode       string
	multicast  string
	bridge     string
	channel    string
	filter     string
	record     string
	replay     string
	logFile    string
	version    bool
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("dishub", flag.ContinueOnError)

	fs.StringVar(&f.configFile, "config", "", "配置文件路径")
	fs.StringVar(&f.listen, "listen", "", "HTTP/WebSocket 监听地址（如 :8080）")
	fs.IntVar(&f.port, "port", 0, "DIS UDP 端口")
	fs.StringVar(&f.mode, "mode", "", "本地网络模式 (broadcast/multicast)，off 表示禁用")
	fs.StringVar(&f.multicast, "multicast", "", "组播组地址")
	fs.StringVar(&f.bridge, "bridge", "", "Redis 地址 host:port，设置后启用跨实例桥接")
	fs.StringVar(&f.channel, "channel", "", "桥接频道名")
	fs.StringVar(&f.filter, "filter", "", "出站过滤脚本文件，设置后启用过滤")
	fs.StringVar(&f.record, "record", "", "把扇出流量记录到 pcap 文件")
	fs.StringVar(&f.replay, "replay", "", "启动后回放 pcap 文件")
	fs.StringVar(&f.logFile, "log", "", "日志文件路径")
	fs.BoolVar(&f.version, "version", false, "显示版本信息")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// buildConfig 构建运行配置
//
// 优先级（从高到低）：命令行参数、环境变量（DISHUB_ 前缀）、配置文件、默认值。
func buildConfig(f *cliFlags, getenv func(string) string) (*config.Config, error) {
	cfg := config.NewConfig()
	if f.configFile != "" {
		loaded, err := config.Load(f.configFile)
		if err != nil {
			return nil, fmt.Errorf("加载配置文件失败: %w", err)
		}
		cfg = loaded
	}

	if err := applyEnvOverrides(cfg, getenv); err != nil {
		return nil, err
	}
	if err := applyFlagOverrides(cfg, f); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides 应用环境变量覆盖
func applyEnvOverrides(cfg *config.Config, getenv func(string) string) error {
	env := func(name string) string {
		return strings.TrimSpace(getenv(config.EnvPrefix + name))
	}

	if v := env(config.EnvNetworkEnable); v != "" {
		cfg.Network.Enable = parseBool(v)
	}
	if v := env(config.EnvNetworkMode); v != "" {
		mode, err := types.ParseNetworkMode(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", config.EnvPrefix, config.EnvNetworkMode, err)
		}
		cfg.Network.Mode = mode
	}
	if v := env(config.EnvNetworkPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", config.EnvPrefix, config.EnvNetworkPort, err)
		}
		cfg.Network.Port = port
	}
	if v := env(config.EnvMulticastGroup); v != "" {
		cfg.Network.MulticastGroup = v
	}
	if v := env(config.EnvBridgeEnable); v != "" {
		cfg.Bridge.Enable = parseBool(v)
	}
	if v := env(config.EnvBridgeHost); v != "" {
		cfg.Bridge.Host = v
	}
	if v := env(config.EnvBridgePort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", config.EnvPrefix, config.EnvBridgePort, err)
		}
		cfg.Bridge.Port = port
	}
	if v := env(config.EnvBridgeChannel); v != "" {
		cfg.Bridge.Channel = v
	}
	if v := env(config.EnvFilterEnable); v != "" {
		cfg.Filter.Enable = parseBool(v)
	}
	if v := env(config.EnvFilterScript); v != "" {
		cfg.Filter.ScriptFile = v
	}
	if v := env(config.EnvListenAddr); v != "" {
		cfg.WebSocket.ListenAddr = v
	}
	return nil
}

// applyFlagOverrides 应用命令行参数覆盖
func applyFlagOverrides(cfg *config.Config, f *cliFlags) error {
	if f.set["listen"] {
		cfg.WebSocket.ListenAddr = f.listen
	}
	if f.set["port"] {
		cfg.Network.Port = f.port
	}
	if f.set["mode"] {
		if strings.EqualFold(f.mode, "off") {
			cfg.Network.Enable = false
		} else {
			mode, err := types.ParseNetworkMode(f.mode)
			if err != nil {
				return fmt.Errorf("-mode: %w", err)
			}
			cfg.Network.Enable = true
			cfg.Network.Mode = mode
		}
	}
	if f.set["multicast"] {
		cfg.Network.MulticastGroup = f.multicast
	}
	if f.set["bridge"] {
		host, portStr, err := net.SplitHostPort(f.bridge)
		if err != nil {
			return fmt.Errorf("-bridge: %w", err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return fmt.Errorf("-bridge: %w", err)
		}
		cfg.Bridge.Enable = true
		cfg.Bridge.Host = host
		cfg.Bridge.Port = port
	}
	if f.set["channel"] {
		cfg.Bridge.Channel = f.channel
	}
	if f.set["filter"] {
		cfg.Filter.Enable = true
		cfg.Filter.ScriptFile = f.filter
	}
	if f.set["record"] {
		cfg.Recorder.Enable = true
		cfg.Recorder.File = f.record
	}
	if f.set["replay"] {
		cfg.Recorder.ReplayFile = f.replay
	}
	return nil
}

// logPath 日志文件（命令行 > 环境变量）
func logPath(f *cliFlags, getenv func(string) string) string {
	if f.logFile != "" {
		return f.logFile
	}
	return getenv(config.EnvPrefix + config.EnvLogFile)
}

// parseBool 解析布尔值字符串
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
