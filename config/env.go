package config

// 环境变量（均带 EnvPrefix 前缀）
const (
	EnvPrefix = "DISHUB_"

	EnvNetworkEnable  = "NETWORK_ENABLE"
	EnvNetworkMode    = "NETWORK_MODE"
	EnvNetworkPort    = "NETWORK_PORT"
	EnvMulticastGroup = "MULTICAST_GROUP"
	EnvBridgeEnable   = "BRIDGE_ENABLE"
	EnvBridgeHost     = "BRIDGE_HOST"
	EnvBridgePort     = "BRIDGE_PORT"
	EnvBridgeChannel  = "BRIDGE_CHANNEL"
	EnvFilterEnable   = "FILTER_ENABLE"
	EnvFilterScript   = "FILTER_SCRIPT_FILE"
	EnvListenAddr     = "LISTEN_ADDR"
	EnvLogFile        = "LOG_FILE"
)
