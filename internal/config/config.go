package config

type Config interface {
	EnvConfig
	BackendConfig
	WalletConfig
}

type EnvConfig interface {
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type BackendConfig interface {
	GetBackendURL() string
}

type WalletConfig interface {
	GetEthRPCURL() string
	GetInfuraAPIKey() string
	GetReceiverAddress() string
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
