package config

import (
	"os"
)

const (
	appNameVar         = "APP_NAME"
	folderEnvVar       = "TANA_DATA_FOLDER"
	backendURLVar      = "BACKEND_URL"
	ethRPCURLVar       = "ETH_RPC_URL"
	infuraAPIKeyVar    = "INFURA_API_KEY"
	receiverAddressVar = "RECEIVER_ADDRESS"
)

type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Tanacoin")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

// GetBackendURL returns the base URL of the Tanacoin backend API
// (e.g. "https://api.tanacoin.io"). All business logic lives behind it.
func (EnvVars) GetBackendURL() string {
	return GetEnv(backendURLVar, "http://localhost:5000")
}

// GetEthRPCURL returns the JSON-RPC endpoint of an in-page / local wallet
// provider. Empty means no injected provider is available.
func (EnvVars) GetEthRPCURL() string {
	return GetEnv(ethRPCURLVar, "")
}

// GetInfuraAPIKey returns the project key used to construct the
// remote-pairing provider endpoint when no injected provider exists.
func (EnvVars) GetInfuraAPIKey() string {
	return GetEnv(infuraAPIKeyVar, "")
}

// GetReceiverAddress returns the platform wallet that receives purchase
// payments.
func (EnvVars) GetReceiverAddress() string {
	return GetEnv(receiverAddressVar, "")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
