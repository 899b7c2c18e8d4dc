package shared

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

const (
	PlaceholderOperatorID  = "0.0.YOUR_ACCOUNT_ID"
	PlaceholderOperatorKey = "YOUR_PRIVATE_KEY"
)

type OperatorConfig struct {
	AccountID  string
	PrivateKey string
	Network    string
}

// ScriptConfig holds the inputs of the standalone create-account script.
type ScriptConfig struct {
	Operator               OperatorConfig
	InitialBalanceTinybars int64
}

var dotenvLoadOnce sync.Once

var (
	accountIDKeys  = []string{"HEDERA_ACCOUNT_ID", "HEDERA_OPERATOR_ID", "ACCOUNT_ID", "OPERATOR_ID"}
	privateKeyKeys = []string{"HEDERA_PRIVATE_KEY", "HEDERA_OPERATOR_KEY", "PRIVATE_KEY", "OPERATOR_KEY"}
)

// networkScopedKeys lists the env names that override the generic operator
// variables when the named network is selected.
var networkScopedKeys = map[string]struct {
	accountID  []string
	privateKey []string
}{
	NetworkMainnet: {
		accountID:  []string{"MAINNET_HEDERA_ACCOUNT_ID", "MAINNET_HEDERA_OPERATOR_ID", "MAINNET_OPERATOR_ID"},
		privateKey: []string{"MAINNET_HEDERA_PRIVATE_KEY", "MAINNET_HEDERA_OPERATOR_KEY", "MAINNET_OPERATOR_KEY"},
	},
	NetworkTestnet: {
		accountID:  []string{"TESTNET_HEDERA_ACCOUNT_ID", "TESTNET_HEDERA_OPERATOR_ID", "TESTNET_OPERATOR_ID"},
		privateKey: []string{"TESTNET_HEDERA_PRIVATE_KEY", "TESTNET_HEDERA_OPERATOR_KEY", "TESTNET_OPERATOR_KEY"},
	},
}

// OperatorConfigFromEnv resolves operator credentials from the environment,
// loading the nearest .env file first. Network-scoped variables win over the
// generic ones.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	config := lookupOperatorConfig()

	if config.AccountID == "" {
		return OperatorConfig{}, fmt.Errorf("HEDERA_ACCOUNT_ID is required")
	}
	if config.PrivateKey == "" {
		return OperatorConfig{}, fmt.Errorf("HEDERA_PRIVATE_KEY is required")
	}

	return config, nil
}

// LoadScriptConfig reads OPERATOR_ID, OPERATOR_KEY and INITIAL_BALANCE (in
// tinybars, default 0). Missing credentials and unreplaced placeholders are
// rejected.
func LoadScriptConfig() (ScriptConfig, error) {
	config := lookupOperatorConfig()

	if IsPlaceholderCredential(config.AccountID, config.PrivateKey) {
		return ScriptConfig{}, fmt.Errorf("OPERATOR_ID and OPERATOR_KEY must be set to real testnet credentials")
	}

	initialBalance := int64(0)
	if raw := firstNonEmptyEnv("INITIAL_BALANCE"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return ScriptConfig{}, fmt.Errorf("invalid INITIAL_BALANCE %q: %w", raw, err)
		}
		if parsed < 0 {
			return ScriptConfig{}, fmt.Errorf("INITIAL_BALANCE cannot be negative")
		}
		initialBalance = parsed
	}

	return ScriptConfig{
		Operator:               config,
		InitialBalanceTinybars: initialBalance,
	}, nil
}

// IsPlaceholderCredential reports whether either value is empty or still the
// sample value shipped in .env templates.
func IsPlaceholderCredential(accountID string, privateKey string) bool {
	accountID = strings.TrimSpace(accountID)
	privateKey = strings.TrimSpace(privateKey)
	return accountID == "" ||
		privateKey == "" ||
		accountID == PlaceholderOperatorID ||
		privateKey == PlaceholderOperatorKey
}

func lookupOperatorConfig() OperatorConfig {
	loadDotEnvIfPresent()

	network := firstNonEmptyEnv("HEDERA_NETWORK", "NETWORK")
	if network == "" {
		network = NetworkTestnet
	}

	accountID := firstNonEmptyEnv(accountIDKeys...)
	privateKey := firstNonEmptyEnv(privateKeyKeys...)

	if scoped, ok := networkScopedKeys[strings.ToLower(network)]; ok {
		if value := firstNonEmptyEnv(scoped.accountID...); value != "" {
			accountID = value
		}
		if value := firstNonEmptyEnv(scoped.privateKey...); value != "" {
			privateKey = value
		}
	}

	return OperatorConfig{
		AccountID:  accountID,
		PrivateKey: privateKey,
		Network:    network,
	}
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)
		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		for _, start := range startPaths {
			if candidate, ok := findUpwards(start, ".env"); ok {
				loadDotEnvFile(candidate)
				return
			}
		}
	})
}

func findUpwards(start string, name string) (string, bool) {
	current := start
	for {
		candidate := filepath.Join(current, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}

func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseDotEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}
		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func parseDotEnvLine(raw string) (string, string, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, found := strings.Cut(line, "=")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	if !isValidEnvKey(key) {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}
