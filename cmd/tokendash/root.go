package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hashgraph-online/token-dashboard-go/pkg/credstore"
	"github.com/hashgraph-online/token-dashboard-go/pkg/ledger"
	"github.com/hashgraph-online/token-dashboard-go/pkg/shared"
)

const (
	defaultStorePath = ".tokendash"
	defaultListen    = ":8080"
)

type rootOptions struct {
	network         string
	mirrorURL       string
	mirrorAPIKey    string
	keyType         string
	supplyKeyPolicy string
	noDiscovery     bool

	logLevel  string
	logFormat string
	logFile   string

	storeKind     string
	storePath     string
	redisAddr     string
	redisPassword string
	redisDB       int
	redisPrefix   string

	listen string
}

// app carries the state shared by every subcommand. The ledger client and
// store are built on first use so commands only pay for what they touch.
type app struct {
	options rootOptions
	log     zerolog.Logger

	client *ledger.Client
	store  credstore.Store
}

func newRootCommand() *cobra.Command {
	a := &app{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "tokendash",
		Short:         "Hedera token dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := shared.NewLogger(shared.LogConfig{
				Level:  a.options.logLevel,
				Format: a.options.logFormat,
				File:   a.options.logFile,
			})
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.options.network, "network", shared.NetworkTestnet, "ledger network (testnet, previewnet, mainnet)")
	flags.StringVar(&a.options.mirrorURL, "mirror-url", "", "mirror node base URL (defaults to the network's public mirror)")
	flags.StringVar(&a.options.mirrorAPIKey, "mirror-api-key", "", "mirror node API key")
	flags.StringVar(&a.options.keyType, "key-type", string(ledger.KeyTypeED25519), "key type for new accounts (ed25519, ecdsa)")
	flags.StringVar(&a.options.supplyKeyPolicy, "supply-key-policy", string(ledger.SupplyKeyPolicyTreasury), "supply key for tokens created without one (treasury, explicit)")
	flags.BoolVar(&a.options.noDiscovery, "no-node-discovery", false, "do not pin account creation to mirror-listed nodes")
	flags.StringVar(&a.options.logLevel, "log-level", "info", "log level")
	flags.StringVar(&a.options.logFormat, "log-format", shared.LogFormatConsole, "log format (json, console)")
	flags.StringVar(&a.options.logFile, "log-file", "", "also write logs to this rotated file")
	flags.StringVar(&a.options.storeKind, "store", credstore.KindBadger, "credential store (memory, badger, redis)")
	flags.StringVar(&a.options.storePath, "store-path", defaultStorePath, "badger credential store directory")
	flags.StringVar(&a.options.redisAddr, "redis-addr", "", "redis address for the redis credential store")
	flags.StringVar(&a.options.redisPassword, "redis-password", "", "redis password")
	flags.IntVar(&a.options.redisDB, "redis-db", 0, "redis database number")
	flags.StringVar(&a.options.redisPrefix, "redis-prefix", credstore.DefaultRedisPrefix, "redis key prefix")
	flags.StringVar(&a.options.listen, "listen", defaultListen, "dashboard API listen address")

	root.AddCommand(
		newServeCommand(a),
		newBalanceCommand(a),
		newAccountCommand(a),
		newTokenCommand(a),
		newTransferCommand(a),
		newOperatorCommand(a),
		newTxCommand(a),
	)
	return root
}

func (a *app) ledgerClient() (*ledger.Client, error) {
	if a.client != nil {
		return a.client, nil
	}
	keyType, err := ledger.ParseKeyType(a.options.keyType)
	if err != nil {
		return nil, err
	}
	client, err := ledger.NewClient(ledger.ClientConfig{
		Network:              a.options.network,
		MirrorBaseURL:        a.options.mirrorURL,
		MirrorAPIKey:         a.options.mirrorAPIKey,
		Logger:               &a.log,
		DisableNodeDiscovery: a.options.noDiscovery,
		SupplyKeyPolicy:      ledger.SupplyKeyPolicy(strings.ToLower(strings.TrimSpace(a.options.supplyKeyPolicy))),
		KeyType:              keyType,
	})
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

func (a *app) credentialStore(ctx context.Context) (credstore.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := credstore.Open(ctx, credstore.Config{
		Kind:          a.options.storeKind,
		Path:          a.options.storePath,
		RedisAddr:     a.options.redisAddr,
		RedisPassword: a.options.redisPassword,
		RedisDB:       a.options.redisDB,
		RedisPrefix:   a.options.redisPrefix,
		Logger:        &a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}
	a.store = store
	return store, nil
}

func (a *app) credentials(ctx context.Context) (credstore.Credentials, error) {
	store, err := a.credentialStore(ctx)
	if err != nil {
		return credstore.Credentials{}, err
	}
	return credstore.Load(ctx, store)
}

// operator resolves operator credentials from flags, then the store, then the
// environment.
func (a *app) operator(ctx context.Context, operatorID string, operatorKey string) (string, string, error) {
	if strings.TrimSpace(operatorID) != "" && strings.TrimSpace(operatorKey) != "" {
		return operatorID, operatorKey, nil
	}

	credentials, err := a.credentials(ctx)
	if err != nil {
		return "", "", err
	}
	if credentials.HasOperator() {
		return credentials.OperatorID, credentials.OperatorKey, nil
	}

	env, err := shared.OperatorConfigFromEnv()
	if err != nil {
		return "", "", fmt.Errorf("no operator credentials: pass --operator-id/--operator-key, run `tokendash operator set`, or set HEDERA_ACCOUNT_ID/HEDERA_PRIVATE_KEY")
	}
	return env.AccountID, env.PrivateKey, nil
}

// account resolves the acting account from flags, falling back to the store.
func (a *app) account(ctx context.Context, accountID string, privateKey string) (string, string, error) {
	if strings.TrimSpace(accountID) != "" && strings.TrimSpace(privateKey) != "" {
		return accountID, privateKey, nil
	}

	credentials, err := a.credentials(ctx)
	if err != nil {
		return "", "", err
	}
	if !credentials.HasAccount() {
		return "", "", fmt.Errorf("no account credentials: pass --account-id/--private-key or run `tokendash account create --save`")
	}
	return credentials.AccountID, credentials.PrivateKey, nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}
