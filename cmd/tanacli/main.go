package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tanalabs/tanacoin-client/backend"
	"github.com/tanalabs/tanacoin-client/internal/config"
	"github.com/tanalabs/tanacoin-client/internal/logging"
	"github.com/tanalabs/tanacoin-client/session"
	"github.com/tanalabs/tanacoin-client/store"
	"github.com/tanalabs/tanacoin-client/wallet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", session.ErrorMessage(err))
		os.Exit(1)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	app, err := buildApp(config.New())
	if err != nil {
		return err
	}
	return newRootCmd(app).Execute()
}

// app bundles the wired dependencies the commands share.
type app struct {
	cfg        config.Config
	logger     zerolog.Logger
	backend    *backend.Client
	controller *session.Controller
}

func buildApp(cfg config.Config) (*app, error) {
	logger := logging.New(cfg)

	fileStore, err := store.NewFileStore(filepath.Join(cfg.GetDataFolder(), "credentials.json"))
	if err != nil {
		return nil, errors.Wrap(err, "[buildApp] store")
	}

	backendClient, err := backend.New(cfg.GetBackendURL(), backend.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "[buildApp] backend")
	}

	gateway := wallet.NewGateway(cfg, wallet.WithLogger(logger))

	controller, err := session.NewController(
		session.Deps{Store: fileStore, Backend: backendClient, Wallet: gateway},
		session.WithLogger(logger),
		session.WithReceiverAddress(cfg.GetReceiverAddress()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[buildApp] controller")
	}
	controller.Restore()

	return &app{
		cfg:        cfg,
		logger:     logger,
		backend:    backendClient,
		controller: controller,
	}, nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
