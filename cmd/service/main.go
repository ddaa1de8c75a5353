package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/logic"
	"github.com/antonio-alexander/go-employee-store/internal/service"
	"github.com/antonio-alexander/go-employee-store/internal/storage"
	"github.com/antonio-alexander/go-employee-store/internal/store"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"
)

var (
	Version   string
	GitCommit string
	GitBranch string
)

func init() {
	if Version = data.Version; Version == "" {
		Version = "<no_version_provided>"
	}
	if GitCommit = data.GitCommit; GitCommit == "" {
		GitCommit = "<no_git_commit>"
	}
	if GitBranch = data.GitBranch; GitBranch == "" {
		GitBranch = "<no_git_branch>"
	}
}

func main() {
	pwd, _ := os.Getwd()
	args := os.Args[1:]
	envs := internal.EnvsFromOs()
	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, syscall.SIGINT, syscall.SIGTERM)
	if err := Main(pwd, args, envs, osSignal); err != nil {
		os.Stderr.WriteString(err.Error())
		os.Exit(1)
	}
}

func Main(pwd string, args []string, envs map[string]string, osSignal chan os.Signal) error {
	var wg sync.WaitGroup

	//create context
	ctx, cancel := internal.LaunchContext(&wg, osSignal)
	defer cancel()

	// create utilities
	logger := utilities.NewLogger()
	_ = logger.Configure(envs)
	timers := utilities.NewTimers()
	counter := utilities.NewCounter()

	//print version info
	logger.Info(ctx, "server: go-employee-store v%s (%s) built from: %s",
		Version, GitCommit, GitBranch)

	//create storage, configure and open
	storage, err := storage.New(envs["STORAGE_TYPE"], logger)
	if err != nil {
		return err
	}
	if err := storage.Configure(envs); err != nil {
		return err
	}
	if err := storage.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(context.Background()); err != nil {
			logger.Error(context.Background(), "error while closing storage: %s", err)
		}
	}()

	//create store, configure and open
	store := store.NewStore(storage, logger)
	if err := store.Configure(envs); err != nil {
		return err
	}
	if err := store.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Error(context.Background(), "error while closing store: %s", err)
		}
	}()

	//create logic, configure and open
	logic := logic.NewLogic(store, storage, logger)
	if err := logic.Configure(envs); err != nil {
		return err
	}
	if err := logic.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if err := logic.Close(context.Background()); err != nil {
			logger.Error(context.Background(), "error while closing logic: %s", err)
		}
	}()

	//create service, configure and open
	service := service.NewService(logic, logger, counter, timers)
	if err := service.Configure(envs); err != nil {
		return err
	}
	if err := service.Open(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	wg.Wait()
	if err := service.Close(context.Background()); err != nil {
		logger.Error(context.Background(), "error while closing service: %s", err)
	}
	return nil
}
