package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/client"
	"github.com/antonio-alexander/go-employee-store/internal/data"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"

	"github.com/pkg/errors"
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
	args := os.Args[1:]
	envs := internal.EnvsFromOs()
	osSignal := make(chan os.Signal, 1)
	signal.Notify(osSignal, syscall.SIGINT, syscall.SIGTERM)
	if err := Main(args, envs, osSignal); err != nil {
		os.Stderr.WriteString(err.Error())
		os.Exit(1)
	}
}

// scenarioDuplicateEmail has every client create an employee with the same
// email at the same time, exactly one of them must succeed
func scenarioDuplicateEmail(ctx context.Context, logger utilities.Logger, clients ...client.Client) error {
	const correlationId string = "scenario_duplicate_email"
	const minClients int = 2

	var wg sync.WaitGroup
	var mu sync.Mutex
	var created []*data.Employee
	var duplicates, failures int

	if len(clients) < minClients {
		return errors.New("not enough clients provided")
	}
	ctx = internal.CtxWithCorrelationId(ctx, correlationId)
	email := fmt.Sprintf("%s@example.com", internal.GenerateId()[:8])
	start := make(chan struct{})
	for i, c := range clients {
		wg.Add(1)
		go func(clientNumber int, c client.Client) {
			defer wg.Done()

			ctx := internal.CtxWithCorrelationId(ctx,
				fmt.Sprintf("%s_%d", correlationId, clientNumber))
			<-start
			employee, err := c.EmployeeCreate(ctx, data.Employee{
				FirstName:        "Scenario",
				LastName:         strconv.Itoa(clientNumber),
				DateOfEmployment: "2020-01-01",
				DateOfBirth:      "1990-01-01",
				Phone:            "5550000000",
				Email:            email,
				Department:       data.DepartmentTech,
				Position:         data.PositionJunior,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created = append(created, employee)
			case errors.Is(err, data.ErrEmailInUse):
				duplicates++
			default:
				failures++
				logger.Error(ctx, "error while creating employee: %s", err)
			}
		}(i, c)
	}
	close(start)
	wg.Wait()
	for _, employee := range created {
		if err := clients[0].EmployeeDelete(ctx, employee.Id); err != nil {
			logger.Error(ctx, "error while deleting employee (%s): %s", employee.Id, err)
			continue
		}
		logger.Info(ctx, "deleted employee: %s", employee.Id)
	}
	logger.Info(ctx, "created: %d, duplicates: %d, failures: %d",
		len(created), duplicates, failures)
	if len(created) != 1 || failures > 0 {
		return errors.Errorf("expected exactly one create to succeed, %d succeeded (%d failures)",
			len(created), failures)
	}
	return nil
}

func Main(args []string, envs map[string]string, osSignal chan (os.Signal)) error {
	var clients []client.Client
	var wg sync.WaitGroup

	//create context
	ctx, cancel := internal.LaunchContext(&wg, osSignal)
	defer cancel()

	// create logger
	logger := utilities.NewLogger()
	_ = logger.Configure(envs)

	//print version info
	logger.Info(ctx, "scenarios: go-employee-store v%s (%s) built from: %s",
		Version, GitCommit, GitBranch)

	nClients, _ := strconv.Atoi(envs["N_CLIENTS"])
	if nClients <= 0 {
		nClients = 8
	}
	for range nClients {
		client := client.NewClient(logger)
		if err := client.Configure(envs); err != nil {
			return err
		}
		if err := client.Open(ctx); err != nil {
			return err
		}
		defer func() {
			if err := client.Close(context.Background()); err != nil {
				logger.Error(ctx, "error while closing client: %s", err)
			}
		}()
		clients = append(clients, client)
	}

	// execute scenario
	var err error
	switch scenario := envs["SCENARIO"]; scenario {
	default:
		err = errors.Errorf("unsupported scenario: %s", scenario)
	case "", "duplicate_email":
		logger.Info(ctx, "executing duplicate_email scenario")
		if err = scenarioDuplicateEmail(ctx, logger, clients...); err != nil {
			logger.Error(ctx, "error while executing duplicate_email scenario: %s", err)
		}
	}
	cancel()
	wg.Wait()
	return err
}
