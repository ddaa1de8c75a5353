package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/client"
	"github.com/antonio-alexander/go-employee-store/internal/data"

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

// employeeFromEnvs reads the employee used by create/update, EMPLOYEE_JSON
// takes precedence over the individual EMPLOYEE_* fields
func employeeFromEnvs(envs map[string]string) (data.Employee, error) {
	var employee data.Employee

	if s := envs["EMPLOYEE_JSON"]; s != "" {
		if err := json.Unmarshal([]byte(s), &employee); err != nil {
			return data.Employee{}, errors.Wrap(err, "EMPLOYEE_JSON")
		}
		return employee, nil
	}
	employee.FirstName = envs["EMPLOYEE_FIRST_NAME"]
	employee.LastName = envs["EMPLOYEE_LAST_NAME"]
	employee.DateOfEmployment = envs["EMPLOYEE_DATE_OF_EMPLOYMENT"]
	employee.DateOfBirth = envs["EMPLOYEE_DATE_OF_BIRTH"]
	employee.Phone = envs["EMPLOYEE_PHONE"]
	employee.Email = envs["EMPLOYEE_EMAIL"]
	employee.Department = envs["EMPLOYEE_DEPARTMENT"]
	employee.Position = envs["EMPLOYEE_POSITION"]
	return employee, nil
}

func printJson(item any) error {
	bytes, err := json.MarshalIndent(item, "", " ")
	if err != nil {
		return err
	}
	fmt.Println(string(bytes))
	return nil
}

func Main(args []string, envs map[string]string, osSignal chan (os.Signal)) error {
	fmt.Printf("client: go-employee-store v%s (%s) built from: %s\n",
		Version, GitCommit, GitBranch)

	//create client
	client := client.NewClient()
	if err := client.Configure(envs); err != nil {
		return err
	}
	if err := client.Open(context.Background()); err != nil {
		return err
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			fmt.Printf("error while closing client: %s\n", err)
		}
	}()

	// execute command
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-osSignal:
			cancel()
		case <-ctx.Done():
		}
	}()
	ctx = internal.CtxWithCorrelationId(ctx, internal.GenerateId())
	id, command := envs["EMPLOYEE_ID"], envs["COMMAND"]
	switch command {
	default:
		return errors.Errorf("unsupported command: %s", command)
	case "employees_list":
		page, _ := strconv.Atoi(envs["PAGE"])
		pageSize, _ := strconv.Atoi(envs["PAGE_SIZE"])
		employeePage, err := client.EmployeesList(ctx, data.EmployeeSearch{
			Query:    envs["QUERY"],
			Page:     page,
			PageSize: pageSize,
			ViewMode: envs["VIEW_MODE"],
		})
		if err != nil {
			return err
		}
		return printJson(employeePage)
	case "employee_read":
		employee, err := client.EmployeeRead(ctx, id)
		if err != nil {
			return err
		}
		return printJson(employee)
	case "employee_create", "employee_update":
		employee, err := employeeFromEnvs(envs)
		if err != nil {
			return err
		}
		var result *data.Employee
		if command == "employee_create" {
			result, err = client.EmployeeCreate(ctx, employee)
		} else {
			result, err = client.EmployeeUpdate(ctx, id, employee)
		}
		if err != nil {
			return err
		}
		return printJson(result)
	case "employee_delete":
		return client.EmployeeDelete(ctx, id)
	case "language_read":
		language, err := client.LanguageRead(ctx)
		if err != nil {
			return err
		}
		fmt.Println(language)
	case "language_write":
		language, err := client.LanguageWrite(ctx, envs["LANGUAGE"])
		if err != nil {
			return err
		}
		fmt.Println(language)
	}
	return nil
}
