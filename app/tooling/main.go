// Command tooling runs operational tasks against the database.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/bembemg/lista-de-tarefas/app/tooling/commands"
	"github.com/bembemg/lista-de-tarefas/infrastructure/postgresdb"
	"github.com/bembemg/lista-de-tarefas/sdk/logger"
)

var appName = "TAREFAS"

func main() {
	godotenv.Load()

	log, err := logger.NewFromEnv(appName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %s\n", err)
		os.Exit(1)
	}

	if err := run(log); err != nil {
		if errors.Is(err, commands.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	if len(os.Args) < 2 {
		return printUsage()
	}

	switch os.Args[1] {
	case "migrate":
		pool, err := postgresdb.NewFromEnv(appName, postgresdb.WithLogger(log.Logger))
		if err != nil {
			return fmt.Errorf("configuring postgres support: %w", err)
		}
		defer pool.Close()

		return commands.Migrate(pool, log.Logger)

	default:
		return printUsage()
	}
}

func printUsage() error {
	fmt.Println("usage: tooling <command>")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  migrate    create the schema in the database")
	return commands.ErrHelp
}
