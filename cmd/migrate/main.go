package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	scannerconfig "golang-stock-scanner/internal/scanner/config"
	pkgconfig "golang-stock-scanner/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var (
	configPath     string
	migrationsPath string
)

func getDSN(dbConfig pkgconfig.Database) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.DBName,
		dbConfig.SSLMode)
}

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (version uint, dirty bool, err error)
}

// applyMigration moves the schema one direction and returns the status line to print.
func applyMigration(m migrator, direction string) (string, error) {
	var migrationErr error
	switch direction {
	case "up":
		migrationErr = m.Up()
	case "down":
		migrationErr = m.Steps(-1)
	default:
		return "", fmt.Errorf("unknown migration direction %q", direction)
	}

	if errors.Is(migrationErr, migrate.ErrNoChange) {
		return "No migrations to apply.", nil
	}
	if migrationErr != nil {
		return "", fmt.Errorf("migration %s failed: %w", direction, migrationErr)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return "", fmt.Errorf("failed to read migration version: %w", err)
	}
	return fmt.Sprintf("Migrations %s applied successfully (version %d, dirty %t).", direction, version, dirty), nil
}

func runMigrations(direction string) error {
	cfg, err := scannerconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	m, err := migrate.New("file://"+migrationsPath, getDSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("Migration source error on close: %v\n", srcErr)
		}
		if dbErr != nil {
			log.Printf("Migration database error on close: %v\n", dbErr)
		}
	}()

	msg, err := applyMigration(m, direction)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

var upCmd = &cobra.Command{
	Use:          "up",
	Short:        "Create the stocks table and seed the ticker universe",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations("up")
	},
}

var downCmd = &cobra.Command{
	Use:          "down",
	Short:        "Revert the last database migration",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations("down")
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "migrate"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-scanner.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Directory holding the migration files")

	rootCmd.AddCommand(upCmd, downCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migrate CLI: %s\n", err)
		os.Exit(1)
	}
}
