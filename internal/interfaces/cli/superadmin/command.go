package superadmin

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	domainSuperAdmin "github.com/marzgate/marzgate/internal/domain/superadmin"
	"github.com/marzgate/marzgate/internal/infrastructure/auth"
	"github.com/marzgate/marzgate/internal/infrastructure/config"
	"github.com/marzgate/marzgate/internal/infrastructure/database"
	"github.com/marzgate/marzgate/internal/infrastructure/repository"
	"github.com/marzgate/marzgate/internal/shared/logger"
)

var (
	env      string
	username string
	email    string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "superadmin",
		Short: "Super admin account tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(newCreateCommand())

	return cmd
}

func newCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a super admin account",
		Long:  `Create a super admin account. The password is read interactively and never echoed.`,
		RunE:  runCreate,
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username for the new account (required)")
	cmd.Flags().StringVarP(&email, "email", "m", "", "Email for the new account")
	cmd.MarkFlagRequired("username")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, env != "production"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	password, err := promptPassword()
	if err != nil {
		return err
	}

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	var emailPtr *string
	if email != "" {
		emailPtr = &email
	}

	account, err := domainSuperAdmin.NewSuperAdmin(username, emailPtr, hash)
	if err != nil {
		return err
	}

	repo := repository.NewSuperAdminRepository(database.Get())
	if err := repo.Create(cmd.Context(), account); err != nil {
		return err
	}

	fmt.Printf("Super admin '%s' created (id %d)\n", account.Username(), account.ID())
	return nil
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password confirmation: %w", err)
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}

	return string(first), nil
}
