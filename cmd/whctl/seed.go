package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Warehousing-api/internal/application/dto"
	"github.com/jhoicas/Warehousing-api/internal/application/usecase"
	"github.com/jhoicas/Warehousing-api/internal/domain"
	"github.com/jhoicas/Warehousing-api/internal/domain/entity"
	"github.com/jhoicas/Warehousing-api/internal/infrastructure/postgres"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Datos iniciales",
}

var seedAdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Crea el usuario admin con el rol administrador (idempotente)",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(ctx context.Context, e *env, _ []string) error {
		password := adminPassword
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		if len(password) < 8 {
			return errors.New("password de al menos 8 caracteres requerido (--password o ADMIN_PASSWORD)")
		}
		users := usecase.NewUserUseCase(postgres.NewUserRepository(e.pool), postgres.NewRoleRepository(e.pool), nil)
		out, err := users.Create(ctx, dto.CreateUserRequest{
			Username: entity.AdminUsername,
			Email:    adminEmail,
			Password: password,
			FullName: adminName,
			RoleID:   entity.AdminRoleID,
		})
		if errors.Is(err, domain.ErrDuplicate) {
			fmt.Println("el usuario admin ya existe")
			return nil
		}
		if err != nil {
			return fmt.Errorf("crear admin: %w", err)
		}
		e.log.Info().Str("user_id", out.ID).Msg("usuario admin creado")
		return nil
	}),
}

func init() {
	seedAdminCmd.Flags().StringVar(&adminEmail, "email", "admin@localhost", "email del administrador")
	seedAdminCmd.Flags().StringVar(&adminName, "name", "Administrador", "nombre completo")
	seedAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password (por defecto $ADMIN_PASSWORD)")
	seedCmd.AddCommand(seedAdminCmd)
	rootCmd.AddCommand(seedCmd)
}
