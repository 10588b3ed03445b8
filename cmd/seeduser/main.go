// seeduser crea un operador con password bcrypt. No hay auto-registro en la
// API: las cuentas se aprovisionan con este comando.
//
// Uso: go run ./cmd/seeduser -email op@ejemplo.com -password 'secreto' [-name "Operador"]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/agregados-api/internal/domain"
	"github.com/tu-usuario/agregados-api/internal/domain/entity"
	"github.com/tu-usuario/agregados-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/agregados-api/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	email := flag.String("email", "", "email del operador")
	password := flag.String("password", "", "password en claro (se almacena el hash bcrypt)")
	name := flag.String("name", "", "nombre a mostrar (por defecto, el email)")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "uso: seeduser -email <email> -password <password> [-name <nombre>]")
		os.Exit(2)
	}
	if len(*password) < 8 {
		fmt.Fprintln(os.Stderr, "el password debe tener al menos 8 caracteres")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash bcrypt: %v\n", err)
		os.Exit(1)
	}

	displayName := *name
	if displayName == "" {
		displayName = *email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        *email,
		PasswordHash: string(hash),
		Name:         displayName,
		CreatedAt:    time.Now(),
	}

	userRepo := postgres.NewUserRepository(pool)
	if err := userRepo.Create(user); err != nil {
		if err == domain.ErrDuplicate {
			fmt.Fprintf(os.Stderr, "ya existe un usuario con email %s\n", *email)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "crear usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("usuario creado: %s (%s)\n", user.Email, user.ID)
}
