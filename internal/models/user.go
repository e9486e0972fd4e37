package models

import (
	"fmt"
	"strings"
	"time"
)

// User un usuario del sistema.
// El borrado de un usuario está bloqueado mientras existan firmas que lo
// referencien (restricción RESTRICT en la base de datos).
type User struct {
	ID        int       `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	FullName  string    `json:"full_name" db:"full_name"`
	Password  string    `json:"-" db:"password"` // hash bcrypt, nunca se expone en JSON
	Role      string    `json:"role" db:"role"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LoginRequest petición de inicio de sesión
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate valida la petición de login
func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("el nombre de usuario es obligatorio")
	}
	if r.Password == "" {
		return fmt.Errorf("la contraseña es obligatoria")
	}
	return nil
}

// LoginResponse respuesta de inicio de sesión
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
