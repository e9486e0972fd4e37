package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/gustavogabrilearenas-gga/siprosapp/internal/apperrors"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/auth"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/interfaces"
	"github.com/gustavogabrilearenas-gga/siprosapp/internal/models"
)

// UserService lógica de negocio de usuarios: sesión y re-autenticación
type UserService struct {
	userRepo interfaces.UserRepositoryInterface
}

// NewUserService crea un service nuevo
func NewUserService(userRepo interfaces.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

// Login inicia sesión y devuelve un token
func (s *UserService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	// Buscar el usuario por nombre
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		// Mensaje genérico: no revelar si el usuario existe
		return nil, apperrors.NewAuthenticationError("usuario o contraseña incorrectos")
	}

	if !user.IsActive {
		return nil, apperrors.NewAuthenticationError("la cuenta está deshabilitada")
	}

	// Verificar la contraseña
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.NewAuthenticationError("usuario o contraseña incorrectos")
	}

	// Generar el token de sesión
	token, err := auth.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("no se pudo generar el token: %w", err)
	}

	return &models.LoginResponse{
		User:  user,
		Token: token,
	}, nil
}

// Reauthenticate re-verifica la credencial de un actor contra el hash
// almacenado actual. Es un chequeo fresco: no reutiliza el token de sesión,
// porque la firma electrónica exige que el actor vuelva a presentar su
// credencial en el momento de firmar.
func (s *UserService) Reauthenticate(userID int, credential string) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, apperrors.NewAuthenticationError("credencial inválida")
	}

	if !user.IsActive {
		return nil, apperrors.NewAuthenticationError("la cuenta está deshabilitada")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(credential)); err != nil {
		return nil, apperrors.NewAuthenticationError("credencial inválida")
	}

	return user, nil
}
