package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

const (
	testSecret   = "test-secret-key-for-unit-tests"
	testIssuer   = "pos-api-test"
	testPassword = "contraseña-segura"
)

func newAuthUC() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewStore().Users(), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})
}

func TestRegisterUser_RolPorDefectoCajero(t *testing.T) {
	uc := newAuthUC()

	resp, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "ana@tienda.local",
		Password: testPassword,
		Name:     "Ana",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCajero, resp.Role, "sin rol explícito el usuario queda como cajero")
	assert.Equal(t, "Ana", resp.Name)
	assert.NotEmpty(t, resp.ID)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.local", Password: testPassword})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.local", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_Validaciones(t *testing.T) {
	uc := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "email vacío")

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.local", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password bajo el mínimo de 8")

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.local", Password: testPassword, Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "rol fuera del conjunto cerrado")
}

// Login feliz: el token emitido debe parsear con el mismo secret y cargar
// userID y rol del usuario.
func TestLogin_EmiteTokenValido(t *testing.T) {
	uc := newAuthUC()
	registered, err := uc.RegisterUser(dto.RegisterRequest{
		Email: "admin@tienda.local", Password: testPassword, Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "admin@tienda.local", Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, registered.ID, resp.User.ID)

	userID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.local", Password: testPassword})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "nadie@tienda.local", Password: testPassword})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.local", Password: "incorrecta-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
