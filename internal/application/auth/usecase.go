package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

// TokenConfig parámetros de firma del JWT, tomados de configuración.
type TokenConfig struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// UseCase registro y login de usuarios.
type UseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	token       TokenConfig
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, token TokenConfig) *UseCase {
	return &UseCase{userRepo: userRepo, companyRepo: companyRepo, token: token}
}

// Register crea un usuario con la contraseña hasheada con bcrypt. La empresa
// debe existir y estar activa; el email es único.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	company, err := uc.companyRepo.GetByID(in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.NewCompanyNotFound(in.CompanyID)
	}
	if !company.IsActive() {
		return nil, domain.NewCompanyInactive(in.CompanyID)
	}

	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewEmailAlreadyExists(in.Email)
	}

	if len(in.Password) < 8 {
		return nil, domain.NewInvalidData("password", "la contraseña debe tener al menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewUser(uuid.New().String(), in.CompanyID, in.Email, string(hash), in.Name, in.Role)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Save(user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// Login valida credenciales y emite el JWT con user_id, company_id y rol.
// Cualquier falla (email inexistente, usuario inactivo, contraseña errada)
// responde el mismo error para no filtrar qué parte falló.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive() {
		return nil, domain.NewInvalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.NewInvalidCredentials()
	}

	token, err := jwt.Generate(uc.token.Secret, user.ID, user.CompanyID, user.Role, uc.token.Issuer, uc.token.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
