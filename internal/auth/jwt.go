package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalido cobre qualquer falha de verificação (assinatura, expiração,
// payload adulterado). Um único erro evita vazar qual checagem falhou.
var ErrTokenInvalido = errors.New("token inválido")

// Claims representa as informações presentes em um token de sessão.
type Claims struct {
	Nome string `json:"nome"`
	jwt.RegisteredClaims
}

// UsuarioID devolve o subject convertido para o id numérico do usuário.
func (c *Claims) UsuarioID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrTokenInvalido
	}
	return id, nil
}

// JWTManager encapsula emissão e verificação de tokens de sessão.
// Stateless: qualquer instância com o mesmo segredo verifica qualquer token.
type JWTManager struct {
	secret    []byte
	accessTTL time.Duration
}

// NewJWTManager cria o gerenciador com segredo e TTL configurados.
func NewJWTManager(secret string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), accessTTL: accessTTL}
}

// GenerateAccessToken cria um JWT HS256 com claims {id, nome} e expiração fixa.
func (m *JWTManager) GenerateAccessToken(usuarioID int64, nome string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		Nome: nome,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(usuarioID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseAndValidate verifica assinatura e expiração.
func (m *JWTManager) ParseAndValidate(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrTokenInvalido
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalido
	}

	return claims, nil
}
