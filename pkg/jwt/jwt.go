package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Propósitos de token: una invitación nunca sirve como token de acceso y viceversa.
const (
	PurposeAccess     = "access"
	PurposeInvitation = "invitation"
)

// ErrWrongPurpose el token es válido pero fue emitido para otro uso.
var ErrWrongPurpose = errors.New("jwt: propósito de token inválido")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role viaja en el token para que el middleware RBAC decida sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id,omitempty"`
	Role    string `json:"role,omitempty"` // "admin" | "employee"
	Email   string `json:"email,omitempty"`
	Purpose string `json:"purpose"`
}

func sign(secret string, claims Claims, issuer, subject string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parse(secret, tokenString, purpose string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

// Generate genera un token de acceso firmado con userID y role.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	return sign(secret, Claims{UserID: userID, Role: role, Purpose: PurposeAccess}, issuer, userID, expMinutes)
}

// Parse valida el token de acceso y devuelve userID y role.
// Retorna error si el token es inválido, expirado, tiene firma incorrecta o es de otro propósito.
func Parse(secret, tokenString string) (userID, role string, err error) {
	claims, err := parse(secret, tokenString, PurposeAccess)
	if err != nil {
		return "", "", err
	}
	return claims.UserID, claims.Role, nil
}

// GenerateInvitation firma el enlace de aceptación de una invitación (Subject = id de la invitación).
func GenerateInvitation(secret, invitationID, email, issuer string, expMinutes int) (string, error) {
	return sign(secret, Claims{Email: email, Purpose: PurposeInvitation}, issuer, invitationID, expMinutes)
}

// ParseInvitation valida el token de invitación y devuelve el id de la invitación y el email.
func ParseInvitation(secret, tokenString string) (invitationID, email string, err error) {
	claims, err := parse(secret, tokenString, PurposeInvitation)
	if err != nil {
		return "", "", err
	}
	return claims.Subject, claims.Email, nil
}
