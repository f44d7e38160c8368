package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

const issuer = "college-voting"

// Session kinds carried in the "kind" claim
const (
	KindStudent = "student"
	KindAdmin   = "admin"
)

// StudentClaims represents a voter session
type StudentClaims struct {
	StudentID  uint   `json:"student_id"`
	RollNumber string `json:"roll_number"`
	Kind       string `json:"kind"`
	jwt.RegisteredClaims
}

// AdminClaims represents an admin session
type AdminClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Kind     string `json:"kind"`
	jwt.RegisteredClaims
}

func registered(subject string, ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    issuer,
		Subject:   subject,
	}
}

// GenerateStudentToken generates a signed voter session token
func GenerateStudentToken(studentID uint, rollNumber, secret string, ttl time.Duration) (string, error) {
	claims := StudentClaims{
		StudentID:        studentID,
		RollNumber:       rollNumber,
		Kind:             KindStudent,
		RegisteredClaims: registered(rollNumber, ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GenerateAdminToken generates a signed admin session token
func GenerateAdminToken(adminID uint, username, secret string, ttl time.Duration) (string, error) {
	claims := AdminClaims{
		AdminID:          adminID,
		Username:         username,
		Kind:             KindAdmin,
		RegisteredClaims: registered(username, ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateStudentToken validates a voter token and returns claims
func ValidateStudentToken(tokenString, secret string) (*StudentClaims, error) {
	claims := &StudentClaims{}
	if err := parse(tokenString, secret, claims); err != nil {
		return nil, err
	}
	if claims.Kind != KindStudent || claims.StudentID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// ValidateAdminToken validates an admin token and returns claims
func ValidateAdminToken(tokenString, secret string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	if err := parse(tokenString, secret, claims); err != nil {
		return nil, err
	}
	if claims.Kind != KindAdmin || claims.AdminID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func parse(tokenString, secret string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !token.Valid {
		return ErrTokenInvalid
	}
	return nil
}
