package util

import (
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/pavithranrajkumar/devbuddy-backend/config"
	"github.com/pavithranrajkumar/devbuddy-backend/dao/model"
	"github.com/pavithranrajkumar/devbuddy-backend/logutils"
)

type (
	JWTClaims struct {
		UserID   uint           `json:"ui"`
		UserType model.UserType `json:"ut"`
		Name     string         `json:"nm"`
		jwt.RegisteredClaims
	}
	JWTMessage struct {
		UserID   uint           `json:"userId"`   // User ID
		UserType model.UserType `json:"userType"` // Role in the marketplace (client, freelancer, admin)
		Name     string         `json:"name"`     // Display name
	}
)

type TokenManager struct {
	secretKey       string
	accessTokenTTL  int
	refreshTokenTTL int
}

var (
	once     sync.Once
	tokenMgr *TokenManager
)

func GetTokenMgr() *TokenManager {
	once.Do(func() {
		cfg := config.GetConfig()
		tokenMgr = NewTokenManager(cfg.Auth.AccessTokenSecret,
			cfg.Auth.AccessTokenExpiryHour,
			cfg.Auth.RefreshTokenExpiryHour,
		)
	})
	return tokenMgr
}

// NewTokenManager builds a manager with an explicit secret. Exposed so
// tests can avoid the config singleton.
func NewTokenManager(secretKey string, accessTokenTTL, refreshTokenTTL int) *TokenManager {
	return &TokenManager{
		secretKey,
		accessTokenTTL,
		refreshTokenTTL,
	}
}

func (tm *TokenManager) createToken(msg *JWTMessage, ttl int) (string, error) {
	expiresAt := time.Now().Add(time.Hour * time.Duration(ttl))

	claims := &JWTClaims{
		UserID:   msg.UserID,
		UserType: msg.UserType,
		Name:     msg.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.secretKey))
}

// CreateTokens creates a new access token and a new refresh token
func (tm *TokenManager) CreateTokens(msg *JWTMessage) (
	accessToken string, refreshToken string, err error) {
	accessToken, err = tm.createToken(msg, tm.accessTokenTTL)
	if err != nil {
		logutils.Log.Error(err)
		return "", "", err
	}
	refreshToken, err = tm.createToken(msg, tm.refreshTokenTTL)
	if err != nil {
		logutils.Log.Error(err)
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (tm *TokenManager) CheckToken(requestToken string) (JWTMessage, error) {
	claims := JWTClaims{}
	token, err := jwt.ParseWithClaims(requestToken, &claims, func(_ *jwt.Token) (any, error) {
		return []byte(tm.secretKey), nil
	})
	if err != nil {
		return JWTMessage{}, err
	}
	if !token.Valid {
		return JWTMessage{}, jwt.ErrTokenUnverifiable
	}
	return JWTMessage{
		UserID:   claims.UserID,
		UserType: claims.UserType,
		Name:     claims.Name,
	}, nil
}
