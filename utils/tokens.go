package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/kataras/iris/v12/middleware/jwt"
)

// AccessToken is the claims payload of the signed access token. Identity
// only: the role is looked up fresh on every protected request, so a role
// change takes effect on the next call instead of at token expiry.
type AccessToken struct {
	ID uint `json:"ID"`
}

// CreateAccessToken signs a 1-hour access token for the given user. There is
// no refresh mechanism; expired tokens require a fresh login.
func CreateAccessToken(id uint) (string, error) {
	signer := jwt.NewSigner(jwt.HS256, os.Getenv("ACCESS_TOKEN_SECRET"), time.Hour)

	claims := AccessToken{ID: id}
	subject := jwt.Claims{Subject: strconv.FormatUint(uint64(id), 10)}

	token, err := signer.Sign(claims, subject)
	if err != nil {
		return "", err
	}

	return string(token), nil
}
