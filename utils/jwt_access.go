package utils

import (
	"log"
	"os"
)

// JWTSecretKey verifies access tokens issued by the upstream auth service.
// The engine never mints tokens; it only trusts the user_id claim.
var JWTSecretKey string

func InitJWT() {
	if os.Getenv("GO_ENV") == "test" && os.Getenv("JWT_SECRET_KEY") == "" {
		os.Setenv("JWT_SECRET_KEY", "test_secret_key")
	}

	JWTSecretKey = os.Getenv("JWT_SECRET_KEY")
	if JWTSecretKey == "" {
		log.Fatal("JWT Secret Key not set")
	}
}
