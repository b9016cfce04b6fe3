package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

func GenerateAccessID() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("tx-%d-%06d", timestamp, randomNum.Int64())
}

func GenerateUUID() string {
	return uuid.NewString()
}
