package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"gisteam.backend/internal/config"
	"gisteam.backend/pkg/crypto"
)

var (
	printfFn             = fmt.Printf
	fatalfFn             = log.Fatalf
	loadDotenv           = godotenv.Load
	stdin      io.Reader = os.Stdin
)

// resolvePassword takes the first argument, or the first line of in when no
// argument is given so the secret stays out of shell history.
func resolvePassword(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("usage: hash-gen <password> (or pipe it on stdin)")
	}
	return password, nil
}

func generateHash(password string, cost int) (string, error) {
	hasher, err := crypto.NewPasswordHasher(cost)
	if err != nil {
		return "", err
	}
	return hasher.HashPassword(password)
}

func main() {
	_ = loadDotenv()
	cfg := config.Load()

	password, err := resolvePassword(os.Args[1:], stdin)
	if err != nil {
		fatalfFn("%v", err)
		return
	}

	hash, err := generateHash(password, cfg.Security.BcryptCost)
	if err != nil {
		fatalfFn("Failed to hash password: %v", err)
		return
	}

	printfFn("Bcrypt cost: %d\n", cfg.Security.BcryptCost)
	printfFn("Bcrypt Hash: %s\n", hash)
}
