package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/hugohenrick/rms-api/pkg/jwt"
	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("subject", "", "identificação de quem usará o token")
	role := flag.String("role", "", "papel gravado no token")
	ttl := flag.Duration("ttl", 24*time.Hour, "validade do token")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	if *subject == "" {
		log.Fatal("informe -subject")
	}

	manager, err := jwt.NewManager(os.Getenv("JWT_SECRET"), jwt.DefaultIssuer)
	if err != nil {
		log.Fatalf("Erro ao criar gerenciador de tokens: %v", err)
	}

	token, err := manager.GenerateToken(*subject, *role, *ttl)
	if err != nil {
		log.Fatalf("Erro ao gerar token: %v", err)
	}

	fmt.Println(token)
}
