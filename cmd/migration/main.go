package main

import (
	"flag"
	"log"

	"github.com/hugohenrick/rms-api/internal/infrastructure/database"
	"github.com/joho/godotenv"
)

func main() {
	command := flag.String("cmd", "up", "comando de migração: up, down ou version")
	steps := flag.Int("steps", 0, "quantidade de migrações a desfazer com -cmd down (0 desfaz todas)")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	config, err := database.NewPostgresConfigFromEnv()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração do banco: %v", err)
	}
	url := config.MigrationURL()

	switch *command {
	case "up":
		if err := database.RunMigrations(url); err != nil {
			log.Fatalf("Erro ao executar migrações: %v", err)
		}
		log.Println("Migrações executadas com sucesso!")
	case "down":
		if err := database.RollbackMigrations(url, *steps); err != nil {
			log.Fatalf("Erro ao desfazer migrações: %v", err)
		}
		log.Println("Migrações desfeitas com sucesso!")
	case "version":
		version, dirty, err := database.MigrationVersion(url)
		if err != nil {
			log.Fatalf("Erro ao consultar versão: %v", err)
		}
		log.Printf("Versão atual: %d (dirty: %t)", version, dirty)
	default:
		log.Fatalf("Comando desconhecido: %q (use up, down ou version)", *command)
	}
}
