package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o sufixo aleatório dos arquivos temporários da gravação local
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 10)
}
